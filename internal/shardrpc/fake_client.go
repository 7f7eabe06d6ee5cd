package shardrpc

import (
	"context"
	"sync"

	"github.com/cascadedb/cascade/pkg/types"
)

// FakeClient is an in-process Client used by tests across this module
// (backfill, altertable) that need to drive a BackfillJob/ShardBackfill
// without a real shard leader. Safe for concurrent use.
type FakeClient struct {
	mu sync.Mutex

	SafeTimeByShard    map[types.ShardID]types.HybridTimestamp
	SafeTimeErrByShard map[types.ShardID]error

	// ChunkResponses lists, per shard, the sequence of next-keys (or
	// errors) to return across successive BackfillChunk calls — one entry
	// consumed per call, simulating successive chunks.
	ChunkResponses map[types.ShardID][]ChunkResponse

	GCErrByShard map[types.ShardID]error

	chunkCalls int
}

// ChunkResponse is one canned BackfillChunk result.
type ChunkResponse struct {
	NextKey types.Key
	Err     error
}

// NewFakeClient returns an empty FakeClient; populate its maps before use.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		SafeTimeByShard:    make(map[types.ShardID]types.HybridTimestamp),
		SafeTimeErrByShard: make(map[types.ShardID]error),
		ChunkResponses:     make(map[types.ShardID][]ChunkResponse),
		GCErrByShard:       make(map[types.ShardID]error),
	}
}

func (f *FakeClient) GetSafeTime(_ context.Context, shard types.ShardID, _ types.HybridTimestamp) (types.HybridTimestamp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.SafeTimeErrByShard[shard]; ok && err != nil {
		return types.Invalid, err
	}
	return f.SafeTimeByShard[shard], nil
}

func (f *FakeClient) BackfillChunk(_ context.Context, req BackfillChunkRequest) (types.Key, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chunkCalls++

	responses := f.ChunkResponses[req.Shard]
	if len(responses) == 0 {
		return types.Key(nil), nil
	}
	next := responses[0]
	f.ChunkResponses[req.Shard] = responses[1:]
	return next.NextKey, next.Err
}

func (f *FakeClient) AllowCompactionGC(_ context.Context, shard types.ShardID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.GCErrByShard[shard]
}

// ChunkCalls returns the number of BackfillChunk invocations observed so far.
func (f *FakeClient) ChunkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.chunkCalls
}
