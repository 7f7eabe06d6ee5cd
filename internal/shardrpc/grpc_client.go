package shardrpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cascadedb/cascade/api/shardrpc"
	cascadeerrors "github.com/cascadedb/cascade/internal/errors"
	"github.com/cascadedb/cascade/pkg/types"
)

// GRPCClient implements Client over the generated ShardRPC stub described
// by api/shardrpc/shardrpc.proto. Dials one connection per target and
// reuses it across all three procedures.
type GRPCClient struct {
	conns map[types.ShardID]*grpc.ClientConn
	stubs map[types.ShardID]shardrpc.ShardRPCClient
	dial  func(target string) (*grpc.ClientConn, error)
}

// NewGRPCClient returns a Client that dials shard leaders on demand using
// dial, passing the shard ID itself as the dial target.
func NewGRPCClient(dial func(target string) (*grpc.ClientConn, error)) *GRPCClient {
	return &GRPCClient{
		conns: make(map[types.ShardID]*grpc.ClientConn),
		stubs: make(map[types.ShardID]shardrpc.ShardRPCClient),
		dial:  dial,
	}
}

func (c *GRPCClient) stubFor(shard types.ShardID, target string) (shardrpc.ShardRPCClient, error) {
	if stub, ok := c.stubs[shard]; ok {
		return stub, nil
	}
	conn, err := c.dial(target)
	if err != nil {
		return nil, cascadeerrors.TransientShard(cascadeerrors.CodeShardUnavailable, fmt.Sprintf("dial shard %s", shard), err)
	}
	stub := shardrpc.NewShardRPCClient(conn)
	c.conns[shard] = conn
	c.stubs[shard] = stub
	return stub, nil
}

// classifyGRPCError maps a gRPC status code to the retryable/non-retryable
// split of §4.5: NotFound, FailedPrecondition (schema mismatch),
// OutOfRange, and Unimplemented are the four non-retryable classes;
// everything else is transient and eligible for backoff retry.
func classifyGRPCError(code, message string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return cascadeerrors.TransientShard(cascadeerrors.CodeShardUnavailable, message, err)
	}
	switch st.Code() {
	case codes.NotFound, codes.FailedPrecondition, codes.Unimplemented, codes.OutOfRange:
		return cascadeerrors.FatalShard(code, message, err)
	default:
		return cascadeerrors.TransientShard(cascadeerrors.CodeShardUnavailable, message, err)
	}
}

func (c *GRPCClient) GetSafeTime(ctx context.Context, shard types.ShardID, minCutoff types.HybridTimestamp) (types.HybridTimestamp, error) {
	stub, err := c.stubFor(shard, string(shard))
	if err != nil {
		return types.Invalid, err
	}
	resp, err := stub.GetSafeTime(ctx, &shardrpc.GetSafeTimeRequest{
		ShardId: string(shard),
		MinCutoff: &shardrpc.HybridTimestamp{
			Physical: minCutoff.Physical,
			Logical:  minCutoff.Logical,
		},
	})
	if err != nil {
		return types.Invalid, classifyGRPCError(cascadeerrors.CodeShardUnavailable, "GetSafeTime", err)
	}
	return types.HybridTimestamp{Physical: resp.SafeTime.Physical, Logical: resp.SafeTime.Logical}, nil
}

func (c *GRPCClient) BackfillChunk(ctx context.Context, req BackfillChunkRequest) (types.Key, error) {
	stub, err := c.stubFor(req.Shard, string(req.Shard))
	if err != nil {
		return nil, err
	}

	indexIDs := make([]string, len(req.IndexList))
	for i, id := range req.IndexList {
		indexIDs[i] = string(id)
	}

	resp, err := stub.BackfillChunk(ctx, &shardrpc.BackfillChunkRequest{
		ShardId: string(req.Shard),
		ReadTimestamp: &shardrpc.HybridTimestamp{
			Physical: req.ReadTimestamp.Physical,
			Logical:  req.ReadTimestamp.Logical,
		},
		SchemaVersion: req.SchemaVersion,
		StartKey:      []byte(req.StartKey),
		IndexIds:      indexIDs,
	})
	if err != nil {
		return nil, classifyGRPCError(cascadeerrors.CodeShardUnavailable, "BackfillChunk", err)
	}
	return types.Key(resp.NextKey), nil
}

func (c *GRPCClient) AllowCompactionGC(ctx context.Context, shard types.ShardID) error {
	stub, err := c.stubFor(shard, string(shard))
	if err != nil {
		return err
	}
	_, err = stub.AllowCompactionGC(ctx, &shardrpc.AllowCompactionGCRequest{ShardId: string(shard)})
	if err != nil {
		return classifyGRPCError(cascadeerrors.CodeShardUnavailable, "AllowCompactionGC", err)
	}
	return nil
}

// Close tears down every dialed connection.
func (c *GRPCClient) Close() error {
	var firstErr error
	for _, conn := range c.conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
