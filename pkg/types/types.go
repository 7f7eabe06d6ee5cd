// Package types holds the small value types shared across cascade's
// control-plane packages: hybrid timestamps, row keys, and typed IDs.
package types

import (
	"bytes"
	"fmt"
)

// HybridTimestamp is a physical/logical pair used to order backfill-related
// events across shards without relying on wall-clock agreement between
// nodes. The zero value is Invalid.
type HybridTimestamp struct {
	Physical int64
	Logical  int32
}

// Invalid is the zero HybridTimestamp, used as a sentinel for "not yet set".
var Invalid = HybridTimestamp{}

// IsValid reports whether ht has been assigned a real reading.
func (ht HybridTimestamp) IsValid() bool {
	return ht.Physical != 0
}

// Compare returns -1, 0, or 1 as ht is before, equal to, or after other.
func (ht HybridTimestamp) Compare(other HybridTimestamp) int {
	if ht.Physical != other.Physical {
		if ht.Physical < other.Physical {
			return -1
		}
		return 1
	}
	if ht.Logical != other.Logical {
		if ht.Logical < other.Logical {
			return -1
		}
		return 1
	}
	return 0
}

// Max returns the later of ht and other.
func (ht HybridTimestamp) Max(other HybridTimestamp) HybridTimestamp {
	if ht.Compare(other) >= 0 {
		return ht
	}
	return other
}

func (ht HybridTimestamp) String() string {
	return fmt.Sprintf("%d.%d", ht.Physical, ht.Logical)
}

// Key is an opaque, comparable row key. Base-table row keys and backfill
// cursors (backfilled_until, next_row_key) are both represented as Key.
// An empty Key is used as the sentinel for "start of table"/"end of table"
// depending on context, matching the convention of an empty start/end key
// in a range scan.
type Key []byte

// Empty reports whether k is the zero-length sentinel key.
func (k Key) Empty() bool {
	return len(k) == 0
}

// Less reports whether k sorts strictly before other using the base
// table's byte-lexicographic row key comparator.
func (k Key) Less(other Key) bool {
	return bytes.Compare(k, other) < 0
}

func (k Key) String() string {
	return fmt.Sprintf("%x", []byte(k))
}

// TableID identifies a base table undergoing schema evolution.
type TableID string

// IndexID identifies a single secondary index being built.
type IndexID string

// ShardID identifies one partition (tablet) of a base table.
type ShardID string

// JobID identifies one BackfillJob instance (one alter-table epoch's worth
// of backfill work for a single index).
type JobID string
