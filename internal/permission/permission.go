// Package permission implements the index-visibility state machine: the
// pure function that names the next legal permission for an index
// attached to a base table.
package permission

import (
	"fmt"

	cascadeerrors "github.com/cascadedb/cascade/internal/errors"
)

// Permission is the visibility state of an index to concurrent readers,
// writers, and deleters of its base table.
type Permission string

const (
	DeleteOnly                 Permission = "DELETE_ONLY"
	WriteAndDelete              Permission = "WRITE_AND_DELETE"
	DoBackfill                  Permission = "DO_BACKFILL"
	ReadWriteAndDelete           Permission = "READ_WRITE_AND_DELETE"
	WriteAndDeleteWhileRemoving Permission = "WRITE_AND_DELETE_WHILE_REMOVING"
	DeleteOnlyWhileRemoving     Permission = "DELETE_ONLY_WHILE_REMOVING"
	IndexUnused                 Permission = "INDEX_UNUSED"
	NotUsed                     Permission = "NOT_USED"
)

// next maps each permission to the permission a call to Next() advances
// it to. Permissions absent from this map are terminal under Next().
var next = map[Permission]Permission{
	DeleteOnly:                 WriteAndDelete,
	WriteAndDelete:              DoBackfill,
	WriteAndDeleteWhileRemoving: DeleteOnlyWhileRemoving,
	DeleteOnlyWhileRemoving:     IndexUnused,
}

// Next returns the permission that follows p along the forward or removal
// path. Calling Next on a terminal permission (DoBackfill, ReadWriteAndDelete,
// IndexUnused, NotUsed, or any unrecognized value) is a programming error:
// the caller is expected to detect DoBackfill/terminal states itself before
// calling Next, exactly as the alter-table driver's classification step
// does.
func Next(p Permission) (Permission, error) {
	n, ok := next[p]
	if !ok {
		return "", cascadeerrors.Internal(fmt.Sprintf("permission.Next called on terminal state %q", p), nil)
	}
	return n, nil
}

// IsTerminal reports whether p has no Next() successor.
func IsTerminal(p Permission) bool {
	_, ok := next[p]
	return !ok
}

// IsForwardPath reports whether p belongs to the build-up sequence
// (DeleteOnly, WriteAndDelete, DoBackfill, ReadWriteAndDelete).
func IsForwardPath(p Permission) bool {
	switch p {
	case DeleteOnly, WriteAndDelete, DoBackfill, ReadWriteAndDelete:
		return true
	default:
		return false
	}
}

// IsRemovalPath reports whether p belongs to the teardown sequence
// (WriteAndDeleteWhileRemoving, DeleteOnlyWhileRemoving, IndexUnused).
func IsRemovalPath(p Permission) bool {
	switch p {
	case WriteAndDeleteWhileRemoving, DeleteOnlyWhileRemoving, IndexUnused:
		return true
	default:
		return false
	}
}

// Valid reports whether p is one of the eight defined permission values.
func Valid(p Permission) bool {
	switch p {
	case DeleteOnly, WriteAndDelete, DoBackfill, ReadWriteAndDelete,
		WriteAndDeleteWhileRemoving, DeleteOnlyWhileRemoving, IndexUnused, NotUsed:
		return true
	default:
		return false
	}
}
