package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCascadeError_Error(t *testing.T) {
	err := New(CategoryIO, CodeCatalogWriteFailed, "write failed")
	expected := "[IO:CATALOG_WRITE_FAILED] write failed"
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestCascadeError_ErrorWithCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(CategoryIO, CodeCatalogWriteFailed, "write failed", cause)
	expected := "[IO:CATALOG_WRITE_FAILED] write failed: connection refused"
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestCascadeError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(CategoryTransientShard, CodeShardUnavailable, "unavailable", cause)
	if !errors.Is(err, cause) {
		t.Error("Unwrap should allow errors.Is to find the cause")
	}
}

func TestCascadeError_Is(t *testing.T) {
	err1 := New(CategoryIO, CodeCatalogWriteFailed, "first")
	err2 := New(CategoryIO, CodeCatalogWriteFailed, "second")
	err3 := New(CategoryIO, CodeCatalogReadFailed, "different code")

	if !errors.Is(err1, err2) {
		t.Error("errors with same category+code should match via Is")
	}
	if errors.Is(err1, err3) {
		t.Error("errors with different codes should not match via Is")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		category  Category
		code      string
		retryable bool
	}{
		{CategoryIO, CodeCatalogWriteFailed, true},
		{CategoryTransientShard, CodeShardUnavailable, true},
		{CategoryTransientShard, CodeTimeout, true},
		{CategoryAlreadyPresent, CodeIndexAlreadyPresent, false},
		{CategoryNotLeader, CodeNotLeader, false},
		{CategoryFatalShard, CodeTableDeleted, false},
		{CategoryIncomplete, CodeChunkIncomplete, false},
		{CategoryInternal, CodeUnexpected, false},
	}

	for _, tt := range tests {
		err := New(tt.category, tt.code, "test")
		if IsRetryable(err) != tt.retryable {
			t.Errorf("%s:%s retryable=%v, want %v", tt.category, tt.code, IsRetryable(err), tt.retryable)
		}
	}
}

func TestGetCategory(t *testing.T) {
	err := New(CategoryFatalShard, CodeTableDeleted, "table gone")
	if GetCategory(err) != CategoryFatalShard {
		t.Errorf("got %q, want %q", GetCategory(err), CategoryFatalShard)
	}
	if GetCategory(fmt.Errorf("plain error")) != "" {
		t.Error("non-CascadeError should return empty category")
	}
}

func TestGetCode(t *testing.T) {
	err := New(CategoryFatalShard, CodeTableDeleted, "table gone")
	if GetCode(err) != CodeTableDeleted {
		t.Errorf("got %q, want %q", GetCode(err), CodeTableDeleted)
	}
	if GetCode(fmt.Errorf("plain error")) != "" {
		t.Error("non-CascadeError should return empty code")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CategoryInternal, CodeUnexpected, "bad state")
	detailed := err.WithDetails(map[string]interface{}{"table_id": "t1"})

	if detailed.Details["table_id"] != "t1" {
		t.Error("WithDetails should set details")
	}
	if err.Details != nil {
		t.Error("WithDetails should not modify original")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	cause := fmt.Errorf("io error")

	a := AlreadyPresent("index already present")
	if a.Category != CategoryAlreadyPresent || a.Code != CodeIndexAlreadyPresent {
		t.Error("AlreadyPresent mismatch")
	}

	nl := NotLeader("stepped down", cause)
	if nl.Category != CategoryNotLeader || !errors.Is(nl, cause) {
		t.Error("NotLeader mismatch")
	}

	io := IOFailure(CodeCatalogWriteFailed, "disk full", cause)
	if io.Category != CategoryIO || !IsRetryable(io) {
		t.Error("IOFailure mismatch")
	}

	fs := FatalShard(CodeTableDeleted, "table dropped mid-backfill", cause)
	if fs.Category != CategoryFatalShard || IsRetryable(fs) {
		t.Error("FatalShard mismatch")
	}

	ts := TransientShard(CodeShardUnavailable, "leader moved", cause)
	if ts.Category != CategoryTransientShard || !IsRetryable(ts) {
		t.Error("TransientShard mismatch")
	}

	ic := Incomplete("chunk did not reach end of tablet")
	if ic.Category != CategoryIncomplete {
		t.Error("Incomplete mismatch")
	}

	in := Internal("unexpected nil job", cause)
	if in.Category != CategoryInternal || in.Code != CodeUnexpected {
		t.Error("Internal mismatch")
	}
}
