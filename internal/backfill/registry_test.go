package backfill

import (
	"testing"
)

func TestRegistryEnforcesSingleBuilder(t *testing.T) {
	r := NewRegistry()
	jobA := &Job{TableID: "t1"}
	jobB := &Job{TableID: "t1"}

	if ok := r.Register("t1", jobA); !ok {
		t.Fatal("expected first Register to succeed")
	}
	if ok := r.Register("t1", jobB); ok {
		t.Fatal("expected second Register for the same table to fail")
	}

	got, ok := r.GetBackfillJob("t1")
	if !ok || got != jobA {
		t.Errorf("GetBackfillJob returned %+v, want jobA", got)
	}
}

func TestRegistryUnregistersOnTerminal(t *testing.T) {
	r := NewRegistry()
	job := &Job{TableID: "t1"}

	if ok := r.Register("t1", job); !ok {
		t.Fatal("expected Register to succeed")
	}
	if _, ok := r.GetBackfillJob("t1"); !ok {
		t.Fatal("expected job to be registered")
	}

	job.OnTerminal(StatusComplete)

	if _, ok := r.GetBackfillJob("t1"); ok {
		t.Fatal("expected job to be unregistered after OnTerminal fires")
	}

	// A different table's Job is independent.
	other := &Job{TableID: "t2"}
	if ok := r.Register("t2", other); !ok {
		t.Fatal("expected Register for a different table to succeed independently")
	}
}
