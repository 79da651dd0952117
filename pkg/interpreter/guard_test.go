package interpreter

import (
	"testing"
	"time"
)

func TestGuardEnterExitCallTracksDepth(t *testing.T) {
	g := NewGuard(0, 2, nil, false)
	if err := g.EnterCall(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.EnterCall(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.EnterCall(); err == nil {
		t.Fatalf("expected max depth to be exceeded")
	}
	g.ExitCall()
	if err := g.EnterCall(); err != nil {
		t.Fatalf("expected room after ExitCall, got %v", err)
	}
}

func TestGuardAbortedFlag(t *testing.T) {
	aborted := true
	g := NewGuard(0, 0, &aborted, false)
	if err := g.CheckLiveness(); err == nil || err.Kind != KindResourceError {
		t.Fatalf("expected ResourceError on abort, got %v", err)
	}
}

func TestGuardTimeout(t *testing.T) {
	g := NewGuard(1, 0, nil, false)
	time.Sleep(5 * time.Millisecond)
	if err := g.CheckLiveness(); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestGuardUnlimitedByDefault(t *testing.T) {
	g := NewGuard(0, 0, nil, false)
	for i := 0; i < 1000; i++ {
		if err := g.EnterCall(); err != nil {
			t.Fatalf("unexpected error at depth %d: %v", i, err)
		}
	}
}
