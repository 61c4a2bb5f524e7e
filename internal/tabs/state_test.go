package tabs_test

import (
	"testing"

	"carrel/internal/tabs"
)

func open(ids []string, active string) tabs.State {
	state := tabs.Default("ws-1")
	state.OpenTabIDs = append(state.OpenTabIDs, ids...)
	if active != "" {
		state.ActiveTabID = &active
	}
	return state
}

func requireState(t *testing.T, state tabs.State, wantOpen []string, wantActive string) {
	t.Helper()
	if len(state.OpenTabIDs) != len(wantOpen) {
		t.Fatalf("expected open tabs %v, got %v", wantOpen, state.OpenTabIDs)
	}
	for i := range wantOpen {
		if state.OpenTabIDs[i] != wantOpen[i] {
			t.Fatalf("expected open tabs %v, got %v", wantOpen, state.OpenTabIDs)
		}
	}
	if wantActive == "" {
		if state.ActiveTabID != nil {
			t.Fatalf("expected no active tab, got %q", *state.ActiveTabID)
		}
		return
	}
	if state.ActiveTabID == nil || *state.ActiveTabID != wantActive {
		t.Fatalf("expected active %q, got %v", wantActive, state.ActiveTabID)
	}
}

func TestCloseActiveTabSlidesActivation(t *testing.T) {
	// Open [A, B, C], active B. Closing B activates C (the item that slid
	// into B's former index). Closing C (now last) activates A.
	state := open([]string{"A", "B", "C"}, "B")

	state = state.Close("B")
	requireState(t, state, []string{"A", "C"}, "C")

	state = state.Close("C")
	requireState(t, state, []string{"A"}, "A")

	state = state.Close("A")
	requireState(t, state, []string{}, "")
}

func TestCloseNonActiveTabKeepsActive(t *testing.T) {
	state := open([]string{"A", "B", "C"}, "B")
	state = state.Close("A")
	requireState(t, state, []string{"B", "C"}, "B")
}

func TestCloseUnknownTabIsNoOp(t *testing.T) {
	state := open([]string{"A"}, "A")
	state = state.Close("Z")
	requireState(t, state, []string{"A"}, "A")
}

func TestOpenAppendsAndActivates(t *testing.T) {
	state := tabs.Default("ws-1")
	state = state.Open("A")
	state = state.Open("B")
	requireState(t, state, []string{"A", "B"}, "B")

	// Re-opening an open tab activates without duplicating.
	state = state.Open("A")
	requireState(t, state, []string{"A", "B"}, "A")
}

func TestActivateDoesNotReorder(t *testing.T) {
	state := open([]string{"A", "B", "C"}, "C")
	state = state.Activate("A")
	requireState(t, state, []string{"A", "B", "C"}, "A")

	// Activating a tab that is not open is a no-op.
	state = state.Activate("Z")
	requireState(t, state, []string{"A", "B", "C"}, "A")
}

func TestCloseManyReassignsToFirstRemaining(t *testing.T) {
	state := open([]string{"A", "B", "C", "D"}, "B")
	state = state.CloseMany([]string{"B", "D"})
	requireState(t, state, []string{"A", "C"}, "A")

	state = open([]string{"A", "B"}, "A")
	state = state.CloseMany([]string{"A", "B"})
	requireState(t, state, []string{}, "")

	// Active not among the closed: unchanged.
	state = open([]string{"A", "B", "C"}, "C")
	state = state.CloseMany([]string{"A"})
	requireState(t, state, []string{"B", "C"}, "C")
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	original := open([]string{"A", "B"}, "A")
	_ = original.Close("A")
	_ = original.CloseMany([]string{"A", "B"})
	_ = original.Open("C")
	requireState(t, original, []string{"A", "B"}, "A")
}
