package tabs_test

import (
	"context"
	"testing"

	"carrel/internal/store"
	"carrel/internal/tabs"
	"carrel/internal/testsupport"
)

func TestGetReturnsLazyDefaultWithoutWriting(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	repo := tabs.NewRepository(st)

	ctx := context.Background()
	state, err := repo.Get(ctx, "ws-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(state.OpenTabIDs) != 0 || state.ActiveTabID != nil {
		t.Fatalf("expected empty default, got %+v", state)
	}

	// The default must not have been persisted.
	payload, err := st.Get(ctx, store.Tabs, tabs.DeriveID("ws-1"))
	if err != nil {
		t.Fatalf("store.Get failed: %v", err)
	}
	if payload != nil {
		t.Fatal("expected no record written by a lazy read")
	}
}

func TestSetOverwritesSameRecord(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	repo := tabs.NewRepository(st)

	ctx := context.Background()
	first := tabs.Default("ws-1").Open("A").Open("B")
	if err := repo.Set(ctx, "ws-1", first); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	second := first.Close("B")
	if err := repo.Set(ctx, "ws-1", second); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}

	all, err := st.GetAll(ctx, store.Tabs)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected repeated sets to share one record, got %d", len(all))
	}

	state, err := repo.Get(ctx, "ws-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(state.OpenTabIDs) != 1 || state.OpenTabIDs[0] != "A" {
		t.Fatalf("unexpected persisted state: %+v", state)
	}
	if state.ActiveTabID == nil || *state.ActiveTabID != "A" {
		t.Fatalf("expected active A, got %v", state.ActiveTabID)
	}
	if state.ID != tabs.DeriveID("ws-1") {
		t.Fatalf("expected derived id, got %q", state.ID)
	}
}

func TestClearDeletesRecord(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	repo := tabs.NewRepository(st)

	ctx := context.Background()
	if err := repo.Set(ctx, "ws-1", tabs.Default("ws-1").Open("A")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := repo.Clear(ctx, "ws-1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	payload, err := st.Get(ctx, store.Tabs, tabs.DeriveID("ws-1"))
	if err != nil {
		t.Fatalf("store.Get failed: %v", err)
	}
	if payload != nil {
		t.Fatal("expected tab record removed")
	}
	// Clearing again stays quiet.
	if err := repo.Clear(ctx, "ws-1"); err != nil {
		t.Fatalf("repeated Clear failed: %v", err)
	}
}
