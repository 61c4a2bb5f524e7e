package store_test

import (
	"context"
	"errors"
	"testing"

	"carrel/internal/store"
	"carrel/internal/testsupport"
)

func TestGetReturnsNilForMissingKey(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	payload, err := st.Get(ctx, store.Workspaces, "nope")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if payload != nil {
		t.Fatalf("expected nil payload for missing key, got %q", payload)
	}
}

func TestPutReplacesExistingRecord(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if err := st.Put(ctx, store.Tabs, "k", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := st.Put(ctx, store.Tabs, "k", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("Put replace failed: %v", err)
	}

	payload, err := st.Get(ctx, store.Tabs, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(payload) != `{"v":2}` {
		t.Fatalf("expected replaced payload, got %q", payload)
	}

	all, err := st.GetAll(ctx, store.Tabs)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected repeated puts to overwrite one record, got %d", len(all))
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if err := st.Put(ctx, store.Study, "deck", []byte(`{}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := st.Delete(ctx, store.Study, "deck"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := st.Delete(ctx, store.Study, "deck"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
}

func TestWorkspaceIndexExtraction(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	records := map[string]string{
		"a": `{"id":"a","workspaceId":"ws-1","name":"one"}`,
		"b": `{"id":"b","workspaceId":"ws-2","name":"two"}`,
		"c": `{"id":"c","name":"legacy"}`,
	}
	for key, payload := range records {
		if err := st.Put(ctx, store.Workspaces, key, []byte(payload)); err != nil {
			t.Fatalf("Put %s failed: %v", key, err)
		}
	}

	ws1 := "ws-1"
	scoped, err := st.GetByWorkspace(ctx, store.Workspaces, &ws1)
	if err != nil {
		t.Fatalf("GetByWorkspace failed: %v", err)
	}
	if len(scoped) != 1 || string(scoped[0]) != records["a"] {
		t.Fatalf("expected only ws-1 record, got %d records", len(scoped))
	}

	unscoped, err := st.GetByWorkspace(ctx, store.Workspaces, nil)
	if err != nil {
		t.Fatalf("GetByWorkspace(nil) failed: %v", err)
	}
	if len(unscoped) != 1 || string(unscoped[0]) != records["c"] {
		t.Fatalf("expected only the legacy record, got %d records", len(unscoped))
	}

	all, err := st.GetAll(ctx, store.Workspaces)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
}

func TestGetByWorkspaceRejectsUnindexedPartition(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ws := "ws-1"
	if _, err := st.GetByWorkspace(context.Background(), store.Tabs, &ws); err == nil {
		t.Fatal("expected error for partition without a workspace index")
	}
}

func TestDeleteByWorkspace(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	puts := map[string]string{
		"a": `{"id":"a","workspaceId":"ws-1"}`,
		"b": `{"id":"b","workspaceId":"ws-1"}`,
		"c": `{"id":"c","workspaceId":"ws-2"}`,
	}
	for key, payload := range puts {
		if err := st.Put(ctx, store.Workspaces, key, []byte(payload)); err != nil {
			t.Fatalf("Put %s failed: %v", key, err)
		}
	}

	removed, err := st.DeleteByWorkspace(ctx, store.Workspaces, "ws-1")
	if err != nil {
		t.Fatalf("DeleteByWorkspace failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 records removed, got %d", removed)
	}

	ws2 := "ws-2"
	remaining, err := st.GetByWorkspace(ctx, store.Workspaces, &ws2)
	if err != nil {
		t.Fatalf("GetByWorkspace failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected ws-2 record untouched, got %d records", len(remaining))
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if _, ok, err := st.Setting(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing setting, got ok=%v err=%v", ok, err)
	}
	if err := st.PutSetting(ctx, "activeWorkspaceId", "ws-1"); err != nil {
		t.Fatalf("PutSetting failed: %v", err)
	}
	value, ok, err := st.Setting(ctx, "activeWorkspaceId")
	if err != nil || !ok || value != "ws-1" {
		t.Fatalf("unexpected setting read: value=%q ok=%v err=%v", value, ok, err)
	}
	if err := st.DeleteSetting(ctx, "activeWorkspaceId"); err != nil {
		t.Fatalf("DeleteSetting failed: %v", err)
	}
	if _, ok, _ := st.Setting(ctx, "activeWorkspaceId"); ok {
		t.Fatal("expected setting removed")
	}
}

func TestOpenIsReentrantAcrossReopens(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	ctx := context.Background()
	if err := st.Put(ctx, store.Workspaces, "a", []byte(`{"id":"a","workspaceId":"ws-1"}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	st2, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st2.Close()

	payload, err := st2.Get(ctx, store.Workspaces, "a")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if payload == nil {
		t.Fatal("expected record to survive reopen")
	}
}

func TestOpenRefusesSecondProcess(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_ = testsupport.MustOpenStore(t, cfg)

	_, err := store.Open(cfg)
	if err == nil {
		t.Fatal("expected second Open to fail while lock is held")
	}
	if !errors.Is(err, store.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestCheckHealthReportsTables(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	health, err := st.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
	if !health.DatabaseExists || !health.DatabaseReadable {
		t.Fatalf("expected database present and readable: %+v", health)
	}
	if len(health.MissingTables) != 0 {
		t.Fatalf("expected no missing tables, got %v", health.MissingTables)
	}
	if !health.IntegrityCheck {
		t.Fatal("expected integrity check to pass")
	}
}
