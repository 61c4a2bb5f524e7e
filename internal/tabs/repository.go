package tabs

import (
	"context"
	"encoding/json"
	"fmt"

	"carrel/internal/store"
)

// Repository persists one tab record per workspace under a derived key.
type Repository struct {
	store *store.Store
}

// NewRepository constructs a repository over the shared store.
func NewRepository(st *store.Store) *Repository {
	return &Repository{store: st}
}

// Get returns the workspace's tab state. When no record exists yet, the
// empty default is returned without writing anything.
func (r *Repository) Get(ctx context.Context, workspaceID string) (State, error) {
	payload, err := r.store.Get(ctx, store.Tabs, DeriveID(workspaceID))
	if err != nil {
		return State{}, fmt.Errorf("get tab state: %w", err)
	}
	if payload == nil {
		return Default(workspaceID), nil
	}
	var state State
	if err := json.Unmarshal(payload, &state); err != nil {
		return State{}, fmt.Errorf("decode tab state: %w", err)
	}
	if state.OpenTabIDs == nil {
		state.OpenTabIDs = []string{}
	}
	state.ID = DeriveID(workspaceID)
	return state, nil
}

// Set fully replaces the workspace's tab state. Repeated calls for the
// same workspace overwrite the same record.
func (r *Repository) Set(ctx context.Context, workspaceID string, state State) error {
	state.ID = DeriveID(workspaceID)
	if state.OpenTabIDs == nil {
		state.OpenTabIDs = []string{}
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode tab state: %w", err)
	}
	if err := r.store.Put(ctx, store.Tabs, state.ID, payload); err != nil {
		return fmt.Errorf("set tab state: %w", err)
	}
	return nil
}

// Clear deletes the workspace's tab record entirely.
func (r *Repository) Clear(ctx context.Context, workspaceID string) error {
	if err := r.store.Delete(ctx, store.Tabs, DeriveID(workspaceID)); err != nil {
		return fmt.Errorf("clear tab state: %w", err)
	}
	return nil
}
