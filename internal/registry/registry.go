package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carrel/internal/store"
	"carrel/internal/tabs"
	"carrel/internal/workspace"
)

// Settings keys owned by this package. The workspace list is persisted as
// a JSON array of Meta; the active pointer as a bare id string.
const (
	SettingWorkspaces      = "workspaces"
	SettingActiveWorkspace = "activeWorkspaceId"
)

// DefaultWorkspaceID is the fixed id of the workspace created on first run.
const DefaultWorkspaceID = "default"

// Meta describes one isolated workspace.
type Meta struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// Repository enumerates, creates, renames, and deletes workspaces, and
// tracks which one is active. Deletion cascades through the item and tab
// repositories; the registry never touches their partitions directly.
type Repository struct {
	store *store.Store
	items *workspace.Repository
	tabs  *tabs.Repository
}

// NewRepository constructs a registry over the shared store.
func NewRepository(st *store.Store) *Repository {
	return &Repository{
		store: st,
		items: workspace.NewRepository(st),
		tabs:  tabs.NewRepository(st),
	}
}

// List returns the ordered workspace list. An uninitialized store reads as
// an empty list.
func (r *Repository) List(ctx context.Context) ([]Meta, error) {
	value, ok, err := r.store.Setting(ctx, SettingWorkspaces)
	if err != nil {
		return nil, fmt.Errorf("read workspace list: %w", err)
	}
	if !ok || value == "" {
		return nil, nil
	}
	var list []Meta
	if err := json.Unmarshal([]byte(value), &list); err != nil {
		return nil, fmt.Errorf("decode workspace list: %w", err)
	}
	return list, nil
}

// Create appends a new workspace, persists the list, and makes the new
// workspace active. Returns the generated id.
func (r *Repository) Create(ctx context.Context, name string) (string, error) {
	list, err := r.List(ctx)
	if err != nil {
		return "", err
	}
	now := time.Now().UnixMilli()
	meta := Meta{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.writeList(ctx, append(list, meta)); err != nil {
		return "", err
	}
	if err := r.SetActive(ctx, meta.ID); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// Rename updates a workspace's name and updatedAt. Unknown ids are a
// silent no-op.
func (r *Repository) Rename(ctx context.Context, id, name string) error {
	list, err := r.List(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range list {
		if list[i].ID == id {
			list[i].Name = name
			list[i].UpdatedAt = time.Now().UnixMilli()
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}
	return r.writeList(ctx, list)
}

// Delete removes a workspace, cascading deletion of its items and tab
// state, and reassigns the active pointer when it referenced the deleted
// workspace. It refuses to delete the last remaining workspace, returning
// false with no error and no mutation, and likewise reports false for
// unknown ids.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	list, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	idx := -1
	for i := range list {
		if list[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || len(list) <= 1 {
		return false, nil
	}

	if _, err := r.items.DeleteAllInWorkspace(ctx, id); err != nil {
		return false, fmt.Errorf("cascade workspace items: %w", err)
	}
	if err := r.tabs.Clear(ctx, id); err != nil {
		return false, fmt.Errorf("cascade tab state: %w", err)
	}

	remaining := append(append([]Meta{}, list[:idx]...), list[idx+1:]...)
	if err := r.writeList(ctx, remaining); err != nil {
		return false, err
	}

	active, err := r.Active(ctx)
	if err != nil {
		return false, err
	}
	if active == id || active == "" {
		if err := r.SetActive(ctx, remaining[0].ID); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Active returns the persisted active workspace id. When the pointer is
// missing or references a workspace that no longer exists, it is repaired
// to the first listed workspace. An empty store yields "".
func (r *Repository) Active(ctx context.Context) (string, error) {
	value, ok, err := r.store.Setting(ctx, SettingActiveWorkspace)
	if err != nil {
		return "", fmt.Errorf("read active workspace: %w", err)
	}
	list, err := r.List(ctx)
	if err != nil {
		return "", err
	}
	if ok && value != "" {
		for _, meta := range list {
			if meta.ID == value {
				return value, nil
			}
		}
	}
	if len(list) == 0 {
		return "", nil
	}
	if err := r.SetActive(ctx, list[0].ID); err != nil {
		return "", err
	}
	return list[0].ID, nil
}

// SetActive persists the active workspace pointer. The id is not validated
// against the current list.
func (r *Repository) SetActive(ctx context.Context, id string) error {
	if err := r.store.PutSetting(ctx, SettingActiveWorkspace, id); err != nil {
		return fmt.Errorf("set active workspace: %w", err)
	}
	return nil
}

// Get returns the Meta for an id, or nil when unknown.
func (r *Repository) Get(ctx context.Context, id string) (*Meta, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, nil
}

// Seed installs a workspace list wholesale and activates its first entry.
// Used by the migration runner to bootstrap the registry; normal callers
// go through Create.
func (r *Repository) Seed(ctx context.Context, list []Meta) error {
	if len(list) == 0 {
		return fmt.Errorf("seed requires at least one workspace")
	}
	if err := r.writeList(ctx, list); err != nil {
		return err
	}
	return r.SetActive(ctx, list[0].ID)
}

func (r *Repository) writeList(ctx context.Context, list []Meta) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode workspace list: %w", err)
	}
	if err := r.store.PutSetting(ctx, SettingWorkspaces, string(payload)); err != nil {
		return fmt.Errorf("write workspace list: %w", err)
	}
	return nil
}
