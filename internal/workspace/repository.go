package workspace

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carrel/internal/store"
)

// Repository provides tree CRUD scoped to one workspace at a time. It keeps
// no in-memory cache: every read queries the store fresh, favoring
// consistency over latency. Parent references are not validated here; the
// workbench facade owns caller-side integrity checks.
type Repository struct {
	store *store.Store
}

// NewRepository constructs a repository over the shared store.
func NewRepository(st *store.Store) *Repository {
	return &Repository{store: st}
}

// ListItems returns every folder and file whose workspace id matches. This
// is the sole query primitive; callers reconstruct the tree by grouping on
// parent references.
func (r *Repository) ListItems(ctx context.Context, workspaceID string) ([]Item, error) {
	payloads, err := r.store.GetByWorkspace(ctx, store.Workspaces, &workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	items := make([]Item, 0, len(payloads))
	for _, payload := range payloads {
		item, err := DecodeItem(payload)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// GetItem fetches an item by id across all workspaces. Returns nil when
// the id is unknown.
func (r *Repository) GetItem(ctx context.Context, id string) (Item, error) {
	payload, err := r.store.Get(ctx, store.Workspaces, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if payload == nil {
		return nil, nil
	}
	return DecodeItem(payload)
}

// CreateFolder persists a new folder and returns its generated id. The
// parent is not checked for existence.
func (r *Repository) CreateFolder(ctx context.Context, workspaceID string, parentID *string, name string) (string, error) {
	folder := &Folder{
		ID:          uuid.NewString(),
		Kind:        KindFolder,
		Name:        name,
		ParentID:    parentID,
		WorkspaceID: workspaceID,
		CreatedAt:   time.Now().UnixMilli(),
	}
	if err := r.putItem(ctx, folder); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}
	return folder.ID, nil
}

// CreateFile persists a new file and returns its generated id. Content is
// stored as given (plain text, or base64 for binary file types). A
// negative size means unknown and is omitted from the record.
func (r *Repository) CreateFile(ctx context.Context, workspaceID string, folderID *string, name string, fileType FileType, content string, size int64) (string, error) {
	file := &File{
		ID:          uuid.NewString(),
		Kind:        KindFile,
		FolderID:    folderID,
		Name:        name,
		FileType:    fileType,
		Content:     content,
		WorkspaceID: workspaceID,
		CreatedAt:   time.Now().UnixMilli(),
	}
	if size >= 0 {
		file.Size = &size
	}
	if err := r.putItem(ctx, file); err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	return file.ID, nil
}

// Rename rewrites an item's name, preserving every other field. Unknown
// ids are a silent no-op.
func (r *Repository) Rename(ctx context.Context, id, newName string) error {
	item, err := r.GetItem(ctx, id)
	if err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	if item == nil {
		return nil
	}
	switch v := item.(type) {
	case *Folder:
		v.Name = newName
	case *File:
		v.Name = newName
	}
	if err := r.putItem(ctx, item); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// UpdateFileContent replaces a file's content. Absent ids and folders are
// silent no-ops. UpdatedAt is bumped so callers can spot stale viewers.
func (r *Repository) UpdateFileContent(ctx context.Context, id, content string) error {
	item, err := r.GetItem(ctx, id)
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	file, ok := item.(*File)
	if !ok {
		return nil
	}
	file.Content = content
	now := time.Now().UnixMilli()
	file.UpdatedAt = &now
	if err := r.putItem(ctx, file); err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	return nil
}

// Move re-parents a file and returns the updated record. Only files move;
// a nil newFolderID relocates the file to the workspace root. Returns nil
// when the id does not resolve to a file. The target folder is not
// validated.
func (r *Repository) Move(ctx context.Context, fileID string, newFolderID *string) (*File, error) {
	item, err := r.GetItem(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("move: %w", err)
	}
	file, ok := item.(*File)
	if !ok {
		return nil, nil
	}
	file.FolderID = newFolderID
	now := time.Now().UnixMilli()
	file.UpdatedAt = &now
	if err := r.putItem(ctx, file); err != nil {
		return nil, fmt.Errorf("move: %w", err)
	}
	return file, nil
}

// DeleteItem deletes exactly one record. Descendants of a folder are not
// touched; cascade closure is computed by the caller. Deleting an absent
// id is not an error.
func (r *Repository) DeleteItem(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, store.Workspaces, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// DeleteAllInWorkspace unconditionally removes every item belonging to the
// workspace. Used only when the owning workspace itself is being destroyed.
func (r *Repository) DeleteAllInWorkspace(ctx context.Context, workspaceID string) (int64, error) {
	removed, err := r.store.DeleteByWorkspace(ctx, store.Workspaces, workspaceID)
	if err != nil {
		return 0, fmt.Errorf("delete workspace items: %w", err)
	}
	return removed, nil
}

func (r *Repository) putItem(ctx context.Context, item Item) error {
	payload, err := EncodeItem(item)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, store.Workspaces, item.ItemID(), payload)
}
