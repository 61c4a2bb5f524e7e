package workbench

import (
	"context"
	"fmt"

	"carrel/internal/logging"
	"carrel/internal/workspace"
)

// DeletionPlan is the transitive closure of a recursive folder deletion,
// computed eagerly before any record is removed.
type DeletionPlan struct {
	FolderIDs []string
	FileIDs   []string
}

// All returns every planned id, files first so a partial failure strands
// empty folders rather than orphaned files.
func (p DeletionPlan) All() []string {
	all := make([]string, 0, len(p.FileIDs)+len(p.FolderIDs))
	all = append(all, p.FileIDs...)
	all = append(all, p.FolderIDs...)
	return all
}

// DeleteResult reports the outcome of a bulk deletion. A non-nil Err means
// the deletion stopped early; Remaining holds the ids that were never
// attempted plus the one that failed.
type DeleteResult struct {
	Deleted   []string
	Remaining []string
	Err       error
}

// PlanFolderDeletion walks the workspace's flat item list and collects the
// folder plus every transitive descendant. Items are stored flat, so the
// closure is a single list pass per tree level keyed on parent references.
func (w *Workbench) PlanFolderDeletion(ctx context.Context, workspaceID, folderID string) (DeletionPlan, error) {
	items, err := w.items.ListItems(ctx, workspaceID)
	if err != nil {
		return DeletionPlan{}, fmt.Errorf("plan folder deletion: %w", err)
	}

	plan := DeletionPlan{FolderIDs: []string{folderID}}
	seen := map[string]struct{}{folderID: {}}
	frontier := map[string]struct{}{folderID: {}}
	for len(frontier) > 0 {
		next := make(map[string]struct{})
		for _, item := range items {
			parent := item.Parent()
			if parent == nil {
				continue
			}
			if _, ok := frontier[*parent]; !ok {
				continue
			}
			if _, ok := seen[item.ItemID()]; ok {
				continue
			}
			seen[item.ItemID()] = struct{}{}
			switch item.ItemKind() {
			case workspace.KindFolder:
				plan.FolderIDs = append(plan.FolderIDs, item.ItemID())
				next[item.ItemID()] = struct{}{}
			default:
				plan.FileIDs = append(plan.FileIDs, item.ItemID())
			}
		}
		frontier = next
	}
	return plan, nil
}

// DeleteItems removes the given records one at a time, then prunes the
// workspace's open tabs and the CSV preferences of deleted files. Deletion
// stops at the first storage error so the caller can retry the remainder.
func (w *Workbench) DeleteItems(ctx context.Context, workspaceID string, ids []string) DeleteResult {
	result := DeleteResult{Deleted: make([]string, 0, len(ids))}
	for i, id := range ids {
		if err := w.items.DeleteItem(ctx, id); err != nil {
			result.Remaining = ids[i:]
			result.Err = err
			break
		}
		result.Deleted = append(result.Deleted, id)
	}

	if len(result.Deleted) == 0 {
		return result
	}

	if err := w.pruneTabs(ctx, workspaceID, result.Deleted); err != nil && result.Err == nil {
		result.Err = err
	}
	for _, id := range result.Deleted {
		if err := w.DeleteCSVPrefs(ctx, id); err != nil && result.Err == nil {
			result.Err = err
		}
	}

	w.logger.Info("deleted items",
		logging.String(logging.FieldWorkspaceID, workspaceID),
		logging.Int(logging.FieldCount, len(result.Deleted)))
	return result
}

// DeleteFolderRecursive plans and applies the deletion of a folder and all
// its descendants.
func (w *Workbench) DeleteFolderRecursive(ctx context.Context, workspaceID, folderID string) DeleteResult {
	plan, err := w.PlanFolderDeletion(ctx, workspaceID, folderID)
	if err != nil {
		return DeleteResult{Err: err}
	}
	return w.DeleteItems(ctx, workspaceID, plan.All())
}

// DeleteWorkspace destroys a workspace through the registry cascade and
// cleans up its feature partitions. Returns false when the registry
// refuses (unknown id or last remaining workspace).
func (w *Workbench) DeleteWorkspace(ctx context.Context, id string) (bool, error) {
	// File ids must be collected before the cascade removes the records.
	items, err := w.items.ListItems(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete workspace: %w", err)
	}
	fileIDs := make([]string, 0, len(items))
	for _, item := range items {
		if item.ItemKind() == workspace.KindFile {
			fileIDs = append(fileIDs, item.ItemID())
		}
	}

	deleted, err := w.registry.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	if err := w.study.Clear(ctx, id); err != nil {
		return true, fmt.Errorf("delete workspace: %w", err)
	}
	for _, fileID := range fileIDs {
		if err := w.DeleteCSVPrefs(ctx, fileID); err != nil {
			return true, fmt.Errorf("delete workspace: %w", err)
		}
	}

	w.logger.Info("deleted workspace",
		logging.String(logging.FieldWorkspaceID, id),
		logging.Int("files", len(fileIDs)))
	return true, nil
}

// pruneTabs closes the deleted ids in the workspace's tab state. A state
// that never existed and did not change is left unwritten.
func (w *Workbench) pruneTabs(ctx context.Context, workspaceID string, deleted []string) error {
	state, err := w.tabs.Get(ctx, workspaceID)
	if err != nil {
		return err
	}
	next := state.CloseMany(deleted)
	if len(next.OpenTabIDs) == len(state.OpenTabIDs) {
		return nil
	}
	return w.tabs.Set(ctx, workspaceID, next)
}
