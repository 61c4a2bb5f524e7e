package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"carrel/internal/workbench"
	"carrel/internal/workspace"
)

// resolveWorkspace picks the target workspace for a command: the explicit
// --workspace value when given, otherwise the active workspace.
func resolveWorkspace(ctx context.Context, wb *workbench.Workbench, flag string) (string, error) {
	if flag != "" {
		meta, err := wb.Registry().Get(ctx, flag)
		if err != nil {
			return "", err
		}
		if meta == nil {
			return "", fmt.Errorf("unknown workspace %q", flag)
		}
		return meta.ID, nil
	}
	active, err := wb.Registry().Active(ctx)
	if err != nil {
		return "", err
	}
	if active == "" {
		return "", fmt.Errorf("no workspaces exist yet")
	}
	return active, nil
}

// requireFile resolves an item id to a file record.
func requireFile(ctx context.Context, wb *workbench.Workbench, id string) (*workspace.File, error) {
	item, err := wb.Items().GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("unknown item %q", id)
	}
	file, ok := item.(*workspace.File)
	if !ok {
		return nil, fmt.Errorf("item %q is a folder, not a file", id)
	}
	return file, nil
}

func formatMillis(millis int64) string {
	if millis == 0 {
		return "-"
	}
	return time.UnixMilli(millis).Local().Format("2006-01-02 15:04")
}

func derefOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}

func formatSize(size *int64) string {
	if size == nil {
		return "-"
	}
	return strconv.FormatInt(*size, 10)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
