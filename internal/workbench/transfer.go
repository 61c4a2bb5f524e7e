package workbench

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"carrel/internal/logging"
	"carrel/internal/textutil"
	"carrel/internal/workspace"
)

// InferFileType maps a filename extension to a stored file type. Unknown
// extensions are treated as plain text.
func InferFileType(name string) workspace.FileType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return workspace.FileTypeCSV
	case ".docx":
		return workspace.FileTypeDocx
	case ".pdf":
		return workspace.FileTypePDF
	default:
		return workspace.FileTypeText
	}
}

// ImportFile reads a file from disk into the workspace. Binary formats are
// base64-encoded for storage; everything else is stored verbatim. Returns
// the new item's id.
func (w *Workbench) ImportFile(ctx context.Context, workspaceID string, folderID *string, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("import file: %w", err)
	}

	name := filepath.Base(path)
	fileType := InferFileType(name)
	content := string(raw)
	if fileType.IsBinary() {
		content = base64.StdEncoding.EncodeToString(raw)
	}

	id, err := w.items.CreateFile(ctx, workspaceID, folderID, name, fileType, content, int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("import file: %w", err)
	}
	w.logger.Info("imported file",
		logging.String(logging.FieldWorkspaceID, workspaceID),
		logging.String(logging.FieldItemID, id),
		logging.String(logging.FieldFileType, string(fileType)),
		logging.Int(logging.FieldCount, len(raw)))
	return id, nil
}

// ExportFile writes a stored file's content to disk. When the destination
// is an existing directory the stored name is used inside it. Binary
// content is base64-decoded on the way out.
func (w *Workbench) ExportFile(ctx context.Context, fileID, dest string) (string, error) {
	item, err := w.items.GetItem(ctx, fileID)
	if err != nil {
		return "", fmt.Errorf("export file: %w", err)
	}
	file, ok := item.(*workspace.File)
	if !ok {
		return "", fmt.Errorf("export file: %s is not a file", fileID)
	}

	raw := []byte(file.Content)
	if file.FileType.IsBinary() {
		raw, err = base64.StdEncoding.DecodeString(file.Content)
		if err != nil {
			return "", fmt.Errorf("export file: decode content: %w", err)
		}
	}

	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, textutil.SanitizeFileName(file.Name))
	}
	if err := os.WriteFile(dest, raw, 0o644); err != nil {
		return "", fmt.Errorf("export file: %w", err)
	}
	w.logger.Info("exported file",
		logging.String(logging.FieldItemID, fileID),
		logging.String(logging.FieldPath, dest))
	return dest, nil
}
