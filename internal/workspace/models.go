package workspace

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind discriminates the two workspace item variants.
type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
)

// FileType identifies how a file's content field is encoded and rendered.
// Binary formats (docx, pdf) carry base64-encoded content; the rest carry
// plain text.
type FileType string

const (
	FileTypeText    FileType = "text"
	FileTypeCSV     FileType = "csv"
	FileTypeDocx    FileType = "docx"
	FileTypePDF     FileType = "pdf"
	FileTypeSpotify FileType = "spotify"
)

var fileTypeSet = map[FileType]struct{}{
	FileTypeText:    {},
	FileTypeCSV:     {},
	FileTypeDocx:    {},
	FileTypePDF:     {},
	FileTypeSpotify: {},
}

// ParseFileType converts a string into a known FileType.
func ParseFileType(value string) (FileType, bool) {
	normalized := FileType(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := fileTypeSet[normalized]
	return normalized, ok
}

// IsBinary reports whether content for this file type is base64-encoded.
func (t FileType) IsBinary() bool {
	return t == FileTypeDocx || t == FileTypePDF
}

// Folder is a container node in a workspace tree. A nil ParentID means the
// folder sits at the workspace root.
type Folder struct {
	ID          string  `json:"id"`
	Kind        Kind    `json:"kind"`
	Name        string  `json:"name"`
	ParentID    *string `json:"parentId"`
	WorkspaceID string  `json:"workspaceId"`
	CreatedAt   int64   `json:"createdAt"`
}

// File is a leaf node in a workspace tree. A nil FolderID means the file
// sits at the workspace root. Content is opaque to this package: plain
// text or base64 depending on FileType.
type File struct {
	ID          string   `json:"id"`
	Kind        Kind     `json:"kind"`
	FolderID    *string  `json:"folderId"`
	Name        string   `json:"name"`
	FileType    FileType `json:"fileType"`
	Content     string   `json:"content"`
	WorkspaceID string   `json:"workspaceId"`
	CreatedAt   int64    `json:"createdAt"`
	Size        *int64   `json:"size,omitempty"`
	UpdatedAt   *int64   `json:"updatedAt,omitempty"`
}

// Item is the polymorphic view over Folder and File records.
type Item interface {
	ItemID() string
	ItemKind() Kind
	ItemName() string
	// Parent returns the containing folder id (nil at workspace root).
	Parent() *string
	Workspace() string
}

func (f *Folder) ItemID() string    { return f.ID }
func (f *Folder) ItemKind() Kind    { return KindFolder }
func (f *Folder) ItemName() string  { return f.Name }
func (f *Folder) Parent() *string   { return f.ParentID }
func (f *Folder) Workspace() string { return f.WorkspaceID }

func (f *File) ItemID() string    { return f.ID }
func (f *File) ItemKind() Kind    { return KindFile }
func (f *File) ItemName() string  { return f.Name }
func (f *File) Parent() *string   { return f.FolderID }
func (f *File) Workspace() string { return f.WorkspaceID }

// DecodeItem unmarshals a persisted record into its concrete variant.
func DecodeItem(payload []byte) (Item, error) {
	var probe struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("decode item kind: %w", err)
	}
	switch probe.Kind {
	case KindFolder:
		var folder Folder
		if err := json.Unmarshal(payload, &folder); err != nil {
			return nil, fmt.Errorf("decode folder: %w", err)
		}
		return &folder, nil
	case KindFile:
		var file File
		if err := json.Unmarshal(payload, &file); err != nil {
			return nil, fmt.Errorf("decode file: %w", err)
		}
		return &file, nil
	default:
		return nil, fmt.Errorf("unknown item kind %q", probe.Kind)
	}
}

// EncodeItem marshals an item into its persisted record form.
func EncodeItem(item Item) ([]byte, error) {
	payload, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", item.ItemKind(), err)
	}
	return payload, nil
}
