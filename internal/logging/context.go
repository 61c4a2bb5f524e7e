package logging

// Standardized attribute keys used across components.
const (
	FieldComponent   = "component"
	FieldWorkspaceID = "workspace_id"
	FieldItemID      = "item_id"
	FieldItemKind    = "item_kind"
	FieldFileType    = "file_type"
	FieldPath        = "path"
	FieldCount       = "count"
)
