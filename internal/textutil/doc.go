// Package textutil sanitizes user-supplied item names for filesystem use.
// Workspace item names are free-form text; anything written to disk goes
// through here first.
package textutil
