// Package workspace persists the folder/file tree of each workspace.
//
// The tree is a flat arena: every item carries a nullable parent reference
// and hierarchy is reconstructed by filtering, never by nesting. Items are
// unique by id across all workspaces; every scoped query goes through the
// store's workspace index. Missing ids read as nil and mutate as silent
// no-ops, which keeps operations idempotent under repeated or racing calls.
//
// Parent references are deliberately unvalidated at this layer. Cascade
// deletion, cross-store pruning, and integrity checks belong to the
// workbench facade.
package workspace
