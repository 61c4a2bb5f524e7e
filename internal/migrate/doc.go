// Package migrate upgrades a single-workspace store to the multi-workspace
// layout.
//
// The original layout had items without a workspaceId and one unscoped tab
// record. Run rewrites both into the current shape under a fixed default
// workspace. Idempotence is guarded by a schema-version settings marker
// written after all steps complete, not by registry non-emptiness alone,
// so a crash partway through re-runs the whole migration instead of
// stranding unscoped items.
package migrate
