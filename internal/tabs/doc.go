// Package tabs tracks which items are open and which is active, per
// workspace, surviving restarts.
//
// State transitions are pure functions on a value type; the repository
// only loads and stores whole records. Open-tab ids are not validated
// against the workspace tree at write time; callers prune ids of deleted
// items via CloseMany.
package tabs
