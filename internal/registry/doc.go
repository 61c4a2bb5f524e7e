// Package registry owns the workspace list and the active-workspace
// pointer.
//
// The list is an ordered JSON array in the settings partition; the active
// pointer is a separate settings key so it survives restarts
// independently. The registry must never become empty: deleting the last
// remaining workspace is refused before any destructive action. Deleting
// any other workspace cascades through the item and tab repositories.
package registry
