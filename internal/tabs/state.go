package tabs

// State is the persisted open-tab record for one workspace. OpenTabIDs
// preserves insertion order: the most recently opened tab sits at the end.
type State struct {
	ID          string   `json:"id"`
	OpenTabIDs  []string `json:"openTabIds"`
	ActiveTabID *string  `json:"activeTabId"`
}

// DeriveID returns the deterministic record key for a workspace's tab
// state. Workspace ids are opaque UUIDs, so the concatenation cannot
// collide with another workspace's key.
func DeriveID(workspaceID string) string {
	return "tabs_" + workspaceID
}

// Default returns the lazily-created empty state for a workspace.
func Default(workspaceID string) State {
	return State{ID: DeriveID(workspaceID), OpenTabIDs: []string{}}
}

// Open appends the tab to the sequence (if not already open) and makes it
// active. Re-opening an already-open tab only activates it.
func (s State) Open(id string) State {
	next := s.clone()
	if indexOf(next.OpenTabIDs, id) < 0 {
		next.OpenTabIDs = append(next.OpenTabIDs, id)
	}
	next.ActiveTabID = &id
	return next
}

// Activate marks an open tab active without reordering the sequence.
// Activating a tab that is not open is a no-op.
func (s State) Activate(id string) State {
	if indexOf(s.OpenTabIDs, id) < 0 {
		return s
	}
	next := s.clone()
	next.ActiveTabID = &id
	return next
}

// Close removes one tab without reordering the rest. When the active tab
// is closed, the new active tab is the one that slides into its former
// index; if none does (it was last), the new last tab; if the sequence is
// now empty, nil. Closing a non-active tab leaves the active tab alone.
func (s State) Close(id string) State {
	idx := indexOf(s.OpenTabIDs, id)
	if idx < 0 {
		return s
	}

	next := s.clone()
	next.OpenTabIDs = append(next.OpenTabIDs[:idx], next.OpenTabIDs[idx+1:]...)

	if s.ActiveTabID == nil || *s.ActiveTabID != id {
		return next
	}
	switch {
	case len(next.OpenTabIDs) == 0:
		next.ActiveTabID = nil
	case idx < len(next.OpenTabIDs):
		next.ActiveTabID = &next.OpenTabIDs[idx]
	default:
		next.ActiveTabID = &next.OpenTabIDs[len(next.OpenTabIDs)-1]
	}
	return next
}

// CloseMany removes a set of tabs in bulk (typically because their backing
// items were deleted). If the active tab is among them, the new active tab
// is the first remaining open tab, or nil when none remain.
func (s State) CloseMany(ids []string) State {
	if len(ids) == 0 {
		return s
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	next := s.clone()
	kept := next.OpenTabIDs[:0]
	for _, open := range next.OpenTabIDs {
		if _, gone := drop[open]; !gone {
			kept = append(kept, open)
		}
	}
	next.OpenTabIDs = kept

	if s.ActiveTabID != nil {
		if _, gone := drop[*s.ActiveTabID]; gone {
			if len(next.OpenTabIDs) > 0 {
				next.ActiveTabID = &next.OpenTabIDs[0]
			} else {
				next.ActiveTabID = nil
			}
		}
	}
	return next
}

func (s State) clone() State {
	open := make([]string, len(s.OpenTabIDs))
	copy(open, s.OpenTabIDs)
	cloned := State{ID: s.ID, OpenTabIDs: open}
	if s.ActiveTabID != nil {
		active := *s.ActiveTabID
		cloned.ActiveTabID = &active
	}
	return cloned
}

func indexOf(ids []string, id string) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}
