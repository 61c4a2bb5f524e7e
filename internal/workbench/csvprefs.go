package workbench

import (
	"context"
	"encoding/json"
	"fmt"

	"carrel/internal/store"
)

// CSVPrefs holds per-file display preferences for CSV viewers, keyed by
// the backing file's id.
type CSVPrefs struct {
	ID           string         `json:"id"`
	Delimiter    string         `json:"delimiter"`
	HasHeader    bool           `json:"hasHeader"`
	ColumnWidths map[string]int `json:"columnWidths,omitempty"`
}

// DefaultCSVPrefs returns the preferences applied before a user customizes
// anything: comma-separated with a header row.
func DefaultCSVPrefs(fileID string) CSVPrefs {
	return CSVPrefs{ID: fileID, Delimiter: ",", HasHeader: true}
}

// GetCSVPrefs returns the preferences for a file, or the defaults when no
// record exists. The default read writes nothing.
func (w *Workbench) GetCSVPrefs(ctx context.Context, fileID string) (CSVPrefs, error) {
	payload, err := w.store.Get(ctx, store.CSVPrefs, fileID)
	if err != nil {
		return CSVPrefs{}, fmt.Errorf("get csv prefs: %w", err)
	}
	if payload == nil {
		return DefaultCSVPrefs(fileID), nil
	}
	var prefs CSVPrefs
	if err := json.Unmarshal(payload, &prefs); err != nil {
		return CSVPrefs{}, fmt.Errorf("decode csv prefs: %w", err)
	}
	return prefs, nil
}

// SetCSVPrefs replaces a file's preferences wholesale. The record id is
// forced to the file id.
func (w *Workbench) SetCSVPrefs(ctx context.Context, fileID string, prefs CSVPrefs) error {
	prefs.ID = fileID
	payload, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode csv prefs: %w", err)
	}
	if err := w.store.Put(ctx, store.CSVPrefs, fileID, payload); err != nil {
		return fmt.Errorf("set csv prefs: %w", err)
	}
	return nil
}

// DeleteCSVPrefs removes a file's preference record. Absent records are
// not an error.
func (w *Workbench) DeleteCSVPrefs(ctx context.Context, fileID string) error {
	if err := w.store.Delete(ctx, store.CSVPrefs, fileID); err != nil {
		return fmt.Errorf("delete csv prefs: %w", err)
	}
	return nil
}
