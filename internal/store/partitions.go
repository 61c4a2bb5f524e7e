package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Partition names an independent record namespace in the store.
type Partition struct {
	table   string
	indexed bool
}

// Name returns the partition's table name, for diagnostics.
func (p Partition) Name() string { return p.table }

var (
	// Workspaces holds every folder and file record across all workspaces,
	// keyed by item id, with a secondary lookup by workspace id.
	Workspaces = Partition{table: "workspace_items", indexed: true}
	// Tabs holds one open-tab record per workspace.
	Tabs = Partition{table: "tab_state"}
	// Study holds one flashcard deck record per workspace.
	Study = Partition{table: "study_decks"}
	// CSVPrefs holds per-file CSV display preferences keyed by file id.
	CSVPrefs = Partition{table: "csv_prefs"}
)

// Get returns the payload stored under key, or nil when the key is absent.
// A missing key is not an error.
func (s *Store) Get(ctx context.Context, p Partition, key string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM `+p.table+` WHERE key = ?`, key)
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s record: %w", p.table, err)
	}
	return payload, nil
}

// GetAll returns every payload in the partition in storage order.
func (s *Store) GetAll(ctx context.Context, p Partition) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM `+p.table)
	if err != nil {
		return nil, fmt.Errorf("list %s records: %w", p.table, err)
	}
	defer rows.Close()

	var payloads [][]byte
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan %s record: %w", p.table, err)
		}
		payloads = append(payloads, payload)
	}
	return payloads, rows.Err()
}

// GetByWorkspace returns every payload whose extracted workspace id equals
// workspaceID. A nil workspaceID matches records whose payload carried no
// workspace id when written (pre-migration records). Only partitions with a
// workspace index support this query.
func (s *Store) GetByWorkspace(ctx context.Context, p Partition, workspaceID *string) ([][]byte, error) {
	if !p.indexed {
		return nil, fmt.Errorf("partition %s has no workspace index", p.table)
	}

	var (
		rows *sql.Rows
		err  error
	)
	if workspaceID == nil {
		rows, err = s.db.QueryContext(ctx, `SELECT payload FROM `+p.table+` WHERE workspace_id IS NULL`)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT payload FROM `+p.table+` WHERE workspace_id = ?`, *workspaceID)
	}
	if err != nil {
		return nil, fmt.Errorf("query %s by workspace: %w", p.table, err)
	}
	defer rows.Close()

	var payloads [][]byte
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan %s record: %w", p.table, err)
		}
		payloads = append(payloads, payload)
	}
	return payloads, rows.Err()
}

// Put inserts or fully replaces the record under key. For indexed
// partitions the workspace id is extracted from the payload; payloads
// without the field store NULL and stay invisible to indexed queries.
func (s *Store) Put(ctx context.Context, p Partition, key string, payload []byte) error {
	if p.indexed {
		_, err := s.db.ExecContext(
			ctx,
			`INSERT INTO `+p.table+` (key, workspace_id, payload) VALUES (?, ?, ?)
             ON CONFLICT(key) DO UPDATE SET workspace_id = excluded.workspace_id, payload = excluded.payload`,
			key,
			extractWorkspaceID(payload),
			payload,
		)
		if err != nil {
			return fmt.Errorf("put %s record: %w", p.table, err)
		}
		return nil
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO `+p.table+` (key, payload) VALUES (?, ?)
         ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`,
		key,
		payload,
	)
	if err != nil {
		return fmt.Errorf("put %s record: %w", p.table, err)
	}
	return nil
}

// Delete removes the record under key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, p Partition, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM `+p.table+` WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s record: %w", p.table, err)
	}
	return nil
}

// DeleteByWorkspace removes every record in an indexed partition belonging
// to workspaceID and reports how many were removed.
func (s *Store) DeleteByWorkspace(ctx context.Context, p Partition, workspaceID string) (int64, error) {
	if !p.indexed {
		return 0, fmt.Errorf("partition %s has no workspace index", p.table)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+p.table+` WHERE workspace_id = ?`, workspaceID)
	if err != nil {
		return 0, fmt.Errorf("delete %s records by workspace: %w", p.table, err)
	}
	return res.RowsAffected()
}

func extractWorkspaceID(payload []byte) any {
	var probe struct {
		WorkspaceID *string `json:"workspaceId"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil
	}
	if probe.WorkspaceID == nil || *probe.WorkspaceID == "" {
		return nil
	}
	return *probe.WorkspaceID
}
