package migrate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"carrel/internal/logging"
	"carrel/internal/registry"
	"carrel/internal/store"
	"carrel/internal/tabs"
)

// SettingSchemaVersion is the settings key holding the logical schema
// version marker. It is written only after every migration step has
// completed, so a crash mid-migration re-runs from scratch.
const SettingSchemaVersion = "workspaceSchemaVersion"

// CurrentVersion is the multi-workspace schema version.
const CurrentVersion = 2

// LegacyTabsKey is the fixed key of the pre-multi-workspace tab record.
// Per-workspace keys are derived as "tabs_<uuid>", so the bare key cannot
// collide.
const LegacyTabsKey = "tabs"

// Run upgrades a single-workspace store to the multi-workspace layout. It
// is meant to be called on every application start, before the registry is
// first read. Every step is idempotent and the version marker is written
// last.
func Run(ctx context.Context, st *store.Store, defaultName string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewNop()
	}

	version, err := readVersion(ctx, st)
	if err != nil {
		return err
	}
	if version >= CurrentVersion {
		return nil
	}

	reg := registry.NewRepository(st)
	list, err := reg.List(ctx)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if len(list) > 0 {
		// Populated registry written before the marker existed. Nothing to
		// rewrite; just record the version.
		logger.Info("backfilling schema version marker", logging.Int("workspaces", len(list)))
		return writeVersion(ctx, st)
	}

	now := time.Now().UnixMilli()
	meta := registry.Meta{
		ID:        registry.DefaultWorkspaceID,
		Name:      defaultName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := reg.Seed(ctx, []registry.Meta{meta}); err != nil {
		return fmt.Errorf("migrate: seed default workspace: %w", err)
	}
	logger.Info("created default workspace", logging.String("workspace_id", meta.ID), logging.String("name", meta.Name))

	rewritten, err := scopeLegacyItems(ctx, st, meta.ID)
	if err != nil {
		return err
	}
	if rewritten > 0 {
		logger.Info("scoped legacy items to default workspace", logging.Int("items", rewritten))
	}

	moved, err := carryLegacyTabs(ctx, st, meta.ID)
	if err != nil {
		return err
	}
	if moved {
		logger.Info("carried legacy tab state forward")
	}

	return writeVersion(ctx, st)
}

// scopeLegacyItems rewrites every workspace record lacking a workspaceId.
// Records are round-tripped through a generic map so fields this version
// does not model survive the rewrite.
func scopeLegacyItems(ctx context.Context, st *store.Store, workspaceID string) (int, error) {
	payloads, err := st.GetByWorkspace(ctx, store.Workspaces, nil)
	if err != nil {
		return 0, fmt.Errorf("migrate: list unscoped items: %w", err)
	}

	rewritten := 0
	for _, payload := range payloads {
		var record map[string]any
		if err := json.Unmarshal(payload, &record); err != nil {
			return rewritten, fmt.Errorf("migrate: decode legacy item: %w", err)
		}
		id, _ := record["id"].(string)
		if id == "" {
			// A record without an id can never be addressed again; leave it.
			continue
		}
		record["workspaceId"] = workspaceID
		updated, err := json.Marshal(record)
		if err != nil {
			return rewritten, fmt.Errorf("migrate: encode legacy item: %w", err)
		}
		if err := st.Put(ctx, store.Workspaces, id, updated); err != nil {
			return rewritten, fmt.Errorf("migrate: rewrite legacy item: %w", err)
		}
		rewritten++
	}
	return rewritten, nil
}

// carryLegacyTabs moves the single pre-migration tab record to the default
// workspace's derived key and deletes the legacy record. Malformed legacy
// payloads are dropped rather than carried forward.
func carryLegacyTabs(ctx context.Context, st *store.Store, workspaceID string) (bool, error) {
	payload, err := st.Get(ctx, store.Tabs, LegacyTabsKey)
	if err != nil {
		return false, fmt.Errorf("migrate: read legacy tabs: %w", err)
	}
	if payload == nil {
		return false, nil
	}

	var legacy struct {
		OpenTabIDs  []string `json:"openTabIds"`
		ActiveTabID *string  `json:"activeTabId"`
	}
	carried := false
	if err := json.Unmarshal(payload, &legacy); err == nil {
		state := tabs.Default(workspaceID)
		state.OpenTabIDs = append(state.OpenTabIDs, legacy.OpenTabIDs...)
		state.ActiveTabID = legacy.ActiveTabID
		if err := tabs.NewRepository(st).Set(ctx, workspaceID, state); err != nil {
			return false, fmt.Errorf("migrate: carry tabs forward: %w", err)
		}
		carried = true
	}
	if err := st.Delete(ctx, store.Tabs, LegacyTabsKey); err != nil {
		return carried, fmt.Errorf("migrate: delete legacy tabs: %w", err)
	}
	return carried, nil
}

func readVersion(ctx context.Context, st *store.Store) (int, error) {
	value, ok, err := st.Setting(ctx, SettingSchemaVersion)
	if err != nil {
		return 0, fmt.Errorf("migrate: read schema version: %w", err)
	}
	if !ok {
		return 0, nil
	}
	version, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("migrate: schema version %q is not a number", value)
	}
	return version, nil
}

func writeVersion(ctx context.Context, st *store.Store) error {
	if err := st.PutSetting(ctx, SettingSchemaVersion, strconv.Itoa(CurrentVersion)); err != nil {
		return fmt.Errorf("migrate: record schema version: %w", err)
	}
	return nil
}
