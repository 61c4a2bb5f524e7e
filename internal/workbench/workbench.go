package workbench

import (
	"log/slog"

	"carrel/internal/logging"
	"carrel/internal/registry"
	"carrel/internal/store"
	"carrel/internal/study"
	"carrel/internal/tabs"
	"carrel/internal/workspace"
)

// Workbench coordinates operations that span repositories: recursive
// deletion, workspace destruction with feature cleanup, file transfer, and
// tree rendering. Repositories stay single-purpose; cross-cutting
// integrity lives here.
type Workbench struct {
	store    *store.Store
	items    *workspace.Repository
	tabs     *tabs.Repository
	registry *registry.Repository
	study    *study.Repository
	logger   *slog.Logger
}

// New constructs a workbench over the shared store. A nil logger is
// replaced with a no-op logger.
func New(st *store.Store, logger *slog.Logger) *Workbench {
	return &Workbench{
		store:    st,
		items:    workspace.NewRepository(st),
		tabs:     tabs.NewRepository(st),
		registry: registry.NewRepository(st),
		study:    study.NewRepository(st),
		logger:   logging.NewComponentLogger(logger, "workbench"),
	}
}

// Store exposes the underlying store for health checks.
func (w *Workbench) Store() *store.Store { return w.store }

// Items exposes the underlying item repository for single-record reads.
func (w *Workbench) Items() *workspace.Repository { return w.items }

// Tabs exposes the underlying tab repository.
func (w *Workbench) Tabs() *tabs.Repository { return w.tabs }

// Registry exposes the underlying workspace registry.
func (w *Workbench) Registry() *registry.Repository { return w.registry }

// Study exposes the underlying flashcard repository.
func (w *Workbench) Study() *study.Repository { return w.study }
