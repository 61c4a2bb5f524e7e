package testsupport

import (
	"path/filepath"
	"testing"

	"carrel/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithDefaultWorkspaceName overrides the bootstrap workspace name.
func WithDefaultWorkspaceName(name string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Workspace.DefaultName = name
	}
}
