package main

import (
	"context"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"carrel/internal/config"
	"carrel/internal/logging"
	"carrel/internal/migrate"
	"carrel/internal/store"
	"carrel/internal/workbench"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withWorkbench opens the store, runs the schema migration, and hands a
// ready workbench to fn. The store (and its process lock) is released when
// fn returns, so each invocation is one short critical section.
func (c *commandContext) withWorkbench(cmd *cobra.Command, fn func(context.Context, *workbench.Workbench) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := migrate.Run(ctx, st, cfg.Workspace.DefaultName, logger); err != nil {
		return err
	}
	return fn(ctx, workbench.New(st, logger))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
