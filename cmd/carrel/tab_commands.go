package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"carrel/internal/workbench"
)

func newTabsCommand(ctx *commandContext) *cobra.Command {
	tabsCmd := &cobra.Command{
		Use:   "tabs",
		Short: "Manage the workspace's open tabs",
	}

	tabsCmd.AddCommand(newTabsListCommand(ctx))
	tabsCmd.AddCommand(newTabsOpenCommand(ctx))
	tabsCmd.AddCommand(newTabsCloseCommand(ctx))
	tabsCmd.AddCommand(newTabsActivateCommand(ctx))

	return tabsCmd
}

func newTabsListCommand(cctx *commandContext) *cobra.Command {
	var workspaceFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show open tabs in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				wsID, err := resolveWorkspace(ctx, wb, workspaceFlag)
				if err != nil {
					return err
				}
				state, err := wb.Tabs().Get(ctx, wsID)
				if err != nil {
					return err
				}

				if jsonOutput {
					return writeJSON(cmd, state)
				}

				rows := make([][]string, 0, len(state.OpenTabIDs))
				for _, id := range state.OpenTabIDs {
					name := "(deleted)"
					item, err := wb.Items().GetItem(ctx, id)
					if err != nil {
						return err
					}
					if item != nil {
						name = item.ItemName()
					}
					active := ""
					if state.ActiveTabID != nil && *state.ActiveTabID == id {
						active = "*"
					}
					rows = append(rows, []string{active, id, name})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"", "Tab", "Name"}, rows))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace id (defaults to the active workspace)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

func newTabsOpenCommand(cctx *commandContext) *cobra.Command {
	var workspaceFlag string

	cmd := &cobra.Command{
		Use:   "open <file-id>",
		Short: "Open a file in a tab and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				wsID, err := resolveWorkspace(ctx, wb, workspaceFlag)
				if err != nil {
					return err
				}
				file, err := requireFile(ctx, wb, args[0])
				if err != nil {
					return err
				}
				state, err := wb.Tabs().Get(ctx, wsID)
				if err != nil {
					return err
				}
				if err := wb.Tabs().Set(ctx, wsID, state.Open(file.ID)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", file.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace id (defaults to the active workspace)")
	return cmd
}

func newTabsCloseCommand(cctx *commandContext) *cobra.Command {
	var workspaceFlag string

	cmd := &cobra.Command{
		Use:   "close <file-id>",
		Short: "Close an open tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				wsID, err := resolveWorkspace(ctx, wb, workspaceFlag)
				if err != nil {
					return err
				}
				state, err := wb.Tabs().Get(ctx, wsID)
				if err != nil {
					return err
				}
				if err := wb.Tabs().Set(ctx, wsID, state.Close(args[0])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Closed %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace id (defaults to the active workspace)")
	return cmd
}

func newTabsActivateCommand(cctx *commandContext) *cobra.Command {
	var workspaceFlag string

	cmd := &cobra.Command{
		Use:   "activate <file-id>",
		Short: "Make an open tab active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				wsID, err := resolveWorkspace(ctx, wb, workspaceFlag)
				if err != nil {
					return err
				}
				state, err := wb.Tabs().Get(ctx, wsID)
				if err != nil {
					return err
				}
				next := state.Activate(args[0])
				if next.ActiveTabID == nil || *next.ActiveTabID != args[0] {
					return fmt.Errorf("tab %q is not open", args[0])
				}
				if err := wb.Tabs().Set(ctx, wsID, next); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Activated %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace id (defaults to the active workspace)")
	return cmd
}
