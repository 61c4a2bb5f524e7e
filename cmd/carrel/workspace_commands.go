package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"carrel/internal/workbench"
)

func newWorkspaceCommand(ctx *commandContext) *cobra.Command {
	workspaceCmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Manage workspaces",
	}

	workspaceCmd.AddCommand(newWorkspaceListCommand(ctx))
	workspaceCmd.AddCommand(newWorkspaceCreateCommand(ctx))
	workspaceCmd.AddCommand(newWorkspaceRenameCommand(ctx))
	workspaceCmd.AddCommand(newWorkspaceDeleteCommand(ctx))
	workspaceCmd.AddCommand(newWorkspaceUseCommand(ctx))

	return workspaceCmd
}

func newWorkspaceListCommand(cctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				list, err := wb.Registry().List(ctx)
				if err != nil {
					return err
				}
				active, err := wb.Registry().Active(ctx)
				if err != nil {
					return err
				}

				if jsonOutput {
					return writeJSON(cmd, map[string]any{
						"workspaces":        list,
						"activeWorkspaceId": active,
					})
				}

				rows := make([][]string, 0, len(list))
				for _, meta := range list {
					marker := ""
					if meta.ID == active {
						marker = "*"
					}
					rows = append(rows, []string{
						marker,
						meta.ID,
						meta.Name,
						formatMillis(meta.CreatedAt),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"", "ID", "Name", "Created"}, rows))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

func newWorkspaceCreateCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a workspace and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				id, err := wb.Registry().Create(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created workspace %s (%s)\n", args[0], id)
				return nil
			})
		},
	}
}

func newWorkspaceRenameCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a workspace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				meta, err := wb.Registry().Get(ctx, args[0])
				if err != nil {
					return err
				}
				if meta == nil {
					return fmt.Errorf("unknown workspace %q", args[0])
				}
				if err := wb.Registry().Rename(ctx, args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed workspace %s to %s\n", args[0], args[1])
				return nil
			})
		},
	}
}

func newWorkspaceDeleteCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a workspace and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				deleted, err := wb.DeleteWorkspace(ctx, args[0])
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("workspace %s was not deleted: it is unknown or the last one remaining", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted workspace %s\n", args[0])
				return nil
			})
		},
	}
}

func newWorkspaceUseCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Switch the active workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				meta, err := wb.Registry().Get(ctx, args[0])
				if err != nil {
					return err
				}
				if meta == nil {
					return fmt.Errorf("unknown workspace %q", args[0])
				}
				if err := wb.Registry().SetActive(ctx, meta.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Now using workspace %s (%s)\n", meta.Name, meta.ID)
				return nil
			})
		},
	}
}
