package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"carrel/internal/workbench"
)

func newStudyCommand(ctx *commandContext) *cobra.Command {
	studyCmd := &cobra.Command{
		Use:   "study",
		Short: "Manage the workspace's flashcard deck",
	}

	studyCmd.AddCommand(newStudyListCommand(ctx))
	studyCmd.AddCommand(newStudyAddCommand(ctx))
	studyCmd.AddCommand(newStudyRemoveCommand(ctx))
	studyCmd.AddCommand(newStudyReviewCommand(ctx))

	return studyCmd
}

func newStudyListCommand(cctx *commandContext) *cobra.Command {
	var workspaceFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List flashcards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				wsID, err := resolveWorkspace(ctx, wb, workspaceFlag)
				if err != nil {
					return err
				}
				deck, err := wb.Study().Get(ctx, wsID)
				if err != nil {
					return err
				}

				if jsonOutput {
					return writeJSON(cmd, deck)
				}

				rows := make([][]string, 0, len(deck.Cards))
				for _, card := range deck.Cards {
					rows = append(rows, []string{
						card.ID,
						card.Front,
						card.Back,
						yesNo(card.ReviewedAt != nil),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Front", "Back", "Reviewed"}, rows))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace id (defaults to the active workspace)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

func newStudyAddCommand(cctx *commandContext) *cobra.Command {
	var workspaceFlag string

	cmd := &cobra.Command{
		Use:   "add <front> <back>",
		Short: "Add a flashcard",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				wsID, err := resolveWorkspace(ctx, wb, workspaceFlag)
				if err != nil {
					return err
				}
				card, err := wb.Study().AddCard(ctx, wsID, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added card %s\n", card.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace id (defaults to the active workspace)")
	return cmd
}

func newStudyRemoveCommand(cctx *commandContext) *cobra.Command {
	var workspaceFlag string

	cmd := &cobra.Command{
		Use:   "remove <card-id>",
		Short: "Remove a flashcard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				wsID, err := resolveWorkspace(ctx, wb, workspaceFlag)
				if err != nil {
					return err
				}
				removed, err := wb.Study().RemoveCard(ctx, wsID, args[0])
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("unknown card %q", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed card %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace id (defaults to the active workspace)")
	return cmd
}

func newStudyReviewCommand(cctx *commandContext) *cobra.Command {
	var workspaceFlag string

	cmd := &cobra.Command{
		Use:   "review <card-id>",
		Short: "Mark a flashcard as reviewed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				wsID, err := resolveWorkspace(ctx, wb, workspaceFlag)
				if err != nil {
					return err
				}
				marked, err := wb.Study().MarkReviewed(ctx, wsID, args[0])
				if err != nil {
					return err
				}
				if !marked {
					return fmt.Errorf("unknown card %q", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reviewed card %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace id (defaults to the active workspace)")
	return cmd
}
