package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"carrel/internal/workbench"
	"carrel/internal/workspace"
)

func newListCommand(cctx *commandContext) *cobra.Command {
	var workspaceFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "ls [folder-id]",
		Short: "List items in the workspace root or a folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				wsID, err := resolveWorkspace(ctx, wb, workspaceFlag)
				if err != nil {
					return err
				}
				items, err := wb.Items().ListItems(ctx, wsID)
				if err != nil {
					return err
				}

				var parent *string
				if len(args) == 1 {
					parent = &args[0]
				}
				selected := make([]workspace.Item, 0, len(items))
				for _, item := range items {
					itemParent := item.Parent()
					switch {
					case parent == nil && itemParent == nil:
						selected = append(selected, item)
					case parent != nil && itemParent != nil && *parent == *itemParent:
						selected = append(selected, item)
					}
				}

				if jsonOutput {
					return writeJSON(cmd, selected)
				}

				rows := make([][]string, 0, len(selected))
				for _, item := range selected {
					kind := string(item.ItemKind())
					fileType := "-"
					size := "-"
					if file, ok := item.(*workspace.File); ok {
						fileType = string(file.FileType)
						size = formatSize(file.Size)
					}
					rows = append(rows, []string{item.ItemID(), kind, item.ItemName(), fileType, size})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Kind", "Name", "Type", "Size"}, rows, 5))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace id (defaults to the active workspace)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

func newTreeCommand(cctx *commandContext) *cobra.Command {
	var workspaceFlag string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the workspace's folder tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				wsID, err := resolveWorkspace(ctx, wb, workspaceFlag)
				if err != nil {
					return err
				}
				roots, err := wb.TreeView(ctx, wsID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(roots) == 0 {
					fmt.Fprintln(out, "(empty workspace)")
					return nil
				}
				for _, node := range roots {
					printTree(out, node, 0)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace id (defaults to the active workspace)")
	return cmd
}

func printTree(out io.Writer, node *workbench.TreeNode, depth int) {
	indent := strings.Repeat("  ", depth)
	name := node.Item.ItemName()
	if node.Item.ItemKind() == workspace.KindFolder {
		fmt.Fprintf(out, "%s%s/  [%s]\n", indent, name, node.Item.ItemID())
	} else {
		fmt.Fprintf(out, "%s%s  [%s]\n", indent, name, node.Item.ItemID())
	}
	for _, child := range node.Children {
		printTree(out, child, depth+1)
	}
}

func newMkdirCommand(cctx *commandContext) *cobra.Command {
	var workspaceFlag string
	var parentFlag string

	cmd := &cobra.Command{
		Use:   "mkdir <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				wsID, err := resolveWorkspace(ctx, wb, workspaceFlag)
				if err != nil {
					return err
				}
				var parent *string
				if parentFlag != "" {
					item, err := wb.Items().GetItem(ctx, parentFlag)
					if err != nil {
						return err
					}
					if _, ok := item.(*workspace.Folder); !ok {
						return fmt.Errorf("parent %q is not a folder", parentFlag)
					}
					parent = &parentFlag
				}
				id, err := wb.Items().CreateFolder(ctx, wsID, parent, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created folder %s (%s)\n", args[0], id)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace id (defaults to the active workspace)")
	cmd.Flags().StringVarP(&parentFlag, "parent", "p", "", "Parent folder id (defaults to the workspace root)")
	return cmd
}

func newImportCommand(cctx *commandContext) *cobra.Command {
	var workspaceFlag string
	var folderFlag string

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import a file from disk into the workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				wsID, err := resolveWorkspace(ctx, wb, workspaceFlag)
				if err != nil {
					return err
				}
				var folder *string
				if folderFlag != "" {
					folder = &folderFlag
				}
				id, err := wb.ImportFile(ctx, wsID, folder, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s as %s\n", args[0], id)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace id (defaults to the active workspace)")
	cmd.Flags().StringVarP(&folderFlag, "folder", "f", "", "Destination folder id (defaults to the workspace root)")
	return cmd
}

func newExportCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file-id> <dest>",
		Short: "Write a stored file to disk",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				written, err := wb.ExportFile(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", written)
				return nil
			})
		},
	}
}

func newCatCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <file-id>",
		Short: "Print a file's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				file, err := requireFile(ctx, wb, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if file.FileType.IsBinary() {
					raw, err := base64.StdEncoding.DecodeString(file.Content)
					if err != nil {
						return fmt.Errorf("decode content: %w", err)
					}
					_, err = out.Write(raw)
					return err
				}
				fmt.Fprint(out, file.Content)
				return nil
			})
		},
	}
}

func newRenameCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <item-id> <name>",
		Short: "Rename a file or folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				item, err := wb.Items().GetItem(ctx, args[0])
				if err != nil {
					return err
				}
				if item == nil {
					return fmt.Errorf("unknown item %q", args[0])
				}
				if err := wb.Items().Rename(ctx, args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", args[0], args[1])
				return nil
			})
		},
	}
}

func newMoveCommand(cctx *commandContext) *cobra.Command {
	var toRoot bool

	cmd := &cobra.Command{
		Use:   "mv <file-id> [folder-id]",
		Short: "Move a file into a folder or back to the root",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				var target *string
				switch {
				case toRoot:
					if len(args) == 2 {
						return fmt.Errorf("--root and a folder id are mutually exclusive")
					}
				case len(args) == 2:
					item, err := wb.Items().GetItem(ctx, args[1])
					if err != nil {
						return err
					}
					if _, ok := item.(*workspace.Folder); !ok {
						return fmt.Errorf("target %q is not a folder", args[1])
					}
					target = &args[1]
				default:
					return fmt.Errorf("a folder id or --root is required")
				}

				moved, err := wb.Items().Move(ctx, args[0], target)
				if err != nil {
					return err
				}
				if moved == nil {
					return fmt.Errorf("item %q is not a movable file", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", moved.Name, derefOr(moved.FolderID, "root"))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&toRoot, "root", false, "Move the file to the workspace root")
	return cmd
}

func newRemoveCommand(cctx *commandContext) *cobra.Command {
	var workspaceFlag string

	cmd := &cobra.Command{
		Use:   "rm <item-id>",
		Short: "Delete a file, or a folder and everything inside it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				wsID, err := resolveWorkspace(ctx, wb, workspaceFlag)
				if err != nil {
					return err
				}
				item, err := wb.Items().GetItem(ctx, args[0])
				if err != nil {
					return err
				}
				if item == nil {
					return fmt.Errorf("unknown item %q", args[0])
				}

				var result workbench.DeleteResult
				if item.ItemKind() == workspace.KindFolder {
					result = wb.DeleteFolderRecursive(ctx, wsID, args[0])
				} else {
					result = wb.DeleteItems(ctx, wsID, []string{args[0]})
				}
				if result.Err != nil {
					return fmt.Errorf("deleted %d item(s) before failing (%d left): %w",
						len(result.Deleted), len(result.Remaining), result.Err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d item(s)\n", len(result.Deleted))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace id (defaults to the active workspace)")
	return cmd
}
