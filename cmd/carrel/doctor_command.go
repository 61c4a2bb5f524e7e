package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"carrel/internal/workbench"
)

type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func newDoctorCommand(cctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the store's health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench) error {
				health, err := wb.Store().CheckHealth(ctx)
				if err != nil {
					return err
				}

				if jsonOutput {
					return writeJSON(cmd, health)
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)

				fmt.Fprintf(out, "Database: %s\n", health.DBPath)
				printStatus(out, "exists", boolStatus(health.DatabaseExists), "", colorize)
				printStatus(out, "readable", boolStatus(health.DatabaseReadable), "", colorize)
				printStatus(out, "integrity", boolStatus(health.IntegrityCheck), "", colorize)
				if len(health.MissingTables) > 0 {
					printStatus(out, "tables", statusError,
						"missing "+strings.Join(health.MissingTables, ", "), colorize)
				} else {
					printStatus(out, "tables", statusOK,
						strconv.Itoa(len(health.TablesPresent))+" present", colorize)
				}
				printStatus(out, "items", statusOK, strconv.Itoa(health.ItemCount), colorize)
				if health.Error != "" {
					printStatus(out, "error", statusError, health.Error, colorize)
					return fmt.Errorf("store is unhealthy")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

func boolStatus(ok bool) statusKind {
	if ok {
		return statusOK
	}
	return statusError
}

func printStatus(out io.Writer, label string, kind statusKind, message string, colorize bool) {
	text := fmt.Sprintf("  %-12s [%s]", label+":", statusLabel(kind))
	if message != "" {
		text += " " + message
	}
	if colorize {
		if color := statusColor(kind); color != "" {
			text = color + text + ansiReset
		}
	}
	fmt.Fprintln(out, text)
}

func statusLabel(kind statusKind) string {
	switch kind {
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "OK"
	}
}

func statusColor(kind statusKind) string {
	switch kind {
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	default:
		return ansiGreen
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
