package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/sweeper/internal/config"
	"github.com/nao1215/sweeper/internal/database"
	"github.com/nao1215/sweeper/internal/model"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past cleans",
		Long: `History lists the cleans recorded in the history database, newest first.
Use --id to show the per-file outcome of one clean.

Examples:
  # List recorded cleans
  sweeper history

  # Show what happened to every file in clean 3
  sweeper history --id 3

  # Same, as Markdown
  sweeper history --id 3 --markdown`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int64P("id", "i", 0,
		"Show the removal outcomes of the clean with this ID")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (with --id, mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (with --id, mutually exclusive with --json)")
	cmd.Flags().String("data-dir", config.XDGDataDir(),
		"Directory holding the history database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()

	var err error
	if cfg.DBDir, err = cmd.Flags().GetString("data-dir"); err != nil {
		return err
	}
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	setupLogger(cmd, getVerboseFlag(cmd))
	out := cmd.OutOrStdout()

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(out, "No cleans recorded yet.")
		return nil
	}
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if id != 0 {
		return showSweep(ctx, db, cfg, out, id)
	}
	return listSweeps(ctx, db, out)
}

// listSweeps prints one line per recorded clean.
func listSweeps(ctx context.Context, db *database.HistoryDB, out io.Writer) error {
	sweeps, err := db.ListSweeps(ctx)
	if err != nil {
		return err
	}
	if len(sweeps) == 0 {
		fmt.Fprintln(out, "No cleans recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "Recorded cleans (%d):\n\n", len(sweeps))
	fmt.Fprintf(out, "  %-6s  %-20s  %-5s  %-7s  %-6s  %s\n", "ID", "Date", "Odd", "Removed", "Failed", "Directories")
	for _, s := range sweeps {
		fmt.Fprintf(out, "  %-6d  %-20s  %-5d  %-7d  %-6d  %s\n",
			s.ID,
			s.Timestamp.Local().Format("2006-01-02 15:04:05"),
			s.OddCount,
			s.RemovedCount,
			s.FailedCount,
			strings.Join(s.Roots, ", "),
		)
	}
	fmt.Fprintln(out, "\nUse 'sweeper history --id <ID>' to see what happened to each file.")
	return nil
}

// showSweep writes the removal outcomes of one clean with the report writers.
func showSweep(ctx context.Context, db *database.HistoryDB, cfg *config.Config, out io.Writer, id int64) error {
	rec, err := db.GetSweep(ctx, id)
	if err != nil {
		return err
	}
	outcomes, err := db.GetRemovals(ctx, id)
	if err != nil {
		return err
	}

	removal := &model.RemovalReport{Outcomes: outcomes, StartedAt: rec.Timestamp}
	_, err = newReportWriter(cfg, out).WriteRemoval(removal)
	return err
}
