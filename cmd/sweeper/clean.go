package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nao1215/sweeper/internal/config"
	"github.com/nao1215/sweeper/internal/database"
	"github.com/nao1215/sweeper/internal/model"
	"github.com/nao1215/sweeper/internal/report"
	"github.com/nao1215/sweeper/internal/sweep"
)

var (
	// errCannotRemove is the message shown whenever a removal fails.
	errCannotRemove = errors.New("cannot remove files")

	// errNotTerminal is returned when clean would prompt on a non-terminal stdin.
	errNotTerminal = errors.New("standard input is not a terminal: use --yes to remove without confirmation")
)

// decision is the answer to the confirmation prompt.
type decision int

const (
	// decisionCancel keeps every file and ends the command normally.
	decisionCancel decision = iota
	// decisionQuit leaves immediately without printing anything else.
	decisionQuit
	// decisionProceed removes the listed files.
	decisionProceed
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [directory...]",
		Short: "Remove photos missing their JPEG or NEF pair",
		Long: `Clean scans the given directories like "sweeper scan", lists the odd
files and asks for confirmation before removing them.

Answer y to remove the files, n to keep them or q to quit. Removal stops
at the first file that cannot be removed; files already removed stay
removed. Every clean is recorded in the history database unless
--no-history is given.

Examples:
  # Review and remove odd files
  sweeper clean ~/Pictures/2024

  # Remove without asking (for scripts)
  sweeper clean --yes ~/Pictures/2024

  # Save the removal outcome as JSON
  sweeper clean --json -o removal.json ~/Pictures/2024`,
		Args: cobra.ArbitraryArgs,
		RunE: runCleanCmd,
	}

	addScanFlags(cmd)
	cmd.Flags().BoolP("yes", "y", false,
		"Remove odd files without asking for confirmation")
	cmd.Flags().Bool("no-history", false,
		"Do not record this clean in the history database")
	cmd.Flags().String("data-dir", config.XDGDataDir(),
		"Directory holding the history database")

	return cmd
}

// runCleanCmd executes the clean command.
func runCleanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.DBDir, err = cmd.Flags().GetString("data-dir"); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg.Verbose)
	ctx, cancel := signalContext(context.Background(), logger)
	defer cancel()

	return runClean(ctx, cmd, cfg, logger)
}

// runClean scans, asks for confirmation, removes and reports.
func runClean(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	out := cmd.OutOrStdout()
	listing := listingWriter(cmd, cfg)
	handoff := sweep.NewHandoff()

	scanReport, err := scanDirectories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	handoff.Offer(scanReport)

	if _, err := report.NewSimpleWriter(listing, report.WithDetails(cfg.Exif)).WriteScan(scanReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if scanReport.Empty() {
		if cfg.ReportFile == "" && reportFormat(cfg) == report.FormatText {
			return nil
		}
		return writeRemoval(cfg, out, model.NewRemovalReport())
	}

	if !cfg.AssumeYes {
		in := cmd.InOrStdin()
		if err := checkInteractive(in); err != nil {
			return err
		}
		answer, err := confirm(in, listing, len(scanReport.Files))
		if err != nil {
			return err
		}
		switch answer {
		case decisionCancel:
			handoff.Discard()
			fmt.Fprintln(listing, "Nothing was removed.")
			return nil
		case decisionQuit:
			handoff.Discard()
			return nil
		case decisionProceed:
		}
	}

	pending, ok := handoff.Take()
	if !ok {
		return nil
	}

	removal := sweep.NewRemover(sweep.WithRemoverLogger(logger)).Remove(pending.Paths())

	if cfg.SaveHistory {
		recordSweep(ctx, cfg.DBDir, pending, removal, logger)
	}

	if err := writeRemoval(cfg, out, removal); err != nil {
		return err
	}

	if err := removal.Err(); err != nil {
		return fmt.Errorf("%w: %w", errCannotRemove, err)
	}
	return nil
}

// listingWriter returns where the scan listing and the prompt go. A JSON or
// Markdown removal report written to stdout gets stdout to itself.
func listingWriter(cmd *cobra.Command, cfg *config.Config) io.Writer {
	if cfg.ReportFile == "" && reportFormat(cfg) != report.FormatText {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

// checkInteractive refuses to prompt when in is a file that is not a terminal.
// Readers that are not files are trusted; tests use them.
func checkInteractive(in io.Reader) error {
	f, ok := in.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return nil
	}
	return errNotTerminal
}

// confirm asks whether count files should be removed and reads the answer
// from in. An empty answer cancels; end of input quits.
func confirm(in io.Reader, out io.Writer, count int) (decision, error) {
	reader := bufio.NewReader(in)
	for {
		fmt.Fprintf(out, "Remove %d odd file(s)? [y]es / [n]o / [q]uit: ", count)

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return decisionCancel, fmt.Errorf("failed to read answer: %w", err)
		}

		answer := strings.ToLower(strings.TrimSpace(line))
		switch answer {
		case "y", "yes":
			return decisionProceed, nil
		case "n", "no":
			return decisionCancel, nil
		case "q", "quit":
			return decisionQuit, nil
		case "":
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return decisionQuit, nil
			}
			return decisionCancel, nil
		}

		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return decisionQuit, nil
		}
		fmt.Fprintln(out, "Please answer y, n or q.")
	}
}

// recordSweep saves the sweep in the history database. Failures are
// logged; they never change the outcome of the clean.
func recordSweep(ctx context.Context, dbDir string, scan *model.ScanReport, removal *model.RemovalReport, logger *slog.Logger) {
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("cannot open history database", "dir", dbDir, "error", err)
		return
	}
	defer db.Close()

	id, err := db.SaveSweep(ctx, scan, removal)
	if err != nil {
		logger.Warn("cannot record sweep", "error", err)
		return
	}
	logger.Debug("sweep recorded", "id", id, "db", db.Path())
}

// writeRemoval outputs the removal report in the configured format.
func writeRemoval(cfg *config.Config, stdout io.Writer, removal *model.RemovalReport) error {
	output, closeOutput, err := openReportOutput(cfg, stdout)
	if err != nil {
		return err
	}

	_, writeErr := newReportWriter(cfg, output).WriteRemoval(removal)
	closeErr := closeOutput()
	if writeErr != nil {
		return fmt.Errorf("failed to write report: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close report file: %w", closeErr)
	}
	return nil
}
