package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [directory...]",
		Short: "List photos missing their JPEG or NEF pair",
		Long: `Scan walks the given directories, following symbolic links, and lists
odd files. Nothing is removed.

An image (name ending in .jpg or .jpeg) is odd when the same path with a
.nef extension does not exist. A raw file (name ending in nef) is odd when
neither the .jpeg nor the .jpg path exists. Matching is case-sensitive.

Examples:
  # List odd files in one directory
  sweeper scan ~/Pictures/2024

  # Several directories, with camera details
  sweeper scan --exif ~/Pictures/2024 /mnt/card/DCIM

  # Write a Markdown report
  sweeper scan --markdown -o report.md ~/Pictures`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	addScanFlags(cmd)
	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg.Verbose)
	ctx, cancel := signalContext(context.Background(), logger)
	defer cancel()

	scanReport, err := scanDirectories(ctx, cfg, logger)
	if err != nil {
		return err
	}

	output, closeOutput, err := openReportOutput(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	_, writeErr := newReportWriter(cfg, output).WriteScan(scanReport)
	closeErr := closeOutput()
	if writeErr != nil {
		return fmt.Errorf("failed to write report: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close report file: %w", closeErr)
	}

	if cfg.ReportFile != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (%d odd files)\n", cfg.ReportFile, len(scanReport.Files))
	}
	return nil
}
