package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/sweeper/internal/config"
	"github.com/nao1215/sweeper/internal/log"
	"github.com/nao1215/sweeper/internal/metadata"
	"github.com/nao1215/sweeper/internal/model"
	"github.com/nao1215/sweeper/internal/report"
	"github.com/nao1215/sweeper/internal/sweep"
)

// addScanFlags registers the flags shared by scan and clean.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .sweeper in current or home directory)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().BoolP("exif", "x", false,
		"Show camera and capture time of every odd file")
	cmd.Flags().Int("exif-workers", metadata.DefaultWorkers,
		"Number of files read at once with --exif")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	return getGlobalBool(cmd, "verbose")
}

// getGlobalBool reads a persistent root flag, falling back to the root's
// flag set when cmd has not merged it yet.
func getGlobalBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// buildConfig creates a Config from cobra command flags, positional
// directories and the configuration file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Directories = args
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if cfg.Exif, err = cmd.Flags().GetBool("exif"); err != nil {
		return nil, err
	}

	// clean-only flags
	if cmd.Flags().Lookup("yes") != nil {
		if cfg.AssumeYes, err = cmd.Flags().GetBool("yes"); err != nil {
			return nil, err
		}
	}
	noHistory := false
	if cmd.Flags().Lookup("no-history") != nil {
		if noHistory, err = cmd.Flags().GetBool("no-history"); err != nil {
			return nil, err
		}
	}

	// If the user explicitly specified a config file path, error if not found.
	// Otherwise silently continue without one.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cfg.Apply(file); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	// Explicit flags win over the config file.
	if cmd.Flags().Changed("exif-workers") {
		if cfg.ExifWorkers, err = cmd.Flags().GetInt("exif-workers"); err != nil {
			return nil, err
		}
	}
	if noHistory {
		cfg.SaveHistory = false
	}

	return cfg, nil
}

// setupLogger creates the structured logger and installs it as default.
// --log-json switches the records from text to JSON.
func setupLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	newLogger := log.NewLogger
	if getGlobalBool(cmd, "log-json") {
		newLogger = log.NewJSONLogger
	}
	logger := newLogger(cmd.ErrOrStderr(), verbose)
	slog.SetDefault(logger)
	return logger
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// scanDirectories runs the scanner over cfg.Directories and enriches the
// odd files with EXIF data when requested.
func scanDirectories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*model.ScanReport, error) {
	scanReport, err := sweep.NewScanner(sweep.WithScannerLogger(logger)).Scan(cfg.Directories)
	if err != nil {
		return nil, err
	}

	if cfg.Exif && !scanReport.Empty() {
		reader := metadata.NewReader(
			metadata.WithWorkers(cfg.ExifWorkers),
			metadata.WithReadLimit(cfg.MetadataReadLimit),
			metadata.WithLogger(logger),
		)
		if err := reader.Enrich(ctx, scanReport.Files); err != nil {
			return nil, fmt.Errorf("failed to read EXIF data: %w", err)
		}
	}
	return scanReport, nil
}

// reportFormat maps the report flags to a report.Format.
func reportFormat(cfg *config.Config) report.Format {
	switch {
	case cfg.JSONReport:
		return report.FormatJSON
	case cfg.MarkdownReport:
		return report.FormatMarkdown
	default:
		return report.FormatText
	}
}

// openReportOutput returns the report destination: cfg.ReportFile when
// set, stdout otherwise. The returned close function is always non-nil.
func openReportOutput(cfg *config.Config, stdout io.Writer) (io.Writer, func() error, error) {
	if cfg.ReportFile == "" {
		return stdout, func() error { return nil }, nil
	}

	if dir := filepath.Dir(cfg.ReportFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// newReportWriter builds the writer selected by cfg. Text output lists
// EXIF details only when they were requested.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	if reportFormat(cfg) == report.FormatText {
		return report.NewSimpleWriter(output, report.WithDetails(cfg.Exif))
	}
	return report.New(reportFormat(cfg), output, getVersion())
}
