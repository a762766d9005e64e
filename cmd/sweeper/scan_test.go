package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/sweeper/internal/config"
	"github.com/nao1215/sweeper/internal/report"
	"github.com/nao1215/sweeper/internal/sweep"
)

// TestNewScanCmd tests the scan command flags.
func TestNewScanCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()
	for _, name := range []string{"config", "json", "markdown", "output", "exif", "exif-workers"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
	if cmd.Flags().Lookup("yes") != nil {
		t.Error("scan must not accept --yes")
	}
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("flags and arguments", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(configPath, []byte("exifWorkers: 2\n"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewCleanCmd()
		if err := cmd.ParseFlags([]string{
			"--config", configPath, "--markdown", "--exif", "--exif-workers", "9", "--yes", "--no-history",
		}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"/a", "/b"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Directories) != 2 || cfg.Directories[0] != "/a" {
			t.Errorf("unexpected directories: %v", cfg.Directories)
		}
		if !cfg.MarkdownReport || !cfg.Exif || !cfg.AssumeYes {
			t.Errorf("expected flags to be applied: %+v", cfg)
		}
		if cfg.ExifWorkers != 9 {
			t.Errorf("expected flag to win over config file, got %d workers", cfg.ExifWorkers)
		}
		if cfg.SaveHistory {
			t.Error("expected --no-history to disable history")
		}
	})

	t.Run("config file fills directories", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".sweeper")
		content := "directories:\n  - /photos\nreport: json\nexifWorkers: 3\n"
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewScanCmd()
		if err := cmd.ParseFlags([]string{"-c", configPath}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Directories) != 1 || cfg.Directories[0] != "/photos" {
			t.Errorf("unexpected directories: %v", cfg.Directories)
		}
		if !cfg.JSONReport {
			t.Error("expected JSON report from config file")
		}
		if cfg.ExifWorkers != 3 {
			t.Errorf("expected 3 workers, got %d", cfg.ExifWorkers)
		}
	})

	t.Run("explicit missing config file", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.ParseFlags([]string{"-c", filepath.Join(t.TempDir(), "missing.yaml")}); err != nil {
			t.Fatal(err)
		}
		if _, err := buildConfig(cmd, nil); !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

func TestRunScanCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists odd files", func(t *testing.T) {
		t.Parallel()

		dir := photoTree(t)
		out, err := execute(t, nil, "scan", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(out, filepath.Join(dir, "lone.jpg")) {
			t.Errorf("expected lone.jpg in output:\n%s", out)
		}
		if !strings.Contains(out, filepath.Join(dir, "orphan.nef")) {
			t.Errorf("expected orphan.nef in output:\n%s", out)
		}
		if strings.Contains(out, "pair.") || strings.Contains(out, "notes.txt") {
			t.Errorf("unexpected file in output:\n%s", out)
		}
		if !exists(filepath.Join(dir, "lone.jpg")) {
			t.Error("scan must not remove files")
		}
	})

	t.Run("nothing odd", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		for _, name := range []string{"a.jpg", "a.nef"} {
			if err := os.WriteFile(filepath.Join(dir, name), nil, 0600); err != nil {
				t.Fatal(err)
			}
		}

		out, err := execute(t, nil, "scan", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "No odd files found.") {
			t.Errorf("expected empty notice, got:\n%s", out)
		}
	})

	t.Run("no directories", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "empty.yaml")
		if err := os.WriteFile(configPath, []byte("exif: false\n"), 0600); err != nil {
			t.Fatal(err)
		}

		_, err := execute(t, nil, "scan", "-c", configPath)
		if !errors.Is(err, sweep.ErrNoDirectories) {
			t.Errorf("expected ErrNoDirectories, got %v", err)
		}
		if err != nil && err.Error() != "you must choose a directory" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("conflicting formats", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, nil, "scan", "--json", "--markdown", t.TempDir())
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("json report to file", func(t *testing.T) {
		t.Parallel()

		dir := photoTree(t)
		reportPath := filepath.Join(t.TempDir(), "reports", "scan.json")

		out, err := execute(t, nil, "scan", "--json", "-o", reportPath, dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Report written to") {
			t.Errorf("expected confirmation, got %q", out)
		}

		data, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("report not written: %v", err)
		}
		var doc report.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if doc.Scan == nil || len(doc.Scan.Files) != 2 {
			t.Fatalf("expected 2 odd files, got %+v", doc.Scan)
		}
	})

	t.Run("exif on files without metadata", func(t *testing.T) {
		t.Parallel()

		dir := photoTree(t)
		out, err := execute(t, nil, "scan", "--exif", "--exif-workers", "1", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "root: "+dir) {
			t.Errorf("expected detail lines with --exif, got:\n%s", out)
		}
	})
}
