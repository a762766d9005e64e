package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/nao1215/sweeper/internal/metadata"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "sweeper"
)

// Config holds all configuration options for sweeper.
// It is populated from CLI flags and the optional config file, then passed
// down explicitly rather than kept in global state.
type Config struct {
	// Directories are the roots to scan, in the order given.
	Directories []string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches the default locations (see FindConfigFile).
	ConfigFilePath string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// Exif enables EXIF enrichment of odd files before they are listed.
	Exif bool

	// ExifWorkers bounds the number of concurrent EXIF reads.
	ExifWorkers int

	// MetadataReadLimit is the number of leading bytes read per file
	// when looking for EXIF data.
	MetadataReadLimit int64

	// AssumeYes skips the confirmation prompt of the clean command.
	AssumeYes bool

	// SaveHistory records sweeps in the history database.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	// Defaults to XDG data directory (~/.local/share/sweeper on Linux).
	DBDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		ExifWorkers:       metadata.DefaultWorkers,
		MetadataReadLimit: metadata.DefaultReadLimit,
		SaveHistory:       true,
		DBDir:             XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for sweeper.
// On Linux: ~/.local/share/sweeper
// On macOS: ~/Library/Application Support/sweeper
// On Windows: %LOCALAPPDATA%\sweeper
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for sweeper.
// On Linux: ~/.config/sweeper
// On macOS: ~/Library/Application Support/sweeper
// On Windows: %APPDATA%\sweeper
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
//
// An empty directory list is not a configuration error: the scanner
// reports it so the caller can ask the user to choose a directory.
func (c *Config) Validate() error {
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.ExifWorkers <= 0 {
		return ErrInvalidExifWorkers
	}

	if c.MetadataReadLimit <= 0 {
		return ErrInvalidReadLimit
	}

	return nil
}

// Apply merges settings from a config file into c. Values already set
// from flags win: directories from the file are used only when none were
// given, and the file's report format only when no format flag was set.
func (c *Config) Apply(f *File) error {
	if f == nil {
		return nil
	}

	if len(c.Directories) == 0 {
		for _, dir := range f.Directories {
			c.Directories = append(c.Directories, expandHome(dir))
		}
	}

	if !c.JSONReport && !c.MarkdownReport {
		switch f.Report {
		case "", ReportText:
		case ReportJSON:
			c.JSONReport = true
		case ReportMarkdown:
			c.MarkdownReport = true
		default:
			return ErrInvalidReportFormat
		}
	}

	if f.Exif {
		c.Exif = true
	}
	if f.ExifWorkers != 0 {
		c.ExifWorkers = f.ExifWorkers
	}
	if f.History != nil {
		c.SaveHistory = *f.History
	}

	return nil
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) string {
	if path == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(xdg.Home, path[2:])
	}
	return path
}
