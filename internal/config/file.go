package config

// Report formats accepted in the config file.
const (
	ReportText     = "text"
	ReportJSON     = "json"
	ReportMarkdown = "markdown"
)

// File represents the structure of the .sweeper configuration file.
type File struct {
	// Directories are scanned when no directory is given on the command line.
	Directories []string `yaml:"directories,omitempty"`

	// Report is the default output format: text, json or markdown.
	Report string `yaml:"report,omitempty"`

	// Exif turns on EXIF enrichment by default.
	Exif bool `yaml:"exif,omitempty"`

	// ExifWorkers overrides the number of concurrent EXIF reads.
	ExifWorkers int `yaml:"exifWorkers,omitempty"`

	// History enables or disables the sweep history database.
	// Unset means enabled.
	History *bool `yaml:"history,omitempty"`
}
