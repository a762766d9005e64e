package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and Config.Apply() so
// callers can use errors.Is() while still printing a readable message.
var (
	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidExifWorkers is returned when the EXIF worker count is not positive.
	ErrInvalidExifWorkers = errors.New("invalid exif workers: must be positive")

	// ErrInvalidReadLimit is returned when the metadata read limit is not positive.
	ErrInvalidReadLimit = errors.New("invalid metadata read limit: must be positive")

	// ErrInvalidReportFormat is returned when the config file names an
	// unknown report format.
	ErrInvalidReportFormat = errors.New("invalid report format: must be text, json or markdown")
)
