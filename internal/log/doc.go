// Package log builds the slog loggers used by sweeper.
//
// Log records are meant to be pasted into bug reports, so the handler
// returned by NewLogger shortens the user's home directory to "~" in every
// string attribute. A record such as
//
//	level=DEBUG msg="skipping entry" path=/home/alice/Pictures/raw/a.nef
//
// is written as
//
//	level=DEBUG msg="skipping entry" path=~/Pictures/raw/a.nef
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
