package report

import (
	"io"

	"github.com/nao1215/sweeper/internal/model"
)

// Writer renders sweeper reports to an output.
type Writer interface {
	// WriteScan outputs the odd files found by a scan.
	// Returns the number of bytes written and any error encountered.
	WriteScan(report *model.ScanReport) (int, error)

	// WriteRemoval outputs the per-file outcome of a removal.
	WriteRemoval(report *model.RemovalReport) (int, error)
}

// Format selects a Writer implementation.
type Format int

const (
	// FormatText is the default terminal format.
	FormatText Format = iota
	// FormatJSON selects JSONWriter.
	FormatJSON
	// FormatMarkdown selects MarkdownWriter.
	FormatMarkdown
)

// New returns the Writer for format. Unknown formats fall back to text.
func New(format Format, output io.Writer, version string) Writer {
	switch format {
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint(), WithVersion(version))
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	case FormatText:
		return NewSimpleWriter(output)
	default:
		return NewSimpleWriter(output)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// dateLayout is used for every timestamp shown to the user.
const dateLayout = "2006-01-02 15:04:05 MST"
