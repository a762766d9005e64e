package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/sweeper/internal/model"
)

// JSONWriter outputs reports in JSON format for scripts and other tools.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// version is the sweeper version recorded in every document.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// WithVersion records the sweeper version in the output document.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Document is the top-level JSON object. Exactly one of Scan and
// Removal is set.
type Document struct {
	Version string               `json:"version,omitempty"`
	Scan    *model.ScanReport    `json:"scan,omitempty"`
	Removal *model.RemovalReport `json:"removal,omitempty"`
}

// WriteScan outputs the scan report wrapped in a Document.
func (w *JSONWriter) WriteScan(report *model.ScanReport) (int, error) {
	return w.writeJSON(Document{Version: w.version, Scan: report})
}

// WriteRemoval outputs the removal report wrapped in a Document.
func (w *JSONWriter) WriteRemoval(report *model.RemovalReport) (int, error) {
	return w.writeJSON(Document{Version: w.version, Removal: report})
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
