package report

import (
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nao1215/sweeper/internal/model"
)

// ruleWidth is the width of the section separators.
const ruleWidth = 70

// SimpleWriter outputs human-readable text reports.
// Odd files are listed one per line so the output stays easy to read
// before answering the confirmation prompt.
type SimpleWriter struct {
	baseWriter

	// printer formats counts with thousands separators.
	printer *message.Printer

	// showDetails adds the root and EXIF summary under each file.
	showDetails bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithDetails lists the root and EXIF summary under every odd file.
func WithDetails(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showDetails = show
	}
}

// WithLanguage sets the language used to format counts.
func WithLanguage(tag language.Tag) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.printer = message.NewPrinter(tag)
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteScan outputs the odd file listing.
func (w *SimpleWriter) WriteScan(report *model.ScanReport) (int, error) {
	var sb strings.Builder

	w.writeTitle(&sb, "ODD FILES")
	w.printer.Fprintf(&sb, "Directories:  %s\n", strings.Join(report.Roots, ", "))
	w.printer.Fprintf(&sb, "Scan Date:    %s\n", report.StartedAt.Format(dateLayout))
	w.printer.Fprintf(&sb, "Visited:      %d entries (%d skipped)\n", report.Visited, report.Skipped)

	images, raws := report.CountByKind()
	w.printer.Fprintf(&sb, "Odd Files:    %d (%d image, %d raw)\n\n", len(report.Files), images, raws)

	if report.Empty() {
		sb.WriteString("No odd files found.\n")
		return w.output.Write([]byte(sb.String()))
	}

	writeRule(&sb, "-")
	for _, f := range report.Files {
		w.printer.Fprintf(&sb, "  [%-5s] %s\n", f.Kind, f.Path)
		if !w.showDetails {
			continue
		}
		w.printer.Fprintf(&sb, "          root: %s\n", f.Root)
		if !f.Photo.IsZero() {
			w.printer.Fprintf(&sb, "          exif: %s\n", photoSummary(f.Photo))
		}
	}
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// WriteRemoval outputs the outcome of each requested path.
func (w *SimpleWriter) WriteRemoval(report *model.RemovalReport) (int, error) {
	var sb strings.Builder

	w.writeTitle(&sb, "REMOVAL")
	w.printer.Fprintf(&sb, "Removed:  %d\n", report.Count(model.OutcomeRemoved))
	w.printer.Fprintf(&sb, "Failed:   %d\n", report.Count(model.OutcomeFailed))
	w.printer.Fprintf(&sb, "Skipped:  %d\n\n", report.Count(model.OutcomeSkipped))

	if len(report.Outcomes) > 0 {
		writeRule(&sb, "-")
	}
	for _, fo := range report.Outcomes {
		w.printer.Fprintf(&sb, "  [%-7s] %s\n", fo.Outcome, fo.Path)
		if fo.Error != "" {
			w.printer.Fprintf(&sb, "            %s\n", fo.Error)
		}
	}
	if len(report.Outcomes) > 0 {
		sb.WriteString("\n")
	}

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeTitle(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	writeRule(sb, "=")
	sb.WriteString(title)
	sb.WriteString("\n")
	writeRule(sb, "=")
	sb.WriteString("\n")
}

func writeRule(sb *strings.Builder, char string) {
	sb.WriteString(strings.Repeat(char, ruleWidth))
	sb.WriteString("\n")
}

// photoSummary joins the non-empty EXIF fields for display.
func photoSummary(p *model.PhotoInfo) string {
	parts := make([]string, 0, 3)
	if camera := p.Camera(); camera != "" {
		parts = append(parts, camera)
	}
	if p.TakenAt != "" {
		parts = append(parts, p.TakenAt)
	}
	if p.Software != "" {
		parts = append(parts, p.Software)
	}
	return strings.Join(parts, ", ")
}
