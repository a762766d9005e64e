package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/sweeper/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// WriteScan outputs the odd file listing as Markdown.
func (w *MarkdownWriter) WriteScan(report *model.ScanReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Odd Files Report")
	md.PlainText("")

	images, raws := report.CountByKind()
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Directories", codeList(report.Roots)},
			{"Scan Date", report.StartedAt.Format(dateLayout)},
			{"Visited Entries", strconv.Itoa(report.Visited)},
			{"Skipped Entries", strconv.Itoa(report.Skipped)},
			{"Odd Files", strconv.Itoa(len(report.Files))},
		},
	})
	md.PlainText("")

	if report.Empty() {
		md.Tip("No odd files found. Every image has its raw file and every raw file has its image.")
		md.PlainText("")
		return len(md.String()), md.Build()
	}

	md.Warningf("%d odd file(s) would be deleted by `sweeper clean`.", len(report.Files))
	md.PlainText("")

	if images > 0 && raws > 0 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Odd Files by Kind"),
			piechart.WithShowData(true),
		)
		chart.LabelAndIntValue("Image without raw", uint64(images))
		chart.LabelAndIntValue("Raw without image", uint64(raws))
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	md.H2("Files")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Files))
	for _, f := range report.Files {
		rows = append(rows, []string{
			"`" + f.Path + "`",
			f.Kind.String(),
			f.Photo.Camera(),
			takenAt(f.Photo),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Path", "Kind", "Camera", "Taken"},
		Rows:   rows,
	})
	md.PlainText("")

	return len(md.String()), md.Build()
}

// WriteRemoval outputs the removal outcomes as Markdown.
func (w *MarkdownWriter) WriteRemoval(report *model.RemovalReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Removal Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"Removed", strconv.Itoa(report.Count(model.OutcomeRemoved))},
			{"Failed", strconv.Itoa(report.Count(model.OutcomeFailed))},
			{"Skipped", strconv.Itoa(report.Count(model.OutcomeSkipped))},
		},
	})
	md.PlainText("")

	if failed := report.Count(model.OutcomeFailed); failed > 0 {
		md.Cautionf("Cannot remove files. Removal stopped after the first failure; %d file(s) were not attempted.",
			report.Count(model.OutcomeSkipped))
	} else {
		md.Tip("All odd files were removed.")
	}
	md.PlainText("")

	if len(report.Outcomes) == 0 {
		return len(md.String()), md.Build()
	}

	rows := make([][]string, 0, len(report.Outcomes))
	for _, fo := range report.Outcomes {
		rows = append(rows, []string{"`" + fo.Path + "`", string(fo.Outcome), fo.Error})
	}
	md.H2("Files")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Path", "Outcome", "Error"},
		Rows:   rows,
	})
	md.PlainText("")

	return len(md.String()), md.Build()
}

func codeList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "`" + s + "`"
	}
	return strings.Join(quoted, ", ")
}

func takenAt(p *model.PhotoInfo) string {
	if p == nil {
		return ""
	}
	return p.TakenAt
}
