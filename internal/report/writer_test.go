package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/nao1215/sweeper/internal/model"
)

// createScanReport creates a report with sample data for testing.
func createScanReport() *model.ScanReport {
	report := model.NewScanReport([]string{"/photos"})
	report.Visited = 1234
	report.Files = append(report.Files,
		model.OddFile{
			Path: "/photos/a.jpg",
			Kind: model.KindImage,
			Root: "/photos",
			Photo: &model.PhotoInfo{
				Make:    "NIKON CORPORATION",
				Model:   "NIKON D750",
				TakenAt: "2024:05:01 10:11:12",
			},
		},
		model.OddFile{Path: "/photos/b.nef", Kind: model.KindRaw, Root: "/photos"},
	)
	return report
}

// createRemovalReport creates a removal report that stopped on a failure.
func createRemovalReport() *model.RemovalReport {
	report := model.NewRemovalReport()
	report.AddRemoved("/photos/a.jpg")
	report.AddFailed("/photos/b.nef", errors.New("permission denied"))
	report.AddSkipped("/photos/c.nef")
	return report
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("lists odd files with counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteScan(createScanReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"ODD FILES",
			"1,234 entries",
			"2 (1 image, 1 raw)",
			"[image] /photos/a.jpg",
			"[raw  ] /photos/b.nef",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
		if strings.Contains(output, "NIKON") {
			t.Error("expected EXIF details to be hidden without WithDetails")
		}
	})

	t.Run("details show root and exif", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithDetails(true), WithLanguage(language.English))
		if _, err := w.WriteScan(createScanReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "exif: NIKON CORPORATION NIKON D750, 2024:05:01 10:11:12") {
			t.Errorf("expected EXIF summary, got:\n%s", output)
		}
		if !strings.Contains(output, "root: /photos") {
			t.Errorf("expected root, got:\n%s", output)
		}
	})

	t.Run("empty scan prints notice", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteScan(model.NewScanReport([]string{"/photos"})); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No odd files found.") {
			t.Errorf("expected empty notice, got:\n%s", buf.String())
		}
	})

	t.Run("removal outcomes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteRemoval(createRemovalReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"Removed:  1",
			"Failed:   1",
			"Skipped:  1",
			"[failed ] /photos/b.nef",
			"permission denied",
			"[skipped] /photos/c.nef",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("scan document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithVersion("v1.2.3"))
		if _, err := w.WriteScan(createScanReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var doc Document
		if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if doc.Version != "v1.2.3" {
			t.Errorf("expected version v1.2.3, got %q", doc.Version)
		}
		if doc.Scan == nil || len(doc.Scan.Files) != 2 {
			t.Fatalf("expected two odd files, got %+v", doc.Scan)
		}
		if doc.Scan.Files[1].Kind != model.KindRaw {
			t.Errorf("expected kind raw, got %v", doc.Scan.Files[1].Kind)
		}
		if doc.Removal != nil {
			t.Error("expected no removal section")
		}
		if strings.Contains(buf.String(), "\n  ") {
			t.Error("expected compact output without WithPrettyPrint")
		}
	})

	t.Run("removal document pretty printed", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).WriteRemoval(createRemovalReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, `"outcome": "failed"`) {
			t.Errorf("expected failed outcome, got:\n%s", output)
		}
		if !strings.Contains(output, `"error": "permission denied"`) {
			t.Errorf("expected error message, got:\n%s", output)
		}
		if strings.Contains(output, `"version"`) {
			t.Error("expected version to be omitted when unset")
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("scan report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteScan(createScanReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Odd Files Report",
			"## Files",
			"`/photos/a.jpg`",
			"NIKON CORPORATION NIKON D750",
			"[!WARNING]",
			"mermaid",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("empty scan report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteScan(model.NewScanReport([]string{"/photos"})); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "[!TIP]") {
			t.Errorf("expected tip alert, got:\n%s", output)
		}
		if strings.Contains(output, "## Files") {
			t.Error("expected no file table for an empty scan")
		}
	})

	t.Run("removal report with failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteRemoval(createRemovalReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "[!CAUTION]") {
			t.Errorf("expected caution alert, got:\n%s", output)
		}
		if !strings.Contains(output, "Cannot remove files") {
			t.Errorf("expected failure message, got:\n%s", output)
		}
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tests := []struct {
		name   string
		format Format
		check  func(Writer) bool
	}{
		{"text", FormatText, func(w Writer) bool { _, ok := w.(*SimpleWriter); return ok }},
		{"json", FormatJSON, func(w Writer) bool { _, ok := w.(*JSONWriter); return ok }},
		{"markdown", FormatMarkdown, func(w Writer) bool { _, ok := w.(*MarkdownWriter); return ok }},
		{"unknown falls back to text", Format(99), func(w Writer) bool { _, ok := w.(*SimpleWriter); return ok }},
	}

	for _, tt := range tests {
		if !tt.check(New(tt.format, &buf, "dev")) {
			t.Errorf("%s: unexpected writer type", tt.name)
		}
	}
}
