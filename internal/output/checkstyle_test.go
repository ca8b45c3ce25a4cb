package output

import (
	"bytes"
	"encoding/xml"
	"testing"

	"github.com/trujunzhang/cyclefinder/internal/types"
)

// checkstyleResult mirrors the rendered XML for assertions
type checkstyleResult struct {
	XMLName xml.Name `xml:"checkstyle"`
	Version string   `xml:"version,attr"`
	Files   []struct {
		Name   string `xml:"name,attr"`
		Errors []struct {
			Line     int    `xml:"line,attr"`
			Column   int    `xml:"column,attr"`
			Severity string `xml:"severity,attr"`
			Message  string `xml:"message,attr"`
			Source   string `xml:"source,attr"`
		} `xml:"error"`
	} `xml:"file"`
}

func TestCheckstyleRenderer(t *testing.T) {
	renderer := &CheckstyleRenderer{}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, cycleResult()); err != nil {
		t.Fatalf("Render error: %v", err)
	}

	var out checkstyleResult
	if err := xml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Invalid XML: %v", err)
	}

	// files sorted by name: <unknown> before model.graph.hcl
	if len(out.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(out.Files))
	}
	if out.Files[0].Name != "<unknown>" {
		t.Errorf("file 0 = %q, want <unknown>", out.Files[0].Name)
	}
	if out.Files[1].Name != "model.graph.hcl" {
		t.Errorf("file 1 = %q, want model.graph.hcl", out.Files[1].Name)
	}

	e := out.Files[1].Errors[0]
	if e.Line != 3 || e.Column != 3 {
		t.Errorf("error at %d:%d, want 3:3", e.Line, e.Column)
	}
	if e.Severity != "error" {
		t.Errorf("severity = %q, want error", e.Severity)
	}
	if e.Source != "cyclefinder.CY001" {
		t.Errorf("source = %q, want cyclefinder.CY001", e.Source)
	}
	if e.Message != "Reference cycle: p.A -> p.B -> p.A" {
		t.Errorf("message = %q", e.Message)
	}

	w := out.Files[0].Errors[0]
	if w.Severity != "warning" {
		t.Errorf("severity = %q, want warning", w.Severity)
	}
}

func TestCheckstyleRendererSkipsIgnored(t *testing.T) {
	renderer := &CheckstyleRenderer{}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, suppressedResult()); err != nil {
		t.Fatalf("Render error: %v", err)
	}

	var out checkstyleResult
	if err := xml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Invalid XML: %v", err)
	}

	if len(out.Files) != 0 {
		t.Errorf("suppressed findings should not appear, got %+v", out.Files)
	}
}

func TestCheckstyleSeverityMapping(t *testing.T) {
	tests := []struct {
		severity types.Severity
		want     string
	}{
		{types.SeverityError, "error"},
		{types.SeverityWarning, "warning"},
		{types.SeverityNotice, "info"},
	}

	for _, tt := range tests {
		if got := mapToCheckstyleSeverity(tt.severity); got != tt.want {
			t.Errorf("mapToCheckstyleSeverity(%v) = %q, want %q", tt.severity, got, tt.want)
		}
	}
}
