package output

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/trujunzhang/cyclefinder/internal/types"
)

// junitResult mirrors the rendered XML for assertions
type junitResult struct {
	XMLName xml.Name `xml:"testsuites"`
	Name    string   `xml:"name,attr"`
	Tests   int      `xml:"tests,attr"`
	Errors  int      `xml:"errors,attr"`
	Suites  []struct {
		Name    string `xml:"name,attr"`
		Tests   int    `xml:"tests,attr"`
		Skipped int    `xml:"skipped,attr"`
		Cases   []struct {
			Name    string `xml:"name,attr"`
			Failure *struct {
				Message string `xml:"message,attr"`
				Type    string `xml:"type,attr"`
				Content string `xml:",chardata"`
			} `xml:"failure"`
			Skipped *struct {
				Message string `xml:"message,attr"`
			} `xml:"skipped"`
		} `xml:"testcase"`
	} `xml:"testsuite"`
}

func TestJUnitRenderer(t *testing.T) {
	renderer := &JUnitRenderer{}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, cycleResult()); err != nil {
		t.Fatalf("Render error: %v", err)
	}

	var out junitResult
	if err := xml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Invalid XML: %v", err)
	}

	if out.Name != "cyclefinder" {
		t.Errorf("testsuites name = %q, want cyclefinder", out.Name)
	}
	if out.Tests != 2 {
		t.Errorf("tests = %d, want 2", out.Tests)
	}
	if out.Errors != 1 {
		t.Errorf("errors = %d, want 1", out.Errors)
	}

	// suites sorted by rule ID
	if len(out.Suites) != 2 {
		t.Fatalf("expected 2 suites, got %d", len(out.Suites))
	}
	if out.Suites[0].Name != "cyclefinder.CY001" {
		t.Errorf("suite 0 = %q, want cyclefinder.CY001", out.Suites[0].Name)
	}
	if out.Suites[1].Name != "cyclefinder.CY100" {
		t.Errorf("suite 1 = %q, want cyclefinder.CY100", out.Suites[1].Name)
	}

	tc := out.Suites[0].Cases[0]
	if tc.Name != "reference-cycle at model.graph.hcl:3" {
		t.Errorf("testcase name = %q", tc.Name)
	}
	if tc.Failure == nil {
		t.Fatal("expected a failure element")
	}
	if tc.Failure.Type != "ERROR" {
		t.Errorf("failure type = %q, want ERROR", tc.Failure.Type)
	}
	// failure body lists the cycle edges
	if !strings.Contains(tc.Failure.Content, "p.A -> p.B (p.A.b)") {
		t.Errorf("failure content should list cycle edges, got %q", tc.Failure.Content)
	}
}

func TestJUnitRendererSuppressed(t *testing.T) {
	renderer := &JUnitRenderer{}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, suppressedResult()); err != nil {
		t.Fatalf("Render error: %v", err)
	}

	var out junitResult
	if err := xml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Invalid XML: %v", err)
	}

	if len(out.Suites) != 1 || out.Suites[0].Skipped != 1 {
		t.Fatalf("expected 1 skipped case, got %+v", out.Suites)
	}
	tc := out.Suites[0].Cases[0]
	if tc.Skipped == nil || tc.Skipped.Message != "field p.B.a is whitelisted" {
		t.Errorf("skipped message = %+v", tc.Skipped)
	}
}

func TestJUnitRendererEmpty(t *testing.T) {
	result := types.NewCheckResult("testdata/clean", types.SeverityError)
	result.Compute()

	renderer := &JUnitRenderer{}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, result); err != nil {
		t.Fatalf("Render error: %v", err)
	}

	var out junitResult
	if err := xml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Invalid XML: %v", err)
	}

	// a clean run still emits one passing test
	if out.Tests != 1 {
		t.Errorf("tests = %d, want 1", out.Tests)
	}
	if len(out.Suites) != 1 || len(out.Suites[0].Cases) != 1 {
		t.Fatalf("expected a single synthetic case, got %+v", out.Suites)
	}
	if out.Suites[0].Cases[0].Failure != nil {
		t.Error("synthetic case should not fail")
	}
}
