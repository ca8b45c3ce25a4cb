package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/trujunzhang/cyclefinder/internal/types"
)

// cycleResult builds a result with one reported cycle and one stale
// whitelist entry, shared by the renderer tests.
func cycleResult() *types.CheckResult {
	result := types.NewCheckResult("testdata/model", types.SeverityError)
	result.AddFinding(types.NewFinding(
		"CY001", "reference-cycle", types.SeverityError,
		"Reference cycle: p.A -> p.B -> p.A",
	).WithCycle([]types.CycleEdge{
		{From: "p.A", To: "p.B", Field: "p.A.b", DeclRange: types.FileRange{Filename: "model.graph.hcl", Line: 3, Column: 3}},
		{From: "p.B", To: "p.A", Field: "p.B.a", DeclRange: types.FileRange{Filename: "model.graph.hcl", Line: 8, Column: 3}},
	}).WithLocation(&types.FileRange{Filename: "model.graph.hcl", Line: 3, Column: 3}))
	result.AddFinding(types.NewFinding(
		"CY100", "unused-whitelist-entry", types.SeverityWarning,
		`Whitelist entry "type com.gone.Type" matches nothing in the model`,
	))
	result.Compute()
	return result
}

// suppressedResult builds a result whose only cycle is whitelisted.
func suppressedResult() *types.CheckResult {
	result := types.NewCheckResult("testdata/model", types.SeverityError)
	f := types.NewFinding(
		"CY001", "reference-cycle", types.SeverityError,
		"Reference cycle: p.A -> p.B -> p.A",
	).WithCycle([]types.CycleEdge{
		{From: "p.A", To: "p.B", Field: "p.A.b"},
		{From: "p.B", To: "p.A", Field: "p.B.a"},
	})
	f.Suppress("field p.B.a is whitelisted")
	result.AddFinding(f)
	result.Compute()
	return result
}

func TestTextRenderer(t *testing.T) {
	renderer := &TextRenderer{ColorEnabled: false}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, cycleResult()); err != nil {
		t.Fatalf("Render error: %v", err)
	}

	output := buf.String()

	// Check header
	if !strings.Contains(output, "analyzing testdata/model") {
		t.Error("output should contain the model path")
	}

	// Check severity
	if !strings.Contains(output, "ERROR") {
		t.Error("output should contain severity")
	}

	// Check rule ID
	if !strings.Contains(output, "CY001") {
		t.Error("output should contain rule ID")
	}

	// Check location
	if !strings.Contains(output, "model.graph.hcl:3") {
		t.Error("output should contain file location")
	}

	// Check message
	if !strings.Contains(output, "Reference cycle: p.A -> p.B -> p.A") {
		t.Error("output should contain message")
	}

	// Check per-edge lines
	if !strings.Contains(output, "p.A -> p.B (p.A.b) at model.graph.hcl:3") {
		t.Error("output should list the cycle edges with locations")
	}
	if !strings.Contains(output, "p.B -> p.A (p.B.a) at model.graph.hcl:8") {
		t.Error("output should list every cycle edge")
	}

	// Check result
	if !strings.Contains(output, "FAIL") {
		t.Error("output should contain result")
	}
	if !strings.Contains(output, "Summary: 1 error, 1 warning") {
		t.Errorf("unexpected summary in output:\n%s", output)
	}
}

func TestTextRendererSuppressed(t *testing.T) {
	renderer := &TextRenderer{ColorEnabled: false}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, suppressedResult()); err != nil {
		t.Fatalf("Render error: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, `[IGNORED] reason="field p.B.a is whitelisted"`) {
		t.Errorf("output should mark the suppressed finding:\n%s", output)
	}
	if !strings.Contains(output, "Summary: 1 ignored") {
		t.Errorf("unexpected summary in output:\n%s", output)
	}
	if !strings.Contains(output, "Result: PASS") {
		t.Error("suppressed cycle should not fail the run")
	}
}

func TestTextRendererPass(t *testing.T) {
	result := types.NewCheckResult("testdata/clean", types.SeverityError)
	result.Compute()

	renderer := &TextRenderer{ColorEnabled: false}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, result); err != nil {
		t.Fatalf("Render error: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "PASS") {
		t.Error("output should contain PASS")
	}
	if !strings.Contains(output, "no issues found") {
		t.Error("output should indicate no issues")
	}
}

func TestTextRendererSinceHeader(t *testing.T) {
	result := types.NewCheckResult("testdata/model", types.SeverityError)
	result.BaseRef = "main"
	result.Compute()

	renderer := &TextRenderer{ColorEnabled: false}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, result); err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if !strings.Contains(buf.String(), "analyzing testdata/model (since main)") {
		t.Errorf("output should name the base ref:\n%s", buf.String())
	}
}
