package rules

import (
	"fmt"

	"github.com/trujunzhang/cyclefinder/internal/cycles"
	"github.com/trujunzhang/cyclefinder/internal/types"
)

// CY002 detects cycles that pass through an implicit reference from a
// nested or method-local type back to its enclosing instance
type CY002 struct{}

func init() {
	Register(&CY002{})
}

func (r *CY002) ID() string {
	return "CY002"
}

func (r *CY002) Name() string {
	return "outer-reference-cycle"
}

func (r *CY002) Description() string {
	return "A nested type's implicit reference to its enclosing instance closes a strong reference cycle"
}

func (r *CY002) DefaultSeverity() types.Severity {
	return types.SeverityError
}

func (r *CY002) Documentation() *RuleDoc {
	return &RuleDoc{
		ID:              r.ID(),
		Name:            r.Name(),
		DefaultSeverity: r.DefaultSeverity(),
		Description:     r.Description(),
		Example: `package "com.example" {
  type "Widget" {
    # Widget holds its non-static nested Listener...
    field "listener" { type = "com.example.Widget.Listener" }
  }
  type "Listener" {
    enclosing = "com.example.Widget"
    # ...and Listener implicitly references the enclosing Widget
    outer = "com.example.Widget"
  }
}`,
		Remediation: `To fix this issue, either:
1. Make the nested type static so it carries no enclosing reference:
   type "Listener" {
     enclosing = "com.example.Widget"
     static    = true
   }

2. Or hold the nested instance through a weak reference

3. Or whitelist the implicit reference if the enclosing instance is
   guaranteed to outlive the nested one:
   outer com.example.Widget.Listener`,
	}
}

func (r *CY002) Evaluate(a *cycles.Analysis) []*types.Finding {
	var findings []*types.Finding

	for _, c := range a.Cycles {
		if !c.HasOuterEdge() {
			continue
		}

		finding := types.NewFinding(
			r.ID(),
			r.Name(),
			r.DefaultSeverity(),
			fmt.Sprintf("Reference cycle through enclosing instance: %s", describeCycle(c)),
		).WithCycle(c.Edges).WithLocation(outerLocation(c))

		if reason := cycles.SuppressionReason(c, a.Whitelist); reason != "" {
			finding.Suppress(reason)
		}

		findings = append(findings, finding)
	}

	return findings
}

// outerLocation points at the declaration of the first nested type whose
// implicit enclosing reference participates in the cycle
func outerLocation(c *cycles.Cycle) *types.FileRange {
	for _, e := range c.Edges {
		if e.Outer {
			r := e.DeclRange
			return &r
		}
	}
	r := c.Edges[0].DeclRange
	return &r
}
