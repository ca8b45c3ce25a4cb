package rules

import (
	"fmt"
	"strings"

	"github.com/trujunzhang/cyclefinder/internal/cycles"
	"github.com/trujunzhang/cyclefinder/internal/types"
)

// CY001 detects strong reference cycles built from field references alone
type CY001 struct{}

func init() {
	Register(&CY001{})
}

func (r *CY001) ID() string {
	return "CY001"
}

func (r *CY001) Name() string {
	return "reference-cycle"
}

func (r *CY001) Description() string {
	return "Types hold strong references to each other in a cycle, so none of them can ever be reclaimed"
}

func (r *CY001) DefaultSeverity() types.Severity {
	return types.SeverityError
}

func (r *CY001) Documentation() *RuleDoc {
	return &RuleDoc{
		ID:              r.ID(),
		Name:            r.Name(),
		DefaultSeverity: r.DefaultSeverity(),
		Description:     r.Description(),
		Example: `package "com.example" {
  type "Registry" {
    field "cache" { type = "com.example.Cache" }
  }
  type "Cache" {
    # this backreference closes the cycle
    field "owner" { type = "com.example.Registry" }
  }
}`,
		Remediation: `To fix this issue, either:
1. Mark one reference on the cycle as weak in the model:
   field "owner" { type = "com.example.Registry" weak = true }

2. Or restructure the types so the backreference is not needed

3. Or whitelist the cycle if it is known to be safe, e.g. because the
   reference is cleared manually before teardown:
   field com.example.Cache.owner                       # bare field entry
   field com.example.Cache.owner com.example.Registry  # typed field entry
   type com.example.Cache                               # whole type
   namespace com.example                                # whole namespace`,
	}
}

func (r *CY001) Evaluate(a *cycles.Analysis) []*types.Finding {
	var findings []*types.Finding

	for _, c := range a.Cycles {
		if c.HasOuterEdge() {
			continue
		}

		first := c.Edges[0]
		finding := types.NewFinding(
			r.ID(),
			r.Name(),
			r.DefaultSeverity(),
			fmt.Sprintf("Reference cycle: %s", describeCycle(c)),
		).WithCycle(c.Edges).WithLocation(&first.DeclRange)

		if reason := cycles.SuppressionReason(c, a.Whitelist); reason != "" {
			finding.Suppress(reason)
		}

		findings = append(findings, finding)
	}

	return findings
}

// describeCycle renders the node chain of a cycle, closed back to its
// first node
func describeCycle(c *cycles.Cycle) string {
	nodes := c.Nodes()
	if len(nodes) == 0 {
		return ""
	}
	return strings.Join(nodes, " -> ") + " -> " + nodes[0]
}
