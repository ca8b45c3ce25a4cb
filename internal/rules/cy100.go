package rules

import (
	"fmt"

	"github.com/trujunzhang/cyclefinder/internal/cycles"
	"github.com/trujunzhang/cyclefinder/internal/types"
)

// CY100 reports whitelist entries that no longer match anything in the
// model, usually left behind after a refactor renamed or removed the
// types they were written for
type CY100 struct{}

func init() {
	Register(&CY100{})
}

func (r *CY100) ID() string {
	return "CY100"
}

func (r *CY100) Name() string {
	return "unused-whitelist-entry"
}

func (r *CY100) Description() string {
	return "A whitelist entry matches no type or field in the model and can be removed"
}

func (r *CY100) DefaultSeverity() types.Severity {
	return types.SeverityWarning
}

func (r *CY100) Documentation() *RuleDoc {
	return &RuleDoc{
		ID:              r.ID(),
		Name:            r.Name(),
		DefaultSeverity: r.DefaultSeverity(),
		Description:     r.Description(),
		Example: `# cycles.whitelist
field com.example.Cache.owner   # Cache was renamed to Store, entry is stale
type com.example.Removed        # type no longer exists`,
		Remediation: `Delete the stale entry from the whitelist file, or update it to the
current name of the type or field it was meant to cover. Namespace
entries stay in use as long as at least one type lives under the
namespace.`,
	}
}

func (r *CY100) Evaluate(a *cycles.Analysis) []*types.Finding {
	var findings []*types.Finding

	for _, entry := range cycles.UnusedEntries(a.Graph, a.Whitelist) {
		finding := types.NewFinding(
			r.ID(),
			r.Name(),
			r.DefaultSeverity(),
			fmt.Sprintf("Whitelist entry %q matches nothing in the model", entry.String()),
		)
		findings = append(findings, finding)
	}

	return findings
}
