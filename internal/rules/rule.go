package rules

import (
	"github.com/trujunzhang/cyclefinder/internal/cycles"
	"github.com/trujunzhang/cyclefinder/internal/types"
)

// Rule defines the interface for a cycle check
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "CY001")
	ID() string

	// Name returns the human-readable name (e.g., "reference-cycle")
	Name() string

	// Description returns a description of what this rule detects
	Description() string

	// DefaultSeverity returns the default severity level for this rule
	DefaultSeverity() types.Severity

	// Evaluate checks one analyzed model and returns any findings
	Evaluate(a *cycles.Analysis) []*types.Finding
}

// RuleConfig holds configuration for a single rule
type RuleConfig struct {
	Enabled  bool
	Severity types.Severity
}

// DefaultRuleConfig returns the default configuration for a rule
func DefaultRuleConfig(r Rule) *RuleConfig {
	return &RuleConfig{
		Enabled:  true,
		Severity: r.DefaultSeverity(),
	}
}
