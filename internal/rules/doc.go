package rules

import "github.com/trujunzhang/cyclefinder/internal/types"

// RuleDoc contains documentation for a rule
type RuleDoc struct {
	ID              string
	Name            string
	DefaultSeverity types.Severity
	Description     string
	// Example is a model snippet that triggers the rule
	Example string
	// Remediation explains how to break the cycle or suppress the
	// finding, including which whitelist entry kind applies
	Remediation string
}

// Documentable is implemented by rules that provide documentation
type Documentable interface {
	Documentation() *RuleDoc
}

// GetDocumentation returns the documentation for a rule if available
func GetDocumentation(ruleID string) *RuleDoc {
	r, ok := DefaultRegistry.Get(ruleID)
	if !ok {
		return nil
	}

	if doc, ok := r.(Documentable); ok {
		return doc.Documentation()
	}

	// fall back to the basic info every rule carries
	return &RuleDoc{
		ID:              r.ID(),
		Name:            r.Name(),
		DefaultSeverity: r.DefaultSeverity(),
		Description:     r.Description(),
	}
}
