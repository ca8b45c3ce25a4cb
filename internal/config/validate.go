package config

import (
	"fmt"

	"github.com/trujunzhang/cyclefinder/internal/rules"
	"github.com/trujunzhang/cyclefinder/internal/types"
)

// ValidFormats contains all supported output formats
var ValidFormats = map[string]bool{
	"text":       true,
	"json":       true,
	"compact":    true,
	"sarif":      true,
	"junit":      true,
	"checkstyle": true,
}

// Validate validates the configuration
func Validate(cfg *Config) error {
	// Version check
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (only version 1 is supported)", cfg.Version)
	}

	// Validate output format
	if cfg.Output != nil && cfg.Output.Format != "" {
		if !ValidFormats[cfg.Output.Format] {
			return fmt.Errorf("invalid output format: %s (must be 'text', 'json', 'compact', 'sarif', 'junit' or 'checkstyle')", cfg.Output.Format)
		}
	}

	// Validate output color
	if cfg.Output != nil && cfg.Output.Color != "" {
		switch cfg.Output.Color {
		case "auto", "always", "never":
			// valid
		default:
			return fmt.Errorf("invalid color mode: %s (must be 'auto', 'always', or 'never')", cfg.Output.Color)
		}
	}

	// Validate policy fail_on
	if cfg.Policy != nil && cfg.Policy.FailOn != "" {
		if _, err := types.ParseSeverity(cfg.Policy.FailOn); err != nil {
			return fmt.Errorf("invalid fail_on severity: %s (must be 'ERROR', 'WARNING', or 'NOTICE')", cfg.Policy.FailOn)
		}
	}

	// Validate rule configurations
	for _, rule := range cfg.Rules {
		if _, ok := ResolveRuleID(rule.ID); !ok {
			if suggestion, found := rules.DefaultRegistry.Suggest(rule.ID); found {
				return fmt.Errorf("unknown rule: %s (did you mean %s?)", rule.ID, suggestion)
			}
			return fmt.Errorf("unknown rule: %s", rule.ID)
		}

		if rule.Severity != nil {
			if _, err := types.ParseSeverity(*rule.Severity); err != nil {
				return fmt.Errorf("invalid severity for rule %s: %s", rule.ID, *rule.Severity)
			}
		}
	}

	return nil
}

// ResolveRuleID resolves a rules block label, which may be a rule ID or a
// rule name, to the canonical rule ID
func ResolveRuleID(label string) (string, bool) {
	if r, ok := rules.DefaultRegistry.Get(label); ok {
		return r.ID(), true
	}
	if r, ok := rules.DefaultRegistry.GetByName(label); ok {
		return r.ID(), true
	}
	return "", false
}
