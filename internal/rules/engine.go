package rules

import (
	"github.com/trujunzhang/cyclefinder/internal/cycles"
	"github.com/trujunzhang/cyclefinder/internal/graph"
	"github.com/trujunzhang/cyclefinder/internal/types"
	"github.com/trujunzhang/cyclefinder/internal/whitelist"
)

// Engine evaluates rules against an analyzed model
type Engine struct {
	registry *Registry
	config   map[string]*RuleConfig
}

// NewEngine creates a new Engine with the given registry
func NewEngine(registry *Registry) *Engine {
	return &Engine{
		registry: registry,
		config:   make(map[string]*RuleConfig),
	}
}

// NewDefaultEngine creates an Engine with the default registry and
// default configs for every registered rule
func NewDefaultEngine() *Engine {
	e := NewEngine(DefaultRegistry)
	for _, rule := range DefaultRegistry.All() {
		e.config[rule.ID()] = DefaultRuleConfig(rule)
	}
	return e
}

// SetConfig sets the configuration for a specific rule
func (e *Engine) SetConfig(ruleID string, config *RuleConfig) {
	e.config[ruleID] = config
}

// GetConfig returns the configuration for a specific rule
func (e *Engine) GetConfig(ruleID string) *RuleConfig {
	if cfg, ok := e.config[ruleID]; ok {
		return cfg
	}
	if rule, ok := e.registry.Get(ruleID); ok {
		return DefaultRuleConfig(rule)
	}
	return nil
}

// EnableRule enables a rule
func (e *Engine) EnableRule(ruleID string) {
	if cfg := e.GetConfig(ruleID); cfg != nil {
		cfg.Enabled = true
		e.config[ruleID] = cfg
	}
}

// DisableRule disables a rule
func (e *Engine) DisableRule(ruleID string) {
	if cfg := e.GetConfig(ruleID); cfg != nil {
		cfg.Enabled = false
		e.config[ruleID] = cfg
	}
}

// Evaluate runs all enabled rules over the analysis
func (e *Engine) Evaluate(a *cycles.Analysis) []*types.Finding {
	var findings []*types.Finding

	for _, rule := range e.registry.All() {
		cfg := e.GetConfig(rule.ID())
		if cfg == nil || !cfg.Enabled {
			continue
		}

		for _, f := range rule.Evaluate(a) {
			if cfg.Severity != rule.DefaultSeverity() {
				f.Severity = cfg.Severity
			}
			findings = append(findings, f)
		}
	}

	return findings
}

// Check analyzes the model against the whitelist and returns a complete
// CheckResult with PASS or FAIL computed against failOn
func (e *Engine) Check(path string, g *graph.Graph, w *whitelist.Whitelist, failOn types.Severity) *types.CheckResult {
	result := types.NewCheckResult(path, failOn)

	a := cycles.Analyze(g, w)
	for _, f := range e.Evaluate(a) {
		result.AddFinding(f)
	}

	result.Compute()
	return result
}
