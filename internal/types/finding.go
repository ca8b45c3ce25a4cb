package types

// Finding represents a single rule violation or observation
type Finding struct {
	// RuleID is the unique identifier for the rule (e.g., "CY001")
	RuleID string `json:"rule_id"`

	// RuleName is the human-readable rule name (e.g., "reference-cycle")
	RuleName string `json:"rule_name"`

	// Severity is the severity level of this finding
	Severity Severity `json:"severity"`

	// Message is a short description of the finding
	Message string `json:"message"`

	// Detail provides additional context about the finding
	Detail string `json:"detail,omitempty"`

	// Location is the source location the finding points at (nil if not applicable)
	Location *FileRange `json:"location,omitempty"`

	// Cycle is the reference cycle this finding describes, one edge per hop.
	// Empty for findings that are not about a cycle.
	Cycle []CycleEdge `json:"cycle,omitempty"`

	// Ignored indicates the finding was suppressed by a whitelist entry
	Ignored bool `json:"ignored"`

	// IgnoreReason names the whitelist rule shape that suppressed the finding
	IgnoreReason string `json:"ignore_reason,omitempty"`
}

// NewFinding creates a new Finding with the given parameters
func NewFinding(ruleID, ruleName string, severity Severity, message string) *Finding {
	return &Finding{
		RuleID:   ruleID,
		RuleName: ruleName,
		Severity: severity,
		Message:  message,
	}
}

// WithDetail sets the detail field and returns the finding for chaining
func (f *Finding) WithDetail(detail string) *Finding {
	f.Detail = detail
	return f
}

// WithLocation sets the location and returns the finding for chaining
func (f *Finding) WithLocation(loc *FileRange) *Finding {
	f.Location = loc
	return f
}

// WithCycle sets the cycle payload and returns the finding for chaining
func (f *Finding) WithCycle(edges []CycleEdge) *Finding {
	f.Cycle = edges
	return f
}

// Suppress marks the finding as ignored with the given reason
func (f *Finding) Suppress(reason string) *Finding {
	f.Ignored = true
	f.IgnoreReason = reason
	return f
}

// CheckResult represents the result of running a check
type CheckResult struct {
	// Path is the model directory that was analyzed
	Path string `json:"path"`

	// BaseRef is the git ref the findings were compared against, if any
	BaseRef string `json:"base_ref,omitempty"`

	// WhitelistFiles lists the whitelist files that were loaded
	WhitelistFiles []string `json:"whitelist_files,omitempty"`

	// Findings is the list of all findings
	Findings []*Finding `json:"findings"`

	// Summary contains counts by severity
	Summary Summary `json:"summary"`

	// Result is PASS or FAIL based on the policy
	Result string `json:"result"`

	// FailOn is the severity threshold used for the result
	FailOn Severity `json:"fail_on"`
}

// Summary contains counts of findings by severity
type Summary struct {
	Error   int `json:"error"`
	Warning int `json:"warning"`
	Notice  int `json:"notice"`
	Ignored int `json:"ignored"`
	Total   int `json:"total"`
}

// NewCheckResult creates a new CheckResult
func NewCheckResult(path string, failOn Severity) *CheckResult {
	return &CheckResult{
		Path:     path,
		Findings: make([]*Finding, 0),
		FailOn:   failOn,
	}
}

// AddFinding adds a finding to the result
func (r *CheckResult) AddFinding(f *Finding) {
	r.Findings = append(r.Findings, f)
}

// Compute calculates the summary and result
func (r *CheckResult) Compute() {
	r.Summary = Summary{}
	for _, f := range r.Findings {
		if f.Ignored {
			r.Summary.Ignored++
			continue
		}
		switch f.Severity {
		case SeverityError:
			r.Summary.Error++
		case SeverityWarning:
			r.Summary.Warning++
		case SeverityNotice:
			r.Summary.Notice++
		}
	}
	r.Summary.Total = len(r.Findings)

	failed := false
	switch r.FailOn {
	case SeverityError:
		failed = r.Summary.Error > 0
	case SeverityWarning:
		failed = r.Summary.Error > 0 || r.Summary.Warning > 0
	case SeverityNotice:
		failed = r.Summary.Error > 0 || r.Summary.Warning > 0 || r.Summary.Notice > 0
	}

	if failed {
		r.Result = "FAIL"
	} else {
		r.Result = "PASS"
	}
}
