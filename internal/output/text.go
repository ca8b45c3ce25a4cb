package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/trujunzhang/cyclefinder/internal/types"
)

// TextRenderer renders output in human-readable text format
type TextRenderer struct {
	ColorEnabled bool
}

// Render writes the check result in text format
func (r *TextRenderer) Render(w io.Writer, result *types.CheckResult) error {
	// Configure color
	if !r.ColorEnabled {
		color.NoColor = true
	}

	// Header
	if result.BaseRef != "" {
		fmt.Fprintf(w, "cyclefinder: analyzing %s (since %s)\n\n", result.Path, result.BaseRef)
	} else {
		fmt.Fprintf(w, "cyclefinder: analyzing %s\n\n", result.Path)
	}

	// Findings
	for _, f := range result.Findings {
		r.renderFinding(w, f)
	}

	// Separator
	fmt.Fprintln(w, strings.Repeat("-", 60))

	// Summary
	r.renderSummary(w, result)

	// Result
	r.renderResult(w, result)

	return nil
}

func (r *TextRenderer) renderFinding(w io.Writer, f *types.Finding) {
	// Severity with color
	severityStr := r.colorSeverity(f.Severity)
	fmt.Fprintf(w, "%s  %s  %s\n", severityStr, f.RuleID, f.RuleName)

	// Location
	if f.Location != nil {
		fmt.Fprintf(w, "  %s:%d\n", f.Location.Filename, f.Location.Line)
	}

	// Message
	fmt.Fprintf(w, "  %s\n", f.Message)

	// Cycle edges, one per line
	for _, e := range f.Cycle {
		if e.DeclRange.Filename != "" {
			fmt.Fprintf(w, "    %s at %s\n", e.Describe(), e.DeclRange.String())
		} else {
			fmt.Fprintf(w, "    %s\n", e.Describe())
		}
	}

	// Ignored status
	if f.Ignored {
		if f.IgnoreReason != "" {
			fmt.Fprintf(w, "  [IGNORED] reason=%q\n", f.IgnoreReason)
		} else {
			fmt.Fprintln(w, "  [IGNORED]")
		}
	}

	// Detail (if included)
	if f.Detail != "" {
		r.renderIndented(w, f.Detail, "  ")
	}

	fmt.Fprintln(w)
}

// renderIndented writes text with the given prefix on each line
func (r *TextRenderer) renderIndented(w io.Writer, text, prefix string) {
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		fmt.Fprintf(w, "%s%s\n", prefix, line)
	}
}

func (r *TextRenderer) renderSummary(w io.Writer, result *types.CheckResult) {
	parts := []string{}

	if result.Summary.Error > 0 {
		parts = append(parts, fmt.Sprintf("%d error", result.Summary.Error))
	}
	if result.Summary.Warning > 0 {
		parts = append(parts, fmt.Sprintf("%d warning", result.Summary.Warning))
	}
	if result.Summary.Notice > 0 {
		parts = append(parts, fmt.Sprintf("%d notice", result.Summary.Notice))
	}
	if result.Summary.Ignored > 0 {
		parts = append(parts, fmt.Sprintf("%d ignored", result.Summary.Ignored))
	}

	if len(parts) == 0 {
		parts = append(parts, "no issues found")
	}

	fmt.Fprintf(w, "Summary: %s\n", strings.Join(parts, ", "))
}

func (r *TextRenderer) renderResult(w io.Writer, result *types.CheckResult) {
	if result.Result == "PASS" {
		if r.ColorEnabled {
			green := color.New(color.FgGreen).SprintFunc()
			fmt.Fprintf(w, "Result: %s\n", green("PASS"))
		} else {
			fmt.Fprintln(w, "Result: PASS")
		}
	} else {
		if r.ColorEnabled {
			red := color.New(color.FgRed).SprintFunc()
			fmt.Fprintf(w, "Result: %s (cycles detected)\n", red("FAIL"))
		} else {
			fmt.Fprintln(w, "Result: FAIL (cycles detected)")
		}
	}
}

func (r *TextRenderer) colorSeverity(s types.Severity) string {
	str := s.String()
	if !r.ColorEnabled {
		return str
	}

	switch s {
	case types.SeverityError:
		return color.New(color.FgRed, color.Bold).Sprint(str)
	case types.SeverityWarning:
		return color.New(color.FgYellow).Sprint(str)
	case types.SeverityNotice:
		return color.New(color.FgCyan).Sprint(str)
	default:
		return str
	}
}
