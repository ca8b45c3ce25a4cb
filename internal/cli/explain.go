package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trujunzhang/cyclefinder/internal/rules"
)

var explainCmd = &cobra.Command{
	Use:   "explain <rule>",
	Short: "Show rule documentation",
	Long: `Show detailed documentation for a rule, including:
- Rule ID and name
- Default severity
- Description
- Example model that triggers the rule
- Remediation guidance, including which whitelist entry to use

Rules can be referenced by ID or by name.

Example:
  cyclefinder explain CY001
  cyclefinder explain reference-cycle`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	rule, ok := rules.DefaultRegistry.Get(strings.ToUpper(args[0]))
	if !ok {
		rule, ok = rules.DefaultRegistry.GetByName(strings.ToLower(args[0]))
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown rule: %s\n", args[0])
		if suggestion, found := rules.DefaultRegistry.Suggest(args[0]); found {
			fmt.Fprintf(os.Stderr, "Did you mean %s?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Available rules:")
		for _, id := range rules.DefaultRegistry.IDs() {
			r, _ := rules.DefaultRegistry.Get(id)
			fmt.Fprintf(os.Stderr, "  %s  %s\n", id, r.Name())
		}
		os.Exit(2)
	}

	doc := rules.GetDocumentation(rule.ID())

	fmt.Printf("%s: %s\n", doc.ID, doc.Name)
	fmt.Printf("Severity: %s\n", doc.DefaultSeverity)
	fmt.Println()
	fmt.Println(doc.Description)

	if doc.Example != "" {
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println(indent(doc.Example, "  "))
	}

	if doc.Remediation != "" {
		fmt.Println()
		fmt.Println("Remediation:")
		fmt.Println(indent(doc.Remediation, "  "))
	}

	return nil
}

// indent adds a prefix to each line of text
func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
