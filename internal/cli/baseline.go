package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trujunzhang/cyclefinder/internal/config"
	"github.com/trujunzhang/cyclefinder/internal/cycles"
	"github.com/trujunzhang/cyclefinder/internal/git"
)

var (
	baselineOutputFlag    string
	baselineWhitelistFlag []string
)

var baselineCmd = &cobra.Command{
	Use:   "baseline [dir]",
	Short: "Generate whitelist entries for the current cycles",
	Long: `Analyze the model and emit whitelist entries accepting every reference
cycle currently reported. Committing the generated file makes check pass,
so new work starts from a clean slate while the accepted cycles stay
visible in the whitelist.

Cycles already accepted by the loaded whitelist are not repeated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBaseline,
}

func init() {
	rootCmd.AddCommand(baselineCmd)

	baselineCmd.Flags().StringVarP(&baselineOutputFlag, "output", "o", "", "Write entries to file instead of stdout")
	baselineCmd.Flags().StringArrayVarP(&baselineWhitelistFlag, "whitelist", "w", nil, "Additional whitelist file (repeatable)")
}

func runBaseline(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	cfg, err := config.Load(configFlag, dir)
	if err != nil {
		return err
	}

	logger := newLogger()

	g, err := loadModel(dir, cfg, logger)
	if err != nil {
		return err
	}

	w, _, err := loadWhitelist(dir, cfg, baselineWhitelistFlag)
	if err != nil {
		return err
	}

	entries := baselineEntries(cycles.Analyze(g, w))

	var b strings.Builder
	b.WriteString("# Reference cycles accepted by cyclefinder baseline\n")
	if head, err := git.GetHEAD(dir); err == nil {
		fmt.Fprintf(&b, "# Model state as of commit %s\n", head)
	}
	b.WriteString("\n")
	for _, e := range entries {
		b.WriteString(e)
		b.WriteString("\n")
	}

	if baselineOutputFlag != "" {
		if err := os.WriteFile(baselineOutputFlag, []byte(b.String()), 0644); err != nil {
			return fmt.Errorf("failed to write whitelist file: %w", err)
		}
		fmt.Printf("Wrote %d entries to %s\n", len(entries), baselineOutputFlag)
		return nil
	}

	fmt.Print(b.String())
	return nil
}

// baselineEntries returns one whitelist entry per unsuppressed cycle: a
// typed field rule for the cycle's first field edge, or an outer rule
// when the cycle consists only of outer edges. Each entry matches an
// edge of the cycle it was generated from, so loading the entries
// suppresses every cycle reported here.
func baselineEntries(a *cycles.Analysis) []string {
	seen := make(map[string]bool)
	var entries []string

	for _, c := range a.Cycles {
		if cycles.SuppressionReason(c, a.Whitelist) != "" {
			continue
		}

		entry := ""
		for _, e := range c.Edges {
			if !e.Outer {
				entry = fmt.Sprintf("field %s %s", e.Field, e.To)
				break
			}
		}
		if entry == "" {
			entry = fmt.Sprintf("outer %s", c.Edges[0].From)
		}

		if !seen[entry] {
			seen[entry] = true
			entries = append(entries, entry)
		}
	}

	sort.Strings(entries)
	return entries
}
