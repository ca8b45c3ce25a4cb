package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/trujunzhang/cyclefinder/internal/annotation"
	"github.com/trujunzhang/cyclefinder/internal/config"
	"github.com/trujunzhang/cyclefinder/internal/cycles"
	"github.com/trujunzhang/cyclefinder/internal/git"
	"github.com/trujunzhang/cyclefinder/internal/graph"
	"github.com/trujunzhang/cyclefinder/internal/loader"
	"github.com/trujunzhang/cyclefinder/internal/output"
	"github.com/trujunzhang/cyclefinder/internal/pathfilter"
	"github.com/trujunzhang/cyclefinder/internal/rules"
	"github.com/trujunzhang/cyclefinder/internal/types"
	"github.com/trujunzhang/cyclefinder/internal/whitelist"
)

var (
	formatFlag    string
	outputFlag    string
	failOnFlag    string
	whitelistFlag []string
	sinceFlag     string
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Detect reference cycles and evaluate policy",
	Long: `Analyze the model files in a directory, enumerate the reference cycles
their strong references form, and report every cycle not accepted by the
whitelist.

The exit code is 1 when any finding reaches the fail-on severity, so the
command can gate CI.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&formatFlag, "format", "", "Output format: "+strings.Join(output.ValidFormats(), ", "))
	checkCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write output to file instead of stdout")
	checkCmd.Flags().StringVar(&failOnFlag, "fail-on", "", "Fail on severity: ERROR, WARNING, NOTICE")
	checkCmd.Flags().StringArrayVarP(&whitelistFlag, "whitelist", "w", nil, "Additional whitelist file (repeatable)")
	checkCmd.Flags().StringVar(&sinceFlag, "since", "", "Report only cycles not present at the given git ref")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	cfg, err := config.Load(configFlag, dir)
	if err != nil {
		return err
	}

	format := formatFlag
	if format == "" {
		format = cfg.Output.Format
	}
	if !output.IsValidFormat(format) {
		return fmt.Errorf("invalid format %q (valid formats: %s)", format, strings.Join(output.ValidFormats(), ", "))
	}

	failOnStr := failOnFlag
	if failOnStr == "" {
		failOnStr = cfg.Policy.FailOn
	}
	failOn, err := types.ParseSeverity(failOnStr)
	if err != nil {
		return fmt.Errorf("invalid --fail-on value: %w", err)
	}

	logger := newLogger()

	g, err := loadModel(dir, cfg, logger)
	if err != nil {
		return err
	}

	w, wlFiles, err := loadWhitelist(dir, cfg, whitelistFlag)
	if err != nil {
		return err
	}

	engine := rules.NewDefaultEngine()
	applyRuleConfigs(engine, cfg)

	result := engine.Check(dir, g, w, failOn)
	result.WhitelistFiles = wlFiles

	if sinceFlag != "" {
		baseSigs, err := signaturesAt(dir, sinceFlag, cfg, logger)
		if err != nil {
			return err
		}
		result = dropBaseCycles(result, baseSigs, sinceFlag)
	}

	var writer *os.File
	if outputFlag != "" {
		f, err := os.Create(outputFlag)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	} else {
		writer = os.Stdout
	}

	// Skip output if quiet and nothing failed
	if !quietFlag || result.Result == "FAIL" {
		colorEnabled := shouldUseColor(writer, resolveColorMode(cmd, cfg))
		renderer := output.NewRenderer(output.Format(format), colorEnabled)
		if err := renderer.Render(writer, result); err != nil {
			return fmt.Errorf("failed to render output: %w", err)
		}
	}

	// Set exit code based on result
	if result.Result == "FAIL" {
		os.Exit(1)
	}

	return nil
}

// loadModel reads the model files under dir selected by the configured
// include and exclude patterns
func loadModel(dir string, cfg *config.Config, logger hclog.Logger) (*graph.Graph, error) {
	filter := pathfilter.New(cfg.Paths.Include, cfg.Paths.Exclude)
	return loader.NewWithLogger(logger.Named("loader")).Load(dir, filter)
}

// loadWhitelist assembles the whitelist registry from the configured
// files, the files discovered under dir, extra files from the command
// line, and inline annotations. It returns the registry together with
// the list of files it was built from.
func loadWhitelist(dir string, cfg *config.Config, extra []string) (*whitelist.Whitelist, []string, error) {
	files := cfg.WhitelistFiles()

	discovered, err := pathfilter.New(cfg.Whitelist.Include, cfg.Paths.Exclude).FilterFilesAbs(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to discover whitelist files: %w", err)
	}
	sort.Strings(discovered)
	files = append(files, discovered...)
	files = append(files, extra...)

	w, err := whitelist.Load(files...)
	if err != nil {
		return nil, nil, err
	}

	if cfg.IsAnnotationsEnabled() {
		if err := applyAnnotations(w, dir, cfg); err != nil {
			return nil, nil, err
		}
	}

	return w, files, nil
}

// applyAnnotations scans the model files for inline whitelist comments
// and adds them to the registry
func applyAnnotations(w *whitelist.Whitelist, dir string, cfg *config.Config) error {
	filter := pathfilter.New(cfg.Paths.Include, cfg.Paths.Exclude)
	files, err := filter.FilterFilesAbs(dir)
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		annotations, err := annotation.ParseFile(path, src)
		if err != nil {
			return err
		}
		if err := annotation.Apply(w, annotations); err != nil {
			return err
		}
	}
	return nil
}

// applyRuleConfigs overlays the rules blocks of the configuration onto
// the engine's defaults
func applyRuleConfigs(engine *rules.Engine, cfg *config.Config) {
	for _, rc := range cfg.Rules {
		id, ok := config.ResolveRuleID(rc.ID)
		if !ok {
			continue // Validate already rejected unknown rules
		}
		ecfg := engine.GetConfig(id)
		if rc.Enabled != nil {
			ecfg.Enabled = *rc.Enabled
		}
		if rc.Severity != nil {
			if sev, err := types.ParseSeverity(*rc.Severity); err == nil {
				ecfg.Severity = sev
			}
		}
		engine.SetConfig(id, ecfg)
	}
}

// signaturesAt enumerates the cycles of the model as of ref, in a
// detached worktree, and returns their signatures
func signaturesAt(dir, ref string, cfg *config.Config, logger hclog.Logger) (map[string]bool, error) {
	if err := git.CheckMinVersion(); err != nil {
		return nil, err
	}

	// Prune worktrees left behind by interrupted runs
	git.CleanupOrphanedWorktrees(dir)

	wt, err := git.CreateWorktree(dir, ref)
	if err != nil {
		return nil, err
	}
	defer wt.Remove()

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	// Resolve symlinks so Rel agrees with the root git reports
	repoRoot := wt.RepoDir
	if resolved, err := filepath.EvalSymlinks(repoRoot); err == nil {
		repoRoot = resolved
	}
	if resolved, err := filepath.EvalSymlinks(absDir); err == nil {
		absDir = resolved
	}
	rel, err := filepath.Rel(repoRoot, absDir)
	if err != nil {
		return nil, fmt.Errorf("model directory is outside the repository: %w", err)
	}
	baseDir := filepath.Join(wt.Path, rel)

	logger.Debug("analyzing base revision", "ref", ref, "sha", wt.SHA, "dir", baseDir)

	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		// The model directory did not exist at the base ref, so every cycle is new
		return map[string]bool{}, nil
	}

	baseGraph, err := loadModel(baseDir, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load model at %s: %w", ref, err)
	}

	sigs := make(map[string]bool)
	for _, c := range cycles.Enumerate(baseGraph) {
		sigs[c.Signature()] = true
	}
	return sigs, nil
}

// dropBaseCycles rebuilds the result keeping only findings whose cycle
// was not present at the base revision. Findings without a cycle, such
// as unused whitelist entries, are kept.
func dropBaseCycles(result *types.CheckResult, baseSigs map[string]bool, ref string) *types.CheckResult {
	filtered := types.NewCheckResult(result.Path, result.FailOn)
	filtered.BaseRef = ref
	filtered.WhitelistFiles = result.WhitelistFiles

	for _, f := range result.Findings {
		if len(f.Cycle) > 0 {
			c := &cycles.Cycle{Edges: f.Cycle}
			if baseSigs[c.Signature()] {
				continue
			}
		}
		filtered.AddFinding(f)
	}

	filtered.Compute()
	return filtered
}

// resolveColorMode returns the color mode, preferring an explicit
// --color flag over the configuration file
func resolveColorMode(cmd *cobra.Command, cfg *config.Config) string {
	if cmd.Flags().Changed("color") {
		return colorFlag
	}
	if cfg.Output.Color != "" {
		return cfg.Output.Color
	}
	return colorFlag
}

func shouldUseColor(f *os.File, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // auto
		// Check if the writer is a terminal
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
}
