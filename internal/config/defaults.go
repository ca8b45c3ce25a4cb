package config

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Version: 1,
		Paths: &PathsConfig{
			Include: []string{"**/*.graph.hcl"},
			Exclude: []string{".git/**"},
		},
		Whitelist: &WhitelistConfig{
			Files:   []string{},
			Include: []string{"**/*.whitelist"},
		},
		Output: &OutputConfig{
			Format: "text",
			Color:  "auto",
		},
		Policy: &PolicyConfig{
			FailOn: "ERROR",
		},
		Rules: []*RuleConfig{},
	}
}

// DefaultConfigHCL returns a documented starter configuration file
func DefaultConfigHCL() string {
	return `# cyclefinder configuration
version = 1

# Which files make up the reference model.
paths {
  include = ["**/*.graph.hcl"]
  exclude = [".git/**"]
}

# Where whitelist entries come from.
whitelist {
  # Explicit whitelist files, resolved relative to this config file.
  # A listed file that cannot be read fails the run.
  # files = ["cycles.whitelist"]

  # Globs discovering whitelist files under the model directory.
  include = ["**/*.whitelist"]

  # Scan model files for inline "cyclefinder:whitelist <entry>" comments.
  annotations = true
}

output {
  # text, json, compact, sarif, junit or checkstyle
  format = "text"

  # auto, always or never
  color = "auto"
}

policy {
  # Lowest severity that fails the run: ERROR, WARNING or NOTICE.
  fail_on = "ERROR"
}

# Per-rule overrides, keyed by rule ID or rule name.
# rules "CY100" {
#   enabled  = true
#   severity = "WARNING"
# }
`
}
