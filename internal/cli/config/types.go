// Package config provides configuration management for the usemap CLI.
//
// Configuration merges four layers, lowest precedence first: built-in
// defaults, the usemap.yaml config file, USEMAP_* environment
// variables, and command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	BaseDir      string      `koanf:"base_dir"`
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output"`
	Lint         *LintConfig `koanf:"lint"`
}

// LintConfig carries rule configuration from the config file.
type LintConfig struct {
	// Disabled lists rule IDs to skip.
	Disabled []string `koanf:"disabled"`
	// Severity maps rule IDs to severity override names.
	Severity map[string]string `koanf:"severity"`
}

// Default configuration values.
const (
	DefaultOutput = "auto" // Auto-detect: TTY=styled text, non-TTY=plain text
)
