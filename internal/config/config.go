// Package config holds application configuration settings
package config

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by the -f flag.
const (
	FormatTree = "tree"
	FormatJSON = "json"
)

// Config holds all application configuration settings
type Config struct {
	// Directory settings
	RootDir  string
	MaxDepth int

	// Filtering settings
	ShowHidden       bool
	RespectGitignore bool
	IgnorePatterns   []string
	IncludePatterns  []string

	// Display settings
	ShowIcons   bool
	ShowSizes   bool
	NoColor     bool
	UseColors   bool
	Format      string
	OutputFile  string
	ShowSkipped bool

	// Logging settings
	Verbose bool
	Quiet   bool

	// Version info
	ShowVersion bool
	Version     string

	// Icon overrides loaded from a config file, keyed by extension.
	IconOverrides map[string]string
}

// New returns a Config with defaults applied. Flag values are bound on top of
// it by the CLI layer.
func New() *Config {
	return &Config{
		RootDir:          ".",
		MaxDepth:         -1,
		RespectGitignore: true,
		Format:           FormatTree,
		Version:          "1.0.0",
	}
}

// DefaultIgnores are the built-in patterns applied before any .gitignore.
func DefaultIgnores() []string {
	return []string{".git/"}
}

// Validate checks settings that cannot be expressed through flag types alone.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatTree, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q (want %q or %q)", c.Format, FormatTree, FormatJSON)
	}
	if c.Verbose && c.Quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}
	return nil
}

// ResolveColors decides whether colored output should be used, honoring the
// --no-color flag, the NO_COLOR convention, and whether stdout is a terminal.
func (c *Config) ResolveColors() {
	if c.NoColor || os.Getenv("NO_COLOR") != "" || c.OutputFile != "" {
		c.UseColors = false
		return
	}
	c.UseColors = isatty.IsTerminal(os.Stdout.Fd())
}

// FileConfig is the optional on-disk configuration file.
type FileConfig struct {
	DefaultIgnores []string          `yaml:"default_ignores"`
	Icons          map[string]string `yaml:"icons"`
	Color          *bool             `yaml:"color"`
}

// LoadFile reads a YAML configuration file and folds it into c. A missing
// file is not an error.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %q: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}

	if len(fc.DefaultIgnores) > 0 {
		c.IgnorePatterns = append(fc.DefaultIgnores, c.IgnorePatterns...)
	}
	if len(fc.Icons) > 0 {
		c.IconOverrides = fc.Icons
	}
	if fc.Color != nil && !*fc.Color {
		c.NoColor = true
	}
	return nil
}
