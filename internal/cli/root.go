// Package cli defines the bonsai command-line interface.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/BeckettFrey/Bonsai/internal/app"
	"github.com/BeckettFrey/Bonsai/internal/config"
)

// configFileName is looked up inside the scanned directory; flag values take
// precedence over what it supplies.
const configFileName = ".bonsai.yml"

// NewRootCommand builds the bonsai root command around cfg. Flags write
// straight into cfg; the positional argument, when given, is the directory to
// scan.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	var noGitignore bool

	cmd := &cobra.Command{
		Use:   "bonsai [path]",
		Short: "Print a pruned directory tree",
		Long: `Bonsai prints a directory tree with the noise trimmed away.

Hidden entries and anything matched by .gitignore files are pruned by
default. Patterns follow gitignore syntax, including negation, anchoring,
directory-only rules and ** wildcards.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.ShowVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "bonsai version %s\n", cfg.Version)
				return nil
			}

			if len(args) == 1 {
				cfg.RootDir = args[0]
			}
			cfg.RespectGitignore = !noGitignore

			if err := cfg.LoadFile(filepath.Join(cfg.RootDir, configFileName)); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Run()
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&cfg.MaxDepth, "max-depth", "d", cfg.MaxDepth, "maximum directory depth to list (-1 = unlimited)")
	flags.BoolVarP(&cfg.ShowHidden, "show-hidden", "a", false, "include hidden entries (names starting with '.')")
	flags.BoolVarP(&cfg.ShowIcons, "icons", "i", false, "show file-type icons")
	flags.BoolVarP(&cfg.ShowSizes, "size", "s", false, "show file sizes")
	flags.BoolVar(&cfg.NoColor, "no-color", false, "disable color output")
	flags.BoolVar(&noGitignore, "no-gitignore", false, "do not read .gitignore files")
	flags.StringArrayVar(&cfg.IgnorePatterns, "ignore", nil, "extra ignore pattern (gitignore syntax, repeatable)")
	flags.StringArrayVar(&cfg.IncludePatterns, "include", nil, "pattern forced back into the tree (repeatable)")
	flags.StringVarP(&cfg.OutputFile, "output", "o", "", "write the tree to a file instead of stdout")
	flags.StringVarP(&cfg.Format, "format", "f", cfg.Format, "output format: tree or json")
	flags.BoolVar(&cfg.ShowSkipped, "show-skipped", false, "list skipped entries and reasons at the end")
	flags.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "suppress info messages")
	flags.BoolVar(&cfg.ShowVersion, "version", false, "print version information")

	return cmd
}

// Execute runs the CLI with fresh defaults.
func Execute() error {
	return NewRootCommand(config.New()).Execute()
}
