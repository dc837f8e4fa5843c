// Package app wires configuration, traversal, and output together.
package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/BeckettFrey/Bonsai/internal/config"
	"github.com/BeckettFrey/Bonsai/internal/logger"
	"github.com/BeckettFrey/Bonsai/internal/printer"
	"github.com/BeckettFrey/Bonsai/internal/summary"
	"github.com/BeckettFrey/Bonsai/internal/tree"
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	Output io.Writer

	outputFile *os.File
}

// New creates a new App instance
func New(cfg *config.Config) (*App, error) {
	cfg.ResolveColors()

	// Configure color globally
	color.NoColor = !cfg.UseColors

	var output io.Writer = os.Stdout
	var outputFile *os.File
	if cfg.OutputFile != "" {
		file, err := os.Create(cfg.OutputFile)
		if err != nil {
			return nil, fmt.Errorf("create output file: %w", err)
		}
		output = file
		outputFile = file
	}

	level := logger.LevelInfo
	if cfg.Verbose {
		level = logger.LevelDebug
	} else if cfg.Quiet {
		level = logger.LevelWarn
	}
	log := logger.New(os.Stderr, level, cfg.UseColors)

	return &App{
		cfg:        cfg,
		log:        log,
		Output:     output,
		outputFile: outputFile,
	}, nil
}

// Close releases the output file, if one was opened.
func (a *App) Close() error {
	if a.outputFile != nil {
		return a.outputFile.Close()
	}
	return nil
}

// Run executes the main application logic
func (a *App) Run() error {
	startTime := time.Now()

	if a.cfg.Verbose {
		a.log.Debug("Directory: %s", a.cfg.RootDir)
		a.log.Debug("Max depth: %d", a.cfg.MaxDepth)
		a.log.Debug("Color output: %v", a.cfg.UseColors)
		a.log.Debug("Gitignore: %v, hidden: %v", a.cfg.RespectGitignore, a.cfg.ShowHidden)
		if len(a.cfg.IgnorePatterns) > 0 {
			a.log.Debug("Ignore patterns: %v", a.cfg.IgnorePatterns)
		}
		if len(a.cfg.IncludePatterns) > 0 {
			a.log.Debug("Include patterns: %v", a.cfg.IncludePatterns)
		}
	}

	builder, err := tree.New(
		tree.WithMaxDepth(a.cfg.MaxDepth),
		tree.WithShowHidden(a.cfg.ShowHidden),
		tree.WithGitignore(a.cfg.RespectGitignore),
		tree.WithSizes(a.cfg.ShowSizes),
		tree.WithDefaultPatterns(config.DefaultIgnores()),
		tree.WithIgnorePatterns(a.cfg.IgnorePatterns),
		tree.WithIncludePatterns(a.cfg.IncludePatterns),
		tree.WithLogger(a.log),
	)
	if err != nil {
		return err
	}

	res, err := builder.Build(a.cfg.RootDir)
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		a.log.Warn("%s: %s (%s)", w.Reason, w.Path, w.Detail)
	}

	p := printer.New().
		WithOutput(a.Output).
		WithColors(a.cfg.UseColors).
		WithIcons(a.cfg.ShowIcons).
		WithSizes(a.cfg.ShowSizes).
		WithIconOverrides(a.cfg.IconOverrides)

	switch a.cfg.Format {
	case config.FormatJSON:
		err = p.WithColors(false).PrintJSON(res.Root)
	default:
		err = p.PrintTree(res.Root)
	}
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	summary.DisplayResults(a.log, res.Root, time.Since(startTime), a.cfg.Quiet)

	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, res.Skipped, os.Stderr, a.cfg.Quiet)
	}
	return nil
}
