// Package summary handles display of scan results and statistics
package summary

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/BeckettFrey/Bonsai/internal/tree"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
}

// DisplayResults shows the end results of a scan operation
func DisplayResults(logger Logger, root *tree.Node, duration time.Duration, quiet bool) {
	if quiet {
		return
	}
	dirs, files := root.Count()
	if dirs > 0 {
		dirs-- // the root itself is not part of the listing
	}
	logger.Info("%d directories, %d files", dirs, files)
	logger.Info("Scan complete in %v.", duration.Round(time.Millisecond))
}

// DisplaySkippedItems formats and prints information about skipped entries
func DisplaySkippedItems(logger Logger, skipped []tree.Skipped, output io.Writer, quiet bool) {
	infoLog := func(format string, args ...interface{}) {
		if !quiet {
			logger.Info(format, args...)
		}
	}

	infoLog("--- Skipped Items (%d) ---", len(skipped))
	if len(skipped) > 0 {
		// Sort for consistent output
		sort.Slice(skipped, func(i, j int) bool {
			return skipped[i].Path < skipped[j].Path
		})
		for _, item := range skipped {
			typeStr := "FILE"
			if item.IsDir {
				typeStr = "DIR " // Add space for alignment
			}
			reason := string(item.Reason)
			if item.Rule != "" {
				reason += ": " + item.Rule
			}
			fmt.Fprintf(output, "Skipped %s: %-.*s [%s]\n",
				typeStr,
				50, // Max width for path column
				item.Path,
				reason,
			)
		}
	} else {
		infoLog("No items were skipped.")
	}
	infoLog("--- End Skipped Items ---")
}
