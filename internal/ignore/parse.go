package ignore

import (
	"errors"
	"strings"
)

// ParseWarning reports a .gitignore line that was skipped during parsing.
// Malformed lines never abort a traversal; they are collected and surfaced to
// the caller instead.
type ParseWarning struct {
	Pattern string // the problematic line
	Base    string // directory containing the file, relative to the root
	Line    int    // 1-indexed line number
	Reason  string
}

// ParsePatterns parses .gitignore content declared in the directory base
// (slash-separated, relative to the traversal root, empty for the root).
// Blank lines and comments are skipped silently; invalid patterns become
// warnings. Content is normalized first: BOM stripped, CRLF and lone CR
// folded to LF.
func ParsePatterns(content []byte, base string) ([]*Pattern, []ParseWarning) {
	content = normalizeContent(content)
	base = normalizeBase(base)

	var patterns []*Pattern
	var warnings []ParseWarning

	for i, line := range strings.Split(string(content), "\n") {
		trimmed := trimTrailingWhitespace(line)
		if trimmed == "" {
			continue
		}
		// Escaped hashes (\#) compile as literals; everything else starting
		// with # is a comment.
		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		p, err := CompileAt(line, base)
		if err != nil {
			reason := "invalid pattern"
			var perr *InvalidPatternError
			if errors.As(err, &perr) {
				reason = perr.Reason
			}
			warnings = append(warnings, ParseWarning{
				Pattern: line,
				Base:    base,
				Line:    i + 1,
				Reason:  reason,
			})
			continue
		}
		patterns = append(patterns, p)
	}

	return patterns, warnings
}
