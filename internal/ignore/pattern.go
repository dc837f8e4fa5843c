package ignore

import (
	"fmt"
	"strings"
)

// InvalidPatternError reports a pattern string that cannot be compiled.
type InvalidPatternError struct {
	Pattern string // the offending pattern text
	Reason  string // why compilation failed
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid ignore pattern %q: %s", e.Pattern, e.Reason)
}

// Pattern is a single compiled ignore rule.
//
// Patterns are evaluated in order against candidate paths; the last matching
// pattern decides the verdict. A negated pattern re-includes a path that an
// earlier pattern excluded.
type Pattern struct {
	// Raw is the original pattern text, kept for diagnostics.
	Raw string

	// Base is the directory the pattern was declared in, as a slash-separated
	// path relative to the traversal root. Empty means the root itself.
	// Patterns only apply to paths under their base.
	Base string

	// Negated patterns re-include paths instead of excluding them.
	Negated bool

	// DirOnly patterns (trailing /) match directories, never files.
	DirOnly bool

	// Anchored patterns must match starting at Base rather than at any depth.
	Anchored bool

	segments []segment
}

// segment is one slash-delimited component of a pattern.
type segment struct {
	text       string
	wildcard   bool // contains *, ?, [ or \ and needs glob matching
	doubleStar bool // ** as a whole segment, matches zero or more components
}

// Compile parses one ignore-pattern string into a Pattern scoped to the root.
// It returns an *InvalidPatternError when the text is empty after trimming,
// contains an unterminated character class, or ends with a lone backslash.
func Compile(text string) (*Pattern, error) {
	return CompileAt(text, "")
}

// CompileAt compiles a pattern declared in the directory base (slash-separated,
// relative to the traversal root, empty for the root).
func CompileAt(text, base string) (*Pattern, error) {
	raw := text
	line := trimTrailingWhitespace(text)

	if line == "" {
		return nil, &InvalidPatternError{Pattern: raw, Reason: "empty pattern"}
	}

	p := &Pattern{Raw: raw, Base: normalizeBase(base)}

	// A leading \! escapes the bang; check it before plain ! so escaped bangs
	// are not read as negation.
	if strings.HasPrefix(line, `\!`) {
		line = line[1:]
	} else if strings.HasPrefix(line, "!") {
		p.Negated = true
		line = line[1:]
	}

	// \# keeps a literal # that would otherwise read as a comment marker.
	if strings.HasPrefix(line, `\#`) {
		line = line[1:]
	}

	if strings.HasSuffix(line, "/") {
		p.DirOnly = true
		line = strings.TrimSuffix(line, "/")
	}

	if line == "" {
		return nil, &InvalidPatternError{Pattern: raw, Reason: "empty pattern"}
	}

	// An odd run of trailing backslashes leaves the last one escaping nothing.
	if n := trailingBackslashes(line); n%2 == 1 {
		return nil, &InvalidPatternError{Pattern: raw, Reason: "trailing backslash"}
	}

	// A leading slash, or any interior slash other than a **/ prefix, anchors
	// the pattern to its base directory.
	if strings.HasPrefix(line, "/") {
		p.Anchored = true
		line = line[1:]
	} else if strings.Contains(line, "/") && !strings.HasPrefix(line, "**/") {
		p.Anchored = true
	}

	segs, err := parseSegments(raw, line)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, &InvalidPatternError{Pattern: raw, Reason: "empty pattern"}
	}
	p.segments = segs

	return p, nil
}

// CompileAll compiles every pattern in texts with the given base, failing on
// the first invalid one.
func CompileAll(texts []string, base string) ([]*Pattern, error) {
	patterns := make([]*Pattern, 0, len(texts))
	for _, t := range texts {
		p, err := CompileAt(t, base)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// parseSegments splits a pattern by "/" and classifies each component.
func parseSegments(raw, line string) ([]segment, error) {
	parts := strings.Split(line, "/")
	segs := make([]segment, 0, len(parts))

	for _, part := range parts {
		// Empty components come from doubled or trailing slashes.
		if part == "" {
			continue
		}

		seg := segment{text: part}
		if part == "**" {
			seg.doubleStar = true
			seg.text = ""
		} else if strings.ContainsAny(part, `*?[\`) {
			if err := checkClasses(raw, part); err != nil {
				return nil, err
			}
			seg.wildcard = true
		}
		segs = append(segs, seg)
	}

	return segs, nil
}

// checkClasses validates the character classes in a segment so that matching
// never sees a malformed one.
func checkClasses(raw, part string) error {
	for i := 0; i < len(part); i++ {
		switch part[i] {
		case '\\':
			i++
		case '[':
			j := i + 1
			if j < len(part) && (part[j] == '!' || part[j] == '^') {
				j++
			}
			// A ] directly after the opening (or the negation marker) is a
			// literal member of the class.
			if j < len(part) && part[j] == ']' {
				j++
			}
			for j < len(part) && part[j] != ']' {
				if part[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(part) {
				return &InvalidPatternError{Pattern: raw, Reason: "unterminated character class"}
			}
			i = j
		}
	}
	return nil
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

// String returns a debug representation of the pattern.
func (p *Pattern) String() string {
	var flags []string
	if p.Negated {
		flags = append(flags, "negated")
	}
	if p.DirOnly {
		flags = append(flags, "dirOnly")
	}
	if p.Anchored {
		flags = append(flags, "anchored")
	}
	s := p.Raw
	if len(flags) > 0 {
		s += " [" + strings.Join(flags, ",") + "]"
	}
	if p.Base != "" {
		s += " @" + p.Base
	}
	return s
}
