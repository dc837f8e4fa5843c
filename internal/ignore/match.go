package ignore

import (
	"strings"
)

// DefaultMatchBudget bounds the total number of matching steps spent on a
// single path across every pattern in a set. Adversarial pattern files full of
// * and ** combinations would otherwise backtrack exponentially.
const DefaultMatchBudget = 10000

// matchBudget is the shared step counter for one evaluation.
type matchBudget struct {
	steps int
	max   int
}

func newMatchBudget(max int) *matchBudget {
	if max == 0 {
		max = DefaultMatchBudget
	}
	return &matchBudget{max: max}
}

// tick consumes one step and reports whether the budget still holds.
func (b *matchBudget) tick() bool {
	b.steps++
	if b.max < 0 {
		return true
	}
	return b.steps <= b.max
}

// Match reports whether the pattern matches the given path, a slash-separated
// path relative to the traversal root.
func (p *Pattern) Match(path string, isDir bool) bool {
	path = normalizePath(path)
	return p.match(path, splitPath(path), isDir, newMatchBudget(0))
}

func (p *Pattern) match(path string, segs []string, isDir bool, b *matchBudget) bool {
	if !b.tick() {
		return false
	}

	// Directory-only patterns never match files. Exclusion of the files under
	// a matched directory is the traversal's job: it prunes the whole subtree.
	if p.DirOnly && !isDir {
		return false
	}

	// Scope the path to the pattern's base directory.
	if p.Base != "" {
		if !strings.HasPrefix(path, p.Base+"/") {
			return false
		}
		segs = splitPath(path[len(p.Base)+1:])
	}
	if len(segs) == 0 {
		return false
	}

	if p.Anchored {
		return matchSegments(p.segments, segs, b)
	}

	// Floating patterns match any contiguous window ending at the path's tail.
	for start := 0; start < len(segs); start++ {
		if matchSegments(p.segments, segs[start:], b) {
			return true
		}
		if !b.tick() {
			return false
		}
	}
	return false
}

// matchSegments matches pattern segments against path segments, consuming
// both completely. A ** segment may swallow zero or more path segments; every
// split is tried until one fits or the budget runs out.
func matchSegments(pattern []segment, segs []string, b *matchBudget) bool {
	if !b.tick() {
		return false
	}
	if len(pattern) == 0 {
		return len(segs) == 0
	}

	seg := pattern[0]
	if seg.doubleStar {
		for i := 0; i <= len(segs); i++ {
			if matchSegments(pattern[1:], segs[i:], b) {
				return true
			}
			if !b.tick() {
				return false
			}
		}
		return false
	}

	if len(segs) == 0 {
		return false
	}
	if !matchSegment(seg, segs[0], b) {
		return false
	}
	return matchSegments(pattern[1:], segs[1:], b)
}

func matchSegment(seg segment, name string, b *matchBudget) bool {
	if seg.doubleStar {
		return true
	}
	if !seg.wildcard {
		return seg.text == name
	}
	return matchGlob(seg.text, name, b)
}

// matchGlob matches a single-segment glob against one path component.
// * matches zero or more characters, ? exactly one, [...] a character class
// and \ escapes the following character. None of them cross a separator;
// separators were consumed during segmentation.
func matchGlob(pattern, s string, b *matchBudget) bool {
	// Fast path for the common prefix*/*suffix shapes.
	if !strings.ContainsAny(pattern, `?[\`) {
		if pattern == "*" {
			return true
		}
		if strings.Count(pattern, "*") == 1 {
			if strings.HasSuffix(pattern, "*") {
				return strings.HasPrefix(s, pattern[:len(pattern)-1])
			}
			if strings.HasPrefix(pattern, "*") {
				return strings.HasSuffix(s, pattern[1:])
			}
		}
	}

	for len(pattern) > 0 {
		if !b.tick() {
			return false
		}

		if pattern[0] == '*' {
			for len(pattern) > 0 && pattern[0] == '*' {
				pattern = pattern[1:]
			}
			if len(pattern) == 0 {
				return true
			}
			for i := 0; i <= len(s); i++ {
				if matchGlob(pattern, s[i:], b) {
					return true
				}
				if !b.tick() {
					return false
				}
			}
			return false
		}

		if pattern[0] == '?' {
			if len(s) == 0 {
				return false
			}
			pattern, s = pattern[1:], s[1:]
			continue
		}

		if pattern[0] == '[' {
			if len(s) == 0 {
				return false
			}
			ok, rest := matchClass(pattern, s[0])
			if !ok {
				return false
			}
			pattern, s = rest, s[1:]
			continue
		}

		if pattern[0] == '\\' && len(pattern) > 1 {
			pattern = pattern[1:]
		}
		if len(s) == 0 || pattern[0] != s[0] {
			return false
		}
		pattern, s = pattern[1:], s[1:]
	}

	return len(s) == 0
}

// matchClass matches one byte against the character class opening the
// pattern. It supports ranges and negation with a leading ! or ^. It returns
// the outcome and the pattern remainder past the closing bracket.
func matchClass(pattern string, c byte) (matched bool, rest string) {
	i := 1 // past '['
	negate := false
	if i < len(pattern) && (pattern[i] == '!' || pattern[i] == '^') {
		negate = true
		i++
	}

	first := true
	for i < len(pattern) {
		if pattern[i] == ']' && !first {
			if negate {
				matched = !matched
			}
			return matched, pattern[i+1:]
		}
		first = false

		lo := pattern[i]
		if lo == '\\' && i+1 < len(pattern) {
			i++
			lo = pattern[i]
		}
		hi := lo
		if i+2 < len(pattern) && pattern[i+1] == '-' && pattern[i+2] != ']' {
			i += 2
			hi = pattern[i]
			if hi == '\\' && i+1 < len(pattern) {
				i++
				hi = pattern[i]
			}
		}
		if lo <= c && c <= hi {
			matched = true
		}
		i++
	}

	// Unterminated classes are rejected at compile time; if one slips through
	// it matches nothing.
	return false, ""
}
