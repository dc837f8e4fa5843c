package ignore

// PatternSet is an ordered, append-only collection of compiled patterns.
// Later patterns override earlier ones for the same path, so a set built by
// appending a subtree's .gitignore rules after the inherited ones preserves
// the "closer rule wins" behavior.
//
// Extend returns a fresh snapshot instead of mutating in place: the patterns
// visible at any traversal point are exactly those accumulated along the
// root-to-directory path, and sibling subtrees never see each other's rules.
type PatternSet struct {
	patterns []*Pattern
	budget   int
}

// NewSet builds a PatternSet from patterns in evaluation order.
func NewSet(patterns ...*Pattern) *PatternSet {
	s := &PatternSet{patterns: make([]*Pattern, len(patterns))}
	copy(s.patterns, patterns)
	return s
}

// Extend returns a new set holding the receiver's patterns followed by
// additional. The receiver is left untouched.
func (s *PatternSet) Extend(additional []*Pattern) *PatternSet {
	if len(additional) == 0 {
		return s
	}
	merged := make([]*Pattern, 0, len(s.patterns)+len(additional))
	merged = append(merged, s.patterns...)
	merged = append(merged, additional...)
	return &PatternSet{patterns: merged, budget: s.budget}
}

// WithBudget returns a set with a custom matching-step budget per evaluation.
// Zero selects DefaultMatchBudget, negative disables the limit.
func (s *PatternSet) WithBudget(budget int) *PatternSet {
	return &PatternSet{patterns: s.patterns, budget: budget}
}

// Len returns the number of patterns in the set.
func (s *PatternSet) Len() int {
	return len(s.patterns)
}

// Verdict is the outcome of evaluating a path against a pattern set.
type Verdict struct {
	// Excluded is the final decision after the last matching pattern.
	Excluded bool

	// Matched reports whether any pattern matched at all. When false the
	// path is included by default and Pattern is nil.
	Matched bool

	// Pattern is the deciding (last matching) pattern.
	Pattern *Pattern
}

// Excluded reports whether the path is excluded by the set. The path is
// slash-separated and relative to the traversal root.
func (s *PatternSet) Excluded(path string, isDir bool) bool {
	return s.Evaluate(path, isDir).Excluded
}

// Evaluate runs every pattern in order against the path and keeps the last
// match's polarity, exactly as Git resolves ignore rules. It returns the
// deciding pattern for reporting.
func (s *PatternSet) Evaluate(path string, isDir bool) Verdict {
	path = normalizePath(path)
	if path == "" {
		return Verdict{}
	}
	segs := splitPath(path)
	b := newMatchBudget(s.budget)

	var v Verdict
	for _, p := range s.patterns {
		if p.match(path, segs, isDir, b) {
			v = Verdict{Excluded: !p.Negated, Matched: true, Pattern: p}
		}
	}
	return v
}

// FromCLI compiles command-line pattern lists. Entries from --ignore compile
// as ordinary patterns (negated only when prefixed with !); entries from
// --include compile as forced negations and are appended after all ignore
// patterns so they can override file-sourced rules for the invocation.
// Compilation errors surface as *InvalidPatternError.
func FromCLI(ignore, include []string) ([]*Pattern, error) {
	patterns := make([]*Pattern, 0, len(ignore)+len(include))

	for _, text := range ignore {
		p, err := Compile(text)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}

	for _, text := range include {
		p, err := Compile(text)
		if err != nil {
			return nil, err
		}
		p.Negated = true
		patterns = append(patterns, p)
	}

	return patterns, nil
}
