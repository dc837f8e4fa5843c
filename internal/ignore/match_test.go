package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSet(t *testing.T, patterns ...string) *PatternSet {
	t.Helper()
	compiled, err := CompileAll(patterns, "")
	require.NoError(t, err)
	return NewSet(compiled...)
}

func TestPattern_Match(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		isDir   bool
		want    bool
	}{
		// Literals match at any depth when not anchored.
		{name: "literal at root", pattern: "foo.txt", path: "foo.txt", want: true},
		{name: "literal nested", pattern: "foo.txt", path: "a/b/foo.txt", want: true},
		{name: "literal mismatch", pattern: "foo.txt", path: "bar.txt", want: false},
		{name: "literal not mid-path", pattern: "foo", path: "foo/bar.txt", want: false},

		// Anchoring.
		{name: "anchored at root", pattern: "/only_root.txt", path: "only_root.txt", want: true},
		{name: "anchored not nested", pattern: "/only_root.txt", path: "nested/only_root.txt", want: false},
		{name: "unanchored everywhere", pattern: "only_root.txt", path: "nested/only_root.txt", want: true},
		{name: "interior slash anchors", pattern: "doc/frotz", path: "doc/frotz", isDir: true, want: true},
		{name: "interior slash not nested", pattern: "doc/frotz", path: "sub/doc/frotz", isDir: true, want: false},

		// Single-segment wildcards.
		{name: "star extension", pattern: "*.log", path: "error.log", want: true},
		{name: "star extension nested", pattern: "*.log", path: "logs/error.log", want: true},
		{name: "star no separator", pattern: "a*b", path: "a/b", want: false},
		{name: "question mark", pattern: "file?.txt", path: "file1.txt", want: true},
		{name: "question needs a char", pattern: "file?.txt", path: "file.txt", want: false},
		{name: "class range", pattern: "file[0-9].txt", path: "file7.txt", want: true},
		{name: "class range miss", pattern: "file[0-9].txt", path: "fileX.txt", want: false},
		{name: "class negated", pattern: "file[!0-9].txt", path: "fileX.txt", want: true},
		{name: "class negated miss", pattern: "file[!0-9].txt", path: "file7.txt", want: false},
		{name: "class caret negated", pattern: "file[^ab].txt", path: "filec.txt", want: true},
		{name: "class literal members", pattern: "[abc].txt", path: "b.txt", want: true},
		{name: "escaped star literal", pattern: `lit\*eral`, path: "lit*eral", want: true},
		{name: "escaped star not wild", pattern: `lit\*eral`, path: "litXeral", want: false},

		// Cross-segment wildcard.
		{name: "double star root", pattern: "**/cache", path: "cache", isDir: true, want: true},
		{name: "double star one deep", pattern: "**/cache", path: "a/cache", isDir: true, want: true},
		{name: "double star two deep", pattern: "**/cache", path: "a/b/cache", isDir: true, want: true},
		{name: "double star middle", pattern: "a/**/b", path: "a/b", want: true},
		{name: "double star middle deep", pattern: "a/**/b", path: "a/x/y/b", want: true},
		{name: "double star middle wrong tail", pattern: "a/**/b", path: "a/x/c", want: false},
		{name: "trailing double star", pattern: "abc/**", path: "abc/any/thing", want: true},
		{name: "degenerate double star", pattern: "a**b", path: "axxb", want: true},
		{name: "degenerate double star no slash", pattern: "a**b", path: "ax/xb", want: false},

		// Directory-only.
		{name: "dir only matches dir", pattern: "build/", path: "build", isDir: true, want: true},
		{name: "dir only rejects file", pattern: "build/", path: "build", isDir: false, want: false},
		{name: "dir only nested", pattern: "build/", path: "src/build", isDir: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Match(tt.path, tt.isDir))
		})
	}
}

func TestPattern_MatchDeterministic(t *testing.T) {
	// Two compiles of the same text behave identically on the same path.
	texts := []string{"*.log", "**/cache", "a/**/b", "file[0-9].txt", "!keep.log"}
	paths := []string{"error.log", "a/b/cache", "a/x/b", "file3.txt", "keep.log"}

	for _, text := range texts {
		p1, err := Compile(text)
		require.NoError(t, err)
		p2, err := Compile(text)
		require.NoError(t, err)
		for _, path := range paths {
			for _, isDir := range []bool{false, true} {
				assert.Equal(t, p1.Match(path, isDir), p2.Match(path, isDir),
					"pattern %q path %q isDir %v", text, path, isDir)
			}
		}
	}
}

func TestPatternSet_LastMatchWins(t *testing.T) {
	s := mustSet(t, "*.log", "!important.log")
	assert.True(t, s.Excluded("debug.log", false))
	assert.False(t, s.Excluded("important.log", false), "negation after exclusion re-includes")

	reversed := mustSet(t, "!important.log", "*.log")
	assert.True(t, reversed.Excluded("important.log", false), "later exclusion overrides earlier negation")
}

func TestPatternSet_Evaluate(t *testing.T) {
	s := mustSet(t, "*.log", "!important.log")

	v := s.Evaluate("important.log", false)
	assert.True(t, v.Matched)
	assert.False(t, v.Excluded)
	require.NotNil(t, v.Pattern)
	assert.Equal(t, "!important.log", v.Pattern.Raw)

	v = s.Evaluate("readme.md", false)
	assert.False(t, v.Matched)
	assert.False(t, v.Excluded)
	assert.Nil(t, v.Pattern)
}

func TestPatternSet_EmptyAndRootPaths(t *testing.T) {
	s := mustSet(t, "*")
	assert.False(t, s.Excluded("", true), "the root itself is never excluded")
	assert.False(t, s.Excluded(".", true))
	assert.True(t, s.Excluded("anything", false))
}

func TestPatternSet_NormalizesPaths(t *testing.T) {
	s := mustSet(t, "build/")
	assert.True(t, s.Excluded("./build/", true))
	assert.True(t, s.Excluded("src//build", true))
}

func TestPatternSet_BudgetBoundsBacktracking(t *testing.T) {
	// A hostile pattern against a long non-matching name must terminate
	// within the step budget instead of backtracking exponentially.
	name := ""
	for i := 0; i < 40; i++ {
		name += "a"
	}
	s := mustSet(t, "*a*a*a*a*a*a*a*a*a*b").WithBudget(1000)
	assert.False(t, s.Excluded(name, false))
}
