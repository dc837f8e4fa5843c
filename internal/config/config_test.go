package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c := New()

	assert.Equal(t, ".", c.RootDir)
	assert.Equal(t, -1, c.MaxDepth)
	assert.True(t, c.RespectGitignore)
	assert.Equal(t, FormatTree, c.Format)
	assert.False(t, c.ShowHidden)
}

func TestValidate(t *testing.T) {
	c := New()
	require.NoError(t, c.Validate())

	c.Format = FormatJSON
	require.NoError(t, c.Validate())

	c.Format = "xml"
	assert.Error(t, c.Validate())

	c.Format = FormatTree
	c.Verbose = true
	c.Quiet = true
	assert.Error(t, c.Validate())
}

func TestResolveColors_NoColorFlag(t *testing.T) {
	c := New()
	c.NoColor = true
	c.ResolveColors()
	assert.False(t, c.UseColors)
}

func TestResolveColors_OutputFile(t *testing.T) {
	c := New()
	c.OutputFile = "out.txt"
	c.ResolveColors()
	assert.False(t, c.UseColors)
}

func TestResolveColors_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	c := New()
	c.ResolveColors()
	assert.False(t, c.UseColors)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bonsai.yml")
	content := `
default_ignores:
  - node_modules/
  - "*.pyc"
icons:
  .rs: "R"
color: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c := New()
	c.IgnorePatterns = []string{"dist/"}
	require.NoError(t, c.LoadFile(path))

	// File patterns come first so command-line ones win on conflict.
	assert.Equal(t, []string{"node_modules/", "*.pyc", "dist/"}, c.IgnorePatterns)
	assert.Equal(t, map[string]string{".rs": "R"}, c.IconOverrides)
	assert.True(t, c.NoColor)
}

func TestLoadFile_Missing(t *testing.T) {
	c := New()
	require.NoError(t, c.LoadFile(filepath.Join(t.TempDir(), "absent.yml")))
	assert.Empty(t, c.IgnorePatterns)
}

func TestLoadFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("default_ignores: [unclosed"), 0o644))

	c := New()
	assert.Error(t, c.LoadFile(path))
}
