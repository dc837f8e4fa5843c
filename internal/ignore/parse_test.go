package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePatterns_SkipsBlanksAndComments(t *testing.T) {
	content := []byte("# build output\n\nbuild/\n   \n# logs\n*.log\n")
	patterns, warnings := ParsePatterns(content, "")

	require.Empty(t, warnings)
	require.Len(t, patterns, 2)
	assert.Equal(t, "build/", patterns[0].Raw)
	assert.Equal(t, "*.log", patterns[1].Raw)
}

func TestParsePatterns_EscapedHash(t *testing.T) {
	patterns, warnings := ParsePatterns([]byte("\\#literal\n"), "")
	require.Empty(t, warnings)
	require.Len(t, patterns, 1)
	assert.True(t, patterns[0].Match("#literal", false))
}

func TestParsePatterns_NormalizesContent(t *testing.T) {
	// BOM prefix, CRLF and lone CR line endings.
	content := []byte("\xEF\xBB\xBF*.log\r\nbuild/\rtmp/\n")
	patterns, warnings := ParsePatterns(content, "")

	require.Empty(t, warnings)
	require.Len(t, patterns, 3)
	assert.Equal(t, "*.log", patterns[0].Raw)
	assert.Equal(t, "build/", patterns[1].Raw)
	assert.Equal(t, "tmp/", patterns[2].Raw)
}

func TestParsePatterns_WarnsOnInvalidLines(t *testing.T) {
	content := []byte("good.txt\nbad[\nalso-good.txt\n")
	patterns, warnings := ParsePatterns(content, "sub")

	require.Len(t, patterns, 2)
	require.Len(t, warnings, 1)
	assert.Equal(t, "bad[", warnings[0].Pattern)
	assert.Equal(t, 2, warnings[0].Line)
	assert.Equal(t, "sub", warnings[0].Base)
	assert.Equal(t, "unterminated character class", warnings[0].Reason)
}

func TestParsePatterns_AppliesBase(t *testing.T) {
	patterns, warnings := ParsePatterns([]byte("*.log\n/rooted.txt\n"), "nested/dir")
	require.Empty(t, warnings)
	require.Len(t, patterns, 2)

	assert.Equal(t, "nested/dir", patterns[0].Base)
	assert.True(t, patterns[0].Match("nested/dir/x.log", false))
	assert.False(t, patterns[0].Match("x.log", false))

	// Anchored patterns anchor to the declaring directory, not the root.
	assert.True(t, patterns[1].Match("nested/dir/rooted.txt", false))
	assert.False(t, patterns[1].Match("nested/dir/deeper/rooted.txt", false))
}

func TestParsePatterns_EmptyContent(t *testing.T) {
	patterns, warnings := ParsePatterns(nil, "")
	assert.Empty(t, patterns)
	assert.Empty(t, warnings)
}
