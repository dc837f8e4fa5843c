package ignore

import (
	"bytes"
	"runtime"
	"strings"
)

// normalizePath prepares a candidate path for matching: backslashes become
// forward slashes on Windows, doubled slashes collapse, leading "./" and any
// trailing slash are dropped.
func normalizePath(p string) string {
	if runtime.GOOS == "windows" {
		p = strings.ReplaceAll(p, `\`, "/")
	}

	if strings.Contains(p, "//") {
		var b strings.Builder
		b.Grow(len(p))
		prevSlash := false
		for i := 0; i < len(p); i++ {
			if p[i] == '/' {
				if !prevSlash {
					b.WriteByte('/')
				}
				prevSlash = true
				continue
			}
			b.WriteByte(p[i])
			prevSlash = false
		}
		p = b.String()
	}

	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	if p == "." {
		return ""
	}

	return strings.TrimSuffix(p, "/")
}

// normalizeBase normalizes the directory scope of a pattern. Empty means the
// traversal root.
func normalizeBase(base string) string {
	if base == "" {
		return ""
	}
	return normalizePath(base)
}

// splitPath splits a normalized path into its non-empty components.
func splitPath(p string) []string {
	if p == "" {
		return nil
	}
	parts := strings.Split(p, "/")
	segs := parts[:0]
	for _, part := range parts {
		if part != "" {
			segs = append(segs, part)
		}
	}
	return segs
}

// normalizeContent prepares raw .gitignore bytes for line splitting: the UTF-8
// BOM is stripped and CRLF / lone CR line endings become LF.
func normalizeContent(content []byte) []byte {
	for len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	content = bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))
	return content
}

// trimTrailingWhitespace strips unescaped trailing spaces and tabs from a
// pattern line. A backslash quotes the space that follows it, so "foo\ "
// keeps its space while "foo " does not.
func trimTrailingWhitespace(line string) string {
	end := len(line)
	for end > 0 && (line[end-1] == ' ' || line[end-1] == '\t') {
		end--
	}
	if end == len(line) {
		return line
	}

	if trailingBackslashes(line[:end])%2 == 1 && line[end] == ' ' {
		// The backslash escapes the first trailing space: keep the space,
		// drop the backslash.
		return line[:end-1] + " "
	}
	return line[:end]
}
