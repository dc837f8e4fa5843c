// Package printer renders a built tree as text or JSON.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/BeckettFrey/Bonsai/internal/tree"
)

// defaultIcons maps file extensions to display icons. Directories and
// unmapped extensions fall back to generic icons.
var defaultIcons = map[string]string{
	".py":   "🐍",
	".go":   "🐹",
	".js":   "📜",
	".ts":   "📘",
	".html": "🌐",
	".css":  "🎨",
	".json": "📋",
	".md":   "📝",
	".txt":  "📄",
	".yml":  "⚙️",
	".yaml": "⚙️",
	".xml":  "📰",
	".png":  "🖼️",
	".jpg":  "🖼️",
	".jpeg": "🖼️",
	".gif":  "🖼️",
	".svg":  "🖼️",
}

const (
	dirIcon  = "📁"
	fileIcon = "📄"
)

// Printer writes a tree.Node graph to its output.
type Printer struct {
	output    io.Writer
	useColors bool
	useIcons  bool
	useSizes  bool
	icons     map[string]string
}

// New creates a Printer writing to stdout with colors enabled.
func New() *Printer {
	return &Printer{
		output:    os.Stdout,
		useColors: true,
	}
}

// WithOutput sets the output destination.
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored names.
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	return p
}

// WithIcons enables file-type icons.
func (p *Printer) WithIcons(enabled bool) *Printer {
	p.useIcons = enabled
	return p
}

// WithSizes appends human-readable sizes to file entries.
func (p *Printer) WithSizes(enabled bool) *Printer {
	p.useSizes = enabled
	return p
}

// WithIconOverrides merges extension-to-icon overrides on top of the
// defaults.
func (p *Printer) WithIconOverrides(overrides map[string]string) *Printer {
	if len(overrides) == 0 {
		return p
	}
	merged := make(map[string]string, len(defaultIcons)+len(overrides))
	for ext, icon := range defaultIcons {
		merged[ext] = icon
	}
	for ext, icon := range overrides {
		merged[strings.ToLower(ext)] = icon
	}
	p.icons = merged
	return p
}

// PrintTree renders the tree with box-drawing connectors, one node per line.
func (p *Printer) PrintTree(root *tree.Node) error {
	if root == nil {
		return nil
	}
	var b strings.Builder
	b.WriteString(p.displayName(root, true))
	b.WriteByte('\n')
	p.renderChildren(&b, root, "")
	_, err := io.WriteString(p.output, b.String())
	return err
}

// PrintJSON writes the tree as indented JSON.
func (p *Printer) PrintJSON(root *tree.Node) error {
	enc := json.NewEncoder(p.output)
	enc.SetIndent("", "  ")
	return enc.Encode(root)
}

func (p *Printer) renderChildren(b *strings.Builder, node *tree.Node, prefix string) {
	for i, child := range node.Children {
		last := i == len(node.Children)-1

		connector := "├── "
		childPrefix := prefix + "│   "
		if last {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(p.displayName(child, false))
		b.WriteByte('\n')

		if child.IsDir {
			p.renderChildren(b, child, childPrefix)
		}
	}
}

func (p *Printer) displayName(node *tree.Node, isRoot bool) string {
	name := node.Name
	if node.IsDir && !isRoot {
		name += "/"
	}

	if p.useColors {
		if node.IsDir {
			name = color.New(color.FgBlue, color.Bold).Sprint(name)
		}
	}

	if p.useIcons {
		name = p.iconFor(node) + " " + name
	}

	if p.useSizes && !node.IsDir {
		name += " (" + FormatSize(node.Size) + ")"
	}

	return name
}

func (p *Printer) iconFor(node *tree.Node) string {
	if node.IsDir {
		return dirIcon
	}
	icons := p.icons
	if icons == nil {
		icons = defaultIcons
	}
	if icon, ok := icons[strings.ToLower(filepath.Ext(node.Name))]; ok {
		return icon
	}
	return fileIcon
}

// FormatSize renders a byte count in a compact human-readable form.
func FormatSize(size int64) string {
	const unit = 1024.0
	value := float64(size)
	for _, suffix := range []string{"B", "KB", "MB", "GB", "TB"} {
		if value < unit {
			return fmt.Sprintf("%.1f%s", value, suffix)
		}
		value /= unit
	}
	return fmt.Sprintf("%.1fPB", value)
}
