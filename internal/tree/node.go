package tree

// Node is one entry in the filtered directory tree.
//
// Children is populated for directories only and holds entries in a
// deterministic order: directory entries first, then case-insensitive
// lexicographic by name. A node owns its children exclusively; the graph is
// acyclic by construction and immutable once returned by Build.
type Node struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"` // absolute path on disk
	IsDir    bool    `json:"is_dir"`
	Size     int64   `json:"size,omitempty"` // files only, populated on demand
	Children []*Node `json:"children,omitempty"`
}

// Count returns the number of directories and files in the subtree, the
// receiver included.
func (n *Node) Count() (dirs, files int) {
	if n == nil {
		return 0, 0
	}
	if n.IsDir {
		dirs++
	} else {
		files++
	}
	for _, child := range n.Children {
		d, f := child.Count()
		dirs += d
		files += f
	}
	return dirs, files
}
