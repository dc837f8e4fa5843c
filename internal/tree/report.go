package tree

// WarnReason classifies a recoverable problem met during traversal.
type WarnReason string

const (
	ReasonPermissionDenied WarnReason = "permission denied"
	ReasonListFailed       WarnReason = "listing failed"
	ReasonSymlinkCycle     WarnReason = "symlink cycle"
	ReasonSymlinkBroken    WarnReason = "broken symlink"
	ReasonStatFailed       WarnReason = "stat failed"
	ReasonBadIgnoreLine    WarnReason = "invalid ignore pattern"
)

// Warning records a recoverable traversal problem. Warnings are collected and
// handed to the caller rather than logged; the tree is still built around
// them.
type Warning struct {
	Path   string     `json:"path"` // relative to the traversal root
	Reason WarnReason `json:"reason"`
	Detail string     `json:"detail,omitempty"`
}

// SkipReason explains why an entry was left out of the tree.
type SkipReason string

const (
	SkipHidden  SkipReason = "hidden"
	SkipIgnored SkipReason = "ignore rule"
)

// Skipped records one entry that the traversal pruned.
type Skipped struct {
	Path   string     `json:"path"`
	Reason SkipReason `json:"reason"`
	IsDir  bool       `json:"is_dir"`

	// Rule is the pattern text that caused an ignore-rule skip.
	Rule string `json:"rule,omitempty"`
}

// Result bundles the finished tree with everything the traversal noticed
// along the way.
type Result struct {
	Root     *Node
	Warnings []Warning
	Skipped  []Skipped
}
