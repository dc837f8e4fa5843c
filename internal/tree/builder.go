// Package tree walks a directory hierarchy depth-first and builds a filtered
// in-memory view of it, applying gitignore-style rules collected along the
// way.
package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/BeckettFrey/Bonsai/internal/ignore"
	"github.com/BeckettFrey/Bonsai/internal/utils"
)

const gitignoreName = ".gitignore"

// ignoreCacheSize caps the number of parsed .gitignore files kept across
// Build calls.
const ignoreCacheSize = 256

var (
	// ErrRootNotFound means the traversal root does not exist. Fatal.
	ErrRootNotFound = errors.New("root path does not exist")

	// ErrRootNotDirectory means the traversal root is not a directory. Fatal.
	ErrRootNotDirectory = errors.New("root path is not a directory")
)

type options struct {
	maxDepth     int
	showHidden   bool
	useGitignore bool
	withSizes    bool
	defaults     []string
	cliIgnore    []string
	cliInclude   []string
	logger       utils.Logger
}

// Option configures a Builder.
type Option func(*options)

// WithMaxDepth limits how many directory levels below the root are listed.
// Directories sitting exactly at the limit still appear, childless. Negative
// means unlimited.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithShowHidden includes entries whose name starts with a dot.
func WithShowHidden(show bool) Option {
	return func(o *options) {
		o.showHidden = show
	}
}

// WithGitignore toggles loading of .gitignore files and built-in defaults.
// Command-line patterns apply either way.
func WithGitignore(enabled bool) Option {
	return func(o *options) {
		o.useGitignore = enabled
	}
}

// WithSizes stats included files to record their size.
func WithSizes(enabled bool) Option {
	return func(o *options) {
		o.withSizes = enabled
	}
}

// WithDefaultPatterns sets the built-in ignore patterns evaluated before
// everything else. They are compiled like any other pattern.
func WithDefaultPatterns(patterns []string) Option {
	return func(o *options) {
		o.defaults = patterns
	}
}

// WithIgnorePatterns adds --ignore patterns from the command line.
func WithIgnorePatterns(patterns []string) Option {
	return func(o *options) {
		o.cliIgnore = patterns
	}
}

// WithIncludePatterns adds --include patterns from the command line. They
// compile as forced negations appended after every other pattern and can pull
// hidden entries back in.
func WithIncludePatterns(patterns []string) Option {
	return func(o *options) {
		o.cliInclude = patterns
	}
}

// WithLogger sets the logger used for traversal debugging.
func WithLogger(l utils.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// cachedIgnore is one parsed .gitignore file, revalidated by size/mtime.
type cachedIgnore struct {
	modTime  time.Time
	size     int64
	patterns []*ignore.Pattern
	warnings []ignore.ParseWarning
}

// Builder constructs filtered directory trees. A Builder can be reused;
// parsed .gitignore files are cached across Build calls.
type Builder struct {
	opts  options
	cache *lru.Cache[string, cachedIgnore]
}

// New creates a Builder. Defaults: unlimited depth, hidden entries excluded,
// .gitignore respected, sizes not computed.
func New(opts ...Option) (*Builder, error) {
	o := options{
		maxDepth:     -1,
		useGitignore: true,
		logger:       utils.NoopLogger{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	cache, err := lru.New[string, cachedIgnore](ignoreCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create gitignore cache: %w", err)
	}
	return &Builder{opts: o, cache: cache}, nil
}

// Build walks the filesystem from root and returns the filtered tree together
// with all recoverable warnings and skipped entries. A missing or
// non-directory root is fatal; everything else is recovered locally.
func (b *Builder) Build(root string) (*Result, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%q: %w", root, ErrRootNotFound)
		}
		return nil, fmt.Errorf("stat root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q: %w", root, ErrRootNotDirectory)
	}

	var base []*ignore.Pattern
	if b.opts.useGitignore {
		defaults, err := ignore.CompileAll(b.opts.defaults, "")
		if err != nil {
			return nil, err
		}
		base = defaults
	}

	// Command-line patterns form their own layer evaluated after the
	// accumulated file-sourced set, so --ignore and --include always outrank
	// .gitignore rules regardless of how deep the traversal has extended it.
	cli, err := ignore.FromCLI(b.opts.cliIgnore, b.opts.cliInclude)
	if err != nil {
		return nil, err
	}

	// Includes are kept separately as well: they can force hidden entries
	// back into the tree before pattern evaluation happens.
	includes, err := ignore.CompileAll(b.opts.cliInclude, "")
	if err != nil {
		return nil, err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		resolved = abs
	}

	res := &Result{}
	w := &walk{b: b, cliSet: ignore.NewSet(cli...), includes: includes, res: res}
	node := &Node{Name: filepath.Base(abs), Path: abs, IsDir: true}
	w.fill(node, abs, "", ignore.NewSet(base...), []string{resolved}, 0)
	res.Root = node

	dirs, files := node.Count()
	b.opts.logger.Debug("built tree for %q: %d dirs, %d files, %d skipped, %d warnings",
		abs, dirs, files, len(res.Skipped), len(res.Warnings))
	return res, nil
}

// walk carries the per-Build state.
type walk struct {
	b        *Builder
	cliSet   *ignore.PatternSet
	includes []*ignore.Pattern
	res      *Result
}

// fill lists dir and attaches the included entries to node, recursing into
// subdirectories. rel is the directory's slash path relative to the root
// (empty for the root itself); ancestors holds the resolved paths of every
// directory on the current traversal path; depth is the number of levels
// below the root.
func (w *walk) fill(node *Node, dir, rel string, set *ignore.PatternSet, ancestors []string, depth int) {
	o := &w.b.opts
	if o.maxDepth >= 0 && depth >= o.maxDepth {
		return
	}

	if o.useGitignore {
		if patterns := w.loadIgnoreFile(dir, rel); len(patterns) > 0 {
			// Scoped to this subtree only: the extended set is a snapshot,
			// siblings keep the inherited one.
			set = set.Extend(patterns)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		reason := ReasonListFailed
		if os.IsPermission(err) {
			reason = ReasonPermissionDenied
		}
		w.res.Warnings = append(w.res.Warnings, Warning{Path: rel, Reason: reason, Detail: err.Error()})
		o.logger.Warn("cannot list %q: %v", dir, err)
		return
	}

	// Deterministic child order: directory entries first, then
	// case-insensitive name.
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].IsDir(), entries[j].IsDir()
		if di != dj {
			return di
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	for _, entry := range entries {
		name := entry.Name()
		childRel := joinRel(rel, name)
		childPath := filepath.Join(dir, name)

		isLink := entry.Type()&fs.ModeSymlink != 0
		isDir := entry.IsDir()
		if isLink {
			// A symlink's directory-ness is its target's.
			if st, err := os.Stat(childPath); err == nil {
				isDir = st.IsDir()
			}
		}

		// The hidden filter runs before any pattern evaluation and is only
		// overridden by an explicit --include.
		if !o.showHidden && strings.HasPrefix(name, ".") && !w.forcedInclude(childRel, isDir) {
			w.res.Skipped = append(w.res.Skipped, Skipped{Path: childRel, Reason: SkipHidden, IsDir: isDir})
			continue
		}

		if v := w.evaluate(set, childRel, isDir); v.Excluded {
			w.res.Skipped = append(w.res.Skipped, Skipped{Path: childRel, Reason: SkipIgnored, IsDir: isDir, Rule: v.Pattern.Raw})
			o.logger.Debug("excluded %q by pattern %s", childRel, v.Pattern)
			continue
		}

		child := &Node{Name: name, Path: childPath, IsDir: isDir}

		if !isDir {
			if o.withSizes {
				if st, err := os.Stat(childPath); err == nil {
					child.Size = st.Size()
				} else {
					w.res.Warnings = append(w.res.Warnings, Warning{Path: childRel, Reason: ReasonStatFailed, Detail: err.Error()})
				}
			}
			node.Children = append(node.Children, child)
			continue
		}

		childAncestors := ancestors
		if isLink {
			resolved, err := filepath.EvalSymlinks(childPath)
			if err != nil {
				w.res.Warnings = append(w.res.Warnings, Warning{Path: childRel, Reason: ReasonSymlinkBroken, Detail: err.Error()})
				node.Children = append(node.Children, child)
				continue
			}
			if onTraversalPath(ancestors, resolved) {
				// Following it would revisit a directory we are inside of.
				// Keep the entry as a childless node so the tree stays finite.
				w.res.Warnings = append(w.res.Warnings, Warning{Path: childRel, Reason: ReasonSymlinkCycle, Detail: "target " + resolved})
				node.Children = append(node.Children, child)
				continue
			}
			childAncestors = append(ancestors, resolved)
		} else {
			childAncestors = append(ancestors, filepath.Join(ancestors[len(ancestors)-1], name))
		}

		w.fill(child, childPath, childRel, set, childAncestors, depth+1)
		node.Children = append(node.Children, child)
	}
}

// evaluate resolves the verdict for one entry: defaults and .gitignore rules
// first, then the command-line layer, whose last match is final.
func (w *walk) evaluate(set *ignore.PatternSet, rel string, isDir bool) ignore.Verdict {
	v := set.Evaluate(rel, isDir)
	if cv := w.cliSet.Evaluate(rel, isDir); cv.Matched {
		v = cv
	}
	return v
}

func (w *walk) forcedInclude(rel string, isDir bool) bool {
	for _, p := range w.includes {
		if p.Match(rel, isDir) {
			return true
		}
	}
	return false
}

// loadIgnoreFile returns the compiled patterns of dir's .gitignore, if any,
// going through the builder's cache. Parse warnings are replayed into the
// result on every build.
func (w *walk) loadIgnoreFile(dir, rel string) []*ignore.Pattern {
	path := filepath.Join(dir, gitignoreName)
	st, err := os.Stat(path)
	if err != nil || st.IsDir() {
		return nil
	}

	// Pattern bases depend on the traversal root, so rel is part of the key.
	key := path + "\x00" + rel
	if cached, ok := w.b.cache.Get(key); ok && cached.modTime.Equal(st.ModTime()) && cached.size == st.Size() {
		w.reportParseWarnings(rel, cached.warnings)
		return cached.patterns
	}

	content, err := os.ReadFile(path)
	if err != nil {
		reason := ReasonStatFailed
		if os.IsPermission(err) {
			reason = ReasonPermissionDenied
		}
		w.res.Warnings = append(w.res.Warnings, Warning{Path: joinRel(rel, gitignoreName), Reason: reason, Detail: err.Error()})
		return nil
	}

	patterns, warnings := ignore.ParsePatterns(content, rel)
	w.b.cache.Add(key, cachedIgnore{modTime: st.ModTime(), size: st.Size(), patterns: patterns, warnings: warnings})
	w.reportParseWarnings(rel, warnings)
	return patterns
}

func (w *walk) reportParseWarnings(rel string, warnings []ignore.ParseWarning) {
	for _, pw := range warnings {
		w.res.Warnings = append(w.res.Warnings, Warning{
			Path:   joinRel(rel, gitignoreName),
			Reason: ReasonBadIgnoreLine,
			Detail: fmt.Sprintf("line %d: %q: %s", pw.Line, pw.Pattern, pw.Reason),
		})
	}
}

// onTraversalPath reports whether resolved is one of the directories on the
// current traversal path, or an ancestor of one.
func onTraversalPath(ancestors []string, resolved string) bool {
	sep := string(filepath.Separator)
	for _, a := range ancestors {
		if a == resolved || strings.HasPrefix(a, resolved+sep) {
			return true
		}
	}
	return false
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}
