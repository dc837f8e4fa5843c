// Package ignore compiles gitignore-style patterns and evaluates paths
// against ordered sets of them.
//
// Pattern syntax follows Git: leading ! negates, a trailing / restricts the
// pattern to directories, a leading or interior / anchors the pattern to the
// directory it was declared in, * and ? and [...] match within a single path
// component, ** as a whole component matches any number of components, and \
// escapes the character after it.
//
// Evaluation is last-match-wins over the whole ordered set, so a negated
// pattern appearing after an exclusion re-includes the path. Sets are
// append-only; extending one produces a new snapshot, which lets a traversal
// scope a subtree's rules without affecting siblings.
//
// The package is pure: it performs no I/O and keeps no global state.
package ignore
