// Package scan enumerates the visible files and directories of a tree.
//
// Two strategies produce identical snapshots: a recursive walk pruned with
// storage.SkipDir, and a breadth-first queue over directory listings. Both
// consult the filter before descending, so ignored subtrees are never read.
package scan
