// Package merger copies one fragment tree into a destination project.
//
// A merge walks the fragment depth-first. Regular files are copied over
// whatever is already at the destination. Two directive files are
// intercepted instead of copied: dependency directives are folded into the
// returned dependency set, and insert directives are queued and executed
// once every sibling entry of their directory (subdirectories included) has
// been materialized.
//
// Key responsibilities:
//   - Copy regular files, reporting created vs replaced
//   - Decode and validate directive files before acting on them
//   - Run queued inserts against the destination after the directory is complete
//   - Return a Result per directory so callers compose merges by folding values
package merger
