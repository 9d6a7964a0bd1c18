// Package directive decodes and validates the two directive files a template
// fragment may carry.
//
// A dependency directive lists package identifiers the generated project
// needs. An insert directive patches files that an earlier copy already
// placed in the destination. Both are plain JSON; decoding is strict and a
// payload either validates as a whole or is rejected as a whole.
package directive

// Marker file names recognised inside fragment trees.
const (
	DependenciesFile = "@dependencies.json"
	InsertsFile      = "@inserts.json"
)

// Position says where inserted content goes relative to the anchor's line.
type Position string

const (
	Before Position = "before"
	After  Position = "after"
)

// Valid reports whether p is one of the known positions.
func (p Position) Valid() bool {
	return p == Before || p == After
}

// DependencyDirective is the payload of a dependency directive file.
type DependencyDirective struct {
	Dependencies    []string `json:"dependencies"`
	DevDependencies []string `json:"devDependencies"`
}

// InsertDirective is the payload of an insert directive file, in declared order.
type InsertDirective []FileInsertSpec

// FileInsertSpec lists the inserts to apply to one target file.
type FileInsertSpec struct {
	// File is relative to the directory that holds the directive
	File string `json:"file"`

	// Inserts run in declared order against the same buffer
	Inserts []InsertOp `json:"inserts"`
}

// InsertOp splices Content next to the first line containing Search.
type InsertOp struct {
	Position Position `json:"position"`
	Search   string   `json:"search"`
	Content  string   `json:"content"`
}
