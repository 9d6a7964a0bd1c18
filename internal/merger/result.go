package merger

import "github.com/danieljhkim/apiscaffold/internal/deps"

// Entry action constants
const (
	ActionCreated  = "created"
	ActionReplaced = "replaced"
	ActionPatched  = "patched"
)

// Entry records one materialized path.
type Entry struct {
	// Action is "created", "replaced" or "patched"
	Action string `json:"action"`

	// SourcePath is the fragment file that was copied (empty for patched)
	SourcePath string `json:"sourcePath,omitempty"`

	// DestPath is the absolute destination path
	DestPath string `json:"destPath"`

	// RelPath is the slash-separated path relative to the merge destination
	RelPath string `json:"relPath"`
}

// Result is what one merge call produced for its subtree.
type Result struct {
	// Entries lists copies in walk order followed by patched files
	Entries []Entry `json:"entries"`

	// Deps holds every dependency directive found in the subtree
	Deps deps.Set `json:"deps"`
}

// NewResult creates a new empty Result.
func NewResult() *Result {
	return &Result{Entries: []Entry{}, Deps: deps.NewSet()}
}

// Fold appends a child's entries and dependencies.
func (r *Result) Fold(child *Result) {
	r.Entries = append(r.Entries, child.Entries...)
	r.Deps.Merge(child.Deps)
}

// Count returns the number of entries with the given action.
func (r *Result) Count(action string) int {
	n := 0
	for _, e := range r.Entries {
		if e.Action == action {
			n++
		}
	}
	return n
}
