package engine

import (
	"github.com/danieljhkim/apiscaffold/internal/deps"
	"github.com/danieljhkim/apiscaffold/internal/merger"
)

// Layer labels for FragmentRoot.
const (
	LayerBase    = "base"
	LayerVariant = "variant"

	// layerFeaturePrefix is followed by the feature name.
	layerFeaturePrefix = "feature:"
)

// FragmentRoot is one source tree of an assembly.
type FragmentRoot struct {
	// Path is the fragment directory
	Path string `json:"path"`

	// Rank is the position in the assembly; higher ranks win
	Rank int `json:"rank"`

	// Layer is "base", "variant" or "feature:<name>"
	Layer string `json:"layer"`
}

// LayerResult is what one fragment root contributed.
type LayerResult struct {
	Root    FragmentRoot   `json:"root"`
	Entries []merger.Entry `json:"entries"`
	Deps    deps.Set       `json:"deps"`
}

// AssembleResult represents the result of merging an ordered list of roots.
type AssembleResult struct {
	// Layers holds one result per root, in merge order
	Layers []LayerResult `json:"layers"`

	// Deps is the aggregate dependency set across all roots
	Deps deps.Set `json:"deps"`
}

// Entries returns every entry of every layer in merge order.
func (r *AssembleResult) Entries() []merger.Entry {
	var all []merger.Entry
	for _, l := range r.Layers {
		all = append(all, l.Entries...)
	}
	return all
}

// CreateResult represents the result of creating a project.
type CreateResult struct {
	// Destination is the absolute project directory
	Destination string `json:"destination"`

	// Template is the resolved template ID
	Template string `json:"template"`

	// Language is the resolved language variant
	Language string `json:"language"`

	// Roots is the resolved layer order
	Roots []FragmentRoot `json:"roots"`

	// Assembly is nil for a dry run
	Assembly *AssembleResult `json:"assembly,omitempty"`

	// EnvFile is the .env path written, if any
	EnvFile string `json:"envFile,omitempty"`

	// Checksums maps each materialized relative path to its final SHA-256
	Checksums map[string]string `json:"checksums,omitempty"`

	// Installed is true when the package manager ran
	Installed bool `json:"installed"`

	// GitInitialized is true when a new repository was created
	GitInitialized bool `json:"gitInitialized"`

	// DryRun indicates nothing was written
	DryRun bool `json:"dryRun"`
}
