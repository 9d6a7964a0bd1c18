package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/apiscaffold/internal/deps"
	"github.com/danieljhkim/apiscaffold/internal/merger"
)

// Assemble merges roots into destination strictly in slice order. Files
// from a later root replace files from an earlier one at the same path.
// The dependency sets of all roots are concatenated in the same order.
//
// Nothing is installed here. On error, whatever was already written stays.
func (e *Engine) Assemble(ctx context.Context, roots []FragmentRoot, destination string) (*AssembleResult, error) {
	result := &AssembleResult{
		Layers: make([]LayerResult, 0, len(roots)),
		Deps:   deps.NewSet(),
	}

	for _, root := range roots {
		e.logger.Info("merging layer", "layer", root.Layer, "rank", root.Rank)

		merged, err := e.merger.Merge(root.Path, destination)
		if err != nil {
			return nil, fmt.Errorf("failed to merge %s layer: %w", root.Layer, err)
		}

		result.Deps.Merge(merged.Deps)
		result.Layers = append(result.Layers, LayerResult{
			Root:    root,
			Entries: merged.Entries,
			Deps:    merged.Deps,
		})

		e.logger.Debug("merged layer",
			"layer", root.Layer,
			"created", merged.Count(merger.ActionCreated),
			"replaced", merged.Count(merger.ActionReplaced),
			"patched", merged.Count(merger.ActionPatched))
	}

	return result, nil
}
