package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/danieljhkim/apiscaffold/internal/envfile"
	"github.com/danieljhkim/apiscaffold/internal/gitx"
	"github.com/danieljhkim/apiscaffold/internal/hash"
)

// Create scaffolds a new project.
//
// Algorithm steps:
// 1. Resolve and check the destination
// 2. Resolve layers (template, language, features) against the catalog
// 3. Validate database settings
// 4. Return the layer order if DryRun
// 5. Assemble all layers into the destination
// 6. Append database configuration to .env
// 7. Compute checksums of materialized files
// 8. Install collected dependencies
// 9. Initialize a git repository
func (e *Engine) Create(ctx context.Context, req *CreateRequest) (*CreateResult, error) {
	dest, err := resolveDestination(req.Destination)
	if err != nil {
		return nil, err
	}
	if err := checkDestination(e.fs, dest, req.Force); err != nil {
		return nil, err
	}

	tmpl, language, roots, err := e.ResolveLayers(req.Template, req.Language, req.Features)
	if err != nil {
		return nil, err
	}

	var db *envfile.DatabaseSettings
	if req.Database != nil {
		if !slices.Contains(req.Features, DatabaseFeature) {
			return nil, fmt.Errorf("%w: database settings require the %s feature", ErrValidation, DatabaseFeature)
		}
		settings := *req.Database
		if err := settings.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		db = &settings
	}

	result := &CreateResult{
		Destination: dest,
		Template:    tmpl.ID,
		Language:    language,
		Roots:       roots,
		DryRun:      req.DryRun,
	}
	if req.DryRun {
		return result, nil
	}

	assembly, err := e.Assemble(ctx, roots, dest)
	if err != nil {
		return nil, err
	}
	result.Assembly = assembly

	if db != nil {
		envPath, err := envfile.AppendDatabase(e.fs, dest, *db)
		if err != nil {
			return nil, fmt.Errorf("failed to write database config: %w", err)
		}
		result.EnvFile = envPath
		e.logger.Info("wrote database config", "path", envPath, "type", db.Type)
	}

	entries := assembly.Entries()
	keys := make([]string, len(entries))
	paths := make([]string, len(entries))
	for i, entry := range entries {
		keys[i] = entry.RelPath
		paths[i] = entry.DestPath
	}
	sums, err := hash.Checksums(e.hasher, keys, paths)
	if err != nil {
		return nil, fmt.Errorf("failed to compute checksums: %w", err)
	}
	result.Checksums = sums

	if !req.SkipInstall && !assembly.Deps.Empty() {
		e.logger.Info("installing dependencies",
			"dependencies", len(assembly.Deps.Dependencies),
			"devDependencies", len(assembly.Deps.DevDependencies))
		if err := e.installer.Install(ctx, dest, assembly.Deps); err != nil {
			return nil, err
		}
		result.Installed = true
	}

	if !req.SkipGit {
		initialized, err := e.initGit(ctx, dest)
		if err != nil {
			return nil, err
		}
		result.GitInitialized = initialized
	}

	return result, nil
}

// initGit runs git init unless dest is already inside a repository.
func (e *Engine) initGit(ctx context.Context, dest string) (bool, error) {
	root, err := e.gitRepo.Discover(dest)
	if err == nil {
		e.logger.Debug("skipping git init", "repo", root)
		return false, nil
	}
	if !errors.Is(err, gitx.ErrNotInRepo) {
		return false, fmt.Errorf("failed to discover git repository: %w", err)
	}

	if err := e.gitRepo.Init(ctx, dest); err != nil {
		return false, fmt.Errorf("failed to initialize git repository: %w", err)
	}
	e.logger.Info("initialized git repository", "path", dest)
	return true, nil
}
