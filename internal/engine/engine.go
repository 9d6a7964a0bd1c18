// Package engine provides the core business logic for apiscaffold operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. It resolves a choice set against the template
// catalog, merges the resulting layers into the destination, and then runs
// the post-assembly collaborators.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - ResolveLayers: Turns a choice set into an ordered list of fragment roots
//   - Assemble: Merges fragment roots in order and folds their dependencies
//   - Create: Validation, assembly, .env, checksums, install and git init
package engine

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/danieljhkim/apiscaffold/internal/catalog"
	"github.com/danieljhkim/apiscaffold/internal/fsops"
	"github.com/danieljhkim/apiscaffold/internal/gitx"
	"github.com/danieljhkim/apiscaffold/internal/hash"
	"github.com/danieljhkim/apiscaffold/internal/installer"
	"github.com/danieljhkim/apiscaffold/internal/merger"
)

// Engine orchestrates all apiscaffold operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs        fsops.FS
	catalog   catalog.Catalog
	merger    *merger.Merger
	installer installer.Installer
	gitRepo   gitx.GitRepo
	hasher    hash.Hasher
	logger    *log.Logger
}

// New creates a new Engine with the given dependencies. A nil logger
// discards output.
func New(
	fs fsops.FS,
	cat catalog.Catalog,
	inst installer.Installer,
	gitRepo gitx.GitRepo,
	hasher hash.Hasher,
	logger *log.Logger,
) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Engine{
		fs:        fs,
		catalog:   cat,
		merger:    merger.New(fs, merger.Options{Logger: logger.WithPrefix("merge")}),
		installer: inst,
		gitRepo:   gitRepo,
		hasher:    hasher,
		logger:    logger,
	}
}

// Catalog returns the template catalog the engine resolves against.
func (e *Engine) Catalog() catalog.Catalog {
	return e.catalog
}
