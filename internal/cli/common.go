package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/apiscaffold/internal/catalog"
	"github.com/danieljhkim/apiscaffold/internal/config"
	"github.com/danieljhkim/apiscaffold/internal/engine"
	"github.com/danieljhkim/apiscaffold/internal/fsops"
	"github.com/danieljhkim/apiscaffold/internal/gitx"
	"github.com/danieljhkim/apiscaffold/internal/hash"
	"github.com/danieljhkim/apiscaffold/internal/installer"
)

// loadSettings reads config.yaml and the environment, then applies the
// global flags that were set explicitly on cmd.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	settings, err := config.Load(paths)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("templates-dir") {
		settings.TemplatesDir = templatesDir
	}
	if flags.Changed("verbose") {
		settings.Verbose = verbose
	}

	// Only the default catalog location is populated with built-in templates.
	if settings.TemplatesDir == paths.Templates {
		if _, err := catalog.Seed(fsops.NewRealFS(), paths.Templates); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

// newLogger creates the structured logger shared by the engine and merger.
// Logs go to stderr so --json output on stdout stays parseable.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "apiscaffold",
		Level:  level,
	})
}

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine(settings *config.Settings, manager string) (*engine.Engine, error) {
	fs := fsops.NewRealFS()

	// Package manager output is interleaved with logs on stderr in JSON mode.
	var installOut io.Writer = os.Stdout
	if jsonOutput {
		installOut = os.Stderr
	}
	inst, err := installer.NewCommandInstaller(manager, installOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrValidation, err)
	}

	return engine.New(
		fs,
		catalog.NewFileCatalog(fs, settings.TemplatesDir),
		inst,
		gitx.NewRealGitRepo(),
		hash.NewSHA256Hasher(),
		newLogger(os.Stderr, settings.Verbose),
	), nil
}

// FormatError formats an error for display.
func FormatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON writes a value as indented JSON.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
