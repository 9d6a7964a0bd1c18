// Package config manages apiscaffold configuration and filesystem paths.
//
// The default root is ~/.apiscaffold/ containing the templates/ catalog and
// an optional config.yaml. The root can be moved with APISCAFFOLD_HOME.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the root directory.
const HomeEnv = "APISCAFFOLD_HOME"

// Paths contains all the filesystem paths used by apiscaffold.
type Paths struct {
	// Root is the base directory for all apiscaffold data (default: ~/.apiscaffold)
	Root string

	// Templates is the default template catalog directory
	Templates string

	// Config is the path to the global config file
	Config string
}

// DefaultPaths returns the default paths for apiscaffold.
func DefaultPaths() (*Paths, error) {
	root := os.Getenv(HomeEnv)
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".apiscaffold")
	}

	return PathsAt(root), nil
}

// PathsAt returns the layout rooted at root.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:      root,
		Templates: filepath.Join(root, "templates"),
		Config:    filepath.Join(root, "config.yaml"),
	}
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Root, p.Templates} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
