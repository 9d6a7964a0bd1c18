package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/danieljhkim/apiscaffold/internal/fsops"
)

// resolveDestination turns a user-provided project path (absolute, relative,
// or containing "..") into a clean absolute path. The filesystem root is
// rejected since a project would be scattered across it.
func resolveDestination(userPath string) (string, error) {
	if userPath == "" {
		return "", fmt.Errorf("%w: destination is required", ErrValidation)
	}

	absPath, err := filepath.Abs(userPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve destination %q: %w", userPath, err)
	}

	if filepath.Dir(absPath) == absPath {
		return "", fmt.Errorf("%w: destination %q resolves to the filesystem root", ErrValidation, userPath)
	}

	return absPath, nil
}

// checkDestination fails with ErrConflict when dest is a file, or a
// directory with entries and force is false. A missing dest is fine.
func checkDestination(fs fsops.FS, dest string, force bool) error {
	info, err := fs.Stat(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat destination: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s exists and is not a directory", ErrConflict, dest)
	}
	if force {
		return nil
	}

	entries, err := fs.ReadDir(dest)
	if err != nil {
		return fmt.Errorf("failed to read destination: %w", err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s is not empty (use --force to merge into it)", ErrConflict, dest)
	}
	return nil
}
