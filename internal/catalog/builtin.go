package catalog

import (
	"embed"
	"fmt"
	iofs "io/fs"
	"path"
	"path/filepath"

	"github.com/danieljhkim/apiscaffold/internal/fsops"
)

//go:embed all:builtin
var builtin embed.FS

const builtinRoot = "builtin"

// Builtin returns the templates shipped with the binary, rooted at the
// template directories.
func Builtin() iofs.FS {
	sub, err := iofs.Sub(builtin, builtinRoot)
	if err != nil {
		panic(err)
	}
	return sub
}

// Seed writes the built-in templates into templatesDir when that directory
// does not exist yet. An existing directory is never touched, even if it is
// empty. It reports whether anything was written.
func Seed(fs fsops.FS, templatesDir string) (bool, error) {
	exists, err := fs.Exists(templatesDir)
	if err != nil {
		return false, fmt.Errorf("failed to check templates directory: %w", err)
	}
	if exists {
		return false, nil
	}

	src := Builtin()
	err = iofs.WalkDir(src, ".", func(rel string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		dst := filepath.Join(templatesDir, filepath.FromSlash(rel))
		if d.IsDir() {
			return fs.MkdirAll(dst, 0755)
		}

		data, err := iofs.ReadFile(src, rel)
		if err != nil {
			return err
		}
		if err := fs.AtomicWrite(dst, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path.Join(templatesDir, rel), err)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed built-in templates: %w", err)
	}
	return true, nil
}
