package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	t.Run("returns paths based on home directory", func(t *testing.T) {
		t.Setenv(HomeEnv, "")

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if paths.Root == "" {
			t.Error("Root should not be empty")
		}
		if paths.Templates != filepath.Join(paths.Root, "templates") {
			t.Errorf("Templates path incorrect: got %s", paths.Templates)
		}
		if paths.Config != filepath.Join(paths.Root, "config.yaml") {
			t.Errorf("Config path incorrect: got %s", paths.Config)
		}
		if filepath.Base(paths.Root) != ".apiscaffold" {
			t.Errorf("Root should end with .apiscaffold, got: %s", paths.Root)
		}
	})

	t.Run("respects APISCAFFOLD_HOME", func(t *testing.T) {
		customRoot := "/custom/apiscaffold/path"
		t.Setenv(HomeEnv, customRoot)

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if paths.Root != customRoot {
			t.Errorf("Expected root %s, got %s", customRoot, paths.Root)
		}
		if paths.Templates != filepath.Join(customRoot, "templates") {
			t.Errorf("Templates should be under custom root, got: %s", paths.Templates)
		}
	})
}

func TestEnsureDirectories(t *testing.T) {
	paths := PathsAt(filepath.Join(t.TempDir(), "home"))

	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	for _, dir := range []string{paths.Root, paths.Templates} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("directory %s not created: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}

	// Idempotent
	if err := paths.EnsureDirectories(); err != nil {
		t.Errorf("second EnsureDirectories failed: %v", err)
	}
}
