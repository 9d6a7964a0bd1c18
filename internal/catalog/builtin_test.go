package catalog

import (
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/danieljhkim/apiscaffold/internal/directive"
	"github.com/danieljhkim/apiscaffold/internal/fsops"
)

func TestSeed(t *testing.T) {
	fs := fsops.NewRealFS()
	dir := filepath.Join(t.TempDir(), "templates")

	seeded, err := Seed(fs, dir)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if !seeded {
		t.Fatal("Seed() should write into a missing directory")
	}

	cat := NewFileCatalog(fs, dir)
	ids, err := cat.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"@express.vanilla"}) {
		t.Errorf("List() = %v", ids)
	}

	tmpl, err := cat.Load("express.vanilla")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !tmpl.HasBase {
		t.Error("expected a language-neutral base layer")
	}
	if tmpl.Meta.DefaultLanguage != "typescript" {
		t.Errorf("DefaultLanguage = %q, want typescript", tmpl.Meta.DefaultLanguage)
	}
	if !reflect.DeepEqual(tmpl.Languages, []string{"javascript", "typescript"}) {
		t.Errorf("Languages = %v", tmpl.Languages)
	}
	for _, lang := range tmpl.Languages {
		if !tmpl.HasFeature(lang, "sequelize") {
			t.Errorf("%s should offer the sequelize feature", lang)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "@express.vanilla", "base", ".gitignore")); err != nil {
		t.Errorf("dotfiles should be seeded: %v", err)
	}
}

func TestSeed_LeavesExistingDirectoryAlone(t *testing.T) {
	fs := fsops.NewRealFS()

	t.Run("empty directory", func(t *testing.T) {
		dir := t.TempDir()
		seeded, err := Seed(fs, dir)
		if err != nil {
			t.Fatalf("Seed() error = %v", err)
		}
		if seeded {
			t.Error("Seed() should not write into an existing directory")
		}
		entries, _ := os.ReadDir(dir)
		if len(entries) != 0 {
			t.Errorf("expected directory to stay empty, got %d entries", len(entries))
		}
	})

	t.Run("edited template", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "templates")
		if _, err := Seed(fs, dir); err != nil {
			t.Fatalf("Seed() error = %v", err)
		}
		readme := filepath.Join(dir, "@express.vanilla", "base", "README.md")
		if err := os.WriteFile(readme, []byte("mine\n"), 0644); err != nil {
			t.Fatalf("failed to edit readme: %v", err)
		}

		seeded, err := Seed(fs, dir)
		if err != nil {
			t.Fatalf("Seed() error = %v", err)
		}
		if seeded {
			t.Error("second Seed() should be a no-op")
		}
		data, _ := os.ReadFile(readme)
		if string(data) != "mine\n" {
			t.Errorf("README.md was overwritten: %q", data)
		}
	})
}

func TestBuiltin_DirectivesDecode(t *testing.T) {
	src := Builtin()
	count := 0

	err := iofs.WalkDir(src, ".", func(rel string, d iofs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := iofs.ReadFile(src, rel)
		if err != nil {
			return err
		}

		switch path.Base(rel) {
		case directive.DependenciesFile:
			count++
			if _, err := directive.DecodeDependencies(rel, data); err != nil {
				t.Errorf("%s: %v", rel, err)
			}
		case directive.InsertsFile:
			count++
			if _, err := directive.DecodeInserts(rel, data); err != nil {
				t.Errorf("%s: %v", rel, err)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkDir() error = %v", err)
	}
	if count != 6 {
		t.Errorf("found %d directives, want 6", count)
	}
}
