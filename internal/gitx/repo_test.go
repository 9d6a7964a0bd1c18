package gitx

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestRealGitRepo_Discover(t *testing.T) {
	g := NewRealGitRepo()

	t.Run("finds root from nested directory", func(t *testing.T) {
		root := t.TempDir()
		if err := os.MkdirAll(filepath.Join(root, ".git"), 0755); err != nil {
			t.Fatalf("failed to create .git: %v", err)
		}
		nested := filepath.Join(root, "a", "b")
		if err := os.MkdirAll(nested, 0755); err != nil {
			t.Fatalf("failed to create nested dir: %v", err)
		}

		got, err := g.Discover(nested)
		if err != nil {
			t.Fatalf("Discover failed: %v", err)
		}
		want, _ := filepath.Abs(root)
		if got != want {
			t.Errorf("Discover() = %q, want %q", got, want)
		}
	})

	t.Run("accepts .git file for worktrees", func(t *testing.T) {
		root := t.TempDir()
		if err := os.WriteFile(filepath.Join(root, ".git"), []byte("gitdir: /elsewhere\n"), 0644); err != nil {
			t.Fatalf("failed to create .git file: %v", err)
		}

		got, err := g.Discover(root)
		if err != nil {
			t.Fatalf("Discover failed: %v", err)
		}
		want, _ := filepath.Abs(root)
		if got != want {
			t.Errorf("Discover() = %q, want %q", got, want)
		}
	})
}

func TestRealGitRepo_Init(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	g := NewRealGitRepo()
	if err := g.Init(context.Background(), dir); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		t.Errorf("expected .git after Init: %v", err)
	}

	got, err := g.Discover(dir)
	if err != nil {
		t.Fatalf("Discover after Init failed: %v", err)
	}
	want, _ := filepath.Abs(dir)
	if got != want {
		t.Errorf("Discover() = %q, want %q", got, want)
	}
}

func TestRealGitRepo_InitMissingDir(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	err := NewRealGitRepo().Init(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestFakeGitRepo(t *testing.T) {
	g := NewFakeGitRepo("")
	if _, err := g.Discover("/anywhere"); !errors.Is(err, ErrNotInRepo) {
		t.Errorf("expected ErrNotInRepo, got %v", err)
	}

	if err := g.Init(context.Background(), "/project"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if len(g.Inits()) != 1 || g.Inits()[0] != "/project" {
		t.Errorf("Inits() = %v", g.Inits())
	}

	g.SetError(errors.New("boom"))
	if err := g.Init(context.Background(), "/other"); err == nil {
		t.Error("expected configured error")
	}
}
