// Package gitx wraps the git operations run after a project is generated.
package gitx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotInRepo indicates no enclosing git repository was found.
var ErrNotInRepo = errors.New("not in a git repository")

// GitRepo provides an abstraction for git repository operations.
type GitRepo interface {
	// Discover finds the git repository root starting from dir.
	Discover(dir string) (root string, err error)

	// Init creates a new repository in dir.
	Init(ctx context.Context, dir string) error
}

// RealGitRepo implements GitRepo using actual git commands.
type RealGitRepo struct{}

// NewRealGitRepo creates a new RealGitRepo.
func NewRealGitRepo() *RealGitRepo {
	return &RealGitRepo{}
}

// Discover finds the git repository root by walking up from dir looking for .git.
func (g *RealGitRepo) Discover(dir string) (string, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	current := absPath
	for {
		gitDir := filepath.Join(current, ".git")
		if info, err := os.Stat(gitDir); err == nil {
			// .git can be a directory or a file (for worktrees/submodules)
			if info.IsDir() || info.Mode().IsRegular() {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNotInRepo
		}
		current = parent
	}
}

// Init runs "git init" in dir.
func (g *RealGitRepo) Init(ctx context.Context, dir string) error {
	cmd := exec.CommandContext(ctx, "git", "init", "--quiet")
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if msg == "" {
			return fmt.Errorf("git init failed: %w", err)
		}
		return fmt.Errorf("git init failed: %w: %s", err, msg)
	}
	return nil
}

// FakeGitRepo implements GitRepo with predetermined values for testing.
type FakeGitRepo struct {
	root  string
	err   error
	inits []string
}

// NewFakeGitRepo creates a new FakeGitRepo. An empty root means Discover
// reports ErrNotInRepo.
func NewFakeGitRepo(root string) *FakeGitRepo {
	return &FakeGitRepo{root: root}
}

// SetError sets an error to be returned by Init.
func (g *FakeGitRepo) SetError(err error) {
	g.err = err
}

// Discover returns the predetermined root.
func (g *FakeGitRepo) Discover(dir string) (string, error) {
	if g.root == "" {
		return "", ErrNotInRepo
	}
	return g.root, nil
}

// Init records dir.
func (g *FakeGitRepo) Init(ctx context.Context, dir string) error {
	if g.err != nil {
		return g.err
	}
	g.inits = append(g.inits, dir)
	return nil
}

// Inits returns every directory passed to Init.
func (g *FakeGitRepo) Inits() []string {
	return g.inits
}
