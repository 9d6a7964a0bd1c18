// Package installer installs the packages collected during an assembly.
//
// The assembly core only produces two ordered lists of package identifiers;
// this package hands them to a Node package manager inside the generated
// project. Installation always runs after assembly has finished.
package installer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/danieljhkim/apiscaffold/internal/deps"
)

// Supported package managers.
const (
	NPM  = "npm"
	PNPM = "pnpm"
	Yarn = "yarn"
)

// Installer provides an abstraction for package installation.
type Installer interface {
	// Install installs set into the project at dir.
	Install(ctx context.Context, dir string, set deps.Set) error
}

// Runner executes one command in dir. It exists so tests can record
// invocations instead of spawning a package manager.
type Runner func(ctx context.Context, dir string, stdout io.Writer, name string, args ...string) error

// CommandInstaller implements Installer by running a package manager.
type CommandInstaller struct {
	manager string
	stdout  io.Writer
	run     Runner
}

// NewCommandInstaller creates an installer for manager, streaming the
// manager's output to stdout.
func NewCommandInstaller(manager string, stdout io.Writer) (*CommandInstaller, error) {
	if err := ValidateManager(manager); err != nil {
		return nil, err
	}
	if stdout == nil {
		stdout = io.Discard
	}
	return &CommandInstaller{
		manager: manager,
		stdout:  stdout,
		run:     execRunner,
	}, nil
}

// WithRunner replaces the command runner.
func (i *CommandInstaller) WithRunner(run Runner) *CommandInstaller {
	i.run = run
	return i
}

// ValidateManager checks manager against the supported package managers.
func ValidateManager(manager string) error {
	switch manager {
	case NPM, PNPM, Yarn:
		return nil
	}
	return fmt.Errorf("unsupported package manager %q (want %s, %s or %s)", manager, NPM, PNPM, Yarn)
}

// Args returns the command line used to install ids, runtime or dev.
func Args(manager string, dev bool, ids []string) []string {
	var args []string
	switch manager {
	case Yarn:
		args = []string{"add"}
		if dev {
			args = append(args, "--dev")
		}
	case PNPM:
		args = []string{"add"}
		if dev {
			args = append(args, "--save-dev")
		}
	default:
		args = []string{"install"}
		if dev {
			args = append(args, "--save-dev")
		} else {
			args = append(args, "--save")
		}
	}
	return append(args, ids...)
}

// Install runs the runtime install, then the dev install. Empty lists are skipped.
func (i *CommandInstaller) Install(ctx context.Context, dir string, set deps.Set) error {
	if len(set.Dependencies) > 0 {
		if err := i.run(ctx, dir, i.stdout, i.manager, Args(i.manager, false, set.Dependencies)...); err != nil {
			return fmt.Errorf("failed to install dependencies: %w", err)
		}
	}
	if len(set.DevDependencies) > 0 {
		if err := i.run(ctx, dir, i.stdout, i.manager, Args(i.manager, true, set.DevDependencies)...); err != nil {
			return fmt.Errorf("failed to install devDependencies: %w", err)
		}
	}
	return nil
}

func execRunner(ctx context.Context, dir string, stdout io.Writer, name string, args ...string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
		}
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
	}
	return nil
}
