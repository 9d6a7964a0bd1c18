package merger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/danieljhkim/apiscaffold/internal/directive"
	"github.com/danieljhkim/apiscaffold/internal/fsops"
	"github.com/danieljhkim/apiscaffold/internal/insert"
)

// ErrSymlinkCycle indicates a fragment directory links back to one of its ancestors.
var ErrSymlinkCycle = errors.New("symlink cycle")

// Options configures a Merger.
type Options struct {
	// DependenciesFile is the dependency directive marker name
	DependenciesFile string

	// InsertsFile is the insert directive marker name
	InsertsFile string

	// Logger receives one line per materialized entry (discarded if nil)
	Logger *log.Logger
}

// Merger merges fragment trees into destination directories.
type Merger struct {
	fs     fsops.FS
	opts   Options
	logger *log.Logger
}

// New creates a new Merger. Empty marker names fall back to the defaults in
// package directive.
func New(fs fsops.FS, opts Options) *Merger {
	if opts.DependenciesFile == "" {
		opts.DependenciesFile = directive.DependenciesFile
	}
	if opts.InsertsFile == "" {
		opts.InsertsFile = directive.InsertsFile
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Merger{
		fs:     fs,
		opts:   opts,
		logger: logger,
	}
}

// pendingInserts is an insert directive waiting for its directory to finish.
type pendingInserts struct {
	source string
	rel    string
	specs  directive.InsertDirective
}

// Merge copies the tree at src into dst and returns what it did.
// On error, files already written stay in place.
func (m *Merger) Merge(src, dst string) (*Result, error) {
	return m.merge(src, dst, dst, ".", map[string]bool{})
}

// merge handles one directory level. root is the top-level destination that
// insert targets must stay inside; rel is dst relative to root. active holds
// the resolved source directories currently being walked.
func (m *Merger) merge(src, dst, root, rel string, active map[string]bool) (*Result, error) {
	resolved, err := m.fs.EvalSymlinks(src)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve fragment directory %s: %w", src, err)
	}
	if active[resolved] {
		return nil, fmt.Errorf("%w: %s resolves to %s", ErrSymlinkCycle, src, resolved)
	}
	active[resolved] = true
	defer delete(active, resolved)

	if err := m.fs.MkdirAll(dst, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dst, err)
	}

	entries, err := m.fs.ReadDir(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read fragment directory %s: %w", src, err)
	}

	result := NewResult()
	var pending []pendingInserts

	for _, entry := range entries {
		name := entry.Name()
		srcPath := filepath.Join(src, name)
		dstPath := filepath.Join(dst, name)
		relPath := filepath.Join(rel, name)

		isDir, err := m.isDir(entry, srcPath)
		if err != nil {
			return nil, err
		}

		switch {
		case isDir:
			child, err := m.merge(srcPath, dstPath, root, relPath, active)
			if err != nil {
				return nil, err
			}
			result.Fold(child)

		case name == m.opts.DependenciesFile:
			d, err := m.readDependencies(srcPath)
			if err != nil {
				return nil, err
			}
			result.Deps.Add(d.Dependencies, d.DevDependencies)
			m.logger.Debug("collected dependencies",
				"directive", filepath.ToSlash(relPath),
				"dependencies", len(d.Dependencies),
				"devDependencies", len(d.DevDependencies))

		case name == m.opts.InsertsFile:
			specs, err := m.readInserts(srcPath)
			if err != nil {
				return nil, err
			}
			pending = append(pending, pendingInserts{source: srcPath, rel: rel, specs: specs})

		default:
			copied, err := m.copy(srcPath, dstPath, relPath)
			if err != nil {
				return nil, err
			}
			result.Entries = append(result.Entries, copied)
		}
	}

	for _, p := range pending {
		patched, err := m.runInserts(p, root)
		if err != nil {
			return nil, err
		}
		result.Entries = append(result.Entries, patched...)
	}

	return result, nil
}

// isDir follows symlinks so a linked directory is merged like a real one.
func (m *Merger) isDir(entry os.DirEntry, srcPath string) (bool, error) {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir(), nil
	}
	info, err := m.fs.Stat(srcPath)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", srcPath, err)
	}
	return info.IsDir(), nil
}

func (m *Merger) copy(srcPath, dstPath, relPath string) (Entry, error) {
	exists, err := m.fs.Exists(dstPath)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to check destination %s: %w", dstPath, err)
	}

	if err := m.fs.Copy(srcPath, dstPath); err != nil {
		return Entry{}, fmt.Errorf("failed to copy %s: %w", srcPath, err)
	}

	action := ActionCreated
	if exists {
		action = ActionReplaced
	}
	rel := filepath.ToSlash(relPath)
	m.logger.Info(action, "path", rel)

	return Entry{
		Action:     action,
		SourcePath: srcPath,
		DestPath:   dstPath,
		RelPath:    rel,
	}, nil
}

func (m *Merger) readDependencies(path string) (*directive.DependencyDirective, error) {
	data, err := m.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dependency directive: %w", err)
	}
	return directive.DecodeDependencies(path, data)
}

func (m *Merger) readInserts(path string) (directive.InsertDirective, error) {
	data, err := m.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read insert directive: %w", err)
	}
	return directive.DecodeInserts(path, data)
}

// runInserts executes one queued directive, spec by spec, in declared order.
// Target paths are rewritten relative to root so that "../" segments may
// reach files placed by a parent directory without leaving the destination.
func (m *Merger) runInserts(p pendingInserts, root string) ([]Entry, error) {
	patched := make([]Entry, 0, len(p.specs))

	for _, spec := range p.specs {
		rooted := spec
		rooted.File = filepath.ToSlash(filepath.Join(p.rel, filepath.FromSlash(spec.File)))

		target, err := insert.ApplyFile(m.fs, root, rooted)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.source, err)
		}

		m.logger.Info(ActionPatched, "path", rooted.File, "inserts", len(spec.Inserts))
		patched = append(patched, Entry{
			Action:   ActionPatched,
			DestPath: target,
			RelPath:  rooted.File,
		})
	}

	return patched, nil
}
