// Package catalog discovers the templates available on disk.
//
// A template is a directory under the templates root. Its layout is:
//
//	<id>/template.yaml           optional metadata
//	<id>/base/                   optional language-neutral base layer
//	<id>/<language>/base/        technology variant layer
//	<id>/<language>/<feature>/   optional feature layers
//
// The catalog only reads this layout; the fragment contents are inert.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/apiscaffold/internal/fsops"
)

// ErrTemplateNotFound indicates no template directory matches an ID.
var ErrTemplateNotFound = errors.New("template not found")

// Catalog provides an interface for browsing templates.
type Catalog interface {
	// List returns all template IDs.
	List() ([]string, error)

	// Load resolves an ID (with or without the leading "@") and reads its layout.
	Load(id string) (*Template, error)
}

// FileCatalog implements Catalog over a directory on disk.
type FileCatalog struct {
	fs           fsops.FS
	templatesDir string
}

// NewFileCatalog creates a new FileCatalog.
func NewFileCatalog(fs fsops.FS, templatesDir string) *FileCatalog {
	return &FileCatalog{
		fs:           fs,
		templatesDir: templatesDir,
	}
}

// Dir returns the templates root.
func (c *FileCatalog) Dir() string {
	return c.templatesDir
}

// List returns all template IDs.
func (c *FileCatalog) List() ([]string, error) {
	entries, err := c.fs.ReadDir(c.templatesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read templates directory: %w", err)
	}

	ids := []string{}
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			ids = append(ids, entry.Name())
		}
	}
	return ids, nil
}

// Load reads the layout of one template.
func (c *FileCatalog) Load(id string) (*Template, error) {
	if err := c.fs.ValidateIdentifier(id); err != nil {
		return nil, fmt.Errorf("invalid template ID: %w", err)
	}

	resolved, err := c.resolve(id)
	if err != nil {
		return nil, err
	}
	root := filepath.Join(c.templatesDir, resolved)

	meta, err := c.loadMeta(root, resolved)
	if err != nil {
		return nil, err
	}

	tmpl := &Template{
		ID:        resolved,
		Root:      root,
		Meta:      *meta,
		Languages: []string{},
		Features:  map[string][]string{},
	}

	entries, err := c.fs.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", resolved, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == BaseLayer {
			tmpl.HasBase = true
			continue
		}

		features, ok, err := c.languageLayers(filepath.Join(root, name))
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		tmpl.Languages = append(tmpl.Languages, name)
		tmpl.Features[name] = features
	}

	return tmpl, nil
}

// resolve accepts both "express.vanilla" and "@express.vanilla".
func (c *FileCatalog) resolve(id string) (string, error) {
	candidates := []string{id}
	if !strings.HasPrefix(id, "@") {
		candidates = append(candidates, "@"+id)
	}

	for _, candidate := range candidates {
		info, err := c.fs.Stat(filepath.Join(c.templatesDir, candidate))
		if err == nil && info.IsDir() {
			return candidate, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat template %s: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
}

func (c *FileCatalog) loadMeta(root, id string) (*TemplateMeta, error) {
	meta := &TemplateMeta{Name: strings.TrimPrefix(id, "@")}

	data, err := c.fs.ReadFile(filepath.Join(root, MetaFile))
	if err != nil {
		if os.IsNotExist(err) {
			return meta, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", MetaFile, err)
	}

	if err := yaml.Unmarshal(data, meta); err != nil {
		return nil, fmt.Errorf("failed to parse %s for %s: %w", MetaFile, id, err)
	}
	if meta.Name == "" {
		meta.Name = strings.TrimPrefix(id, "@")
	}
	return meta, nil
}

// languageLayers returns the feature layers of a language directory.
// A directory without a base layer is not a language.
func (c *FileCatalog) languageLayers(dir string) ([]string, bool, error) {
	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	hasBase := false
	features := []string{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if entry.Name() == BaseLayer {
			hasBase = true
			continue
		}
		features = append(features, entry.Name())
	}
	return features, hasBase, nil
}
