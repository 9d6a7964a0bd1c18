package engine

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/apiscaffold/internal/catalog"
)

// ResolveLayers validates a template, language and feature list against the
// catalog and returns the fragment roots in merge order:
//
//	<template>/base               (if present)
//	<template>/<language>/base
//	<template>/<language>/<feature>  for each feature, in the given order
//
// An empty language falls back to the template's default language, or to its
// only language when it has exactly one.
func (e *Engine) ResolveLayers(templateID, language string, features []string) (*catalog.Template, string, []FragmentRoot, error) {
	tmpl, err := e.catalog.Load(templateID)
	if err != nil {
		if errors.Is(err, catalog.ErrTemplateNotFound) {
			return nil, "", nil, fmt.Errorf("%w: template %q", ErrNotFound, templateID)
		}
		return nil, "", nil, fmt.Errorf("failed to load template: %w", err)
	}

	if language == "" {
		language = tmpl.Meta.DefaultLanguage
	}
	if language == "" && len(tmpl.Languages) == 1 {
		language = tmpl.Languages[0]
	}
	if language == "" {
		return nil, "", nil, fmt.Errorf("%w: template %s offers %v, pick a language", ErrValidation, tmpl.ID, tmpl.Languages)
	}
	if !tmpl.HasLanguage(language) {
		return nil, "", nil, fmt.Errorf("%w: language %q in template %s", ErrNotFound, language, tmpl.ID)
	}

	seen := make(map[string]bool, len(features))
	for _, f := range features {
		if !tmpl.HasFeature(language, f) {
			return nil, "", nil, fmt.Errorf("%w: feature %q for %s/%s", ErrNotFound, f, tmpl.ID, language)
		}
		if seen[f] {
			return nil, "", nil, fmt.Errorf("%w: feature %q requested twice", ErrValidation, f)
		}
		seen[f] = true
	}

	var roots []FragmentRoot
	add := func(path, layer string) {
		roots = append(roots, FragmentRoot{Path: path, Rank: len(roots), Layer: layer})
	}

	if tmpl.HasBase {
		add(filepath.Join(tmpl.Root, catalog.BaseLayer), LayerBase)
	}
	add(filepath.Join(tmpl.Root, language, catalog.BaseLayer), LayerVariant)
	for _, f := range features {
		add(filepath.Join(tmpl.Root, language, f), layerFeaturePrefix+f)
	}

	return tmpl, language, roots, nil
}
