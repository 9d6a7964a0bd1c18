package catalog

// MetaFile is the optional metadata file at the top of a template directory.
const MetaFile = "template.yaml"

// BaseLayer is the directory name of a template's base layers.
const BaseLayer = "base"

// TemplateMeta contains metadata about a template.
type TemplateMeta struct {
	// Name is the human-readable name of the template
	Name string `yaml:"name" json:"name"`

	// Description provides additional context about the template
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// DefaultLanguage is used when no language is requested
	DefaultLanguage string `yaml:"default_language,omitempty" json:"defaultLanguage,omitempty"`
}

// Template describes one template directory and the layers it offers.
type Template struct {
	// ID is the directory name, e.g. "@express.vanilla"
	ID string `json:"id"`

	// Root is the absolute template directory
	Root string `json:"root"`

	// Meta is read from template.yaml, or derived from the ID
	Meta TemplateMeta `json:"meta"`

	// HasBase is true when a language-neutral base layer exists
	HasBase bool `json:"hasBase"`

	// Languages lists language variants in directory order
	Languages []string `json:"languages"`

	// Features maps each language to its optional feature layers
	Features map[string][]string `json:"features"`
}

// HasLanguage reports whether the template offers lang.
func (t *Template) HasLanguage(lang string) bool {
	for _, l := range t.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// HasFeature reports whether lang offers feature.
func (t *Template) HasFeature(lang, feature string) bool {
	for _, f := range t.Features[lang] {
		if f == feature {
			return true
		}
	}
	return false
}
