// Package deps accumulates the package identifiers declared by dependency
// directives during an assembly.
//
// Identifiers are concatenated in encounter order. Duplicates are kept on
// purpose: installing the same package twice is a no-op for the installer.
package deps

// Set holds runtime and development package identifiers.
type Set struct {
	Dependencies    []string `json:"dependencies"`
	DevDependencies []string `json:"devDependencies"`
}

// NewSet creates an empty Set whose lists encode as [] rather than null.
func NewSet() Set {
	return Set{Dependencies: []string{}, DevDependencies: []string{}}
}

// Add appends identifiers from one directive.
func (s *Set) Add(dependencies, devDependencies []string) {
	s.Dependencies = append(s.Dependencies, dependencies...)
	s.DevDependencies = append(s.DevDependencies, devDependencies...)
}

// Merge appends everything collected in other after the current contents.
func (s *Set) Merge(other Set) {
	s.Add(other.Dependencies, other.DevDependencies)
}

// Len returns the total number of identifiers.
func (s Set) Len() int {
	return len(s.Dependencies) + len(s.DevDependencies)
}

// Empty reports whether nothing has been collected.
func (s Set) Empty() bool {
	return s.Len() == 0
}
