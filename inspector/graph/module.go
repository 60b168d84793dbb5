package graph

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Module represents a single source file addressed by its dotted name
type Module struct {
	Name string `yaml:"name"` // Dotted module name, e.g. pkg.sub
	Path string `yaml:"path"` // Absolute file path
}

// Index maps dotted module names to modules found under a root directory
type Index struct {
	Root    string
	modules map[string]*Module
}

// NewIndex creates an empty index for the given root
func NewIndex(root string) *Index {
	return &Index{
		Root:    root,
		modules: make(map[string]*Module),
	}
}

// Add registers a module, a later module with the same name replaces the earlier one
func (i *Index) Add(module *Module) {
	i.modules[module.Name] = module
}

// Lookup retrieves a module by dotted name
func (i *Index) Lookup(name string) *Module {
	return i.modules[name]
}

// Has checks if the index contains a module with the given name
func (i *Index) Has(name string) bool {
	_, ok := i.modules[name]
	return ok
}

// Len returns number of indexed modules
func (i *Index) Len() int {
	return len(i.modules)
}

// Names returns all module names in sorted order
func (i *Index) Names() []string {
	names := make([]string, 0, len(i.modules))
	for name := range i.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Modules returns all modules sorted by name
func (i *Index) Modules() []*Module {
	result := make([]*Module, 0, len(i.modules))
	for _, name := range i.Names() {
		result = append(result, i.modules[name])
	}
	return result
}

// Roots returns the set of root components of all module names
func (i *Index) Roots() map[string]bool {
	roots := make(map[string]bool, len(i.modules))
	for name := range i.modules {
		roots[RootOf(name)] = true
	}
	return roots
}

// ModuleName derives a dotted module name from a file path relative to root
func ModuleName(root, location, extension string) (string, error) {
	rel, err := filepath.Rel(root, location)
	if err != nil {
		return "", fmt.Errorf("failed to relativize %s: %w", location, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%s is outside of %s", location, root)
	}
	rel = strings.TrimSuffix(rel, extension)
	return strings.ReplaceAll(rel, string(os.PathSeparator), "."), nil
}

// RootOf returns the first dotted component of a module or import name
func RootOf(name string) string {
	root, _, _ := strings.Cut(name, ".")
	return root
}
