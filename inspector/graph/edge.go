package graph

import "sort"

// Edge represents an import relation between two indexed modules
type Edge struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// Result holds the outcome of a reachability walk
type Result struct {
	Start   string
	Visited map[string]bool
	Edges   []Edge // in discovery order, duplicates preserved
}

// NewResult creates an empty walk result for the start module
func NewResult(start string) *Result {
	return &Result{
		Start:   start,
		Visited: make(map[string]bool),
	}
}

// VisitedNames returns the visited modules in sorted order
func (r *Result) VisitedNames() []string {
	names := make([]string, 0, len(r.Visited))
	for name := range r.Visited {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
