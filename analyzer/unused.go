package analyzer

import (
	"github.com/viant/pymapper/inspector/graph"
)

// Unused returns indexed modules absent from visited, sorted by name
func Unused(index *graph.Index, visited map[string]bool) []string {
	var result []string
	for _, name := range index.Names() {
		if !visited[name] {
			result = append(result, name)
		}
	}
	return result
}
