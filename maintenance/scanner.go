package maintenance

import (
	"sort"

	"github.com/viant/pymapper/inspector/graph"
)

// ImportSource returns imported module names of a file
type ImportSource interface {
	Imports(filename string) []string
}

// ImportRoots collects root components of every import of every indexed file
func ImportRoots(source ImportSource, index *graph.Index) []string {
	roots := make(map[string]bool)
	for _, module := range index.Modules() {
		for _, imp := range source.Imports(module.Path) {
			roots[graph.RootOf(imp)] = true
		}
	}
	return sortedKeys(roots)
}

// Candidates returns import roots that do not name an internal module root
func Candidates(roots []string, index *graph.Index) []string {
	internal := index.Roots()
	var result []string
	for _, root := range roots {
		if root == "" || internal[root] {
			continue
		}
		result = append(result, root)
	}
	return result
}

func sortedKeys(set map[string]bool) []string {
	result := make([]string, 0, len(set))
	for key := range set {
		result = append(result, key)
	}
	sort.Strings(result)
	return result
}
