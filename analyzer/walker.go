package analyzer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/viant/pymapper/inspector/graph"
)

// ErrUnmappedModule is returned when the start module is absent from the index
var ErrUnmappedModule = errors.New("module is not mapped")

// ImportSource returns imported module names of a file, failures yield an empty set
type ImportSource interface {
	Imports(filename string) []string
}

// Analyzer discovers modules reachable from a start module
type Analyzer struct {
	source ImportSource
	logger *slog.Logger
}

// New creates an analyzer reading imports from source
func New(source ImportSource, options ...Option) *Analyzer {
	a := &Analyzer{
		source: source,
		logger: slog.Default(),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// Walk performs depth-first traversal from start and returns visited modules and import edges
func (a *Analyzer) Walk(start string, index *graph.Index) (*graph.Result, error) {
	if !index.Has(start) {
		return nil, fmt.Errorf("%w: %s", ErrUnmappedModule, start)
	}
	result := graph.NewResult(start)
	a.visit(start, index, result)
	a.logger.Debug("walk completed", "start", start, "visited", len(result.Visited), "edges", len(result.Edges))
	return result, nil
}

func (a *Analyzer) visit(name string, index *graph.Index, result *graph.Result) {
	if result.Visited[name] {
		return
	}
	result.Visited[name] = true
	module := index.Lookup(name)
	if module == nil {
		return
	}
	a.logger.Debug("visiting module", "module", name, "path", module.Path)
	for _, imp := range a.source.Imports(module.Path) {
		target, ok := Resolve(imp, index)
		if !ok {
			continue
		}
		// edge is kept even if target was visited already
		result.Edges = append(result.Edges, graph.Edge{Source: name, Target: target})
		a.visit(target, index, result)
	}
}

// Resolve maps an import string to an indexed module: exact match first, then its root component
func Resolve(imp string, index *graph.Index) (string, bool) {
	if index.Has(imp) {
		return imp, true
	}
	if root := graph.RootOf(imp); index.Has(root) {
		return root, true
	}
	return "", false
}
