package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/pymapper/inspector/graph"
)

// Indexer builds a module index of every source file under a root directory
type Indexer struct {
	fs        afs.Service
	extension string
}

// NewIndexer creates an indexer for files with the given extension (e.g. ".py")
func NewIndexer(extension string) *Indexer {
	return &Indexer{
		fs:        afs.New(),
		extension: extension,
	}
}

// Index walks root recursively and maps dotted module names to file paths.
// Nothing is excluded: hidden folders and virtual environments are indexed as well.
func (i *Indexer) Index(ctx context.Context, root string) (*graph.Index, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	index := graph.NewIndex(absRoot)
	err = i.fs.Walk(ctx, absRoot, func(ctx context.Context, baseURL string, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() || !strings.HasSuffix(info.Name(), i.extension) {
			return true, nil
		}
		location := filepath.Join(absRoot, filepath.FromSlash(parent), info.Name())
		name, err := graph.ModuleName(absRoot, location, i.extension)
		if err != nil {
			return false, err
		}
		index.Add(&graph.Module{Name: name, Path: location})
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", absRoot, err)
	}
	return index, nil
}
