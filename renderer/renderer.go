package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	dgraph "github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/goccy/go-graphviz"
	"github.com/viant/afs"
	"github.com/viant/pymapper/inspector/graph"
)

// Renderer lays out an import graph and rasterizes it to an image
type Renderer struct {
	fs     afs.Service
	layout graphviz.Layout
	format graphviz.Format
	dpi    int
}

// New creates a renderer, by default force-directed (fdp) PNG at 200 DPI
func New(options ...Option) *Renderer {
	r := &Renderer{
		fs:     afs.New(),
		layout: graphviz.FDP,
		format: graphviz.PNG,
		dpi:    200,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Graph builds a directed graph from edges, duplicate edges collapse into one
func (r *Renderer) Graph(edges []graph.Edge) (dgraph.Graph[string, string], error) {
	g := dgraph.New(dgraph.StringHash, dgraph.Directed())
	for _, edge := range edges {
		for _, vertex := range []string{edge.Source, edge.Target} {
			err := g.AddVertex(vertex,
				dgraph.VertexAttribute("shape", "ellipse"),
				dgraph.VertexAttribute("style", "filled"),
				dgraph.VertexAttribute("fillcolor", "lightblue"),
				dgraph.VertexAttribute("fontname", "sans-serif"),
				dgraph.VertexAttribute("fontsize", "8"),
			)
			if err != nil && !errors.Is(err, dgraph.ErrVertexAlreadyExists) {
				return nil, fmt.Errorf("failed to add module %s: %w", vertex, err)
			}
		}
		err := g.AddEdge(edge.Source, edge.Target,
			dgraph.EdgeAttribute("color", "gray"),
			dgraph.EdgeAttribute("arrowhead", "normal"),
			dgraph.EdgeAttribute("arrowsize", "0.6"),
		)
		if err != nil && !errors.Is(err, dgraph.ErrEdgeAlreadyExists) {
			return nil, fmt.Errorf("failed to add edge %s -> %s: %w", edge.Source, edge.Target, err)
		}
	}
	return g, nil
}

// DOT returns Graphviz DOT description of the import graph
func (r *Renderer) DOT(edges []graph.Edge) ([]byte, error) {
	g, err := r.Graph(edges)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = draw.DOT(g, &buf,
		draw.GraphAttribute("dpi", strconv.Itoa(r.dpi)),
		draw.GraphAttribute("overlap", "false"),
		draw.GraphAttribute("splines", "true"),
		draw.GraphAttribute("K", "0.5"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to draw graph: %w", err)
	}
	return buf.Bytes(), nil
}

// Image lays out edges and returns the encoded image
func (r *Renderer) Image(ctx context.Context, edges []graph.Edge) ([]byte, error) {
	dot, err := r.DOT(edges)
	if err != nil {
		return nil, err
	}
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, fmt.Errorf("failed to parse graph: %w", err)
	}
	defer parsed.Close()

	gv.SetLayout(r.layout)
	var buf bytes.Buffer
	if err = gv.Render(ctx, parsed, r.format, &buf); err != nil {
		return nil, fmt.Errorf("failed to lay out graph: %w", err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("graphviz produced empty %s image", r.format)
	}
	return buf.Bytes(), nil
}

// Render lays out edges and writes the image to output
func (r *Renderer) Render(ctx context.Context, edges []graph.Edge, output string) error {
	image, err := r.Image(ctx, edges)
	if err != nil {
		return err
	}
	if err = r.fs.Upload(ctx, output, 0644, bytes.NewReader(image)); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	return nil
}
