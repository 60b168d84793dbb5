package renderer_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/pymapper/inspector/graph"
	"github.com/viant/pymapper/renderer"
)

func TestRenderer_Graph(t *testing.T) {
	edges := []graph.Edge{
		{Source: "a", Target: "b"},
		{Source: "a", Target: "b"},
		{Source: "b", Target: "pkg.sub"},
		{Source: "pkg.sub", Target: "a"},
	}
	g, err := renderer.New().Graph(edges)
	require.NoError(t, err)

	order, err := g.Order()
	require.NoError(t, err)
	assert.Equal(t, 3, order)

	size, err := g.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	_, err = g.Edge("b", "pkg.sub")
	assert.NoError(t, err)
}

func TestRenderer_DOT(t *testing.T) {
	dot, err := renderer.New(renderer.WithDPI(96)).DOT([]graph.Edge{
		{Source: "a", Target: "b"},
		{Source: "a", Target: "pkg.sub"},
	})
	require.NoError(t, err)

	text := string(dot)
	assert.Contains(t, text, "digraph")
	assert.Contains(t, text, `"a" -> "b"`)
	assert.Contains(t, text, `"a" -> "pkg.sub"`)
	assert.Contains(t, text, `dpi="96"`)
	assert.Contains(t, text, `fillcolor="lightblue"`)
	assert.False(t, strings.Contains(text, `"c"`))
}

func TestRenderer_Render(t *testing.T) {
	output := filepath.Join(t.TempDir(), "file_map.png")
	err := renderer.New(renderer.WithDPI(72)).Render(context.Background(), []graph.Edge{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "c"},
	}, output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "expected png image")
}

func TestRenderer_Image(t *testing.T) {
	edges := []graph.Edge{{Source: "a", Target: "b"}}

	png, err := renderer.New(renderer.WithLayout("dot"), renderer.WithDPI(72)).Image(context.Background(), edges)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "expected png image")

	svg, err := renderer.New(renderer.WithFormat("svg")).Image(context.Background(), edges)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}

func TestRenderer_Render_WriteFailure(t *testing.T) {
	output := filepath.Join(t.TempDir(), "file_map.png")
	require.NoError(t, os.Mkdir(output, 0755))

	err := renderer.New().Render(context.Background(), []graph.Edge{{Source: "a", Target: "b"}}, output)
	assert.Error(t, err)
}
