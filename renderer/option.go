package renderer

import "github.com/goccy/go-graphviz"

type Option func(*Renderer)

// WithLayout sets graphviz layout engine (fdp, neato, sfdp, dot, circo)
func WithLayout(layout string) Option {
	return func(r *Renderer) {
		if layout != "" {
			r.layout = graphviz.Layout(layout)
		}
	}
}

// WithDPI sets raster resolution
func WithDPI(dpi int) Option {
	return func(r *Renderer) {
		if dpi > 0 {
			r.dpi = dpi
		}
	}
}

// WithFormat sets output image format
func WithFormat(format string) Option {
	return func(r *Renderer) {
		if format != "" {
			r.format = graphviz.Format(format)
		}
	}
}
