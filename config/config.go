package config

// Config holds pymapper settings, loaded from defaults, pyproject.toml and command line flags
type Config struct {
	Start      string `toml:"start" yaml:"start,omitempty"`           // Entry file relative to the root
	Output     string `toml:"output" yaml:"output,omitempty"`         // Rendered graph image
	Quarantine string `toml:"quarantine" yaml:"quarantine,omitempty"` // Folder receiving unused modules
	Python     string `toml:"python" yaml:"python,omitempty"`         // Interpreter used to query and install packages
	Extension  string `toml:"extension" yaml:"extension,omitempty"`   // Source file extension
	Layout     string `toml:"layout" yaml:"layout,omitempty"`         // Graphviz layout engine
	Format     string `toml:"format" yaml:"format,omitempty"`         // Image format: png, svg, jpg
	DPI        int    `toml:"dpi" yaml:"dpi,omitempty"`
}

const (
	DefaultOutput     = "file_map.png"
	DefaultQuarantine = "unused"
	DefaultPython     = "python3"
	DefaultExtension  = ".py"
	DefaultLayout     = "fdp"
	DefaultFormat     = "png"
	DefaultDPI        = 200
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Output:     DefaultOutput,
		Quarantine: DefaultQuarantine,
		Python:     DefaultPython,
		Extension:  DefaultExtension,
		Layout:     DefaultLayout,
		Format:     DefaultFormat,
		DPI:        DefaultDPI,
	}
}

// Merge overrides config settings with non-empty settings of other
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}
	if other.Start != "" {
		c.Start = other.Start
	}
	if other.Output != "" {
		c.Output = other.Output
	}
	if other.Quarantine != "" {
		c.Quarantine = other.Quarantine
	}
	if other.Python != "" {
		c.Python = other.Python
	}
	if other.Extension != "" {
		c.Extension = other.Extension
	}
	if other.Layout != "" {
		c.Layout = other.Layout
	}
	if other.Format != "" {
		c.Format = other.Format
	}
	if other.DPI > 0 {
		c.DPI = other.DPI
	}
	return c
}
