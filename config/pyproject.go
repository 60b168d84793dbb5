package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/viant/afs"
)

// PyProjectFile is the python project descriptor name
const PyProjectFile = "pyproject.toml"

// PyProject represents the parts of pyproject.toml pymapper reads
type PyProject struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name string `toml:"name"`
		} `toml:"poetry"`
		Pymapper *Config `toml:"pymapper"`
	} `toml:"tool"`
}

// Name returns project name declared by either PEP 621 or poetry section
func (p *PyProject) Name() string {
	if p.Project.Name != "" {
		return p.Project.Name
	}
	return p.Tool.Poetry.Name
}

// ReadPyProject reads root/pyproject.toml, it returns nil without error when the file does not exist
func ReadPyProject(ctx context.Context, fs afs.Service, root string) (*PyProject, error) {
	location := filepath.Join(root, PyProjectFile)
	ok, err := fs.Exists(ctx, location)
	if err != nil || !ok {
		return nil, err
	}
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	project := &PyProject{}
	if err = toml.Unmarshal(data, project); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", location, err)
	}
	return project, nil
}

// Load returns default config overridden by the [tool.pymapper] table of root/pyproject.toml
func Load(ctx context.Context, fs afs.Service, root string) (*Config, error) {
	cfg := DefaultConfig()
	project, err := ReadPyProject(ctx, fs, root)
	if err != nil {
		return nil, err
	}
	if project != nil {
		cfg.Merge(project.Tool.Pymapper)
	}
	return cfg, nil
}
