package repository

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/viant/afs"
	"github.com/viant/pymapper/config"
)

// Detector identifies python project metadata from marker files
type Detector struct {
	fs      afs.Service
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		fs: afs.New(),
		markers: []string{
			config.PyProjectFile, // PEP 517/621 projects
			"setup.py",           // setuptools projects
			"setup.cfg",          // declarative setuptools projects
			"requirements.txt",   // plain dependency list
			"Pipfile",            // pipenv projects
		},
	}
}

// DetectProject describes the project rooted at root, unknown projects fall back to the directory name
func (d *Detector) DetectProject(ctx context.Context, root string) *Project {
	absPath, err := filepath.Abs(root)
	if err != nil {
		absPath = root
	}
	project := &Project{
		RootPath: absPath,
		Type:     "unknown",
		Name:     filepath.Base(absPath),
	}
	for _, marker := range d.markers {
		if _, err := os.Stat(filepath.Join(absPath, marker)); err == nil {
			project.Type = "python"
			break
		}
	}
	if project.Type != "python" {
		return project
	}
	if pyProject, _ := config.ReadPyProject(ctx, d.fs, absPath); pyProject != nil && pyProject.Name() != "" {
		project.Name = pyProject.Name()
		return project
	}
	if name := d.extractSetupName(ctx, filepath.Join(absPath, "setup.py")); name != "" {
		project.Name = name
	}
	return project
}

var setupNameRegex = regexp.MustCompile(`name\s*=\s*["']([^"']+)["']`)

// extractSetupName reads name argument of a setup() call
func (d *Detector) extractSetupName(ctx context.Context, setupPath string) string {
	data, err := d.fs.DownloadWithURL(ctx, setupPath)
	if err != nil {
		return ""
	}
	matches := setupNameRegex.FindSubmatch(data)
	if len(matches) < 2 {
		return ""
	}
	return string(matches[1])
}
