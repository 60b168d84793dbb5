package analyzer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/pymapper/inspector/graph"
	"github.com/viant/pymapper/inspector/repository"
	"gopkg.in/yaml.v3"
)

// Report summarises an analysis run
type Report struct {
	Project *repository.Project `yaml:"project,omitempty"`
	Start   string              `yaml:"start"`
	Modules []*graph.Module     `yaml:"modules"`
	Visited []string            `yaml:"visited"`
	Edges   []graph.Edge        `yaml:"edges"`
	Unused  []*graph.Module     `yaml:"unused"`
}

// BuildReport constructs a Report from the index and a walk result
func BuildReport(project *repository.Project, index *graph.Index, result *graph.Result) *Report {
	report := &Report{
		Project: project,
		Start:   result.Start,
		Modules: index.Modules(),
		Visited: result.VisitedNames(),
		Edges:   result.Edges,
		Unused:  []*graph.Module{},
	}
	if report.Edges == nil {
		report.Edges = []graph.Edge{}
	}
	for _, name := range Unused(index, result.Visited) {
		report.Unused = append(report.Unused, index.Lookup(name))
	}
	return report
}

// YAML encodes the report
func (r *Report) YAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(r); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write stores the YAML report at location
func (r *Report) Write(ctx context.Context, fs afs.Service, location string) error {
	data, err := r.YAML()
	if err != nil {
		return err
	}
	if err = fs.Upload(ctx, location, 0644, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write report %s: %w", location, err)
	}
	return nil
}
