package pymapper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/pymapper/analyzer"
	"github.com/viant/pymapper/config"
	"github.com/viant/pymapper/console"
	"github.com/viant/pymapper/inspector"
	"github.com/viant/pymapper/inspector/graph"
	"github.com/viant/pymapper/inspector/repository"
	"github.com/viant/pymapper/maintenance"
	"github.com/viant/pymapper/renderer"
)

// ErrInvalidStart is returned when the start file does not exist, is not a file or lies outside the root
var ErrInvalidStart = errors.New("invalid start file")

const (
	ActionMove    = "1"
	ActionInstall = "2"
	ActionQuit    = "q"
)

// Options controls a single run
type Options struct {
	Root      string // scan root, defaults to the working directory
	Start     string // entry file, relative to root or absolute
	Actions   string // comma separated action selection, prompted when empty
	AssumeYes bool   // install without confirmation
	NoRender  bool   // skip image rendering
	DOT       string // optional DOT output file
	Report    string // optional YAML report file
}

// Mapper runs the analysis pipeline: index, walk, render, report and maintenance actions
type Mapper struct {
	Config   *config.Config
	Prompter console.Prompter
	Printer  *console.Printer
	Logger   *slog.Logger
	Runner   maintenance.Runner
	fs       afs.Service
}

// New creates a mapper
func New(cfg *config.Config, prompter console.Prompter, printer *console.Printer, logger *slog.Logger, runner maintenance.Runner) *Mapper {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Mapper{
		Config:   cfg,
		Prompter: prompter,
		Printer:  printer,
		Logger:   logger,
		Runner:   runner,
		fs:       afs.New(),
	}
}

// Run executes the whole pipeline, only an invalid or unmapped start file is fatal
func (m *Mapper) Run(ctx context.Context, options *Options) error {
	root, err := filepath.Abs(options.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve root: %w", err)
	}
	start := options.Start
	if start == "" {
		start = m.Config.Start
	}
	if start == "" {
		if start, err = m.Prompter.Ask(fmt.Sprintf("Enter relative path to the starting %s file: ", m.Config.Extension)); err != nil {
			return fmt.Errorf("failed to read start file: %w", err)
		}
	}
	startPath, err := ValidateStart(root, start)
	if err != nil {
		return err
	}

	index, err := repository.NewIndexer(m.Config.Extension).Index(ctx, root)
	if err != nil {
		return err
	}
	startModule, err := graph.ModuleName(root, startPath, m.Config.Extension)
	if err != nil || !index.Has(startModule) {
		return fmt.Errorf("%w: could not map %s to a module name", analyzer.ErrUnmappedModule, start)
	}

	m.Printer.Infof("Scanning imports from module: %s", startModule)
	factory := inspector.NewFactory(m.Logger)
	result, err := analyzer.New(factory, analyzer.WithLogger(m.Logger)).Walk(startModule, index)
	if err != nil {
		return err
	}

	m.render(ctx, root, options, result)

	unused := analyzer.Unused(index, result.Visited)
	if len(unused) > 0 {
		m.Printer.Titlef("\nUnused files:")
		for _, name := range unused {
			m.Printer.Item(index.Lookup(name).Path)
		}
	} else {
		m.Printer.Successf("\nNo unused %s files detected!", m.Config.Extension)
	}

	if options.Report != "" {
		project := repository.New().DetectProject(ctx, root)
		report := analyzer.BuildReport(project, index, result)
		if err := report.Write(ctx, m.fs, m.resolve(root, options.Report)); err != nil {
			m.Logger.Error("failed to write report", "error", err)
		} else {
			m.Printer.Infof("Report written to: %s", options.Report)
		}
	}

	m.runActions(ctx, options, index, unused, factory)
	m.Printer.Successf("Done.")
	return nil
}

func (m *Mapper) render(ctx context.Context, root string, options *Options, result *graph.Result) {
	graphRenderer := renderer.New(
		renderer.WithLayout(m.Config.Layout),
		renderer.WithFormat(m.Config.Format),
		renderer.WithDPI(m.Config.DPI),
	)
	if options.DOT != "" {
		dot, err := graphRenderer.DOT(result.Edges)
		if err == nil {
			err = m.fs.Upload(ctx, m.resolve(root, options.DOT), 0644, bytes.NewReader(dot))
		}
		if err != nil {
			m.Logger.Error("failed to write DOT graph", "error", err)
		}
	}
	if options.NoRender {
		return
	}
	output := m.resolve(root, m.Config.Output)
	if err := graphRenderer.Render(ctx, result.Edges, output); err != nil {
		m.Logger.Error("failed to render graph", "output", output, "error", err)
		return
	}
	m.Printer.Infof("Graph rendered to: %s", m.Config.Output)
}

func (m *Mapper) runActions(ctx context.Context, options *Options, index *graph.Index, unused []string, source maintenance.ImportSource) {
	selection := options.Actions
	if selection == "" {
		m.Printer.Println(fmt.Sprintf("\nWhat would you like to do?\n"+
			"%s  Move all unused files to ./%s\n"+
			"%s  Detect & install missing external dependencies\n"+
			"%s  Quit\n"+
			"Enter one or more choices separated by commas (e.g., 1,2):",
			ActionMove, m.Config.Quarantine, ActionInstall, ActionQuit))
		var err error
		if selection, err = m.Prompter.Ask("> "); err != nil {
			m.Logger.Debug("no action selected", "error", err)
			return
		}
	}
	choices := console.ParseChoices(selection)
	service := &maintenance.Service{
		Mover:     maintenance.NewMover(m.Config.Quarantine, m.Config.Extension, m.Logger),
		Source:    source,
		Registry:  maintenance.NewRegistry(m.Config.Python, m.Runner),
		Installer: maintenance.NewInstaller(m.Config.Python, m.Runner),
		Prompter:  m.Prompter,
		Printer:   m.Printer,
		Logger:    m.Logger,
		AssumeYes: options.AssumeYes,
	}
	if choices[ActionMove] {
		if err := service.MoveUnused(ctx, unused, index); err != nil {
			m.Logger.Error("moving unused files failed", "error", err)
		}
	}
	if choices[ActionInstall] {
		if _, err := service.InstallMissing(ctx, index); err != nil {
			m.Logger.Error("installing missing packages failed", "error", err)
		}
	}
}

// resolve makes location absolute relative to root
func (m *Mapper) resolve(root, location string) string {
	if filepath.IsAbs(location) {
		return location
	}
	return filepath.Join(root, location)
}

// ValidateStart checks that start names an existing regular file inside root and returns its absolute path
func ValidateStart(root, start string) (string, error) {
	if start == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidStart)
	}
	location := start
	if !filepath.IsAbs(location) {
		location = filepath.Join(root, location)
	}
	location = filepath.Clean(location)
	rel, err := filepath.Rel(root, location)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s is outside of %s", ErrInvalidStart, start, root)
	}
	info, err := os.Stat(location)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidStart, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a file", ErrInvalidStart, start)
	}
	return location, nil
}
