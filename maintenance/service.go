package maintenance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/pymapper/console"
	"github.com/viant/pymapper/inspector/graph"
)

// InstallResult reports outcome of a single package installation
type InstallResult struct {
	Package string
	Err     error
}

// Service runs maintenance actions interactively
type Service struct {
	Mover     *Mover
	Source    ImportSource
	Registry  *Registry
	Installer *Installer
	Prompter  console.Prompter
	Printer   *console.Printer
	Logger    *slog.Logger
	AssumeYes bool // skip install confirmation
}

// MoveUnused relocates unused modules and reports every move
func (s *Service) MoveUnused(ctx context.Context, unused []string, index *graph.Index) error {
	if len(unused) == 0 {
		s.Printer.Successf("Nothing to move, no unused files.")
		return nil
	}
	moves, err := s.Mover.MoveUnused(ctx, unused, index)
	for _, move := range moves {
		s.Printer.Infof("Moved %s -> %s", move.Source, move.Destination)
	}
	if err != nil {
		s.Printer.Failf("Moved %d of %d unused modules", len(moves), len(unused))
		return err
	}
	s.Printer.Successf("Unused modules relocated to ./%s/", s.Mover.quarantine)
	return nil
}

// InstallMissing detects external packages the interpreter cannot import and, once confirmed, installs them
func (s *Service) InstallMissing(ctx context.Context, index *graph.Index) ([]*InstallResult, error) {
	candidates := Candidates(ImportRoots(s.Source, index), index)
	missing, err := s.Registry.Missing(ctx, candidates)
	if err != nil {
		s.Printer.Failf("Could not check installed packages with %s: %v", s.Registry.python, err)
		return nil, err
	}
	if len(missing) == 0 {
		s.Printer.Successf("No missing external packages detected.")
		return nil, nil
	}

	s.Printer.Titlef("The following packages appear to be missing:")
	for _, pkg := range missing {
		s.Printer.Item(pkg)
	}
	confirmed := s.AssumeYes
	if !confirmed {
		if confirmed, err = s.Prompter.Confirm("Install these now with pip? [y/N] "); err != nil {
			return nil, fmt.Errorf("failed to read confirmation: %w", err)
		}
	}
	if !confirmed {
		s.Printer.Warnf("Installation skipped.")
		return nil, nil
	}

	results := make([]*InstallResult, 0, len(missing))
	for _, pkg := range missing {
		s.Printer.Infof("Installing %s ...", pkg)
		result := &InstallResult{Package: pkg, Err: s.Installer.Install(ctx, pkg)}
		if result.Err != nil {
			s.logger().Warn("package installation failed", "package", pkg, "error", result.Err)
			s.Printer.Failf("Failed to install %s: %v", pkg, result.Err)
		} else {
			s.Printer.Successf("%s installed.", pkg)
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
