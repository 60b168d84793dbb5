package maintenance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/pymapper/inspector/graph"
)

// Move describes a relocated module
type Move struct {
	Module      string
	Source      string
	Destination string
}

// Mover relocates unused modules into a quarantine folder under the index root
type Mover struct {
	fs         afs.Service
	quarantine string
	extension  string
	logger     *slog.Logger
}

// NewMover creates a mover targeting root/quarantine
func NewMover(quarantine, extension string, logger *slog.Logger) *Mover {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mover{
		fs:         afs.New(),
		quarantine: quarantine,
		extension:  extension,
		logger:     logger,
	}
}

// Destination returns quarantine location of a module, its dotted name becomes nested folders
func (m *Mover) Destination(root, module string) string {
	parts := append([]string{root, m.quarantine}, strings.Split(module, ".")...)
	return filepath.Join(parts...) + m.extension
}

// MoveUnused relocates every unused module. A failed file is logged and skipped,
// the remaining files are still moved and all failures are returned joined.
func (m *Mover) MoveUnused(ctx context.Context, unused []string, index *graph.Index) ([]*Move, error) {
	var moves []*Move
	var errs []error
	for _, name := range unused {
		module := index.Lookup(name)
		if module == nil {
			continue
		}
		move := &Move{
			Module:      name,
			Source:      module.Path,
			Destination: m.Destination(index.Root, name),
		}
		if err := m.move(ctx, move); err != nil {
			m.logger.Error("failed to move module", "module", name, "source", move.Source, "error", err)
			errs = append(errs, err)
			continue
		}
		moves = append(moves, move)
	}
	return moves, errors.Join(errs...)
}

func (m *Mover) move(ctx context.Context, move *Move) error {
	content, err := m.fs.DownloadWithURL(ctx, move.Source)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", move.Source, err)
	}
	expected, err := graph.Hash(content)
	if err != nil {
		return err
	}
	parent := filepath.Dir(move.Destination)
	if ok, _ := m.fs.Exists(ctx, parent); !ok {
		if err = m.fs.Create(ctx, parent, 0755, true); err != nil {
			return fmt.Errorf("failed to create %s: %w", parent, err)
		}
	}
	if err = m.fs.Move(ctx, move.Source, move.Destination); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", move.Source, move.Destination, err)
	}
	reader, err := m.fs.OpenURL(ctx, move.Destination)
	if err != nil {
		return fmt.Errorf("failed to verify %s: %w", move.Destination, err)
	}
	defer reader.Close()
	actual, err := graph.HashReader(reader)
	if err != nil {
		return fmt.Errorf("failed to verify %s: %w", move.Destination, err)
	}
	if actual != expected {
		return fmt.Errorf("content of %s changed while moving to %s", move.Source, move.Destination)
	}
	return nil
}
