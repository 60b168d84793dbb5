package inspector

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/viant/pymapper/inspector/python"
)

// ErrUnsupportedFile is returned for files no inspector can handle
var ErrUnsupportedFile = errors.New("unsupported file type")

// Inspector provides an interface for extracting imports from source code
type Inspector interface {
	// InspectSource parses source code from a byte slice and extracts imported modules
	InspectSource(src []byte) ([]string, error)

	// InspectFile parses a source file and extracts imported modules
	InspectFile(filename string) ([]string, error)
}

// Factory creates appropriate inspectors based on file extension
type Factory struct {
	logger *slog.Logger
	python *python.Inspector
}

// NewFactory creates a new inspector factory, parse failures are reported to the logger
func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{
		logger: logger,
		python: python.NewInspector(),
	}
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".py", ".pyi":
		return f.python, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFile, ext)
	}
}

// InspectFile is a convenience method that gets the appropriate inspector and inspects the file
func (f *Factory) InspectFile(filename string) ([]string, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	return inspector.InspectFile(filename)
}

// Imports returns imported modules of a file, a file that cannot be read or parsed
// is reported as a warning and contributes no imports
func (f *Factory) Imports(filename string) []string {
	imports, err := f.InspectFile(filename)
	if err != nil {
		f.logger.Warn("could not parse file", "file", filename, "error", err)
		return []string{}
	}
	return imports
}
