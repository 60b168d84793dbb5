package maintenance

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
)

// findSpecScript prints every argument importlib cannot locate
const findSpecScript = `import importlib.util, sys
for name in sys.argv[1:]:
    try:
        found = importlib.util.find_spec(name) is not None
    except (ImportError, ValueError):
        found = False
    if not found:
        print(name)
`

// Registry checks which packages are importable by a python interpreter
type Registry struct {
	python string
	runner Runner
}

// NewRegistry creates a registry backed by the python interpreter
func NewRegistry(python string, runner Runner) *Registry {
	return &Registry{python: python, runner: runner}
}

// Missing returns the candidates the interpreter cannot import, in candidate order
func (r *Registry) Missing(ctx context.Context, candidates []string) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	args := append([]string{"-c", findSpecScript}, candidates...)
	out, err := r.runner.Output(ctx, r.python, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query installed packages: %w", err)
	}
	reported := make(map[string]bool)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			reported[name] = true
		}
	}
	var missing []string
	for _, candidate := range candidates {
		if reported[candidate] {
			missing = append(missing, candidate)
		}
	}
	return missing, nil
}
