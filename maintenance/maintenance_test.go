package maintenance_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/pymapper/console"
	"github.com/viant/pymapper/inspector"
	"github.com/viant/pymapper/inspector/graph"
	"github.com/viant/pymapper/maintenance"
)

// fakeRunner records invocations and answers from canned data
type fakeRunner struct {
	output   string
	outErr   error
	failures map[string]bool // package names whose install fails
	calls    [][]string
}

func (r *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	return []byte(r.output), r.outErr
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	r.calls = append(r.calls, append([]string{name}, args...))
	if pkg := args[len(args)-1]; r.failures[pkg] {
		return errors.New("exit status 1")
	}
	return nil
}

func buildIndex(t *testing.T, files map[string]string) *graph.Index {
	t.Helper()
	root := t.TempDir()
	index := graph.NewIndex(root)
	for name, content := range files {
		location := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0644))
		moduleName, err := graph.ModuleName(root, location, ".py")
		require.NoError(t, err)
		index.Add(&graph.Module{Name: moduleName, Path: location})
	}
	return index
}

func TestMover_Destination(t *testing.T) {
	mover := maintenance.NewMover("unused", ".py", nil)
	assert.Equal(t, filepath.Join("/root", "unused", "pkg", "deep", "leaf.py"), mover.Destination("/root", "pkg.deep.leaf"))
	assert.Equal(t, filepath.Join("/root", "unused", "c.py"), mover.Destination("/root", "c"))
}

func TestMover_MoveUnused(t *testing.T) {
	index := buildIndex(t, map[string]string{
		"a.py":            "import b\n",
		"b.py":            "",
		"c.py":            "print('c')\n",
		"pkg/old/x.py":    "X = 1\n",
		"pkg/__init__.py": "",
	})

	mover := maintenance.NewMover("unused", ".py", nil)
	moves, err := mover.MoveUnused(context.Background(), []string{"c", "pkg.old.x"}, index)
	require.NoError(t, err)
	require.Len(t, moves, 2)

	for _, move := range moves {
		_, err := os.Stat(move.Source)
		assert.True(t, os.IsNotExist(err), move.Source)
	}
	data, err := os.ReadFile(filepath.Join(index.Root, "unused", "c.py"))
	require.NoError(t, err)
	assert.Equal(t, "print('c')\n", string(data))
	data, err = os.ReadFile(filepath.Join(index.Root, "unused", "pkg", "old", "x.py"))
	require.NoError(t, err)
	assert.Equal(t, "X = 1\n", string(data))

	_, err = os.Stat(filepath.Join(index.Root, "a.py"))
	assert.NoError(t, err)
}

func TestMover_MoveUnused_ContinuesAfterFailure(t *testing.T) {
	index := buildIndex(t, map[string]string{"c.py": "", "d.py": ""})
	require.NoError(t, os.Remove(index.Lookup("c").Path))

	mover := maintenance.NewMover("unused", ".py", nil)
	moves, err := mover.MoveUnused(context.Background(), []string{"c", "d"}, index)
	assert.Error(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, "d", moves[0].Module)
}

func TestService_MoveUnused_Empty(t *testing.T) {
	index := buildIndex(t, map[string]string{"a.py": ""})
	var out bytes.Buffer
	service := &maintenance.Service{
		Mover:   maintenance.NewMover("unused", ".py", nil),
		Printer: console.NewPrinter(&out, false),
	}
	require.NoError(t, service.MoveUnused(context.Background(), nil, index))
	assert.Contains(t, out.String(), "Nothing to move")

	_, err := os.Stat(filepath.Join(index.Root, "unused"))
	assert.True(t, os.IsNotExist(err))
}

func TestImportRootsAndCandidates(t *testing.T) {
	index := buildIndex(t, map[string]string{
		"a.py":       "import numpy as np\nimport pkg.sub\nimport os.path\n",
		"pkg/sub.py": "from requests.adapters import HTTPAdapter\nimport b\n",
		"b.py":       "import yaml\n",
		"bad.py":     "def (:\n",
	})
	source := inspector.NewFactory(nil)

	roots := maintenance.ImportRoots(source, index)
	assert.Equal(t, []string{"b", "numpy", "os", "pkg", "requests", "yaml"}, roots)
	assert.Equal(t, []string{"numpy", "os", "requests", "yaml"}, maintenance.Candidates(roots, index))
}

func TestRegistry_Missing(t *testing.T) {
	runner := &fakeRunner{output: "numpy\n\nyaml\n"}
	registry := maintenance.NewRegistry("python3", runner)

	missing, err := registry.Missing(context.Background(), []string{"numpy", "os", "yaml"})
	require.NoError(t, err)
	assert.Equal(t, []string{"numpy", "yaml"}, missing)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "python3", runner.calls[0][0])
	assert.Equal(t, "-c", runner.calls[0][1])
	assert.Equal(t, []string{"numpy", "os", "yaml"}, runner.calls[0][3:])

	missing, err = registry.Missing(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, missing)
	assert.Len(t, runner.calls, 1)

	failing := maintenance.NewRegistry("python3", &fakeRunner{outErr: errors.New("not found")})
	_, err = failing.Missing(context.Background(), []string{"numpy"})
	assert.Error(t, err)
}

func TestService_InstallMissing(t *testing.T) {
	files := map[string]string{
		"a.py": "import numpy\nimport requests\nimport os\nimport b\n",
		"b.py": "import yaml\n",
	}
	tests := []struct {
		name        string
		answer      string
		assumeYes   bool
		registryOut string
		failures    map[string]bool
		wantResults []string
		wantFailed  []string
		wantOutput  []string
	}{
		{
			name:        "nothing missing",
			registryOut: "",
			wantOutput:  []string{"No missing external packages detected."},
		},
		{
			name:        "declined",
			answer:      "n\n",
			registryOut: "numpy\nyaml\n",
			wantOutput:  []string{"  - numpy", "  - yaml", "Installation skipped."},
		},
		{
			name:        "confirmed with failure",
			answer:      "y\n",
			registryOut: "numpy\nrequests\nyaml\n",
			failures:    map[string]bool{"requests": true},
			wantResults: []string{"numpy", "requests", "yaml"},
			wantFailed:  []string{"requests"},
			wantOutput:  []string{"numpy installed.", "Failed to install requests", "yaml installed."},
		},
		{
			name:        "assume yes",
			assumeYes:   true,
			registryOut: "numpy\n",
			wantResults: []string{"numpy"},
			wantOutput:  []string{"numpy installed."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index := buildIndex(t, files)
			runner := &fakeRunner{output: tt.registryOut, failures: tt.failures}
			var out bytes.Buffer
			service := &maintenance.Service{
				Source:    inspector.NewFactory(nil),
				Registry:  maintenance.NewRegistry("python3", runner),
				Installer: maintenance.NewInstaller("python3", runner),
				Prompter:  console.NewLinePrompter(strings.NewReader(tt.answer), &out),
				Printer:   console.NewPrinter(&out, false),
				AssumeYes: tt.assumeYes,
			}

			results, err := service.InstallMissing(context.Background(), index)
			require.NoError(t, err)

			var installed, failed []string
			for _, result := range results {
				installed = append(installed, result.Package)
				if result.Err != nil {
					failed = append(failed, result.Package)
				}
			}
			assert.Equal(t, tt.wantResults, installed)
			assert.Equal(t, tt.wantFailed, failed)
			for _, expected := range tt.wantOutput {
				assert.Contains(t, out.String(), expected)
			}
			for _, call := range runner.calls[1:] {
				assert.Equal(t, []string{"python3", "-m", "pip", "install"}, call[:4])
			}
		})
	}
}

func TestService_InstallMissing_InterpreterFailure(t *testing.T) {
	index := buildIndex(t, map[string]string{"a.py": "import numpy\n"})
	runner := &fakeRunner{outErr: errors.New("executable file not found in $PATH")}
	var out bytes.Buffer
	service := &maintenance.Service{
		Source:    inspector.NewFactory(nil),
		Registry:  maintenance.NewRegistry("python3.99", runner),
		Installer: maintenance.NewInstaller("python3.99", runner),
		Prompter:  console.NewLinePrompter(strings.NewReader(""), &out),
		Printer:   console.NewPrinter(&out, false),
	}

	results, err := service.InstallMissing(context.Background(), index)
	assert.Error(t, err)
	assert.Empty(t, results)
	assert.Contains(t, out.String(), "Could not check installed packages with python3.99")
	assert.Contains(t, out.String(), "executable file not found")
	assert.Len(t, runner.calls, 1)
}
