package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/pymapper"
)

func TestRootCmd(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("import b\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.py"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte("[tool.pymapper]\nquarantine = \"attic\"\n"), 0644))

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name: "positional start",
			args: []string{"--root", root, "--actions", "q", "--no-render", "--no-color", "a.py"},
		},
		{
			name: "start flag with report",
			args: []string{"--root", root, "-s", "a.py", "-a", "q", "--no-render", "--report", "report.yaml"},
		},
		{
			name: "renders svg",
			args: []string{"--root", root, "-a", "q", "--no-color", "-o", "graph.svg", "--format", "svg", "a.py"},
		},
		{
			name:    "invalid start",
			args:    []string{"--root", root, "--actions", "q", "--no-render", "missing.py"},
			wantErr: pymapper.ErrInvalidStart,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "unexpected error: %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}

	_, err := os.Stat(filepath.Join(root, "report.yaml"))
	assert.NoError(t, err)

	svg, err := os.ReadFile(filepath.Join(root, "graph.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}

func TestRootCmd_TooManyArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"a.py", "b.py"})
	assert.Error(t, cmd.Execute())
}
