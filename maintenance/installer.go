package maintenance

import (
	"context"
)

// Installer installs packages with pip
type Installer struct {
	python string
	runner Runner
}

// NewInstaller creates an installer invoking "python -m pip install"
func NewInstaller(python string, runner Runner) *Installer {
	return &Installer{python: python, runner: runner}
}

// Install installs a single package
func (i *Installer) Install(ctx context.Context, pkg string) error {
	return i.runner.Run(ctx, i.python, "-m", "pip", "install", pkg)
}
