package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/pymapper"
	"github.com/viant/pymapper/config"
	"github.com/viant/pymapper/console"
	"github.com/viant/pymapper/maintenance"
)

type flags struct {
	root       string
	start      string
	actions    string
	yes        bool
	output     string
	dot        string
	report     string
	quarantine string
	python     string
	layout     string
	format     string
	dpi        int
	noRender   bool
	noColor    bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "pymapper [start.py]",
		Short: "Map python import graph and find unused files",
		Long: `pymapper walks imports starting from an entry file, renders the reachable
module graph, lists modules that are never imported and can optionally move
them away or install missing third-party packages.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && f.start == "" {
				f.start = args[0]
			}
			return run(cmd.Context(), f)
		},
	}

	flagSet := cmd.Flags()
	flagSet.StringVar(&f.root, "root", ".", "directory to scan")
	flagSet.StringVarP(&f.start, "start", "s", "", "entry file relative to the root (prompted when empty)")
	flagSet.StringVarP(&f.actions, "actions", "a", "", "comma separated actions: 1 move unused, 2 install missing, q quit (prompted when empty)")
	flagSet.BoolVarP(&f.yes, "yes", "y", false, "install missing packages without confirmation")
	flagSet.StringVarP(&f.output, "output", "o", "", "graph image file (default "+config.DefaultOutput+")")
	flagSet.StringVar(&f.dot, "dot", "", "write graph in DOT format to this file")
	flagSet.StringVar(&f.report, "report", "", "write YAML report to this file")
	flagSet.StringVar(&f.quarantine, "quarantine", "", "folder receiving unused files (default "+config.DefaultQuarantine+")")
	flagSet.StringVar(&f.python, "python", "", "python interpreter (default "+config.DefaultPython+")")
	flagSet.StringVar(&f.layout, "layout", "", "graphviz layout engine (default "+config.DefaultLayout+")")
	flagSet.StringVar(&f.format, "format", "", "graph image format: png, svg, jpg (default "+config.DefaultFormat+")")
	flagSet.IntVar(&f.dpi, "dpi", 0, "image resolution")
	flagSet.BoolVar(&f.noRender, "no-render", false, "skip rendering the graph image")
	flagSet.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	flagSet.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func run(ctx context.Context, f *flags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	printer := console.NewPrinter(os.Stdout, !f.noColor && console.IsTerminal(os.Stdout))

	cfg, err := config.Load(ctx, afs.New(), f.root)
	if err != nil {
		logger.Warn("ignoring project configuration", "error", err)
		cfg = config.DefaultConfig()
	}
	cfg.Merge(&config.Config{
		Output:     f.output,
		Quarantine: f.quarantine,
		Python:     f.python,
		Layout:     f.layout,
		Format:     f.format,
		DPI:        f.dpi,
	})

	runner := &maintenance.ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
	mapper := pymapper.New(cfg, console.NewLinePrompter(os.Stdin, os.Stdout), printer, logger, runner)
	err = mapper.Run(ctx, &pymapper.Options{
		Root:      f.root,
		Start:     f.start,
		Actions:   f.actions,
		AssumeYes: f.yes,
		NoRender:  f.noRender,
		DOT:       f.dot,
		Report:    f.report,
	})
	if err != nil {
		printer.Failf("%v", err)
	}
	return err
}
