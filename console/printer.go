package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Printer writes user facing messages
type Printer struct {
	out     io.Writer
	title   *color.Color
	info    *color.Color
	success *color.Color
	warn    *color.Color
	fail    *color.Color
}

// NewPrinter creates a printer, colored output uses ANSI escapes
func NewPrinter(out io.Writer, colored bool) *Printer {
	p := &Printer{
		out:     out,
		title:   color.New(color.Bold),
		info:    color.New(color.FgCyan),
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.title, p.info, p.success, p.warn, p.fail} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) Titlef(format string, args ...interface{}) {
	p.title.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Infof(format string, args ...interface{}) {
	p.info.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Successf(format string, args ...interface{}) {
	p.success.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Warnf(format string, args ...interface{}) {
	p.warn.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Failf(format string, args ...interface{}) {
	p.fail.Fprintf(p.out, format+"\n", args...)
}

// Item prints a list entry
func (p *Printer) Item(text string) {
	fmt.Fprintf(p.out, "  - %s\n", text)
}

// Println prints an uncolored line
func (p *Printer) Println(text string) {
	fmt.Fprintln(p.out, text)
}
