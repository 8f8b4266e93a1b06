package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Class selects which messages a Printer lets through.
type Class int

const (
	Required Class = iota
	Error
	Normal
	Verbose
)

// Printer routes messages by class: errors go to the diagnosis stream,
// everything else to the terminal stream.
type Printer struct {
	classes    map[Class]bool
	terminal   io.Writer
	diagnosis  io.Writer
	useEscapes bool
}

// NewPrinter returns a Printer writing to stdout and stderr.
func NewPrinter(include []Class, allowEscapes bool) *Printer {
	return NewPrinterTo(os.Stdout, os.Stderr, include, allowEscapes)
}

// NewPrinterTo returns a Printer writing to the given streams.
func NewPrinterTo(terminal, diagnosis io.Writer, include []Class, allowEscapes bool) *Printer {
	p := &Printer{
		classes:    map[Class]bool{},
		terminal:   terminal,
		diagnosis:  diagnosis,
		useEscapes: allowEscapes,
	}
	for _, class := range include {
		p.classes[class] = true
	}
	return p
}

// ClassesFor maps the quiet/verbose switches to the classes to print.
// Quiet wins over verbose.
func ClassesFor(quiet, verbose bool) []Class {
	switch {
	case quiet:
		return []Class{Required, Error}
	case verbose:
		return []Class{Required, Error, Normal, Verbose}
	default:
		return []Class{Required, Error, Normal}
	}
}

// EscapesAllowed reports whether terminal escapes may be written to f.
func EscapesAllowed(noColor bool, f *os.File) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Out prints a formatted message if its class is enabled.
func (p *Printer) Out(class Class, format string, values ...any) {
	if !p.classes[class] {
		return
	}
	target := p.terminal
	if class == Error {
		target = p.diagnosis
	}
	fmt.Fprintf(target, format, values...)
}

// Enabled reports whether messages of class are printed.
func (p *Printer) Enabled(class Class) bool {
	return p.classes[class]
}

// Dim renders text dimmed when escapes are allowed.
func (p *Printer) Dim(text string) string {
	if !p.useEscapes {
		return text
	}
	return TerminalFormatAsDim(text)
}

// Alert renders text in the error color when escapes are allowed.
func (p *Printer) Alert(text string) string {
	if !p.useEscapes {
		return text
	}
	return TerminalFormatAsError(text)
}
