package reinvite

import (
	"fmt"
	"io"
)

// Reporter receives user-visible progress from the executor. It replaces a
// shared console handle so the core stays free of global output state.
type Reporter interface {
	// Stepf reports the start of a step or an informational message
	Stepf(format string, args ...interface{})

	// Successf reports a completed operation
	Successf(format string, args ...interface{})

	// Warnf reports a non-fatal condition
	Warnf(format string, args ...interface{})

	// Tick reports one second of countdown with the remaining seconds
	Tick(remaining int)
}

// ConsoleReporter writes progress to a terminal. The countdown is rendered
// in place with a carriage return; the next full line closes it.
type ConsoleReporter struct {
	Out     io.Writer
	midLine bool
}

func (r *ConsoleReporter) Stepf(format string, args ...interface{}) {
	r.endLine()
	fmt.Fprintf(r.Out, format+"\n", args...)
}

func (r *ConsoleReporter) Successf(format string, args ...interface{}) {
	r.endLine()
	fmt.Fprintf(r.Out, "✓ "+format+"\n", args...)
}

func (r *ConsoleReporter) Warnf(format string, args ...interface{}) {
	r.endLine()
	fmt.Fprintf(r.Out, "⚠ "+format+"\n", args...)
}

func (r *ConsoleReporter) Tick(remaining int) {
	fmt.Fprintf(r.Out, "\rWaiting %d seconds before reinviting...", remaining)
	r.midLine = true
}

func (r *ConsoleReporter) endLine() {
	if r.midLine {
		fmt.Fprintln(r.Out)
		r.midLine = false
	}
}

// NopReporter discards all progress. Used by the API server and tests.
type NopReporter struct{}

func (NopReporter) Stepf(format string, args ...interface{})    {}
func (NopReporter) Successf(format string, args ...interface{}) {}
func (NopReporter) Warnf(format string, args ...interface{})    {}
func (NopReporter) Tick(remaining int)                          {}
