// Package checks implements the rule engine: a per-invocation diagnostics
// accumulator, an explicit rule registry and one independently invocable
// convention check per rule.
package checks

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Marks are rendered per report so a late color.NoColor toggle (the
// --no-color flag) is honored.
func errMark() string  { return color.New(color.FgRed).Sprint("✖") }
func warnMark() string { return color.New(color.FgYellow).Sprint("⚠") }
func passMark() string { return color.New(color.FgGreen).Sprint("✔") }

// Result accumulates the error and warning findings of exactly one rule
// invocation. It is append-only, owned by that invocation, and consumed once
// by Report.
type Result struct {
	rule     string
	out      io.Writer
	errors   []string
	warnings []string
}

// NewResult creates the accumulator for one rule invocation. The rule name
// is used only for report labeling.
func NewResult(rule string, out io.Writer) *Result {
	return &Result{rule: rule, out: out}
}

// Errorf records a failing finding; any recorded error makes the final
// verdict a failure.
func (r *Result) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

// Warnf records a non-fatal finding; warnings never affect the verdict.
func (r *Result) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any error was recorded so far.
func (r *Result) HasErrors() bool {
	return len(r.errors) > 0
}

// Errors returns the recorded errors in insertion order.
func (r *Result) Errors() []string {
	return r.errors
}

// Warnings returns the recorded warnings in insertion order.
func (r *Result) Warnings() []string {
	return r.warnings
}

// Report prints every warning, then every error, then a final verdict line,
// and returns the process exit status: 0 when the error sequence is empty,
// 1 otherwise.
func (r *Result) Report() int {
	for _, warning := range r.warnings {
		fmt.Fprintf(r.out, "%s %s\n", warnMark(), warning)
	}
	for _, failure := range r.errors {
		fmt.Fprintf(r.out, "%s %s\n", errMark(), failure)
	}
	if len(r.errors) > 0 {
		fmt.Fprintf(r.out, "%s %s: %d error(s)\n", errMark(), r.rule, len(r.errors))
		return 1
	}
	fmt.Fprintf(r.out, "%s %s: passed\n", passMark(), r.rule)
	return 0
}
