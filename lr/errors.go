package lr

import (
	"errors"
	"fmt"
	"strings"
)

// Severity classifies a diagnostic.
type Severity int

// Diagnostics come in three severities. Warnings do not invalidate the output,
// non-fatal errors do but let processing continue, fatal errors abort
// the build.
const (
	Warning Severity = iota
	NonFatal
	Fatal
)

func (sev Severity) String() string {
	switch sev {
	case Warning:
		return "WARNING"
	case NonFatal:
		return "ERROR"
	}
	return "FATAL"
}

// Sentinel errors, to be tested with errors.Is.
var (
	ErrNoGoal          = errors.New("grammar has no goal symbol")
	ErrGoalProductions = errors.New("goal symbol must have exactly one production")
	ErrCapacity        = errors.New("capacity limit exceeded")
	ErrInconsistent    = errors.New("internal inconsistency")
)

// FatalError is returned whenever table construction cannot continue.
// Clients should discard any partial output.
type FatalError struct {
	Msg string
	Err error // sentinel, may be nil
}

func (e *FatalError) Error() string {
	if e.Err == nil {
		return "fatal: " + e.Msg
	}
	return fmt.Sprintf("fatal: %s: %s", e.Err, e.Msg)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func fatal(sentinel error, format string, args ...interface{}) *FatalError {
	return &FatalError{Msg: fmt.Sprintf(format, args...), Err: sentinel}
}

// --- Diagnostics -----------------------------------------------------------

// Diagnostic is a single message produced during grammar validation or table
// construction. Line is 0 if unknown, State is -1 if the message does not
// concern a state.
type Diagnostic struct {
	Severity Severity
	Line     int
	State    int
	Msg      string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Severity.String())
	if d.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", d.Line)
	}
	if d.State >= 0 {
		fmt.Fprintf(&b, " (state %d)", d.State)
	}
	b.WriteString(": ")
	b.WriteString(d.Msg)
	return b.String()
}

// Diagnostics collects warnings and errors. Suppressed warnings are counted,
// but not recorded.
type Diagnostics struct {
	list     []Diagnostic
	warnings int
	errors   int
	quiet    bool
}

func (diag *Diagnostics) add(d Diagnostic) {
	switch d.Severity {
	case Warning:
		diag.warnings++
		if diag.quiet {
			return
		}
		tracer().Infof("%s", d)
	default:
		diag.errors++
		tracer().Errorf("%s", d)
	}
	diag.list = append(diag.list, d)
}

// Warnf records a warning for a state (or -1).
func (diag *Diagnostics) Warnf(state int, format string, args ...interface{}) {
	diag.add(Diagnostic{Severity: Warning, State: state, Msg: fmt.Sprintf(format, args...)})
}

// Errorf records a non-fatal error for a state (or -1).
func (diag *Diagnostics) Errorf(state int, format string, args ...interface{}) {
	diag.add(Diagnostic{Severity: NonFatal, State: state, Msg: fmt.Sprintf(format, args...)})
}

func (diag *Diagnostics) lineWarnf(line int, format string, args ...interface{}) {
	diag.add(Diagnostic{Severity: Warning, Line: line, State: -1, Msg: fmt.Sprintf(format, args...)})
}

func (diag *Diagnostics) lineErrorf(line int, format string, args ...interface{}) {
	diag.add(Diagnostic{Severity: NonFatal, Line: line, State: -1, Msg: fmt.Sprintf(format, args...)})
}

func (diag *Diagnostics) merge(other *Diagnostics) {
	diag.list = append(diag.list, other.list...)
	diag.warnings += other.warnings
	diag.errors += other.errors
}

// Warnings returns the number of warnings issued, suppressed ones included.
func (diag *Diagnostics) Warnings() int {
	return diag.warnings
}

// Errors returns the number of non-fatal errors.
func (diag *Diagnostics) Errors() int {
	return diag.errors
}

// All returns the recorded diagnostics in order of appearance.
func (diag *Diagnostics) All() []Diagnostic {
	return diag.list
}

// Err returns an error summarizing the hard errors, or nil.
func (diag *Diagnostics) Err() error {
	if diag.errors == 0 {
		return nil
	}
	for _, d := range diag.list {
		if d.Severity != Warning {
			return fmt.Errorf("%d error(s), first: %s", diag.errors, d)
		}
	}
	return fmt.Errorf("%d error(s)", diag.errors)
}
