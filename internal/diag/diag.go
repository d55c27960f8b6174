// Package diag implements the closed diagnostic model described in spec §6/§7:
// text-line diagnostics of the form
//
//	<function> (<severity>) <file> line <N> col <M>: <message>
//
// where the parenthesised field is the severity (WARNING, ERROR or FATAL);
// no source line of the reporting routine is recorded. There is a closed
// set of severities and error codes, and a per-call-depth
// error chain that nested parser routines append to.
//
// Adapted from the teacher's internal/core/errorfmt.go CLIError: a single
// uniform payload usable both as a Go error (via Error()) and as a structured
// value, rather than pulling in a third-party error-wrapping library.
package diag

import "fmt"

// Code is the closed error-code enumeration from spec §6.
type Code string

const (
	EOK        Code = "E_OK"
	ESyntax    Code = "E_SYNTAX"
	ENotFound  Code = "E_NOTFOUND"
	EDuplicate Code = "E_DUPLICATE"
	ECorrupt   Code = "E_CORRUPT"
	ENoData    Code = "E_NODATA"
	EArgument  Code = "E_ARGUMENT"
	EFormat    Code = "E_FORMAT"
	EConflict  Code = "E_CONFLICT"
	ENoInit    Code = "E_NOINIT"
	EType      Code = "E_TYPE"
	EOpenFail  Code = "E_OPENFAIL"
	EWriteFail Code = "E_WRITEFAIL"
	EMemory    Code = "E_MEMORY"
	EAmbiguous Code = "E_AMBIGUOUS"
)

// Severity is the closed severity enumeration from spec §7.
type Severity int

const (
	Warning Severity = iota
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Diagnostic is one uniform payload usable both as a Go error (Error()) and
// as a structured value for the summary line / JSON export.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Function string // routine in which the diagnostic was raised
	File     string
	Line     int
	Col      int
	Message  string
}

// Error formats the diagnostic as
// "<function> (<severity>) <file> line <N> col <M>: <message>".
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s (%s) %s line %d col %d: %s",
		d.Function, d.Severity, d.File, d.Line, d.Col, d.Message)
}

// New builds a Diagnostic; prefer this over a literal so Severity defaults
// sanely and callers don't forget the file/line/col context.
func New(sev Severity, code Code, function, file string, line, col int, format string, args ...any) Diagnostic {
	return Diagnostic{
		Code: code, Severity: sev, Function: function, File: file,
		Line: line, Col: col, Message: fmt.Sprintf(format, args...),
	}
}

// Chain is a per-call-depth accumulator: nested parser routines append to it
// and the outermost parse of a file emits the whole chain (spec §7
// "Propagation: local routines append to the per-depth error chain").
type Chain struct {
	entries []Diagnostic
}

func (c *Chain) Append(d Diagnostic) { c.entries = append(c.entries, d) }

func (c *Chain) Entries() []Diagnostic { return c.entries }

// Counts returns the number of WARNING and ERROR-or-worse entries in the
// chain, used for the single summary line printed after a run; the counts
// cover every file whose diagnostics were appended, not one file.
func (c *Chain) Counts() (warnings, errors int) {
	for _, d := range c.entries {
		switch d.Severity {
		case Warning:
			warnings++
		case Error, Fatal:
			errors++
		}
	}
	return
}

func (c *Chain) HasFatal() bool {
	for _, d := range c.entries {
		if d.Severity == Fatal {
			return true
		}
	}
	return false
}

// Reset clears the chain.
func (c *Chain) Reset() { c.entries = c.entries[:0] }
