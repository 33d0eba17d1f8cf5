// Package schemerr implements the error taxonomy and source-context
// presentation described in spec.md §7 and expanded in SPEC_FULL.md
// §4.G: every error carries a Kind, a message, and (where available)
// the source position and the stringified continuation context at the
// point of failure, rendered with a source line and a caret in the
// style of a compiler diagnostic.
package schemerr

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-scheme/internal/reader"
)

// Kind is spec.md §7's error taxonomy.
type Kind int

const (
	Syntax Kind = iota
	Unbound
	Type
	ImproperList
	HostIO
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "Syntax"
	case Unbound:
		return "Unbound variable"
	case Type:
		return "Type"
	case ImproperList:
		return "Improper-list"
	case HostIO:
		return "Host I/O"
	default:
		return "Error"
	}
}

// Error is a single taxonomized interpreter error.
type Error struct {
	Kind    Kind
	Message string
	Pos     *reader.Position // nil if no source position is known
	Context string           // stringified continuation stack, if any
}

// New creates an Error with no position or continuation context yet.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// WithPos attaches a source position, returning the receiver for
// chaining.
func (e *Error) WithPos(pos reader.Position) *Error {
	e.Pos = &pos
	return e
}

// WithContext attaches the stringified continuation stack at the point
// of failure, returning the receiver for chaining.
func (e *Error) WithContext(ctx string) *Error {
	e.Context = ctx
	return e
}

// Error implements the error interface with the plain
// "<kind>: <message>" form spec.md §7 requires, with the continuation
// context appended on its own line when present.
func (e *Error) Error() string {
	s := e.Kind.String() + ": " + e.Message
	if e.Context != "" {
		s += "\n " + e.Context
	}
	return s
}

// Format renders e in the style of a compiler diagnostic: a
// "<kind>: <message>" header, the offending source line with a caret
// under the error column (when both source and a position are
// available), and the continuation context. When colorize is non-nil,
// the "<kind>:" label is passed through it; the CLI supplies one that
// applies ANSI colors (red for Type/Improper-list/Host I/O, yellow for
// Syntax, magenta for Unbound variable) and passes nil or a no-op for
// --no-color or non-TTY output.
func (e *Error) Format(source string, colorize func(kind Kind, s string) string) string {
	var b strings.Builder

	label := e.Kind.String() + ":"
	if colorize != nil {
		label = colorize(e.Kind, label)
	}
	fmt.Fprintf(&b, "%s %s\n", label, e.Message)

	if e.Pos != nil && source != "" {
		if line := sourceLine(source, e.Pos.Line); line != "" {
			lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
			fmt.Fprintf(&b, "%s%s\n", lineNumStr, line)
			b.WriteString(strings.Repeat(" ", len(lineNumStr)+max(e.Pos.Column-1, 0)))
			b.WriteString("^\n")
		}
	}

	if e.Context != "" {
		b.WriteString(" ")
		b.WriteString(e.Context)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func sourceLine(source string, lineNum int) string {
	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
