package schemerr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/go-scheme/internal/reader"
)

func TestErrorStringHasKindAndMessage(t *testing.T) {
	err := New(Unbound, "x")
	require.Equal(t, "Unbound variable: x", err.Error())
}

func TestErrorStringAppendsContext(t *testing.T) {
	err := New(Type, "car: not a pair").WithContext("(car (quote ()))")
	require.Equal(t, "Type: car: not a pair\n (car (quote ()))", err.Error())
}

func TestNewfFormatsMessage(t *testing.T) {
	err := Newf(HostIO, "cannot read %s", "missing.scm")
	require.Equal(t, "cannot read missing.scm", err.Message)
}

func TestFormatWithoutPositionOmitsSourceLine(t *testing.T) {
	err := New(Syntax, "unexpected )")
	got := err.Format("(+ 1 2)\n)", nil)
	require.Equal(t, "Syntax: unexpected )", got)
}

func TestFormatWithPositionRendersSourceLineAndCaret(t *testing.T) {
	err := New(Syntax, "unexpected )").WithPos(reader.Position{Line: 2, Column: 1})
	got := err.Format("(+ 1 2)\n)", nil)
	lines := strings.Split(got, "\n")
	require.Equal(t, "Syntax: unexpected )", lines[0])
	require.Contains(t, lines[1], ")")
	require.Contains(t, lines[2], "^")
}

func TestFormatColorizesLabelWhenGiven(t *testing.T) {
	err := New(Unbound, "y")
	got := err.Format("", func(k Kind, s string) string { return "[" + s + "]" })
	require.Equal(t, "[Unbound variable:] y", got)
}

func TestFormatPositionOutsideSourceSkipsLine(t *testing.T) {
	err := New(Syntax, "oops").WithPos(reader.Position{Line: 99, Column: 1})
	got := err.Format("(+ 1 2)", nil)
	require.Equal(t, "Syntax: oops", got)
}

func TestKindStrings(t *testing.T) {
	require.Equal(t, "Syntax", Syntax.String())
	require.Equal(t, "Unbound variable", Unbound.String())
	require.Equal(t, "Type", Type.String())
	require.Equal(t, "Improper-list", ImproperList.String())
	require.Equal(t, "Host I/O", HostIO.String())
}
