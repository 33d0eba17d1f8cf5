package builtins

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/go-scheme/internal/reader"
	"github.com/cwbudde/go-scheme/internal/values"
)

func TestDisplayWritesUnquoted(t *testing.T) {
	var out strings.Builder
	env := NewGlobalEnv(&out, nil, nil)
	callIntrinsic(t, env, "display", values.SchemeStr{Val: "hi"})
	require.Equal(t, "hi", out.String())
}

func TestWriteQuotesStrings(t *testing.T) {
	var out strings.Builder
	env := NewGlobalEnv(&out, nil, nil)
	callIntrinsic(t, env, "write", values.SchemeStr{Val: "hi"})
	require.Equal(t, `"hi"`, out.String())
}

func TestNewlinePrintsNewline(t *testing.T) {
	var out strings.Builder
	env := NewGlobalEnv(&out, nil, nil)
	callIntrinsic(t, env, "newline")
	require.Equal(t, "\n", out.String())
}

func TestReadWithoutSourceReturnsEOF(t *testing.T) {
	env := testEnv()
	got := callIntrinsic(t, env, "read")
	require.True(t, values.IsEOF(got))
}

func TestReadFromSharedBuffer(t *testing.T) {
	buf := reader.NewTokenBuffer()
	buf.Feed("(1 2 3)")
	var out strings.Builder
	env := NewGlobalEnv(&out, buf, nil)
	got := callIntrinsic(t, env, "read")
	require.Equal(t, values.NewList(values.Int{Val: 1}, values.Int{Val: 2}, values.Int{Val: 3}), got)
}

func TestGensymUnique(t *testing.T) {
	env := testEnv()
	a := callIntrinsic(t, env, "gensym")
	b := callIntrinsic(t, env, "gensym")
	require.NotEqual(t, a, b)
}

func TestGlobalsListsDefinedNames(t *testing.T) {
	env := testEnv()
	got := callIntrinsic(t, env, "globals")
	slice, err := values.ListToSlice(got)
	require.NoError(t, err)
	require.NotEmpty(t, slice)

	var names []string
	for _, v := range slice {
		sym, ok := v.(*values.Symbol)
		require.True(t, ok)
		names = append(names, sym.Name)
	}
	require.Contains(t, names, "car")
	require.Contains(t, names, "+")
}

func TestErrorProcReturnsAnError(t *testing.T) {
	_, err := errorProc(values.NewList(values.SchemeStr{Val: "boom"}, values.Int{Val: 42}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}
