package builtins

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/go-scheme/internal/values"
)

func callIntrinsic(t *testing.T, env *values.Env, name string, args ...values.Value) values.Value {
	t.Helper()
	v, err := env.Get(values.Intern(name))
	require.NoError(t, err)
	in, ok := v.(*values.Intrinsic)
	require.True(t, ok, "%s is not bound to an intrinsic", name)
	result, err := in.Fn(values.NewList(args...))
	require.NoError(t, err)
	return result
}

func testEnv() *values.Env {
	return NewGlobalEnv(&strings.Builder{}, nil, nil)
}

func TestBinaryArithmetic(t *testing.T) {
	env := testEnv()
	require.Equal(t, values.Int{Val: 7}, callIntrinsic(t, env, "+", values.Int{Val: 3}, values.Int{Val: 4}))
	require.Equal(t, values.Int{Val: 12}, callIntrinsic(t, env, "*", values.Int{Val: 3}, values.Int{Val: 4}))
}

func TestPlusAndTimesAreVariadic(t *testing.T) {
	env := testEnv()
	got := callIntrinsic(t, env, "+", values.Int{Val: 1}, values.Int{Val: 2}, values.Int{Val: 3}, values.Int{Val: 4}, values.Int{Val: 5})
	require.Equal(t, values.Int{Val: 15}, got)
	require.Equal(t, values.Int{Val: 24}, callIntrinsic(t, env, "*", values.Int{Val: 1}, values.Int{Val: 2}, values.Int{Val: 3}, values.Int{Val: 4}))
}

func TestMixedIntFloatPromotesToFloat(t *testing.T) {
	env := testEnv()
	got := callIntrinsic(t, env, "+", values.Int{Val: 1}, values.Float{Val: 0.5})
	require.Equal(t, values.Float{Val: 1.5}, got)
}

func TestVariadicMinusUnaryIsNegate(t *testing.T) {
	env := testEnv()
	require.Equal(t, values.Int{Val: -5}, callIntrinsic(t, env, "-", values.Int{Val: 5}))
}

func TestVariadicDivideUnaryIsReciprocal(t *testing.T) {
	env := testEnv()
	require.Equal(t, values.Float{Val: 0.5}, callIntrinsic(t, env, "/", values.Int{Val: 2}))
}

func TestVariadicMinusFoldsLeftToRight(t *testing.T) {
	env := testEnv()
	got := callIntrinsic(t, env, "-", values.Int{Val: 10}, values.Int{Val: 1}, values.Int{Val: 2})
	require.Equal(t, values.Int{Val: 7}, got)
}

func TestComparisons(t *testing.T) {
	env := testEnv()
	require.Equal(t, values.True, callIntrinsic(t, env, "<", values.Int{Val: 1}, values.Int{Val: 2}))
	require.Equal(t, values.True, callIntrinsic(t, env, "=", values.Int{Val: 1}, values.Float{Val: 1.0}))
	require.Equal(t, values.True, callIntrinsic(t, env, ">", values.Int{Val: 3}, values.Int{Val: 2}, values.Int{Val: 1}))
	require.Equal(t, values.False, callIntrinsic(t, env, ">=", values.Int{Val: 1}, values.Int{Val: 2}))
}
