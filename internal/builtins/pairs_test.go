package builtins

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/go-scheme/internal/values"
)

func TestCarCdrCons(t *testing.T) {
	env := testEnv()
	p := callIntrinsic(t, env, "cons", values.Int{Val: 1}, values.Int{Val: 2})
	require.Equal(t, &values.Pair{Car: values.Int{Val: 1}, Cdr: values.Int{Val: 2}}, p)
	require.Equal(t, values.Int{Val: 1}, callIntrinsic(t, env, "car", p))
	require.Equal(t, values.Int{Val: 2}, callIntrinsic(t, env, "cdr", p))
}

func TestCarOfNonPairErrors(t *testing.T) {
	_, err := car(values.NewList(values.Int{Val: 1}))
	require.Error(t, err)
}

func TestCxrFamily(t *testing.T) {
	env := testEnv()
	list := values.NewList(values.Int{Val: 1}, values.Int{Val: 2}, values.Int{Val: 3})
	require.Equal(t, values.Int{Val: 2}, callIntrinsic(t, env, "cadr", list))
	require.Equal(t, values.Int{Val: 3}, callIntrinsic(t, env, "caddr", list))

	nested := values.NewList(values.NewList(values.Int{Val: 1}, values.Int{Val: 2}), values.Int{Val: 3})
	require.Equal(t, values.Int{Val: 1}, callIntrinsic(t, env, "caar", nested))
}

func TestListLengthAppendReverse(t *testing.T) {
	env := testEnv()
	list := values.NewList(values.Int{Val: 1}, values.Int{Val: 2}, values.Int{Val: 3})
	require.Equal(t, values.Int{Val: 3}, callIntrinsic(t, env, "length", list))

	reversed := callIntrinsic(t, env, "reverse", list)
	require.Equal(t, values.NewList(values.Int{Val: 3}, values.Int{Val: 2}, values.Int{Val: 1}), reversed)

	appended := callIntrinsic(t, env, "append",
		values.NewList(values.Int{Val: 1}, values.Int{Val: 2}),
		values.NewList(values.Int{Val: 3}, values.Int{Val: 4}))
	require.Equal(t, values.NewList(values.Int{Val: 1}, values.Int{Val: 2}, values.Int{Val: 3}, values.Int{Val: 4}), appended)
}

func TestMember(t *testing.T) {
	env := testEnv()
	list := values.NewList(values.Int{Val: 1}, values.Int{Val: 2}, values.Int{Val: 3})
	found := callIntrinsic(t, env, "member", values.Int{Val: 2}, list)
	require.Equal(t, values.NewList(values.Int{Val: 2}, values.Int{Val: 3}), found)

	notFound := callIntrinsic(t, env, "member", values.Int{Val: 99}, list)
	require.Equal(t, values.False, notFound)
}

func TestListPredicate(t *testing.T) {
	env := testEnv()
	require.Equal(t, values.True, callIntrinsic(t, env, "list?", values.NewList(values.Int{Val: 1})))
	improper := &values.Pair{Car: values.Int{Val: 1}, Cdr: values.Int{Val: 2}}
	require.Equal(t, values.False, callIntrinsic(t, env, "list?", improper))
}
