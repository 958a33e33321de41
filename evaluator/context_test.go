package evaluator

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/pan-evaluator/dml"
	"github.com/lyraproj/pan-evaluator/errors"
	"github.com/lyraproj/pan-evaluator/values"
	"github.com/stretchr/testify/require"
)

func TestAutomaticVariables(t *testing.T) {
	c := testContext()
	require.Equal(t, `node.example.org`, local(t, c, `OBJECT`).String())
	require.Equal(t, `profile_web`, local(t, c, `TEMPLATE`).String())
	_, ok := c.GetVariable(`FUNCTION`)
	require.False(t, ok)

	self := local(t, c, dml.SelfVariable)
	require.True(t, self.IsProtected())
	requireEvalFailure(t, dml.ProtectedValue, func() { self.(*values.Record).Put(`x`, values.WrapLong(1)) })

	for _, name := range append(dml.AutomaticVariables[:], dml.SelfVariable) {
		err := c.SetLocalVariable(name, nil, values.WrapLong(1))
		require.IsType(t, &errors.EvaluationError{}, err)
		err = c.SetGlobalVariable(name, values.WrapLong(1), false)
		require.IsType(t, &errors.EvaluationError{}, err)
	}
}

func TestGlobalVariables(t *testing.T) {
	c := testContext()
	l := values.NewList(values.WrapLong(1))
	require.NoError(t, c.SetGlobalVariable(`g`, l, false))

	g := local(t, c, `g`)
	require.True(t, g.IsProtected())
	require.True(t, l.Equals(g))

	require.NoError(t, c.SetGlobalVariable(`g`, g, true))
	stored := local(t, c, `g`)
	requireEvalFailure(t, dml.ProtectedValue, func() { stored.(*values.List).Append(values.WrapLong(2)) })

	err := c.SetGlobalVariable(`g`, values.WrapLong(2), false)
	ee, ok := err.(*errors.EvaluationError)
	require.True(t, ok)
	require.Equal(t, issue.Code(dml.FinalVariable), ee.Code())

	require.NoError(t, c.SetGlobalVariable(`h`, values.WrapLong(2), false))
	require.NoError(t, c.SetGlobalVariable(`h`, nil, false))
	_, ok = c.GetVariable(`h`)
	require.False(t, ok)
}

func TestLocalsShadowGlobals(t *testing.T) {
	c := testContext()
	Assign(c, mustTarget(t, `v`), values.WrapString(`local`))
	require.NoError(t, c.SetGlobalVariable(`v`, values.WrapString(`global`), false))
	require.Equal(t, `local`, local(t, c, `v`).String())

	c.WithFunction(`f`, nil, func() dml.Value {
		require.Equal(t, `global`, local(t, c, `v`).String())
		return nil
	})
}

func TestLocalScopeIsPopped(t *testing.T) {
	c := testContext()
	Assign(c, mustTarget(t, `outer`), values.WrapLong(1))
	r := recovered(func() {
		c.WithLocalScope(func() dml.Value {
			Assign(c, mustTarget(t, `inner`), values.WrapLong(2))
			// Assignments to visible variables go to the frame that defines them
			Assign(c, mustTarget(t, `outer`), values.WrapLong(3))
			panic(errors.Fail(nil, `abort`))
		})
	})
	require.IsType(t, &errors.EvaluationError{}, r)

	_, ok := c.GetVariable(`inner`)
	require.False(t, ok)
	require.True(t, values.WrapLong(3).Equals(local(t, c, `outer`)))
	require.Equal(t, []string{`template profile_web`}, c.Trace())
}

func TestArgumentsAreCopied(t *testing.T) {
	c := testContext()
	arg := values.NewList(values.WrapLong(1))
	c.WithFunction(`f`, []dml.Value{arg}, func() dml.Value {
		Assign(c, mustTarget(t, `ARGV`, lit(0), lit(1)), values.WrapLong(2))
		require.Equal(t, `[[1, 2]]`, local(t, c, `ARGV`).String())
		return nil
	})
	require.Equal(t, 1, arg.Len())
}

func TestForkIsIndependent(t *testing.T) {
	initial := values.NewRecord()
	initial.Put(`tags`, values.NewList(values.WrapString(`base`)))
	proto := NewContext(``, ``, NewArrayLogger(), initial)
	require.NoError(t, proto.SetGlobalVariable(`g`, values.NewList(), true))

	a := proto.Fork(`a`, `ta`)
	b := proto.Fork(`b`, `tb`)
	Assign(a, mustTarget(t, dml.SelfVariable, lit(`tags`), lit(1)), values.WrapString(`a`))

	require.Equal(t, `{"tags": ["base", "a"]}`, a.Self().String())
	require.Equal(t, `{"tags": ["base"]}`, b.Self().String())
	require.Equal(t, `{"tags": ["base"]}`, proto.Self().String())
	require.Equal(t, `{"tags": ["base"]}`, initial.String())

	require.Equal(t, `a`, a.ObjectName())
	require.Equal(t, `tb`, b.TemplateName())
	require.Equal(t, `[]`, local(t, b, `g`).String())
	require.Equal(t, issue.Code(dml.FinalVariable), a.SetGlobalVariable(`g`, nil, false).(*errors.EvaluationError).Code())
}

func TestSlogLogger(t *testing.T) {
	buf := bytes.NewBufferString(``)
	l := NewStdLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	l.Logf(dml.DEBUG, `hidden`)
	l.Log(dml.NOTICE, values.WrapString(`port `), values.WrapLong(80))
	l.LogIssue(issue.NewReported(dml.UnknownVariable, issue.SeverityWarning, issue.H{`name`: `x`}, nil))

	out := buf.String()
	require.NotContains(t, out, `hidden`)
	require.Contains(t, out, `level=INFO msg="port 80" level=notice`)
	require.Contains(t, out, `unknown variable 'x'`)
	require.Contains(t, out, `code=EVAL_UNKNOWN_VARIABLE`)
}

func TestArrayLogger(t *testing.T) {
	l := NewArrayLogger()
	c := NewContext(`o`, `t`, l, nil)
	c.Logger().Logf(dml.WARNING, `%d retries`, 3)
	c.Logger().Log(dml.INFO, values.WrapString(`done`))
	c.Logger().LogIssue(issue.NewReported(dml.UnknownVariable, issue.SeverityError, issue.H{`name`: `y`}, nil))

	require.Equal(t, []string{`3 retries`}, l.Entries(dml.WARNING))
	require.Equal(t, []string{`done`}, l.Entries(dml.INFO))
	require.Len(t, l.Entries(dml.ERR), 1)
	require.Contains(t, l.Entries(dml.ERR)[0], `unknown variable 'y'`)
	require.Empty(t, l.Entries(dml.DEBUG))
}

func TestSlogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, SlogLevel(dml.DEBUG))
	require.Equal(t, slog.LevelInfo, SlogLevel(dml.NOTICE))
	require.Equal(t, slog.LevelWarn, SlogLevel(dml.WARNING))
	require.Equal(t, slog.LevelError, SlogLevel(dml.EMERG))
}
