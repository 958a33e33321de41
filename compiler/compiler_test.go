package compiler

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/pan-evaluator/config"
	"github.com/lyraproj/pan-evaluator/dml"
	"github.com/lyraproj/pan-evaluator/errors"
	"github.com/lyraproj/pan-evaluator/evaluator"
	"github.com/stretchr/testify/require"
)

type funcOp struct {
	f func(c dml.Context) dml.Value
}

func (o *funcOp) Execute(c dml.Context) dml.Value {
	return o.f(c)
}

func (o *funcOp) Location() issue.Location {
	return nil
}

func failingTemplate(name string, cause interface{}) *Template {
	return &Template{Name: name, Object: name, Build: func() (dml.Operation, error) {
		return &funcOp{func(dml.Context) dml.Value { panic(cause) }}, nil
	}}
}

func yamlTemplate(t *testing.T, name, doc string) *Template {
	t.Helper()
	tpl, err := ParseTemplate(name, []byte(doc))
	require.NoError(t, err)
	return tpl
}

func newCompiler(t *testing.T, settings string) (*Compiler, *evaluator.ArrayLogger) {
	t.Helper()
	s, err := config.Parse([]byte(settings))
	require.NoError(t, err)
	logger := evaluator.NewArrayLogger()
	c, err := New(s, logger)
	require.NoError(t, err)
	return c, logger
}

func recovered(f func()) (r interface{}) {
	defer func() {
		r = recover()
	}()
	f()
	return
}

func ExampleCompiler_CompileAll() {
	c, _ := New(nil, evaluator.NewArrayLogger())
	tpl, _ := ParseTemplate(`web`, []byte(`
object: web01.example.org
assignments:
  ports: [80, 443]
  SELF/name: web01
  SELF/ports: $ports
  SELF/ports/3: 8080
`))
	profiles, err := c.CompileAll(context.Background(), []*Template{tpl})
	if err != nil {
		fmt.Println(err)
		return
	}
	p := profiles[0]
	fmt.Println(p.Object, p.Version)
	fmt.Println(p.Root)
	// Output:
	// web01.example.org 1.0.0
	// {"name": "web01", "ports": [80, 443, undef, 8080]}
}

func TestCompileAllUsesSettings(t *testing.T) {
	c, _ := newCompiler(t, `
workers: 2
initial_data:
  site: eu-west
defines:
  domain: example.org
`)
	a := yamlTemplate(t, `a`, `
assignments:
  SELF/fqdn: $domain
  SELF/site: null
`)
	b := yamlTemplate(t, `b`, `
object: b.example.org
assignments:
  SELF/owner/team: ops
`)
	profiles, err := c.CompileAll(context.Background(), []*Template{a, b})
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	require.Equal(t, `a`, profiles[0].Object)
	require.Equal(t, `{"fqdn": "example.org"}`, profiles[0].Root.String())
	require.Equal(t, `b.example.org`, profiles[1].Object)
	require.Equal(t, `{"site": "eu-west", "owner": {"team": "ops"}}`, profiles[1].Root.String())
}

func TestDefinesAreReadOnly(t *testing.T) {
	c, logger := newCompiler(t, "defines:\n  domain: example.org\n")
	tpl := yamlTemplate(t, `t`, "assignments:\n  domain/0: x\n")
	r := recovered(func() { c.Submit(context.Background(), tpl).Get() })
	ee, ok := r.(*errors.EvaluationError)
	require.True(t, ok, `expected *errors.EvaluationError, got %T`, r)
	require.Equal(t, issue.Code(dml.GlobalVariableReadOnly), ee.Code())
	require.Len(t, logger.Entries(dml.ERR), 1)
}

func TestFailuresDoNotAbortOtherTemplates(t *testing.T) {
	c, _ := newCompiler(t, `workers: 1`)
	good := yamlTemplate(t, `good`, "assignments:\n  SELF/x: 1\n")
	badSyntax := yamlTemplate(t, `syntax`, "assignments:\n  OBJECT: 1\n")
	badEval := yamlTemplate(t, `eval`, "assignments:\n  SELF: 1\n")

	profiles, err := c.CompileAll(context.Background(), []*Template{badSyntax, good, badEval})
	require.Len(t, profiles, 1)
	require.Equal(t, `good`, profiles[0].Template)
	require.Error(t, err)
	require.Contains(t, err.Error(), `template 'syntax': automatic variable 'OBJECT' cannot be set`)
	require.Contains(t, err.Error(), `template 'eval': SELF must remain a record, got a long`)

	var se *errors.SyntaxError
	require.True(t, stderrors.As(err, &se))
	require.Equal(t, issue.Code(dml.AutomaticVariableCannotBeSet), se.Code())
}

func TestGetRaisesEvaluationFailureUnchanged(t *testing.T) {
	c, _ := newCompiler(t, ``)
	cause := errors.Fail(nil, `no such network`)
	r := recovered(func() { c.Submit(context.Background(), failingTemplate(`t`, cause)).Get() })
	require.Same(t, cause, r)
}

func TestGetRaisesSyntaxFailureAsEvaluationFailure(t *testing.T) {
	c, _ := newCompiler(t, ``)
	cause := errors.NewSyntaxError(nil, dml.AutomaticVariableCannotBeSet, issue.H{`name`: `TEMPLATE`})
	tpl := &Template{Name: `t`, Build: func() (dml.Operation, error) { return nil, cause }}

	task := c.Submit(context.Background(), tpl)
	_, f := task.Wait(context.Background())
	require.NotNil(t, f)
	require.Equal(t, errors.SyntaxFailure, f.Kind)

	r := recovered(func() { task.Get() })
	ee, ok := r.(*errors.EvaluationError)
	require.True(t, ok, `expected *errors.EvaluationError, got %T`, r)
	require.Equal(t, cause.Message(), ee.Message())
	require.Same(t, cause, ee.Unwrap())
}

func TestFatalFailuresAreRaised(t *testing.T) {
	c, _ := newCompiler(t, ``)
	cause := errors.NewCompilerError(dml.InvalidExecuteCalled, issue.H{`operation`: `SetSelf(0)`})

	r := recovered(func() { c.Submit(context.Background(), failingTemplate(`t`, cause)).Get() })
	require.Same(t, cause, r)

	good := yamlTemplate(t, `good`, "assignments:\n  SELF/x: 1\n")
	r = recovered(func() {
		_, _ = c.CompileAll(context.Background(), []*Template{good, failingTemplate(`fatal`, cause)})
	})
	require.Same(t, cause, r)
}

func TestRuntimeErrorIsFatal(t *testing.T) {
	c, _ := newCompiler(t, ``)
	tpl := &Template{Name: `t`, Build: func() (dml.Operation, error) {
		return &funcOp{func(dml.Context) dml.Value {
			var m map[string]int
			m[`x`] = 1
			return nil
		}}, nil
	}}
	_, f := c.Submit(context.Background(), tpl).Wait(context.Background())
	require.NotNil(t, f)
	require.Equal(t, errors.FatalFailure, f.Kind)
}

func TestUnexpectedFailureIsDescribed(t *testing.T) {
	c, logger := newCompiler(t, ``)
	r := recovered(func() { c.Submit(context.Background(), failingTemplate(`t`, `boom`)).Get() })
	ee, ok := r.(*errors.EvaluationError)
	require.True(t, ok, `expected *errors.EvaluationError, got %T`, r)
	require.Equal(t, issue.Code(dml.UnexpectedFailure), ee.Code())
	require.Contains(t, ee.Message(), `boom`)

	entries := logger.Entries(dml.ERR)
	require.Len(t, entries, 1)
	require.Contains(t, entries[0], `compilation of template 't' failed: boom`)
}

func TestCanceledContext(t *testing.T) {
	c, _ := newCompiler(t, ``)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tpl := yamlTemplate(t, `t`, "assignments:\n  SELF/x: 1\n")
	_, f := c.Submit(ctx, tpl).Wait(context.Background())
	require.NotNil(t, f)
	require.Equal(t, errors.CanceledFailure, f.Kind)

	r := recovered(func() { c.Submit(ctx, tpl).Get() })
	require.ErrorIs(t, r.(error), context.Canceled)
}

func TestWaitReturnsWhenContextIsDone(t *testing.T) {
	c, _ := newCompiler(t, ``)
	release := make(chan struct{})
	tpl := &Template{Name: `slow`, Build: func() (dml.Operation, error) {
		return &funcOp{func(dml.Context) dml.Value {
			<-release
			return nil
		}}, nil
	}}
	task := c.Submit(context.Background(), tpl)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, f := task.Wait(ctx)
	require.NotNil(t, f)
	require.Equal(t, errors.CanceledFailure, f.Kind)

	close(release)
	p := task.Get()
	require.Equal(t, `slow`, p.Template)
}

func TestWorkersBoundConcurrency(t *testing.T) {
	c, _ := newCompiler(t, `workers: 2`)
	var active, peak int32
	var mu sync.Mutex
	templates := make([]*Template, 8)
	for i := range templates {
		templates[i] = &Template{Name: fmt.Sprintf(`t%d`, i), Build: func() (dml.Operation, error) {
			return &funcOp{func(dml.Context) dml.Value {
				n := atomic.AddInt32(&active, 1)
				mu.Lock()
				if n > peak {
					peak = n
				}
				mu.Unlock()
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			}}, nil
		}}
	}
	profiles, err := c.CompileAll(context.Background(), templates)
	require.NoError(t, err)
	require.Len(t, profiles, 8)
	require.LessOrEqual(t, peak, int32(2))
}

func TestVersionRequirement(t *testing.T) {
	s := config.Default()
	s.RequiredVersion = `>=1.0.0 <2.0.0`
	_, err := New(s, evaluator.NewArrayLogger())
	require.NoError(t, err)

	s.RequiredVersion = `>=2.0.0`
	_, err = New(s, evaluator.NewArrayLogger())
	var ee *errors.EvaluationError
	require.True(t, stderrors.As(err, &ee))
	require.Equal(t, issue.Code(dml.IncompatibleVersion), ee.Code())

	s.RequiredVersion = `not a version`
	_, err = New(s, evaluator.NewArrayLogger())
	require.IsType(t, &errors.SyntaxError{}, err)
}

func TestInvalidDefine(t *testing.T) {
	s, err := config.Parse([]byte("defines:\n  OBJECT: x\n"))
	require.NoError(t, err)
	_, err = New(s, evaluator.NewArrayLogger())
	require.Error(t, err)
}

func TestParseTemplateRejectsInvalidDocument(t *testing.T) {
	_, err := ParseTemplate(`bad`, []byte(`unknown: 1`))
	se, ok := err.(*errors.SyntaxError)
	require.True(t, ok, `expected *errors.SyntaxError, got %T`, err)
	require.Equal(t, issue.Code(dml.InvalidTemplate), se.Code())

	tpl, err := ParseTemplate(`term`, []byte("assignments:\n  x/-1: 1\n"))
	require.NoError(t, err)
	_, err = tpl.Build()
	require.IsType(t, &errors.SyntaxError{}, err)
}
