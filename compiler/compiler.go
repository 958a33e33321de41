// Package compiler compiles templates into profiles. Templates are compiled
// concurrently, each in its own evaluation context.
package compiler

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/pan-evaluator/config"
	"github.com/lyraproj/pan-evaluator/dml"
	"github.com/lyraproj/pan-evaluator/errors"
	"github.com/lyraproj/pan-evaluator/evaluator"
	"github.com/lyraproj/pan-evaluator/values"
	"github.com/lyraproj/semver/semver"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Version is stamped on every profile
var Version = semver.MustParseVersion(`1.0.0`)

type (
	// Template builds one object. Build produces the operation tree of the template and
	// returns an error, usually an *errors.SyntaxError, when the template is invalid.
	Template struct {
		Name   string
		Object string
		Build  func() (dml.Operation, error)
	}

	// Profile is the result of a successful compilation
	Profile struct {
		Object   string
		Template string
		Root     *values.Record
		Version  semver.Version
	}

	Compiler struct {
		logger    dml.Logger
		prototype dml.Context
		workers   *semaphore.Weighted
	}
)

// New creates a compiler. Every compilation starts from the initial data and the
// defines of the given settings.
func New(settings *config.Settings, logger dml.Logger) (*Compiler, error) {
	if settings == nil {
		settings = config.Default()
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := checkVersion(settings.RequiredVersion); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = evaluator.NewStdLogger(nil)
	}

	prototype := evaluator.NewContext(``, ``, logger, settings.InitialRecord())
	var err error
	settings.DefinedGlobals().EachPair(func(name string, value dml.Value) {
		if err == nil {
			err = prototype.SetGlobalVariable(name, value, true)
		}
	})
	if err != nil {
		return nil, err
	}
	return &Compiler{logger: logger, prototype: prototype, workers: semaphore.NewWeighted(int64(settings.Workers))}, nil
}

func checkVersion(required string) error {
	if required == `` {
		return nil
	}
	r, err := semver.ParseVersionRange(required)
	if err != nil {
		return errors.NewSyntaxError(nil, dml.InvalidVersionRequirement, issue.H{`version`: required, `detail`: err.Error()})
	}
	if !r.Includes(Version) {
		return errors.NewEvaluationError(nil, dml.IncompatibleVersion, issue.H{`actual`: Version.String(), `required`: required})
	}
	return nil
}

// Submit starts the compilation of the given template and returns the task that
// tracks it. The compilation waits for a free worker first.
func (c *Compiler) Submit(ctx context.Context, tpl *Template) *Task {
	t := &Task{template: tpl, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		if err := c.workers.Acquire(ctx, 1); err != nil {
			t.failure = &errors.ExecutionError{Template: tpl.Name, Cause: err}
			return
		}
		defer c.workers.Release(1)
		t.profile, t.failure = c.compile(ctx, tpl)
		if t.failure != nil {
			c.logFailure(t.failure)
		}
	}()
	return t
}

func (c *Compiler) compile(ctx context.Context, tpl *Template) (profile *Profile, failure *errors.ExecutionError) {
	defer func() {
		if r := recover(); r != nil {
			profile = nil
			failure = &errors.ExecutionError{Template: tpl.Name, Cause: r}
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, &errors.ExecutionError{Template: tpl.Name, Cause: err}
	}
	c.logger.Logf(dml.DEBUG, `compiling template '%s' for object '%s'`, tpl.Name, tpl.Object)

	op, err := tpl.Build()
	if err != nil {
		return nil, &errors.ExecutionError{Template: tpl.Name, Cause: err}
	}
	ec := c.prototype.Fork(tpl.Object, tpl.Name)
	op.Execute(ec)

	c.logger.Logf(dml.DEBUG, `template '%s' compiled`, tpl.Name)
	return &Profile{Object: tpl.Object, Template: tpl.Name, Root: ec.Self().(*values.Record), Version: Version}, nil
}

func (c *Compiler) logFailure(f *errors.ExecutionError) {
	if r, ok := f.Cause.(interface{ Reported() issue.Reported }); ok {
		c.logger.LogIssue(r.Reported())
		return
	}
	c.logger.Logf(dml.ERR, `%s`, f.Error())
}

// CompileAll compiles all templates and returns the profiles of the successful
// compilations in template order. A failing template does not stop the others. The
// returned error joins the failures of all templates that failed.
//
// A fatal failure is raised on the calling go-routine once all templates are done.
func (c *Compiler) CompileAll(ctx context.Context, templates []*Template) ([]*Profile, error) {
	tasks := make([]*Task, len(templates))
	for i, tpl := range templates {
		tasks[i] = c.Submit(ctx, tpl)
	}

	results := make([]*Profile, len(tasks))
	failures := make([]*errors.Failure, len(tasks))
	var g errgroup.Group
	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			results[i], failures[i] = t.Wait(ctx)
			if f := failures[i]; f != nil && f.Kind == errors.FatalFailure {
				return f
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err.(*errors.Failure).Cause)
	}

	profiles := make([]*Profile, 0, len(tasks))
	var errs []error
	for i, f := range failures {
		if f != nil {
			errs = append(errs, fmt.Errorf(`template '%s': %w`, tasks[i].template.Name, f.Err()))
		} else {
			profiles = append(profiles, results[i])
		}
	}
	return profiles, stderrors.Join(errs...)
}
