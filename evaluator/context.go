package evaluator

import (
	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/pan-evaluator/dml"
	"github.com/lyraproj/pan-evaluator/errors"
	"github.com/lyraproj/pan-evaluator/values"
)

type (
	global struct {
		value dml.Value
		final bool
	}

	evalCtx struct {
		object   string
		template string
		logger   dml.Logger
		globals  map[string]*global
		self     *values.Record
		scope    *scope
	}
)

// NewContext creates the Context for the evaluation of the named template that builds
// the named object. The object under construction starts as a copy of initial, or as
// an empty record when initial is nil.
func NewContext(object, template string, logger dml.Logger, initial *values.Record) dml.Context {
	self := values.NewRecord()
	if initial != nil {
		self = initial.Duplicate().(*values.Record)
	}
	return &evalCtx{
		object:   object,
		template: template,
		logger:   logger,
		globals:  make(map[string]*global, 8),
		self:     self,
		scope:    newScope()}
}

func (c *evalCtx) Fork(object, template string) dml.Context {
	globals := make(map[string]*global, len(c.globals))
	for k, g := range c.globals {
		globals[k] = &global{g.value.Duplicate(), g.final}
	}
	return &evalCtx{
		object:   object,
		template: template,
		logger:   c.logger,
		globals:  globals,
		self:     c.self.Duplicate().(*values.Record),
		scope:    newScope()}
}

func (c *evalCtx) FunctionName() string {
	return c.scope.function()
}

func (c *evalCtx) GetVariable(name string) (dml.Value, bool) {
	if v, ok := c.scope.get(name); ok {
		return v.Protect(), true
	}
	if g, ok := c.globals[name]; ok {
		return g.value.Protect(), true
	}
	switch name {
	case dml.SelfVariable:
		return c.self.Protect(), true
	case `OBJECT`:
		return values.WrapString(c.object), true
	case `TEMPLATE`:
		return values.WrapString(c.template), true
	case `FUNCTION`:
		if fn := c.scope.function(); fn != `` {
			return values.WrapString(fn), true
		}
	}
	return nil, false
}

func (c *evalCtx) Logger() dml.Logger {
	return c.logger
}

func (c *evalCtx) ObjectName() string {
	return c.object
}

func (c *evalCtx) Self() dml.Value {
	return c.self
}

func (c *evalCtx) SetGlobalVariable(name string, value dml.Value, final bool) error {
	if name == dml.SelfVariable || dml.IsAutomatic(name) {
		return errors.NewEvaluationError(nil, dml.AutomaticVariable, issue.H{`name`: name})
	}
	if g, ok := c.globals[name]; ok && g.final {
		return errors.NewEvaluationError(nil, dml.FinalVariable, issue.H{`name`: name})
	}
	if value == nil || value == values.Null {
		delete(c.globals, name)
		return nil
	}
	if value.IsProtected() {
		value = value.Duplicate()
	}
	c.globals[name] = &global{value, final}
	return nil
}

func (c *evalCtx) SetLocalVariable(name string, terms []dml.Term, value dml.Value) error {
	if name == dml.SelfVariable || dml.IsAutomatic(name) {
		return errors.NewEvaluationError(nil, dml.AutomaticVariable, issue.H{`name`: name})
	}
	if value == values.Null {
		value = nil
	}

	f := c.scope.lookup(name)
	if f == nil {
		if _, ok := c.globals[name]; ok {
			return errors.NewEvaluationError(nil, dml.GlobalVariableReadOnly, issue.H{`name`: name})
		}
		f = c.scope.innermost()
	}

	if len(terms) == 0 {
		if value == nil {
			delete(f.vars, name)
		} else {
			f.vars[name] = value
		}
		return nil
	}

	root, err := writePath(name, f.vars[name], terms, value)
	if err == nil {
		f.vars[name] = root
	}
	return err
}

func (c *evalCtx) SetSelf(terms []dml.Term, value dml.Value) error {
	if len(terms) == 0 {
		r, ok := value.(*values.Record)
		if !ok {
			return errors.NewEvaluationError(nil, dml.SelfNotRecord, issue.H{`value`: dml.Label(value)})
		}
		c.self = r
		return nil
	}
	if !terms[0].IsKey() {
		return errors.NewEvaluationError(nil, dml.TermKindMismatch, issue.H{`term`: terms[0].String(), `value`: c.self.Label()})
	}
	if value == values.Null {
		value = nil
	}
	_, err := writePath(dml.SelfVariable, c.self, terms, value)
	return err
}

func (c *evalCtx) TemplateName() string {
	return c.template
}

func (c *evalCtx) Trace() []string {
	trace := []string{`template ` + c.template}
	for _, f := range c.scope.frames {
		if f.function != `` {
			trace = append(trace, `function `+f.function)
		}
	}
	return trace
}

func (c *evalCtx) WithFunction(name string, args []dml.Value, producer dml.Producer) dml.Value {
	f := newFrame(name)
	argv := make([]dml.Value, len(args))
	for i, a := range args {
		argv[i] = a.Duplicate()
	}
	f.vars[`ARGV`] = values.NewList(argv...)
	f.vars[`ARGC`] = values.WrapLong(int64(len(args)))
	n := c.scope.push(f)
	defer c.scope.popTo(n)
	return producer()
}

func (c *evalCtx) WithLocalScope(producer dml.Producer) dml.Value {
	n := c.scope.push(newFrame(``))
	defer c.scope.popTo(n)
	return producer()
}
