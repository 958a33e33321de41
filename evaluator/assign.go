package evaluator

import (
	"fmt"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/pan-evaluator/dml"
	"github.com/lyraproj/pan-evaluator/errors"
	"github.com/lyraproj/pan-evaluator/values"
)

type (
	// An AssignTarget is the location that an assignment writes to. It is either a
	// *NamedTarget or a *SelfTarget. Targets are generated by the compiler and are
	// only executed through Assign.
	AssignTarget interface {
		dml.Operation

		// Path returns the operations that produce the terms of the target path
		Path() []dml.Operation

		assignTarget()
	}

	// NamedTarget writes into a local variable
	NamedTarget struct {
		operation
		identifier string
		path       []dml.Operation
	}

	// SelfTarget writes into the object under construction
	SelfTarget struct {
		operation
		path []dml.Operation
	}

	// Assignment executes its value operation and assigns the result to its target
	Assignment struct {
		operation
		target AssignTarget
		value  dml.Operation
	}
)

// NewAssignTarget validates the identifier and the constant terms of the path and
// returns the target. SELF yields a *SelfTarget, any other identifier that is not one
// of the automatic variables yields a *NamedTarget.
func NewAssignTarget(location issue.Location, identifier string, path ...dml.Operation) (AssignTarget, error) {
	if dml.IsAutomatic(identifier) {
		return nil, errors.NewSyntaxError(location, dml.AutomaticVariableCannotBeSet, issue.H{`name`: identifier})
	}
	if err := checkStaticIndexes(location, path); err != nil {
		return nil, err
	}
	if identifier == dml.SelfVariable {
		return &SelfTarget{operation{location}, path}, nil
	}
	return &NamedTarget{operation{location}, identifier, path}, nil
}

// Assign writes value into the location denoted by target and returns the value that
// was stored.
//
// The stored value is a duplicate when the target has a path or when the value is
// protected. A value that is written into a nested location may have parents and must
// not gain a second owner, and a protected value belongs to another binding.
func Assign(c dml.Context, target AssignTarget, value dml.Value) dml.Value {
	location := target.Location()
	terms := calculateTerms(c, location, target.Path())

	stored := value
	if value != nil && (len(terms) > 0 || value.IsProtected()) {
		stored = value.Duplicate()
	}

	var err error
	switch t := target.(type) {
	case *NamedTarget:
		err = c.SetLocalVariable(t.identifier, terms, stored)
	case *SelfTarget:
		if _, ok := stored.(*values.Record); !ok && len(terms) == 0 {
			err = errors.NewEvaluationError(location, dml.SelfNotRecord, issue.H{`value`: dml.Label(stored)})
		} else {
			err = c.SetSelf(terms, stored)
		}
	}
	if err != nil {
		panic(errors.Wrap(err).AddExceptionInfo(location, c))
	}
	return stored
}

func (t *NamedTarget) Execute(c dml.Context) dml.Value {
	panic(errors.NewCompilerError(dml.InvalidExecuteCalled, issue.H{`operation`: t.String()}))
}

func (t *NamedTarget) Identifier() string {
	return t.identifier
}

func (t *NamedTarget) Path() []dml.Operation {
	return t.path
}

func (t *NamedTarget) String() string {
	return fmt.Sprintf(`SetValue(%s,%d)`, t.identifier, len(t.path))
}

func (t *NamedTarget) assignTarget() {}

func (t *SelfTarget) Execute(c dml.Context) dml.Value {
	panic(errors.NewCompilerError(dml.InvalidExecuteCalled, issue.H{`operation`: t.String()}))
}

func (t *SelfTarget) Path() []dml.Operation {
	return t.path
}

func (t *SelfTarget) String() string {
	return fmt.Sprintf(`SetSelf(%d)`, len(t.path))
}

func (t *SelfTarget) assignTarget() {}

// NewAssignment pairs the target with the operation that produces the assigned value.
// Both are required, a missing one means that the compiler generated incorrect code.
func NewAssignment(location issue.Location, target AssignTarget, value dml.Operation) *Assignment {
	if target == nil || value == nil {
		panic(errors.NewCompilerError(dml.MissingValueOperation, issue.H{`operation`: `Assignment`}))
	}
	return &Assignment{operation{location}, target, value}
}

func (a *Assignment) Execute(c dml.Context) dml.Value {
	return Assign(c, a.target, a.value.Execute(c))
}

func (a *Assignment) Target() AssignTarget {
	return a.target
}
