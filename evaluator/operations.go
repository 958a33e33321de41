package evaluator

import (
	"fmt"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/pan-evaluator/dml"
	"github.com/lyraproj/pan-evaluator/errors"
	"github.com/lyraproj/pan-evaluator/values"
)

type (
	operation struct {
		location issue.Location
	}

	// Literal is a constant. Containers are returned as protected views so that a
	// constant of the operation tree is never modified.
	Literal struct {
		operation
		value dml.Value
	}

	// Variable reads a variable, optionally dereferenced by a path
	Variable struct {
		operation
		identifier string
		path       []dml.Operation
	}

	// ListOp creates a new list from the values of its operations
	ListOp struct {
		operation
		elements []dml.Operation
	}

	RecordEntry struct {
		Key   string
		Value dml.Operation
	}

	// RecordOp creates a new record from the values of its entries
	RecordOp struct {
		operation
		entries []RecordEntry
	}

	// Add implements the '+' operator for longs, doubles, and strings
	Add struct {
		operation
		left  dml.Operation
		right dml.Operation
	}

	// Block evaluates its operations in a new local scope. The value of the block is
	// the value of the last operation.
	Block struct {
		operation
		operations []dml.Operation
	}
)

func (o *operation) Location() issue.Location {
	return o.location
}

func evalError(c dml.Context, location issue.Location, code issue.Code, args issue.H) *errors.EvaluationError {
	return errors.NewEvaluationError(location, code, args).AddExceptionInfo(location, c)
}

// annotated calls f and adds the location and the trace of c to any evaluation
// failure that f panics with.
func annotated(c dml.Context, location issue.Location, f func()) {
	defer func() {
		if r := recover(); r != nil {
			if ee, ok := r.(*errors.EvaluationError); ok {
				panic(ee.AddExceptionInfo(location, c))
			}
			panic(r)
		}
	}()
	f()
}

// checkStaticIndexes ensures that every constant in the given path is a valid term
func checkStaticIndexes(location issue.Location, path []dml.Operation) error {
	for i, op := range path {
		if lit, ok := op.(*Literal); ok {
			if _, err := values.NewTerm(lit.value); err != nil {
				return errors.NewSyntaxError(location, dml.InvalidConstantTerm, issue.H{`index`: i, `detail`: err.(*errors.EvaluationError).Message()})
			}
		}
	}
	return nil
}

// calculateTerms evaluates the operations of the given path and converts the results
// into terms
func calculateTerms(c dml.Context, location issue.Location, path []dml.Operation) []dml.Term {
	terms := make([]dml.Term, len(path))
	annotated(c, location, func() {
		for i, op := range path {
			t, err := values.NewTerm(op.Execute(c))
			if err != nil {
				panic(err)
			}
			terms[i] = t
		}
	})
	return terms
}

func NewLiteral(location issue.Location, value dml.Value) *Literal {
	return &Literal{operation{location}, value}
}

func (l *Literal) Execute(c dml.Context) dml.Value {
	if l.value == nil {
		return nil
	}
	return l.value.Protect()
}

func (l *Literal) String() string {
	return fmt.Sprintf(`Literal(%s)`, l.value)
}

func (l *Literal) Value() dml.Value {
	return l.value
}

// NewVariable creates an operation that reads the named variable. Constant elements
// of the path must be valid terms.
func NewVariable(location issue.Location, identifier string, path ...dml.Operation) (*Variable, error) {
	if err := checkStaticIndexes(location, path); err != nil {
		return nil, err
	}
	return &Variable{operation{location}, identifier, path}, nil
}

func (v *Variable) Execute(c dml.Context) dml.Value {
	root, ok := c.GetVariable(v.identifier)
	if !ok {
		panic(evalError(c, v.location, dml.UnknownVariable, issue.H{`name`: v.identifier}))
	}
	if len(v.path) == 0 {
		return root
	}
	terms := calculateTerms(c, v.location, v.path)
	result, err := readPath(v.identifier, root, terms)
	if err != nil {
		panic(errors.Wrap(err).AddExceptionInfo(v.location, c))
	}
	return result
}

func (v *Variable) String() string {
	return fmt.Sprintf(`Variable(%s,%d)`, v.identifier, len(v.path))
}

func NewListOp(location issue.Location, elements ...dml.Operation) *ListOp {
	return &ListOp{operation{location}, elements}
}

func (l *ListOp) Execute(c dml.Context) dml.Value {
	es := make([]dml.Value, 0, len(l.elements))
	for _, op := range l.elements {
		if v := op.Execute(c); v != nil {
			if v.IsProtected() {
				v = v.Duplicate()
			}
			es = append(es, v)
		}
	}
	return values.NewList(es...)
}

// NewRecordOp creates an operation that builds a record. Every key must be a valid
// term.
func NewRecordOp(location issue.Location, entries ...RecordEntry) (*RecordOp, error) {
	for i, e := range entries {
		if _, err := values.NewTerm(values.WrapString(e.Key)); err != nil {
			return nil, errors.NewSyntaxError(location, dml.InvalidConstantTerm, issue.H{`index`: i, `detail`: err.(*errors.EvaluationError).Message()})
		}
	}
	return &RecordOp{operation{location}, entries}, nil
}

func (r *RecordOp) Execute(c dml.Context) dml.Value {
	rec := values.NewRecord()
	for _, e := range r.entries {
		v := e.Value.Execute(c)
		if v != nil && v.IsProtected() {
			v = v.Duplicate()
		}
		rec.Put(e.Key, v)
	}
	return rec
}

func NewAdd(location issue.Location, left, right dml.Operation) *Add {
	return &Add{operation{location}, left, right}
}

func (a *Add) Execute(c dml.Context) dml.Value {
	lv := a.left.Execute(c)
	rv := a.right.Execute(c)
	switch l := lv.(type) {
	case *values.Long:
		switch r := rv.(type) {
		case *values.Long:
			return values.WrapLong(l.Int() + r.Int())
		case *values.Double:
			return values.WrapDouble(float64(l.Int()) + r.Float())
		}
	case *values.Double:
		switch r := rv.(type) {
		case *values.Long:
			return values.WrapDouble(l.Float() + float64(r.Int()))
		case *values.Double:
			return values.WrapDouble(l.Float() + r.Float())
		}
	case *values.String:
		if r, ok := rv.(*values.String); ok {
			return values.WrapString(l.String() + r.String())
		}
	}
	panic(evalError(c, a.location, dml.OperatorNotApplicable, issue.H{`operator`: `+`, `left`: dml.Label(lv), `right`: dml.Label(rv)}))
}

func NewBlock(location issue.Location, operations ...dml.Operation) *Block {
	return &Block{operation{location}, operations}
}

func (b *Block) Execute(c dml.Context) dml.Value {
	return c.WithLocalScope(func() (result dml.Value) {
		for _, op := range b.operations {
			result = op.Execute(c)
		}
		return
	})
}
