package evaluator

import (
	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/pan-evaluator/dml"
	"github.com/lyraproj/pan-evaluator/errors"
	"github.com/lyraproj/pan-evaluator/values"
)

// writePath writes value into root at the location denoted by terms and returns the
// possibly new root. Missing containers along the path are created: a list for an
// index term and a record for a key term.
func writePath(name string, root dml.Value, terms []dml.Term, value dml.Value) (result dml.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ee, ok := r.(*errors.EvaluationError); ok {
				err = ee
				return
			}
			panic(r)
		}
	}()

	if root == nil || root == values.Undef {
		root = newContainer(terms[0])
	}
	current := root
	last := len(terms) - 1
	for i, t := range terms[:last] {
		child, err := childAt(name, current, t)
		if err != nil {
			return nil, err
		}
		if child == nil || child == values.Undef {
			child = newContainer(terms[i+1])
			setChild(current, t, child)
		}
		current = child
	}
	if _, err = childAt(name, current, terms[last]); err != nil {
		return nil, err
	}
	setChild(current, terms[last], value)
	return root, nil
}

// readPath returns the value found in root at the location denoted by terms.
func readPath(name string, root dml.Value, terms []dml.Term) (dml.Value, error) {
	current := root
	for _, t := range terms {
		child, err := childAt(name, current, t)
		if err != nil {
			return nil, err
		}
		if child == nil {
			return nil, errors.NewEvaluationError(nil, dml.UndefinedElement, issue.H{`term`: t.String(), `name`: name})
		}
		current = child
	}
	return current, nil
}

// childAt returns the child of the container that the term denotes or nil if no such
// child exists. An error is returned if the term cannot index the container.
func childAt(name string, container dml.Value, t dml.Term) (dml.Value, error) {
	switch c := container.(type) {
	case *values.List:
		if t.IsKey() {
			return nil, errors.NewEvaluationError(nil, dml.TermKindMismatch, issue.H{`term`: t.String(), `value`: c.Label()})
		}
		v, _ := c.At(t.Index())
		return v, nil
	case *values.Record:
		if !t.IsKey() {
			return nil, errors.NewEvaluationError(nil, dml.TermKindMismatch, issue.H{`term`: t.String(), `value`: c.Label()})
		}
		v, _ := c.Get(t.Key())
		return v, nil
	default:
		return nil, errors.NewEvaluationError(nil, dml.NotIndexable, issue.H{`value`: dml.Label(container), `term`: t.String()})
	}
}

func setChild(container dml.Value, t dml.Term, value dml.Value) {
	switch c := container.(type) {
	case *values.List:
		c.Set(t.Index(), value)
	case *values.Record:
		c.Put(t.Key(), value)
	}
}

func newContainer(t dml.Term) dml.Value {
	if t.IsKey() {
		return values.NewRecord()
	}
	return values.NewList()
}
