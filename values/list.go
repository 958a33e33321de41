package values

import (
	"bytes"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/pan-evaluator/dml"
	"github.com/lyraproj/pan-evaluator/errors"
)

// A List is an ordered sequence of values. A protected List is a read-only view that
// shares its elements with the list it was created from.
type List struct {
	elements  []dml.Value
	protected bool
}

// NewList creates a list that takes ownership of the given elements
func NewList(elements ...dml.Value) *List {
	return &List{elements: elements}
}

// At returns the element at the given index together with a boolean indicating if
// the index was within bounds. Elements of a protected list are protected.
func (l *List) At(index int) (dml.Value, bool) {
	if index < 0 || index >= len(l.elements) {
		return nil, false
	}
	v := l.elements[index]
	if l.protected {
		v = v.Protect()
	}
	return v, true
}

// Append adds the value to the end of the list
func (l *List) Append(value dml.Value) {
	l.assertMutable()
	if value != nil {
		l.elements = append(l.elements, value)
	}
}

func (l *List) Duplicate() dml.Value {
	es := make([]dml.Value, len(l.elements))
	for i, e := range l.elements {
		es[i] = e.Duplicate()
	}
	return &List{elements: es}
}

// Each calls the consumer once for each element of the list
func (l *List) Each(consumer func(index int, value dml.Value)) {
	for i := range l.elements {
		v, _ := l.At(i)
		consumer(i, v)
	}
}

func (l *List) Equals(other dml.Value) bool {
	ol, ok := other.(*List)
	if !ok || len(ol.elements) != len(l.elements) {
		return false
	}
	for i, e := range l.elements {
		if !e.Equals(ol.elements[i]) {
			return false
		}
	}
	return true
}

func (l *List) IsProtected() bool {
	return l.protected
}

func (l *List) Label() string {
	return `list`
}

func (l *List) Len() int {
	return len(l.elements)
}

func (l *List) Protect() dml.Value {
	if l.protected {
		return l
	}
	return &List{elements: l.elements, protected: true}
}

// Set replaces the element at the given index. An index beyond the end of the list
// extends the list with undef values. An absent value removes the element.
func (l *List) Set(index int, value dml.Value) {
	l.assertMutable()
	n := len(l.elements)
	if value == nil {
		if index < n {
			l.elements = append(l.elements[:index], l.elements[index+1:]...)
		}
		return
	}
	for ; n < index; n++ {
		l.elements = append(l.elements, Undef)
	}
	if index == n {
		l.elements = append(l.elements, value)
	} else {
		l.elements[index] = value
	}
}

func (l *List) String() string {
	b := bytes.NewBufferString(``)
	toString(b, l)
	return b.String()
}

func (l *List) assertMutable() {
	if l.protected {
		panic(errors.NewEvaluationError(nil, dml.ProtectedValue, issue.H{`value`: l.Label()}))
	}
}
