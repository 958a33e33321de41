package dml

import "strings"

type (
	// A Value is a node in the data tree produced by evaluation. Values form
	// a tree: a container never reaches itself through its children and a
	// stored value has exactly one owner.
	Value interface {
		// Duplicate returns a structurally independent and unprotected deep copy. Only
		// the stateless Undef and Null singletons return themselves.
		Duplicate() Value

		// Equals returns true if other is structurally equal to the receiver
		Equals(other Value) bool

		// IsProtected returns true if the value is a read-only view that must be
		// duplicated before it is stored in a new binding
		IsProtected() bool

		// Label returns the name of the value kind, e.g. "long" or "record"
		Label() string

		// Protect returns a read-only view of the receiver. Scalars are immutable
		// and return themselves.
		Protect() Value

		String() string
	}

	// A Term is a single validated step of a path, either a list index or a
	// record key.
	Term interface {
		// Index returns the list index. It is only valid when IsKey returns false
		Index() int

		IsKey() bool

		// Key returns the record key. It is only valid when IsKey returns true
		Key() string

		String() string
	}
)

// Label returns the label of the given value or "undefined" for an absent value
func Label(v Value) string {
	if v == nil {
		return `undefined`
	}
	return v.Label()
}

// PathString returns the terms joined by '/'
func PathString(terms []Term) string {
	ss := make([]string, len(terms))
	for i, t := range terms {
		ss[i] = t.String()
	}
	return strings.Join(ss, `/`)
}
