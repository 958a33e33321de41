package values

import (
	"bytes"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/pan-evaluator/dml"
	"github.com/lyraproj/pan-evaluator/errors"
	"github.com/lyraproj/pan-evaluator/hash"
)

// A Record maps string keys to values and keeps the keys in insertion order. A
// protected Record is a read-only view that shares its fields with the record it was
// created from.
type Record struct {
	fields    *hash.StringHash
	protected bool
}

func NewRecord() *Record {
	return &Record{fields: hash.NewStringHash(8)}
}

// Delete removes the given key
func (r *Record) Delete(key string) {
	r.assertMutable()
	r.fields.Delete(key)
}

func (r *Record) Duplicate() dml.Value {
	fields := r.fields.Copy()
	fields.EachPair(func(key string, value interface{}) {
		fields.Put(key, value.(dml.Value).Duplicate())
	})
	return &Record{fields: fields}
}

// EachPair calls the consumer once for each field in insertion order
func (r *Record) EachPair(consumer func(key string, value dml.Value)) {
	r.fields.EachPair(func(key string, value interface{}) {
		v := value.(dml.Value)
		if r.protected {
			v = v.Protect()
		}
		consumer(key, v)
	})
}

func (r *Record) Equals(other dml.Value) bool {
	or, ok := other.(*Record)
	return ok && r.fields.EqualsFunc(or.fields, func(a, b interface{}) bool {
		return a.(dml.Value).Equals(b.(dml.Value))
	})
}

// Get returns the value stored under key together with a boolean indicating if the
// key was present. Values of a protected record are protected.
func (r *Record) Get(key string) (dml.Value, bool) {
	v, ok := r.fields.Get(key)
	if !ok {
		return nil, false
	}
	dv := v.(dml.Value)
	if r.protected {
		dv = dv.Protect()
	}
	return dv, true
}

func (r *Record) IsProtected() bool {
	return r.protected
}

func (r *Record) Keys() []string {
	return r.fields.Keys()
}

func (r *Record) Label() string {
	return `record`
}

func (r *Record) Len() int {
	return r.fields.Len()
}

func (r *Record) Protect() dml.Value {
	if r.protected {
		return r
	}
	return &Record{fields: r.fields, protected: true}
}

// Put associates the value with the key. An absent value removes the key.
func (r *Record) Put(key string, value dml.Value) {
	r.assertMutable()
	if value == nil {
		r.fields.Delete(key)
		return
	}
	r.fields.Put(key, value)
}

func (r *Record) String() string {
	b := bytes.NewBufferString(``)
	toString(b, r)
	return b.String()
}

func (r *Record) assertMutable() {
	if r.protected {
		panic(errors.NewEvaluationError(nil, dml.ProtectedValue, issue.H{`value`: r.Label()}))
	}
}
