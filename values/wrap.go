package values

import (
	"fmt"
	"sort"

	"github.com/lyraproj/pan-evaluator/dml"
)

// Wrap converts a Go value into a dml.Value. Maps are converted into records with
// their keys sorted. Wrap panics with an error if the value cannot be converted.
func Wrap(v interface{}) dml.Value {
	switch v := v.(type) {
	case nil:
		return Null
	case dml.Value:
		return v
	case bool:
		return WrapBoolean(v)
	case int:
		return WrapLong(int64(v))
	case int32:
		return WrapLong(int64(v))
	case int64:
		return WrapLong(v)
	case uint64:
		return WrapLong(int64(v))
	case float32:
		return WrapDouble(float64(v))
	case float64:
		return WrapDouble(v)
	case string:
		return WrapString(v)
	case []interface{}:
		es := make([]dml.Value, len(v))
		for i, e := range v {
			es[i] = Wrap(e)
		}
		return NewList(es...)
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		r := NewRecord()
		for _, k := range keys {
			r.Put(k, Wrap(v[k]))
		}
		return r
	}
	panic(fmt.Errorf(`unable to wrap a %T`, v))
}

// ToNative converts a dml.Value into the corresponding Go value. Records become
// map[string]interface{} and lists become []interface{}.
func ToNative(v dml.Value) interface{} {
	switch v := v.(type) {
	case *Boolean:
		return v.value
	case *Long:
		return v.value
	case *Double:
		return v.value
	case *String:
		return v.value
	case *List:
		ns := make([]interface{}, len(v.elements))
		for i, e := range v.elements {
			ns[i] = ToNative(e)
		}
		return ns
	case *Record:
		m := make(map[string]interface{}, v.Len())
		v.fields.EachPair(func(key string, value interface{}) {
			m[key] = ToNative(value.(dml.Value))
		})
		return m
	}
	return nil
}
