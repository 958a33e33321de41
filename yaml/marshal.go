package yaml

import (
	"github.com/lyraproj/pan-evaluator/dml"
	"github.com/lyraproj/pan-evaluator/values"
	ym "gopkg.in/yaml.v2"
)

// Marshal returns the YAML representation of the given value. The keys of records
// are written in their insertion order.
func Marshal(v dml.Value) ([]byte, error) {
	return ym.Marshal(unwrapValue(v))
}

func unwrapValue(v dml.Value) interface{} {
	switch v := v.(type) {
	case *values.Record:
		ms := make(ym.MapSlice, 0, v.Len())
		v.EachPair(func(key string, value dml.Value) {
			ms = append(ms, ym.MapItem{Key: key, Value: unwrapValue(value)})
		})
		return ms
	case *values.List:
		vs := make([]interface{}, 0, v.Len())
		v.Each(func(_ int, e dml.Value) {
			vs = append(vs, unwrapValue(e))
		})
		return vs
	default:
		return values.ToNative(v)
	}
}
