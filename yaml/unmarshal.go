package yaml

import (
	"fmt"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/pan-evaluator/dml"
	"github.com/lyraproj/pan-evaluator/errors"
	"github.com/lyraproj/pan-evaluator/values"
	ym "gopkg.in/yaml.v2"
)

// Unmarshal parses the YAML data into a dml.Value. Mappings become records that
// retain the key order of the document. Data that cannot be parsed results in a
// panic with an *errors.EvaluationError.
func Unmarshal(data []byte) dml.Value {
	ms := make(ym.MapSlice, 0)
	err := ym.Unmarshal(data, &ms)
	if err != nil {
		var itm interface{}
		err2 := ym.Unmarshal(data, &itm)
		if err2 != nil {
			panic(errors.NewEvaluationError(nil, dml.ParseError, issue.H{`language`: `YAML`, `detail`: err.Error()}))
		}
		return WrapValue(itm)
	}
	return WrapSlice(ms)
}

// WrapSlice converts a YAML mapping into a record. Keys that are not strings are
// converted using their default format.
func WrapSlice(ms ym.MapSlice) *values.Record {
	r := values.NewRecord()
	for _, me := range ms {
		key, ok := me.Key.(string)
		if !ok {
			key = fmt.Sprint(me.Key)
		}
		r.Put(key, WrapValue(me.Value))
	}
	return r
}

func WrapValue(v interface{}) dml.Value {
	switch v := v.(type) {
	case ym.MapSlice:
		return WrapSlice(v)
	case []interface{}:
		vs := make([]dml.Value, len(v))
		for i, y := range v {
			vs[i] = WrapValue(y)
		}
		return values.NewList(vs...)
	default:
		return values.Wrap(v)
	}
}
