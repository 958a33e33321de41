// Package export converts compiled values to and from the cty type system so that
// profiles can be handed to tools built on it.
package export

import (
	"fmt"

	"github.com/lyraproj/pan-evaluator/dml"
	"github.com/lyraproj/pan-evaluator/values"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// ToCty converts a dml.Value into a cty.Value. Lists become tuples and records become
// objects. Both undef and null become a null of dynamic type.
func ToCty(v dml.Value) (cty.Value, error) {
	switch v := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case *values.Boolean:
		return cty.BoolVal(v.Bool()), nil
	case *values.Long:
		return cty.NumberIntVal(v.Int()), nil
	case *values.Double:
		return cty.NumberFloatVal(v.Float()), nil
	case *values.String:
		return cty.StringVal(v.String()), nil
	case *values.List:
		if v.Len() == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, v.Len())
		var err error
		v.Each(func(_ int, e dml.Value) {
			if err == nil {
				var ce cty.Value
				if ce, err = ToCty(e); err == nil {
					elems = append(elems, ce)
				}
			}
		})
		if err != nil {
			return cty.NilVal, err
		}
		return cty.TupleVal(elems), nil
	case *values.Record:
		if v.Len() == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, v.Len())
		var err error
		v.EachPair(func(key string, e dml.Value) {
			if err == nil {
				var ce cty.Value
				if ce, err = ToCty(e); err != nil {
					err = fmt.Errorf(`in attribute '%s': %w`, key, err)
				} else {
					attrs[key] = ce
				}
			}
		})
		if err != nil {
			return cty.NilVal, err
		}
		return cty.ObjectVal(attrs), nil
	}
	if v == values.Undef || v == values.Null {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	return cty.NilVal, fmt.Errorf(`unable to convert a %s to cty`, v.Label())
}

// FromCty converts a cty.Value into a dml.Value. Numbers that are integers become
// longs. The attributes of objects and maps are added in lexical order.
func FromCty(v cty.Value) (dml.Value, error) {
	if v.IsNull() {
		return values.Null, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf(`unable to convert an unknown %s value`, v.Type().FriendlyName())
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return values.WrapString(v.AsString()), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == 0 {
				return values.WrapLong(i), nil
			}
		}
		f, _ := bf.Float64()
		return values.WrapDouble(f), nil

	case ty == cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return nil, err
		}
		return values.WrapBoolean(b), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		l := values.NewList()
		for it := v.ElementIterator(); it.Next(); {
			_, e := it.Element()
			de, err := FromCty(e)
			if err != nil {
				return nil, err
			}
			l.Append(de)
		}
		return l, nil

	case ty.IsObjectType() || ty.IsMapType():
		r := values.NewRecord()
		for it := v.ElementIterator(); it.Next(); {
			k, e := it.Element()
			de, err := FromCty(e)
			if err != nil {
				return nil, fmt.Errorf(`in attribute '%s': %w`, k.AsString(), err)
			}
			r.Put(k.AsString(), de)
		}
		return r, nil
	}
	return nil, fmt.Errorf(`unsupported cty type %s`, ty.FriendlyName())
}

// JSON returns the JSON representation of the given value
func JSON(v dml.Value) ([]byte, error) {
	cv, err := ToCty(v)
	if err != nil {
		return nil, err
	}
	return ctyjson.Marshal(cv, cv.Type())
}
