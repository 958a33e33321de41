package values

import (
	"strconv"

	"github.com/lyraproj/pan-evaluator/dml"
)

type (
	undefValue struct{}

	nullValue struct{}

	Boolean struct {
		value bool
	}

	Long struct {
		value int64
	}

	Double struct {
		value float64
	}

	String struct {
		value string
	}
)

// Undef is the value of an element that has been referenced but never defined
var Undef dml.Value = &undefValue{}

// Null is the explicit null value
var Null dml.Value = &nullValue{}

func (u *undefValue) Duplicate() dml.Value {
	return u
}

func (u *undefValue) Equals(other dml.Value) bool {
	return other == Undef
}

func (u *undefValue) IsProtected() bool {
	return false
}

func (u *undefValue) Label() string {
	return `undef`
}

func (u *undefValue) Protect() dml.Value {
	return u
}

func (u *undefValue) String() string {
	return `undef`
}

func (n *nullValue) Duplicate() dml.Value {
	return n
}

func (n *nullValue) Equals(other dml.Value) bool {
	return other == Null
}

func (n *nullValue) IsProtected() bool {
	return false
}

func (n *nullValue) Label() string {
	return `null`
}

func (n *nullValue) Protect() dml.Value {
	return n
}

func (n *nullValue) String() string {
	return `null`
}

func WrapBoolean(b bool) *Boolean {
	return &Boolean{b}
}

func (b *Boolean) Bool() bool {
	return b.value
}

func (b *Boolean) Duplicate() dml.Value {
	return &Boolean{b.value}
}

func (b *Boolean) Equals(other dml.Value) bool {
	ob, ok := other.(*Boolean)
	return ok && ob.value == b.value
}

func (b *Boolean) IsProtected() bool {
	return false
}

func (b *Boolean) Label() string {
	return `boolean`
}

func (b *Boolean) Protect() dml.Value {
	return b
}

func (b *Boolean) String() string {
	return strconv.FormatBool(b.value)
}

func WrapLong(v int64) *Long {
	return &Long{v}
}

func (l *Long) Int() int64 {
	return l.value
}

func (l *Long) Duplicate() dml.Value {
	return &Long{l.value}
}

func (l *Long) Equals(other dml.Value) bool {
	ol, ok := other.(*Long)
	return ok && ol.value == l.value
}

func (l *Long) IsProtected() bool {
	return false
}

func (l *Long) Label() string {
	return `long`
}

func (l *Long) Protect() dml.Value {
	return l
}

func (l *Long) String() string {
	return strconv.FormatInt(l.value, 10)
}

func WrapDouble(v float64) *Double {
	return &Double{v}
}

func (d *Double) Float() float64 {
	return d.value
}

func (d *Double) Duplicate() dml.Value {
	return &Double{d.value}
}

func (d *Double) Equals(other dml.Value) bool {
	od, ok := other.(*Double)
	return ok && od.value == d.value
}

func (d *Double) IsProtected() bool {
	return false
}

func (d *Double) Label() string {
	return `double`
}

func (d *Double) Protect() dml.Value {
	return d
}

func (d *Double) String() string {
	return strconv.FormatFloat(d.value, 'g', -1, 64)
}

func WrapString(s string) *String {
	return &String{s}
}

func (s *String) Duplicate() dml.Value {
	return &String{s.value}
}

func (s *String) Equals(other dml.Value) bool {
	os, ok := other.(*String)
	return ok && os.value == s.value
}

func (s *String) IsProtected() bool {
	return false
}

func (s *String) Label() string {
	return `string`
}

func (s *String) Protect() dml.Value {
	return s
}

func (s *String) String() string {
	return s.value
}
