package values

import (
	"bytes"
	"strconv"

	"github.com/lyraproj/pan-evaluator/dml"
)

func toString(b *bytes.Buffer, v dml.Value) {
	switch v := v.(type) {
	case *String:
		b.WriteString(strconv.Quote(v.value))
	case *List:
		b.WriteByte('[')
		for i, e := range v.elements {
			if i > 0 {
				b.WriteString(`, `)
			}
			toString(b, e)
		}
		b.WriteByte(']')
	case *Record:
		b.WriteByte('{')
		first := true
		v.fields.EachPair(func(key string, value interface{}) {
			if first {
				first = false
			} else {
				b.WriteString(`, `)
			}
			b.WriteString(strconv.Quote(key))
			b.WriteString(`: `)
			toString(b, value.(dml.Value))
		})
		b.WriteByte('}')
	default:
		b.WriteString(v.String())
	}
}
