package values

import (
	"strconv"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/pan-evaluator/dml"
	"github.com/lyraproj/pan-evaluator/errors"
)

type (
	keyTerm string

	indexTerm int
)

// NewTerm creates a term from the given value. A non-negative long becomes a list
// index and a non-empty string becomes a record key. Any other value results in an
// *errors.EvaluationError.
func NewTerm(v dml.Value) (dml.Term, error) {
	switch v := v.(type) {
	case *Long:
		if v.value >= 0 && v.value <= int64(maxIndex) {
			return indexTerm(v.value), nil
		}
	case *String:
		if v.value != `` {
			return keyTerm(v.value), nil
		}
	}
	return nil, errors.NewEvaluationError(nil, dml.InvalidTerm, issue.H{`value`: termDescription(v)})
}

const maxIndex = int(^uint32(0) >> 1)

// KeyTerm returns a term that indexes the given record key
func KeyTerm(key string) dml.Term {
	return keyTerm(key)
}

// IndexTerm returns a term that indexes the given list position
func IndexTerm(index int) dml.Term {
	return indexTerm(index)
}

func termDescription(v dml.Value) string {
	if v == nil {
		return `an undefined value`
	}
	if s, ok := v.(*String); ok {
		return strconv.Quote(s.value)
	}
	return v.String() + ` (` + v.Label() + `)`
}

func (k keyTerm) Index() int {
	return -1
}

func (k keyTerm) IsKey() bool {
	return true
}

func (k keyTerm) Key() string {
	return string(k)
}

func (k keyTerm) String() string {
	return string(k)
}

func (i indexTerm) Index() int {
	return int(i)
}

func (i indexTerm) IsKey() bool {
	return false
}

func (i indexTerm) Key() string {
	return ``
}

func (i indexTerm) String() string {
	return strconv.Itoa(int(i))
}
