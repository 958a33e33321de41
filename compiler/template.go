package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/pan-evaluator/dml"
	"github.com/lyraproj/pan-evaluator/errors"
	"github.com/lyraproj/pan-evaluator/evaluator"
	"github.com/lyraproj/pan-evaluator/values"
	ym "gopkg.in/yaml.v2"
)

// ParseTemplate creates a template from a YAML document such as
//
//	object: node.example.org
//	assignments:
//	  ports: [80, 443]
//	  SELF/name: web01
//	  SELF/ports: $ports
//	  SELF/ports/2: 8080
//
// Each key of the assignments is a path. The first segment of a path names the
// variable and every other segment is an index when it is an integer and a key
// otherwise. A string value that starts with '$' reads the variable at the path
// that follows. A null value removes the element. The assignments are executed in
// document order.
func ParseTemplate(name string, data []byte) (*Template, error) {
	var doc struct {
		Object      string      `yaml:"object"`
		Assignments ym.MapSlice `yaml:"assignments"`
	}
	if err := ym.UnmarshalStrict(data, &doc); err != nil {
		return nil, errors.NewSyntaxError(issue.NewLocation(name, 0, 0), dml.InvalidTemplate, issue.H{`name`: name, `detail`: err.Error()})
	}
	object := doc.Object
	if object == `` {
		object = name
	}
	return &Template{
		Name:   name,
		Object: object,
		Build: func() (dml.Operation, error) {
			return buildAssignments(issue.NewLocation(name, 0, 0), doc.Assignments)
		}}, nil
}

func buildAssignments(location issue.Location, entries ym.MapSlice) (dml.Operation, error) {
	ops := make([]dml.Operation, 0, len(entries))
	for _, e := range entries {
		key, ok := e.Key.(string)
		if !ok {
			key = fmt.Sprint(e.Key)
		}
		id, path := splitPath(location, key)
		target, err := evaluator.NewAssignTarget(location, id, path...)
		if err != nil {
			return nil, err
		}
		value, err := valueOperation(location, e.Value)
		if err != nil {
			return nil, err
		}
		ops = append(ops, evaluator.NewAssignment(location, target, value))
	}
	return evaluator.NewBlock(location, ops...), nil
}

func splitPath(location issue.Location, path string) (string, []dml.Operation) {
	segments := strings.Split(path, `/`)
	ops := make([]dml.Operation, len(segments)-1)
	for i, s := range segments[1:] {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			ops[i] = evaluator.NewLiteral(location, values.WrapLong(n))
		} else {
			ops[i] = evaluator.NewLiteral(location, values.WrapString(s))
		}
	}
	return segments[0], ops
}

func valueOperation(location issue.Location, v interface{}) (dml.Operation, error) {
	switch v := v.(type) {
	case string:
		if strings.HasPrefix(v, `$`) {
			id, path := splitPath(location, v[1:])
			variable, err := evaluator.NewVariable(location, id, path...)
			if err != nil {
				return nil, err
			}
			return variable, nil
		}
	case []interface{}:
		elements := make([]dml.Operation, len(v))
		for i, e := range v {
			op, err := valueOperation(location, e)
			if err != nil {
				return nil, err
			}
			elements[i] = op
		}
		return evaluator.NewListOp(location, elements...), nil
	case ym.MapSlice:
		entries := make([]evaluator.RecordEntry, len(v))
		for i, e := range v {
			op, err := valueOperation(location, e.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = evaluator.RecordEntry{Key: fmt.Sprint(e.Key), Value: op}
		}
		record, err := evaluator.NewRecordOp(location, entries...)
		if err != nil {
			return nil, err
		}
		return record, nil
	}
	return evaluator.NewLiteral(location, values.Wrap(v)), nil
}
