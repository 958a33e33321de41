package errors

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/pan-evaluator/dml"
)

type (
	located struct {
		code     issue.Code
		args     issue.H
		location issue.Location
	}

	// SyntaxError is detected while an operation tree is constructed. It is returned,
	// never panicked, and does not stop the compilation of other templates.
	SyntaxError struct {
		located
	}

	// EvaluationError is detected while an operation tree is executed. It is raised
	// with panic and aborts the compilation of the current template.
	EvaluationError struct {
		located
		trace []string
		cause error
	}

	// CompilerError signals a bug in the compiler itself, e.g. incorrectly generated
	// code. It must never be downgraded to a recoverable failure.
	CompilerError struct {
		located
	}
)

func (e *located) Code() issue.Code {
	return e.code
}

func (e *located) Location() issue.Location {
	return e.location
}

// Message returns the formatted issue without location information
func (e *located) Message() string {
	b := bytes.NewBufferString(``)
	issue.ForCode(e.code).Format(b, e.args)
	return b.String()
}

// Reported returns the issue.Reported that corresponds to this failure
func (e *located) Reported() issue.Reported {
	return issue.NewReported(e.code, issue.SeverityError, e.args, e.location)
}

func (e *located) Error() string {
	if e.location == nil {
		return e.Message()
	}
	return e.Message() + ` ` + issue.LocationString(e.location)
}

func NewSyntaxError(location issue.Location, code issue.Code, args issue.H) *SyntaxError {
	return &SyntaxError{located{code, args, location}}
}

func NewEvaluationError(location issue.Location, code issue.Code, args issue.H) *EvaluationError {
	return &EvaluationError{located: located{code, args, location}}
}

// FromSyntaxError converts a syntax failure into an evaluation failure with the same
// message and location. The syntax failure is kept as the cause.
func FromSyntaxError(se *SyntaxError) *EvaluationError {
	return &EvaluationError{located: se.located, cause: se}
}

// Fail creates an evaluation failure from a plain message
func Fail(location issue.Location, message string) *EvaluationError {
	return NewEvaluationError(location, dml.Failure, issue.H{`message`: message})
}

// Wrap returns err if it is an *EvaluationError. Any other error becomes the cause
// of a new *EvaluationError with the same message.
func Wrap(err error) *EvaluationError {
	if ee, ok := err.(*EvaluationError); ok {
		return ee
	}
	ee := Fail(nil, err.Error())
	ee.cause = err
	return ee
}

func NewCompilerError(code issue.Code, args issue.H) *CompilerError {
	return &CompilerError{located{code, args, nil}}
}

// AddExceptionInfo records the location and the trace of the given context unless
// they are already known. The receiver is returned so that it can be re-raised with
// its identity intact.
func (e *EvaluationError) AddExceptionInfo(location issue.Location, c dml.Context) *EvaluationError {
	if e.location == nil {
		e.location = location
	}
	if e.trace == nil && c != nil {
		e.trace = c.Trace()
	}
	return e
}

func (e *EvaluationError) Error() string {
	s := e.located.Error()
	if len(e.trace) > 0 {
		s = fmt.Sprintf("%s [%s]", s, strings.Join(e.trace, ` > `))
	}
	return s
}

// Trace returns the templates and functions that were active when the failure was annotated
func (e *EvaluationError) Trace() []string {
	return e.trace
}

func (e *EvaluationError) Unwrap() error {
	return e.cause
}

func (e *CompilerError) Error() string {
	return `compiler error: ` + e.located.Error()
}
