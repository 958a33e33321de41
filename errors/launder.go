package errors

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/pan-evaluator/dml"
)

type (
	// ExecutionError is the envelope in which a failed compilation task reports its
	// failure. The Cause is the value recovered from a panic or the error returned by
	// the task and its type is not known to the receiver.
	ExecutionError struct {
		Template string
		Cause    interface{}
	}

	FailureKind int

	// Failure is the classified cause of an ExecutionError.
	Failure struct {
		Kind  FailureKind
		Cause interface{}
	}
)

const (
	UnexpectedFailure FailureKind = iota
	SyntaxFailure
	EvaluationFailure
	FatalFailure
	CanceledFailure
)

func (k FailureKind) String() string {
	switch k {
	case SyntaxFailure:
		return `syntax`
	case EvaluationFailure:
		return `evaluation`
	case FatalFailure:
		return `fatal`
	case CanceledFailure:
		return `canceled`
	default:
		return `unexpected`
	}
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf(`compilation of template '%s' failed: %v`, e.Template, e.Cause)
}

func (e *ExecutionError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// Classify determines the FailureKind of the given cause.
func Classify(cause interface{}) *Failure {
	kind := UnexpectedFailure
	switch c := cause.(type) {
	case *EvaluationError:
		kind = EvaluationFailure
	case *SyntaxError:
		kind = SyntaxFailure
	case *CompilerError, runtime.Error:
		kind = FatalFailure
	case error:
		if errors.Is(c, context.Canceled) || errors.Is(c, context.DeadlineExceeded) {
			kind = CanceledFailure
		}
	}
	return &Failure{Kind: kind, Cause: cause}
}

func (f *Failure) Error() string {
	return fmt.Sprintf(`%s failure: %v`, f.Kind, f.Cause)
}

// Raise panics with the failure in the category that callers of a compilation
// expect. It never returns.
//
// Evaluation, fatal, and cancellation failures are raised unchanged. A syntax failure
// is raised as an *EvaluationError with the same message that has the syntax failure
// as its cause. Anything else is raised as an *EvaluationError that describes the
// unexpected cause.
func (f *Failure) Raise() {
	switch f.Kind {
	case EvaluationFailure, FatalFailure, CanceledFailure:
		panic(f.Cause)
	case SyntaxFailure:
		panic(FromSyntaxError(f.Cause.(*SyntaxError)))
	default:
		panic(NewEvaluationError(nil, dml.UnexpectedFailure, issue.H{`cause`: fmt.Sprintf(`%T: %v`, f.Cause, f.Cause)}))
	}
}

// Err returns the failure as an error in the same category that Raise would panic
// with. Fatal failures are not errors and are re-panicked.
func (f *Failure) Err() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && f.Kind != FatalFailure {
				err = e
				return
			}
			panic(r)
		}
	}()
	f.Raise()
	return nil
}

// Launder recovers the category of the failure carried by the given envelope and
// raises it on the calling go-routine. It never returns.
func Launder(e *ExecutionError) {
	Classify(e.Cause).Raise()
}
