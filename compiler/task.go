package compiler

import (
	"context"

	"github.com/lyraproj/pan-evaluator/errors"
)

// Task tracks the compilation of one template
type Task struct {
	template *Template
	done     chan struct{}
	profile  *Profile
	failure  *errors.ExecutionError
}

// Done is closed when the compilation has finished
func (t *Task) Done() <-chan struct{} {
	return t.done
}

func (t *Task) Template() *Template {
	return t.template
}

// Wait blocks until the compilation has finished or the context is done. It
// returns the profile or the classified failure.
func (t *Task) Wait(ctx context.Context) (*Profile, *errors.Failure) {
	select {
	case <-t.done:
		if t.failure != nil {
			return nil, errors.Classify(t.failure.Cause)
		}
		return t.profile, nil
	case <-ctx.Done():
		return nil, errors.Classify(ctx.Err())
	}
}

// Get blocks until the compilation has finished and returns the profile. A failed
// compilation is raised on the calling go-routine in the category of its cause. A
// syntax failure is raised as an *errors.EvaluationError.
func (t *Task) Get() *Profile {
	<-t.done
	if t.failure != nil {
		errors.Launder(t.failure)
	}
	return t.profile
}
