package dml

import "github.com/lyraproj/issue/issue"

// SelfVariable is the name of the variable that denotes the object under construction
const SelfVariable = `SELF`

// AutomaticVariables are populated by the compiler and can never be the target of
// an assignment. SELF is handled separately.
var AutomaticVariables = [...]string{`OBJECT`, `FUNCTION`, `TEMPLATE`}

// IsAutomatic returns true if name is one of the AutomaticVariables
func IsAutomatic(name string) bool {
	for _, a := range AutomaticVariables {
		if a == name {
			return true
		}
	}
	return false
}

type (
	// A Producer produces a value. It is used when a scope must be active during the
	// production.
	Producer func() Value

	// An Operation is a node of the evaluated operation tree. Execute panics with
	// an *errors.EvaluationError when evaluation fails.
	Operation interface {
		Execute(c Context) Value

		Location() issue.Location
	}

	// A Context is the variable namespace that operations read from and write into. It
	// consists of the object global tier, a stack of local tiers, and the object under
	// construction, SELF.
	//
	// A Context is owned by one template evaluation and must never be shared between
	// go-routines. Use Fork to obtain an independent Context.
	Context interface {
		// Fork returns a new Context for the evaluation of the named template that
		// builds the named object. The new Context starts with copies of the global
		// variables and the object under construction of the receiver but has no local
		// tiers. Nothing mutable is shared with the receiver.
		Fork(objectName, templateName string) Context

		// FunctionName returns the name of the innermost function or the empty string
		FunctionName() string

		// GetVariable returns the named variable. Local tiers are searched innermost
		// first, then the global tier and the automatic variables. Containers are
		// always returned as protected views.
		GetVariable(name string) (Value, bool)

		Logger() Logger

		ObjectName() string

		// Self returns the object under construction
		Self() Value

		// SetGlobalVariable binds a variable in the object global tier
		SetGlobalVariable(name string, value Value, final bool) error

		// SetLocalVariable writes value into the named local variable at the location
		// denoted by terms. An absent value removes the location. Global and automatic
		// variables cannot be written.
		SetLocalVariable(name string, terms []Term, value Value) error

		// SetSelf writes value into the object under construction at the location
		// denoted by terms. With no terms, value replaces the object and must be a
		// record.
		SetSelf(terms []Term, value Value) error

		TemplateName() string

		// Trace returns a description of the active templates and functions, outermost
		// first
		Trace() []string

		// WithFunction pushes a local tier for a call of the named function with ARGV
		// and ARGC bound, and calls the producer. The tier is popped before this method
		// returns.
		WithFunction(name string, args []Value, producer Producer) Value

		// WithLocalScope pushes a local tier and calls the producer. The tier is
		// guaranteed to be popped before this method returns.
		WithLocalScope(producer Producer) Value
	}
)
