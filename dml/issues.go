package dml

import "github.com/lyraproj/issue/issue"

const (
	AutomaticVariableCannotBeSet = `SYNTAX_AUTOMATIC_VARIABLE`
	InvalidConstantTerm          = `SYNTAX_INVALID_TERM`
	InvalidTemplate              = `SYNTAX_INVALID_TEMPLATE`
	InvalidVersionRequirement    = `SYNTAX_INVALID_VERSION`

	AutomaticVariable      = `EVAL_AUTOMATIC_VARIABLE`
	Failure                = `EVAL_FAILURE`
	FinalVariable          = `EVAL_FINAL_VARIABLE`
	GlobalVariableReadOnly = `EVAL_GLOBAL_VARIABLE_READ_ONLY`
	IncompatibleVersion    = `EVAL_INCOMPATIBLE_VERSION`
	InvalidTerm            = `EVAL_INVALID_TERM`
	NotIndexable           = `EVAL_NOT_INDEXABLE`
	OperatorNotApplicable  = `EVAL_OPERATOR_NOT_APPLICABLE`
	ParseError             = `EVAL_PARSE_ERROR`
	ProtectedValue         = `EVAL_PROTECTED_VALUE`
	SelfNotRecord          = `EVAL_SELF_NOT_RECORD`
	TermKindMismatch       = `EVAL_TERM_KIND_MISMATCH`
	UndefinedElement       = `EVAL_UNDEFINED_ELEMENT`
	UnexpectedFailure      = `EVAL_UNEXPECTED_FAILURE`
	UnknownVariable        = `EVAL_UNKNOWN_VARIABLE`

	InvalidExecuteCalled  = `COMPILER_INVALID_EXECUTE`
	MissingValueOperation = `COMPILER_MISSING_VALUE_OPERATION`
)

func init() {
	issue.Hard(AutomaticVariableCannotBeSet, `automatic variable '%{name}' cannot be set`)

	issue.Hard(InvalidConstantTerm, `invalid term at index %{index} of the path: %{detail}`)

	issue.Hard(InvalidTemplate, `invalid template '%{name}': %{detail}`)

	issue.Hard(InvalidVersionRequirement, `invalid version requirement '%{version}': %{detail}`)

	issue.Hard(AutomaticVariable, `automatic variable '%{name}' cannot be modified`)

	issue.Hard(Failure, `%{message}`)

	issue.Hard(FinalVariable, `final variable '%{name}' cannot be modified`)

	issue.Hard(GlobalVariableReadOnly, `global variable '%{name}' cannot be modified from a local scope`)

	issue.Hard(IncompatibleVersion, `compiler version %{actual} does not satisfy the required version %{required}`)

	issue.Hard(InvalidTerm, `%{value} is not a valid term; expected a non-negative long or a non-empty string`)

	issue.Hard2(NotIndexable, `cannot index %{value} with term '%{term}'`, issue.HF{`value`: issue.AnOrA})

	issue.Hard2(OperatorNotApplicable, `operator '%{operator}' is not applicable to %{left} and %{right}`,
		issue.HF{`left`: issue.AnOrA, `right`: issue.AnOrA})

	issue.Hard(ParseError, `unable to parse %{language}: %{detail}`)

	issue.Hard(ProtectedValue, `attempt to modify a protected %{value}`)

	issue.Hard2(SelfNotRecord, `SELF must remain a record, got %{value}`, issue.HF{`value`: issue.AnOrA})

	issue.Hard2(TermKindMismatch, `cannot use term '%{term}' to index %{value}`, issue.HF{`value`: issue.AnOrA})

	issue.Hard(UndefinedElement, `undefined element '%{term}' in '%{name}'`)

	issue.Hard(UnexpectedFailure, `unexpected failure encountered: %{cause}`)

	issue.Hard(UnknownVariable, `unknown variable '%{name}'`)

	issue.Hard(InvalidExecuteCalled, `invalid execute method called on %{operation}; the compiler generated incorrect code`)

	issue.Hard(MissingValueOperation, `%{operation} constructed without a value producing operation`)
}
