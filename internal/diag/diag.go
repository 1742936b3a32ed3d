// Package diag defines the error taxonomy shared by node construction and
// compilation. Every violation is surfaced synchronously at the point it is
// detected; a successfully compiled closure never raises any of these.
package diag

import (
	"errors"
	"fmt"
)

// Phase identifies which stage of the pipeline detected the violation.
type Phase string

const (
	PhaseConstruct Phase = "construct"
	PhaseCompile   Phase = "compile"
)

// Code is a stable identifier for an error condition.
type Code string

const (
	// Construction errors
	CodeTypeMismatch          Code = "TYPE_MISMATCH"
	CodeUnsettableMember      Code = "UNSETTABLE_MEMBER"
	CodeUnsupportedConversion Code = "UNSUPPORTED_CONVERSION"
	CodeUnsupportedProfile    Code = "UNSUPPORTED_PROFILE"

	// Compile errors
	CodeIllFormedTree   Code = "ILL_FORMED_TREE"
	CodeUnsupportedNode Code = "UNSUPPORTED_NODE"
)

// Error is a programming-contract violation raised during construction or
// compilation of an expression tree.
type Error struct {
	Phase   Phase
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Phase, e.Code, e.Message)
}

// Errorf constructs an Error with a formatted message.
func Errorf(phase Phase, code Code, format string, args ...any) *Error {
	return &Error{
		Phase:   phase,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// HasCode reports whether err is (or wraps) an Error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
