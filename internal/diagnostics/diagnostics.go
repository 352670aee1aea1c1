package diagnostics

import (
	"fmt"

	"github.com/amber-lang/amber/internal/token"
)

// ErrorCode identifies a diagnostic category. Codes are stable: tests and
// downstream drivers match on them, not on message text.
type ErrorCode string

const (
	// ErrT001: occurs-check failure: a type would have to contain itself.
	ErrT001 ErrorCode = "T001"
	// ErrT002: unification mismatch: two required-equal concrete types disagree.
	ErrT002 ErrorCode = "T002"
	// ErrT003: unresolved method: no resolution source matched a method on a
	// concretely-typed receiver, or a deferred constraint never resolved.
	ErrT003 ErrorCode = "T003"
	// ErrT004: ambiguous overload: two or more candidates scored equally.
	// First-declared is chosen so the pass keeps moving.
	ErrT004 ErrorCode = "T004"
	// ErrT005: malformed declaration data (signature document or foreign
	// metadata payload).
	ErrT005 ErrorCode = "T005"
	// ErrT006: undefined name.
	ErrT006 ErrorCode = "T006"
)

// DiagnosticError is a single engine diagnostic. None of these abort the
// inference pass; the session accumulates every one of them so the driver
// can report all type errors from one run.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	Message string
}

func (e *DiagnosticError) Error() string {
	if e.Token.Line > 0 {
		return fmt.Sprintf("[infer] error [%s] at %d:%d: %s", e.Code, e.Token.Line, e.Token.Column, e.Message)
	}
	return fmt.Sprintf("[infer] error [%s]: %s", e.Code, e.Message)
}

// NewError creates a diagnostic for the given code and source token.
func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

// Newf creates a diagnostic with a formatted message.
func Newf(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: fmt.Sprintf(format, args...)}
}
