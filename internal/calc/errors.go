package calc

import (
	"errors"
	"fmt"
)

// ErrorToken is what a display shows in place of a failed result.
const ErrorToken = "Error"

var (
	ErrInvalidCharacter    = errors.New("invalid character")
	ErrMalformedExpression = errors.New("malformed expression")
	ErrNonFiniteResult     = errors.New("non-finite result")
	ErrDomain              = errors.New("domain error")
)

// EvalError reports why an expression could not be evaluated.
// Kind is one of the Err* sentinels above; errors.Is matches on it.
type EvalError struct {
	Kind  error
	Input string
	Pos   int // rune offset into Input, -1 when not tied to a position
}

func (e *EvalError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%v at offset %d in %q", e.Kind, e.Pos, e.Input)
	}
	return fmt.Sprintf("%v in %q", e.Kind, e.Input)
}

func (e *EvalError) Unwrap() error { return e.Kind }

func newError(kind error, input string, pos int) *EvalError {
	return &EvalError{Kind: kind, Input: input, Pos: pos}
}
