// internal/game/errors.go
//
// Error taxonomy for the engine.
//
// User-input errors (recoverable, state untouched):
//   - *InvalidWordError  bad token shape
//   - *AddError          pool admission failure (invalid / length mismatch / duplicate)
//   - *RemoveError       pool removal failure (not found)
//
// Contract violations (caller bug, wrapped in *ContractError):
//   - *LengthMismatchError  Score/Guess with words of different length
//   - ErrSessionClosed      Guess on a won/lost session
//   - *InvalidSessionError  bad NewSession arguments
//
// Every variant matches one of the sentinels below through errors.Is.

package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidWord    = errors.New("invalid word")
	ErrLengthMismatch = errors.New("length mismatch")
	ErrDuplicate      = errors.New("duplicate word")
	ErrNotFound       = errors.New("word not found")
	ErrSessionClosed  = errors.New("session closed")
	ErrInvalidSession = errors.New("invalid session")
	ErrNoDuds         = errors.New("no duds left")
)

// Reason enumerates why a token failed validation.
type Reason string

const (
	ReasonNull       Reason = "null"
	ReasonEmpty      Reason = "empty"
	ReasonWhitespace Reason = "whitespace"
	ReasonNonLetters Reason = "non-letters"
)

// InvalidWordError is returned by Validate.
type InvalidWordError struct {
	Token  string
	Reason Reason
}

func (e *InvalidWordError) Error() string {
	if e.Reason == ReasonNonLetters {
		return fmt.Sprintf("invalid word %q: %s", e.Token, e.Reason)
	}
	return "invalid word: " + string(e.Reason)
}

func (e *InvalidWordError) Is(target error) bool { return target == ErrInvalidWord }

// LengthMismatchError reports a word whose length differs from the expected one.
type LengthMismatchError struct {
	Expected int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch: expected %d letters, got %d", e.Expected, e.Actual)
}

func (e *LengthMismatchError) Is(target error) bool { return target == ErrLengthMismatch }

// AddErrorKind tags the variant of an AddError.
type AddErrorKind int

const (
	AddInvalid AddErrorKind = iota + 1
	AddLengthMismatch
	AddDuplicate
)

func (k AddErrorKind) String() string {
	switch k {
	case AddInvalid:
		return "invalid"
	case AddLengthMismatch:
		return "length_mismatch"
	case AddDuplicate:
		return "duplicate"
	}
	return "unknown"
}

// AddError is returned by Pool.Add. Err carries the detail for
// AddInvalid (*InvalidWordError) and AddLengthMismatch (*LengthMismatchError).
type AddError struct {
	Kind AddErrorKind
	Word string
	Err  error
}

func (e *AddError) Error() string {
	switch e.Kind {
	case AddDuplicate:
		return fmt.Sprintf("add %q: already in pool", e.Word)
	default:
		return fmt.Sprintf("add %q: %v", e.Word, e.Err)
	}
}

func (e *AddError) Unwrap() error { return e.Err }

func (e *AddError) Is(target error) bool {
	return e.Kind == AddDuplicate && target == ErrDuplicate
}

// RemoveErrorKind tags the variant of a RemoveError.
// NotFound is currently the only one.
type RemoveErrorKind int

const (
	RemoveNotFound RemoveErrorKind = iota + 1
)

// RemoveError is returned by Pool.Remove.
type RemoveError struct {
	Kind RemoveErrorKind
	Word string
}

func (e *RemoveError) Error() string { return fmt.Sprintf("remove %q: not in pool", e.Word) }

func (e *RemoveError) Is(target error) bool {
	return e.Kind == RemoveNotFound && target == ErrNotFound
}

// InvalidSessionError describes why NewSession refused its arguments.
type InvalidSessionError struct {
	Reason string
}

func (e *InvalidSessionError) Error() string { return "invalid session: " + e.Reason }

func (e *InvalidSessionError) Is(target error) bool { return target == ErrInvalidSession }

// ContractError marks a programming error by the caller, as opposed to bad user input.
type ContractError struct {
	Op  string
	Err error
}

func (e *ContractError) Error() string { return "game: " + e.Op + ": " + e.Err.Error() }

func (e *ContractError) Unwrap() error { return e.Err }

// IsContractViolation reports whether err (or anything it wraps) is a ContractError.
func IsContractViolation(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}
