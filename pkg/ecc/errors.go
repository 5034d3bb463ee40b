package ecc

import (
	"errors"
	"fmt"
)

// Arithmetic errors. They indicate either a logic bug in the caller or a
// genuinely undefined group operation and are never recovered locally.
var (
	// ErrNotOnCurve is returned when a point does not satisfy the curve equation.
	ErrNotOnCurve = errors.New("ecc: point is not on the curve")

	// ErrEqualPoints is returned by addition when both operands hold the same
	// coordinates. The caller must double instead.
	ErrEqualPoints = errors.New("ecc: points must not be equal, use doubling")

	// ErrUndefinedInverse is returned when a modular inverse of zero is required,
	// e.g. doubling a point with a vertical tangent.
	ErrUndefinedInverse = errors.New("ecc: modular inverse is undefined")

	// ErrInvalidScalar is returned for negative or out-of-range scalars.
	ErrInvalidScalar = errors.New("ecc: invalid scalar")

	// ErrInvalidPoint is returned when a point encoding is malformed or the
	// point belongs to a different group.
	ErrInvalidPoint = errors.New("ecc: invalid point")

	// ErrUnsupported is returned when a group lacks a requested capability.
	ErrUnsupported = errors.New("ecc: operation not supported by group")
)

// ErrDecryptionFailed is the single failure returned by authenticated
// decryption. It never carries detail about which input was rejected.
var ErrDecryptionFailed = errors.New("ecc: decryption failed")

// Error wraps an underlying error with the operation that produced it.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ecc.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with the name of the failing operation.
// It returns nil when err is nil.
func NewError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
