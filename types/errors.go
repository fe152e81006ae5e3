package types

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by ConversionError.Err
var (
	ErrUnsupportedType = errors.New("unsupported kind and shape combination")
	ErrTokenCount      = errors.New("wrong number of tokens")
	ErrSyntax          = errors.New("invalid syntax")
	ErrOutOfRange      = errors.New("value out of range")
	ErrMissingKey      = errors.New("expected key=value")
	ErrMissingLabel    = errors.New("expected label:value")
	ErrRangeSyntax     = errors.New("expected <lo>-<hi>")
	ErrScientific      = errors.New("scientific notation is not allowed in ranges")
	ErrInvertedRange   = errors.New("lower bound exceeds upper bound")
)

// ConversionError reports a token that could not be converted by a Type.
type ConversionError struct {
	Type  Type
	Token string
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Token == "" && errors.Is(e.Err, ErrTokenCount) {
		return fmt.Sprintf("cannot convert to %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Token, e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// ValidationError reports a converted value rejected by a Validator.
type ValidationError struct {
	Option string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %v for %s: %s", e.Value, e.Option, e.Reason)
}

// tokenError creates a ConversionError for a single token. The Type is filled in
// by the converter that owns the token.
func tokenError(token string, err error) *ConversionError {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce
	}
	return &ConversionError{Token: token, Err: err}
}

func countError(want, got int) *ConversionError {
	return &ConversionError{Err: fmt.Errorf("%w: expected %d, got %d", ErrTokenCount, want, got)}
}
