package command

import (
	"errors"
	"fmt"

	"github.com/Zhangliubin/commandParser-1.1-sub000/types"
)

// ErrorType categorizes parameter errors, the mistakes found in user input.
type ErrorType string

const (
	ErrorTypeUnknownOption   ErrorType = "unknown_option"
	ErrorTypeDuplicateOption ErrorType = "duplicate_option"
	ErrorTypeArityMismatch   ErrorType = "arity_mismatch"
	ErrorTypeInvalidValue    ErrorType = "invalid_value"
	ErrorTypeValidation      ErrorType = "validation"
	ErrorTypeMissingRequired ErrorType = "missing_required"
	ErrorTypeRuleViolation   ErrorType = "rule_violation"
	ErrorTypeParameterFile   ErrorType = "parameter_file"
)

// ParseError is returned for every rejected token or value. Option names the
// offending option (or token, for unknown options).
type ParseError struct {
	Type       ErrorType
	Option     string
	Message    string
	Suggestion string // closest declared option, for unknown options
	Cause      error
}

func (e *ParseError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (did you mean '%s'?)", e.Message, e.Suggestion)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Cause }

// NewParseError creates a new ParseError with the given type and message
func NewParseError(errType ErrorType, option, format string, args ...any) *ParseError {
	return &ParseError{
		Type:    errType,
		Option:  option,
		Message: fmt.Sprintf(format, args...),
	}
}

// valueError wraps a conversion or validation failure of one option
func valueError(option string, err error) *ParseError {
	var ve *types.ValidationError
	if errors.As(err, &ve) {
		return &ParseError{Type: ErrorTypeValidation, Option: option, Message: ve.Error(), Cause: err}
	}
	return &ParseError{
		Type:    ErrorTypeInvalidValue,
		Option:  option,
		Message: fmt.Sprintf("invalid value for %s: %v", option, err),
		Cause:   err,
	}
}

// IsType reports whether err is, or wraps, a ParseError of the given type.
// Errors collected in diagnostic mode are searched as well.
func IsType(err error, errType ErrorType) bool {
	for _, pe := range ParseErrors(err) {
		if pe.Type == errType {
			return true
		}
	}
	return false
}

// ParseErrors flattens err into the ParseErrors it holds, in report order.
func ParseErrors(err error) []*ParseError {
	if err == nil {
		return nil
	}
	if multi, ok := err.(interface{ WrappedErrors() []error }); ok {
		var out []*ParseError
		for _, inner := range multi.WrappedErrors() {
			out = append(out, ParseErrors(inner)...)
		}
		return out
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return []*ParseError{pe}
	}
	return nil
}

// ConfigError is a mistake in the parser definition itself: an illegal or
// duplicate name, a malformed rule, a mismatched default or validator. Setup
// methods panic with a *ConfigError, the way the flag package panics on a
// redefined flag.
type ConfigError struct {
	Option  string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Option == "" {
		return "command: " + e.Message
	}
	return fmt.Sprintf("command: %s: %s", e.Option, e.Message)
}

func configPanic(option, format string, args ...any) {
	panic(&ConfigError{Option: option, Message: fmt.Sprintf(format, args...)})
}
