package analysis

import "fmt"

// The evaluation pipeline fails in exactly one of these ways. Handlers
// surface every one of them as a single user-facing message; none are
// fatal to the process.

// MissingFieldError reports a required form field that was not supplied.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

func (e *MissingFieldError) UserMessage() string {
	return "All fields are required"
}

// ParseError reports a field whose value is not numeric.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("field %q: cannot parse %q as a number", e.Field, e.Value)
}

func (e *ParseError) UserMessage() string {
	return fmt.Sprintf("%s must be a number", fieldLabels[e.Field])
}

// InvalidInputError reports parameters outside the pricing model's domain.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func (e *InvalidInputError) UserMessage() string {
	return "Prices, volatility, and time must be positive"
}

// InvalidOptionTypeError reports a variant other than call or put.
type InvalidOptionTypeError struct {
	Value string
}

func (e *InvalidOptionTypeError) Error() string {
	return fmt.Sprintf("invalid option type %q", e.Value)
}

func (e *InvalidOptionTypeError) UserMessage() string {
	return "Invalid option type. Must be 'call' or 'put'"
}

// InternalError wraps any fault the pipeline did not anticipate.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal evaluation error: %v", e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

func (e *InternalError) UserMessage() string {
	return "An unexpected error occurred"
}

// userFacing is satisfied by every error type in this package.
type userFacing interface {
	error
	UserMessage() string
}

// UserMessage flattens any evaluation error into the single string shown
// to the user. Unknown error types get the generic internal message.
func UserMessage(err error) string {
	if uf, ok := err.(userFacing); ok {
		return uf.UserMessage()
	}
	return (&InternalError{Err: err}).UserMessage()
}
