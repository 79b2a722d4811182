package apperrors

import "fmt"

// ValidationError reports the first missing or malformed user-input field.
// It is recovered locally and never propagates past the request handler.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field '%s' is missing or invalid", e.Field)
}

// NotFoundError reports an absent resource, or one not owned by the caller.
// Ownership failures deliberately look identical to absence.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// GatewayError wraps a payment-processor failure. Message is relayed to the
// user only when Safe is set (e.g. card declines); otherwise callers must show
// a generic failure message.
type GatewayError struct {
	Code    string
	Message string
	Safe    bool
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("payment gateway error (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("payment gateway error (%s)", e.Code)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// UserMessage returns the text safe to show the end user.
func (e *GatewayError) UserMessage() string {
	if e.Safe && e.Message != "" {
		return e.Message
	}
	return "Payment failed, please try again"
}

// PersistenceError wraps a database read/write failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
