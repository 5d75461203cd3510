package domain

import (
	"errors"
	"fmt"
)

// ErrActionNotFound is returned when no handler is registered under the requested name.
var ErrActionNotFound = errors.New("action not found")

// ErrActionExecution is returned when a handler fails while running.
var ErrActionExecution = errors.New("action execution failed")

// ErrActionRejected is returned when a handler refuses to run for the given input.
var ErrActionRejected = errors.New("action execution rejected")

// ErrMalformedRequest is returned when a webhook payload cannot be dispatched.
var ErrMalformedRequest = errors.New("malformed request")

// ErrInvalidAction is returned when a value cannot be registered as a handler.
var ErrInvalidAction = errors.New("invalid action")

// ErrInvalidActionsSpecifier is returned when an actions package specifier is
// malformed or names no known package.
var ErrInvalidActionsSpecifier = errors.New("invalid actions specifier")

// ActionNotFoundError carries the name that could not be resolved.
type ActionNotFoundError struct {
	ActionName string
}

func (e *ActionNotFoundError) Error() string {
	return fmt.Sprintf("no registered action found for name %q", e.ActionName)
}

func (e *ActionNotFoundError) Unwrap() error { return ErrActionNotFound }

// ActionExecutionError wraps the failure raised by a handler.
type ActionExecutionError struct {
	ActionName string
	Err        error
}

func (e *ActionExecutionError) Error() string {
	return fmt.Sprintf("action %q failed: %v", e.ActionName, e.Err)
}

// Unwrap exposes both the sentinel and the handler's own error to errors.Is/As.
func (e *ActionExecutionError) Unwrap() []error { return []error{ErrActionExecution, e.Err} }

// ActionRejectedError is returned by a handler that declines to run.
// The dispatch is reported to the caller as a client error rather than a failure.
type ActionRejectedError struct {
	ActionName string
	Message    string
}

// NewActionRejectedError builds a rejection for the named action.
func NewActionRejectedError(actionName, message string) *ActionRejectedError {
	return &ActionRejectedError{ActionName: actionName, Message: message}
}

func (e *ActionRejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("custom action %q rejected execution", e.ActionName)
	}
	return e.Message
}

func (e *ActionRejectedError) Unwrap() error { return ErrActionRejected }
