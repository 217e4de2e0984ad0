package service

import (
	"errors"
	"fmt"
)

const (
	// ErrConnect means the registry could not be reached (dial or transport failure).
	ErrConnect = "connect_error"
	// ErrTimeout means the call did not complete before the caller's deadline.
	ErrTimeout = "timeout_error"
	// ErrRejected means the registry answered with a non-success status or an unusable body.
	ErrRejected = "rejected_error"
	// ErrNotFound means the registry answered 404. Deregistration treats it as success.
	ErrNotFound = "not_found_error"
	// ErrInternalServerError means the host's HTTP surface failed for a reason unrelated to the registry.
	ErrInternalServerError = "internal_server_error"
)

// RegistryError represents a failed call to the monitoring registry.
type RegistryError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// StatusCode is the HTTP status returned by the registry, 0 when no response was received.
	StatusCode int `json:"registry_status,omitempty"`
	// Inner is the wrapped cause, never shown to API consumers.
	Inner error `json:"-"`
}

// NewRegistryError creates a new RegistryError.
func NewRegistryError(code string, message string, statusCode int, inner error) *RegistryError {
	return &RegistryError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Inner:      inner,
	}
}

func NewConnectError(message string, inner error) *RegistryError {
	return NewRegistryError(ErrConnect, message, 0, inner)
}

func NewTimeoutError(message string, inner error) *RegistryError {
	return NewRegistryError(ErrTimeout, message, 0, inner)
}

func NewRejectedError(message string, statusCode int, inner error) *RegistryError {
	return NewRegistryError(ErrRejected, message, statusCode, inner)
}

func NewNotFoundError(message string, inner error) *RegistryError {
	return NewRegistryError(ErrNotFound, message, 404, inner)
}

func (e RegistryError) Error() string {
	msg := e.Code + " " + e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Inner != nil {
		return fmt.Sprintf("%s: %v", msg, e.Inner)
	}
	return msg
}

// Unwrap the error returning the error's reason.
func (e RegistryError) Unwrap() error {
	return e.Inner
}

// ToRegistryError returns the first RegistryError in err's chain, or nil.
func ToRegistryError(err error) *RegistryError {
	var e *RegistryError
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// ToRegistryErrorCode returns the code of the error, if available.
func ToRegistryErrorCode(err error) string {
	if e := ToRegistryError(err); e != nil {
		return e.Code
	}
	return ""
}

func IsRegistryError(err error, code string) bool {
	if e := ToRegistryError(err); e != nil {
		return e.Code == code
	}
	return false
}

func IsConnectError(err error) bool {
	return IsRegistryError(err, ErrConnect)
}

func IsTimeoutError(err error) bool {
	return IsRegistryError(err, ErrTimeout)
}

func IsRejectedError(err error) bool {
	return IsRegistryError(err, ErrRejected)
}

func IsNotFoundError(err error) bool {
	return IsRegistryError(err, ErrNotFound)
}
