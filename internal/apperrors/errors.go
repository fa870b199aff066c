// Package apperrors is the error taxonomy shared by the lifecycle engine, the
// chat session manager and the HTTP edge. Primary transitions fail with one of
// these before the first write; secondary side-effect failures are reported as
// Dependency errors and never unwind a committed transition.
package apperrors

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeInvalidState         Code = "INVALID_STATE"
	CodeDuplicateApplication Code = "DUPLICATE_APPLICATION"
	CodeNotAuthorized        Code = "NOT_AUTHORIZED"
	CodeNotFound             Code = "NOT_FOUND"
	CodeDependency           Code = "DEPENDENCY_FAILURE"
)

type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func New(code Code, message string) error {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) error {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// InvalidState marks an operation attempted against a match or application not
// in the required status.
func InvalidState(msg string) error {
	return New(CodeInvalidState, msg)
}

// DuplicateApplication marks a resubmission of the same player or team to a
// match that already has a live application from them.
func DuplicateApplication(msg string) error {
	return New(CodeDuplicateApplication, msg)
}

func NotAuthorized(msg string) error {
	return New(CodeNotAuthorized, msg)
}

func NotFound(msg string) error {
	return New(CodeNotFound, msg)
}

// Dependency marks a transient persistence or fan-out failure.
func Dependency(msg string, cause error) error {
	return Wrap(CodeDependency, msg, cause)
}

// CodeOf extracts the taxonomy code, defaulting to DEPENDENCY_FAILURE for
// untyped errors bubbling up from the store.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeDependency
}

func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
