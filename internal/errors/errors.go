package errors

import "fmt"

// ErrCode represents an error code
type ErrCode string

const (
	ErrCodeValidation      ErrCode = "VALIDATION"
	ErrCodeUnauthenticated ErrCode = "UNAUTHENTICATED"
	ErrCodeAccessDenied    ErrCode = "ACCESS_DENIED"
	ErrCodeProbeFailed     ErrCode = "PROBE_FAILED"
	ErrCodeStepFailed      ErrCode = "STEP_FAILED"
	ErrCodeInterrupted     ErrCode = "INTERRUPTED"
	ErrCodeInternal        ErrCode = "INTERNAL_ERROR"
)

// AppError represents an application error
type AppError struct {
	Code    ErrCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// NewUnauthenticatedError creates a new authentication error
func NewUnauthenticatedError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnauthenticated,
		Message: message,
	}
}

// NewAccessError creates a new repository access error
func NewAccessError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeAccessDenied,
		Message: message,
		Err:     err,
	}
}

// NewProbeError creates an error for a probe step that could not determine
// the collaborator state. Distinct from "confirmed absent".
func NewProbeError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeProbeFailed,
		Message: message,
		Err:     err,
	}
}

// NewStepError creates an error for a failed mutating step
func NewStepError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeStepFailed,
		Message: message,
		Err:     err,
	}
}

// NewInterruptedError creates an error for a user-cancelled run
func NewInterruptedError() *AppError {
	return &AppError{
		Code:    ErrCodeInterrupted,
		Message: "operation cancelled by user",
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

func is(err error, code ErrCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return is(err, ErrCodeValidation)
}

// IsUnauthenticated checks if the error is an authentication error
func IsUnauthenticated(err error) bool {
	return is(err, ErrCodeUnauthenticated)
}

// IsAccessDenied checks if the error is a repository access error
func IsAccessDenied(err error) bool {
	return is(err, ErrCodeAccessDenied)
}

// IsProbeFailure checks if the error is a probe failure
func IsProbeFailure(err error) bool {
	return is(err, ErrCodeProbeFailed)
}

// IsStepFailure checks if the error is a failed mutating step
func IsStepFailure(err error) bool {
	return is(err, ErrCodeStepFailed)
}

// IsInterrupted checks if the error is a user cancellation
func IsInterrupted(err error) bool {
	return is(err, ErrCodeInterrupted)
}
