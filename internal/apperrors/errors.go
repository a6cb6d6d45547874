package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of a resource.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrStorage indicates that the underlying persistence layer failed.
var ErrStorage = errors.New("storage error")

// ErrTxConflict is returned by stores when a transaction lost a race with a
// concurrent writer and was aborted. Callers may retry the whole transaction.
var ErrTxConflict = errors.New("transaction conflict")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound with a message.
func NewNotFoundError(message string) error {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// NewConflictError wraps ErrDuplicate with a message.
func NewConflictError(message string) error {
	return NewAppError(http.StatusConflict, message, ErrDuplicate)
}

// NewValidationFailedError wraps ErrValidation with a message.
func NewValidationFailedError(message string) error {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewStorageError wraps a persistence failure so that both ErrStorage and the
// driver error stay reachable through errors.Is/As.
func NewStorageError(message string, err error) error {
	return NewAppError(http.StatusInternalServerError, message, errors.Join(ErrStorage, err))
}

// NewTxConflictError wraps a serialization failure reported by the store.
func NewTxConflictError(message string, err error) error {
	return NewAppError(http.StatusConflict, message, errors.Join(ErrTxConflict, err))
}
