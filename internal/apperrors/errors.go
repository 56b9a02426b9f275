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

// ErrUnauthorized indicates that no authenticated account is present in the request context.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated account may not perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrInvalidAmount indicates a monetary amount that is zero, negative, or below the
// configured minimum.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrPaymentMethodMissing indicates a purchase was attempted by an account with no
// usable payment method on file.
var ErrPaymentMethodMissing = errors.New("no usable payment method")

// ErrAlreadyOwned signals the ownership idempotency guard: the account already owns the
// article. Callers treat it as success without a new charge.
var ErrAlreadyOwned = errors.New("article already owned")

// ErrAlreadySubscribed signals the membership idempotency guard: the account already holds
// a trial or active membership for the target. Callers treat it as success.
var ErrAlreadySubscribed = errors.New("already subscribed")

// ErrConflictRetryExhausted indicates a ledger write could not be serialized after bounded
// retries under contention. The whole operation is safe to retry.
var ErrConflictRetryExhausted = errors.New("conflicting updates, retries exhausted")

// AppError carries a status code alongside a message and a wrapped cause.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with an explicit status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewBadRequestError creates a 400 AppError wrapping ErrValidation.
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewUnauthorizedError creates a 401 AppError wrapping ErrUnauthorized.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message, Err: ErrUnauthorized}
}

// NewInternalServerError creates a 500 AppError wrapping ErrInternal.
func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: ErrInternal}
}
