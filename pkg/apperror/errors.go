package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a machine-readable error discriminator. Clients branch on kinds;
// messages are for humans.
type Kind string

const (
	KindInvalidAmount      Kind = "invalid_amount"
	KindInvalidQuantity    Kind = "invalid_quantity"
	KindInvalidTendered    Kind = "invalid_tendered_amount"
	KindEmptyCart          Kind = "empty_cart"
	KindAmountMismatch     Kind = "amount_mismatch"
	KindSubmissionFailed   Kind = "order_submission_failed"
	KindSubmissionTimeout  Kind = "order_submission_timeout"
	KindInvariantViolation Kind = "invariant_violation"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrUnprocessable  = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}

	// ErrEmptyCart blocks submission of a cart with no lines.
	ErrEmptyCart = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindEmptyCart,
		Message: "Add items to the cart before submitting",
	}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewInvalidAmountError rejects a monetary amount that is not a finite,
// non-negative number.
func NewInvalidAmountError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindInvalidAmount,
		Message: message,
	}
}

// NewInvalidQuantityError rejects a non-positive or non-finite quantity.
func NewInvalidQuantityError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindInvalidQuantity,
		Message: message,
	}
}

// NewInvalidTenderedError rejects a tendered amount that is negative or not
// a finite number, regardless of payment method.
func NewInvalidTenderedError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindInvalidTendered,
		Message: message,
	}
}

// NewAmountMismatchError rejects a non-cash payment whose tendered amount
// does not equal the amount due exactly.
func NewAmountMismatchError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindAmountMismatch,
		Message: message,
	}
}

// NewSubmissionFailedError wraps an HTTP-level or decode failure from the
// upstream order API. The raw body stays in the error for the log channel;
// handlers show users only the message.
func NewSubmissionFailedError(httpStatus int, rawBody string) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Kind:    KindSubmissionFailed,
		Message: fmt.Sprintf("Order submission failed (upstream status %d)", httpStatus),
		Errors:  []FieldError{{Field: "raw_body", Message: rawBody}},
	}
}

// NewSubmissionTimeoutError flags a submission that did not complete within
// the deadline. The order may still have been created upstream, so the
// message warns against a blind retry.
func NewSubmissionTimeoutError() *AppError {
	return &AppError{
		Code:    http.StatusGatewayTimeout,
		Kind:    KindSubmissionTimeout,
		Message: "Order submission is still processing; check before retrying",
	}
}

// NewInvariantViolationError marks a programmer error. It is logged, never
// rendered to end users in detail.
func NewInvariantViolationError(message string) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInvariantViolation,
		Message: message,
	}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
