package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Webhook Security (SEC) ----

// ErrInvalidSignature rejects a delivery whose signature does not verify.
// Responds 400 so the sender treats the delivery as permanently rejected;
// nothing is persisted for an unverifiable payload.
func ErrInvalidSignature(err error) *AppError {
	return Wrap("SEC_001", "Invalid webhook signature", http.StatusBadRequest, err)
}

func ErrMalformedPayload(err error) *AppError {
	return Wrap("SEC_002", "Malformed webhook payload", http.StatusBadRequest, err)
}

// ---- Event Processing (EVT) ----

func ErrEventValidation(message string) *AppError {
	return New("EVT_001", message, http.StatusUnprocessableEntity)
}

// ---- Subscription Lifecycle (SUB) ----

func ErrSubscriptionNotFound() *AppError {
	return New("SUB_001", "Subscription not found", http.StatusNotFound)
}

func ErrInvalidTransition(from, to string) *AppError {
	return New("SUB_002", fmt.Sprintf("Illegal transition from %s to %s", from, to), http.StatusConflict)
}

func ErrGatewayFailure(err error) *AppError {
	return Wrap("SUB_003", "Payment gateway call failed", http.StatusBadGateway, err)
}

func ErrGatewayNotFound(err error) *AppError {
	return Wrap("SUB_004", "Resource not found at payment gateway", http.StatusNotFound, err)
}

// ---- Operator Auth (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrInvalidOperatorKey() *AppError {
	return New("AUTH_002", "Invalid operator key", http.StatusUnauthorized)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("SYS_002", message, http.StatusBadRequest)
}

// HasCode reports whether err carries an AppError with the given code
// anywhere in its chain.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
