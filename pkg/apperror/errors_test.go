package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("SUB_001", "Subscription not found", http.StatusNotFound),
			expected: "[SUB_001] Subscription not found",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("SUB_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestSecurityErrors(t *testing.T) {
	inner := fmt.Errorf("no valid signature")

	sigErr := ErrInvalidSignature(inner)
	assert.Equal(t, "SEC_001", sigErr.Code)
	assert.Equal(t, http.StatusBadRequest, sigErr.HTTPStatus)
	assert.True(t, errors.Is(sigErr, inner))

	payloadErr := ErrMalformedPayload(inner)
	assert.Equal(t, "SEC_002", payloadErr.Code)
	assert.Equal(t, http.StatusBadRequest, payloadErr.HTTPStatus)
}

func TestSubscriptionErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"SubscriptionNotFound", ErrSubscriptionNotFound(), "SUB_001", 404},
		{"InvalidTransition", ErrInvalidTransition("canceled", "active"), "SUB_002", 409},
		{"GatewayFailure", ErrGatewayFailure(fmt.Errorf("boom")), "SUB_003", 502},
		{"GatewayNotFound", ErrGatewayNotFound(fmt.Errorf("resource_missing")), "SUB_004", 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestInvalidTransition_Message(t *testing.T) {
	err := ErrInvalidTransition("canceled", "paused")
	assert.Contains(t, err.Message, "canceled")
	assert.Contains(t, err.Message, "paused")
}

func TestAuthErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidToken", ErrInvalidToken(), "AUTH_001", 401},
		{"InvalidOperatorKey", ErrInvalidOperatorKey(), "AUTH_002", 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	dbErr := ErrDatabaseError(inner)
	assert.Equal(t, "SYS_001", dbErr.Code)
	assert.Equal(t, 500, dbErr.HTTPStatus)
	assert.True(t, errors.Is(dbErr, inner))

	valErr := Validation("missing field")
	assert.Equal(t, "SYS_002", valErr.Code)
	assert.Equal(t, 400, valErr.HTTPStatus)
}

func TestEventErrors(t *testing.T) {
	valErr := ErrEventValidation("external id is required")
	assert.Equal(t, "EVT_001", valErr.Code)
	assert.Equal(t, 422, valErr.HTTPStatus)
}
