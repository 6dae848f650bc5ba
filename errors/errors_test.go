package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ValidationError, "invalid input", "field required")
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "field required", err.Detail)
	assert.Equal(t, 400, err.HTTPStatus)
}

func TestValidationFailed(t *testing.T) {
	err := ValidationFailed("Invalid email", "format not correct")
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, "Invalid email", err.Message)
	assert.Equal(t, "format not correct", err.Detail)
	assert.Equal(t, 400, err.HTTPStatus)
}

func TestEmailDeliveryFailed(t *testing.T) {
	raw := fmt.Errorf("resend: 503")
	err := EmailDeliveryFailed(raw)
	assert.Equal(t, DeliveryError, err.Type)
	assert.Equal(t, "Email delivery failed", err.Message)
	assert.Equal(t, 502, err.HTTPStatus)
	assert.Equal(t, raw, err.Raw)
	assert.ErrorIs(t, err, raw)
}

func TestErrorString(t *testing.T) {
	err := New(ServerError, "boom", "")
	assert.Equal(t, "SERVER_ERROR: boom", err.Error())

	err = New(ServerError, "boom", "with detail")
	assert.Equal(t, "SERVER_ERROR: boom (with detail)", err.Error())
}

func TestGetHTTPStatusFallback(t *testing.T) {
	err := &AppError{Type: DeliveryError, Message: "x"}
	assert.Equal(t, 502, err.GetHTTPStatus())
}
