package failure_test

import (
	"errors"
	"fmt"
	"garagebook/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("scheduled_at is required")), code: http.StatusBadRequest, message: "scheduled_at is required"},
		{name: "bad request from string", err: failure.BadRequestFromString("bad body"), code: http.StatusBadRequest, message: "bad body"},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, message: "token expired"},
		{name: "internal", err: failure.InternalError(errors.New("db down")), code: http.StatusInternalServerError, message: "db down"},
		{name: "not found", err: failure.NotFound("booking not found"), code: http.StatusNotFound, message: "booking not found"},
		{name: "conflict", err: failure.Conflict("email already registered"), code: http.StatusConflict, message: "email already registered"},
		{name: "forbidden", err: failure.Forbidden("garage only"), code: http.StatusForbidden, message: "garage only"},
		{name: "dashboard key", err: failure.InvalidDashboardKey, code: http.StatusUnauthorized, message: "invalid dashboard key"},
		{name: "payload too large", err: failure.PayloadTooLarge, code: http.StatusRequestEntityTooLarge, message: "request body too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestNilErrorsStayNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("loading booking: %w", failure.NotFound("booking not found"))

	assert.Equal(t, http.StatusNotFound, failure.GetCode(wrapped))
	assert.True(t, failure.IsNotFound(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.False(t, failure.IsNotFound(errors.New("plain")))
}
