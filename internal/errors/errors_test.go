package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/srkarthi1982/guess-the-emoji/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_StatusPerKind(t *testing.T) {
	tests := []struct {
		name   string
		err    *errors.AppError
		code   string
		status int
	}{
		{"unauthenticated", errors.NewUnauthenticatedError("missing token"), errors.ErrCodeUnauthenticated, http.StatusUnauthorized},
		{"forbidden", errors.NewForbiddenError("not yours"), errors.ErrCodeForbidden, http.StatusForbidden},
		{"not found", errors.NewNotFoundError("puzzle", "abc"), errors.ErrCodeNotFound, http.StatusNotFound},
		{"invalid request", errors.NewInvalidRequestError("no fields"), errors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{"validation", errors.NewValidationError("mode", "bad"), errors.ErrCodeValidation, http.StatusBadRequest},
		{"internal", errors.NewInternalError(fmt.Errorf("disk")), errors.ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
		})
	}
}

func TestCode_UnwrapsChain(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", errors.NewNotFoundError("session", "s1"))
	assert.Equal(t, errors.ErrCodeNotFound, errors.Code(wrapped))
	assert.Equal(t, errors.ErrCodeInternal, errors.Code(fmt.Errorf("plain")))
}

func TestIsInvalidRequest(t *testing.T) {
	assert.True(t, errors.IsInvalidRequest(errors.NewInvalidRequestError("x")))
	assert.True(t, errors.IsInvalidRequest(errors.NewValidationError("f", "r")))
	assert.True(t, errors.IsInvalidRequest(errors.NewBadRequestError("x")))
	assert.False(t, errors.IsInvalidRequest(errors.NewForbiddenError("x")))
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("db closed")
	err := errors.NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "db closed")
}
