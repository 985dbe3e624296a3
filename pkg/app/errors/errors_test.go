package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceError_StatusCode(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"bad request", BadRequestError(cause, "invalid signature"), http.StatusBadRequest},
		{"not found", ResourceNotFoundError(nil, "burn not found"), http.StatusNotFound},
		{"dependency", DependencyFailureError(cause, "Proxy error occurred"), http.StatusBadGateway},
		{"timeout", TimeoutError(cause, "Transaction confirmation timeout"), http.StatusGatewayTimeout},
		{"general", GeneralError(cause), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var svcErr *ServiceError
			if assert.True(t, errors.As(tt.err, &svcErr)) {
				assert.Equal(t, tt.status, svcErr.StatusCode())
			}
		})
	}
}

func TestServiceError_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("forward: %w", DependencyFailureError(cause, "Proxy error occurred"))

	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, CategoryDependencyFailure))
	assert.False(t, Is(err, CategoryConnectionTimeout))
	assert.True(t, IsInternalError(err))
	assert.False(t, IsInternalError(BadRequestError(nil, "bad")))
	assert.True(t, IsInternalError(cause))
	assert.Equal(t, "connection refused", err.(interface{ Unwrap() error }).Unwrap().Error())
}

func TestGeneralError_NilCause(t *testing.T) {
	err := GeneralError(nil)
	assert.Equal(t, "Internal Server Error", err.Error())
}
