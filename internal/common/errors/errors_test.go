package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================================
// ApiError
// ==========================================

func TestNewNetworkError(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	err := NewNetworkError(cause)

	assert.Equal(t, 0, err.Status)
	assert.Equal(t, "network error", err.Message)
	assert.True(t, err.IsNetwork())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrCodeNetwork, err.Code)
}

func TestInvalidRequestIsNotNetwork(t *testing.T) {
	err := NewInvalidRequestError(stderrors.New("json: unsupported type: chan int"))

	assert.Equal(t, ErrCodeInvalidRequest, err.Code)
	assert.False(t, err.IsNetwork())
	assert.False(t, IsNetworkError(fmt.Errorf("order: %w", err)))

	res := NewErrorHandler(&recordingLogger{}, nil).Resolve(context.Background(), "order", err)
	assert.Equal(t, "invalid request", res.Message)
}

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		want    string
		code    ErrorCode
	}{
		{"server message kept", 401, "Invalid credentials", "Invalid credentials", ErrCodeUnauthorized},
		{"generic message", 500, "", "request failed with status 500 (Internal Server Error)", ErrCodeAPI},
		{"unknown status", 499, " ", "request failed with status 499", ErrCodeAPI},
		{"not found", 404, "unknown endpoint", "unknown endpoint", ErrCodeNotFound},
		{"forbidden", 403, "unauthorized", "unauthorized", ErrCodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAPIError(tt.status, tt.message)
			assert.Equal(t, tt.status, err.Status)
			assert.Equal(t, tt.want, err.Message)
			assert.Equal(t, tt.code, err.Code)
			assert.False(t, err.IsNetwork())
		})
	}
}

func TestHelpersSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading menu: %w", NewAPIError(401, "unauthorized"))

	assert.True(t, IsUnauthorized(wrapped))
	assert.False(t, IsNetworkError(wrapped))
	assert.Equal(t, ErrCodeUnauthorized, CodeOf(wrapped))

	assert.True(t, IsNetworkError(NewNetworkError(nil)))
	assert.True(t, IsValidationError(NewValidationError("bad")))
	assert.Equal(t, ErrorCode(""), CodeOf(stderrors.New("plain")))
}

func TestValidationError_Error(t *testing.T) {
	err := NewValidationError("invalid login form",
		FieldError{Field: "email", Message: "is required"},
		FieldError{Field: "password", Message: "is required"},
	)
	assert.Equal(t, "ValidationError[VALIDATION_FAILED]: invalid login form (email: is required; password: is required)", err.Error())
	assert.Equal(t, "ValidationError[CHECKOUT_VALIDATION_FAILED]: order cannot be checked out", NewCheckoutError().Error())
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "NETWORK", GetErrorCategory(ErrCodeNetwork))
	assert.Equal(t, "AUTH", GetErrorCategory(ErrCodeUnauthorized))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeValidationFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidResponse))
	assert.Equal(t, "SESSION", GetErrorCategory(ErrCodeSessionStoreFailed))
	assert.Equal(t, "API", GetErrorCategory(ErrCodeAPI))
	assert.Equal(t, "OTHER", GetErrorCategory("SOMETHING"))
}

// ==========================================
// ErrorHandler
// ==========================================

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type recordingLogger struct {
	errors []string
	warns  []string
}

func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.errors = append(l.errors, msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.warns = append(l.warns, msg) }

func TestErrorHandler_UnauthorizedClearsSession(t *testing.T) {
	sessions := new(MockSessions)
	sessions.On("Clear", mock.Anything).Return(nil).Once()
	log := &recordingLogger{}

	h := NewErrorHandler(log, sessions)
	original := NewAPIError(401, "unauthorized")
	res := h.Resolve(context.Background(), "getOrders", original)

	assert.Same(t, original, res.Err)
	assert.Equal(t, "/login", res.RedirectTo)
	assert.True(t, res.SessionCleared)
	assert.Equal(t, "unauthorized", res.Message)
	assert.Len(t, log.errors, 1)
	sessions.AssertExpectations(t)
}

func TestErrorHandler_ClearFailureIsLogged(t *testing.T) {
	sessions := new(MockSessions)
	sessions.On("Clear", mock.Anything).Return(stderrors.New("disk full"))
	log := &recordingLogger{}

	res := NewErrorHandler(log, sessions).Resolve(context.Background(), "getOrders", NewAPIError(401, ""))

	assert.False(t, res.SessionCleared)
	assert.Equal(t, LoginPath, res.RedirectTo)
	assert.Len(t, log.errors, 2)
}

func TestErrorHandler_Classification(t *testing.T) {
	sessions := new(MockSessions)
	h := NewErrorHandler(&recordingLogger{}, sessions)
	ctx := context.Background()

	t.Run("network", func(t *testing.T) {
		res := h.Resolve(ctx, "getMenu", NewNetworkError(stderrors.New("timeout")))
		assert.Equal(t, "network error", res.Message)
		assert.Empty(t, res.RedirectTo)
	})

	t.Run("validation", func(t *testing.T) {
		res := h.Resolve(ctx, "login", NewValidationError("invalid login form", FieldError{Field: "email", Message: "is required"}))
		assert.Equal(t, "invalid login form (email: is required)", res.Display())
		require.Len(t, res.Fields, 1)
	})

	t.Run("server message", func(t *testing.T) {
		res := h.Resolve(ctx, "createStore", NewAPIError(403, "unable to create a store"))
		assert.Equal(t, "unable to create a store", res.Display())
		assert.False(t, res.SessionCleared)
	})

	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, Resolution{}, h.Resolve(ctx, "noop", nil))
	})

	sessions.AssertNotCalled(t, "Clear", mock.Anything)
}
