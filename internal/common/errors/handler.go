// internal/common/errors/handler.go
package errors

import (
	"context"
	"strings"
)

// LoginPath is where the view layer sends users whose credential was rejected.
const LoginPath = "/login"

// ErrorHandler turns facade errors into what the view layer shows next.
type ErrorHandler struct {
	logger   Logger
	sessions SessionClearer
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

// SessionClearer is the part of the session store the handler needs.
type SessionClearer interface {
	Clear(ctx context.Context) error
}

// Resolution describes how a view should react to a failed operation.
type Resolution struct {
	Err            error
	Message        string
	Fields         []FieldError
	RedirectTo     string
	SessionCleared bool
}

func NewErrorHandler(logger Logger, sessions SessionClearer) *ErrorHandler {
	return &ErrorHandler{logger: logger, sessions: sessions}
}

// Resolve classifies err. A 401 means the stored credential is no longer
// accepted, so the session is destroyed and the user is sent to login.
func (h *ErrorHandler) Resolve(ctx context.Context, operation string, err error) Resolution {
	if err == nil {
		return Resolution{}
	}

	res := Resolution{Err: err, Message: err.Error()}
	code := CodeOf(err)

	if vErr, ok := AsValidationError(err); ok {
		res.Message = vErr.Message
		res.Fields = vErr.Fields
		h.logWarn(operation, code, err)
		return res
	}

	apiErr, ok := AsAPIError(err)
	if !ok {
		h.logError(operation, code, err)
		return res
	}

	res.Message = apiErr.Message
	switch {
	case apiErr.IsNetwork():
		res.Message = NetworkErrorMessage
	case apiErr.IsUnauthorized():
		res.RedirectTo = LoginPath
		if h.sessions != nil {
			if clearErr := h.sessions.Clear(ctx); clearErr != nil {
				h.logError(operation, ErrCodeSessionStoreFailed, clearErr)
			} else {
				res.SessionCleared = true
			}
		}
	}

	h.logError(operation, code, err)
	return res
}

// Display renders a resolution as a single line for terminal output.
func (r Resolution) Display() string {
	if len(r.Fields) == 0 {
		return r.Message
	}
	parts := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return r.Message + " (" + strings.Join(parts, "; ") + ")"
}

func (h *ErrorHandler) logError(operation string, code ErrorCode, err error) {
	if h.logger == nil {
		return
	}
	h.logger.Error("Operation failed", h.fields(operation, code, err))
}

func (h *ErrorHandler) logWarn(operation string, code ErrorCode, err error) {
	if h.logger == nil {
		return
	}
	h.logger.Warn("Operation rejected", h.fields(operation, code, err))
}

func (h *ErrorHandler) fields(operation string, code ErrorCode, err error) map[string]interface{} {
	f := map[string]interface{}{
		"operation":     operation,
		"errorCode":     string(code),
		"errorCategory": GetErrorCategory(code),
		"error":         err.Error(),
	}
	if apiErr, ok := AsAPIError(err); ok {
		f["status"] = apiErr.Status
	}
	return f
}
