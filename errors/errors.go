package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// Transport
	ErrConnectionInProgress = fmt.Errorf("connection already in progress")
	ErrConnectTimeout       = fmt.Errorf("connection timeout")
	ErrConnectionFailed     = fmt.Errorf("connection failed")

	// Frames
	ErrMalformedFrame = fmt.Errorf("malformed frame")
	ErrInvalidPayload = fmt.Errorf("invalid payload")

	// Session
	ErrNoTokens             = fmt.Errorf("no authentication tokens available")
	ErrRefreshFailed        = fmt.Errorf("token refresh failed")
	ErrAuthenticationFailed = fmt.Errorf("authentication failed, please login again")
	ErrInvalidCredentials   = fmt.Errorf("invalid credentials")
	ErrRegistrationFailed   = fmt.Errorf("registration failed")
	ErrNoProfile            = fmt.Errorf("no stored user profile")
	ErrInvalidRequest       = fmt.Errorf("invalid request")
	ErrInvalidPassword      = fmt.Errorf("password must contain at least one uppercase letter, one lowercase letter, and one number")

	// Chat
	ErrMessageEmpty = fmt.Errorf("message content cannot be empty")
	ErrNoRoom       = fmt.Errorf("no room joined")
)

// APIError is returned by REST calls answering with a non-2xx status.
// Message carries the server-provided message when there is one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError builds an APIError, falling back to a generic message
// when the server did not provide one.
func NewAPIError(statusCode int, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("HTTP error! status: %d", statusCode)
	}
	return &APIError{StatusCode: statusCode, Message: message}
}

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

// AsAPIError unwraps err into an APIError when it carries one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
