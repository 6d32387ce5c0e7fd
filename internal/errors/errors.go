package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidUsername is returned when a username fails validation.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrInvalidPassword is returned when a password fails validation.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when registering an already used username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrAdminNotFound is returned when an assignment targets an unknown admin.
	ErrAdminNotFound = errors.New("admin not found")
	// ErrAssignmentNotFound is returned when an assignment id does not exist.
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidUsername), errors.Is(err, ErrInvalidPassword):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrAdminNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ADMIN_NOT_FOUND")
	case errors.Is(err, ErrAssignmentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ASSIGNMENT_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
