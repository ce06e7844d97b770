package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"active-teams-api/logger"

	"github.com/sirupsen/logrus"
)

// Sentinel errors for the auth and session layer. Services return these and
// handlers translate them to a status code with ToAppError, so the mapping
// lives in exactly one place.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and contain letters and digits")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrRoleMissing        = errors.New("role not present in token")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrRefreshInvalid     = errors.New("invalid refresh token")
	ErrInvalidRole        = errors.New("invalid role")
	ErrNotFound           = errors.New("not found")
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ToAppError maps a service error onto a response status. Anything outside
// the known taxonomy becomes a 500 with a generic message so internal
// detail never reaches the client.
func ToAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrWeakPassword), errors.Is(err, ErrInvalidRole):
		return NewAppError(http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrRefreshInvalid):
		return NewAppError(http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, ErrRoleMissing), errors.Is(err, ErrForbidden):
		return NewAppError(http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, err.Error(), nil)
	default:
		return NewAppError(http.StatusInternalServerError, "An unexpected error occurred", err)
	}
}

func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(e)
}
