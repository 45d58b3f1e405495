package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/model"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/auth"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/gamedata"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/score"
)

// Envelope is the body of every error response. Status is "fail" for client
// errors and "error" for server faults.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const (
	StatusFail  = "fail"
	StatusError = "error"
)

// httpError combines an HTTP status code with a response message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)

	envelope := Envelope{Status: StatusFail, Message: he.message}
	if he.status >= http.StatusInternalServerError {
		envelope.Status = StatusError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(envelope)
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Validation
	case errors.Is(err, model.ErrInvalidCategory),
		errors.Is(err, model.ErrNegativeScore),
		errors.Is(err, model.ErrScoreOutOfRange),
		errors.Is(err, model.ErrUsernameExists),
		errors.Is(err, model.ErrEmailExists),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrInvalidUsername),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, score.ErrInvalidUsername),
		errors.Is(err, score.ErrMissingDeviceID):
		return &httpError{http.StatusBadRequest, err.Error()}

	// Authentication
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, err.Error()}
	case errors.Is(err, auth.ErrAccountDisabled):
		return &httpError{http.StatusForbidden, err.Error()}
	case errors.Is(err, score.ErrBadGuestToken):
		return &httpError{http.StatusForbidden, err.Error()}

	// Lookups
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, "user not found"}
	case errors.Is(err, model.ErrScoreNotFound):
		return &httpError{http.StatusNotFound, "score not found"}

	// Upstream
	case errors.Is(err, gamedata.ErrUpstreamUnavailable):
		return &httpError{http.StatusBadGateway, err.Error()}

	// Unexpected errors never leak their details to clients
	default:
		return &httpError{http.StatusInternalServerError, "internal server error"}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, "authentication required"}
}

// NewTooManyRequestsError creates a rate limit error
func NewTooManyRequestsError() error {
	return &httpError{http.StatusTooManyRequests, "Too many requests from this IP, please try again later."}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "internal server error"}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message string) error {
	return &httpError{http.StatusNotFound, message}
}
