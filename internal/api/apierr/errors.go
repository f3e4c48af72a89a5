package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/playeradmin/internal/model"
	"github.com/mcoot/playeradmin/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidPlayer    = "INVALID_PLAYER"
	CodeInvalidFilter    = "INVALID_FILTER"
	CodeInvalidPlayerID  = "INVALID_PLAYER_ID"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayer, "Invalid value for field " + vErr.Field}}
	}
	var pErr *model.ParseError
	if errors.As(err, &pErr) {
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidFilter, pErr.Error()}}
	}

	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrInvalidPlayerID):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayerID, "Player id must be a positive integer"}}
	case errors.Is(err, model.ErrInvalidPlayer):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayer, "Invalid player"}}
	case errors.Is(err, model.ErrInvalidFilter):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidFilter, err.Error()}}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid admin credentials"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewMethodNotAllowedError creates an error for a known path hit with an unsupported method
func NewMethodNotAllowedError(method string) error {
	return &httpError{http.StatusMethodNotAllowed, APIError{CodeMethodNotAllowed, "Method " + method + " not allowed"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
