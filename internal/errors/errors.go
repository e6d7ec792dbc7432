package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"

	// Service errors
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Error kinds. Service level sentinel errors wrap exactly one of these so the
// HTTP layer can pick a status code with errors.Is.
var (
	ErrKindInvalidInput = errors.New("invalid input")
	ErrKindUnauthorized = errors.New("unauthorized")
	ErrKindForbidden    = errors.New("forbidden")
	ErrKindNotFound     = errors.New("not found")
	ErrKindConflict     = errors.New("conflict")
)

// APIError represents a standardized API error response
type APIError struct {
	OK      bool        `json:"ok"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error response and aborts the handler chain.
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	err.OK = false
	c.AbortWithStatusJSON(statusCode, err)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// InvalidCredentials sends a 401 response for a failed password check
func InvalidCredentials(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid username or password"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeInvalidCredentials, message))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// BadRequestWithDetails sends a 400 response with details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, message, details))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeConflict, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// KindError carries a user facing message and the kind used for the status
// code. Services return these so handlers never need to parse messages.
type KindError struct {
	Kind    error
	Message string
	Details interface{}
}

func (e *KindError) Error() string {
	return e.Message
}

func (e *KindError) Unwrap() error {
	return e.Kind
}

// WithKind returns an error matching kind under errors.Is.
func WithKind(kind error, message string) error {
	return &KindError{Kind: kind, Message: message}
}

// InvalidInputWithDetails returns an invalid input error with per-field details.
func InvalidInputWithDetails(message string, details interface{}) error {
	return &KindError{Kind: ErrKindInvalidInput, Message: message, Details: details}
}

// Respond writes the envelope for err. It reports false when err carries no
// known kind; the caller is then expected to log it and answer with a 500.
func Respond(c *gin.Context, err error) bool {
	message := err.Error()
	var details interface{}
	var ke *KindError
	if errors.As(err, &ke) {
		message = ke.Message
		details = ke.Details
	}

	switch {
	case errors.Is(err, ErrKindInvalidInput):
		if details != nil {
			BadRequestWithDetails(c, message, details)
		} else {
			BadRequest(c, message)
		}
	case errors.Is(err, ErrKindUnauthorized):
		Unauthorized(c, message)
	case errors.Is(err, ErrKindForbidden):
		Forbidden(c, message)
	case errors.Is(err, ErrKindNotFound):
		NotFound(c, message)
	case errors.Is(err, ErrKindConflict):
		Conflict(c, message)
	default:
		return false
	}
	return true
}
