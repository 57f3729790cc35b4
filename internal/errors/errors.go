package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Kind classifies a domain error and decides its HTTP status.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindUnauthenticated
	KindForbidden
	KindConflict
)

// Error is a domain error whose message is safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// New creates a new Error
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error       { return New(KindValidation, message) }
func NotFound(message string) *Error         { return New(KindNotFound, message) }
func Unauthenticated(message string) *Error  { return New(KindUnauthenticated, message) }
func PermissionDenied(message string) *Error { return New(KindForbidden, message) }
func Conflict(message string) *Error         { return New(KindConflict, message) }

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// StatusCode maps a kind onto the HTTP status used by the API. Missing
// references and conflicts are reported as 400.
func StatusCode(kind Kind) int {
	switch kind {
	case KindValidation, KindNotFound, KindConflict:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message to show for err. Unexpected errors are
// replaced by a generic text.
func PublicMessage(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is the body of every successful API call.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Respond writes err as an API error response. Unexpected errors are logged
// and answered with an opaque message.
func Respond(c *gin.Context, err error) {
	kind := KindOf(err)
	if kind == KindUnexpected {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("unexpected error")
	}
	RespondWithError(c, StatusCode(kind), PublicMessage(err))
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// Success sends a 200 response
func Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message, Data: data})
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication credentials were not provided or are invalid"
	}
	RespondWithError(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, message)
}
