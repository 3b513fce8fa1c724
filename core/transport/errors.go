package transport

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/wired/core/binder"
	"github.com/dmitrymomot/wired/core/body"
	"github.com/dmitrymomot/wired/core/broadcast"
)

// Error is an error that carries the HTTP reply it should produce.
type Error struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e Error) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for the error.
func (e Error) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy of the error with a custom message.
func (e Error) WithMessage(message string) Error {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e Error) WithDetails(details map[string]any) Error {
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	e.Details = merged
	return e
}

// WithError returns a copy of the error with the cause recorded in its details.
func (e Error) WithError(err error) Error {
	return e.WithDetails(map[string]any{"cause": err.Error()})
}

func newError(status int, code string) Error {
	return Error{Status: status, Code: code, Message: http.StatusText(status)}
}

// Predefined errors using http.StatusText for default messages.
var (
	ErrBadRequest           = newError(http.StatusBadRequest, "bad_request")
	ErrUnauthorized         = newError(http.StatusUnauthorized, "unauthorized")
	ErrForbidden            = newError(http.StatusForbidden, "forbidden")
	ErrNotFound             = newError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed     = newError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrRequestTooLarge      = newError(http.StatusRequestEntityTooLarge, "request_too_large")
	ErrUnsupportedMediaType = newError(http.StatusUnsupportedMediaType, "unsupported_media_type")
	ErrUpgradeRequired      = newError(http.StatusUpgradeRequired, "upgrade_required")
	ErrInternalServerError  = newError(http.StatusInternalServerError, "internal_server_error")
	ErrNotImplemented       = newError(http.StatusNotImplemented, "not_implemented")
	ErrBadGateway           = newError(http.StatusBadGateway, "bad_gateway")
	ErrServiceUnavailable   = newError(http.StatusServiceUnavailable, "service_unavailable")

	// ErrMissingResponse is reported when a run succeeds without producing a response.
	ErrMissingResponse = ErrInternalServerError.WithMessage("missing response")
)

// ErrorFrom maps err onto the HTTP error it should be reported as. Errors that
// already are an Error pass through unchanged. Anything unrecognised, including
// body.ErrAlreadyParsed and scope.ErrMissingField, becomes a bare 500.
func ErrorFrom(err error) Error {
	var e Error
	if errors.As(err, &e) {
		return e
	}
	var pe *Error
	if errors.As(err, &pe) && pe != nil {
		return *pe
	}

	var tooLarge *http.MaxBytesError
	var batch *broadcast.BatchSendError
	switch {
	case errors.As(err, &tooLarge), errors.Is(err, binder.ErrPayloadTooLarge):
		return ErrRequestTooLarge
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return ErrUnsupportedMediaType.WithMessage(err.Error())
	case binder.IsDecodeError(err):
		return ErrBadRequest.WithMessage(err.Error())
	case errors.Is(err, body.ErrInvalidMessageType), errors.Is(err, body.ErrNoBody):
		return ErrBadRequest.WithMessage(err.Error())
	case errors.As(err, &batch):
		return ErrBadGateway.WithDetails(map[string]any{
			"sent":   batch.SuccessCount,
			"failed": len(batch.Failures),
		})
	default:
		return ErrInternalServerError
	}
}
