package transport_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/wired/core/binder"
	"github.com/dmitrymomot/wired/core/body"
	"github.com/dmitrymomot/wired/core/broadcast"
	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/transport"
)

func TestErrorFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "transport error", err: transport.ErrForbidden, wantStatus: http.StatusForbidden, wantCode: "forbidden"},
		{name: "wrapped transport error", err: fmt.Errorf("auth: %w", transport.ErrUnauthorized), wantStatus: http.StatusUnauthorized, wantCode: "unauthorized"},
		{name: "json", err: fmt.Errorf("%w: eof", binder.ErrFailedToParseJSON), wantStatus: http.StatusBadRequest, wantCode: "bad_request"},
		{name: "query", err: binder.ErrFailedToParseQuery, wantStatus: http.StatusBadRequest, wantCode: "bad_request"},
		{name: "too large", err: binder.ErrPayloadTooLarge, wantStatus: http.StatusRequestEntityTooLarge, wantCode: "request_too_large"},
		{name: "max bytes", err: &http.MaxBytesError{Limit: 1}, wantStatus: http.StatusRequestEntityTooLarge, wantCode: "request_too_large"},
		{name: "media type", err: binder.ErrUnsupportedMediaType, wantStatus: http.StatusUnsupportedMediaType, wantCode: "unsupported_media_type"},
		{name: "control frame", err: body.ErrInvalidMessageType, wantStatus: http.StatusBadRequest, wantCode: "bad_request"},
		{name: "no body", err: body.ErrNoBody, wantStatus: http.StatusBadRequest, wantCode: "bad_request"},
		{name: "already parsed", err: body.ErrAlreadyParsed, wantStatus: http.StatusInternalServerError, wantCode: "internal_server_error"},
		{name: "missing field", err: scope.ErrMissingField, wantStatus: http.StatusInternalServerError, wantCode: "internal_server_error"},
		{
			name:       "batch",
			err:        &broadcast.BatchSendError{SuccessCount: 1, Attempted: 2, Failures: []broadcast.SendError{{Err: errors.New("x")}}},
			wantStatus: http.StatusBadGateway,
			wantCode:   "bad_gateway",
		},
		{name: "unknown", err: errors.New("db exploded"), wantStatus: http.StatusInternalServerError, wantCode: "internal_server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := transport.ErrorFrom(tt.err)
			assert.Equal(t, tt.wantStatus, e.StatusCode())
			assert.Equal(t, tt.wantCode, e.Code)
		})
	}
}

func TestErrorFromHidesInternals(t *testing.T) {
	t.Parallel()

	e := transport.ErrorFrom(errors.New("password=hunter2"))
	assert.NotContains(t, e.Message, "hunter2")
	assert.Empty(t, e.Details)
}

func TestErrorBuilders(t *testing.T) {
	t.Parallel()

	base := transport.ErrBadRequest
	e := base.WithMessage("bad name").
		WithDetails(map[string]any{"field": "name"}).
		WithError(errors.New("too short"))

	assert.Equal(t, "bad name", e.Error())
	assert.Equal(t, map[string]any{"field": "name", "cause": "too short"}, e.Details)
	assert.Equal(t, "Bad Request", base.Message, "builders must not mutate the original")
	assert.Nil(t, base.Details)
}
