package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/wired/core/health"
	"github.com/dmitrymomot/wired/core/pipeline"
	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/transport"
)

type handler = pipeline.Handler[*scope.HTTPContext]

func serve(h handler, method string) *httptest.ResponseRecorder {
	router := pipeline.New(scope.NewGlobal(), []handler{h})
	rec := httptest.NewRecorder()
	transport.NewHandler(router, transport.DefaultConfig()).ServeHTTP(rec, httptest.NewRequest(method, "/", nil))
	return rec
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	rec := serve(health.Liveness[*scope.HTTPContext], http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())
}

func TestNoContent(t *testing.T) {
	t.Parallel()

	rec := serve(health.NoContent[*scope.HTTPContext], http.MethodGet)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	healthy := func(context.Context) error { return nil }
	failing := func(context.Context) error { return errors.New("db down") }

	tests := []struct {
		name   string
		checks []func(context.Context) error
		want   int
	}{
		{name: "no checks", want: http.StatusOK},
		{name: "all healthy", checks: []func(context.Context) error{healthy, healthy}, want: http.StatusOK},
		{name: "one failing", checks: []func(context.Context) error{healthy, failing}, want: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := serve(health.Readiness[*scope.HTTPContext](nil, tt.checks...), http.MethodGet)
			assert.Equal(t, tt.want, rec.Code)
			assert.NotContains(t, rec.Body.String(), "db down")
		})
	}
}
