package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wired/core/scope"
)

func TestBuildersReportMissingField(t *testing.T) {
	t.Parallel()

	g := scope.NewGlobal()
	s := g.NewSession()

	tests := []struct {
		name    string
		build   func() error
		context string
		field   string
	}{
		{
			name: "sessionless without global",
			build: func() error {
				_, err := scope.NewSessionlessBuilder().WithRequest(scope.NewRequest()).Build(nil)
				return err
			},
			context: "SessionlessContext",
			field:   "global",
		},
		{
			name: "sessionless without request",
			build: func() error {
				_, err := scope.NewSessionlessBuilder().Build(g)
				return err
			},
			context: "SessionlessContext",
			field:   "request",
		},
		{
			name: "http without session",
			build: func() error {
				_, err := scope.NewHTTPBuilder().WithRequest(scope.NewRequest()).Build(g)
				return err
			},
			context: "HTTPContext",
			field:   "session",
		},
		{
			name: "websocket without connection",
			build: func() error {
				_, err := scope.NewWebSocketBuilder().
					WithSession(s).
					WithRequest(scope.NewRequest()).
					Build(g)
				return err
			},
			context: "WebSocketContext",
			field:   "connection",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.build()
			require.ErrorIs(t, err, scope.ErrMissingField)

			var mf *scope.MissingFieldError
			require.ErrorAs(t, err, &mf)
			assert.Equal(t, tt.context, mf.Context)
			assert.Equal(t, tt.field, mf.Field)
		})
	}
}

func TestCarryForward(t *testing.T) {
	t.Parallel()

	g := scope.NewGlobal()
	req := scope.NewRequest()

	sessionless, err := scope.NewSessionlessBuilder().WithRequest(req).Build(g)
	require.NoError(t, err)
	assert.Same(t, g, sessionless.GlobalScope())

	// request scope carried, session still missing
	_, err = scope.NewHTTPBuilder().FromSessionless(sessionless).Build(g)
	require.ErrorIs(t, err, scope.ErrMissingField)

	s := g.NewSession()
	httpCtx, err := scope.NewHTTPBuilder().FromSessionless(sessionless).WithSession(s).Build(g)
	require.NoError(t, err)
	assert.Same(t, req, httpCtx.RequestScope())
	assert.Same(t, s, httpCtx.SessionScope())

	conn := scope.NewConnection(s)
	msgReq := scope.NewRequest()
	wsCtx, err := scope.NewWebSocketBuilder().
		FromHTTP(httpCtx).
		WithConnection(conn).
		WithRequest(msgReq).
		Build(g)
	require.NoError(t, err)
	assert.Same(t, s, wsCtx.SessionScope())
	assert.Same(t, conn, wsCtx.ConnectionScope())
	assert.Same(t, msgReq, wsCtx.RequestScope())
	assert.Same(t, g, wsCtx.GlobalScope())
}

func TestContextShapesSatisfyAccessors(t *testing.T) {
	t.Parallel()

	var (
		_ scope.RequestScoped    = (*scope.SessionlessContext)(nil)
		_ scope.SessionScoped    = (*scope.HTTPContext)(nil)
		_ scope.RequestScoped    = (*scope.HTTPContext)(nil)
		_ scope.ConnectionScoped = (*scope.WebSocketContext)(nil)
		_ scope.SessionScoped    = (*scope.WebSocketContext)(nil)
		_ scope.GlobalScoped     = (*scope.WebSocketContext)(nil)
	)
}
