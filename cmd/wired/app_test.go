package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wired/core/broadcast"
	"github.com/dmitrymomot/wired/core/logger"
	"github.com/dmitrymomot/wired/core/server"
	"github.com/dmitrymomot/wired/core/transport"
)

type testApp struct {
	srv    *httptest.Server
	client *http.Client
}

func newTestApp(t *testing.T, checks ...func(context.Context) error) *testApp {
	t.Helper()

	cfg := Config{
		AppName:        "wired-test",
		MetricsEnabled: true,
		Server:         server.DefaultConfig(),
		Transport:      transport.DefaultConfig(),
		Broadcast:      broadcast.DefaultConfig(),
	}
	reg := prometheus.NewRegistry()
	a, err := newApp(cfg, logger.Nop(), deps{checks: checks, registry: reg, gatherer: reg})
	require.NoError(t, err)

	srv := httptest.NewServer(a.handler)
	t.Cleanup(func() {
		a.ws.Close()
		srv.Close()
	})

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testApp{srv: srv, client: &http.Client{Jar: jar, Timeout: 5 * time.Second}}
}

func (a *testApp) do(t *testing.T, method, path, contentType, payload string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, a.srv.URL+path, strings.NewReader(payload))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := a.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func (a *testApp) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	dialer := websocket.Dialer{Jar: a.client.Jar, HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.Dial("ws"+strings.TrimPrefix(a.srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	return string(data)
}

func TestCounterCountsEveryRequest(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	status, _ := a.do(t, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, status)
	a.do(t, http.MethodGet, "/missing", "", "")

	status, got := a.do(t, http.MethodGet, "/counter", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"hits":3}`, got)
}

func TestSessionAccumulator(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	_, got := a.do(t, http.MethodPost, "/session", "application/json", `{"value":5}`)
	assert.JSONEq(t, `{"total":5}`, got)
	_, got = a.do(t, http.MethodPost, "/session", "application/x-www-form-urlencoded", "value=7")
	assert.JSONEq(t, `{"total":12}`, got)

	status, _ := a.do(t, http.MethodPost, "/session", "application/json", `{"value":2000000}`)
	assert.Equal(t, http.StatusBadRequest, status)
	_, got = a.do(t, http.MethodGet, "/session", "", "")
	assert.JSONEq(t, `{"total":12}`, got, "a rejected update leaves the total untouched")

	other := &testApp{srv: a.srv, client: &http.Client{Timeout: 5 * time.Second}}
	_, got = other.do(t, http.MethodGet, "/session", "", "")
	assert.JSONEq(t, `{"total":0}`, got, "a new cookie jar is a new session")

	status, _ = a.do(t, http.MethodDelete, "/session", "", "")
	assert.Equal(t, http.StatusNoContent, status)
	_, got = a.do(t, http.MethodGet, "/session", "", "")
	assert.JSONEq(t, `{"total":0}`, got)
}

func TestWebSocketCommands(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	a.do(t, http.MethodGet, "/", "", "")
	first, second := a.dial(t), a.dial(t)
	require.NoError(t, second.WriteMessage(websocket.TextMessage, []byte(`{"action":"echo","text":"ready"}`)))
	require.Equal(t, "ready", read(t, second))

	require.NoError(t, first.WriteMessage(websocket.TextMessage, []byte(`{"action":"echo","text":"hi"}`)))
	assert.Equal(t, "hi", read(t, first))

	require.NoError(t, first.WriteMessage(websocket.TextMessage, []byte(`{"action":"broadcast","text":"all"}`)))
	assert.Equal(t, "all", read(t, first))
	assert.Equal(t, "all", read(t, second))

	require.NoError(t, first.WriteMessage(websocket.TextMessage, []byte(`{"action":"nope"}`)))
	require.NoError(t, first.WriteMessage(websocket.TextMessage, []byte(`{"action":"count"}`)))
	var count map[string]int
	require.NoError(t, json.Unmarshal([]byte(read(t, first)), &count))
	assert.Equal(t, 4, count["received"], "failed messages keep the connection open and are counted")

	status, got := a.do(t, http.MethodPost, "/broadcast", "text/plain", "from http")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"sent":2}`, got)
	assert.Equal(t, "from http", read(t, first))
	assert.Equal(t, "from http", read(t, second))

	_, metrics := a.do(t, http.MethodGet, "/metrics", "", "")
	assert.Contains(t, metrics, `wired_test_broadcast_sends_total{result="success"}`)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	healthy := newTestApp(t)
	status, got := healthy.do(t, http.MethodGet, "/health/live", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ALIVE", got)
	status, got = healthy.do(t, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "READY", got)

	u, err := url.Parse(healthy.srv.URL)
	require.NoError(t, err)
	assert.Empty(t, healthy.client.Jar.Cookies(u), "health checks must not open sessions")

	failing := newTestApp(t, func(context.Context) error { return errors.New("db down") })
	status, _ = failing.do(t, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestMetricsNamespace(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "wired_test_1", metricsNamespace("wired-test.1"))
}
