package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/wired/core/body"
	"github.com/dmitrymomot/wired/core/broadcast"
	"github.com/dmitrymomot/wired/core/logger"
	"github.com/dmitrymomot/wired/core/message"
	"github.com/dmitrymomot/wired/core/pipeline"
	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/store"
)

// ConnectionHook is called when a connection joins or leaves its session.
type ConnectionHook func(ctx context.Context, session *scope.Session, conn *scope.Connection)

// WebSocket upgrades HTTP requests and drives one receive loop per connection.
// Every received data frame is run through the websocket router as its own
// unit of work; frames of one connection are handled strictly in order.
type WebSocket struct {
	router       *pipeline.Router[*scope.WebSocketContext]
	upgrader     *websocket.Upgrader
	header       http.Header
	readLimit    int64
	writeTimeout time.Duration
	logger       *slog.Logger
	onConnect    ConnectionHook
	onDisconnect ConnectionHook

	base   context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// WebSocketOption configures a WebSocket.
type WebSocketOption func(*WebSocket)

func WithWSReadBuffer(size int) WebSocketOption {
	return func(ws *WebSocket) {
		ws.upgrader.ReadBufferSize = size
	}
}

func WithWSWriteBuffer(size int) WebSocketOption {
	return func(ws *WebSocket) {
		ws.upgrader.WriteBufferSize = size
	}
}

func WithWSHandshakeTimeout(timeout time.Duration) WebSocketOption {
	return func(ws *WebSocket) {
		ws.upgrader.HandshakeTimeout = timeout
	}
}

func WithWSOriginCheck(fn func(r *http.Request) bool) WebSocketOption {
	return func(ws *WebSocket) {
		ws.upgrader.CheckOrigin = fn
	}
}

func WithWSAllowAnyOrigin() WebSocketOption {
	return func(ws *WebSocket) {
		ws.upgrader.CheckOrigin = func(*http.Request) bool {
			return true
		}
	}
}

func WithWSSubprotocols(protocols ...string) WebSocketOption {
	return func(ws *WebSocket) {
		ws.upgrader.Subprotocols = protocols
	}
}

func WithWSUpgradeHeaders(header http.Header) WebSocketOption {
	return func(ws *WebSocket) {
		ws.header = header
	}
}

func WithWSOnConnect(fn ConnectionHook) WebSocketOption {
	return func(ws *WebSocket) {
		ws.onConnect = fn
	}
}

func WithWSOnDisconnect(fn ConnectionHook) WebSocketOption {
	return func(ws *WebSocket) {
		ws.onDisconnect = fn
	}
}

func WithWSLogger(l *slog.Logger) WebSocketOption {
	return func(ws *WebSocket) {
		if l != nil {
			ws.logger = l
		}
	}
}

// NewWebSocket creates the websocket collaborator for router.
func NewWebSocket(router *pipeline.Router[*scope.WebSocketContext], cfg Config, opts ...WebSocketOption) *WebSocket {
	cfg = cfg.withDefaults()
	base, cancel := context.WithCancel(context.Background())
	ws := &WebSocket{
		router: router,
		upgrader: &websocket.Upgrader{
			ReadBufferSize:   cfg.WSReadBufferSize,
			WriteBufferSize:  cfg.WSWriteBufferSize,
			HandshakeTimeout: cfg.WSHandshakeTimeout,
		},
		readLimit:    cfg.WSReadLimit,
		writeTimeout: cfg.WSWriteTimeout,
		logger:       logger.Nop(),
		base:         base,
		cancel:       cancel,
	}
	if cfg.WSAllowAnyOrigin {
		WithWSAllowAnyOrigin()(ws)
	}
	for _, opt := range opts {
		opt(ws)
	}
	return ws
}

// Upgrade returns an HTTP handler that takes over the connection. On success
// the connection is registered in the session, its receive loop is started in
// the background, and the HTTP pipeline ends.
func (ws *WebSocket) Upgrade() pipeline.Handler[*scope.HTTPContext] {
	return func(ctx context.Context, c *scope.HTTPContext) (pipeline.Outcome, error) {
		ex, ok := store.GetCloned[exchange](c.RequestScope())
		if !ok || !websocket.IsWebSocketUpgrade(ex.r) {
			return pipeline.Break, ErrUpgradeRequired
		}

		conn, err := ws.upgrader.Upgrade(ex.w, ex.r, ws.header)
		// the upgrader has replied either way
		store.Insert(c.RequestScope(), upgraded{})
		if err != nil {
			ws.logger.DebugContext(ctx, "websocket upgrade failed", logger.Component("transport"), logger.Error(err))
			return pipeline.Break, nil
		}

		ws.mu.Lock()
		if ws.closed {
			ws.mu.Unlock()
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(time.Second))
			_ = conn.Close()
			return pipeline.Break, nil
		}
		ws.wg.Add(1)
		ws.mu.Unlock()

		session := c.SessionScope()
		cs := scope.NewConnection(session)
		s := newSink(conn, ws.writeTimeout)
		broadcast.Attach(cs, s)
		session.RegisterConnection(cs)

		go ws.receive(session, cs, conn, s)
		return pipeline.Break, nil
	}
}

// Close stops every receive loop and waits for them to finish.
func (ws *WebSocket) Close() {
	ws.mu.Lock()
	ws.closed = true
	ws.mu.Unlock()
	ws.cancel()
	ws.wg.Wait()
}

func (ws *WebSocket) receive(session *scope.Session, cs *scope.Connection, conn *websocket.Conn, s *sink) {
	defer ws.wg.Done()

	ctx, cancel := context.WithCancel(ws.base)
	defer cancel()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	log := ws.logger.With(
		logger.Component("transport"),
		logger.SessionID(session.ID()),
		logger.ConnectionID(cs.ID()),
	)

	// the http.Server read timeout must not apply to a long-lived connection
	_ = conn.SetReadDeadline(time.Time{})
	if ws.readLimit > 0 {
		conn.SetReadLimit(ws.readLimit)
	}
	if ws.onConnect != nil {
		ws.onConnect(ctx, session, cs)
	}

	defer func() {
		// closing the sink first keeps concurrent broadcasts from failing hard
		s.close()
		session.DeregisterConnection(cs.ID())
		_ = conn.Close()
		if ws.onDisconnect != nil {
			ws.onDisconnect(context.WithoutCancel(ctx), session, cs)
		}
		log.DebugContext(ctx, "receive loop stopped")
	}()

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WarnContext(ctx, "connection closed unexpectedly", logger.Error(err))
			}
			return
		}

		m := message.Message{Type: message.Type(mt), Data: data}
		_, err = pipeline.HandleConnection(ctx, ws.router, session, cs, func(_ context.Context, c *scope.WebSocketContext) (pipeline.Outcome, error) {
			body.SeedMessage(c.RequestScope(), m)
			return pipeline.Continue, nil
		})
		if err != nil {
			log.WarnContext(ctx, "message handling failed", logger.Key("type", m.Type.String()), logger.Error(err))
		}
	}
}

// sink writes to a gorilla connection. Writes are serialised by the
// connection scope, which gorilla requires.
type sink struct {
	conn    *websocket.Conn
	timeout time.Duration
	closed  atomic.Bool
}

func newSink(conn *websocket.Conn, timeout time.Duration) *sink {
	return &sink{conn: conn, timeout: timeout}
}

// Send implements broadcast.Sink.
func (s *sink) Send(ctx context.Context, m message.Message) error {
	if s.closed.Load() {
		return broadcast.ErrAlreadyClosed
	}

	var deadline time.Time
	if s.timeout > 0 {
		deadline = time.Now().Add(s.timeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}

	var err error
	if m.Type.IsData() {
		if err = s.conn.SetWriteDeadline(deadline); err == nil {
			err = s.conn.WriteMessage(int(m.Type), m.Data)
		}
	} else {
		err = s.conn.WriteControl(int(m.Type), m.Data, deadline)
	}
	if err != nil {
		return sinkError(err)
	}
	if m.Type == message.Close {
		s.closed.Store(true)
	}
	return nil
}

func (s *sink) close() {
	s.closed.Store(true)
}

func sinkError(err error) error {
	switch {
	case errors.Is(err, websocket.ErrCloseSent), errors.Is(err, net.ErrClosed):
		return fmt.Errorf("%w: %w", broadcast.ErrAlreadyClosed, err)
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
		return fmt.Errorf("%w: %w", broadcast.ErrConnectionClosed, err)
	default:
		return err
	}
}
