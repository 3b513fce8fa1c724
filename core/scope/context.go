package scope

// Accessor interfaces let helpers accept any context shape that carries a given scope.
type (
	GlobalScoped interface {
		GlobalScope() *Global
	}
	SessionScoped interface {
		SessionScope() *Session
	}
	ConnectionScoped interface {
		ConnectionScope() *Connection
	}
	RequestScoped interface {
		RequestScope() *Request
	}
)

// SessionlessContext is used before a session has been resolved.
type SessionlessContext struct {
	global  *Global
	request *Request
}

func (c *SessionlessContext) GlobalScope() *Global   { return c.global }
func (c *SessionlessContext) RequestScope() *Request { return c.request }

// SessionlessBuilder assembles a SessionlessContext.
type SessionlessBuilder struct {
	request *Request
}

// NewSessionlessBuilder returns an empty builder.
func NewSessionlessBuilder() *SessionlessBuilder {
	return &SessionlessBuilder{}
}

func (b *SessionlessBuilder) WithRequest(r *Request) *SessionlessBuilder {
	b.request = r
	return b
}

// Build produces the context or a *MissingFieldError.
func (b *SessionlessBuilder) Build(g *Global) (*SessionlessContext, error) {
	if g == nil {
		return nil, missing("SessionlessContext", "global")
	}
	if b.request == nil {
		return nil, missing("SessionlessContext", "request")
	}
	return &SessionlessContext{global: g, request: b.request}, nil
}

// HTTPContext handles one HTTP request of a known session.
type HTTPContext struct {
	global  *Global
	session *Session
	request *Request
}

func (c *HTTPContext) GlobalScope() *Global   { return c.global }
func (c *HTTPContext) SessionScope() *Session { return c.session }
func (c *HTTPContext) RequestScope() *Request { return c.request }

// HTTPBuilder assembles an HTTPContext.
type HTTPBuilder struct {
	session *Session
	request *Request
}

// NewHTTPBuilder returns an empty builder.
func NewHTTPBuilder() *HTTPBuilder {
	return &HTTPBuilder{}
}

// FromSessionless carries the request scope of c forward. The session must still be supplied.
func (b *HTTPBuilder) FromSessionless(c *SessionlessContext) *HTTPBuilder {
	b.request = c.request
	return b
}

func (b *HTTPBuilder) WithSession(s *Session) *HTTPBuilder {
	b.session = s
	return b
}

func (b *HTTPBuilder) WithRequest(r *Request) *HTTPBuilder {
	b.request = r
	return b
}

// Build produces the context or a *MissingFieldError.
func (b *HTTPBuilder) Build(g *Global) (*HTTPContext, error) {
	switch {
	case g == nil:
		return nil, missing("HTTPContext", "global")
	case b.session == nil:
		return nil, missing("HTTPContext", "session")
	case b.request == nil:
		return nil, missing("HTTPContext", "request")
	}
	return &HTTPContext{global: g, session: b.session, request: b.request}, nil
}

// WebSocketContext handles one message received on a live connection.
type WebSocketContext struct {
	global     *Global
	session    *Session
	connection *Connection
	request    *Request
}

func (c *WebSocketContext) GlobalScope() *Global         { return c.global }
func (c *WebSocketContext) SessionScope() *Session       { return c.session }
func (c *WebSocketContext) ConnectionScope() *Connection { return c.connection }
func (c *WebSocketContext) RequestScope() *Request       { return c.request }

// WebSocketBuilder assembles a WebSocketContext.
type WebSocketBuilder struct {
	session    *Session
	connection *Connection
	request    *Request
}

// NewWebSocketBuilder returns an empty builder.
func NewWebSocketBuilder() *WebSocketBuilder {
	return &WebSocketBuilder{}
}

// FromHTTP carries the session of c forward. The request scope is not carried:
// every message gets its own.
func (b *WebSocketBuilder) FromHTTP(c *HTTPContext) *WebSocketBuilder {
	b.session = c.session
	return b
}

func (b *WebSocketBuilder) WithSession(s *Session) *WebSocketBuilder {
	b.session = s
	return b
}

func (b *WebSocketBuilder) WithConnection(c *Connection) *WebSocketBuilder {
	b.connection = c
	return b
}

func (b *WebSocketBuilder) WithRequest(r *Request) *WebSocketBuilder {
	b.request = r
	return b
}

// Build produces the context or a *MissingFieldError.
func (b *WebSocketBuilder) Build(g *Global) (*WebSocketContext, error) {
	switch {
	case g == nil:
		return nil, missing("WebSocketContext", "global")
	case b.session == nil:
		return nil, missing("WebSocketContext", "session")
	case b.connection == nil:
		return nil, missing("WebSocketContext", "connection")
	case b.request == nil:
		return nil, missing("WebSocketContext", "request")
	}
	return &WebSocketContext{
		global:     g,
		session:    b.session,
		connection: b.connection,
		request:    b.request,
	}, nil
}
