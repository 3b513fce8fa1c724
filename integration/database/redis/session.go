package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/wired/core/scope"
)

// SessionIDs records issued session ids in redis so every instance behind a
// load balancer accepts the same cookies. It satisfies transport.SessionIDs.
type SessionIDs struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// SessionIDsOption configures SessionIDs.
type SessionIDsOption func(*SessionIDs)

// WithSessionPrefix sets the key prefix. Default: "wired:session:".
func WithSessionPrefix(prefix string) SessionIDsOption {
	return func(s *SessionIDs) {
		s.prefix = prefix
	}
}

// WithSessionTTL sets how long an issued id stays known. Zero keeps ids
// forever. Default: 720h.
func WithSessionTTL(ttl time.Duration) SessionIDsOption {
	return func(s *SessionIDs) {
		s.ttl = ttl
	}
}

// NewSessionIDs creates a redis-backed id registry.
func NewSessionIDs(client redis.UniversalClient, opts ...SessionIDsOption) *SessionIDs {
	s := &SessionIDs{
		client: client,
		prefix: "wired:session:",
		ttl:    720 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSessionIDsFromConfig applies the session settings of cfg.
func NewSessionIDsFromConfig(client redis.UniversalClient, cfg Config) *SessionIDs {
	opts := []SessionIDsOption{WithSessionTTL(cfg.SessionTTL)}
	if cfg.SessionPrefix != "" {
		opts = append(opts, WithSessionPrefix(cfg.SessionPrefix))
	}
	return NewSessionIDs(client, opts...)
}

func (s *SessionIDs) key(id scope.SessionID) string {
	return s.prefix + id.String()
}

// Issue generates an id and claims it with SET NX, drawing again on the
// unlikely collision with an id issued before.
func (s *SessionIDs) Issue(ctx context.Context) (scope.SessionID, error) {
	for {
		id := scope.NewSessionID()
		claimed, err := s.client.SetNX(ctx, s.key(id), time.Now().Unix(), s.ttl).Result()
		if err != nil {
			return scope.SessionID{}, err
		}
		if claimed {
			return id, nil
		}
	}
}

// Known reports whether id was issued and has not expired. A known id has its
// expiry extended.
func (s *SessionIDs) Known(ctx context.Context, id scope.SessionID) (bool, error) {
	if s.ttl <= 0 {
		n, err := s.client.Exists(ctx, s.key(id)).Result()
		return n > 0, err
	}
	return s.client.Expire(ctx, s.key(id), s.ttl).Result()
}

// Revoke forgets id, so a cookie carrying it is replaced on the next request.
func (s *SessionIDs) Revoke(ctx context.Context, id scope.SessionID) error {
	return s.client.Del(ctx, s.key(id)).Err()
}
