package scope

import (
	"fmt"

	"github.com/google/uuid"
)

// SessionID identifies a session. Ids are random v4 UUIDs and are never reused.
type SessionID uuid.UUID

// NewSessionID generates a fresh session id.
func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

// ParseSessionID parses the canonical string form of a session id.
func ParseSessionID(s string) (SessionID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return SessionID{}, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	return SessionID(u), nil
}

func (id SessionID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether id is the zero value.
func (id SessionID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// ConnectionID identifies one live connection. Ids are random v4 UUIDs and are never reused.
type ConnectionID uuid.UUID

// NewConnectionID generates a fresh connection id.
func NewConnectionID() ConnectionID {
	return ConnectionID(uuid.New())
}

// ParseConnectionID parses the canonical string form of a connection id.
func ParseConnectionID(s string) (ConnectionID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ConnectionID{}, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	return ConnectionID(u), nil
}

func (id ConnectionID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether id is the zero value.
func (id ConnectionID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
