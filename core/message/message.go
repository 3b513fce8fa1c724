// Package message defines the frame value exchanged over live connections.
package message

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotData is returned when the payload of a control frame is requested.
var ErrNotData = errors.New("message is not a data frame")

// Type is a frame type. Values match the websocket opcodes.
type Type int

const (
	Text   Type = 1
	Binary Type = 2
	Close  Type = 8
	Ping   Type = 9
	Pong   Type = 10
)

func (t Type) String() string {
	switch t {
	case Text:
		return "text"
	case Binary:
		return "binary"
	case Close:
		return "close"
	case Ping:
		return "ping"
	case Pong:
		return "pong"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// IsData reports whether t carries application data.
func (t Type) IsData() bool {
	return t == Text || t == Binary
}

// Message is one frame.
type Message struct {
	Type Type
	Data []byte
}

// NewText creates a text frame.
func NewText(s string) Message {
	return Message{Type: Text, Data: []byte(s)}
}

// NewBinary creates a binary frame.
func NewBinary(b []byte) Message {
	return Message{Type: Binary, Data: b}
}

// NewJSON encodes v as a text frame.
func NewJSON(v any) (Message, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Message{}, fmt.Errorf("message: encode json: %w", err)
	}
	return Message{Type: Text, Data: b}, nil
}

// Payload returns the frame's data, or ErrNotData for control frames.
func (m Message) Payload() ([]byte, error) {
	if !m.Type.IsData() {
		return nil, fmt.Errorf("%w: %s", ErrNotData, m.Type)
	}
	return m.Data, nil
}

// Clone returns a message with its own copy of the payload.
func (m Message) Clone() Message {
	return Message{Type: m.Type, Data: append([]byte(nil), m.Data...)}
}
