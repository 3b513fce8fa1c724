package body

import "errors"

var (
	// ErrAlreadyParsed is returned when a unit of work's body is consumed twice.
	ErrAlreadyParsed = errors.New("body already parsed")
	// ErrInvalidMessageType is returned when a control frame is decoded as data.
	ErrInvalidMessageType = errors.New("invalid message type")
	// ErrNoBody is returned when the request scope was never seeded with a body.
	ErrNoBody = errors.New("no body")
)
