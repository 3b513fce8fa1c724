// Package body gives handlers access to the inbound payload of a
// unit of work.
//
// The transport seeds the request scope with the raw payload (SeedHTTP for HTTP
// requests, SeedMessage for websocket frames). Handlers then call Decode:
//
//	msg, err := body.Decode[ChatMessage](c)
//	if err != nil {
//		return pipeline.Continue, err
//	}
//
// Decoding again into the same type returns the cached value, so a middleware
// and a handler can both call Decode. Decoding into another type or calling
// Bytes after the body was consumed fails with ErrAlreadyParsed; Get reads a
// decoded value without touching the body. Decoding a control frame (ping,
// pong, close) fails with ErrInvalidMessageType.
//
// Query parameters are decoded with Query and cached per target type.
package body
