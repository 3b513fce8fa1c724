// Package binder decodes raw payloads into Go structs.
//
// Decoders work on bytes rather than *http.Request so the same code decodes HTTP
// bodies, websocket data frames and query strings. All decoders sanitize decoded
// strings: NUL bytes, CR/LF and other control characters are removed.
//
// # JSON
//
// JSON decoding is strict: unknown fields are rejected, trailing data after the
// value is rejected, and payloads above MaxJSONSize fail with ErrPayloadTooLarge.
//
//	var req CreateMessage
//	if err := binder.JSON(body, &req); err != nil {
//		// errors.Is(err, binder.ErrFailedToParseJSON)
//	}
//
// # Query and Form
//
// Query and Form bind URL-encoded values to struct fields using the `query` and
// `form` tags respectively:
//
//	type Search struct {
//		Q      string   `query:"q"`
//		Page   int      `query:"page"`
//		Tags   []string `query:"tags"`   // ?tags=a&tags=b or ?tags=a,b
//		Active *bool    `query:"active"` // optional
//		Secret string   `query:"-"`      // skipped
//	}
//
//	var s Search
//	err := binder.Query(r.URL.RawQuery, &s)
//
// Supported field types are strings, signed and unsigned integers, floats, bools
// (including "on"/"off" and "yes"/"no"), pointers to those and slices of those.
//
// # Selecting a decoder
//
// ForContentType maps a Content-Type header value to JSON or Form and reports
// ErrUnsupportedMediaType for anything else. IsDecodeError classifies errors that
// should be reported to the client as a bad request.
package binder
