package binder

import (
	"fmt"
	"mime"
)

// Decoder decodes a raw payload into v.
type Decoder func(data []byte, v any) error

// ForContentType selects the decoder for a Content-Type header value.
// An empty content type is treated as JSON, the format websocket frames use.
func ForContentType(contentType string) (Decoder, error) {
	if contentType == "" {
		return JSON, nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMediaType, contentType)
	}
	switch mediaType {
	case "application/json":
		return JSON, nil
	case "application/x-www-form-urlencoded":
		return Form, nil
	default:
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedMediaType, mediaType)
	}
}
