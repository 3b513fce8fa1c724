package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxJSONSize is the maximum accepted JSON payload (1MB).
const MaxJSONSize = 1 << 20

// JSON decodes a JSON payload into v in strict mode: unknown fields and
// trailing data are rejected, and every decoded string is sanitized.
//
// Example:
//
//	var msg ChatMessage
//	if err := binder.JSON(frame, &msg); err != nil {
//		return pipeline.Continue, err
//	}
func JSON(data []byte, v any) error {
	if len(data) > MaxJSONSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrPayloadTooLarge, len(data), MaxJSONSize)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty payload", ErrFailedToParseJSON)
		}
		return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}

	// Only whitespace may follow the value.
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON value", ErrFailedToParseJSON)
	}

	sanitizeValue(reflectValue(v))
	return nil
}
