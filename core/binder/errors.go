package binder

import "errors"

// Error variables define the decode failures callers can match with errors.Is.
var (
	// ErrUnsupportedMediaType indicates a content type no decoder is registered for.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrFailedToParseJSON indicates the payload is not valid JSON
	// or doesn't match the target struct schema.
	ErrFailedToParseJSON = errors.New("failed to parse JSON payload")

	// ErrFailedToParseForm indicates a URL-encoded payload could not be decoded.
	ErrFailedToParseForm = errors.New("failed to parse form data")

	// ErrFailedToParseQuery indicates query parameter parsing failed,
	// typically due to type conversion errors.
	ErrFailedToParseQuery = errors.New("failed to parse query parameters")

	// ErrPayloadTooLarge indicates the payload exceeds the decoder's size limit.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrInvalidTarget indicates the destination is not a non-nil pointer to a struct.
	ErrInvalidTarget = errors.New("invalid decode target")
)

// IsDecodeError reports whether err is a client-caused decoding failure.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrFailedToParseJSON) ||
		errors.Is(err, ErrFailedToParseForm) ||
		errors.Is(err, ErrFailedToParseQuery) ||
		errors.Is(err, ErrPayloadTooLarge) ||
		errors.Is(err, ErrUnsupportedMediaType)
}
