package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

var (
	// ErrEmptyBody is returned when the request carries no payload
	ErrEmptyBody = errors.New("request body is empty")
	// ErrNotObject is returned when the payload is valid JSON but not an object
	ErrNotObject = errors.New("request body must be a JSON object")
	// ErrInvalidEncoding is returned when the payload is not valid UTF-8
	ErrInvalidEncoding = errors.New("request body is not valid UTF-8")
)

// EchoPayload is an arbitrary JSON object supplied by the caller.
// Numbers are kept as json.Number so they are written back unchanged.
type EchoPayload map[string]interface{}

// ParseEchoPayload decodes data as a single JSON object
func ParseEchoPayload(data []byte) (EchoPayload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyBody
	}
	// The decoder would substitute U+FFFD and the echo would differ from the input
	if !utf8.Valid(trimmed) {
		return nil, ErrInvalidEncoding
	}
	if trimmed[0] != '{' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("invalid JSON: %w", syntaxError(trimmed))
		}
		return nil, ErrNotObject
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var payload EchoPayload
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, errors.New("invalid JSON: unexpected data after object")
	}

	return payload, nil
}

func syntaxError(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return errors.New("malformed value")
}
