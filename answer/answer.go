package answer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnexpectedFormat indicates that an answer payload does not match the
// shape the issued operation requires.
var ErrUnexpectedFormat = errors.New("answer: unexpected answer format")

// headerFieldCount is the number of protocol header fields preceding the
// payload: start token, job ID, operation metadata, error-code token.
const headerFieldCount = 4

// Fields splits a raw answer into its pipe-delimited fields.
// A trailing CRLF is stripped before splitting.
func Fields(raw string) []string {
	raw = strings.TrimSuffix(raw, "\r\n")
	return strings.Split(raw, "|")
}

// Payload returns the operation-specific fields following the protocol header.
//
// It returns ErrUnexpectedFormat if the answer has fewer than the four
// mandatory header fields. The returned slice is empty for answers that carry
// no payload at all.
func Payload(raw string) ([]string, error) {
	fields := Fields(raw)
	if len(fields) < headerFieldCount {
		return nil, fmt.Errorf("%w: %d fields, need at least %d", ErrUnexpectedFormat, len(fields), headerFieldCount)
	}

	return fields[headerFieldCount:], nil
}

// Result decodes an answer whose payload is a single opaque token.
func Result(raw string) (string, error) {
	payload, err := Payload(raw)
	if err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("%w: missing result field", ErrUnexpectedFormat)
	}

	return payload[0], nil
}

// resultOrEmpty returns the first payload field, or "" when the payload is
// absent. Used by list decoders, where an empty payload is a valid answer.
func resultOrEmpty(raw string) (string, error) {
	payload, err := Payload(raw)
	if err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", nil
	}

	return payload[0], nil
}
