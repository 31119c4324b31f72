// Package charset implements the single-byte Windows-1252 text encoding used on
// the SHSWorks TCP/IP wire.
//
// The remote interface predates UTF-8 adoption and transmits every request and
// answer in code page 1252. The encoding is a protocol contract, not an
// implementation detail, so both directions go through this package.
package charset

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// Encode converts s to its Windows-1252 byte representation.
//
// It returns an error if s contains a rune with no code point in Windows-1252.
func Encode(s string) ([]byte, error) {
	data, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("charset: string not representable in Windows-1252: %w", err)
	}

	return data, nil
}

// Decode converts Windows-1252 bytes to a Go string.
//
// Every byte has a mapping in Windows-1252, so decoding cannot fail.
func Decode(data []byte) string {
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		// Unreachable: Windows-1252 decodes any byte sequence.
		return string(data)
	}

	return string(decoded)
}
