package format

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// DecodeZString converts a NUL-terminated Windows-1252 payload to UTF-8.
// Bytes after the first NUL are padding and are ignored. A payload without
// a terminator is accepted as is.
func DecodeZString(b []byte) (string, error) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if isASCII(b) {
		return string(b), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode Windows-1252 string: %w: %w", ErrBadString, err)
	}
	return string(decoded), nil
}

// EncodeZString converts s to NUL-terminated Windows-1252.
func EncodeZString(s string) ([]byte, error) {
	if isASCII([]byte(s)) {
		out := make([]byte, len(s)+1)
		copy(out, s)
		return out, nil
	}
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode %q to Windows-1252: %w: %w", s, ErrBadString, err)
	}
	return append(encoded, 0), nil
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
