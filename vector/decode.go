package vector

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/reglet-dev/vecbridge/domain/entities"
)

// DecodeChar converts the bytes of a host char object to UTF-8.
//
// Native strings are read as UTF-8, so native and UTF-8 strings must both
// be valid UTF-8. Latin-1 is transcoded. Bytes-encoded strings are never
// text and always fail.
func DecodeChar(raw []byte, enc entities.CharEncoding) (string, error) {
	switch enc {
	case entities.EncodingUTF8, entities.EncodingNative:
		if off := invalidUTF8Offset(raw); off >= 0 {
			return "", fmt.Errorf("invalid UTF-8 byte 0x%02x at offset %d", raw[off], off)
		}
		return string(raw), nil
	case entities.EncodingLatin1:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("latin1: %w", err)
		}
		return string(out), nil
	case entities.EncodingBytes:
		return "", fmt.Errorf("strings marked as bytes cannot be translated")
	}
	return "", fmt.Errorf("unsupported encoding %s", enc)
}

// invalidUTF8Offset returns the offset of the first invalid sequence, or -1.
func invalidUTF8Offset(b []byte) int {
	for off := 0; off < len(b); {
		r, size := utf8.DecodeRune(b[off:])
		if r == utf8.RuneError && size <= 1 {
			return off
		}
		off += size
	}
	return -1
}
