package keyval

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// MaxRawKeyLength is the longest key sent to the remote store verbatim.
const MaxRawKeyLength = 20

// Hash folds s into a short base-36 string: a 31-multiplier rolling hash
// over the UTF-16 code units of s, wrapped to 32 bits, absolute value.
func Hash(s string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}

	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 36)
}

// ShortKey returns key unchanged when it is at most MaxRawKeyLength UTF-16
// code units long and its Hash otherwise.
func ShortKey(key string) string {
	if len(utf16.Encode([]rune(key))) <= MaxRawKeyLength {
		return key
	}
	return Hash(key)
}

// EscapeComponent percent-encodes s so it can be used as a single path
// segment. Only A-Z a-z 0-9 and - _ . ! ~ * ' ( ) are left as is; all
// other bytes of the UTF-8 encoding become %XX.
func EscapeComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&0x0F])
	}
	return sb.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
