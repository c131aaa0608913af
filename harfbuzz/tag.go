package harfbuzz

import "unicode/utf8"

// Tag is a 4-byte identifier for OpenType tables, scripts, languages and
// features. The bytes are packed big-endian, i.e. the first character is the
// most significant byte.
type Tag uint32

const (
	// TagNone is the zero tag.
	TagNone Tag = 0
	// TagMax is the largest possible tag value.
	TagMax Tag = 0xffffffff
	// TagMaxSigned is the largest tag value representable as a signed int32.
	TagMaxSigned Tag = 0x7fffffff
)

// Well-known table tags.
var (
	TagGDEF = MakeTag('G', 'D', 'E', 'F')
	TagGSUB = MakeTag('G', 'S', 'U', 'B')
	TagGPOS = MakeTag('G', 'P', 'O', 'S')
	TagJSTF = MakeTag('J', 'S', 'T', 'F')
	TagHead = MakeTag('h', 'e', 'a', 'd')
	TagMaxp = MakeTag('m', 'a', 'x', 'p')
	TagHhea = MakeTag('h', 'h', 'e', 'a')
	TagName = MakeTag('n', 'a', 'm', 'e')
)

// MakeTag packs 4 bytes into a Tag.
func MakeTag(a, b, c, d byte) Tag {
	return Tag(uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d))
}

// TagFromString creates a Tag from a string. Strings shorter than 4 bytes are
// padded with spaces, longer strings are truncated. The empty string yields
// TagNone.
func TagFromString(s string) Tag {
	if s == "" {
		return TagNone
	}
	b := []byte((s + "    ")[:4])
	return MakeTag(b[0], b[1], b[2], b[3])
}

// Bytes returns the 4 bytes of a tag, most significant first.
func (t Tag) Bytes() [4]byte {
	return [4]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)}
}

// String returns the tag as a 4-character string. Tags which do not form
// valid UTF-8 are displayed as four spaces.
func (t Tag) String() string {
	b := t.Bytes()
	if !utf8.Valid(b[:]) {
		return "    "
	}
	return string(b[:])
}
