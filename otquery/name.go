package otquery

import (
	"fmt"
	"iter"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/unicode"
)

const (
	nameHeaderSize = 6
	nameRecordSize = 12
)

// nameKey identifies a NameRecord entry in OpenType table 'name'.
type nameKey struct {
	Platform PlatformID
	Encoding EncodingID
	Language uint16
	Name     sfnt.NameID
}

// PlatformID is the platform of a name record.
type PlatformID uint16

const (
	PlatformIDUnicode   PlatformID = 0
	PlatformIDMacintosh PlatformID = 1 // not supported
	PlatformIDWindows   PlatformID = 3
)

// EncodingID is the platform specific encoding of a name record.
type EncodingID uint16

const (
	EncodingIDUnicodeBMP    EncodingID = 3
	EncodingIDWindowsSymbol EncodingID = 0 // not supported
	EncodingIDWindowsBMP    EncodingID = 1
)

// NamesRange yields decoded `(nameID, value)` pairs from the bytes of an
// OpenType `name` table.
//
// Only Unicode BMP and Windows BMP records are yielded. Malformed or
// out-of-bounds records are skipped.
func NamesRange(b []byte) iter.Seq2[sfnt.NameID, string] {
	return func(yield func(sfnt.NameID, string) bool) {
		if !nameTableSafe(b) {
			return
		}
		count := int(u16(b[2:4]))
		storage := int(u16(b[4:6]))
		for i := range count {
			rec := b[nameHeaderSize+i*nameRecordSize : nameHeaderSize+(i+1)*nameRecordSize]
			key := nameKey{
				Platform: PlatformID(u16(rec[0:2])),
				Encoding: EncodingID(u16(rec[2:4])),
				Language: u16(rec[4:6]),
				Name:     sfnt.NameID(u16(rec[6:8])),
			}
			if !isSupportedNameEncoding(key) {
				continue
			}
			start := storage + int(u16(rec[10:12]))
			end := start + int(u16(rec[8:10]))
			if end > len(b) {
				continue
			}
			value, err := decodeNameUTF16(b[start:end])
			if err != nil || value == "" {
				continue
			}
			if !yield(key.Name, value) {
				return
			}
		}
	}
}

// FamilyName extracts family and subfamily names from the bytes of a
// `name` table. Missing entries are returned as empty strings.
func FamilyName(b []byte) (family, subfamily string) {
	for id, value := range NamesRange(b) {
		switch id {
		case sfnt.NameIDFamily:
			if family == "" {
				family = value
			}
		case sfnt.NameIDSubfamily:
			if subfamily == "" {
				subfamily = value
			}
		}
	}
	return
}

// nameTableSafe checks that header and records of a name table are within
// bounds.
func nameTableSafe(b []byte) bool {
	if len(b) < nameHeaderSize {
		tracer().Debugf("name table too short: %d", len(b))
		return false
	}
	count := int(u16(b[2:4]))
	if strOff := int(u16(b[4:6])); strOff > len(b) {
		tracer().Debugf("name table invalid string offset: %d", strOff)
		return false
	}
	if nameHeaderSize+count*nameRecordSize > len(b) {
		tracer().Debugf("name table record section out of bounds: count=%d", count)
		return false
	}
	return true
}

func isSupportedNameEncoding(key nameKey) bool {
	return (key.Platform == PlatformIDUnicode && key.Encoding == EncodingIDUnicodeBMP) ||
		(key.Platform == PlatformIDWindows && key.Encoding == EncodingIDWindowsBMP)
}

func decodeNameUTF16(str []byte) (string, error) {
	decoder := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	s, err := decoder.Bytes(str)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16 error: %v", err)
	}
	return string(s), nil
}
