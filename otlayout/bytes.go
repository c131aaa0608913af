package otlayout

import "errors"

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

// binarySegm is a segment of a table's binary data.
type binarySegm []byte

// view returns n bytes at the given offset.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n < 0 || offset+n > len(b) {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// at returns the segment starting at offset, or nil if out of bounds.
func (b binarySegm) at(offset int) binarySegm {
	if offset <= 0 || offset >= len(b) {
		return nil
	}
	return b[offset:]
}

// U16 returns the uint16 at offset i, or 0 if out of bounds.
func (b binarySegm) U16(i int) uint16 {
	if i < 0 || i+2 > len(b) {
		return 0
	}
	return uint16(b[i])<<8 | uint16(b[i+1])
}

// U32 returns the uint32 at offset i, or 0 if out of bounds.
func (b binarySegm) U32(i int) uint32 {
	return uint32(b.U16(i))<<16 | uint32(b.U16(i+2))
}

// tagRecord is an entry of a tag-keyed record list: a tag and an offset
// relative to the start of the list.
type tagRecord struct {
	tag    Tag
	offset uint16
}

// parseTagRecords reads a uint16 count followed by count records of
// {Tag, Offset16}.
func parseTagRecords(b binarySegm, name string) ([]tagRecord, error) {
	n := int(b.U16(0))
	if _, err := b.view(2, n*6); err != nil {
		tracer().Errorf("%s: %d records extend beyond table", name, n)
		return nil, errFontFormat(name + " record list truncated")
	}
	recs := make([]tagRecord, n)
	for i := range recs {
		recs[i] = tagRecord{tag: Tag(b.U32(2 + i*6)), offset: b.U16(6 + i*6)}
	}
	return recs, nil
}

// parseArray16 reads a uint16 count at offset followed by count uint16
// values.
func parseArray16(b binarySegm, offset int) []uint16 {
	n := int(b.U16(offset))
	if _, err := b.view(offset+2, n*2); err != nil {
		return nil
	}
	arr := make([]uint16, n)
	for i := range arr {
		arr[i] = b.U16(offset + 2 + i*2)
	}
	return arr
}
