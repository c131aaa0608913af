package otquery

// reader decodes big-endian values sequentially from a table's bytes.
// Reading beyond the end sets short and yields zeros.
type reader struct {
	b     []byte
	pos   int
	short bool
}

func (r *reader) u16() uint16 {
	if r.pos+2 > len(r.b) {
		r.short = true
		r.pos = len(r.b)
		return 0
	}
	v := uint16(r.b[r.pos])<<8 | uint16(r.b[r.pos+1])
	r.pos += 2
	return v
}

func (r *reader) i16() int16 {
	return int16(r.u16())
}

func (r *reader) u32() uint32 {
	return uint32(r.u16())<<16 | uint32(r.u16())
}

func (r *reader) i64() int64 {
	return int64(uint64(r.u32())<<32 | uint64(r.u32()))
}

func u16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])<<0
}
