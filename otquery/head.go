package otquery

// HeadTableInfo is a typed view over OpenType table 'head'.
type HeadTableInfo struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       uint32
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64
	Modified           int64
	XMin, YMin         int16
	XMax, YMax         int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16
	GlyphDataFormat    int16
}

const headMagic = 0x5F0F3CF5

// HeadInfo decodes table 'head'.
// Returns (info, true) on success, or (zero, false) if the table is empty,
// too short or carries a wrong magic number.
func HeadInfo(b []byte) (HeadTableInfo, bool) {
	var info HeadTableInfo
	r := reader{b: b}
	info.MajorVersion, info.MinorVersion = r.u16(), r.u16()
	info.FontRevision = r.u32()
	info.CheckSumAdjustment = r.u32()
	info.MagicNumber = r.u32()
	info.Flags = r.u16()
	info.UnitsPerEm = r.u16()
	info.Created, info.Modified = r.i64(), r.i64()
	info.XMin, info.YMin = r.i16(), r.i16()
	info.XMax, info.YMax = r.i16(), r.i16()
	info.MacStyle = r.u16()
	info.LowestRecPPEM = r.u16()
	info.FontDirectionHint = r.i16()
	info.IndexToLocFormat = r.i16()
	info.GlyphDataFormat = r.i16()
	if r.short || info.MagicNumber != headMagic {
		tracer().Debugf("table 'head' unusable: %d bytes, magic %x", len(b), info.MagicNumber)
		return HeadTableInfo{}, false
	}
	return info, true
}
