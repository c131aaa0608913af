package otquery

// HHeaTableInfo is a typed view over OpenType table 'hhea'.
type HHeaTableInfo struct {
	Ascender            int16
	Descender           int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	NumberOfHMetrics    uint16
}

// HHeaInfo decodes table 'hhea'.
// Returns (info, true) on success, or (zero, false) if the table is too short.
func HHeaInfo(b []byte) (HHeaTableInfo, bool) {
	var info HHeaTableInfo
	r := reader{b: b}
	r.u32() // version
	info.Ascender, info.Descender, info.LineGap = r.i16(), r.i16(), r.i16()
	info.AdvanceWidthMax = r.u16()
	info.MinLeftSideBearing, info.MinRightSideBearing = r.i16(), r.i16()
	info.XMaxExtent = r.i16()
	info.CaretSlopeRise, info.CaretSlopeRun, info.CaretOffset = r.i16(), r.i16(), r.i16()
	r.pos += 8 // reserved
	r.u16()    // metricDataFormat
	info.NumberOfHMetrics = r.u16()
	if r.short {
		return HHeaTableInfo{}, false
	}
	return info, true
}
