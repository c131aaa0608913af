package otquery

// MaxPTableInfo is a typed view over OpenType table 'maxp'.
// Only the fields common to CFF and TrueType flavoured fonts are decoded.
type MaxPTableInfo struct {
	VersionFixed uint32
	NumGlyphs    uint16
}

// MaxPInfo decodes table 'maxp'.
// Returns (info, true) on success, or (zero, false) if the table is too short.
func MaxPInfo(b []byte) (MaxPTableInfo, bool) {
	r := reader{b: b}
	info := MaxPTableInfo{VersionFixed: r.u32(), NumGlyphs: r.u16()}
	if r.short {
		return MaxPTableInfo{}, false
	}
	return info, true
}
