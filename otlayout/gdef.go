package otlayout

// GlyphClass is the glyph class of GDEF's glyph class definition table.
type GlyphClass uint16

const (
	ClassUnclassified GlyphClass = 0
	BaseGlyph         GlyphClass = 1
	LigatureGlyph     GlyphClass = 2
	MarkGlyph         GlyphClass = 3
	ComponentGlyph    GlyphClass = 4
)

func (c GlyphClass) String() string {
	switch c {
	case BaseGlyph:
		return "base"
	case LigatureGlyph:
		return "ligature"
	case MarkGlyph:
		return "mark"
	case ComponentGlyph:
		return "component"
	}
	return "unclassified"
}

// Caret is a ligature caret position. Carets are given either as a
// coordinate in design units or as the index of a contour point of the
// ligature glyph.
type Caret struct {
	Coordinate int16
	PointIndex uint16
	IsPoint    bool
}

// GDEF is the glyph definition table.
type GDEF struct {
	glyphClasses ClassDefinitions
	markClasses  ClassDefinitions
	attachList   binarySegm
	attachCov    Coverage
	ligCaretList binarySegm
	ligCaretCov  Coverage
}

// ParseGDEF decodes a GDEF table. Broken sub-tables are dropped and
// reported to the trace. Empty input yields an empty table.
func ParseGDEF(b []byte) (*GDEF, error) {
	gdef := &GDEF{}
	if len(b) == 0 {
		return gdef, nil
	}
	seg := binarySegm(b)
	if _, err := seg.view(0, 12); err != nil || seg.U16(0) != 1 {
		return gdef, errFontFormat("GDEF header unusable")
	}
	var err error
	if sub := seg.at(int(seg.U16(4))); sub != nil {
		if gdef.glyphClasses, err = parseClassDefinitions(sub); err != nil {
			tracer().Errorf("GDEF glyph class definitions: %v", err)
		}
	}
	if sub := seg.at(int(seg.U16(6))); sub != nil {
		if gdef.attachCov, err = parseCoverage(sub.at(int(sub.U16(0)))); err == nil {
			gdef.attachList = sub
		} else {
			tracer().Errorf("GDEF attachment point list: %v", err)
		}
	}
	if sub := seg.at(int(seg.U16(8))); sub != nil {
		if gdef.ligCaretCov, err = parseCoverage(sub.at(int(sub.U16(0)))); err == nil {
			gdef.ligCaretList = sub
		} else {
			tracer().Errorf("GDEF ligature caret list: %v", err)
		}
	}
	if sub := seg.at(int(seg.U16(10))); sub != nil {
		if gdef.markClasses, err = parseClassDefinitions(sub); err != nil {
			tracer().Errorf("GDEF mark attachment classes: %v", err)
		}
	}
	return gdef, nil
}

// HasGlyphClasses reports whether the table classifies glyphs.
func (gdef *GDEF) HasGlyphClasses() bool {
	return gdef != nil && !gdef.glyphClasses.IsEmpty()
}

// GlyphClass returns the class of glyph g.
func (gdef *GDEF) GlyphClass(g uint16) GlyphClass {
	if gdef == nil {
		return ClassUnclassified
	}
	return GlyphClass(gdef.glyphClasses.Lookup(g))
}

// MarkAttachClass returns the mark attachment class of glyph g.
func (gdef *GDEF) MarkAttachClass(g uint16) uint16 {
	if gdef == nil {
		return 0
	}
	return gdef.markClasses.Lookup(g)
}

// AttachPoints returns the contour point indices of attachment points of
// glyph g.
func (gdef *GDEF) AttachPoints(g uint16) []uint16 {
	if gdef == nil || gdef.attachList == nil {
		return nil
	}
	inx, ok := gdef.attachCov.Match(g)
	if !ok || inx >= int(gdef.attachList.U16(2)) {
		return nil
	}
	ap := gdef.attachList.at(int(gdef.attachList.U16(4 + inx*2)))
	return parseArray16(ap, 0)
}

// LigatureCarets returns the caret positions of ligature glyph g.
func (gdef *GDEF) LigatureCarets(g uint16) []Caret {
	if gdef == nil || gdef.ligCaretList == nil {
		return nil
	}
	inx, ok := gdef.ligCaretCov.Match(g)
	if !ok || inx >= int(gdef.ligCaretList.U16(2)) {
		return nil
	}
	lig := gdef.ligCaretList.at(int(gdef.ligCaretList.U16(4 + inx*2)))
	offsets := parseArray16(lig, 0)
	carets := make([]Caret, 0, len(offsets))
	for _, off := range offsets {
		cv := lig.at(int(off))
		switch cv.U16(0) {
		case 1, 3: // coordinate, coordinate with device table
			carets = append(carets, Caret{Coordinate: int16(cv.U16(2))})
		case 2:
			carets = append(carets, Caret{PointIndex: cv.U16(2), IsPoint: true})
		}
	}
	return carets
}
