package otlayout

// Layout bundles the layout tables of a font.
type Layout struct {
	gsub, gpos *Table
	gdef       *GDEF
}

// New decodes the raw bytes of a font's GSUB, GPOS and GDEF tables. Any of
// them may be empty. Unusable tables are treated as absent.
func New(gsub, gpos, gdef []byte) *Layout {
	l := &Layout{}
	var err error
	if l.gsub, err = ParseTable(gsub); err != nil {
		tracer().Errorf("GSUB: %v", err)
	}
	if l.gpos, err = ParseTable(gpos); err != nil {
		tracer().Errorf("GPOS: %v", err)
	}
	if l.gdef, err = ParseGDEF(gdef); err != nil {
		tracer().Errorf("GDEF: %v", err)
	}
	return l
}

// GSUB returns the glyph substitution table. It is never nil.
func (l *Layout) GSUB() *Table {
	if l == nil || l.gsub == nil {
		return &Table{}
	}
	return l.gsub
}

// GPOS returns the glyph positioning table. It is never nil.
func (l *Layout) GPOS() *Table {
	if l == nil || l.gpos == nil {
		return &Table{}
	}
	return l.gpos
}

// GDEF returns the glyph definition table. It is never nil.
func (l *Layout) GDEF() *GDEF {
	if l == nil || l.gdef == nil {
		return &GDEF{}
	}
	return l.gdef
}

// HasSubstitution reports whether the font has substitution lookups.
func (l *Layout) HasSubstitution() bool {
	return l.GSUB().LookupCount() > 0
}

// HasPositioning reports whether the font has positioning lookups.
func (l *Layout) HasPositioning() bool {
	return l.GPOS().LookupCount() > 0
}

// HasGlyphClasses reports whether GDEF classifies glyphs.
func (l *Layout) HasGlyphClasses() bool {
	return l.GDEF().HasGlyphClasses()
}

// GlyphClass returns the GDEF class of glyph g.
func (l *Layout) GlyphClass(g uint16) GlyphClass {
	return l.GDEF().GlyphClass(g)
}

// AttachPoints returns the attachment points of glyph g.
func (l *Layout) AttachPoints(g uint16) []uint16 {
	return l.GDEF().AttachPoints(g)
}

// LigatureCarets returns the ligature carets of glyph g.
func (l *Layout) LigatureCarets(g uint16) []Caret {
	return l.GDEF().LigatureCarets(g)
}
