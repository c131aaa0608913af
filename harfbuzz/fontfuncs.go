package harfbuzz

// GID is a glyph index of a face.
type GID uint32

// Position is a font-space distance, in font scale units.
type Position = int32

// GlyphExtents is the ink box of a glyph, relative to its origin. Height
// is negative for glyphs extending below their bearing, as y grows upwards.
type GlyphExtents struct {
	XBearing Position
	YBearing Position
	Width    Position
	Height   Position
}

// FontExtents are the font-wide metrics for one text direction.
type FontExtents struct {
	Ascender  Position // typographic ascender
	Descender Position // typographic descender, negative for most fonts
	LineGap   Position
}

// FontFuncs is a font's table of glyph metric functions. Every entry is
// optional; a nil entry makes the font delegate the query to its parent
// font. Functions receive the font they are being called for, which gives
// access to its face and scale.
//
// Tables may be shared between fonts. A table must not be changed once it
// is installed on a font in use.
type FontFuncs struct {
	UserData
	// NominalGlyph maps a code point to its default glyph.
	NominalGlyph func(f *Font, u rune) (GID, bool)
	// VariationGlyph maps a code point plus variation selector to a glyph.
	VariationGlyph func(f *Font, u, vs rune) (GID, bool)
	HAdvance       func(f *Font, g GID) (Position, bool)
	VAdvance       func(f *Font, g GID) (Position, bool)
	HOrigin        func(f *Font, g GID) (x, y Position, ok bool)
	VOrigin        func(f *Font, g GID) (x, y Position, ok bool)
	HKerning       func(f *Font, left, right GID) (Position, bool)
	VKerning       func(f *Font, top, bottom GID) (Position, bool)
	Extents        func(f *Font, g GID) (GlyphExtents, bool)
	ContourPoint   func(f *Font, g GID, point int) (x, y Position, ok bool)
	GlyphName      func(f *Font, g GID) (string, bool)
	GlyphFromName  func(f *Font, name string) (GID, bool)
	HExtents       func(f *Font) (FontExtents, bool)
	VExtents       func(f *Font) (FontExtents, bool)

	immutable bool
}

// NewFontFuncs creates an empty function table.
func NewFontFuncs() *FontFuncs {
	return &FontFuncs{}
}

// MakeImmutable marks the table as final. Clients must not modify
// immutable tables.
func (ff *FontFuncs) MakeImmutable() {
	ff.immutable = true
}

// IsImmutable reports whether MakeImmutable has been called.
func (ff *FontFuncs) IsImmutable() bool {
	return ff.immutable
}
