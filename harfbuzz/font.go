package harfbuzz

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Font is a face at a given size, with a table of metric functions. Fonts
// form a chain: a sub-font delegates every query its own function table
// does not answer to its parent, rescaling results if the scales differ.
//
// A scale of 0 means design units, i.e. the face's units per em.
type Font struct {
	UserData
	face           *Face
	parent         *Font
	funcs          *FontFuncs
	xScale, yScale int32
	xPPEM, yPPEM   uint16
	immutable      bool
}

var emptyFont = &Font{face: emptyFace, immutable: true}

// EmptyFont returns the shared font of the empty face.
func EmptyFont() *Font {
	return emptyFont
}

// NewFont creates a font for face, without metric functions.
func NewFont(face *Face) *Font {
	if face == nil {
		face = emptyFace
	}
	face.MakeImmutable()
	return &Font{face: face}
}

// CreateSubFont creates a font with f as its parent, sharing f's face,
// scale and ppem. f is made immutable.
func (f *Font) CreateSubFont() *Font {
	f.MakeImmutable()
	return &Font{
		face:   f.face,
		parent: f,
		xScale: f.xScale, yScale: f.yScale,
		xPPEM: f.xPPEM, yPPEM: f.yPPEM,
	}
}

// Parent returns the parent font, or nil.
func (f *Font) Parent() *Font {
	return f.parent
}

// Face returns the font's face.
func (f *Font) Face() *Face {
	return f.face
}

// MakeImmutable freezes the font's settings.
func (f *Font) MakeImmutable() {
	f.immutable = true
}

// IsImmutable reports whether MakeImmutable has been called.
func (f *Font) IsImmutable() bool {
	return f.immutable
}

// SetScale sets the horizontal and vertical scale. Ignored for immutable
// fonts.
func (f *Font) SetScale(x, y int32) {
	if !f.immutable {
		f.xScale, f.yScale = x, y
	}
}

// Scale returns the scale as set by SetScale.
func (f *Font) Scale() (x, y int32) {
	return f.xScale, f.yScale
}

// SetPPEM sets the pixels per em used for hinting. 0 disables hinting.
// Ignored for immutable fonts.
func (f *Font) SetPPEM(x, y uint16) {
	if !f.immutable {
		f.xPPEM, f.yPPEM = x, y
	}
}

// PPEM returns the pixels per em.
func (f *Font) PPEM() (x, y uint16) {
	return f.xPPEM, f.yPPEM
}

// SetFuncs installs a table of metric functions. Ignored for immutable
// fonts. A nil table makes the font delegate everything to its parent.
func (f *Font) SetFuncs(ff *FontFuncs) {
	if f.immutable {
		return
	}
	if ff != nil {
		ff.MakeImmutable()
	}
	f.funcs = ff
}

// Funcs returns the font's own function table, or nil.
func (f *Font) Funcs() *FontFuncs {
	return f.funcs
}

// effectiveScale resolves a scale of 0 to the face's units per em.
func (f *Font) effectiveScale() (x, y int64) {
	upem := int64(f.face.Upem())
	x, y = int64(f.xScale), int64(f.yScale)
	if x == 0 {
		x = upem
	}
	if y == 0 {
		y = upem
	}
	return x, y
}

// EmScaleX converts a horizontal distance in design units to font scale.
func (f *Font) EmScaleX(v int32) Position {
	x, _ := f.effectiveScale()
	return emScale(v, x, f.face.Upem())
}

// EmScaleY converts a vertical distance in design units to font scale.
func (f *Font) EmScaleY(v int32) Position {
	_, y := f.effectiveScale()
	return emScale(v, y, f.face.Upem())
}

func emScale(v int32, scale int64, upem int) Position {
	if upem <= 0 || scale == int64(upem) {
		return v
	}
	return Position(math.Round(float64(v) * float64(scale) / float64(upem)))
}

func rescale(v Position, to, from int64) Position {
	if to == from || from == 0 {
		return v
	}
	return Position(math.Round(float64(v) * float64(to) / float64(from)))
}

func (f *Font) parentScaleX(v Position) Position {
	x, _ := f.effectiveScale()
	px, _ := f.parent.effectiveScale()
	return rescale(v, x, px)
}

func (f *Font) parentScaleY(v Position) Position {
	_, y := f.effectiveScale()
	_, py := f.parent.effectiveScale()
	return rescale(v, y, py)
}

// --- Primitive queries -----------------------------------------------------

// NominalGlyph returns the default glyph for code point u.
func (f *Font) NominalGlyph(u rune) (GID, bool) {
	if f.funcs != nil && f.funcs.NominalGlyph != nil {
		return f.funcs.NominalGlyph(f, u)
	}
	if f.parent != nil {
		return f.parent.NominalGlyph(u)
	}
	return 0, false
}

// VariationGlyph returns the glyph for code point u with variation
// selector vs.
func (f *Font) VariationGlyph(u, vs rune) (GID, bool) {
	if f.funcs != nil && f.funcs.VariationGlyph != nil {
		return f.funcs.VariationGlyph(f, u, vs)
	}
	if f.parent != nil {
		return f.parent.VariationGlyph(u, vs)
	}
	return 0, false
}

// Glyph returns the glyph for code point u. A variation selector of 0
// requests the default mapping.
func (f *Font) Glyph(u, vs rune) (GID, bool) {
	if vs == 0 {
		return f.NominalGlyph(u)
	}
	return f.VariationGlyph(u, vs)
}

// GlyphHAdvance returns the horizontal advance of glyph g.
func (f *Font) GlyphHAdvance(g GID) (Position, bool) {
	if f.funcs != nil && f.funcs.HAdvance != nil {
		return f.funcs.HAdvance(f, g)
	}
	if f.parent != nil {
		if v, ok := f.parent.GlyphHAdvance(g); ok {
			return f.parentScaleX(v), true
		}
	}
	return 0, false
}

// GlyphVAdvance returns the vertical advance of glyph g. Advances in
// top-to-bottom direction are negative.
func (f *Font) GlyphVAdvance(g GID) (Position, bool) {
	if f.funcs != nil && f.funcs.VAdvance != nil {
		return f.funcs.VAdvance(f, g)
	}
	if f.parent != nil {
		if v, ok := f.parent.GlyphVAdvance(g); ok {
			return f.parentScaleY(v), true
		}
	}
	return 0, false
}

// GlyphHOrigin returns the origin of glyph g for horizontal layout,
// relative to its default origin.
func (f *Font) GlyphHOrigin(g GID) (x, y Position, ok bool) {
	if f.funcs != nil && f.funcs.HOrigin != nil {
		return f.funcs.HOrigin(f, g)
	}
	if f.parent != nil {
		if x, y, ok := f.parent.GlyphHOrigin(g); ok {
			return f.parentScaleX(x), f.parentScaleY(y), true
		}
	}
	return 0, 0, false
}

// GlyphVOrigin returns the origin of glyph g for vertical layout.
func (f *Font) GlyphVOrigin(g GID) (x, y Position, ok bool) {
	if f.funcs != nil && f.funcs.VOrigin != nil {
		return f.funcs.VOrigin(f, g)
	}
	if f.parent != nil {
		if x, y, ok := f.parent.GlyphVOrigin(g); ok {
			return f.parentScaleX(x), f.parentScaleY(y), true
		}
	}
	return 0, 0, false
}

// GlyphHKerning returns the horizontal kerning adjustment of a glyph pair.
func (f *Font) GlyphHKerning(left, right GID) (Position, bool) {
	if f.funcs != nil && f.funcs.HKerning != nil {
		return f.funcs.HKerning(f, left, right)
	}
	if f.parent != nil {
		if v, ok := f.parent.GlyphHKerning(left, right); ok {
			return f.parentScaleX(v), true
		}
	}
	return 0, false
}

// GlyphVKerning returns the vertical kerning adjustment of a glyph pair.
func (f *Font) GlyphVKerning(top, bottom GID) (Position, bool) {
	if f.funcs != nil && f.funcs.VKerning != nil {
		return f.funcs.VKerning(f, top, bottom)
	}
	if f.parent != nil {
		if v, ok := f.parent.GlyphVKerning(top, bottom); ok {
			return f.parentScaleY(v), true
		}
	}
	return 0, false
}

// GlyphExtents returns the ink box of glyph g.
func (f *Font) GlyphExtents(g GID) (GlyphExtents, bool) {
	if f.funcs != nil && f.funcs.Extents != nil {
		return f.funcs.Extents(f, g)
	}
	if f.parent != nil {
		if e, ok := f.parent.GlyphExtents(g); ok {
			return GlyphExtents{
				XBearing: f.parentScaleX(e.XBearing),
				YBearing: f.parentScaleY(e.YBearing),
				Width:    f.parentScaleX(e.Width),
				Height:   f.parentScaleY(e.Height),
			}, true
		}
	}
	return GlyphExtents{}, false
}

// GlyphContourPoint returns the position of the given outline point of
// glyph g.
func (f *Font) GlyphContourPoint(g GID, point int) (x, y Position, ok bool) {
	if f.funcs != nil && f.funcs.ContourPoint != nil {
		return f.funcs.ContourPoint(f, g, point)
	}
	if f.parent != nil {
		if x, y, ok := f.parent.GlyphContourPoint(g, point); ok {
			return f.parentScaleX(x), f.parentScaleY(y), true
		}
	}
	return 0, 0, false
}

// GlyphName returns the name of glyph g.
func (f *Font) GlyphName(g GID) (string, bool) {
	if f.funcs != nil && f.funcs.GlyphName != nil {
		return f.funcs.GlyphName(f, g)
	}
	if f.parent != nil {
		return f.parent.GlyphName(g)
	}
	return "", false
}

// GlyphFromName returns the glyph with the given name.
func (f *Font) GlyphFromName(name string) (GID, bool) {
	if f.funcs != nil && f.funcs.GlyphFromName != nil {
		return f.funcs.GlyphFromName(f, name)
	}
	if f.parent != nil {
		return f.parent.GlyphFromName(name)
	}
	return 0, false
}

// HExtents returns the font-wide metrics for horizontal layout.
func (f *Font) HExtents() (FontExtents, bool) {
	if f.funcs != nil && f.funcs.HExtents != nil {
		return f.funcs.HExtents(f)
	}
	if f.parent != nil {
		if e, ok := f.parent.HExtents(); ok {
			return FontExtents{
				Ascender:  f.parentScaleY(e.Ascender),
				Descender: f.parentScaleY(e.Descender),
				LineGap:   f.parentScaleY(e.LineGap),
			}, true
		}
	}
	return FontExtents{}, false
}

// VExtents returns the font-wide metrics for vertical layout.
func (f *Font) VExtents() (FontExtents, bool) {
	if f.funcs != nil && f.funcs.VExtents != nil {
		return f.funcs.VExtents(f)
	}
	if f.parent != nil {
		if e, ok := f.parent.VExtents(); ok {
			return FontExtents{
				Ascender:  f.parentScaleX(e.Ascender),
				Descender: f.parentScaleX(e.Descender),
				LineGap:   f.parentScaleX(e.LineGap),
			}, true
		}
	}
	return FontExtents{}, false
}

// --- Direction-aware queries -----------------------------------------------
//
// These never fail. Missing metrics count as 0, missing origins are
// synthesized from the other direction's origin where possible.

// GlyphAdvanceForDirection returns the advance of glyph g along dir.
func (f *Font) GlyphAdvanceForDirection(g GID, dir Direction) (x, y Position) {
	if dir.IsHorizontal() {
		x, _ = f.GlyphHAdvance(g)
		return x, 0
	}
	y, _ = f.GlyphVAdvance(g)
	return 0, y
}

// guessVOriginMinusHOrigin estimates the vector from the horizontal to the
// vertical origin: half the advance to the right, the ascender upwards.
func (f *Font) guessVOriginMinusHOrigin(g GID) (x, y Position) {
	x, _ = f.GlyphHAdvance(g)
	x /= 2
	y = f.ExtentsForDirection(LeftToRight).Ascender
	return x, y
}

func (f *Font) hOriginWithFallback(g GID) (x, y Position) {
	if x, y, ok := f.GlyphHOrigin(g); ok {
		return x, y
	}
	if x, y, ok := f.GlyphVOrigin(g); ok {
		dx, dy := f.guessVOriginMinusHOrigin(g)
		return x - dx, y - dy
	}
	return 0, 0
}

func (f *Font) vOriginWithFallback(g GID) (x, y Position) {
	if x, y, ok := f.GlyphVOrigin(g); ok {
		return x, y
	}
	if x, y, ok := f.GlyphHOrigin(g); ok {
		dx, dy := f.guessVOriginMinusHOrigin(g)
		return x + dx, y + dy
	}
	return 0, 0
}

// GlyphOriginForDirection returns the origin of glyph g for layout along dir.
func (f *Font) GlyphOriginForDirection(g GID, dir Direction) (x, y Position) {
	if dir.IsHorizontal() {
		return f.hOriginWithFallback(g)
	}
	return f.vOriginWithFallback(g)
}

// AddGlyphOriginForDirection adds the origin of g for dir to (x, y).
func (f *Font) AddGlyphOriginForDirection(g GID, dir Direction, x, y Position) (Position, Position) {
	ox, oy := f.GlyphOriginForDirection(g, dir)
	return x + ox, y + oy
}

// SubtractGlyphOriginForDirection subtracts the origin of g for dir from (x, y).
func (f *Font) SubtractGlyphOriginForDirection(g GID, dir Direction, x, y Position) (Position, Position) {
	ox, oy := f.GlyphOriginForDirection(g, dir)
	return x - ox, y - oy
}

// GlyphKerningForDirection returns the kerning of a glyph pair along dir.
func (f *Font) GlyphKerningForDirection(first, second GID, dir Direction) (x, y Position) {
	if dir.IsHorizontal() {
		x, _ = f.GlyphHKerning(first, second)
		return x, 0
	}
	y, _ = f.GlyphVKerning(first, second)
	return 0, y
}

// GlyphExtentsForOrigin returns the ink box of g relative to its origin
// for layout along dir.
func (f *Font) GlyphExtentsForOrigin(g GID, dir Direction) (GlyphExtents, bool) {
	e, ok := f.GlyphExtents(g)
	if ok {
		e.XBearing, e.YBearing = f.SubtractGlyphOriginForDirection(g, dir, e.XBearing, e.YBearing)
	}
	return e, ok
}

// GlyphContourPointForOrigin returns an outline point of g relative to its
// origin for layout along dir.
func (f *Font) GlyphContourPointForOrigin(g GID, point int, dir Direction) (x, y Position, ok bool) {
	x, y, ok = f.GlyphContourPoint(g, point)
	if ok {
		x, y = f.SubtractGlyphOriginForDirection(g, dir, x, y)
	}
	return x, y, ok
}

// ExtentsForDirection returns the font-wide metrics for layout along dir.
// Missing metrics are synthesized from the scale.
func (f *Font) ExtentsForDirection(dir Direction) FontExtents {
	sx, sy := f.effectiveScale()
	if dir.IsVertical() {
		if e, ok := f.VExtents(); ok {
			return e
		}
		asc := Position(sx / 2)
		return FontExtents{Ascender: asc, Descender: asc - Position(sx)}
	}
	if e, ok := f.HExtents(); ok {
		return e
	}
	asc := Position(float64(sy) * .8)
	return FontExtents{Ascender: asc, Descender: asc - Position(sy)}
}

// LigatureCarets returns the caret positions of ligature glyph g along dir,
// from the face's GDEF table.
func (f *Font) LigatureCarets(dir Direction, g GID) []Position {
	if g > 0xFFFF {
		return nil
	}
	carets := f.face.Layout().LigatureCarets(uint16(g))
	if len(carets) == 0 {
		return nil
	}
	pos := make([]Position, 0, len(carets))
	for _, c := range carets {
		if c.IsPoint {
			x, y, _ := f.GlyphContourPointForOrigin(g, int(c.PointIndex), dir)
			if dir.IsHorizontal() {
				pos = append(pos, x)
			} else {
				pos = append(pos, y)
			}
			continue
		}
		if dir.IsHorizontal() {
			pos = append(pos, f.EmScaleX(int32(c.Coordinate)))
		} else {
			pos = append(pos, f.EmScaleY(int32(c.Coordinate)))
		}
	}
	return pos
}

// --- Glyph names -------------------------------------------------------------

// GlyphToString returns the name of glyph g, or "gidN" for glyphs without
// a name.
func (f *Font) GlyphToString(g GID) string {
	if name, ok := f.GlyphName(g); ok && name != "" {
		return name
	}
	return fmt.Sprintf("gid%d", g)
}

// GlyphFromString resolves a glyph name. Besides the names known to the
// font's function table it accepts "gidN" and "uniXXXX" or "uXXXX[XX]".
func (f *Font) GlyphFromString(s string) (GID, bool) {
	if g, ok := f.GlyphFromName(s); ok {
		return g, true
	}
	if n, ok := strings.CutPrefix(s, "gid"); ok {
		if v, err := strconv.ParseUint(n, 10, 32); err == nil {
			return GID(v), true
		}
	}
	var hex string
	if h, ok := strings.CutPrefix(s, "uni"); ok && len(h) == 4 {
		hex = h
	} else if h, ok := strings.CutPrefix(s, "u"); ok && len(h) >= 4 && len(h) <= 6 {
		hex = h
	}
	if hex != "" {
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return f.NominalGlyph(rune(v))
		}
	}
	return 0, false
}
