package harfbuzz

import (
	"github.com/npillmayer/hbshape/otlayout"
)

// fallbackShaper shapes with the font's metric functions only: it maps
// code points to nominal glyphs, with variation selectors, canonical
// (de)composition and mirroring as fallbacks, zeroes the advance of marks,
// places marks over or under their base glyphs and applies pair kerning.
// It needs a font with glyph mapping.
type fallbackShaper struct{}

func (fallbackShaper) Name() string { return "fallback" }

var (
	tagKern = MakeTag('k', 'e', 'r', 'n')
	tagVkrn = MakeTag('v', 'k', 'r', 'n')
)

// hasGlyphMapping reports whether a font of the chain maps code points.
func (f *Font) hasGlyphMapping() bool {
	for ; f != nil; f = f.parent {
		if f.funcs != nil && f.funcs.NominalGlyph != nil {
			return true
		}
	}
	return false
}

func (fallbackShaper) Shape(font *Font, buf *Buffer, features []Feature) bool {
	if !font.hasGlyphMapping() {
		return false
	}
	formClusters(buf)
	fm := newFeatureMasks(features)
	sh := fallbackRun{font: font, buf: buf, dir: buf.Direction(), uni: buf.unicode, layout: font.face.Layout()}
	sh.mapGlyphs()
	sh.position()
	sh.kern(fm)
	buf.setGlyphs(sh.glyphs, sh.pos)
	fm.applyMasks(buf)
	if sh.dir.IsBackward() {
		buf.Reverse()
	}
	return true
}

type fallbackRun struct {
	font   *Font
	buf    *Buffer
	dir    Direction
	uni    *UnicodeFuncs
	layout *otlayout.Layout
	glyphs []GlyphInfo
	pos    []GlyphPosition
	marks  []bool
	ccc    []CombiningClass
	hidden []bool // default ignorables shown invisibly
}

func (sh *fallbackRun) emit(g GID, cluster uint32, u rune, hidden bool) {
	sh.glyphs = append(sh.glyphs, GlyphInfo{Glyph: g, Cluster: cluster})
	sh.hidden = append(sh.hidden, hidden)
	mark := sh.uni.generalCategory(u).IsMark()
	if sh.layout.HasGlyphClasses() && g <= 0xFFFF {
		switch sh.layout.GlyphClass(uint16(g)) {
		case otlayout.MarkGlyph:
			mark = true
		case otlayout.BaseGlyph, otlayout.LigatureGlyph:
			mark = false
		}
	}
	sh.marks = append(sh.marks, mark)
	sh.ccc = append(sh.ccc, sh.uni.combiningClass(u))
}

// glyphFor maps u to a glyph, mirroring it for right-to-left text.
func (sh *fallbackRun) glyphFor(u, vs rune) (GID, bool) {
	if sh.dir == RightToLeft {
		if m := sh.uni.mirroring(u); m != u {
			if g, ok := sh.font.Glyph(m, vs); ok {
				return g, true
			}
		}
	}
	if g, ok := sh.font.Glyph(u, vs); ok {
		return g, true
	}
	if vs != 0 {
		return sh.font.NominalGlyph(u)
	}
	return 0, false
}

func (sh *fallbackRun) mapGlyphs() {
	cps := sh.buf.codepoints
	flags := sh.buf.flags
	for i := 0; i < len(cps); i++ {
		u, cluster := cps[i].Codepoint, cps[i].Cluster
		if isDefaultIgnorable(u) && flags&FlagPreserveDefaultIgnorables == 0 {
			if flags&FlagRemoveDefaultIgnorables != 0 {
				continue
			}
			g := sh.buf.invisible
			if g == 0 {
				g, _ = sh.font.NominalGlyph(' ')
			}
			sh.emit(g, cluster, u, true)
			continue
		}
		var next rune
		if i+1 < len(cps) {
			next = cps[i+1].Codepoint
		}
		if isVariationSelector(next) {
			if g, ok := sh.glyphFor(u, next); ok {
				sh.emit(g, cluster, u, false)
				continue
			}
		}
		if next != 0 && sh.uni.combiningClass(next) != CombiningNotReordered {
			if c, ok := sh.uni.compose(u, next); ok {
				if g, ok := sh.glyphFor(c, 0); ok {
					sh.emit(g, cluster, c, false)
					i++
					continue
				}
			}
		}
		if g, ok := sh.glyphFor(u, 0); ok {
			sh.emit(g, cluster, u, false)
			continue
		}
		if a, b, ok := sh.uni.decompose(u); ok {
			ga, okA := sh.glyphFor(a, 0)
			gb, okB := sh.glyphFor(b, 0)
			if okA && (b == 0 || okB) {
				sh.emit(ga, cluster, a, false)
				if b != 0 {
					sh.emit(gb, cluster, b, false)
				}
				continue
			}
		}
		sh.emit(0, cluster, u, false)
	}
}

func (sh *fallbackRun) position() {
	sh.pos = make([]GlyphPosition, len(sh.glyphs))
	for i, info := range sh.glyphs {
		p := &sh.pos[i]
		if sh.hidden[i] {
			continue
		}
		p.XAdvance, p.YAdvance = sh.font.GlyphAdvanceForDirection(info.Glyph, sh.dir)
		p.XOffset, p.YOffset = sh.font.SubtractGlyphOriginForDirection(info.Glyph, sh.dir, 0, 0)
	}
	base := -1
	for i := range sh.glyphs {
		if !sh.marks[i] {
			base = i
			continue
		}
		sh.pos[i].XAdvance, sh.pos[i].YAdvance = 0, 0
		if base >= 0 && sh.dir.IsHorizontal() {
			sh.placeMark(base, i)
		}
	}
}

// placeMark centers mark horizontally on the ink of base and moves it
// clear of it vertically, for marks above or below.
func (sh *fallbackRun) placeMark(base, mark int) {
	var above bool
	switch sh.ccc[mark] {
	case CombiningAttachedAbove, CombiningAttachedAboveRight, CombiningAboveLeft,
		CombiningAbove, CombiningAboveRight, CombiningDoubleAbove:
		above = true
	case CombiningAttachedBelowLeft, CombiningAttachedBelow, CombiningBelowLeft,
		CombiningBelow, CombiningBelowRight, CombiningDoubleBelow, CombiningIotaSubscript:
		above = false
	default:
		return
	}
	be, okB := sh.font.GlyphExtents(sh.glyphs[base].Glyph)
	me, okM := sh.font.GlyphExtents(sh.glyphs[mark].Glyph)
	if !okB || !okM {
		return
	}
	p := &sh.pos[mark]
	p.XOffset = be.XBearing + be.Width/2 - me.XBearing - me.Width/2
	if sh.dir.IsForward() {
		p.XOffset -= sh.pos[base].XAdvance
		for k := base + 1; k < mark; k++ {
			p.XOffset -= sh.pos[k].XAdvance
		}
	}
	if above {
		if gap := be.YBearing - (me.YBearing + me.Height); gap > 0 {
			p.YOffset = gap
		}
	} else {
		if gap := (be.YBearing + be.Height) - me.YBearing; gap < 0 {
			p.YOffset = gap
		}
	}
}

func (sh *fallbackRun) kern(fm featureMasks) {
	tag := tagKern
	if sh.dir.IsVertical() {
		tag = tagVkrn
	}
	prev := -1
	for i := range sh.glyphs {
		if sh.marks[i] || sh.hidden[i] {
			continue
		}
		if prev >= 0 && fm.enabled(tag, sh.glyphs[i].Cluster, true) {
			first, second := sh.glyphs[prev].Glyph, sh.glyphs[i].Glyph
			x, y := sh.font.GlyphKerningForDirection(first, second, sh.dir)
			sh.pos[prev].XAdvance += x
			sh.pos[prev].YAdvance += y
		}
		prev = i
	}
}
