package otfont

import (
	"errors"
	"fmt"
	"sync"

	"github.com/npillmayer/hbshape/harfbuzz"
	"github.com/npillmayer/hbshape/otquery"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tables holds the parsed font behind a function table. Values are read in
// design units, which is what a ppem of units-per-em yields.
type tables struct {
	sf      *sfnt.Font
	ppem    fixed.Int26_6
	hhea    otquery.HHeaTableInfo
	hasHhea bool
	pool    sync.Pool // of *sfnt.Buffer

	namesOnce sync.Once
	byName    map[string]harfbuzz.GID
}

// SetFuncs installs a function table on font which reads the tables of the
// font's face. It fails if the face has no font file blob or the blob
// cannot be parsed.
func SetFuncs(font *harfbuzz.Font) error {
	if font == nil {
		return errors.New("otfont: font is nil")
	}
	t, err := parse(font.Face())
	if err != nil {
		return err
	}
	font.SetFuncs(t.funcs())
	return nil
}

func parse(face *harfbuzz.Face) (*tables, error) {
	data := face.Blob().Data()
	if len(data) == 0 {
		return nil, errors.New("otfont: face has no font file")
	}
	var sf *sfnt.Font
	var err error
	if face.Index() == 0 {
		sf, err = sfnt.Parse(data)
	} else {
		var c *sfnt.Collection
		if c, err = sfnt.ParseCollection(data); err == nil {
			sf, err = c.Font(face.Index())
		}
	}
	if err != nil {
		return nil, fmt.Errorf("otfont: %w", err)
	}
	t := &tables{sf: sf, ppem: fixed.I(int(sf.UnitsPerEm()))}
	t.pool.New = func() any { return &sfnt.Buffer{} }
	t.hhea, t.hasHhea = otquery.HHeaInfo(face.Table(harfbuzz.TagHhea).Data())
	if name, err := sf.Name(nil, sfnt.NameIDFull); err == nil {
		tracer().Debugf("font functions for %q, %d glyphs", name, sf.NumGlyphs())
	}
	return t, nil
}

func (t *tables) buffer() *sfnt.Buffer {
	return t.pool.Get().(*sfnt.Buffer)
}

func (t *tables) release(b *sfnt.Buffer) {
	t.pool.Put(b)
}

func units(v fixed.Int26_6) int32 {
	return int32(v.Round())
}

func (t *tables) funcs() *harfbuzz.FontFuncs {
	ff := harfbuzz.NewFontFuncs()
	ff.NominalGlyph = t.nominalGlyph
	ff.HAdvance = t.hAdvance
	ff.VAdvance = t.vAdvance
	ff.HOrigin = func(*harfbuzz.Font, harfbuzz.GID) (harfbuzz.Position, harfbuzz.Position, bool) {
		return 0, 0, true
	}
	ff.VOrigin = t.vOrigin
	ff.HKerning = t.hKerning
	ff.Extents = t.extents
	ff.GlyphName = t.glyphName
	ff.GlyphFromName = t.glyphFromName
	ff.HExtents = t.hExtents
	ff.VExtents = t.vExtents
	ff.MakeImmutable()
	return ff
}

func (t *tables) nominalGlyph(_ *harfbuzz.Font, u rune) (harfbuzz.GID, bool) {
	b := t.buffer()
	defer t.release(b)
	g, err := t.sf.GlyphIndex(b, u)
	if err != nil || g == 0 {
		return 0, false
	}
	return harfbuzz.GID(g), true
}

func (t *tables) valid(g harfbuzz.GID) bool {
	return int(g) < t.sf.NumGlyphs()
}

func (t *tables) hAdvance(f *harfbuzz.Font, g harfbuzz.GID) (harfbuzz.Position, bool) {
	if !t.valid(g) {
		return 0, false
	}
	b := t.buffer()
	defer t.release(b)
	adv, err := t.sf.GlyphAdvance(b, sfnt.GlyphIndex(g), t.ppem, xfont.HintingNone)
	if err != nil {
		return 0, false
	}
	return f.EmScaleX(units(adv)), true
}

func (t *tables) hKerning(f *harfbuzz.Font, left, right harfbuzz.GID) (harfbuzz.Position, bool) {
	if !t.valid(left) || !t.valid(right) {
		return 0, false
	}
	b := t.buffer()
	defer t.release(b)
	k, err := t.sf.Kern(b, sfnt.GlyphIndex(left), sfnt.GlyphIndex(right), t.ppem, xfont.HintingNone)
	if err != nil {
		return 0, false
	}
	return f.EmScaleX(units(k)), true
}

// extents flips the y-down bounds of sfnt to harfbuzz's y-up extents.
func (t *tables) extents(f *harfbuzz.Font, g harfbuzz.GID) (harfbuzz.GlyphExtents, bool) {
	if !t.valid(g) {
		return harfbuzz.GlyphExtents{}, false
	}
	b := t.buffer()
	defer t.release(b)
	bounds, _, err := t.sf.GlyphBounds(b, sfnt.GlyphIndex(g), t.ppem, xfont.HintingNone)
	if err != nil {
		return harfbuzz.GlyphExtents{}, false
	}
	minX, maxX := units(bounds.Min.X), units(bounds.Max.X)
	top, bottom := -units(bounds.Min.Y), -units(bounds.Max.Y)
	return harfbuzz.GlyphExtents{
		XBearing: f.EmScaleX(minX),
		YBearing: f.EmScaleY(top),
		Width:    f.EmScaleX(maxX - minX),
		Height:   f.EmScaleY(bottom - top),
	}, true
}

func (t *tables) glyphName(_ *harfbuzz.Font, g harfbuzz.GID) (string, bool) {
	if !t.valid(g) {
		return "", false
	}
	b := t.buffer()
	defer t.release(b)
	name, err := t.sf.GlyphName(b, sfnt.GlyphIndex(g))
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

func (t *tables) glyphFromName(_ *harfbuzz.Font, name string) (harfbuzz.GID, bool) {
	t.namesOnce.Do(func() {
		b := t.buffer()
		defer t.release(b)
		t.byName = make(map[string]harfbuzz.GID)
		for g := 0; g < t.sf.NumGlyphs(); g++ {
			n, err := t.sf.GlyphName(b, sfnt.GlyphIndex(g))
			if err != nil {
				tracer().Errorf("reading glyph names: %v", err)
				return
			}
			if _, dup := t.byName[n]; n != "" && !dup {
				t.byName[n] = harfbuzz.GID(g)
			}
		}
	})
	g, ok := t.byName[name]
	return g, ok
}

func (t *tables) hExtents(f *harfbuzz.Font) (harfbuzz.FontExtents, bool) {
	if !t.hasHhea {
		return harfbuzz.FontExtents{}, false
	}
	return harfbuzz.FontExtents{
		Ascender:  f.EmScaleY(int32(t.hhea.Ascender)),
		Descender: f.EmScaleY(int32(t.hhea.Descender)),
		LineGap:   f.EmScaleY(int32(t.hhea.LineGap)),
	}, true
}

// vExtents centers the em box on the vertical baseline.
func (t *tables) vExtents(f *harfbuzz.Font) (harfbuzz.FontExtents, bool) {
	half := int32(t.sf.UnitsPerEm()) / 2
	return harfbuzz.FontExtents{
		Ascender:  f.EmScaleX(half),
		Descender: f.EmScaleX(-half),
	}, true
}

// vAdvance is the line height from 'hhea', negative in y-up coordinates.
func (t *tables) vAdvance(f *harfbuzz.Font, g harfbuzz.GID) (harfbuzz.Position, bool) {
	if !t.valid(g) {
		return 0, false
	}
	height := int32(t.sf.UnitsPerEm())
	if t.hasHhea {
		height = int32(t.hhea.Ascender) - int32(t.hhea.Descender)
	}
	return -f.EmScaleY(height), true
}

// vOrigin places the vertical origin half an advance right of the
// horizontal one, at ascender height.
func (t *tables) vOrigin(f *harfbuzz.Font, g harfbuzz.GID) (harfbuzz.Position, harfbuzz.Position, bool) {
	adv, ok := t.hAdvance(f, g)
	if !ok {
		return 0, 0, false
	}
	var ascender int32
	if t.hasHhea {
		ascender = int32(t.hhea.Ascender)
	} else {
		ascender = int32(t.sf.UnitsPerEm())
	}
	return adv / 2, f.EmScaleY(ascender), true
}
