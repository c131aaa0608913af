package harfbuzz

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asciiFontFuncs maps 'a'…'z' to glyphs 1…26 and U+0301 to glyph 30, all
// 500 units wide. The pair (1, 2) is kerned by -50 units.
func asciiFontFuncs() *FontFuncs {
	ff := NewFontFuncs()
	ff.NominalGlyph = func(f *Font, u rune) (GID, bool) {
		switch {
		case u >= 'a' && u <= 'z':
			return GID(u-'a') + 1, true
		case u == 0x0301:
			return 30, true
		case u == ' ':
			return 27, true
		}
		return 0, false
	}
	ff.HAdvance = func(f *Font, g GID) (Position, bool) {
		return f.EmScaleX(500), true
	}
	ff.HKerning = func(f *Font, left, right GID) (Position, bool) {
		if left == 1 && right == 2 {
			return f.EmScaleX(-50), true
		}
		return 0, false
	}
	ff.GlyphName = func(f *Font, g GID) (string, bool) {
		if g >= 1 && g <= 26 {
			return string(rune('a' + g - 1)), true
		}
		return "", false
	}
	ff.GlyphFromName = func(f *Font, name string) (GID, bool) {
		if len(name) == 1 && name[0] >= 'a' && name[0] <= 'z' {
			return GID(name[0]-'a') + 1, true
		}
		return 0, false
	}
	return ff
}

func asciiFont() *Font {
	font := NewFont(EmptyFace())
	font.SetFuncs(asciiFontFuncs())
	return font
}

func TestSubFontDelegation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hbshape.shaper")
	defer teardown()
	//
	parent := asciiFont()
	sub := parent.CreateSubFont()
	assert.True(t, parent.IsImmutable())
	assert.Equal(t, parent, sub.Parent())
	adv, ok := sub.GlyphHAdvance(1)
	require.True(t, ok)
	assert.Equal(t, Position(500), adv)
	g, ok := sub.NominalGlyph('c')
	assert.True(t, ok)
	assert.Equal(t, GID(3), g)
	ff := NewFontFuncs()
	ff.HAdvance = func(*Font, GID) (Position, bool) { return 7, true }
	sub.SetFuncs(ff)
	adv, _ = sub.GlyphHAdvance(1)
	assert.Equal(t, Position(7), adv, "sub-font functions take precedence")
	g, _ = sub.NominalGlyph('c')
	assert.Equal(t, GID(3), g, "missing functions are delegated")
	parent.SetScale(10, 10)
	sx, _ := parent.Scale()
	assert.Equal(t, int32(0), sx, "immutable font ignores settings")
}

func TestSubFontRescaling(t *testing.T) {
	parent := NewFont(EmptyFace())
	parent.SetScale(2000, 2000)
	parent.SetFuncs(asciiFontFuncs())
	sub := parent.CreateSubFont()
	adv, _ := parent.GlyphHAdvance(1)
	assert.Equal(t, Position(1000), adv)
	sub.SetScale(1000, 1000)
	adv, _ = sub.GlyphHAdvance(1)
	assert.Equal(t, Position(500), adv, "parent result is rescaled")
	k, _ := sub.GlyphHKerning(1, 2)
	assert.Equal(t, Position(-50), k)
}

func TestMissingMetrics(t *testing.T) {
	font := EmptyFont()
	_, ok := font.GlyphHAdvance(1)
	assert.False(t, ok)
	x, y := font.GlyphAdvanceForDirection(1, LeftToRight)
	assert.Zero(t, x)
	assert.Zero(t, y)
	h := font.ExtentsForDirection(LeftToRight)
	assert.Equal(t, FontExtents{Ascender: 800, Descender: -200}, h)
	v := font.ExtentsForDirection(TopToBottom)
	assert.Equal(t, FontExtents{Ascender: 500, Descender: -500}, v)
	assert.Nil(t, font.LigatureCarets(LeftToRight, 1))
}

func TestOriginFallback(t *testing.T) {
	font := NewFont(EmptyFace())
	ff := asciiFontFuncs()
	ff.HOrigin = func(*Font, GID) (x, y Position, ok bool) { return 0, 0, true }
	font.SetFuncs(ff)
	x, y := font.GlyphOriginForDirection(1, TopToBottom)
	assert.Equal(t, Position(250), x)
	assert.Equal(t, Position(800), y)
	x, y = font.SubtractGlyphOriginForDirection(1, TopToBottom, 300, 0)
	assert.Equal(t, Position(50), x)
	assert.Equal(t, Position(-800), y)
	x, y = font.GlyphOriginForDirection(1, LeftToRight)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestGlyphStrings(t *testing.T) {
	font := asciiFont()
	assert.Equal(t, "c", font.GlyphToString(3))
	assert.Equal(t, "gid30", font.GlyphToString(30))
	for s, want := range map[string]GID{"c": 3, "gid42": 42, "uni0062": 2, "u0061": 1, "u0301": 30} {
		g, ok := font.GlyphFromString(s)
		assert.True(t, ok, s)
		assert.Equal(t, want, g, s)
	}
	_, ok := font.GlyphFromString("uni00E9")
	assert.False(t, ok)
	_, ok = font.GlyphFromString("nonsense")
	assert.False(t, ok)
	assert.Equal(t, "gid5", EmptyFont().GlyphToString(5))
}

func TestEmScale(t *testing.T) {
	font := NewFont(EmptyFace())
	assert.Equal(t, Position(100), font.EmScaleX(100), "scale 0 means design units")
	font.SetScale(16, 24)
	assert.Equal(t, Position(2), font.EmScaleX(100))
	assert.Equal(t, Position(2), font.EmScaleY(100))
	assert.Equal(t, Position(12), font.EmScaleY(500))
}
