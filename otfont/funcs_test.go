package otfont

import (
	"testing"

	"github.com/npillmayer/hbshape/harfbuzz"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

type FuncsTestEnviron struct {
	suite.Suite
	face *harfbuzz.Face
	font *harfbuzz.Font
	upem int32
}

func TestFontFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hbshape.font")
	defer teardown()
	suite.Run(t, new(FuncsTestEnviron))
}

func (env *FuncsTestEnviron) SetupTest() {
	env.face = harfbuzz.NewFace(harfbuzz.NewBlob(goregular.TTF, harfbuzz.Readonly), 0)
	env.font = harfbuzz.NewFont(env.face)
	env.Require().NoError(SetFuncs(env.font))
	sf, err := sfnt.Parse(goregular.TTF)
	env.Require().NoError(err)
	env.upem = int32(sf.UnitsPerEm())
	env.Require().EqualValues(env.upem, env.face.Upem())
}

func (env *FuncsTestEnviron) glyph(r rune) harfbuzz.GID {
	g, ok := env.font.NominalGlyph(r)
	env.Require().True(ok, "expected glyph for %q", r)
	return g
}

func (env *FuncsTestEnviron) TestGlyphMapping() {
	env.NotEqual(env.glyph('a'), env.glyph('b'))
	_, ok := env.font.NominalGlyph(0x10FFFD)
	env.False(ok, "private use plane 16 is not covered")
	g, ok := env.font.Glyph('a', 0)
	env.True(ok)
	env.Equal(env.glyph('a'), g)
}

func (env *FuncsTestEnviron) TestAdvancesFollowScale() {
	h := env.glyph('H')
	adv, ok := env.font.GlyphHAdvance(h)
	env.Require().True(ok)
	env.Positive(adv)
	env.font.SetScale(2*env.upem, 2*env.upem)
	doubled, _ := env.font.GlyphHAdvance(h)
	env.Equal(2*adv, doubled)
	_, ok = env.font.GlyphHAdvance(harfbuzz.GID(1 << 20))
	env.False(ok, "glyph out of range")
}

func (env *FuncsTestEnviron) TestExtents() {
	ext, ok := env.font.GlyphExtents(env.glyph('H'))
	env.Require().True(ok)
	env.Positive(ext.YBearing, "'H' sits on the baseline")
	env.Negative(ext.Height, "y grows upwards")
	env.Positive(ext.Width)
	env.Equal(ext.YBearing, -ext.Height, "'H' has no descender")
	low, _ := env.font.GlyphExtents(env.glyph('p'))
	env.Less(low.YBearing+low.Height, harfbuzz.Position(0), "'p' descends below the baseline")
}

func (env *FuncsTestEnviron) TestFontExtents() {
	h, ok := env.font.HExtents()
	env.Require().True(ok)
	env.Positive(h.Ascender)
	env.Negative(h.Descender)
	v, ok := env.font.VExtents()
	env.Require().True(ok)
	env.Equal(env.upem/2, v.Ascender)
	env.Equal(-env.upem/2, v.Descender)
}

func (env *FuncsTestEnviron) TestVerticalMetrics() {
	g := env.glyph('H')
	h, _ := env.font.HExtents()
	vadv, ok := env.font.GlyphVAdvance(g)
	env.Require().True(ok)
	env.Equal(-(h.Ascender - h.Descender), vadv)
	hadv, _ := env.font.GlyphHAdvance(g)
	x, y := env.font.GlyphOriginForDirection(g, harfbuzz.TopToBottom)
	env.Equal(hadv/2, x)
	env.Equal(h.Ascender, y)
	x, y = env.font.GlyphOriginForDirection(g, harfbuzz.LeftToRight)
	env.Zero(x)
	env.Zero(y)
}

func (env *FuncsTestEnviron) TestGlyphNames() {
	a := env.glyph('A')
	name, ok := env.font.GlyphName(a)
	env.Require().True(ok)
	env.Equal("A", name)
	exclam, _ := env.font.GlyphName(env.glyph('!'))
	env.Equal("exclam", exclam)
	g, ok := env.font.GlyphFromName("A")
	env.True(ok)
	env.Equal(a, g)
	_, ok = env.font.GlyphFromName("no-such-glyph")
	env.False(ok)
	env.Equal("A", env.font.GlyphToString(a))
}

func (env *FuncsTestEnviron) TestSubFontInherits() {
	sub := env.font.CreateSubFont()
	sub.SetScale(env.upem/2, env.upem/2)
	h := env.glyph('H')
	adv, _ := env.font.GlyphHAdvance(h)
	half, ok := sub.GlyphHAdvance(h)
	env.True(ok)
	env.InDelta(float64(adv)/2, float64(half), 1)
}

// Fallback shaping driven by these functions agrees with the OpenType
// backend for a single glyph.
func (env *FuncsTestEnviron) TestFallbackMatchesOpenType() {
	shape := func(shaper string) *harfbuzz.Buffer {
		buf := harfbuzz.NewBuffer()
		buf.AddString("H", 0, -1)
		buf.GuessSegmentProperties()
		env.Require().NoError(harfbuzz.ShapeFull(env.font, buf, nil, []string{shaper}))
		return buf
	}
	ot, fb := shape("ot"), shape("fallback")
	env.Require().Equal(1, fb.Len())
	env.Equal(ot.GlyphInfos()[0].Glyph, fb.GlyphInfos()[0].Glyph)
	env.Equal(ot.GlyphPositions()[0].XAdvance, fb.GlyphPositions()[0].XAdvance)
}

func TestSetFuncsErrors(t *testing.T) {
	assert.Error(t, SetFuncs(nil))
	assert.Error(t, SetFuncs(harfbuzz.EmptyFont()))
	broken := harfbuzz.NewFont(harfbuzz.NewFace(harfbuzz.NewBlob([]byte("not a font"), harfbuzz.Readonly), 0))
	assert.Error(t, SetFuncs(broken))
	assert.Nil(t, broken.Funcs())
}
