package hbshape

import (
	"testing"

	"github.com/npillmayer/hbshape/harfbuzz"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestShapeText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hbshape.shaper")
	defer teardown()
	//
	font, err := NewFont(goregular.TTF)
	require.NoError(t, err)
	buf, err := ShapeText(font, "Hello", "kern")
	require.NoError(t, err)
	require.Equal(t, 5, buf.Len())
	assert.Equal(t, harfbuzz.LeftToRight, buf.Direction())
	assert.Equal(t, harfbuzz.ScriptLatin, buf.Script())
	assert.Equal(t, buf.GlyphInfos()[2].Glyph, buf.GlyphInfos()[3].Glyph, "both l's map to one glyph")
	for i, p := range buf.GlyphPositions() {
		assert.Positive(t, p.XAdvance, "glyph %d", i)
	}
	_, err = ShapeText(font, "Hello", "kern[")
	assert.ErrorIs(t, err, harfbuzz.ErrMalformedFeature)
}

func TestShapeTextEmpty(t *testing.T) {
	font, err := NewFont(goregular.TTF)
	require.NoError(t, err)
	buf, err := ShapeText(font, "", "")
	require.NoError(t, err)
	assert.Zero(t, buf.Len())
}

func TestNewFontErrors(t *testing.T) {
	_, err := NewFont(nil)
	assert.Error(t, err)
	_, err = NewFont([]byte("not a font"))
	assert.Error(t, err)
}

func TestFamilyName(t *testing.T) {
	font, err := NewFont(goregular.TTF)
	require.NoError(t, err)
	family, sub := FamilyName(font.Face())
	assert.Equal(t, "Go", family)
	assert.Equal(t, "Regular", sub)
	family, sub = FamilyName(nil)
	assert.Empty(t, family + sub)
}
