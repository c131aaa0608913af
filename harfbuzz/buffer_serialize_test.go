package harfbuzz

import (
	"encoding/json"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serializedGlyphs = "a=0+450 gid30=0@-10,5+0 b=3+500,-20"

func deserializedBuffer(t *testing.T, font *Font) *Buffer {
	t.Helper()
	buf := NewBuffer()
	require.NoError(t, buf.DeserializeGlyphs(serializedGlyphs, font, SerializeText))
	return buf
}

func TestSerializeText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hbshape.shaper")
	defer teardown()
	//
	font := asciiFont()
	buf := deserializedBuffer(t, font)
	require.Equal(t, 3, buf.Len())
	assert.Equal(t, []GID{1, 30, 2}, glyphIDs(buf))
	assert.Equal(t, []uint32{0, 0, 3}, glyphClusters(buf))
	assert.Equal(t, GlyphPosition{XOffset: -10, YOffset: 5}, buf.GlyphPositions()[1])
	assert.Equal(t, serializedGlyphs, buf.SerializeAll(font, SerializeText, 0))
	assert.Equal(t, "1=0+450 30=0@-10,5+0 2=3+500,-20", buf.SerializeAll(nil, SerializeText, 0))
	assert.Equal(t, "a gid30 b", buf.SerializeAll(font, SerializeText, SerializeNoClusters|SerializeNoPositions))
	assert.Equal(t, "1 30 2", buf.SerializeAll(font, SerializeText,
		SerializeNoClusters|SerializeNoPositions|SerializeNoGlyphNames))
	assert.Equal(t, "a<0,0,0,0>", bufferFrom(t, "a", font).SerializeAll(font, SerializeText,
		SerializeNoClusters|SerializeNoPositions|SerializeGlyphExtents))
}

// bufferFrom deserializes glyphs in text format.
func bufferFrom(t *testing.T, text string, font *Font) *Buffer {
	t.Helper()
	buf := NewBuffer()
	require.NoError(t, buf.DeserializeGlyphs(text, font, SerializeText))
	return buf
}

func TestSerializeJSON(t *testing.T) {
	font := asciiFont()
	buf := deserializedBuffer(t, font)
	js := buf.SerializeAll(font, SerializeJSON, 0)
	assert.Equal(t, `[{"g":"a","cl":0,"dx":0,"dy":0,"ax":450,"ay":0},`+
		`{"g":"gid30","cl":0,"dx":-10,"dy":5,"ax":0,"ay":0},`+
		`{"g":"b","cl":3,"dx":0,"dy":0,"ax":500,"ay":-20}]`, js)
	assert.Equal(t, `[{"g":1},{"g":30},{"g":2}]`, buf.SerializeAll(nil, SerializeJSON, SerializeNoClusters|SerializeNoPositions))
	copied := NewBuffer()
	require.NoError(t, copied.DeserializeGlyphs(js, font, SerializeJSON))
	assert.Equal(t, buf.GlyphInfos(), copied.GlyphInfos())
	assert.Equal(t, buf.GlyphPositions(), copied.GlyphPositions())
}

func TestSerializeLimitedSink(t *testing.T) {
	font := asciiFont()
	buf := deserializedBuffer(t, font)
	sink, n := buf.SerializeGlyphs(0, buf.Len(), make([]byte, 0, 10), font, SerializeText, 0)
	assert.Equal(t, 1, n)
	assert.Equal(t, "a=0+450", string(sink))
	sink = append(make([]byte, 0, 100), sink...)
	sink, n = buf.SerializeGlyphs(n, buf.Len(), sink, font, SerializeText, 0)
	assert.Equal(t, 2, n)
	assert.Equal(t, serializedGlyphs, string(sink), "serializing in pieces gives the same result")
	_, n = buf.SerializeGlyphs(0, buf.Len(), nil, font, SerializeInvalid, 0)
	assert.Zero(t, n)
}

func TestSerializeJSONRange(t *testing.T) {
	buf := deserializedBuffer(t, asciiFont())
	flags := SerializeNoPositions
	sink, n := buf.SerializeGlyphs(0, 2, make([]byte, 0, 256), nil, SerializeJSON, flags)
	require.Equal(t, 2, n)
	assert.Equal(t, `[{"g":1,"cl":0},{"g":30,"cl":0}]`, string(sink))
	assert.True(t, json.Valid(sink))
	sink, n = buf.SerializeGlyphs(2, 3, make([]byte, 0, 256), nil, SerializeJSON, flags)
	require.Equal(t, 1, n)
	assert.Equal(t, `,{"g":2,"cl":3}]`, string(sink))
}

func TestSerializeWithoutGlyphs(t *testing.T) {
	buf := NewBuffer()
	buf.AddString("abc", 0, -1)
	assert.Empty(t, buf.SerializeAll(nil, SerializeText, 0))
	assert.Empty(t, buf.SerializeAll(nil, SerializeJSON, 0))
	glyphs := deserializedBuffer(t, asciiFont())
	assert.Empty(t, glyphs.SerializeAll(nil, SerializeInvalid, 0))
	assert.Empty(t, NewBuffer().SerializeAll(nil, SerializeText, 0))
}

func TestDeserializeBrackets(t *testing.T) {
	buf := bufferFrom(t, "[a=0+450|b=1+500]", asciiFont())
	assert.Equal(t, []GID{1, 2}, glyphIDs(buf))
	assert.Equal(t, []Position{450, 500}, xAdvances(buf))
	buf = bufferFrom(t, "uni0063 gid7", asciiFont())
	assert.Equal(t, []GID{3, 7}, glyphIDs(buf))
}

func TestDeserializeErrors(t *testing.T) {
	font := asciiFont()
	buf := bufferFrom(t, "a", font)
	for _, bad := range []string{"zzz", "a=x", "a@1", "a+1,2,3", "a<1,2>", "a=1#", "[a|b", "=1"} {
		err := buf.DeserializeGlyphs(bad, font, SerializeText)
		assert.ErrorIs(t, err, ErrMalformedGlyphs, bad)
	}
	assert.Equal(t, 1, buf.Len(), "buffer is unchanged after errors")
	assert.ErrorIs(t, buf.DeserializeGlyphs(`[{"cl":1}]`, font, SerializeJSON), ErrMalformedGlyphs)
	assert.ErrorIs(t, buf.DeserializeGlyphs(`{`, font, SerializeJSON), ErrMalformedGlyphs)
	unicode := NewBuffer()
	unicode.AddString("a", 0, -1)
	assert.ErrorIs(t, unicode.DeserializeGlyphs("a", font, SerializeText), ErrMalformedGlyphs)
}

func TestSerializeFormatNames(t *testing.T) {
	assert.Equal(t, SerializeText, SerializeFormatFromString("TEXT"))
	assert.Equal(t, SerializeJSON, SerializeFormatFromString("json"))
	assert.Equal(t, SerializeInvalid, SerializeFormatFromString("xml"))
	for _, name := range SerializeFormats() {
		assert.Equal(t, name, SerializeFormatFromString(name).String())
	}
}
