package harfbuzz

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type BufferTestEnviron struct {
	suite.Suite
	buf *Buffer
}

// listen for 'go test' command --> run test methods
func TestBufferFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hbshape.shaper")
	defer teardown()
	suite.Run(t, new(BufferTestEnviron))
}

// run before each test method
func (env *BufferTestEnviron) SetupTest() {
	env.buf = NewBuffer()
}

var utf32 = []rune{'a', 'b', 0x20000, 'd', 'e', 'f', 'g'}

func (env *BufferTestEnviron) codepoints() []rune {
	cps := env.buf.CodepointInfos()
	r := make([]rune, len(cps))
	for i, c := range cps {
		r[i] = c.Codepoint
	}
	return r
}

func (env *BufferTestEnviron) clusters() []uint32 {
	var cl []uint32
	if env.buf.ContentType() == ContentGlyphs {
		for _, g := range env.buf.GlyphInfos() {
			cl = append(cl, g.Cluster)
		}
		return cl
	}
	for _, c := range env.buf.CodepointInfos() {
		cl = append(cl, c.Cluster)
	}
	return cl
}

// --- Tests -----------------------------------------------------------------

func (env *BufferTestEnviron) TestEmptyBuffer() {
	env.Equal(ContentInvalid, env.buf.ContentType())
	env.Equal(0, env.buf.Len())
	env.True(env.buf.AllocationSuccessful())
	env.Equal(MonotoneGraphemes, env.buf.ClusterLevel())
	env.Equal(ReplacementCodepoint, env.buf.Replacement())
	env.Equal(DefaultUnicodeFuncs(), env.buf.UnicodeFuncs())
	env.Nil(env.buf.GlyphInfos())
}

func (env *BufferTestEnviron) TestAddUTF32WithContext() {
	env.buf.AddUTF32(utf32, 1, len(utf32)-2)
	env.Equal(ContentUnicode, env.buf.ContentType())
	env.Equal([]rune{'b', 0x20000, 'd', 'e', 'f'}, env.codepoints())
	env.Equal([]uint32{1, 2, 3, 4, 5}, env.clusters())
	pre, post := env.buf.Context()
	env.Equal([]rune{'a'}, pre)
	env.Equal([]rune{'g'}, post)
}

func (env *BufferTestEnviron) TestAddUTF8Clusters() {
	text := "a\U00020000d"
	env.buf.AddString(text, 0, -1)
	env.Equal([]rune{'a', 0x20000, 'd'}, env.codepoints())
	env.Equal([]uint32{0, 1, 5}, env.clusters(), "clusters are byte offsets")
}

func (env *BufferTestEnviron) TestAddUTF8PreContextLimit() {
	env.buf.AddString("Hello World", 6, 5)
	pre, post := env.buf.Context()
	env.Equal([]rune{' ', 'o', 'l', 'l', 'e'}, pre, "pre-context is nearest first")
	env.Empty(post)
}

func (env *BufferTestEnviron) TestAddUTF8Invalid() {
	env.buf.AddUTF8([]byte("ab\xffc"), 0, -1)
	env.Equal([]rune{'a', 'b', ReplacementCodepoint, 'c'}, env.codepoints())
	env.Equal([]uint32{0, 1, 2, 3}, env.clusters())
	env.buf.Reset()
	env.buf.SetReplacement('?')
	env.buf.AddUTF8([]byte{0xC3}, 0, -1)
	env.Equal([]rune{'?'}, env.codepoints())
}

func (env *BufferTestEnviron) TestAddUTF16() {
	env.buf.AddUTF16([]uint16{'a', 0xD840, 0xDC00, 0xDC00, 'b'}, 0, -1)
	env.Equal([]rune{'a', 0x20000, ReplacementCodepoint, 'b'}, env.codepoints())
	env.Equal([]uint32{0, 1, 3, 4}, env.clusters())
}

func (env *BufferTestEnviron) TestAddUTF32Invalid() {
	env.buf.AddUTF32([]rune{'a', 0xD800, 0x110000, 'b'}, 0, -1)
	env.Equal([]rune{'a', ReplacementCodepoint, ReplacementCodepoint, 'b'}, env.codepoints())
}

func (env *BufferTestEnviron) TestAddLatin1() {
	env.buf.AddLatin1([]byte{'a', 0xE9, 0xFF}, 0, -1)
	env.Equal([]rune{'a', 'é', 'ÿ'}, env.codepoints())
}

func (env *BufferTestEnviron) TestAddCodepointsUnvalidated() {
	env.buf.AddCodepoints([]rune{0xD800, 'x'}, 0, -1)
	env.Equal([]rune{0xD800, 'x'}, env.codepoints())
}

func (env *BufferTestEnviron) TestAddClearsPostContext() {
	env.buf.AddString("abc", 0, 1)
	_, post := env.buf.Context()
	env.Equal([]rune{'b', 'c'}, post)
	env.buf.Add('z', 7)
	_, post = env.buf.Context()
	env.Empty(post)
	env.Equal([]uint32{0, 7}, env.clusters())
}

func (env *BufferTestEnviron) TestReverse() {
	env.buf.AddUTF32(utf32, 0, -1)
	env.buf.Reverse()
	env.Equal([]rune{'g', 'f', 'e', 'd', 0x20000, 'b', 'a'}, env.codepoints())
	env.buf.Reverse()
	env.Equal(utf32, env.codepoints(), "reversing twice restores the order")
	env.buf.ReverseRange(1, 3)
	env.Equal([]rune{'a', 0x20000, 'b', 'd', 'e', 'f', 'g'}, env.codepoints())
}

func (env *BufferTestEnviron) TestReverseClusters() {
	for i, r := range "abcde" {
		env.buf.Add(r, []uint32{0, 0, 1, 2, 2}[i])
	}
	env.buf.ReverseClusters()
	env.Equal([]rune{'d', 'e', 'c', 'a', 'b'}, env.codepoints())
	env.Equal([]uint32{2, 2, 1, 0, 0}, env.clusters())
}

func (env *BufferTestEnviron) TestMergeClusters() {
	for i, r := range "abcde" {
		env.buf.Add(r, []uint32{0, 1, 1, 2, 3}[i])
	}
	env.buf.MergeClusters(2, 4)
	env.Equal([]uint32{0, 1, 1, 1, 3}, env.clusters(), "merge extends to complete clusters")
}

func (env *BufferTestEnviron) TestMergeClustersAtCharacterLevel() {
	for i, r := range "abc" {
		env.buf.Add(r, uint32(i))
	}
	env.buf.SetClusterLevel(Characters)
	env.buf.MergeClusters(0, 3)
	env.Equal([]uint32{0, 1, 2}, env.clusters())
}

func (env *BufferTestEnviron) TestMaxLenCountsCharacters() {
	env.buf.SetMaxLen(2)
	env.buf.AddString("éü", 0, -1)
	env.True(env.buf.AllocationSuccessful(), "4 bytes decode to 2 characters")
	env.Equal([]rune{'é', 'ü'}, env.codepoints())
	env.buf.ClearContents()
	env.buf.AddUTF16([]uint16{0xD840, 0xDC00, 'a'}, 0, -1)
	env.True(env.buf.AllocationSuccessful())
	env.Equal([]rune{0x20000, 'a'}, env.codepoints())
	env.buf.AddString("x", 0, -1)
	env.False(env.buf.AllocationSuccessful())
}

func (env *BufferTestEnviron) TestMaxLen() {
	env.buf.SetMaxLen(2)
	env.buf.AddString("abc", 0, -1)
	env.False(env.buf.AllocationSuccessful())
	env.Equal(0, env.buf.Len())
	env.buf.Add('x', 0)
	env.Equal(0, env.buf.Len(), "failed buffer accepts no input")
	env.buf.ClearContents()
	env.True(env.buf.AllocationSuccessful())
	env.True(env.buf.PreAllocate(2))
	env.False(env.buf.PreAllocate(3))
}

func (env *BufferTestEnviron) TestSetLength() {
	env.True(env.buf.SetLength(3))
	env.Equal(ContentUnicode, env.buf.ContentType())
	env.Equal([]rune{0, 0, 0}, env.codepoints())
	env.True(env.buf.SetLength(1))
	env.Equal(1, env.buf.Len())
	env.True(env.buf.SetLength(0))
	env.Equal(ContentInvalid, env.buf.ContentType())
}

func (env *BufferTestEnviron) TestContentTypeSwitch() {
	env.buf.AddString("ab", 0, -1)
	env.buf.SetContentType(ContentGlyphs)
	env.Equal(ContentGlyphs, env.buf.ContentType())
	env.Equal([]GlyphInfo{{Glyph: 'a', Cluster: 0}, {Glyph: 'b', Cluster: 1}}, env.buf.GlyphInfos())
	env.Len(env.buf.GlyphPositions(), 2)
	env.Nil(env.buf.CodepointInfos())
	env.buf.Add('c', 2)
	env.Equal(2, env.buf.Len(), "shaped buffer accepts no code points")
}

func (env *BufferTestEnviron) TestNormalizeGlyphs() {
	for _, g := range []rune{5, 9, 3} {
		env.buf.Add(g, 0)
	}
	env.buf.Add(7, 1)
	env.buf.SetDirection(LeftToRight)
	env.buf.SetContentType(ContentGlyphs)
	pos := env.buf.GlyphPositions()
	for i, adv := range []Position{10, 20, 30, 40} {
		pos[i].XAdvance = adv
	}
	env.buf.NormalizeGlyphs()
	var ids []GID
	for _, g := range env.buf.GlyphInfos() {
		ids = append(ids, g.Glyph)
	}
	env.Equal([]GID{5, 3, 9, 7}, ids)
	pos = env.buf.GlyphPositions()
	env.Equal([]GlyphPosition{
		{XAdvance: 60},
		{XOffset: -30},
		{XOffset: -50},
		{XAdvance: 40},
	}, pos)
}

func (env *BufferTestEnviron) TestAppend() {
	src := NewBuffer()
	src.AddString("abcd", 0, -1)
	env.buf.Append(src, 1, 3)
	env.Equal([]rune{'b', 'c'}, env.codepoints())
	env.Equal([]uint32{1, 2}, env.clusters())
}

func (env *BufferTestEnviron) TestSnapshotRestore() {
	env.buf.AddString("xyz", 0, -1)
	env.buf.SetDirection(RightToLeft)
	state := env.buf.snapshot()
	env.buf.SetContentType(ContentGlyphs)
	env.buf.SetDirection(LeftToRight)
	env.buf.restore(state)
	env.Equal(ContentUnicode, env.buf.ContentType())
	env.Equal(RightToLeft, env.buf.Direction())
	env.Equal([]rune("xyz"), env.codepoints())
}

func (env *BufferTestEnviron) TestGuessSegmentProperties() {
	env.buf.AddString("١٢ abc سلام", 0, -1)
	env.buf.GuessSegmentProperties()
	env.Equal(ScriptArabic, env.buf.Script())
	env.Equal(RightToLeft, env.buf.Direction())
	env.NotNil(env.buf.Language())

	env.buf.Reset()
	env.buf.AddString("123", 0, -1)
	env.buf.GuessSegmentProperties()
	env.Equal(ScriptInvalid, env.buf.Script(), "digits have no real script")
	env.Equal(LeftToRight, env.buf.Direction())

	env.buf.Reset()
	env.buf.SetDirection(TopToBottom)
	env.buf.AddString("abc", 0, -1)
	env.buf.GuessSegmentProperties()
	env.Equal(TopToBottom, env.buf.Direction(), "set direction is kept")
	env.Equal(ScriptLatin, env.buf.Script())
}
