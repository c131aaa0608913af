package harfbuzz

import (
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/uax/grapheme"
)

// trivialShaper maps every code point to the glyph with the same ID. It
// never fails and is the last resort of Shape.
type trivialShaper struct{}

func (trivialShaper) Name() string { return "trivial" }

func (trivialShaper) Shape(font *Font, buf *Buffer, features []Feature) bool {
	formClusters(buf)
	fm := newFeatureMasks(features)
	dir := buf.Direction()
	n := len(buf.codepoints)
	glyphs, positions := make([]GlyphInfo, n), make([]GlyphPosition, n)
	for i, c := range buf.codepoints {
		g := GID(c.Codepoint)
		glyphs[i] = GlyphInfo{Glyph: g, Cluster: c.Cluster, Mask: fm.mask(c.Cluster)}
		positions[i].XAdvance, positions[i].YAdvance = font.GlyphAdvanceForDirection(g, dir)
	}
	buf.setGlyphs(glyphs, positions)
	if dir.IsBackward() {
		buf.Reverse()
	}
	return true
}

var graphemeSetup sync.Once

// formClusters merges the clusters of each extended grapheme cluster, if
// the buffer's cluster level asks for it.
func formClusters(buf *Buffer) {
	if buf.clusterLevel != MonotoneGraphemes || len(buf.codepoints) < 2 {
		return
	}
	graphemeSetup.Do(grapheme.SetupGraphemeClasses)
	runes := make([]rune, len(buf.codepoints))
	for i, c := range buf.codepoints {
		runes[i] = c.Codepoint
	}
	gstr := grapheme.StringFromString(string(runes))
	start := 0
	for k := 0; k < gstr.Len() && start < len(runes); k++ {
		end := start + utf8.RuneCountInString(gstr.Nth(k))
		if end-start > 1 {
			buf.MergeClusters(start, end)
		}
		start = end
	}
}
