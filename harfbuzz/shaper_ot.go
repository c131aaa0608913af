package harfbuzz

import (
	"sort"
	"sync"

	"github.com/go-text/typesetting/di"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// otShaper applies the OpenType layout tables of the face, using the
// HarfBuzz port of go-text/typesetting. It works on the face's font file
// and ignores the font's metric functions. It cannot shape faces without a
// parsable font file.
type otShaper struct{}

func (otShaper) Name() string { return "ot" }

// HarfbuzzShaper keeps state between calls and is not safe for concurrent
// use.
var otShaperPool = sync.Pool{
	New: func() any { return &shaping.HarfbuzzShaper{} },
}

func (otShaper) Shape(font *Font, buf *Buffer, features []Feature) bool {
	face, err := font.face.goTextFace()
	if err != nil {
		return false
	}
	formClusters(buf)
	cps := buf.codepoints
	dir := buf.Direction()
	pre, post := buf.Context()
	text := make([]rune, 0, len(pre)+len(cps)+len(post))
	for i := len(pre) - 1; i >= 0; i-- {
		text = append(text, pre[i])
	}
	runStart := len(text)
	for _, c := range cps {
		text = append(text, c.Codepoint)
	}
	text = append(text, post...)
	sx, sy := font.effectiveScale()
	size := sx
	if dir.IsVertical() {
		size = sy
	}
	script := ScriptCommon
	if buf.Script().isRealScript() {
		script = buf.Script()
	}
	input := shaping.Input{
		Text:      text,
		Direction: otDirection(dir),
		Face:      face,
		Size:      fixed.I(int(size)),
		Script:    script.goText(),
		Language:  language.NewLanguage(buf.Language().String()),
	}
	shaper := otShaperPool.Get().(*shaping.HarfbuzzShaper)
	defer otShaperPool.Put(shaper)
	var runs [][]GlyphInfo
	var runPos [][]GlyphPosition
	for _, seg := range featureSegments(cps, features) {
		input.RunStart, input.RunEnd = runStart+seg.start, runStart+seg.end
		input.FontFeatures = seg.features
		out := shaper.Shape(input)
		glyphs := make([]GlyphInfo, len(out.Glyphs))
		positions := make([]GlyphPosition, len(out.Glyphs))
		for i, g := range out.Glyphs {
			inx := min(max(g.TextIndex()-runStart, 0), len(cps)-1)
			glyphs[i] = GlyphInfo{Glyph: GID(g.GlyphID), Cluster: cps[inx].Cluster}
			positions[i] = GlyphPosition{XOffset: Position(g.XOffset.Round()), YOffset: Position(g.YOffset.Round())}
			if dir.IsVertical() {
				positions[i].YAdvance = Position(g.Advance.Round())
			} else {
				positions[i].XAdvance = Position(g.Advance.Round())
			}
		}
		runs, runPos = append(runs, glyphs), append(runPos, positions)
	}
	if dir.IsBackward() {
		for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
			runs[i], runs[j] = runs[j], runs[i]
			runPos[i], runPos[j] = runPos[j], runPos[i]
		}
	}
	var glyphs []GlyphInfo
	var positions []GlyphPosition
	for i := range runs {
		glyphs = append(glyphs, runs[i]...)
		positions = append(positions, runPos[i]...)
	}
	buf.setGlyphs(glyphs, positions)
	newFeatureMasks(features).applyMasks(buf)
	tracer().Debugf("ot: %d code points shaped to %d glyphs in %d runs", len(text)-len(pre)-len(post), len(glyphs), len(runs))
	return true
}

func otDirection(dir Direction) di.Direction {
	switch dir {
	case RightToLeft:
		return di.DirectionRTL
	case TopToBottom:
		return di.DirectionTTB
	case BottomToTop:
		return di.DirectionBTT
	}
	return di.DirectionLTR
}

type featureSegment struct {
	start, end int
	features   []shaping.FontFeature
}

// featureSegments splits the code points at the boundaries of ranged
// features. Each segment carries the features active for it, global ones
// included.
func featureSegments(cps []CodepointInfo, features []Feature) []featureSegment {
	cuts := map[int]bool{0: true, len(cps): true}
	firstAt := func(cluster uint32) int {
		return sort.Search(len(cps), func(i int) bool { return cps[i].Cluster >= cluster })
	}
	for _, f := range features {
		if !f.IsGlobal() {
			cuts[firstAt(f.Start)] = true
			if f.End != FeatureGlobalEnd {
				cuts[firstAt(f.End)] = true
			}
		}
	}
	bounds := make([]int, 0, len(cuts))
	for c := range cuts {
		bounds = append(bounds, c)
	}
	sort.Ints(bounds)
	segments := make([]featureSegment, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		seg := featureSegment{start: bounds[i], end: bounds[i+1]}
		if seg.start == seg.end {
			continue
		}
		cluster := cps[seg.start].Cluster
		for _, f := range features {
			if f.covers(cluster) {
				seg.features = append(seg.features, shaping.FontFeature{Tag: ot.Tag(f.Tag), Value: f.Value})
			}
		}
		segments = append(segments, seg)
	}
	return segments
}
