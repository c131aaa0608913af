package harfbuzz

import (
	"fmt"
)

// Shape converts the Unicode content of buf to positioned glyphs of font,
// applying features. It always succeeds: the backends are tried in the
// order of ListShapers, the last of which maps code points to glyph IDs
// unchanged. Buffers whose allocation failed are left untouched.
//
// If the buffer's direction is not set, the segment properties are guessed
// first.
func Shape(font *Font, buf *Buffer, features []Feature) {
	if !buf.Direction().IsValid() {
		buf.GuessSegmentProperties()
	}
	err := ShapeFull(font, buf, features, nil)
	if err == nil {
		return
	}
	if !buf.AllocationSuccessful() {
		tracer().Errorf("%v", err)
		return
	}
	tracer().Errorf("%v, falling back to trivial shaping", err)
	if buf.ContentType() == ContentUnicode {
		trivialShaper{}.Shape(fontOrEmpty(font), buf, features)
	}
}

// ShapeFull is like Shape, but tries only the backends named in shapers, in
// the given order. nil selects all backends. If none of them can shape the
// buffer, an error wrapping ErrNoShaper is returned and the buffer is left
// unchanged.
//
// The buffer must hold Unicode content and have a valid direction.
func ShapeFull(font *Font, buf *Buffer, features []Feature, shapers []string) error {
	font = fontOrEmpty(font)
	plan := NewShapePlan(font.Face(), buf.Props(), features, shapers)
	return plan.Execute(font, buf, features)
}

func fontOrEmpty(font *Font) *Font {
	if font == nil {
		return EmptyFont()
	}
	return font
}

// ShapePlan is a selection of backends for shaping buffers with given
// segment properties and features with fonts of a face.
type ShapePlan struct {
	face     *Face
	props    SegmentProperties
	features []Feature
	shapers  []Shaper
	used     string
}

// NewShapePlan selects the backends named in shapers, or all backends for
// nil.
func NewShapePlan(face *Face, props SegmentProperties, features []Feature, shapers []string) *ShapePlan {
	plan := &ShapePlan{
		face:     face,
		props:    props,
		features: append([]Feature(nil), features...),
		shapers:  defaultShaperRegistry.candidates(shapers),
	}
	tracer().Debugf("shape plan for %s: %v", props, names(plan.shapers))
	return plan
}

// Props returns the segment properties the plan was made for.
func (plan *ShapePlan) Props() SegmentProperties {
	return plan.props
}

// Shapers returns the names of the backends the plan tries.
func (plan *ShapePlan) Shapers() []string {
	return names(plan.shapers)
}

// Shaper returns the name of the backend which shaped the last buffer, or
// "" if none did.
func (plan *ShapePlan) Shaper() string {
	return plan.used
}

// Execute shapes buf with font. features may be nil to use the plan's
// features.
func (plan *ShapePlan) Execute(font *Font, buf *Buffer, features []Feature) error {
	font = fontOrEmpty(font)
	if features == nil {
		features = plan.features
	}
	plan.used = ""
	if !buf.AllocationSuccessful() {
		return fmt.Errorf("%w: buffer allocation failed", ErrInvalidContent)
	}
	if buf.Len() == 0 && buf.ContentType() != ContentGlyphs {
		buf.SetContentType(ContentGlyphs)
		return nil
	}
	if buf.ContentType() != ContentUnicode {
		return fmt.Errorf("%w: buffer holds %s", ErrInvalidContent, buf.ContentType())
	}
	if !buf.Direction().IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidDirection, buf.Direction())
	}
	if font.Face() != plan.face {
		tracer().Infof("shape plan executed with font of another face")
	}
	if !buf.Props().Equal(plan.props) {
		tracer().Infof("shape plan for %s executed on buffer with %s", plan.props, buf.Props())
	}
	state := buf.snapshot()
	for _, s := range plan.shapers {
		if s.Shape(font, buf, features) {
			assertf(buf.ContentType() == ContentGlyphs, "shaper did not produce glyphs")
			plan.used = s.Name()
			tracer().Debugf("buffer shaped by %q, %d glyphs", s.Name(), buf.Len())
			return nil
		}
		tracer().Debugf("shaper %q cannot shape buffer", s.Name())
		buf.restore(state)
	}
	return fmt.Errorf("%w (tried %v)", ErrNoShaper, names(plan.shapers))
}

// --- Feature masks -------------------------------------------------------------

// featureMasks assigns mask bits to features. Bit 0 is set for every glyph;
// each distinct feature tag gets the next bit, up to 31 tags.
type featureMasks struct {
	features []Feature
	tags     []Tag
}

func newFeatureMasks(features []Feature) featureMasks {
	fm := featureMasks{features: features}
	for _, f := range features {
		if fm.bit(f.Tag) == 0 && len(fm.tags) < 31 {
			fm.tags = append(fm.tags, f.Tag)
		}
	}
	return fm
}

func (fm featureMasks) bit(tag Tag) uint32 {
	for i, t := range fm.tags {
		if t == tag {
			return 1 << (i + 1)
		}
	}
	return 0
}

// mask returns the mask of a glyph of the given cluster. Later features
// override earlier ones.
func (fm featureMasks) mask(cluster uint32) uint32 {
	mask := uint32(1)
	for _, f := range fm.features {
		if !f.covers(cluster) {
			continue
		}
		if f.Value != 0 {
			mask |= fm.bit(f.Tag)
		} else {
			mask &^= fm.bit(f.Tag)
		}
	}
	return mask
}

// enabled reports whether the feature with the given tag is on at cluster.
// Features not mentioned take the value of def.
func (fm featureMasks) enabled(tag Tag, cluster uint32, def bool) bool {
	if fm.bit(tag) == 0 {
		return def
	}
	return fm.mask(cluster)&fm.bit(tag) != 0 || (def && !fm.mentions(tag, cluster))
}

func (fm featureMasks) mentions(tag Tag, cluster uint32) bool {
	for _, f := range fm.features {
		if f.Tag == tag && f.covers(cluster) {
			return true
		}
	}
	return false
}

// applyMasks sets the mask of every glyph of buf.
func (fm featureMasks) applyMasks(buf *Buffer) {
	for i := range buf.glyphs {
		buf.glyphs[i].Mask = fm.mask(buf.glyphs[i].Cluster)
	}
}
