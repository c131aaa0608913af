package harfbuzz

import (
	"cmp"
	"slices"
)

// ContentType tells which of the two item representations a Buffer holds.
type ContentType uint8

const (
	ContentInvalid ContentType = iota // empty buffer, no content yet
	ContentUnicode                    // code points, before shaping
	ContentGlyphs                     // positioned glyphs, after shaping
)

func (ct ContentType) String() string {
	switch ct {
	case ContentUnicode:
		return "unicode"
	case ContentGlyphs:
		return "glyphs"
	}
	return "invalid"
}

// BufferFlags control details of shaping.
type BufferFlags uint32

const (
	// FlagBOT marks the buffer content as the beginning of text.
	FlagBOT BufferFlags = 1 << iota
	// FlagEOT marks the buffer content as the end of text.
	FlagEOT
	// FlagPreserveDefaultIgnorables keeps default ignorable code points
	// visible instead of replacing them by the invisible glyph.
	FlagPreserveDefaultIgnorables
	// FlagRemoveDefaultIgnorables removes default ignorable code points
	// from the output.
	FlagRemoveDefaultIgnorables
)

// ClusterLevel controls how shaping merges cluster values.
type ClusterLevel uint8

const (
	// MonotoneGraphemes merges clusters of grapheme clusters and keeps
	// cluster values monotone. This is the default.
	MonotoneGraphemes ClusterLevel = iota
	// MonotoneCharacters keeps cluster values monotone without merging
	// marks into their base.
	MonotoneCharacters
	// Characters does neither.
	Characters
)

const (
	// ReplacementCodepoint is the default substitute for invalid input.
	ReplacementCodepoint rune = 0xFFFD
	// DefaultMaxLen is the default limit on the number of buffer items.
	DefaultMaxLen = 0x3FFFFFFF
	maxContext    = 5
)

// CodepointInfo is an item of a buffer holding Unicode content.
type CodepointInfo struct {
	Codepoint rune
	Cluster   uint32
}

// GlyphInfo is an item of a buffer holding glyphs.
type GlyphInfo struct {
	Glyph   GID
	Mask    uint32 // features applied to the glyph, see Shape
	Cluster uint32
}

// GlyphPosition is the placement of a glyph.
type GlyphPosition struct {
	XAdvance Position
	YAdvance Position
	XOffset  Position
	YOffset  Position
}

// Buffer is the input and output of shaping. It is filled with code points,
// given segment properties, and converted to positioned glyphs in place by
// Shape.
//
// Buffers keep an allocation status. If an operation would exceed the
// buffer's maximum length, the buffer is marked as failed and all further
// mutating operations are ignored until Reset or ClearContents.
//
// Slices returned by a buffer are invalidated by any mutating call.
type Buffer struct {
	UserData
	unicode      *UnicodeFuncs
	props        SegmentProperties
	flags        BufferFlags
	clusterLevel ClusterLevel
	replacement  rune
	invisible    GID
	maxLen       int

	contentType ContentType
	codepoints  []CodepointInfo
	glyphs      []GlyphInfo
	positions   []GlyphPosition
	context     [2][]rune // pre-context (nearest first), post-context
	successful  bool
}

// NewBuffer creates an empty buffer with default settings.
func NewBuffer() *Buffer {
	b := &Buffer{}
	b.Reset()
	return b
}

// Reset returns the buffer to the state of a newly created one, keeping
// allocated memory.
func (b *Buffer) Reset() {
	b.unicode = DefaultUnicodeFuncs()
	b.flags = 0
	b.clusterLevel = MonotoneGraphemes
	b.replacement = ReplacementCodepoint
	b.invisible = 0
	b.maxLen = DefaultMaxLen
	b.ClearContents()
}

// ClearContents empties the buffer and resets the segment properties and
// allocation status. Unicode functions, flags, cluster level and
// replacement code point are kept.
func (b *Buffer) ClearContents() {
	b.props = SegmentProperties{}
	b.contentType = ContentInvalid
	b.codepoints = b.codepoints[:0]
	b.glyphs = b.glyphs[:0]
	b.positions = b.positions[:0]
	b.context[0] = b.context[0][:0]
	b.context[1] = b.context[1][:0]
	b.successful = true
}

// --- Settings ----------------------------------------------------------------

// Props returns the segment properties.
func (b *Buffer) Props() SegmentProperties { return b.props }

// SetProps sets the segment properties.
func (b *Buffer) SetProps(props SegmentProperties) { b.props = props }

// Direction returns the text direction.
func (b *Buffer) Direction() Direction { return b.props.Direction }

// SetDirection sets the text direction.
func (b *Buffer) SetDirection(dir Direction) { b.props.Direction = dir }

// Script returns the script.
func (b *Buffer) Script() Script { return b.props.Script }

// SetScript sets the script.
func (b *Buffer) SetScript(script Script) { b.props.Script = script }

// Language returns the language.
func (b *Buffer) Language() Language { return b.props.Language }

// SetLanguage sets the language.
func (b *Buffer) SetLanguage(lang Language) { b.props.Language = lang }

// Flags returns the buffer flags.
func (b *Buffer) Flags() BufferFlags { return b.flags }

// SetFlags sets the buffer flags.
func (b *Buffer) SetFlags(flags BufferFlags) { b.flags = flags }

// ClusterLevel returns the cluster level.
func (b *Buffer) ClusterLevel() ClusterLevel { return b.clusterLevel }

// SetClusterLevel sets the cluster level.
func (b *Buffer) SetClusterLevel(level ClusterLevel) { b.clusterLevel = level }

// Replacement returns the code point substituted for invalid input.
func (b *Buffer) Replacement() rune { return b.replacement }

// SetReplacement sets the code point substituted for invalid input.
func (b *Buffer) SetReplacement(r rune) { b.replacement = r }

// Invisible returns the glyph used for default ignorables. 0 means that
// ignorables are replaced by the glyph of the space character, with zero
// advance.
func (b *Buffer) Invisible() GID { return b.invisible }

// SetInvisible sets the glyph used for default ignorables.
func (b *Buffer) SetInvisible(g GID) { b.invisible = g }

// MaxLen returns the maximum number of items.
func (b *Buffer) MaxLen() int { return b.maxLen }

// SetMaxLen limits the number of items. Exceeding the limit is treated as
// an allocation failure.
func (b *Buffer) SetMaxLen(n int) { b.maxLen = n }

// UnicodeFuncs returns the Unicode functions used by the buffer.
func (b *Buffer) UnicodeFuncs() *UnicodeFuncs { return b.unicode }

// SetUnicodeFuncs sets the Unicode functions. nil selects the default
// functions.
func (b *Buffer) SetUnicodeFuncs(ufuncs *UnicodeFuncs) {
	if ufuncs == nil {
		ufuncs = DefaultUnicodeFuncs()
	}
	b.unicode = ufuncs
}

// Context returns the text before and after the buffer's content, as
// captured by the Add* methods. The pre-context is ordered nearest first.
func (b *Buffer) Context() (pre, post []rune) {
	return b.context[0], b.context[1]
}

// --- Capacity ------------------------------------------------------------------

// ensure checks that the buffer may hold n items.
func (b *Buffer) ensure(n int) bool {
	if !b.successful {
		return false
	}
	if n < 0 || (b.maxLen > 0 && n > b.maxLen) {
		tracer().Errorf("buffer: cannot allocate %d items, maximum is %d", n, b.maxLen)
		b.successful = false
		return false
	}
	return true
}

// AllocationSuccessful reports whether all operations since the last reset
// could allocate the memory they needed.
func (b *Buffer) AllocationSuccessful() bool {
	return b.successful
}

// PreAllocate makes room for n items. It returns false, and marks the
// buffer as failed, if n exceeds the maximum length.
func (b *Buffer) PreAllocate(n int) bool {
	if !b.ensure(n) {
		return false
	}
	if b.contentType == ContentGlyphs {
		b.glyphs = slices.Grow(b.glyphs, n-len(b.glyphs))
		b.positions = slices.Grow(b.positions, n-len(b.positions))
	} else {
		b.codepoints = slices.Grow(b.codepoints, n-len(b.codepoints))
	}
	return true
}

// Len returns the number of items.
func (b *Buffer) Len() int {
	if b.contentType == ContentGlyphs {
		return len(b.glyphs)
	}
	return len(b.codepoints)
}

// SetLength truncates the buffer or extends it with zero items. Extending
// a buffer without content gives it Unicode content. Setting the length to
// 0 resets the content type.
func (b *Buffer) SetLength(n int) bool {
	if !b.ensure(n) {
		return false
	}
	if b.contentType == ContentGlyphs {
		b.glyphs = resize(b.glyphs, n)
		b.positions = resize(b.positions, n)
	} else {
		b.codepoints = resize(b.codepoints, n)
		if n > 0 {
			b.contentType = ContentUnicode
		}
	}
	if n == 0 {
		b.contentType = ContentInvalid
		b.context[1] = b.context[1][:0]
	}
	return true
}

func resize[T any](s []T, n int) []T {
	if n <= len(s) {
		return s[:n]
	}
	var zero T
	for len(s) < n {
		s = append(s, zero)
	}
	return s
}

// ContentType returns the kind of items the buffer holds.
func (b *Buffer) ContentType() ContentType {
	return b.contentType
}

// SetContentType switches the item representation. Code points become
// glyph IDs with zero positions and vice versa; clusters are kept.
func (b *Buffer) SetContentType(ct ContentType) {
	if ct == b.contentType || !b.successful {
		return
	}
	switch ct {
	case ContentGlyphs:
		b.glyphs = b.glyphs[:0]
		b.positions = b.positions[:0]
		for _, c := range b.codepoints {
			b.glyphs = append(b.glyphs, GlyphInfo{Glyph: GID(c.Codepoint), Cluster: c.Cluster})
		}
		b.positions = resize(b.positions, len(b.glyphs))
		b.codepoints = b.codepoints[:0]
	case ContentUnicode:
		b.codepoints = b.codepoints[:0]
		for _, g := range b.glyphs {
			b.codepoints = append(b.codepoints, CodepointInfo{Codepoint: rune(g.Glyph), Cluster: g.Cluster})
		}
		b.glyphs = b.glyphs[:0]
		b.positions = b.positions[:0]
	default:
		b.codepoints = b.codepoints[:0]
		b.glyphs = b.glyphs[:0]
		b.positions = b.positions[:0]
	}
	b.contentType = ct
}

// --- Output views --------------------------------------------------------------

// CodepointInfos returns the items of a buffer with Unicode content, or nil.
func (b *Buffer) CodepointInfos() []CodepointInfo {
	if b.contentType != ContentUnicode {
		return nil
	}
	return b.codepoints
}

// GlyphInfos returns the glyphs of a shaped buffer, or nil.
func (b *Buffer) GlyphInfos() []GlyphInfo {
	if b.contentType != ContentGlyphs {
		return nil
	}
	return b.glyphs
}

// GlyphPositions returns the glyph positions of a shaped buffer, or nil.
func (b *Buffer) GlyphPositions() []GlyphPosition {
	if b.contentType != ContentGlyphs {
		return nil
	}
	assertf(len(b.glyphs) == len(b.positions), "glyph infos and positions out of sync")
	return b.positions
}

// setGlyphs replaces the buffer's content by shaped glyphs.
// A failed buffer keeps its content.
func (b *Buffer) setGlyphs(glyphs []GlyphInfo, positions []GlyphPosition) {
	if !b.successful {
		return
	}
	assertf(len(glyphs) == len(positions), "glyph infos and positions out of sync")
	b.glyphs = glyphs
	b.positions = positions
	b.codepoints = b.codepoints[:0]
	b.contentType = ContentGlyphs
}

// --- Order ----------------------------------------------------------------------

func (b *Buffer) cluster(i int) uint32 {
	if b.contentType == ContentGlyphs {
		return b.glyphs[i].Cluster
	}
	return b.codepoints[i].Cluster
}

func (b *Buffer) setCluster(i int, cluster uint32) {
	if b.contentType == ContentGlyphs {
		b.glyphs[i].Cluster = cluster
	} else {
		b.codepoints[i].Cluster = cluster
	}
}

// Reverse reverses the order of all items.
func (b *Buffer) Reverse() {
	b.ReverseRange(0, b.Len())
}

// ReverseRange reverses the order of the items in [start, end).
func (b *Buffer) ReverseRange(start, end int) {
	end = min(end, b.Len())
	if start < 0 || end-start < 2 {
		return
	}
	if b.contentType == ContentGlyphs {
		slices.Reverse(b.glyphs[start:end])
		slices.Reverse(b.positions[start:end])
		return
	}
	slices.Reverse(b.codepoints[start:end])
}

// ReverseClusters reverses the order of clusters, keeping the items of
// each cluster in their order.
func (b *Buffer) ReverseClusters() {
	n := b.Len()
	if n < 2 {
		return
	}
	start := 0
	for i := 1; i < n; i++ {
		if b.cluster(i) != b.cluster(i-1) {
			b.ReverseRange(start, i)
			start = i
		}
	}
	b.ReverseRange(start, n)
	b.Reverse()
}

// MergeClusters gives all items in [start, end) the smallest cluster value
// among them. The range is first extended to cover complete clusters.
// Buffers at cluster level Characters are left unchanged.
func (b *Buffer) MergeClusters(start, end int) {
	if b.clusterLevel == Characters {
		return
	}
	n := b.Len()
	end = min(end, n)
	if start < 0 || end-start < 2 {
		return
	}
	cluster := b.cluster(start)
	for i := start + 1; i < end; i++ {
		cluster = min(cluster, b.cluster(i))
	}
	for end < n && b.cluster(end-1) == b.cluster(end) {
		end++
	}
	for start > 0 && b.cluster(start-1) == b.cluster(start) {
		start--
	}
	for i := start; i < end; i++ {
		b.setCluster(i, cluster)
	}
}

// forEachCluster calls fn for each run of items with equal cluster values.
func (b *Buffer) forEachCluster(fn func(start, end int)) {
	n := b.Len()
	for start := 0; start < n; {
		end := start + 1
		for end < n && b.cluster(end) == b.cluster(start) {
			end++
		}
		fn(start, end)
		start = end
	}
}

// NormalizeGlyphs reorders the glyphs of each cluster by glyph ID, moving
// the cluster's advance to its first glyph (last glyph for backward
// directions) and compensating with offsets. The rendering is unchanged.
func (b *Buffer) NormalizeGlyphs() {
	if b.contentType != ContentGlyphs {
		return
	}
	backward := b.props.Direction.IsBackward()
	b.forEachCluster(func(start, end int) {
		b.normalizeGlyphsCluster(start, end, backward)
	})
}

func (b *Buffer) normalizeGlyphsCluster(start, end int, backward bool) {
	pos := b.positions
	var totalX, totalY Position
	for i := start; i < end; i++ {
		totalX += pos[i].XAdvance
		totalY += pos[i].YAdvance
	}
	var x, y Position
	for i := start; i < end; i++ {
		pos[i].XOffset += x
		pos[i].YOffset += y
		x += pos[i].XAdvance
		y += pos[i].YAdvance
		pos[i].XAdvance, pos[i].YAdvance = 0, 0
	}
	if backward {
		pos[end-1].XAdvance, pos[end-1].YAdvance = totalX, totalY
		b.sortGlyphsByID(start, end-1)
		return
	}
	pos[start].XAdvance += totalX
	pos[start].YAdvance += totalY
	for i := start + 1; i < end; i++ {
		pos[i].XOffset -= totalX
		pos[i].YOffset -= totalY
	}
	b.sortGlyphsByID(start+1, end)
}

// sortGlyphsByID stably sorts glyphs[start:end] by glyph ID, together with
// their positions.
func (b *Buffer) sortGlyphsByID(start, end int) {
	if end-start < 2 {
		return
	}
	type item struct {
		info GlyphInfo
		pos  GlyphPosition
	}
	items := make([]item, end-start)
	for i := range items {
		items[i] = item{b.glyphs[start+i], b.positions[start+i]}
	}
	slices.SortStableFunc(items, func(a, b item) int {
		return cmp.Compare(a.info.Glyph, b.info.Glyph)
	})
	for i, it := range items {
		b.glyphs[start+i], b.positions[start+i] = it.info, it.pos
	}
}

// Append copies the items [start, end) of src to the end of b. Both
// buffers must have the same content type, unless b is empty.
func (b *Buffer) Append(src *Buffer, start, end int) {
	end = min(end, src.Len())
	if start < 0 || start >= end || !b.successful {
		return
	}
	if b.Len() == 0 {
		b.SetContentType(src.contentType)
	}
	if b.contentType != src.contentType {
		tracer().Errorf("buffer: cannot append %s content to %s buffer", src.contentType, b.contentType)
		return
	}
	if !b.ensure(b.Len() + end - start) {
		return
	}
	if b.contentType == ContentGlyphs {
		b.glyphs = append(b.glyphs, src.glyphs[start:end]...)
		b.positions = append(b.positions, src.positions[start:end]...)
		return
	}
	b.codepoints = append(b.codepoints, src.codepoints[start:end]...)
}

// --- Snapshots -------------------------------------------------------------------

// bufferState is a copy of a buffer's content, taken before shaping so that
// a failed shaping attempt leaves the buffer unchanged.
type bufferState struct {
	props       SegmentProperties
	contentType ContentType
	codepoints  []CodepointInfo
}

func (b *Buffer) snapshot() bufferState {
	return bufferState{
		props:       b.props,
		contentType: b.contentType,
		codepoints:  slices.Clone(b.codepoints),
	}
}

func (b *Buffer) restore(s bufferState) {
	b.props = s.props
	b.contentType = s.contentType
	b.codepoints = append(b.codepoints[:0], s.codepoints...)
	b.glyphs = b.glyphs[:0]
	b.positions = b.positions[:0]
}
