package harfbuzz

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SerializeFormat selects the textual representation of glyph buffers.
type SerializeFormat uint8

const (
	SerializeInvalid SerializeFormat = iota
	// SerializeText is a space separated list of glyphs of the form
	// name=cluster@xoffset,yoffset+xadvance,yadvance<xbearing,ybearing,width,height>
	// where the offsets are omitted if zero, and so is the y advance.
	SerializeText
	// SerializeJSON is an array of objects with keys g, cl, dx, dy, ax, ay
	// and xb, yb, w, h.
	SerializeJSON
)

func (f SerializeFormat) String() string {
	switch f {
	case SerializeText:
		return "text"
	case SerializeJSON:
		return "json"
	}
	return "invalid"
}

// SerializeFormats lists the names of the supported formats.
func SerializeFormats() []string {
	return []string{"text", "json"}
}

// SerializeFormatFromString looks up a format by name. Only the first four
// characters are significant, case-insensitively.
func SerializeFormatFromString(s string) SerializeFormat {
	switch TagFromString(strings.ToLower(s)) {
	case TagFromString("text"):
		return SerializeText
	case TagFromString("json"):
		return SerializeJSON
	}
	return SerializeInvalid
}

// SerializeFlags omit parts of the glyph serialization.
type SerializeFlags uint32

const (
	SerializeNoClusters SerializeFlags = 1 << iota
	SerializeNoPositions
	SerializeNoGlyphNames
	SerializeGlyphExtents
)

// SerializeGlyphs appends the serialization of glyphs [start, end) to sink,
// as long as it fits into the capacity of sink. It returns the extended sink
// and the number of glyphs serialized, which is less than requested if the
// sink is too small. Continuing a partially serialized range into the same
// sink yields the same result as serializing the range at once. JSON arrays
// are closed after the glyph at end-1.
//
// font is used for glyph names and extents and may be nil.
func (b *Buffer) SerializeGlyphs(start, end int, sink []byte, font *Font, format SerializeFormat,
	flags SerializeFlags) ([]byte, int) {
	//
	if b.contentType != ContentGlyphs || start < 0 {
		return sink, 0
	}
	if format != SerializeText && format != SerializeJSON {
		return sink, 0
	}
	end = min(end, len(b.glyphs))
	count := 0
	for i := start; i < end; i++ {
		var item []byte
		switch format {
		case SerializeText:
			item = b.serializeTextItem(i, font, flags)
		case SerializeJSON:
			item = b.serializeJSONItem(i, end, font, flags)
		}
		if len(sink)+len(item) > cap(sink) {
			break
		}
		sink = append(sink, item...)
		count++
	}
	return sink, count
}

// SerializeAll serializes all glyphs of the buffer. Buffers without glyph
// content and invalid formats yield "".
func (b *Buffer) SerializeAll(font *Font, format SerializeFormat, flags SerializeFlags) string {
	if b.contentType != ContentGlyphs || (format != SerializeText && format != SerializeJSON) {
		return ""
	}
	sink := make([]byte, 0, 64*len(b.glyphs)+2)
	for start := 0; start < len(b.glyphs); {
		var n int
		sink, n = b.SerializeGlyphs(start, len(b.glyphs), sink, font, format, flags)
		if start += n; start < len(b.glyphs) {
			// the next item did not fit
			sink = append(make([]byte, 0, 2*cap(sink)), sink...)
		}
	}
	return string(sink)
}

func (b *Buffer) glyphName(g GID, font *Font, flags SerializeFlags) (string, bool) {
	if font == nil || flags&SerializeNoGlyphNames != 0 {
		return strconv.FormatUint(uint64(g), 10), false
	}
	return font.GlyphToString(g), true
}

func (b *Buffer) serializeTextItem(i int, font *Font, flags SerializeFlags) []byte {
	info, pos := b.glyphs[i], b.positions[i]
	var sb strings.Builder
	if i > 0 {
		sb.WriteByte(' ')
	}
	name, _ := b.glyphName(info.Glyph, font, flags)
	sb.WriteString(name)
	if flags&SerializeNoClusters == 0 {
		fmt.Fprintf(&sb, "=%d", info.Cluster)
	}
	if flags&SerializeNoPositions == 0 {
		if pos.XOffset != 0 || pos.YOffset != 0 {
			fmt.Fprintf(&sb, "@%d,%d", pos.XOffset, pos.YOffset)
		}
		fmt.Fprintf(&sb, "+%d", pos.XAdvance)
		if pos.YAdvance != 0 {
			fmt.Fprintf(&sb, ",%d", pos.YAdvance)
		}
	}
	if flags&SerializeGlyphExtents != 0 {
		e := b.extentsOf(info.Glyph, font)
		fmt.Fprintf(&sb, "<%d,%d,%d,%d>", e.XBearing, e.YBearing, e.Width, e.Height)
	}
	return []byte(sb.String())
}

func (b *Buffer) extentsOf(g GID, font *Font) GlyphExtents {
	if font == nil {
		return GlyphExtents{}
	}
	e, _ := font.GlyphExtents(g)
	return e
}

// jsonGlyph is the JSON object of one glyph.
type jsonGlyph struct {
	G  any       `json:"g"`
	Cl *uint32   `json:"cl,omitempty"`
	Dx *Position `json:"dx,omitempty"`
	Dy *Position `json:"dy,omitempty"`
	Ax *Position `json:"ax,omitempty"`
	Ay *Position `json:"ay,omitempty"`
	Xb *Position `json:"xb,omitempty"`
	Yb *Position `json:"yb,omitempty"`
	W  *Position `json:"w,omitempty"`
	H  *Position `json:"h,omitempty"`
}

func (b *Buffer) serializeJSONItem(i, end int, font *Font, flags SerializeFlags) []byte {
	info, pos := b.glyphs[i], b.positions[i]
	jg := jsonGlyph{G: uint32(info.Glyph)}
	if name, ok := b.glyphName(info.Glyph, font, flags); ok {
		jg.G = name
	}
	if flags&SerializeNoClusters == 0 {
		jg.Cl = &info.Cluster
	}
	if flags&SerializeNoPositions == 0 {
		jg.Dx, jg.Dy, jg.Ax, jg.Ay = &pos.XOffset, &pos.YOffset, &pos.XAdvance, &pos.YAdvance
	}
	if flags&SerializeGlyphExtents != 0 {
		e := b.extentsOf(info.Glyph, font)
		jg.Xb, jg.Yb, jg.W, jg.H = &e.XBearing, &e.YBearing, &e.Width, &e.Height
	}
	data, err := json.Marshal(jg)
	assertf(err == nil, "glyph JSON not serializable")
	item := make([]byte, 0, len(data)+2)
	if i == 0 {
		item = append(item, '[')
	} else {
		item = append(item, ',')
	}
	item = append(item, data...)
	if i == end-1 {
		item = append(item, ']')
	}
	return item
}

// DeserializeGlyphs parses serialized glyphs and appends them to the
// buffer, which must be empty or hold glyphs. Glyph names are resolved
// with font, which may be nil. Omitted fields are zero. On error the buffer
// is left unchanged.
//
// The text format also accepts the bracketed form "[a|b|c]".
func (b *Buffer) DeserializeGlyphs(text string, font *Font, format SerializeFormat) error {
	if !b.successful {
		return fmt.Errorf("%w: buffer allocation failed", ErrMalformedGlyphs)
	}
	if b.contentType != ContentGlyphs && b.Len() > 0 {
		return fmt.Errorf("%w: buffer holds %s content", ErrMalformedGlyphs, b.contentType)
	}
	if font == nil {
		font = EmptyFont()
	}
	var glyphs []GlyphInfo
	var positions []GlyphPosition
	var err error
	switch format {
	case SerializeText:
		glyphs, positions, err = deserializeText(text, font)
	case SerializeJSON:
		glyphs, positions, err = deserializeJSON(text, font)
	default:
		err = fmt.Errorf("%w: unknown format", ErrMalformedGlyphs)
	}
	if err != nil {
		return err
	}
	if !b.ensure(len(b.glyphs) + len(glyphs)) {
		return fmt.Errorf("%w: too many glyphs", ErrMalformedGlyphs)
	}
	b.setGlyphs(append(b.glyphs, glyphs...), append(b.positions, positions...))
	return nil
}

func resolveGlyph(name string, font *Font) (GID, error) {
	if v, err := strconv.ParseUint(name, 10, 32); err == nil {
		return GID(v), nil
	}
	if g, ok := font.GlyphFromString(name); ok {
		return g, nil
	}
	return 0, fmt.Errorf("%w: unknown glyph %q", ErrMalformedGlyphs, name)
}

func deserializeText(text string, font *Font) ([]GlyphInfo, []GlyphPosition, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "[") {
		if !strings.HasSuffix(text, "]") {
			return nil, nil, fmt.Errorf("%w: unbalanced brackets", ErrMalformedGlyphs)
		}
		text = strings.ReplaceAll(text[1:len(text)-1], "|", " ")
	}
	tokens := strings.Fields(text)
	glyphs := make([]GlyphInfo, 0, len(tokens))
	positions := make([]GlyphPosition, 0, len(tokens))
	for _, tok := range tokens {
		info, pos, err := parseGlyphToken(tok, font)
		if err != nil {
			return nil, nil, err
		}
		glyphs = append(glyphs, info)
		positions = append(positions, pos)
	}
	return glyphs, positions, nil
}

// parseGlyphToken parses name[=cluster][@x,y][+xadv[,yadv]][<xb,yb,w,h>].
func parseGlyphToken(tok string, font *Font) (info GlyphInfo, pos GlyphPosition, err error) {
	malformed := func(what string) error {
		return fmt.Errorf("%w: %s in %q", ErrMalformedGlyphs, what, tok)
	}
	n := strings.IndexAny(tok, "=@+<")
	if n < 0 {
		n = len(tok)
	}
	if n == 0 {
		return info, pos, malformed("missing glyph name")
	}
	if info.Glyph, err = resolveGlyph(tok[:n], font); err != nil {
		return info, pos, err
	}
	rest := tok[n:]
	numbers := func(prefix byte, max int) ([]int32, error) {
		if len(rest) == 0 || rest[0] != prefix {
			return nil, nil
		}
		rest = rest[1:]
		m := strings.IndexAny(rest, "=@+<>")
		if m < 0 {
			m = len(rest)
		}
		fields := strings.Split(rest[:m], ",")
		rest = rest[m:]
		if len(fields) > max {
			return nil, malformed("too many values")
		}
		vs := make([]int32, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseInt(f, 10, 32)
			if err != nil {
				return nil, malformed("invalid number")
			}
			vs[i] = int32(v)
		}
		return vs, nil
	}
	vs, err := numbers('=', 1)
	if err != nil {
		return info, pos, err
	}
	if vs != nil {
		if vs[0] < 0 {
			return info, pos, malformed("negative cluster")
		}
		info.Cluster = uint32(vs[0])
	}
	if vs, err = numbers('@', 2); err != nil {
		return info, pos, err
	} else if vs != nil {
		if len(vs) != 2 {
			return info, pos, malformed("offset needs two values")
		}
		pos.XOffset, pos.YOffset = vs[0], vs[1]
	}
	if vs, err = numbers('+', 2); err != nil {
		return info, pos, err
	} else if vs != nil {
		pos.XAdvance = vs[0]
		if len(vs) == 2 {
			pos.YAdvance = vs[1]
		}
	}
	if vs, err = numbers('<', 4); err != nil {
		return info, pos, err
	} else if vs != nil {
		if len(vs) != 4 || !strings.HasPrefix(rest, ">") {
			return info, pos, malformed("broken extents")
		}
		rest = rest[1:]
	}
	if rest != "" {
		return info, pos, malformed("trailing characters")
	}
	return info, pos, nil
}

func deserializeJSON(text string, font *Font) ([]GlyphInfo, []GlyphPosition, error) {
	var items []jsonGlyph
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedGlyphs, err)
	}
	glyphs := make([]GlyphInfo, len(items))
	positions := make([]GlyphPosition, len(items))
	val := func(p *Position) Position {
		if p == nil {
			return 0
		}
		return *p
	}
	for i, it := range items {
		switch g := it.G.(type) {
		case float64:
			if g < 0 || g != float64(uint32(g)) {
				return nil, nil, fmt.Errorf("%w: invalid glyph id %v", ErrMalformedGlyphs, g)
			}
			glyphs[i].Glyph = GID(g)
		case string:
			gid, err := resolveGlyph(g, font)
			if err != nil {
				return nil, nil, err
			}
			glyphs[i].Glyph = gid
		default:
			return nil, nil, fmt.Errorf("%w: glyph %d has no id", ErrMalformedGlyphs, i)
		}
		if it.Cl != nil {
			glyphs[i].Cluster = *it.Cl
		}
		positions[i] = GlyphPosition{
			XOffset: val(it.Dx), YOffset: val(it.Dy),
			XAdvance: val(it.Ax), YAdvance: val(it.Ay),
		}
	}
	return glyphs, positions, nil
}
