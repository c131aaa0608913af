package harfbuzz

import (
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Add appends code point cp with the given cluster value.
func (b *Buffer) Add(cp rune, cluster uint32) {
	if !b.acceptsUnicode() {
		return
	}
	b.contentType = ContentUnicode
	b.add(cp, cluster)
	b.context[1] = b.context[1][:0]
}

func (b *Buffer) add(cp rune, cluster uint32) {
	if !b.ensure(len(b.codepoints) + 1) {
		return
	}
	b.codepoints = append(b.codepoints, CodepointInfo{Codepoint: cp, Cluster: cluster})
}

func (b *Buffer) acceptsUnicode() bool {
	if !b.successful {
		return false
	}
	if b.contentType == ContentUnicode || (b.contentType == ContentInvalid && b.Len() == 0) {
		return true
	}
	tracer().Errorf("buffer: cannot add code points to buffer with %s content", b.contentType)
	return false
}

// textSource decodes one encoding from a sequence of n code units.
type textSource struct {
	n int
	// next decodes the code point starting at unit i, looking no further
	// than unit end.
	next func(i, end int) (rune, int)
	// prev decodes the code point ending before unit i.
	prev func(i int) (rune, int)
}

// count returns the number of code points decoded from units [start, end).
func (src textSource) count(start, end int) int {
	n := 0
	for i := start; i < end; n++ {
		_, size := src.next(i, end)
		i += size
	}
	return n
}

// addText ingests units [offset, offset+length) of src. Clusters are unit
// indices. A negative length means up to the end of the text.
func (b *Buffer) addText(src textSource, offset, length int) {
	if !b.acceptsUnicode() {
		return
	}
	if offset < 0 || offset > src.n {
		tracer().Errorf("buffer: item offset %d outside of text of length %d", offset, src.n)
		return
	}
	end := src.n
	if length >= 0 {
		end = min(offset+length, src.n)
	}
	if !b.ensure(len(b.codepoints) + src.count(offset, end)) {
		return
	}
	b.contentType = ContentUnicode
	if len(b.codepoints) == 0 && offset > 0 {
		b.context[0] = b.context[0][:0]
		for i := offset; i > 0 && len(b.context[0]) < maxContext; {
			r, size := src.prev(i)
			b.context[0] = append(b.context[0], r)
			i -= size
		}
	}
	for i := offset; i < end; {
		r, size := src.next(i, end)
		b.add(r, uint32(i))
		i += size
	}
	b.context[1] = b.context[1][:0]
	for i := end; i < src.n && len(b.context[1]) < maxContext; {
		r, size := src.next(i, src.n)
		b.context[1] = append(b.context[1], r)
		i += size
	}
}

// AddUTF8 appends bytes [offset, offset+length) of UTF-8 text. Invalid
// sequences are replaced by the replacement code point.
func (b *Buffer) AddUTF8(text []byte, offset, length int) {
	repl := b.replacement
	b.addText(textSource{
		n: len(text),
		next: func(i, end int) (rune, int) {
			r, size := utf8.DecodeRune(text[i:end])
			if r == utf8.RuneError && size <= 1 {
				return repl, 1
			}
			return r, size
		},
		prev: func(i int) (rune, int) {
			r, size := utf8.DecodeLastRune(text[:i])
			if r == utf8.RuneError && size <= 1 {
				return repl, 1
			}
			return r, size
		},
	}, offset, length)
}

// AddString appends UTF-8 text given as a string.
func (b *Buffer) AddString(text string, offset, length int) {
	b.AddUTF8([]byte(text), offset, length)
}

// AddUTF16 appends units [offset, offset+length) of UTF-16 text. Unpaired
// surrogates are replaced by the replacement code point.
func (b *Buffer) AddUTF16(text []uint16, offset, length int) {
	repl := b.replacement
	b.addText(textSource{
		n: len(text),
		next: func(i, end int) (rune, int) {
			u := rune(text[i])
			if !utf16.IsSurrogate(u) {
				return u, 1
			}
			if u < 0xDC00 && i+1 < end {
				if r := utf16.DecodeRune(u, rune(text[i+1])); r != utf8.RuneError {
					return r, 2
				}
			}
			return repl, 1
		},
		prev: func(i int) (rune, int) {
			u := rune(text[i-1])
			if !utf16.IsSurrogate(u) {
				return u, 1
			}
			if u >= 0xDC00 && i >= 2 {
				if r := utf16.DecodeRune(rune(text[i-2]), u); r != utf8.RuneError {
					return r, 2
				}
			}
			return repl, 1
		},
	}, offset, length)
}

// AddUTF32 appends code points [offset, offset+length) of text. Values
// which are not Unicode scalar values are replaced by the replacement code
// point.
func (b *Buffer) AddUTF32(text []rune, offset, length int) {
	repl := b.replacement
	valid := func(r rune) rune {
		if !utf8.ValidRune(r) {
			return repl
		}
		return r
	}
	b.addText(textSource{
		n:    len(text),
		next: func(i, _ int) (rune, int) { return valid(text[i]), 1 },
		prev: func(i int) (rune, int) { return valid(text[i-1]), 1 },
	}, offset, length)
}

// AddLatin1 appends bytes [offset, offset+length) of ISO 8859-1 text.
func (b *Buffer) AddLatin1(text []byte, offset, length int) {
	latin1 := charmap.ISO8859_1
	b.addText(textSource{
		n:    len(text),
		next: func(i, _ int) (rune, int) { return latin1.DecodeByte(text[i]), 1 },
		prev: func(i int) (rune, int) { return latin1.DecodeByte(text[i-1]), 1 },
	}, offset, length)
}

// AddCodepoints appends code points [offset, offset+length) of text
// without validating them.
func (b *Buffer) AddCodepoints(text []rune, offset, length int) {
	b.addText(textSource{
		n:    len(text),
		next: func(i, _ int) (rune, int) { return text[i], 1 },
		prev: func(i int) (rune, int) { return text[i-1], 1 },
	}, offset, length)
}
