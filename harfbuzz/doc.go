/*
Package harfbuzz is the core of a HarfBuzz-style text shaper.

Shaping converts a run of Unicode codepoints into positioned glyphs of a font.
Clients fill a Buffer with text, set (or guess) the segment properties of the
run, and hand it to Shape together with a Font and an optional list of
Features:

	buf := harfbuzz.NewBuffer()
	buf.AddString("Hello", 0, -1)
	buf.GuessSegmentProperties()
	harfbuzz.Shape(font, buf, nil)
	for i, g := range buf.GlyphInfos() {
		pos := buf.GlyphPositions()[i]
		...
	}

After shaping the buffer holds glyphs instead of codepoints. Each glyph keeps
the cluster value of the characters it was produced from.

Shaping is done by one of several backends, tried in a fixed order of
preference. The "ot" backend applies the font's OpenType layout tables, the
"fallback" backend positions glyphs from the font's function table, and the
"trivial" backend never fails. ShapeFull restricts the search to a list of
named backends and is the only entry point reporting failure.

Fonts get their metrics from a FontFuncs table. A font created by
(*Font).CreateSubFont delegates every function it does not implement itself
to its parent. Package otfont installs a function table which reads the font's
own tables.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package harfbuzz

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'hbshape.shaper'
func tracer() tracing.Trace {
	return tracing.Select("hbshape.shaper")
}

var (
	// ErrMalformedFeature is returned by ParseFeature for unparsable input.
	ErrMalformedFeature = errors.New("harfbuzz: malformed feature")
	// ErrNoShaper is returned by ShapeFull if none of the requested backends
	// could shape the buffer.
	ErrNoShaper = errors.New("harfbuzz: no shaper could shape the buffer")
	// ErrShaperAlreadyRegistered is returned when registering a backend twice.
	ErrShaperAlreadyRegistered = errors.New("harfbuzz: shaper already registered")
	// ErrInvalidDirection flags a buffer without a valid direction.
	ErrInvalidDirection = errors.New("harfbuzz: buffer direction is invalid")
	// ErrInvalidContent flags a buffer which does not hold Unicode content.
	ErrInvalidContent = errors.New("harfbuzz: buffer content is not Unicode")
	// ErrMalformedGlyphs is returned when deserializing unparsable glyph data.
	ErrMalformedGlyphs = errors.New("harfbuzz: malformed glyph serialization")
)

func errShaper(x string) error {
	return fmt.Errorf("text shaping: %s", x)
}

func assertf(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
