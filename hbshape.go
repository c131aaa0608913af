/*
Package hbshape is for shaping text with OpenType fonts.

Shaping converts a run of Unicode text into positioned glyphs of a font. The
work is done by package harfbuzz, which follows the model of the HarfBuzz
library: a Buffer holds the text and, after shaping, the glyphs; a Face is a
font file resource and a Font a sized instance of it; Shape runs the text
through a list of shaping backends.

This package collects a few conveniences for the common case of shaping a
short piece of text with a font loaded from memory.

	font, err := hbshape.NewFont(goregular.TTF)
	...
	buf, err := hbshape.ShapeText(font, "Hello", "kern,-liga")
	for i, g := range buf.GlyphInfos() {
	    pos := buf.GlyphPositions()[i]
	    ...
	}

There is a certain confusion with the nomenclature of typesetting. We will
stick to HarfBuzz's definitions:

▪︎ A "face" is one font of a font file. A font collection (*.ttc) contains
more than one face.

▪︎ A "font" is a face at a certain scale, with functions to query glyph metrics.
Fonts may be derived from other fonts and override some of their functions.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

HarfBuzz:
https://harfbuzz.github.io/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package hbshape

import (
	"github.com/npillmayer/hbshape/harfbuzz"
	"github.com/npillmayer/hbshape/otfont"
	"github.com/npillmayer/hbshape/otquery"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'hbshape.shaper'
func tracer() tracing.Trace {
	return tracing.Select("hbshape.shaper")
}

// NewFont parses the first face of OpenType font data and returns a font at
// design-unit scale, with metric functions reading the font's tables.
// The data must not change after the call.
func NewFont(data []byte) (*harfbuzz.Font, error) {
	face := harfbuzz.NewFace(harfbuzz.NewBlob(data, harfbuzz.Readonly), 0)
	font := harfbuzz.NewFont(face)
	if err := otfont.SetFuncs(font); err != nil {
		return nil, err
	}
	return font, nil
}

// ShapeText shapes text as one run. Direction, script and language are
// guessed from the text. features is a list of feature settings as accepted
// by harfbuzz.ParseFeatures, e.g. "kern,-liga,aalt[3:5]=2".
func ShapeText(font *harfbuzz.Font, text string, features string) (*harfbuzz.Buffer, error) {
	feats, err := harfbuzz.ParseFeatures(features)
	if err != nil {
		return nil, err
	}
	buf := harfbuzz.NewBuffer()
	buf.AddString(text, 0, -1)
	buf.GuessSegmentProperties()
	harfbuzz.Shape(font, buf, feats)
	tracer().Debugf("shaped %d code points to %d glyphs", len([]rune(text)), buf.Len())
	return buf, nil
}

// FamilyName extracts family and subfamily names from a face's 'name' table.
//
// Returned values are empty if no matching records exist or if records cannot be
// decoded by the current name-table reader.
func FamilyName(face *harfbuzz.Face) (family, subfamily string) {
	if face == nil {
		return "", ""
	}
	return otquery.FamilyName(face.Table(harfbuzz.TagName).Data())
}
