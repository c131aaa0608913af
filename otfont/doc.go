/*
Package otfont installs glyph metric functions on a harfbuzz.Font which read
the font's own tables.

The face's blob is parsed with golang.org/x/image/font/sfnt. Glyph mapping,
horizontal advances, 'kern' table kerning, glyph bounds and glyph names come
from the font file; font-wide horizontal extents come from table 'hhea'.
Vertical metrics are synthesized from the horizontal ones, as fonts without a
'vmtx' table are the common case.

	font := harfbuzz.NewFont(face)
	if err := otfont.SetFuncs(font); err != nil {
	    ...
	}

The function table reads the parsed font through a pool of sfnt buffers and
may therefore be used by fonts in several goroutines.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otfont

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'hbshape.font'
func tracer() tracing.Trace {
	return tracing.Select("hbshape.font")
}
