/*
Package otlayout answers capability queries about the OpenType layout tables
GSUB, GPOS and GDEF of a font.

It does not apply lookups. It reads just enough of the tables to tell which
scripts, language systems and features a font supports, which lookups a
feature consists of, and how GDEF classifies glyphs.

Tables are decoded lazily from their raw bytes. Malformed data never
panics: broken parts are treated as absent and reported to the trace.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otlayout

import (
	"fmt"

	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'hbshape.layout'
func tracer() tracing.Trace {
	return tracing.Select("hbshape.layout")
}

// errFontFormat produces user level errors for font parsing.
func errFontFormat(message string) error {
	return fmt.Errorf("OpenType font format: %s", message)
}

// Tag is an OpenType tag.
type Tag = ot.Tag

// NoIndex is returned as the index of absent items, e.g. of the default
// language system.
const NoIndex = 0xFFFF

var (
	tagDFLT = ot.MustNewTag("DFLT")
	tagDflt = ot.MustNewTag("dflt")
	tagLatn = ot.MustNewTag("latn")
)
