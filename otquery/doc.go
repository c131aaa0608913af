/*
Package otquery decodes typed views of a few OpenType tables from their raw
bytes: 'head', 'maxp', 'hhea' and 'name'.

All functions take the bytes of a single table, as returned by
(*harfbuzz.Face).Table, and never fail hard: malformed or truncated
tables are reported by a boolean result.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'hbshape.font'
func tracer() tracing.Trace {
	return tracing.Select("hbshape.font")
}
