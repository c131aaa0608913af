package otlayout

import "sort"

// ClassDefinitions maps glyphs to classes. Glyphs not listed are in
// class 0.
type ClassDefinitions struct {
	format  uint16
	start   uint16     // format 1: first glyph
	classes []uint16   // format 1: class per glyph from start
	ranges  []rangeRec // format 2
}

type rangeRec struct {
	first, last uint16
	value       uint16 // class (ClassDef) or start coverage index (Coverage)
}

// parseClassDefinitions reads a ClassDef table in format 1 or 2.
func parseClassDefinitions(b binarySegm) (ClassDefinitions, error) {
	cdef := ClassDefinitions{format: b.U16(0)}
	switch cdef.format {
	case 1:
		cdef.start = b.U16(2)
		cdef.classes = parseArray16(b, 4)
		if cdef.classes == nil && b.U16(4) != 0 {
			return ClassDefinitions{}, errFontFormat("ClassDef format 1 array extends beyond bounds")
		}
	case 2:
		var err error
		if cdef.ranges, err = parseRanges(b); err != nil {
			return ClassDefinitions{}, err
		}
	default:
		return ClassDefinitions{}, errFontFormat("unknown ClassDef format")
	}
	return cdef, nil
}

// Lookup returns the class of glyph g.
func (cdef ClassDefinitions) Lookup(g uint16) uint16 {
	switch cdef.format {
	case 1:
		if g >= cdef.start && int(g-cdef.start) < len(cdef.classes) {
			return cdef.classes[g-cdef.start]
		}
	case 2:
		if r, ok := findRange(cdef.ranges, g); ok {
			return r.value
		}
	}
	return 0
}

// IsEmpty is true for an absent class definition table.
func (cdef ClassDefinitions) IsEmpty() bool {
	return cdef.format == 0
}

// Coverage assigns a coverage index to each covered glyph.
type Coverage struct {
	format uint16
	glyphs []uint16   // format 1, sorted
	ranges []rangeRec // format 2
}

// parseCoverage reads a Coverage table in format 1 or 2.
func parseCoverage(b binarySegm) (Coverage, error) {
	cov := Coverage{format: b.U16(0)}
	switch cov.format {
	case 1:
		cov.glyphs = parseArray16(b, 2)
		if cov.glyphs == nil && b.U16(2) != 0 {
			return Coverage{}, errFontFormat("coverage format 1 extends beyond bounds")
		}
	case 2:
		var err error
		if cov.ranges, err = parseRanges(b); err != nil {
			return Coverage{}, err
		}
	default:
		return Coverage{}, errFontFormat("unknown coverage format")
	}
	return cov, nil
}

// Match returns the coverage index of glyph g.
func (cov Coverage) Match(g uint16) (int, bool) {
	switch cov.format {
	case 1:
		i := sort.Search(len(cov.glyphs), func(i int) bool { return cov.glyphs[i] >= g })
		if i < len(cov.glyphs) && cov.glyphs[i] == g {
			return i, true
		}
	case 2:
		if r, ok := findRange(cov.ranges, g); ok {
			return int(r.value) + int(g-r.first), true
		}
	}
	return 0, false
}

// parseRanges reads a uint16 count at offset 2 followed by range records
// {first, last, value}.
func parseRanges(b binarySegm) ([]rangeRec, error) {
	n := int(b.U16(2))
	if _, err := b.view(4, n*6); err != nil {
		return nil, errFontFormat("range records extend beyond bounds")
	}
	ranges := make([]rangeRec, n)
	for i := range ranges {
		at := 4 + i*6
		ranges[i] = rangeRec{first: b.U16(at), last: b.U16(at + 2), value: b.U16(at + 4)}
		if ranges[i].last < ranges[i].first {
			return nil, errFontFormat("corrupt range record")
		}
	}
	return ranges, nil
}

func findRange(ranges []rangeRec, g uint16) (rangeRec, bool) {
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i].last >= g })
	if i < len(ranges) && ranges[i].first <= g {
		return ranges[i], true
	}
	return rangeRec{}, false
}
