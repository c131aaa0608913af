package otquery

import "golang.org/x/image/font/sfnt"

// FontMetricsInfo contains selected metric information for a font.
type FontMetricsInfo struct {
	UnitsPerEm      sfnt.Units // ad-hoc units per em
	Ascent, Descent sfnt.Units // ascender and descender
	MaxAdvance      sfnt.Units // maximum advance width value in 'hmtx' table
	LineGap         sfnt.Units // typographic line gap
}

// FontMetrics combines the metrics of tables 'head' and 'hhea'. A missing
// or broken 'head' table yields 1000 units per em.
func FontMetrics(head, hhea []byte) FontMetricsInfo {
	metrics := FontMetricsInfo{UnitsPerEm: 1000}
	if h, ok := HeadInfo(head); ok && h.UnitsPerEm != 0 {
		metrics.UnitsPerEm = sfnt.Units(h.UnitsPerEm)
	}
	if hh, ok := HHeaInfo(hhea); ok {
		metrics.Ascent = sfnt.Units(hh.Ascender)
		metrics.Descent = sfnt.Units(hh.Descender)
		metrics.LineGap = sfnt.Units(hh.LineGap)
		metrics.MaxAdvance = sfnt.Units(hh.AdvanceWidthMax)
	}
	return metrics
}
