package otlayout

// Table is a GSUB or GPOS table, reduced to its script list, feature list
// and the number of lookups in its lookup list. The zero value is an empty
// table.
type Table struct {
	scriptList  binarySegm
	scripts     []tagRecord
	featureList binarySegm
	features    []tagRecord
	lookupCount int
}

// LangSys is a language system of a script: an optional required feature and
// a list of feature indices.
type LangSys struct {
	Required int // NoIndex if absent
	Features []uint16
}

// ParseTable decodes the header lists of a GSUB or GPOS table. Broken
// sub-structures are dropped. An error is returned only if the table header
// itself is unusable, in which case the returned table is empty.
func ParseTable(b []byte) (*Table, error) {
	t := &Table{}
	if len(b) == 0 {
		return t, nil
	}
	seg := binarySegm(b)
	if _, err := seg.view(0, 10); err != nil {
		return t, errFontFormat("layout table header too small")
	}
	if major := seg.U16(0); major != 1 {
		return t, errFontFormat("unsupported layout table version")
	}
	var err error
	if t.scriptList = seg.at(int(seg.U16(4))); t.scriptList != nil {
		if t.scripts, err = parseTagRecords(t.scriptList, "ScriptList"); err != nil {
			t.scriptList = nil
		}
	}
	if t.featureList = seg.at(int(seg.U16(6))); t.featureList != nil {
		if t.features, err = parseTagRecords(t.featureList, "FeatureList"); err != nil {
			t.featureList = nil
		}
	}
	if lookups := seg.at(int(seg.U16(8))); lookups != nil {
		n := int(lookups.U16(0))
		if _, err := lookups.view(2, n*2); err == nil {
			t.lookupCount = n
		}
	}
	tracer().Debugf("layout table: %d scripts, %d features, %d lookups",
		len(t.scripts), len(t.features), t.lookupCount)
	return t, nil
}

// LookupCount returns the number of lookups in the lookup list.
func (t *Table) LookupCount() int {
	if t == nil {
		return 0
	}
	return t.lookupCount
}

// ScriptTags returns the tags of all scripts in the script list.
func (t *Table) ScriptTags() []Tag {
	if t == nil {
		return nil
	}
	return recordTags(t.scripts)
}

// FindScript returns the index of a script in the script list.
func (t *Table) FindScript(tag Tag) (int, bool) {
	if t == nil {
		return NoIndex, false
	}
	return findRecord(t.scripts, tag)
}

// SelectScript returns the index of the first script of tags present in the
// table. If none is present, it falls back to 'DFLT', 'dflt' and 'latn', in
// this order, returning ok=false together with the fallback found (or
// NoIndex).
func (t *Table) SelectScript(tags []Tag) (index int, chosen Tag, ok bool) {
	for _, tag := range tags {
		if i, found := t.FindScript(tag); found {
			return i, tag, true
		}
	}
	for _, tag := range []Tag{tagDFLT, tagDflt, tagLatn} {
		if i, found := t.FindScript(tag); found {
			return i, tag, false
		}
	}
	return NoIndex, 0, false
}

func (t *Table) script(index int) binarySegm {
	if t == nil || index < 0 || index >= len(t.scripts) {
		return nil
	}
	return t.scriptList.at(int(t.scripts[index].offset))
}

func (t *Table) langSysRecords(script int) []tagRecord {
	s := t.script(script)
	if len(s) < 4 {
		return nil
	}
	recs, err := parseTagRecords(s[2:], "Script")
	if err != nil {
		return nil
	}
	return recs
}

// LanguageTags returns the language system tags of a script. The default
// language system has no tag and is not included.
func (t *Table) LanguageTags(script int) []Tag {
	return recordTags(t.langSysRecords(script))
}

// FindLanguage returns the index of a language system within a script.
// If the script has no such language system, NoIndex is returned with
// ok=false; NoIndex denotes the default language system in LangSys.
func (t *Table) FindLanguage(script int, tag Tag) (int, bool) {
	if i, ok := findRecord(t.langSysRecords(script), tag); ok {
		return i, true
	}
	// some fonts use 'dflt' as a language tag
	if i, ok := findRecord(t.langSysRecords(script), tagDflt); ok {
		return i, false
	}
	return NoIndex, false
}

// LangSys returns a language system of a script. language NoIndex selects
// the default language system.
func (t *Table) LangSys(script, language int) (LangSys, bool) {
	s := t.script(script)
	if s == nil {
		return LangSys{Required: NoIndex}, false
	}
	var ls binarySegm
	if language == NoIndex {
		ls = s.at(int(s.U16(0)))
	} else if recs := t.langSysRecords(script); language >= 0 && language < len(recs) {
		// language system offsets are relative to the script table
		ls = s.at(int(recs[language].offset))
	}
	if ls == nil {
		return LangSys{Required: NoIndex}, false
	}
	return LangSys{
		Required: int(ls.U16(2)),
		Features: parseArray16(ls, 4),
	}, true
}

// FeatureTags returns the tags of the features of a language system. If
// script is NoIndex, the tags of all features in the feature list are
// returned.
func (t *Table) FeatureTags(script, language int) []Tag {
	if t == nil {
		return nil
	}
	if script == NoIndex {
		return recordTags(t.features)
	}
	ls, ok := t.LangSys(script, language)
	if !ok {
		return nil
	}
	var tags []Tag
	if ls.Required != NoIndex && ls.Required < len(t.features) {
		tags = append(tags, t.features[ls.Required].tag)
	}
	for _, inx := range ls.Features {
		if int(inx) < len(t.features) {
			tags = append(tags, t.features[inx].tag)
		}
	}
	return tags
}

// FindFeature returns the feature list index of a feature of a language
// system.
func (t *Table) FindFeature(script, language int, tag Tag) (int, bool) {
	ls, ok := t.LangSys(script, language)
	if !ok {
		return NoIndex, false
	}
	if ls.Required != NoIndex && ls.Required < len(t.features) && t.features[ls.Required].tag == tag {
		return ls.Required, true
	}
	for _, inx := range ls.Features {
		if int(inx) < len(t.features) && t.features[inx].tag == tag {
			return int(inx), true
		}
	}
	return NoIndex, false
}

// LookupIndices returns the indices into the lookup list of a feature.
// Indices beyond the lookup list are dropped.
func (t *Table) LookupIndices(feature int) []uint16 {
	if t == nil || feature < 0 || feature >= len(t.features) {
		return nil
	}
	f := t.featureList.at(int(t.features[feature].offset))
	if f == nil {
		return nil
	}
	var indices []uint16
	for _, inx := range parseArray16(f, 2) {
		if int(inx) < t.lookupCount {
			indices = append(indices, inx)
		}
	}
	return indices
}

func recordTags(recs []tagRecord) []Tag {
	if len(recs) == 0 {
		return nil
	}
	tags := make([]Tag, len(recs))
	for i, r := range recs {
		tags[i] = r.tag
	}
	return tags
}

func findRecord(recs []tagRecord, tag Tag) (int, bool) {
	for i, r := range recs {
		if r.tag == tag {
			return i, true
		}
	}
	return NoIndex, false
}
