package otlayout

import (
	"encoding/binary"
	"testing"

	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type tableWriter struct {
	b []byte
}

func (w *tableWriter) u16(vs ...uint16) *tableWriter {
	for _, v := range vs {
		w.b = binary.BigEndian.AppendUint16(w.b, v)
	}
	return w
}

func (w *tableWriter) tag(s string) *tableWriter {
	w.b = binary.BigEndian.AppendUint32(w.b, uint32(ot.MustNewTag(s)))
	return w
}

func (w *tableWriter) at(t *testing.T, pos int) *tableWriter {
	t.Helper()
	if len(w.b) != pos {
		t.Fatalf("test table layout broken: at %d, expected %d", len(w.b), pos)
	}
	return w
}

// synthGSUB builds a GSUB with one script 'latn' (default language system
// plus 'DEU '), features 'liga' and 'smcp' and two lookups.
func synthGSUB(t *testing.T) []byte {
	w := &tableWriter{}
	w.u16(1, 0, 10, 44, 72)
	// ScriptList @10
	w.at(t, 10).u16(1).tag("latn").u16(8)
	// Script @18
	w.at(t, 18).u16(10, 1).tag("DEU ").u16(18)
	w.at(t, 28).u16(0, NoIndex, 1, 0) // default LangSys: liga
	w.at(t, 36).u16(0, 1, 1, 0)       // DEU: required smcp, liga
	// FeatureList @44
	w.at(t, 44).u16(2).tag("liga").u16(14).tag("smcp").u16(20)
	w.at(t, 58).u16(0, 1, 0)
	w.at(t, 64).u16(0, 2, 1, 5) // lookup 5 does not exist
	// LookupList @72
	w.at(t, 72).u16(2, 0, 0)
	return w.b
}

// synthGDEF builds a GDEF classifying glyphs 1–10 as base and 20–22 as
// marks, with attachment points for glyph 5 and carets for glyph 30.
func synthGDEF(t *testing.T) []byte {
	w := &tableWriter{}
	w.u16(1, 0, 12, 28, 46, 0)
	w.at(t, 12).u16(2, 2, 1, 10, 1, 20, 22, 3)
	// AttachList @28
	w.at(t, 28).u16(12, 1, 6)
	w.at(t, 34).u16(2, 3, 7)
	w.at(t, 40).u16(1, 1, 5)
	// LigCaretList @46
	w.at(t, 46).u16(20, 1, 6)
	w.at(t, 52).u16(2, 6, 10)
	w.at(t, 58).u16(1, 300)
	w.at(t, 62).u16(2, 4)
	w.at(t, 66).u16(1, 1, 30)
	return w.b
}

func TestScriptsAndLanguages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hbshape.layout")
	defer teardown()
	//
	gsub, err := ParseTable(synthGSUB(t))
	if err != nil {
		t.Fatal(err)
	}
	if tags := gsub.ScriptTags(); len(tags) != 1 || tags[0] != ot.MustNewTag("latn") {
		t.Fatalf("expected script tags [latn], have %v", tags)
	}
	if inx, chosen, ok := gsub.SelectScript([]Tag{ot.MustNewTag("cyrl")}); ok || inx != 0 || chosen != tagLatn {
		t.Errorf("expected fallback to 'latn', have %d/%v/%v", inx, chosen, ok)
	}
	if tags := gsub.LanguageTags(0); len(tags) != 1 || tags[0] != ot.MustNewTag("DEU ") {
		t.Errorf("expected language tags [DEU ], have %v", tags)
	}
	if inx, ok := gsub.FindLanguage(0, ot.MustNewTag("DEU ")); !ok || inx != 0 {
		t.Errorf("expected to find DEU at 0, have %d", inx)
	}
	if inx, ok := gsub.FindLanguage(0, ot.MustNewTag("FRA ")); ok || inx != NoIndex {
		t.Errorf("expected FRA to be missing, have %d", inx)
	}
}

func TestFeaturesAndLookups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hbshape.layout")
	defer teardown()
	//
	gsub, _ := ParseTable(synthGSUB(t))
	liga, smcp := ot.MustNewTag("liga"), ot.MustNewTag("smcp")
	if tags := gsub.FeatureTags(0, NoIndex); len(tags) != 1 || tags[0] != liga {
		t.Errorf("expected default language system to have [liga], have %v", tags)
	}
	if tags := gsub.FeatureTags(0, 0); len(tags) != 2 || tags[0] != smcp || tags[1] != liga {
		t.Errorf("expected DEU to have [smcp liga], have %v", tags)
	}
	if tags := gsub.FeatureTags(NoIndex, NoIndex); len(tags) != 2 {
		t.Errorf("expected 2 features in feature list, have %v", tags)
	}
	inx, ok := gsub.FindFeature(0, 0, smcp)
	if !ok || inx != 1 {
		t.Fatalf("expected required feature smcp at index 1, have %d", inx)
	}
	if lookups := gsub.LookupIndices(inx); len(lookups) != 1 || lookups[0] != 1 {
		t.Errorf("expected lookups [1] for smcp, have %v", lookups)
	}
	if n := gsub.LookupCount(); n != 2 {
		t.Errorf("expected 2 lookups, have %d", n)
	}
	l := New(synthGSUB(t), nil, nil)
	if !l.HasSubstitution() || l.HasPositioning() {
		t.Errorf("expected GSUB only")
	}
}

func TestGlyphDefinitions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hbshape.layout")
	defer teardown()
	//
	l := New(nil, nil, synthGDEF(t))
	if !l.HasGlyphClasses() {
		t.Fatal("expected GDEF to have glyph classes")
	}
	for g, want := range map[uint16]GlyphClass{5: BaseGlyph, 21: MarkGlyph, 15: ClassUnclassified} {
		if c := l.GlyphClass(g); c != want {
			t.Errorf("expected glyph %d to be %s, is %s", g, want, c)
		}
	}
	if pts := l.AttachPoints(5); len(pts) != 2 || pts[0] != 3 || pts[1] != 7 {
		t.Errorf("expected attachment points [3 7], have %v", pts)
	}
	if pts := l.AttachPoints(6); pts != nil {
		t.Errorf("expected no attachment points for glyph 6, have %v", pts)
	}
	carets := l.LigatureCarets(30)
	if len(carets) != 2 {
		t.Fatalf("expected 2 carets, have %d", len(carets))
	}
	if carets[0].IsPoint || carets[0].Coordinate != 300 {
		t.Errorf("expected coordinate caret 300, have %+v", carets[0])
	}
	if !carets[1].IsPoint || carets[1].PointIndex != 4 {
		t.Errorf("expected point caret 4, have %+v", carets[1])
	}
}

func TestMalformedTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hbshape.layout")
	defer teardown()
	//
	if _, err := ParseTable([]byte{0, 1}); err == nil {
		t.Errorf("expected truncated layout header to be rejected")
	}
	gsub := synthGSUB(t)
	l := New(gsub[:50], []byte{0, 2, 0, 0, 0, 0, 0, 0, 0, 0}, []byte{0, 1, 0})
	if l.HasPositioning() || l.HasGlyphClasses() {
		t.Errorf("expected broken tables to be treated as absent")
	}
	_ = l.GSUB().FeatureTags(0, NoIndex)
	_ = l.GSUB().LookupIndices(0)
	var empty *Layout
	if empty.HasSubstitution() || empty.GlyphClass(1) != ClassUnclassified {
		t.Errorf("expected nil layout to be empty")
	}
}
