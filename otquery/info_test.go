package otquery

import (
	"bytes"
	"testing"

	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// --- Test Suite Preparation ------------------------------------------------

type InfoTestEnviron struct {
	suite.Suite
	loader *ot.Loader
	sfnt   *sfnt.Font
}

// listen for 'go test' command --> run test methods
func TestInfoFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hbshape.font")
	defer teardown()
	suite.Run(t, new(InfoTestEnviron))
}

// run once, before test suite methods
func (env *InfoTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("hbshape.font").SetTraceLevel(tracing.LevelError)
	var err error
	env.loader, err = ot.NewLoader(bytes.NewReader(goregular.TTF))
	env.Require().NoError(err)
	env.sfnt, err = sfnt.Parse(goregular.TTF)
	env.Require().NoError(err)
	tracing.Select("hbshape.font").SetTraceLevel(tracing.LevelInfo)
}

func (env *InfoTestEnviron) table(tag string) []byte {
	b, err := env.loader.RawTable(ot.MustNewTag(tag))
	env.Require().NoError(err, "expected test font to contain table %s", tag)
	return b
}

// --- Tests -----------------------------------------------------------------

func (env *InfoTestEnviron) TestHeadInfo() {
	h, ok := HeadInfo(env.table("head"))
	env.Require().True(ok, "expected to decode table 'head'")
	env.Equal(uint32(0x5F0F3CF5), h.MagicNumber, "expected OpenType head magic number")
	env.Equal(uint16(env.sfnt.UnitsPerEm()), h.UnitsPerEm, "expected matching UnitsPerEm")
	env.Less(h.XMin, h.XMax)
}

func (env *InfoTestEnviron) TestMaxPInfo() {
	m, ok := MaxPInfo(env.table("maxp"))
	env.Require().True(ok, "expected to decode table 'maxp'")
	env.Equal(env.sfnt.NumGlyphs(), int(m.NumGlyphs), "expected matching numGlyphs")
	env.NotZero(m.VersionFixed, "expected maxp version to be set")
}

func (env *InfoTestEnviron) TestHHeaInfo() {
	hh, ok := HHeaInfo(env.table("hhea"))
	env.Require().True(ok, "expected to decode table 'hhea'")
	env.Positive(int(hh.Ascender))
	env.Negative(int(hh.Descender))
	env.NotZero(hh.NumberOfHMetrics)
}

func (env *InfoTestEnviron) TestFontMetrics() {
	m := FontMetrics(env.table("head"), env.table("hhea"))
	env.Equal(sfnt.Units(env.sfnt.UnitsPerEm()), m.UnitsPerEm)
	env.Greater(m.Ascent, m.Descent)
	m = FontMetrics(nil, nil)
	env.Equal(sfnt.Units(1000), m.UnitsPerEm, "expected 1000 units per em for missing 'head'")
}

func (env *InfoTestEnviron) TestFamilyName() {
	want, err := env.sfnt.Name(nil, sfnt.NameIDFamily)
	env.Require().NoError(err)
	family, subfamily := FamilyName(env.table("name"))
	env.Equal(want, family, "expected family name from 'name' table")
	env.NotEmpty(subfamily)
}

// --- Plain tests -----------------------------------------------------------

func TestTruncatedTables(t *testing.T) {
	if _, ok := HeadInfo(make([]byte, 20)); ok {
		t.Errorf("expected truncated 'head' to be rejected")
	}
	if _, ok := MaxPInfo([]byte{0, 1}); ok {
		t.Errorf("expected truncated 'maxp' to be rejected")
	}
	if _, ok := HHeaInfo(make([]byte, 30)); ok {
		t.Errorf("expected truncated 'hhea' to be rejected")
	}
	n := 0
	for range NamesRange([]byte{0, 0, 0, 5, 0, 6}) {
		n++
	}
	if n != 0 {
		t.Errorf("expected no names from broken 'name' table, got %d", n)
	}
}
