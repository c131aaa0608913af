package harfbuzz

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hbshape.shaper")
	defer teardown()
	//
	liga := TagFromString("liga")
	cases := []struct {
		in   string
		want Feature
	}{
		{"liga", Feature{liga, 1, FeatureGlobalStart, FeatureGlobalEnd}},
		{"+liga", Feature{liga, 1, FeatureGlobalStart, FeatureGlobalEnd}},
		{"-liga", Feature{liga, 0, FeatureGlobalStart, FeatureGlobalEnd}},
		{"liga=0", Feature{liga, 0, FeatureGlobalStart, FeatureGlobalEnd}},
		{"aalt=2", Feature{TagFromString("aalt"), 2, FeatureGlobalStart, FeatureGlobalEnd}},
		{"liga=2[3:7]", Feature{liga, 2, 3, 7}},
		{"liga[3:7]=2", Feature{liga, 2, 3, 7}},
		{"liga[3]", Feature{liga, 1, 3, 4}},
		{"liga[3:]", Feature{liga, 1, 3, FeatureGlobalEnd}},
		{"liga[:5]", Feature{liga, 1, 0, 5}},
		{"liga[:]", Feature{liga, 1, FeatureGlobalStart, FeatureGlobalEnd}},
		{"'liga'", Feature{liga, 1, FeatureGlobalStart, FeatureGlobalEnd}},
		{`"liga"=3`, Feature{liga, 3, FeatureGlobalStart, FeatureGlobalEnd}},
		{"xx", Feature{MakeTag('x', 'x', ' ', ' '), 1, FeatureGlobalStart, FeatureGlobalEnd}},
		{" kern = 0 ", Feature{TagFromString("kern"), 0, FeatureGlobalStart, FeatureGlobalEnd}},
	}
	for _, c := range cases {
		f, err := ParseFeature(c.in)
		if assert.NoError(t, err, c.in) {
			assert.Equal(t, c.want, f, c.in)
		}
	}
}

func TestParseFeatureErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hbshape.shaper")
	defer teardown()
	//
	for _, in := range []string{
		"", "-", "ligatures", "liga[]", "liga[3", "liga=", "liga=x", "'lig'", "liga!", "liga[1:2]=3[4:5]",
	} {
		_, err := ParseFeature(in)
		assert.ErrorIs(t, err, ErrMalformedFeature, "input %q", in)
	}
}

func TestParseFeatures(t *testing.T) {
	features, err := ParseFeatures("kern,-liga smcp[2:4]")
	require.NoError(t, err)
	require.Len(t, features, 3)
	assert.Equal(t, TagFromString("smcp"), features[2].Tag)
	assert.False(t, features[2].IsGlobal())
	_, err = ParseFeatures("kern,li!ga")
	assert.ErrorIs(t, err, ErrMalformedFeature)
}

func TestFeatureString(t *testing.T) {
	for _, s := range []string{"liga", "-kern", "aalt=2", "liga[3:7]=2", "liga[3]", "liga[3:]", "liga[:5]", "liga[0]", "xx"} {
		f, err := ParseFeature(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, f.String())
		g, err := ParseFeature(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, g)
	}
}

func TestFeatureCovers(t *testing.T) {
	f := Feature{Tag: TagFromString("liga"), Value: 1, Start: 2, End: 4}
	assert.False(t, f.covers(1))
	assert.True(t, f.covers(2))
	assert.True(t, f.covers(3))
	assert.False(t, f.covers(4))
	assert.True(t, NewFeature(TagFromString("kern")).IsGlobal())
}
