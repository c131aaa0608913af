package harfbuzz

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// namedShaper succeeds if ok is set, mapping every code point to glyph 1.
type namedShaper struct {
	name string
	ok   bool
}

func (s namedShaper) Name() string { return s.name }

func (s namedShaper) Shape(font *Font, buf *Buffer, features []Feature) bool {
	if !s.ok {
		buf.SetContentType(ContentGlyphs) // must be undone
		return false
	}
	n := buf.Len()
	buf.setGlyphs(make([]GlyphInfo, n), make([]GlyphPosition, n))
	for i := range buf.glyphs {
		buf.glyphs[i].Glyph = 1
	}
	return true
}

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestBuiltinShaperOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hbshape.shaper")
	defer teardown()
	//
	reg := newShaperRegistry(env(nil), builtInShapers()...)
	assert.Equal(t, []string{"ot", "fallback", "trivial"}, names(reg.candidates(nil)))
	assert.Equal(t, []string{"trivial", "ot"}, names(reg.candidates([]string{"trivial", "nope", "ot", "trivial"})))
	assert.Empty(t, reg.candidates([]string{}))
}

func TestShaperOrderFromEnvironment(t *testing.T) {
	reg := newShaperRegistry(env(map[string]string{ShaperListEnv: "trivial, fallback,unknown"}), builtInShapers()...)
	assert.Equal(t, []string{"trivial", "fallback", "ot"}, names(reg.candidates(nil)))
	reg = newShaperRegistry(env(map[string]string{ShaperListEnv: "  "}), builtInShapers()...)
	assert.Equal(t, []string{"ot", "fallback", "trivial"}, names(reg.candidates(nil)))
}

func TestShaperRegistration(t *testing.T) {
	reg := newShaperRegistry(env(nil), builtInShapers()...)
	require.NoError(t, reg.register(namedShaper{name: "mine", ok: true}))
	assert.Equal(t, "mine", names(reg.candidates(nil))[0], "registered shapers go first")
	assert.ErrorIs(t, reg.register(namedShaper{name: "mine"}), ErrShaperAlreadyRegistered)
	assert.ErrorIs(t, reg.register(namedShaper{name: "ot"}), ErrShaperAlreadyRegistered)
	assert.Error(t, reg.register(namedShaper{name: " "}))
	assert.Error(t, reg.register(nil))
	assert.True(t, reg.unregister("mine"))
	assert.False(t, reg.unregister("mine"))
	assert.Equal(t, []string{"ot", "fallback", "trivial"}, names(reg.candidates(nil)))
}

func TestRegisteredShaperIsUsed(t *testing.T) {
	require.NoError(t, RegisterShaper(namedShaper{name: "failing"}))
	require.NoError(t, RegisterShaper(namedShaper{name: "ones", ok: true}))
	defer UnregisterShaper("failing")
	defer UnregisterShaper("ones")
	assert.Equal(t, []string{"ones", "failing"}, ListShapers()[:2])

	buf := newLatinBuffer("abc", LeftToRight)
	plan := NewShapePlan(nil, buf.Props(), nil, []string{"failing", "ones"})
	require.NoError(t, plan.Execute(nil, buf, nil))
	assert.Equal(t, "ones", plan.Shaper())
	assert.Equal(t, []GID{1, 1, 1}, glyphIDs(buf))

	buf = newLatinBuffer("abc", LeftToRight)
	err := ShapeFull(nil, buf, nil, []string{"failing"})
	assert.ErrorIs(t, err, ErrNoShaper)
	assert.Equal(t, ContentUnicode, buf.ContentType(), "failed shaper's changes are undone")
	assert.Equal(t, 3, buf.Len())
}
