package fontload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseOpenTypeFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hbshape.font")
	defer teardown()
	//
	f, err := ParseOpenTypeFont(goregular.TTF, 0)
	require.NoError(t, err)
	assert.Equal(t, "Go Regular", f.Fontname)
	assert.Empty(t, f.Filepath)
	assert.Equal(t, 2048, f.Face.Upem())
	assert.True(t, f.Face.Blob().IsImmutable())
	_, err = ParseOpenTypeFont(goregular.TTF, 1)
	assert.Error(t, err, "single font files have one face")
	_, err = ParseOpenTypeFont([]byte("no font"), 0)
	assert.Error(t, err)
}

func TestLoadOpenTypeFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))
	f, err := LoadOpenTypeFont(path, 0)
	require.NoError(t, err)
	assert.Equal(t, path, f.Filepath)
	assert.Equal(t, "Go Regular", f.Fontname)
	//
	located, err := Locate(path)
	require.NoError(t, err)
	assert.Equal(t, path, located)
	_, err = Locate("")
	assert.Error(t, err)
	_, err = LoadOpenTypeFont("no-such-font-hbshape-test.ttf", 0)
	assert.Error(t, err)
}
