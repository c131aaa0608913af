// Package fontload loads font faces from files or installed system fonts.
package fontload

import (
	"errors"
	"fmt"
	"os"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/hbshape/harfbuzz"
	"github.com/npillmayer/hbshape/otquery"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'hbshape.font'
func tracer() tracing.Trace {
	return tracing.Select("hbshape.font")
}

// ScalableFont is a loaded font face together with its origin.
type ScalableFont struct {
	Fontname string // family and subfamily from table 'name'
	Filepath string // empty for fonts parsed from memory
	Face     *harfbuzz.Face
}

// Locate resolves name to a font file. Names of existing files are returned
// as they are, other names are looked up among the system fonts.
func Locate(name string) (string, error) {
	if name == "" {
		return "", errors.New("fontload: empty font name")
	}
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return name, nil
	}
	path, err := findfont.Find(name)
	if err != nil {
		return "", fmt.Errorf("fontload: font %q not found: %w", name, err)
	}
	tracer().Debugf("%s is a system font at %s", name, path)
	return path, nil
}

// LoadOpenTypeFont loads face number index of a font file or system font.
func LoadOpenTypeFont(name string, index int) (*ScalableFont, error) {
	path, err := Locate(name)
	if err != nil {
		return nil, err
	}
	bytez, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez, index)
	if err != nil {
		return nil, fmt.Errorf("fontload: %s: %w", path, err)
	}
	f.Filepath = path
	return f, nil
}

// ParseOpenTypeFont creates a face for face number index of font data in
// memory. The data must not change afterwards.
func ParseOpenTypeFont(fbytes []byte, index int) (*ScalableFont, error) {
	blob := harfbuzz.NewBlob(fbytes, harfbuzz.Readonly)
	n := harfbuzz.FaceCount(blob)
	if n == 0 {
		return nil, errors.New("not an OpenType font file")
	}
	if index < 0 || index >= n {
		return nil, fmt.Errorf("face index %d out of range, font file has %d faces", index, n)
	}
	f := &ScalableFont{Face: harfbuzz.NewFace(blob, index)}
	family, sub := otquery.FamilyName(f.Face.Table(harfbuzz.TagName).Data())
	f.Fontname = family
	if sub != "" {
		f.Fontname += " " + sub
	}
	tracer().Infof("loaded font %q with %d glyphs", f.Fontname, f.Face.GlyphCount())
	return f, nil
}
