package harfbuzz

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/hbshape/otlayout"
	"github.com/npillmayer/hbshape/otquery"
)

// Face is one font resource: a set of binary tables keyed by tag. A face
// is created from the blob of a font file (selecting one face of a
// collection by index) or from a function providing tables.
//
// Faces may be shared by many Fonts and goroutines once set up. The setters
// must not be called concurrently with any other method.
type Face struct {
	UserData
	blob       *Blob
	index      int
	reference  func(Tag) *Blob
	upem       int
	glyphCount int
	immutable  atomic.Bool

	mu        sync.Mutex
	loaded    bool
	loader    *ot.Loader
	layout    *otlayout.Layout
	gotext    *font.Font
	gotextErr error
}

var emptyFace = func() *Face {
	f := &Face{blob: emptyBlob, upem: 1000}
	f.immutable.Store(true)
	return f
}()

// EmptyFace returns the shared face without tables.
func EmptyFace() *Face {
	return emptyFace
}

// NewFace creates a face for face number index of a font file blob.
// The blob is made immutable. A nil blob yields a face without tables.
func NewFace(blob *Blob, index int) *Face {
	if blob == nil {
		blob = emptyBlob
	}
	blob.MakeImmutable()
	return &Face{blob: blob, index: index, glyphCount: -1}
}

// NewFaceForTables creates a face which gets its tables from reference.
// reference returns nil for absent tables.
func NewFaceForTables(reference func(Tag) *Blob) *Face {
	return &Face{blob: emptyBlob, reference: reference, glyphCount: -1}
}

// FaceCount returns the number of faces in a font file blob: 1 for a
// single font, the number of fonts in a collection, and 0 if the blob is not
// a font file.
func FaceCount(blob *Blob) int {
	loaders, err := ot.NewLoaders(bytes.NewReader(blob.Data()))
	if err != nil {
		return 0
	}
	return len(loaders)
}

// Blob returns the blob the face was created from. Faces created from a
// table function return the empty blob.
func (f *Face) Blob() *Blob {
	return f.blob
}

// Index returns the index of the face within its font file.
func (f *Face) Index() int {
	return f.index
}

// SetIndex selects another face of the font file. It is ignored for
// immutable faces.
func (f *Face) SetIndex(index int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.immutable.Load() {
		return
	}
	f.index = index
	f.loaded, f.loader, f.layout, f.gotext, f.gotextErr = false, nil, nil, nil, nil
}

// MakeImmutable freezes the face's settable properties.
func (f *Face) MakeImmutable() {
	if !f.immutable.Load() {
		f.immutable.Store(true)
	}
}

// IsImmutable reports whether MakeImmutable has been called.
func (f *Face) IsImmutable() bool {
	return f.immutable.Load()
}

func (f *Face) tableLoader() *ot.Loader {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loaded {
		return f.loader
	}
	f.loaded = true
	if f.blob.Len() == 0 {
		return nil
	}
	loaders, err := ot.NewLoaders(bytes.NewReader(f.blob.Data()))
	if err != nil {
		tracer().Errorf("face is not a font file: %v", err)
		return nil
	}
	if f.index < 0 || f.index >= len(loaders) {
		tracer().Errorf("face index %d out of range, font file has %d faces", f.index, len(loaders))
		return nil
	}
	f.loader = loaders[f.index]
	return f.loader
}

// Table returns the table with the given tag. Absent tables yield the empty
// blob.
func (f *Face) Table(tag Tag) *Blob {
	if f.reference != nil {
		if b := f.reference(tag); b != nil {
			return b
		}
		return emptyBlob
	}
	ld := f.tableLoader()
	if ld == nil {
		return emptyBlob
	}
	data, err := ld.RawTable(ot.Tag(tag))
	if err != nil {
		return emptyBlob
	}
	b := NewBlob(data, Readonly)
	b.MakeImmutable()
	return b
}

// TableTags returns the tags of all tables of the face. Faces created from
// a table function return nil.
func (f *Face) TableTags() []Tag {
	ld := f.tableLoader()
	if ld == nil {
		return nil
	}
	var tags []Tag
	for _, t := range ld.Tables() {
		tags = append(tags, Tag(t))
	}
	return tags
}

// Upem returns the units per em of the face. It is read from table 'head'
// unless set explicitly, and defaults to 1000.
func (f *Face) Upem() int {
	f.mu.Lock()
	upem := f.upem
	f.mu.Unlock()
	if upem != 0 {
		return upem
	}
	upem = 1000
	if h, ok := otquery.HeadInfo(f.Table(TagHead).Data()); ok && h.UnitsPerEm >= 16 {
		upem = int(h.UnitsPerEm)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upem == 0 {
		f.upem = upem
	}
	return f.upem
}

// SetUpem overrides the units per em. It is ignored for immutable faces.
func (f *Face) SetUpem(upem int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.immutable.Load() {
		f.upem = upem
	}
}

// GlyphCount returns the number of glyphs of the face. It is read from
// table 'maxp' unless set explicitly.
func (f *Face) GlyphCount() int {
	f.mu.Lock()
	n := f.glyphCount
	f.mu.Unlock()
	if n >= 0 {
		return n
	}
	n = 0
	if m, ok := otquery.MaxPInfo(f.Table(TagMaxp).Data()); ok {
		n = int(m.NumGlyphs)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.glyphCount < 0 {
		f.glyphCount = n
	}
	return f.glyphCount
}

// SetGlyphCount overrides the number of glyphs. It is ignored for immutable
// faces.
func (f *Face) SetGlyphCount(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.immutable.Load() {
		f.glyphCount = n
	}
}

// Layout returns the OpenType layout capabilities of the face. Faces
// without layout tables return an empty layout.
func (f *Face) Layout() *otlayout.Layout {
	f.mu.Lock()
	l := f.layout
	f.mu.Unlock()
	if l != nil {
		return l
	}
	l = otlayout.New(f.Table(TagGSUB).Data(), f.Table(TagGPOS).Data(), f.Table(TagGDEF).Data())
	f.mu.Lock()
	f.layout = l
	f.mu.Unlock()
	return l
}

// goTextFace parses the face's blob with go-text/typesetting, for use by
// the OpenType layout engine. The parsed font is cached; every call returns
// a fresh face, as go-text faces must not be shared between goroutines.
func (f *Face) goTextFace() (*font.Face, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gotext == nil && f.gotextErr == nil {
		f.gotext, f.gotextErr = f.parseGoText()
		if f.gotextErr != nil {
			tracer().Debugf("face cannot be used by go-text: %v", f.gotextErr)
		}
	}
	if f.gotextErr != nil {
		return nil, f.gotextErr
	}
	return font.NewFace(f.gotext), nil
}

func (f *Face) parseGoText() (*font.Font, error) {
	if f.blob.Len() == 0 {
		return nil, fmt.Errorf("face has no font file blob")
	}
	r := bytes.NewReader(f.blob.Data())
	if f.index == 0 {
		face, err := font.ParseTTF(r)
		if err != nil {
			return nil, err
		}
		return face.Font, nil
	}
	faces, err := font.ParseTTC(r)
	if err != nil {
		return nil, err
	}
	if f.index < 0 || f.index >= len(faces) {
		return nil, fmt.Errorf("face index %d out of range", f.index)
	}
	return faces[f.index].Font, nil
}
