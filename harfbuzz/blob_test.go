package harfbuzz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestBlobModes(t *testing.T) {
	assert.Same(t, EmptyBlob(), NewBlob(nil, Writable))
	assert.Zero(t, EmptyBlob().Len())

	data := []byte("abcd")
	dup := NewBlob(data, Duplicate)
	data[0] = 'x'
	assert.Equal(t, []byte("abcd"), dup.Data())
	assert.Equal(t, Writable, dup.Mode())

	ro := NewBlob(data, Readonly)
	_, ok := ro.DataMut()
	assert.False(t, ok, "read-only blobs cannot be written")

	cow := NewBlob(data, ReadonlyMayMakeWritable)
	w, ok := cow.DataMut()
	require.True(t, ok)
	w[0] = 'a'
	assert.Equal(t, byte('x'), data[0], "writing goes to a private copy")
	assert.Equal(t, Writable, cow.Mode())

	cow.MakeImmutable()
	_, ok = cow.DataMut()
	assert.False(t, ok)
}

func TestSubBlob(t *testing.T) {
	parent := NewBlob([]byte("abcd"), Writable)
	sub := parent.SubBlob(1, 2)
	assert.Equal(t, []byte("bc"), sub.Data())
	assert.True(t, parent.IsImmutable())
	assert.True(t, sub.IsImmutable())
	assert.Equal(t, []byte("d"), parent.SubBlob(3, 10).Data(), "range is clipped")
	assert.Same(t, EmptyBlob(), parent.SubBlob(5, 1))
	assert.Same(t, EmptyBlob(), parent.SubBlob(0, 0))
}

func TestBlobDestroy(t *testing.T) {
	calls := 0
	b := NewBlobWithDestroy([]byte("abc"), Readonly, func() { calls++ })
	b.Destroy()
	b.Destroy()
	assert.Equal(t, 1, calls)
	assert.Zero(t, b.Len())

	NewBlobWithDestroy(nil, Readonly, func() { calls++ })
	assert.Equal(t, 2, calls, "empty blobs release their memory at once")
}

type testKey struct{ n int }

func TestUserData(t *testing.T) {
	var ud UserData
	_, ok := GetUserData[testKey](&ud)
	assert.False(t, ok)
	assert.True(t, SetUserData(&ud, testKey{1}, false))
	assert.False(t, SetUserData(&ud, testKey{2}, false))
	v, ok := GetUserData[testKey](&ud)
	require.True(t, ok)
	assert.Equal(t, 1, v.n)
	assert.True(t, SetUserData(&ud, testKey{3}, true))
	v, _ = GetUserData[testKey](&ud)
	assert.Equal(t, 3, v.n)
	RemoveUserData[testKey](&ud)
	_, ok = GetUserData[testKey](&ud)
	assert.False(t, ok)
}

func TestFaceTables(t *testing.T) {
	blob := NewBlob(goregular.TTF, Readonly)
	assert.Equal(t, 1, FaceCount(blob))
	assert.Zero(t, FaceCount(NewBlob([]byte("no font"), Readonly)))

	face := NewFace(blob, 0)
	assert.True(t, blob.IsImmutable())
	assert.Equal(t, 2048, face.Upem())
	assert.Positive(t, face.GlyphCount())
	assert.Contains(t, face.TableTags(), TagHead)
	assert.Equal(t, 54, face.Table(TagHead).Len())
	assert.Zero(t, face.Table(MakeTag('z', 'z', 'z', 'z')).Len())

	face.SetUpem(1000)
	assert.Equal(t, 1000, face.Upem())
	face.MakeImmutable()
	face.SetUpem(500)
	assert.Equal(t, 1000, face.Upem())
}

func TestFaceForTables(t *testing.T) {
	source := NewFace(NewBlob(goregular.TTF, Readonly), 0)
	face := NewFaceForTables(func(tag Tag) *Blob {
		if tag == TagHead {
			return source.Table(tag)
		}
		return nil
	})
	assert.Equal(t, 2048, face.Upem())
	assert.Zero(t, face.GlyphCount())
	assert.Nil(t, face.TableTags())

	bad := NewFace(NewBlob(goregular.TTF, Readonly), 3)
	assert.Zero(t, bad.Table(TagHead).Len(), "face index out of range")
	assert.Equal(t, 1000, bad.Upem())
}
