package harfbuzz

import (
	"runtime"
	"sync"
)

// MemoryMode tells a Blob how it may treat the bytes it is created from.
type MemoryMode uint8

const (
	// Duplicate copies the bytes on creation. The copy is writable.
	Duplicate MemoryMode = iota
	// Readonly uses the caller's bytes, which must not change while the blob
	// is alive. They are never written to.
	Readonly
	// Writable uses the caller's bytes and allows writing to them.
	Writable
	// ReadonlyMayMakeWritable uses the caller's bytes read-only, but makes a
	// private writable copy if write access is requested.
	ReadonlyMayMakeWritable
)

func (m MemoryMode) String() string {
	switch m {
	case Duplicate:
		return "duplicate"
	case Readonly:
		return "readonly"
	case Writable:
		return "writable"
	case ReadonlyMayMakeWritable:
		return "readonly-may-make-writable"
	}
	return "unknown"
}

// Blob is a span of bytes used as the source of font tables.
type Blob struct {
	UserData
	data      []byte
	mode      MemoryMode
	immutable bool
	parent    *Blob // keeps the parent reachable for sub-blobs
	destroy   *destroyOnce
}

type destroyOnce struct {
	once sync.Once
	fn   func()
}

func (d *destroyOnce) run() {
	d.once.Do(d.fn)
}

var emptyBlob = &Blob{mode: Readonly, immutable: true}

// EmptyBlob returns the shared blob of length 0.
func EmptyBlob() *Blob {
	return emptyBlob
}

// NewBlob creates a blob from data, treating it according to mode.
func NewBlob(data []byte, mode MemoryMode) *Blob {
	return NewBlobWithDestroy(data, mode, nil)
}

// NewBlobWithDestroy creates a blob which calls destroy exactly once, either
// when Destroy is called or when the blob becomes unreachable. destroy is
// the place to release memory the blob borrows.
func NewBlobWithDestroy(data []byte, mode MemoryMode, destroy func()) *Blob {
	if len(data) == 0 {
		if destroy != nil {
			destroy()
		}
		return emptyBlob
	}
	b := &Blob{data: data, mode: mode}
	if mode == Duplicate {
		b.data = append([]byte(nil), data...)
		b.mode = Writable
	}
	if destroy != nil {
		d := &destroyOnce{fn: destroy}
		b.destroy = d
		runtime.AddCleanup(b, func(d *destroyOnce) { d.run() }, d)
	}
	return b
}

// Destroy runs the blob's destroy callback, if any, and empties the blob.
func (b *Blob) Destroy() {
	if b == nil || b == emptyBlob {
		return
	}
	if b.destroy != nil {
		b.destroy.run()
	}
	b.data = nil
}

// Len returns the number of bytes in the blob.
func (b *Blob) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Data returns the bytes of the blob. Clients must not modify them.
func (b *Blob) Data() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Mode returns the current memory mode.
func (b *Blob) Mode() MemoryMode {
	return b.mode
}

// DataMut returns the bytes of the blob for writing. This is possible for
// writable blobs and for blobs in mode ReadonlyMayMakeWritable, which are
// copied once and become writable. Read-only and immutable blobs return
// false.
func (b *Blob) DataMut() ([]byte, bool) {
	if b == nil || b.immutable || len(b.data) == 0 {
		return nil, false
	}
	switch b.mode {
	case Writable:
		return b.data, true
	case ReadonlyMayMakeWritable:
		b.data = append([]byte(nil), b.data...)
		b.mode = Writable
		return b.data, true
	}
	return nil, false
}

// MakeImmutable freezes the blob. Afterwards DataMut always fails.
func (b *Blob) MakeImmutable() {
	if b != nil && !b.immutable {
		b.immutable = true
	}
}

// IsImmutable reports whether MakeImmutable has been called.
func (b *Blob) IsImmutable() bool {
	return b == nil || b.immutable
}

// SubBlob returns a read-only blob for a range of b's bytes. The range is
// clipped to b. The sub-blob keeps b alive and makes b immutable.
func (b *Blob) SubBlob(offset, length int) *Blob {
	if b == nil || offset < 0 || offset >= len(b.data) || length <= 0 {
		return emptyBlob
	}
	end := offset + length
	if end > len(b.data) || end < offset {
		end = len(b.data)
	}
	b.MakeImmutable()
	return &Blob{data: b.data[offset:end:end], mode: Readonly, immutable: true, parent: b}
}
