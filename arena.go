package typeless

import (
	"fmt"
	"unsafe"
)

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

// chunk represents a single memory chunk within an arena.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // allocation offset within buf
}

// Arena is a chunked bump Allocator. Blocks are carved sequentially out of
// large chunks and reclaimed in bulk by Reset or Release; Deallocate only
// gives back the most recent block. Vectors backed by an arena must be
// Reset before the arena is. Not goroutine-safe; wrap it in a SyncAllocator
// to share it between goroutines.
type Arena struct {
	chunks    []chunk
	chunkSize int
	current   int // index of the chunk allocations are served from
}

// NewArena creates a new Arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	a := &Arena{chunkSize: chunkSize, chunks: []chunk{}}
	// A chunk size the runtime refuses surfaces on the first Allocate.
	_ = a.grow(chunkSize)
	return a
}

// Allocate returns count*stride bytes from the current chunk, starting a
// new chunk when it does not fit. Memory is not zeroed after a Reset.
func (a *Arena) Allocate(count, stride int) ([]byte, error) {
	if a.chunks == nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocation, ErrReleased)
	}
	n, err := byteSize(count, stride)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []byte{}, nil
	}

	// Fast path: current chunk
	if len(a.chunks) > 0 {
		c := &a.chunks[a.current]
		off := alignPtr(c.offset)
		if off+uintptr(n) <= uintptr(len(c.buf)) {
			return c.take(off, n), nil
		}
	}

	// Slow path: reuse a later chunk kept by Reset, or grow
	for i := a.current + 1; i < len(a.chunks); i++ {
		if uintptr(n) <= uintptr(len(a.chunks[i].buf)) {
			a.current = i
			return a.chunks[i].take(0, n), nil
		}
	}
	if err := a.grow(n); err != nil {
		return nil, err
	}
	return a.chunks[a.current].take(0, n), nil
}

// Deallocate rolls the arena back over buf when buf is the most recent
// block of the current chunk. Other blocks are reclaimed by Reset.
func (a *Arena) Deallocate(buf []byte, count int) {
	if len(buf) == 0 || len(a.chunks) == 0 {
		return
	}
	c := &a.chunks[a.current]
	n := uintptr(len(buf))
	if c.offset < n {
		return
	}
	start := c.offset - n
	if unsafe.SliceData(buf) == &c.buf[start] {
		c.offset = start
	}
}

// take hands out n bytes at off and advances the chunk's offset.
func (c *chunk) take(off uintptr, n int) []byte {
	c.offset = off + uintptr(n)
	return c.buf[off : off+uintptr(n) : off+uintptr(n)]
}

// Reset resets allocation offsets to zero but keeps allocated chunks for reuse.
// Every block handed out before the Reset becomes invalid.
func (a *Arena) Reset() {
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	a.current = 0
}

// Release drops all chunks. Subsequent Allocate calls fail with ErrReleased.
func (a *Arena) Release() {
	a.chunks = nil
	a.current = 0
}

// Released reports whether Release has been called.
func (a *Arena) Released() bool {
	return a.chunks == nil
}

// grow appends a new chunk of at least min bytes and makes it current.
func (a *Arena) grow(min int) error {
	size := a.chunkSize
	if min > size {
		size = min
	}
	buf, err := alignedBytes(size)
	if err != nil {
		return err
	}
	a.chunks = append(a.chunks, chunk{buf: buf})
	a.current = len(a.chunks) - 1
	return nil
}

// alignPtr aligns the offset up to pointer size alignment.
func alignPtr(off uintptr) uintptr {
	const align = unsafe.Sizeof(uintptr(0))
	mask := align - 1
	return (off + mask) & ^mask
}
