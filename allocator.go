package typeless

import (
	"fmt"
	"math"
	"unsafe"
)

// Allocator obtains and releases the raw memory behind a Vector.
//
// Vectors never resize a block in place: growth allocates a fresh block,
// copies the live bytes and deallocates the old one. An Allocator therefore
// only has to hand out independent blocks.
type Allocator interface {
	// Allocate returns a block of exactly count*stride bytes, aligned to
	// at least 8 bytes. It must fail with ErrAllocation rather than
	// returning a short block, including when count*stride overflows.
	Allocate(count, stride int) ([]byte, error)
	// Deallocate releases a block previously returned by Allocate with the
	// same count. A nil buf is ignored.
	Deallocate(buf []byte, count int)
}

// DefaultAllocator backs vectors created without WithAllocator.
var DefaultAllocator Allocator = HeapAllocator{}

// HeapAllocator allocates from the Go heap. Deallocate leaves the block to
// the garbage collector.
type HeapAllocator struct{}

func (HeapAllocator) Allocate(count, stride int) ([]byte, error) {
	n, err := byteSize(count, stride)
	if err != nil {
		return nil, err
	}
	return alignedBytes(n)
}

func (HeapAllocator) Deallocate([]byte, int) {}

// byteSize returns count*stride, failing if either is negative or the
// product does not fit in an int.
func byteSize(count, stride int) (int, error) {
	if count < 0 || stride < 0 {
		return 0, fmt.Errorf("%w: negative request (%d elements of %d bytes)", ErrAllocation, count, stride)
	}
	if stride != 0 && count > math.MaxInt/stride {
		return 0, fmt.Errorf("%w: %d elements of %d bytes overflows int", ErrAllocation, count, stride)
	}
	return count * stride, nil
}

// alignedBytes returns n zeroed bytes backed by a []uint64 so the block is
// 8-byte aligned. Requests the runtime refuses are reported as ErrAllocation.
func alignedBytes(n int) (buf []byte, err error) {
	if n == 0 {
		return []byte{}, nil
	}
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, fmt.Errorf("%w: %d bytes: %v", ErrAllocation, n, r)
		}
	}()
	words := make([]uint64, (n+7)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), n), nil
}

// TrackingAllocator wraps another Allocator and records what passes
// through it. A positive limit caps the live bytes; requests beyond it fail
// with ErrAllocation. Not goroutine-safe; wrap it in a SyncAllocator to share.
type TrackingAllocator struct {
	inner Allocator
	limit int
	stats AllocatorStats
}

// AllocatorStats is a snapshot of a TrackingAllocator's counters.
type AllocatorStats struct {
	Allocations   int // Successful Allocate calls
	Deallocations int // Deallocate calls with a non-nil block
	Failures      int // Failed Allocate calls
	LiveBytes     int // Bytes allocated and not yet deallocated
	PeakBytes     int // Highest LiveBytes seen
	TotalBytes    int // Bytes handed out over the allocator's lifetime
}

// NewTrackingAllocator wraps inner. If inner is nil, DefaultAllocator is used.
func NewTrackingAllocator(inner Allocator) *TrackingAllocator {
	if inner == nil {
		inner = DefaultAllocator
	}
	return &TrackingAllocator{inner: inner}
}

// SetLimit caps live bytes at limit. Zero or negative removes the cap.
func (t *TrackingAllocator) SetLimit(limit int) {
	t.limit = limit
}

func (t *TrackingAllocator) Allocate(count, stride int) ([]byte, error) {
	n, err := byteSize(count, stride)
	if err != nil {
		t.stats.Failures++
		return nil, err
	}
	if t.limit > 0 && n > t.limit-t.stats.LiveBytes {
		t.stats.Failures++
		return nil, fmt.Errorf("%w: %d bytes exceeds limit (%d of %d live)", ErrAllocation, n, t.stats.LiveBytes, t.limit)
	}
	buf, err := t.inner.Allocate(count, stride)
	if err != nil {
		t.stats.Failures++
		return nil, err
	}
	t.stats.Allocations++
	t.stats.LiveBytes += len(buf)
	t.stats.TotalBytes += len(buf)
	if t.stats.LiveBytes > t.stats.PeakBytes {
		t.stats.PeakBytes = t.stats.LiveBytes
	}
	return buf, nil
}

func (t *TrackingAllocator) Deallocate(buf []byte, count int) {
	if buf == nil {
		return
	}
	t.stats.Deallocations++
	t.stats.LiveBytes -= len(buf)
	t.inner.Deallocate(buf, count)
}

// Stats returns a snapshot of the counters.
func (t *TrackingAllocator) Stats() AllocatorStats {
	return t.stats
}
