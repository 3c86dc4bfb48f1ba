package typeless

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapAllocator(t *testing.T) {
	var a HeapAllocator
	for _, tc := range []struct{ count, stride int }{{1, 1}, {3, 12}, {7, 8}, {100, 3}} {
		buf, err := a.Allocate(tc.count, tc.stride)
		require.NoError(t, err)
		assert.Len(t, buf, tc.count*tc.stride)
		assert.Zero(t, uintptr(unsafe.Pointer(unsafe.SliceData(buf)))%8, "8-byte aligned")
		a.Deallocate(buf, tc.count)
	}

	buf, err := a.Allocate(0, 4)
	require.NoError(t, err)
	assert.Empty(t, buf)

	a.Deallocate(nil, 0)
}

func TestByteSize(t *testing.T) {
	tests := []struct {
		name          string
		count, stride int
		want          int
		ok            bool
	}{
		{"simple", 3, 4, 12, true},
		{"zero count", 0, 4, 0, true},
		{"largest", math.MaxInt / 8, 8, (math.MaxInt / 8) * 8, true},
		{"overflow", math.MaxInt/8 + 1, 8, 0, false},
		{"max count", math.MaxInt, 2, 0, false},
		{"negative count", -1, 4, 0, false},
		{"negative stride", 1, -4, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := byteSize(tt.count, tt.stride)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.want, n)
			} else {
				assert.ErrorIs(t, err, ErrAllocation)
			}
		})
	}
}

func TestTrackingAllocatorStats(t *testing.T) {
	ta := NewTrackingAllocator(nil)

	b1, err := ta.Allocate(4, 8)
	require.NoError(t, err)
	b2, err := ta.Allocate(2, 8)
	require.NoError(t, err)
	ta.Deallocate(b1, 4)
	ta.Deallocate(nil, 0)

	stats := ta.Stats()
	assert.Equal(t, 2, stats.Allocations)
	assert.Equal(t, 1, stats.Deallocations)
	assert.Equal(t, 16, stats.LiveBytes)
	assert.Equal(t, 48, stats.PeakBytes)
	assert.Equal(t, 48, stats.TotalBytes)
	assert.Equal(t, 0, stats.Failures)

	ta.Deallocate(b2, 2)
	assert.Equal(t, 0, ta.Stats().LiveBytes)
}

func TestTrackingAllocatorLimit(t *testing.T) {
	ta := NewTrackingAllocator(HeapAllocator{})
	ta.SetLimit(64)

	b, err := ta.Allocate(8, 8)
	require.NoError(t, err)

	_, err = ta.Allocate(1, 1)
	assert.ErrorIs(t, err, ErrAllocation)
	assert.Equal(t, 1, ta.Stats().Failures)

	ta.Deallocate(b, 8)
	_, err = ta.Allocate(1, 1)
	assert.NoError(t, err)

	ta.SetLimit(0)
	_, err = ta.Allocate(1024, 8)
	assert.NoError(t, err, "limit removed")
}

func TestVectorWithArenaAllocator(t *testing.T) {
	a := NewArena(1024)
	v, err := New[uint64](WithAllocator(a))
	require.NoError(t, err)

	for i := range uint64(500) {
		_, err := Push(v, i)
		require.NoError(t, err)
	}
	got, err := Data[uint64](v)
	require.NoError(t, err)
	for i, x := range got {
		require.Equal(t, uint64(i), x)
	}
	assert.Greater(t, a.NumChunks(), 1)

	v.Reset()
	a.Reset()
	assert.Equal(t, 0, a.BytesUsed())
}
