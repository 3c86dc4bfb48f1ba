package typeless

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorMetrics(t *testing.T) {
	v, err := New[uint32]()
	require.NoError(t, err)

	assert.Equal(t, VectorMetrics{Stride: 4}, v.Metrics())

	for i := range uint32(4) {
		_, err := Push(v, i)
		require.NoError(t, err)
	}
	m := v.Metrics()
	assert.Equal(t, 4, m.Size)
	assert.Equal(t, 6, m.Capacity)
	assert.Equal(t, 4, m.Stride)
	assert.Equal(t, 16, m.BytesInUse)
	assert.Equal(t, 24, m.BytesReserved)
	assert.InDelta(t, 4.0/6.0, m.Utilization, 1e-9)

	v.Clear()
	assert.Zero(t, v.Metrics().Utilization)
}

func TestArenaMetrics(t *testing.T) {
	a := NewArena(1024)

	m := a.Metrics()
	assert.Equal(t, 0, m.BytesUsed)
	assert.Equal(t, 1024, m.BytesOwned)
	assert.Equal(t, 1, m.Chunks)
	assert.Equal(t, 1024, m.ChunkSize)
	assert.Zero(t, m.Utilization)

	_, err := a.Allocate(64, 8)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, a.Metrics().Utilization, 1e-9)

	_, err = a.Allocate(2048, 1)
	require.NoError(t, err)
	m = a.Metrics()
	assert.Equal(t, 2, m.Chunks)
	assert.Equal(t, 1024+2048, m.BytesOwned)
	assert.Equal(t, 512+2048, m.BytesUsed)

	a.Release()
	m = a.Metrics()
	assert.Equal(t, ArenaMetrics{ChunkSize: 1024}, m)
}
