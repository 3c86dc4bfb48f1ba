package typeless

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(t *testing.T, xs ...uint32) *Vector {
	t.Helper()
	v, err := New[uint32]()
	require.NoError(t, err)
	for _, x := range xs {
		_, err := Push(v, x)
		require.NoError(t, err)
	}
	return v
}

func TestIteratorWalk(t *testing.T) {
	v := filled(t, 10, 20, 30)

	var got []uint32
	for it := v.Begin(); !it.Equal(v.End()); it.Next() {
		got = append(got, binary.LittleEndian.Uint32(it.Value()))
	}
	assert.Equal(t, []uint32{10, 20, 30}, got)

	// Re-deriving Begin restarts the walk
	it := v.Begin()
	p, err := Deref[uint32](it)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), *p)
}

func TestIteratorArithmetic(t *testing.T) {
	v := filled(t, 1, 2, 3, 4)

	it := v.Begin()
	it.Prev()
	assert.Equal(t, 0, it.Index(), "Prev clamps at 0")

	it = it.Add(3)
	assert.Equal(t, 3, it.Index())
	assert.Equal(t, 1, it.Sub(2).Index())
	assert.Equal(t, 0, it.Sub(10).Index(), "Sub clamps at 0")

	it.Prev()
	assert.Equal(t, 2, it.Index())
	assert.True(t, it.Equal(v.End().Sub(2)))
}

func TestIteratorOutOfRange(t *testing.T) {
	v := filled(t, 1)
	end := v.End()
	assert.Nil(t, end.Value())
	p, err := Deref[uint32](end)
	require.NoError(t, err)
	assert.Nil(t, p)

	var zero Iterator
	assert.Nil(t, zero.Value())
	zero.Next()
	assert.Equal(t, 0, zero.Index(), "detached iterator does not move")
	assert.Equal(t, 0, zero.Add(3).Index())
	assert.True(t, zero.Sub(2).Equal(zero))
	p, err = Deref[uint32](zero)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestIteratorEqualityIncludesVector(t *testing.T) {
	a := filled(t, 1, 2)
	b := filled(t, 1, 2)

	assert.True(t, a.Begin().Equal(a.Begin()))
	assert.False(t, a.Begin().Equal(b.Begin()), "same index, different vector")
	assert.False(t, a.End().Equal(b.End()))
}

func TestEraseIterator(t *testing.T) {
	a := filled(t, 1, 2, 3)
	b := filled(t, 1, 2, 3)

	assert.False(t, a.EraseIterator(b.Begin()), "foreign iterator ignored")
	assert.Equal(t, 3, a.Size())

	assert.True(t, a.EraseIterator(a.Begin().Add(1)))
	got, err := Data[uint32](a)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 3}, got)

	assert.False(t, a.EraseIterator(a.End()))
}
