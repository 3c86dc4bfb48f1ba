//go:build typeless_panic

package typeless

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// panicErr runs fn and returns the error it panicked with.
func panicErr(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		e, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		err = e
	}()
	fn()
	return nil
}

func TestFailureModeIsPanic(t *testing.T) {
	assert.True(t, PanicOnFailure)
}

func TestTypeMismatchPanics(t *testing.T) {
	type A struct{ X int32 }
	type B struct{ X int32 }

	v, err := NewTypesafe[A]()
	require.NoError(t, err)
	_, err = Push(v, A{1})
	require.NoError(t, err)

	err = panicErr(t, func() { _, _ = At[B](v, 0) })
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	err = panicErr(t, func() { _, _ = Push(v, B{2}) })
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Equal(t, 1, v.Size())
}

func TestAllocationFailurePanics(t *testing.T) {
	ta := NewTrackingAllocator(nil)
	ta.SetLimit(8)
	v, err := New[uint64](WithAllocator(ta))
	require.NoError(t, err)

	err = panicErr(t, func() { _, _ = Push(v, uint64(1)) })
	assert.ErrorIs(t, err, ErrAllocation)
	assert.Equal(t, 0, v.Size())
	assert.Equal(t, 0, v.Capacity())

	err = panicErr(t, func() { _ = v.Reserve(100) })
	assert.ErrorIs(t, err, ErrAllocation)
}

func TestOutOfRangeDoesNotPanic(t *testing.T) {
	v, err := New[uint64]()
	require.NoError(t, err)
	p, err := At[uint64](v, 3)
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.False(t, v.Erase(3))
}

func TestPointerStructPanics(t *testing.T) {
	type record struct {
		A int64
		B string
	}
	err := panicErr(t, func() { _, _ = New[record]() })
	assert.ErrorIs(t, err, ErrPointerElement)
}
