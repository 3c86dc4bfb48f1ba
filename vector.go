package typeless

import (
	"fmt"
	"iter"
	"math"
	"reflect"
)

// Vector is a contiguous buffer of fixed-width elements whose element type
// is not part of the Vector's own type. Elements are placed, shifted and
// relocated by raw byte copy, so only pointer-free values can be stored
// through the typed functions.
//
// The zero value is an empty, uninitialized vector using NoCheck and
// DefaultAllocator. Not goroutine-safe.
type Vector struct {
	data     []byte // capacity*stride bytes, nil while capacity is 0
	stride   int
	size     int
	capacity int

	guard  TypeGuard
	alloc  Allocator
	layout reflect.Type // last element type validated against stride
}

// Option configures a Vector at construction.
type Option func(*Vector)

// WithAllocator sets the allocator backing the vector.
func WithAllocator(a Allocator) Option {
	return func(v *Vector) { v.alloc = a }
}

// WithTypeGuard sets the guard consulted by typed accesses.
func WithTypeGuard(g TypeGuard) Option {
	return func(v *Vector) { v.guard = g }
}

// WithRuntimeCheck is shorthand for WithTypeGuard(&RuntimeCheck{}).
func WithRuntimeCheck() Option {
	return WithTypeGuard(&RuntimeCheck{})
}

// NewRaw creates a vector of stride-byte elements with no associated type.
func NewRaw(stride int, opts ...Option) (*Vector, error) {
	v := newVector(opts)
	if err := v.InitRaw(stride); err != nil {
		return nil, err
	}
	return v, nil
}

func newVector(opts []Option) *Vector {
	v := &Vector{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Vector) typeGuard() TypeGuard {
	if v.guard == nil {
		v.guard = NoCheck{}
	}
	return v.guard
}

func (v *Vector) allocator() Allocator {
	if v.alloc == nil {
		v.alloc = DefaultAllocator
	}
	return v.alloc
}

// InitRaw sets the stride and empties the vector without associating a
// type. No memory is allocated until the first insertion.
//
// InitRaw does not release a buffer the vector already owns; call Reset
// first when reinitializing.
func (v *Vector) InitRaw(stride int) error {
	if stride <= 0 {
		return fail(fmt.Errorf("%w: %d", ErrInvalidStride, stride))
	}
	v.typeGuard().Reset()
	v.setLayout(stride)
	return nil
}

func (v *Vector) setLayout(stride int) {
	v.data = nil
	v.stride = stride
	v.size = 0
	v.capacity = 0
	v.layout = nil
}

// Reset releases the buffer and returns the vector to its uninitialized
// state. It is safe to call repeatedly and on a vector never initialized.
func (v *Vector) Reset() {
	if v.data != nil {
		v.allocator().Deallocate(v.data, v.capacity)
	}
	v.setLayout(0)
	if v.guard != nil {
		v.guard.Reset()
	}
}

// MoveTo transfers the buffer, bookkeeping, allocator and recorded type to
// dst and leaves v empty and uninitialized. dst is Reset first and keeps
// its own guard policy.
func (v *Vector) MoveTo(dst *Vector) {
	if dst == v {
		return
	}
	var t reflect.Type
	if v.guard != nil {
		t = v.guard.Type()
	}
	dst.Reset()
	dst.data, dst.stride, dst.size, dst.capacity = v.data, v.stride, v.size, v.capacity
	dst.alloc = v.alloc
	dst.layout = v.layout
	v.setLayout(0)
	if v.guard != nil {
		v.guard.Reset()
	}
	if t != nil {
		dst.typeGuard().Init(t)
	}
}

// growthIncrement is the number of slots added when an insertion finds the
// vector full, n being the size after the insertion. It follows CPython's
// list over-allocation.
func growthIncrement(n int) int {
	if n < 9 {
		return n>>3 + 3
	}
	return n>>3 + 6
}

// ensureSlot makes room for one more element.
func (v *Vector) ensureSlot() error {
	if v.stride <= 0 {
		return ErrUninitialized
	}
	if v.size < v.capacity {
		return nil
	}
	inc := growthIncrement(v.size + 1)
	if v.capacity > math.MaxInt-inc {
		return fmt.Errorf("%w: capacity overflows int", ErrAllocation)
	}
	return v.reallocate(v.capacity + inc)
}

// reallocate moves the live elements into a fresh block of newCap slots.
// Nothing is committed unless the allocation succeeds.
func (v *Vector) reallocate(newCap int) error {
	want, err := byteSize(newCap, v.stride)
	if err != nil {
		return err
	}
	buf, err := v.allocator().Allocate(newCap, v.stride)
	if err != nil {
		return err
	}
	if len(buf) != want {
		v.allocator().Deallocate(buf, newCap)
		return fmt.Errorf("%w: allocator returned %d bytes, want %d", ErrAllocation, len(buf), want)
	}
	copy(buf, v.data[:v.size*v.stride])
	if v.data != nil {
		v.allocator().Deallocate(v.data, v.capacity)
	}
	v.data = buf
	v.capacity = newCap
	return nil
}

// Reserve grows capacity so that n more elements can be added without
// reallocating. It is a no-op when that room already exists.
func (v *Vector) Reserve(n int) error {
	if n <= 0 {
		return nil
	}
	if v.stride <= 0 {
		return fail(ErrUninitialized)
	}
	if n > math.MaxInt-v.size {
		return fail(fmt.Errorf("%w: reserving %d more elements overflows int", ErrAllocation, n))
	}
	target := v.size + n
	if target <= v.capacity {
		return nil
	}
	if err := v.reallocate(target); err != nil {
		return fail(err)
	}
	return nil
}

// PushBytes appends a copy of elem, which must be exactly Stride bytes,
// and returns its index. On failure the index is -1 and v is unchanged.
func (v *Vector) PushBytes(elem []byte) (int, error) {
	if v.stride <= 0 {
		return -1, fail(ErrUninitialized)
	}
	if len(elem) != v.stride {
		return -1, fail(fmt.Errorf("%w: got %d bytes, stride is %d", ErrStrideMismatch, len(elem), v.stride))
	}
	if err := v.ensureSlot(); err != nil {
		return -1, fail(err)
	}
	i := v.size
	copy(v.slot(i), elem)
	v.size++
	return i, nil
}

// slot returns the bytes of slot i. It panics if i is beyond the capacity.
func (v *Vector) slot(i int) []byte {
	off := i * v.stride
	return v.data[off : off+v.stride : off+v.stride]
}

// At returns the bytes of element i, or nil if i is out of range.
// The slice aliases the buffer until the next insertion or Reset.
func (v *Vector) At(i int) []byte {
	if v.data == nil || i < 0 || i >= v.size {
		return nil
	}
	return v.slot(i)
}

// Index returns the bytes of slot i without checking it against Size.
// Slots past Size hold unspecified bytes; slots past Capacity panic.
func (v *Vector) Index(i int) []byte {
	return v.slot(i)
}

// Erase removes element i, shifting later elements down one slot and
// zeroing the vacated last slot. It reports whether i was in range.
func (v *Vector) Erase(i int) bool {
	if v.data == nil || i < 0 || i >= v.size {
		return false
	}
	start := i * v.stride
	end := v.size * v.stride
	copy(v.data[start:end], v.data[start+v.stride:end])
	clear(v.data[end-v.stride : end])
	v.size--
	return true
}

// EraseIterator erases the element it points at. Iterators from another
// vector are ignored.
func (v *Vector) EraseIterator(it Iterator) bool {
	if it.parent != v {
		return false
	}
	return v.Erase(it.index)
}

// Clear zeroes the live elements and sets Size to 0. Capacity is kept.
func (v *Vector) Clear() {
	clear(v.data[:v.size*v.stride])
	v.size = 0
}

// Data returns the live region, Size*Stride bytes, or nil when the vector
// holds no memory.
func (v *Vector) Data() []byte {
	if v.data == nil {
		return nil
	}
	return v.data[:v.size*v.stride]
}

// All iterates over the live elements as byte slices.
func (v *Vector) All() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, v.slot(i)) {
				return
			}
		}
	}
}

// Size returns the number of live elements.
func (v *Vector) Size() int { return v.size }

// Stride returns the width of one element in bytes.
func (v *Vector) Stride() int { return v.stride }

// Capacity returns the number of slots currently reserved.
func (v *Vector) Capacity() int { return v.capacity }
