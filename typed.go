package typeless

import (
	"fmt"
	"iter"
	"reflect"
	"unsafe"
)

// Destroyer is implemented by element types that need cleanup when typed
// Erase or Clear removes them. Raw Erase and Clear never call it.
type Destroyer interface {
	Destroy()
}

// New creates a vector whose stride is the size of T and records T with
// the vector's type guard.
func New[T any](opts ...Option) (*Vector, error) {
	v := newVector(opts)
	if err := Init[T](v); err != nil {
		return nil, err
	}
	return v, nil
}

// NewTypesafe creates a vector for T that rejects typed access with any
// other type.
func NewTypesafe[T any](opts ...Option) (*Vector, error) {
	return New[T](append(opts[:len(opts):len(opts)], WithRuntimeCheck())...)
}

// Init sets the stride to the size of T, records T with the type guard and
// empties the vector. Like InitRaw it does not release an owned buffer.
func Init[T any](v *Vector) error {
	t := reflect.TypeFor[T]()
	if err := checkLayout(t); err != nil {
		return fail(err)
	}
	v.typeGuard().Init(t)
	v.setLayout(int(t.Size()))
	v.layout = t
	return nil
}

// checkLayout rejects types that cannot live in a byte buffer.
func checkLayout(t reflect.Type) error {
	if t.Size() == 0 {
		return fmt.Errorf("%w: %s has zero size", ErrInvalidStride, t)
	}
	if hasPointers(t) {
		return fmt.Errorf("%w: %s", ErrPointerElement, t)
	}
	return nil
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Slice,
		reflect.String, reflect.Chan, reflect.Func, reflect.Interface:
		return true
	}
	return false
}

// cast checks that T may be used to access v's elements: the type guard
// must accept it and its layout must match the stride.
func cast[T any](v *Vector) error {
	t := reflect.TypeFor[T]()
	if !v.typeGuard().Compare(t) {
		return fmt.Errorf("%w: got %s", ErrTypeMismatch, t)
	}
	if t == v.layout {
		return nil
	}
	if v.stride <= 0 {
		return ErrUninitialized
	}
	if err := checkLayout(t); err != nil {
		return err
	}
	if int(t.Size()) != v.stride {
		return fmt.Errorf("%w: %s is %d bytes, stride is %d", ErrStrideMismatch, t, t.Size(), v.stride)
	}
	v.layout = t
	return nil
}

// ptr reinterprets slot i as *T. Callers have already cast.
func ptr[T any](v *Vector, i int) *T {
	return (*T)(unsafe.Pointer(&v.data[i*v.stride]))
}

// Push appends val and returns its index. On failure the index is -1 and
// v is unchanged.
func Push[T any](v *Vector, val T) (int, error) {
	if err := cast[T](v); err != nil {
		return -1, fail(err)
	}
	if err := v.ensureSlot(); err != nil {
		return -1, fail(err)
	}
	i := v.size
	*ptr[T](v, i) = val
	v.size++
	return i, nil
}

// Emplace appends a zero T built in place by the init functions, run in
// order. If one fails the slot is zeroed again, the size is unchanged and
// the error is returned.
func Emplace[T any](v *Vector, inits ...func(*T) error) (int, error) {
	if err := cast[T](v); err != nil {
		return -1, fail(err)
	}
	if err := v.ensureSlot(); err != nil {
		return -1, fail(err)
	}
	i := v.size
	s := v.slot(i)
	clear(s)
	p := ptr[T](v, i)
	for _, fn := range inits {
		if err := fn(p); err != nil {
			clear(s)
			return -1, fail(fmt.Errorf("typeless: emplace %s: %w", v.layout, err))
		}
	}
	v.size++
	return i, nil
}

// At returns element i as *T, or nil if i is out of range.
func At[T any](v *Vector, i int) (*T, error) {
	if err := cast[T](v); err != nil {
		return nil, fail(err)
	}
	if v.data == nil || i < 0 || i >= v.size {
		return nil, nil
	}
	return ptr[T](v, i), nil
}

// Index returns slot i as *T without checking it against Size.
func Index[T any](v *Vector, i int) (*T, error) {
	if err := cast[T](v); err != nil {
		return nil, fail(err)
	}
	return ptr[T](v, i), nil
}

// Data returns the live elements as a []T aliasing the buffer.
func Data[T any](v *Vector) ([]T, error) {
	if err := cast[T](v); err != nil {
		return nil, fail(err)
	}
	if v.size == 0 {
		return nil, nil
	}
	return unsafe.Slice(ptr[T](v, 0), v.size), nil
}

// Elements iterates over the live elements as *T.
func Elements[T any](v *Vector) (iter.Seq2[int, *T], error) {
	if err := cast[T](v); err != nil {
		return nil, fail(err)
	}
	return func(yield func(int, *T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, ptr[T](v, i)) {
				return
			}
		}
	}, nil
}

// Erase destroys element i and removes it. Out of range indexes are a
// no-op. The shift is a byte copy, as for the raw Erase.
func Erase[T any](v *Vector, i int) (bool, error) {
	p, err := At[T](v, i)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, nil
	}
	destroy(p)
	return v.Erase(i), nil
}

// EraseIterator is the typed counterpart of Vector.EraseIterator.
func EraseIterator[T any](v *Vector, it Iterator) (bool, error) {
	if it.parent != v {
		return false, nil
	}
	return Erase[T](v, it.index)
}

// Clear destroys every live element, then clears v.
func Clear[T any](v *Vector) error {
	if err := cast[T](v); err != nil {
		return fail(err)
	}
	for i := 0; i < v.size; i++ {
		destroy(ptr[T](v, i))
	}
	v.Clear()
	return nil
}

func destroy[T any](p *T) {
	if d, ok := any(p).(Destroyer); ok {
		d.Destroy()
	}
}
