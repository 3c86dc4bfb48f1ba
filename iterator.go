package typeless

// Iterator is a position in a Vector. It reads the vector live: after an
// insertion, Erase or Reset the position may name a different element or
// none at all.
type Iterator struct {
	parent *Vector
	index  int
}

// Begin returns an iterator at the first element.
func (v *Vector) Begin() Iterator { return Iterator{parent: v} }

// End returns an iterator one past the last element.
func (v *Vector) End() Iterator { return Iterator{parent: v, index: v.size} }

// Index returns the iterator's position.
func (it Iterator) Index() int { return it.index }

// Next advances the iterator by one.
func (it *Iterator) Next() {
	if it.parent != nil {
		it.index++
	}
}

// Prev moves the iterator back by one, stopping at 0.
func (it *Iterator) Prev() {
	if it.parent != nil && it.index > 0 {
		it.index--
	}
}

// Add returns the iterator moved n positions, clamped at 0. A zero
// Iterator does not move.
func (it Iterator) Add(n int) Iterator {
	if it.parent != nil {
		it.index = max(it.index+n, 0)
	}
	return it
}

// Sub returns the iterator moved back n positions, clamped at 0.
func (it Iterator) Sub(n int) Iterator {
	return it.Add(-n)
}

// Equal reports whether both iterators point at the same position of the
// same vector.
func (it Iterator) Equal(o Iterator) bool {
	return it.parent == o.parent && it.index == o.index
}

// Value returns the bytes at the iterator's position, or nil when it is
// out of range.
func (it Iterator) Value() []byte {
	if it.parent == nil {
		return nil
	}
	return it.parent.At(it.index)
}

// Deref returns the element at it as *T, or nil when it is out of range.
func Deref[T any](it Iterator) (*T, error) {
	if it.parent == nil {
		return nil, nil
	}
	return At[T](it.parent, it.index)
}
