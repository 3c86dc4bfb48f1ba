package typeless

import "errors"

var (
	// ErrAllocation is returned when an Allocator cannot satisfy a request,
	// including requests whose byte size overflows int.
	ErrAllocation = errors.New("typeless: allocation failed")

	// ErrTypeMismatch is returned when a typed accessor is called with a
	// type other than the one given at the last Init.
	ErrTypeMismatch = errors.New("typeless: type differs from the one given at last init")

	// ErrInvalidStride is returned for non-positive strides and zero-size element types.
	ErrInvalidStride = errors.New("typeless: invalid stride")

	// ErrStrideMismatch is returned when an element's width differs from the stride.
	ErrStrideMismatch = errors.New("typeless: element width does not match stride")

	// ErrPointerElement is returned for element types that contain pointers.
	// Slots live in memory the garbage collector does not scan.
	ErrPointerElement = errors.New("typeless: element type contains pointers")

	// ErrUninitialized is returned when elements are added before Init or InitRaw.
	ErrUninitialized = errors.New("typeless: vector not initialized")

	// ErrReleased is returned by an Arena used after Release.
	ErrReleased = errors.New("typeless: arena used after Release")
)
