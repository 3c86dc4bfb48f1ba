// Package typeless implements a type-erased, strided dynamic array.
//
// # Overview
//
// A Vector stores elements of one fixed byte width, its stride, in a single
// contiguous buffer. The element type is not part of the Vector's type:
// callers work with raw bytes, or with typed views through generic
// functions that reinterpret slots as *T. This is useful for:
//
//   - Containers whose element type is only known at runtime
//   - Heterogeneous collections of homogeneous buffers (one per component type)
//   - Custom memory strategies (arenas, pools, instrumented allocators)
//
// # Basic Usage
//
//	v, err := typeless.New[Transform]()
//	if err != nil {
//		return err
//	}
//	defer v.Reset() // Release the buffer when done
//
//	// Typed access
//	i, err := typeless.Push(v, Transform{X: 1})
//	p, err := typeless.At[Transform](v, i)
//
//	// Raw access
//	raw, _ := typeless.NewRaw(12)
//	raw.PushBytes(make([]byte, 12))
//	b := raw.At(0)
//
// # Type Safety
//
// Typed access goes through a TypeGuard. The default, NoCheck, accepts any
// type whose size equals the stride. RuntimeCheck only accepts the type
// given to Init or New:
//
//	v, _ := typeless.NewTypesafe[Transform]()
//	_, err := typeless.At[int64](v, 0) // errors.Is(err, typeless.ErrTypeMismatch)
//
// Element types must be pointer-free: slots are moved by byte copy and live
// in memory the garbage collector does not scan. Types with pointers,
// strings, slices, maps, channels, funcs or interfaces are rejected with
// ErrPointerElement.
//
// # Memory Layout
//
// Capacity grows on demand by (n>>3) + (n<9 ? 3 : 6) slots, n being the size
// after the insertion. Every growth allocates a fresh block from the
// vector's Allocator, copies the live bytes and deallocates the old block;
// nothing changes if the allocation fails. Erase shifts later elements down
// and zeroes the vacated slot.
//
// # Allocators
//
//   - HeapAllocator: the Go heap (default)
//   - Arena: chunked bump allocator with bulk Reset and Release
//   - TrackingAllocator: counts allocations and can cap live bytes
//   - SyncAllocator: mutex wrapper for sharing any of the above
//
// # Failure Handling
//
// Operations that can fail return an error together with an absent result
// (-1 for indexes, nil for slices and pointers). Building with the
// typeless_panic tag makes the same failures panic with the error instead.
//
// # Thread Safety
//
// A Vector is not goroutine-safe, and iterators must not be held across
// calls that insert, erase or reset.
package typeless
