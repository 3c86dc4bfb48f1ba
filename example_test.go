package typeless

import (
	"encoding/binary"
	"fmt"
)

// Example demonstrates basic vector usage
func Example() {
	type Transform struct{ X, Y, Z float32 }

	v, err := New[Transform]()
	if err != nil {
		panic(err)
	}
	defer v.Reset() // Always clean up

	for i := range 4 {
		f := float32(i)
		if _, err := Push(v, Transform{f + 2, f * 2, f / 2}); err != nil {
			panic(err)
		}
	}
	v.Erase(1)

	items, _ := Data[Transform](v)
	fmt.Printf("Elements: %v\n", items)
	fmt.Printf("Size: %d, capacity: %d, stride: %d\n", v.Size(), v.Capacity(), v.Stride())

	v.Clear()
	fmt.Printf("After clear, size: %d, capacity: %d\n", v.Size(), v.Capacity())

	// Output:
	// Elements: [{2 0 0} {4 4 1} {5 6 1.5}]
	// Size: 3, capacity: 6, stride: 12
	// After clear, size: 0, capacity: 6
}

// ExampleNewRaw demonstrates byte-level access without an element type
func ExampleNewRaw() {
	v, _ := NewRaw(4)
	defer v.Reset()

	for _, x := range []uint32{10, 20, 30, 40} {
		v.PushBytes(binary.LittleEndian.AppendUint32(nil, x))
	}
	v.Erase(1)

	for i, b := range v.All() {
		fmt.Printf("%d: %d\n", i, binary.LittleEndian.Uint32(b))
	}

	// Output:
	// 0: 10
	// 1: 30
	// 2: 40
}

// ExampleArena demonstrates backing vectors with an arena
func ExampleArena() {
	a := NewArena(8192)
	defer a.Release()

	ids, _ := New[uint64](WithAllocator(a))
	for i := range uint64(100) {
		Push(ids, i)
	}
	fmt.Printf("Vector size: %d\n", ids.Size())
	fmt.Printf("Arena chunks: %d\n", a.NumChunks())

	// Reset vectors before the arena that backs them
	ids.Reset()
	a.Reset()
	fmt.Printf("After reset, memory in use: %d bytes\n", a.BytesUsed())

	// Output:
	// Vector size: 100
	// Arena chunks: 1
	// After reset, memory in use: 0 bytes
}

// ExampleTrackingAllocator demonstrates allocation accounting
func ExampleTrackingAllocator() {
	ta := NewTrackingAllocator(nil)
	v, _ := New[uint32](WithAllocator(ta))

	for i := range uint32(4) {
		Push(v, i)
	}
	s := ta.Stats()
	fmt.Printf("Allocations: %d, live bytes: %d\n", s.Allocations, s.LiveBytes)

	v.Reset()
	s = ta.Stats()
	fmt.Printf("Deallocations: %d, live bytes: %d\n", s.Deallocations, s.LiveBytes)

	// Output:
	// Allocations: 2, live bytes: 24
	// Deallocations: 2, live bytes: 0
}

// ExampleEmplace demonstrates building an element in place
func ExampleEmplace() {
	type Particle struct {
		X, Y float64
		Life uint16
	}

	v, _ := New[Particle]()
	defer v.Reset()

	i, _ := Emplace(v, func(p *Particle) error {
		p.X, p.Y = 1.5, -2
		p.Life = 60
		return nil
	})
	p, _ := At[Particle](v, i)
	fmt.Printf("%+v\n", *p)

	// Output:
	// {X:1.5 Y:-2 Life:60}
}
