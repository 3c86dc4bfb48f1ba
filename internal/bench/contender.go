package bench

import (
	"fmt"
	"time"
	"unsafe"

	"go.uber.org/zap"

	"github.com/pavanmanishd/typeless"
)

// Contender names, used as result column headers.
const (
	StandardVector         = "StandardVector"
	TypelessVector         = "TypelessVector"
	TypesafeTypelessVector = "TypesafeTypelessVector"
)

// ContenderNames lists every known contender in column order.
func ContenderNames() []string {
	return []string{StandardVector, TypelessVector, TypesafeTypelessVector}
}

// Transform is the element pushed by every contender.
type Transform struct {
	X, Y, Z float32
}

// Sample is the outcome of one workload run.
type Sample struct {
	Elapsed time.Duration
	Bytes   int // reserved bytes after the final clear
}

// workload pushes n transforms, erasing the newest one once every period
// pushes, then clears the container.
type workload func(n, period int) (Sample, error)

func transformAt(i int) Transform {
	f := float32(i)
	return Transform{X: f + 2, Y: f * 2, Z: f / 2}
}

func erasesAt(i, period int) bool {
	return i%period == period/2
}

func runSlice(n, period int) (Sample, error) {
	start := time.Now()
	var v []Transform
	for i := range n {
		v = append(v, transformAt(i))
		if erasesAt(i, period) {
			v = v[:len(v)-1]
		}
	}
	v = v[:0]
	elapsed := time.Since(start)
	return Sample{Elapsed: elapsed, Bytes: cap(v) * int(unsafe.Sizeof(Transform{}))}, nil
}

func runVector(v *typeless.Vector, n, period int) (Sample, error) {
	start := time.Now()
	for i := range n {
		if _, err := typeless.Push(v, transformAt(i)); err != nil {
			return Sample{}, err
		}
		if erasesAt(i, period) {
			v.Erase(v.Size() - 1)
		}
	}
	v.Clear()
	elapsed := time.Since(start)
	return Sample{Elapsed: elapsed, Bytes: v.Metrics().BytesReserved}, nil
}

// contenders binds each contender name to its workload. Vector contenders
// draw a fresh allocator per run so runs never share state.
func (r *Runner) contenders() map[string]workload {
	vector := func(newVec func(...typeless.Option) (*typeless.Vector, error)) workload {
		return func(n, period int) (Sample, error) {
			alloc, done := r.newAllocator()
			defer done()
			v, err := newVec(typeless.WithAllocator(alloc))
			if err != nil {
				return Sample{}, err
			}
			defer v.Reset()
			return runVector(v, n, period)
		}
	}
	return map[string]workload{
		StandardVector:         runSlice,
		TypelessVector:         vector(typeless.New[Transform]),
		TypesafeTypelessVector: vector(typeless.NewTypesafe[Transform]),
	}
}

// newAllocator returns the configured allocator and a function releasing it.
func (r *Runner) newAllocator() (typeless.Allocator, func()) {
	switch r.cfg.Allocator {
	case AllocatorArena:
		a := typeless.NewArena(r.cfg.ChunkSize)
		return a, func() {
			m := a.Metrics()
			r.logger.Debug("arena released",
				zap.Int("chunks", m.Chunks),
				zap.Int("bytes_owned", m.BytesOwned),
				zap.Float64("utilization", m.Utilization))
			a.Release()
		}
	case AllocatorTracking:
		t := typeless.NewTrackingAllocator(nil)
		return t, func() {
			s := t.Stats()
			r.logger.Debug("allocator stats",
				zap.Int("allocations", s.Allocations),
				zap.Int("deallocations", s.Deallocations),
				zap.Int("peak_bytes", s.PeakBytes),
				zap.Int("total_bytes", s.TotalBytes))
		}
	default:
		return typeless.HeapAllocator{}, func() {}
	}
}

func (r *Runner) workload(name string) (workload, error) {
	w, ok := r.contenders()[name]
	if !ok {
		return nil, fmt.Errorf("unknown contender %q", name)
	}
	return w, nil
}
