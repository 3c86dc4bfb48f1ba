package typeless

import "sync"

// SyncAllocator is a mutex-protected wrapper around an Allocator, letting
// vectors owned by different goroutines draw from one Arena or
// TrackingAllocator. It does not make any Vector goroutine-safe.
type SyncAllocator struct {
	mu sync.Mutex
	a  Allocator
}

// NewSyncAllocator wraps a. If a is nil, DefaultAllocator is used.
func NewSyncAllocator(a Allocator) *SyncAllocator {
	if a == nil {
		a = DefaultAllocator
	}
	return &SyncAllocator{a: a}
}

// Allocate thread-safely allocates count*stride bytes from the wrapped allocator.
func (s *SyncAllocator) Allocate(count, stride int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Allocate(count, stride)
}

// Deallocate thread-safely returns buf to the wrapped allocator.
func (s *SyncAllocator) Deallocate(buf []byte, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Deallocate(buf, count)
}

// Do runs fn with exclusive access to the wrapped allocator, for reading
// metrics or resetting an arena while other goroutines share it.
func (s *SyncAllocator) Do(fn func(Allocator)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.a)
}
