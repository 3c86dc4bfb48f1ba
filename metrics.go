package typeless

// VectorMetrics contains statistical information about a vector.
type VectorMetrics struct {
	Size          int     // Live elements
	Capacity      int     // Reserved element slots
	Stride        int     // Bytes per element
	BytesInUse    int     // Size * Stride
	BytesReserved int     // Capacity * Stride
	Utilization   float64 // Ratio of live to reserved slots (0.0-1.0)
}

// Metrics returns a snapshot of vector statistics.
func (v *Vector) Metrics() VectorMetrics {
	m := VectorMetrics{
		Size:          v.size,
		Capacity:      v.capacity,
		Stride:        v.stride,
		BytesInUse:    v.size * v.stride,
		BytesReserved: v.capacity * v.stride,
	}
	if v.capacity > 0 {
		m.Utilization = float64(v.size) / float64(v.capacity)
	}
	return m
}

// ArenaMetrics is a snapshot of an arena's chunk usage.
type ArenaMetrics struct {
	Chunks      int     // Chunks owned
	ChunkSize   int     // Minimum size of a new chunk
	BytesUsed   int     // Bytes handed out, alignment padding included
	BytesOwned  int     // Sum of chunk sizes
	Utilization float64 // BytesUsed / BytesOwned, 0 when nothing is owned
}

// Metrics returns a snapshot of the arena's chunk usage. A released arena
// reports zero for everything but ChunkSize.
func (a *Arena) Metrics() ArenaMetrics {
	m := ArenaMetrics{Chunks: len(a.chunks), ChunkSize: a.chunkSize}
	for _, c := range a.chunks {
		m.BytesUsed += int(c.offset)
		m.BytesOwned += len(c.buf)
	}
	if m.BytesOwned > 0 {
		m.Utilization = float64(m.BytesUsed) / float64(m.BytesOwned)
	}
	return m
}

// NumChunks returns the number of chunks owned by the arena.
func (a *Arena) NumChunks() int { return len(a.chunks) }

// BytesUsed returns the bytes handed out since the last Reset, minus any
// rolled back by Deallocate.
func (a *Arena) BytesUsed() int { return a.Metrics().BytesUsed }
