// Package arena partitions one fixed-size memory block into the sub-regions
// the engine needs, so that no allocation happens after construction.
package arena

// Granularity is the alignment of every sub-region carved from an arena.
// Matches the pointer size on all supported targets.
const Granularity = 8

// Pad rounds n up to the arena alignment granularity.
func Pad(n int) int {
	return (n + Granularity - 1) &^ (Granularity - 1)
}

// Arena hands out zeroed, aligned sub-slices of a single backing block.
// Once the block is exhausted, Take returns nil.
type Arena struct {
	buf []byte
	off int
}

// New creates an arena backed by a freshly allocated block of the given size.
func New(size int) *Arena {
	return &Arena{buf: make([]byte, size)}
}

// From creates an arena backed by a caller-supplied block. The block is
// zeroed; the caller must not touch it while the arena's slices are in use.
func From(buf []byte) *Arena {
	for i := range buf {
		buf[i] = 0
	}
	return &Arena{buf: buf}
}

// Take carves off a sub-region of exactly n bytes, advancing the arena by
// the padded size. Returns nil if the remaining block is too small.
func (a *Arena) Take(n int) []byte {
	if a.off+n > len(a.buf) {
		return nil
	}
	s := a.buf[a.off : a.off+n : a.off+n]
	a.off += Pad(n)
	if a.off > len(a.buf) {
		a.off = len(a.buf)
	}
	return s
}

// Remaining reports how many bytes are still available.
func (a *Arena) Remaining() int {
	return len(a.buf) - a.off
}
