// Package fifo implements the fixed-capacity circular receive buffer that
// absorbs raw input bytes between processing passes.
package fifo

// Buffer is a single-producer/single-consumer byte FIFO over a fixed
// storage slice. One slot is sacrificed to distinguish full from empty, so
// a buffer over N bytes of storage holds at most N-1 bytes.
//
// Push and Pop touch disjoint indices, which is what makes the
// one-producer/one-consumer arrangement safe without locks. Any other
// concurrent use is undefined.
type Buffer struct {
	buf   []byte
	front int
	back  int
}

// New creates a FIFO over the given storage. The slice is owned by the
// buffer for its lifetime.
func New(storage []byte) *Buffer {
	return &Buffer{buf: storage}
}

// Push appends a byte unless the buffer is full. It never blocks; a full
// buffer returns false and the byte is discarded by the caller's policy.
func (b *Buffer) Push(c byte) bool {
	newBack := (b.back + 1) % len(b.buf)
	if newBack == b.front {
		return false
	}
	b.buf[b.back] = c
	b.back = newBack
	return true
}

// Pop removes and returns the oldest byte. Popping an empty buffer returns
// zero; callers must check Available first.
func (b *Buffer) Pop() byte {
	if b.front == b.back {
		return 0
	}
	c := b.buf[b.front]
	b.front = (b.front + 1) % len(b.buf)
	return c
}

// Available reports how many bytes are pending, accounting for wraparound.
func (b *Buffer) Available() int {
	if b.back >= b.front {
		return b.back - b.front
	}
	return len(b.buf) - b.front + b.back
}
