// Package history implements the fixed-capacity command history store: a
// byte ring holding a deduplicated, newest-first sequence of NUL-terminated
// commands, with cursor-based up/down navigation.
package history

import "github.com/nathoo/termcore/engine/token"

// Store holds up to capacity bytes of history. Entries are stored
// newest-first, separated by single NUL bytes, with no gaps. The encoding
// matches the tokenizer's segment layout, so entry access reuses the token
// walk.
type Store struct {
	buf   []byte
	items int

	// current is the navigation cursor in [0, items]: 0 means no entry is
	// selected (a fresh line is being edited), items selects the oldest.
	current int
}

// New creates a store over the given storage slice.
func New(storage []byte) *Store {
	return &Store{buf: storage}
}

// Put inserts s as the newest entry. If s already exists verbatim it is
// moved to the front instead of duplicated. Oldest entries are evicted
// until the new one fits; an entry that cannot fit even in an empty store
// is rejected and the store is left unchanged.
func (h *Store) Put(s string) bool {
	n := len(s)
	if n+1 > len(h.buf) {
		return false
	}

	h.Remove(s)

	used := 0
	for h.items > 0 {
		used = h.usedBytes()
		if len(h.buf)-used >= n+1 {
			break
		}
		h.items--
	}

	if h.items > 0 {
		// Shift existing entries right so the new one lands at the front.
		copy(h.buf[n+1:], h.buf[:used])
	}
	copy(h.buf, s)
	h.buf[n] = 0
	h.items++
	return true
}

// Get returns the entry at the 1-based position, newest first, or nil when
// pos is 0 or past the oldest entry. The slice aliases the store's buffer.
func (h *Store) Get(pos int) []byte {
	if pos == 0 || pos > h.items {
		return nil
	}
	return token.Args(h.buf).Get(pos)
}

// Remove deletes the entry equal to s, closing the gap so the remaining
// entries keep their relative order. Absent entries are a no-op.
func (h *Store) Remove(s string) {
	if h.items == 0 {
		return
	}

	pos := 0
	var item []byte
	for i := 1; i <= h.items; i++ {
		if it := h.Get(i); string(it) == s {
			pos, item = i, it
			break
		}
	}
	if pos == 0 {
		return
	}

	h.items--
	if pos == h.items+1 {
		// Oldest entry: nothing after it to move.
		return
	}

	start := 0
	for i := 1; i < pos; i++ {
		start += len(h.Get(i)) + 1
	}
	copy(h.buf[start:], h.buf[start+len(item)+1:])
}

// Count returns the number of stored entries.
func (h *Store) Count() int {
	return h.items
}

// Navigate moves the selection cursor one step older (up) or newer (down),
// clamped at both ends, and returns the selected entry. The second return
// is false when the cursor did not move. A nil entry with a true return
// means the cursor came back to the fresh-line position.
func (h *Store) Navigate(up bool) ([]byte, bool) {
	if h.items == 0 ||
		(up && h.current == h.items) ||
		(!up && h.current == 0) {
		return nil, false
	}

	if up {
		h.current++
	} else {
		h.current--
	}
	return h.Get(h.current), true
}

// ResetCursor returns the cursor to the fresh-line position. Called after
// every command submission.
func (h *Store) ResetCursor() {
	h.current = 0
}

// usedBytes returns the total bytes occupied by the current entries,
// terminators included.
func (h *Store) usedBytes() int {
	used := 0
	for i := 1; i <= h.items; i++ {
		used += len(h.Get(i)) + 1
	}
	return used
}
