package fifo

import "testing"

func TestPushPopOrder(t *testing.T) {
	b := New(make([]byte, 8))

	for _, c := range []byte("abc") {
		if !b.Push(c) {
			t.Fatalf("Push(%q) = false, want true", c)
		}
	}
	if got := b.Available(); got != 3 {
		t.Fatalf("Available = %d, want 3", got)
	}

	var got []byte
	for b.Available() > 0 {
		got = append(got, b.Pop())
	}
	if string(got) != "abc" {
		t.Errorf("popped %q, want %q", got, "abc")
	}
}

func TestCapacityIsStorageMinusOne(t *testing.T) {
	b := New(make([]byte, 4))

	// Storage of 4 holds at most 3 bytes.
	for i := 0; i < 3; i++ {
		if !b.Push(byte('0' + i)) {
			t.Fatalf("Push %d = false, want true", i)
		}
	}
	if b.Push('x') {
		t.Error("Push on full buffer = true, want false")
	}
	if got := b.Available(); got != 3 {
		t.Errorf("Available after rejected push = %d, want 3", got)
	}

	// Rejected push must leave contents unchanged.
	want := "012"
	var got []byte
	for b.Available() > 0 {
		got = append(got, b.Pop())
	}
	if string(got) != want {
		t.Errorf("popped %q, want %q", got, want)
	}
}

func TestAvailableTracksPushes(t *testing.T) {
	b := New(make([]byte, 16))
	for i := 0; i < 15; i++ {
		b.Push('x')
		if got := b.Available(); got != i+1 {
			t.Fatalf("after %d pushes Available = %d", i+1, got)
		}
	}
}

func TestWraparound(t *testing.T) {
	b := New(make([]byte, 4))

	// Cycle enough bytes through to wrap the indices several times.
	for i := 0; i < 20; i++ {
		c := byte('a' + i%26)
		if !b.Push(c) {
			t.Fatalf("Push %d failed", i)
		}
		if got := b.Pop(); got != c {
			t.Fatalf("Pop %d = %q, want %q", i, got, c)
		}
	}
	if b.Available() != 0 {
		t.Errorf("Available = %d, want 0", b.Available())
	}
}

func TestPopEmptyReturnsZero(t *testing.T) {
	b := New(make([]byte, 4))
	if got := b.Pop(); got != 0 {
		t.Errorf("Pop on empty = %d, want 0", got)
	}
}
