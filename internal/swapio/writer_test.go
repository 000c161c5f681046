package swapio

import (
	"bytes"
	"testing"
)

func TestWriterSwap(t *testing.T) {
	t.Parallel()

	first := &bytes.Buffer{}
	w := New(first)

	if got := w.Current(); got != first {
		t.Fatalf("initial destination = %v, want %v", got, first)
	}

	second := &bytes.Buffer{}
	w.Set(second)

	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("Write returned %v, want nil", err)
	}
	if first.Len() != 0 {
		t.Fatalf("first destination captured %q after swap", first.String())
	}
	if second.String() != "hello" {
		t.Fatalf("second destination captured %q, want %q", second.String(), "hello")
	}

	w.Set(nil)
	if _, err := w.Write([]byte("discarded")); err != nil {
		t.Fatalf("Write after Set(nil) returned %v, want nil", err)
	}
	if got := w.Current(); got == nil {
		t.Fatalf("Current returned nil after Set(nil)")
	}
}

func TestWriterClose(t *testing.T) {
	t.Parallel()

	closer := &closableBuffer{}
	w := New(closer)

	if err := w.Close(); err != nil {
		t.Fatalf("Close returned %v, want nil", err)
	}
	if !closer.closed {
		t.Fatalf("destination was not closed")
	}

	if n, err := w.Write([]byte("after-close")); err != nil || n != len("after-close") {
		t.Fatalf("Write after Close = (%d, %v), want (%d, nil)", n, err, len("after-close"))
	}
}

func TestWriterNilDestination(t *testing.T) {
	t.Parallel()

	w := New(nil)
	if n, err := w.Write([]byte("x")); err != nil || n != 1 {
		t.Fatalf("Write with nil destination = (%d, %v), want (1, nil)", n, err)
	}
}

type closableBuffer struct {
	bytes.Buffer
	closed bool
}

func (c *closableBuffer) Close() error {
	c.closed = true
	return nil
}
