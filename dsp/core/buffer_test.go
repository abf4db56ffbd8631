package core

import "testing"

func TestEnsureLen(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 || cap(out) != cap(buf) {
		t.Fatalf("reuse: len=%d cap=%d, want 6/%d", len(out), cap(out), cap(buf))
	}

	grown := EnsureLen(buf, 16)
	if len(grown) != 16 {
		t.Fatalf("grow: len=%d, want 16", len(grown))
	}

	if got := EnsureLen(buf, 0); len(got) != 0 {
		t.Fatalf("empty: len=%d, want 0", len(got))
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}
