// ring_test.go: SPSC ring buffer invariants
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ring

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewRoundsCapacityToPowerOfTwo(t *testing.T) {
	cases := map[int]int{
		1:   64,
		63:  64,
		64:  64,
		65:  128,
		100: 128,
		128: 128,
		200: 256,
	}
	for requested, want := range cases {
		r := New(requested)
		if got := r.Capacity(); got != want {
			t.Errorf("New(%d).Capacity() = %d, want %d", requested, got, want)
		}
	}
}

func TestReserveCommitPeekReleaseRoundTrip(t *testing.T) {
	r := New(256)

	buf, off, err := r.Reserve(8)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	copy(buf, []byte("12345678"))
	r.CommitUpTo(off + 8)

	got, err := r.Peek()
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if !bytes.Equal(got, []byte("12345678")) {
		t.Fatalf("Peek = %q, want %q", got, "12345678")
	}

	r.Release(len(got))

	if _, err := r.Peek(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Peek after release: err = %v, want ErrEmpty", err)
	}
}

func TestPeekEmptyBeforeAnyCommit(t *testing.T) {
	r := New(128)
	if _, err := r.Peek(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Peek on fresh ring: err = %v, want ErrEmpty", err)
	}
}

func TestReserveWithoutCommitIsNotVisible(t *testing.T) {
	r := New(128)
	buf, _, err := r.Reserve(16)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	copy(buf, bytes.Repeat([]byte{0xAA}, 16))

	if _, err := r.Peek(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Peek before commit: err = %v, want ErrEmpty", err)
	}
}

func TestDeferredCommitOfMultipleReservations(t *testing.T) {
	r := New(256)

	buf1, off1, err := r.Reserve(8)
	if err != nil {
		t.Fatalf("Reserve 1: %v", err)
	}
	copy(buf1, []byte("aaaaaaaa"))

	buf2, off2, err := r.Reserve(8)
	if err != nil {
		t.Fatalf("Reserve 2: %v", err)
	}
	copy(buf2, []byte("bbbbbbbb"))

	if _, err := r.Peek(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Peek before any commit: err = %v, want ErrEmpty", err)
	}

	r.CommitUpTo(off2 + 8)

	got, err := r.Peek()
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if !bytes.Equal(got, []byte("aaaaaaaabbbbbbbb")) {
		t.Fatalf("Peek = %q, want both records visible in order", got)
	}
	_ = off1
}

func TestReserveFailsWhenFull(t *testing.T) {
	r := New(64)
	if _, _, err := r.Reserve(64); err != nil {
		t.Fatalf("Reserve full capacity: %v", err)
	}
	if _, _, err := r.Reserve(1); !errors.Is(err, ErrBufferFull) {
		t.Fatalf("Reserve over capacity: err = %v, want ErrBufferFull", err)
	}
}

func TestWraparoundSkipsPaddingTransparently(t *testing.T) {
	r := New(64)

	// Fill to near the end, leaving less room than the next record needs,
	// forcing a skip marker and a wrap to offset 0.
	buf, off, err := r.Reserve(48)
	if err != nil {
		t.Fatalf("Reserve 1: %v", err)
	}
	copy(buf, bytes.Repeat([]byte{0x01}, 48))
	r.CommitUpTo(off + 48)

	got, err := r.Peek()
	if err != nil {
		t.Fatalf("Peek 1: %v", err)
	}
	r.Release(len(got))

	// Remaining space before wrap is 16 bytes; reserve something that
	// doesn't fit there, forcing the ring to skip to offset 0.
	buf2, off2, err := r.Reserve(32)
	if err != nil {
		t.Fatalf("Reserve 2 (should wrap): %v", err)
	}
	copy(buf2, bytes.Repeat([]byte{0x02}, 32))
	r.CommitUpTo(off2 + 32)

	got2, err := r.Peek()
	if err != nil {
		t.Fatalf("Peek 2: %v", err)
	}
	if !bytes.Equal(got2, bytes.Repeat([]byte{0x02}, 32)) {
		t.Fatalf("Peek 2 = %x, want 32 bytes of 0x02 (skip marker must not leak into payload)", got2)
	}
}

func TestReleaseThenReserveReclaimsSpace(t *testing.T) {
	r := New(64)

	for i := 0; i < 4; i++ {
		buf, off, err := r.Reserve(16)
		if err != nil {
			t.Fatalf("Reserve %d: %v", i, err)
		}
		copy(buf, bytes.Repeat([]byte{byte(i)}, 16))
		r.CommitUpTo(off + 16)

		got, err := r.Peek()
		if err != nil {
			t.Fatalf("Peek %d: %v", i, err)
		}
		r.Release(len(got))
	}

	w, c, read := r.Cursors()
	if w != c || c != read {
		t.Fatalf("cursors did not converge: w=%d c=%d r=%d", w, c, read)
	}
}
