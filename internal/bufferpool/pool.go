// pool.go: a sync.Pool of scratch *bytes.Buffer for line reconstruction
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package bufferpool

import (
	"bytes"
	"sync"
	"sync/atomic"
)

var (
	getCount   int64
	putCount   int64
	allocCount int64
	dropCount  int64
)

const (
	// MaxBufferSize is the largest buffer capacity kept in the pool; bigger
	// ones are dropped instead of recycled so one outsized line can't pin a
	// large allocation in the pool forever.
	MaxBufferSize = 1 << 20 // 1 MiB

	// DefaultCapacity is the initial capacity for a freshly allocated
	// buffer, sized for a typical reconstructed log line.
	DefaultCapacity = 512
)

var pool = sync.Pool{
	New: func() any {
		atomic.AddInt64(&allocCount, 1)
		return bytes.NewBuffer(make([]byte, 0, DefaultCapacity))
	},
}

// Get returns a reset *bytes.Buffer from the pool, ready to write into.
func Get() *bytes.Buffer {
	atomic.AddInt64(&getCount, 1)
	b := pool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

// Put returns b to the pool. A buffer whose backing array grew past
// MaxBufferSize is replaced with a fresh, default-sized one instead of being
// recycled, so a single outsized line doesn't bloat the pool permanently.
func Put(b *bytes.Buffer) {
	if b == nil {
		return
	}

	atomic.AddInt64(&putCount, 1)

	if b.Cap() > MaxBufferSize {
		atomic.AddInt64(&dropCount, 1)
		*b = *bytes.NewBuffer(make([]byte, 0, DefaultCapacity))
	}

	b.Reset()
	pool.Put(b)
}

// Stats is a snapshot of pool activity, useful when diagnosing unexpected
// allocation rates on the flush path.
type Stats struct {
	Gets        int64
	Puts        int64
	Allocations int64
	Drops       int64
}

// GetStats returns a snapshot of the pool's counters.
func GetStats() Stats {
	return Stats{
		Gets:        atomic.LoadInt64(&getCount),
		Puts:        atomic.LoadInt64(&putCount),
		Allocations: atomic.LoadInt64(&allocCount),
		Drops:       atomic.LoadInt64(&dropCount),
	}
}

// ResetStats zeroes the pool's counters, for use between test cases or
// benchmark iterations.
func ResetStats() {
	atomic.StoreInt64(&getCount, 0)
	atomic.StoreInt64(&putCount, 0)
	atomic.StoreInt64(&allocCount, 0)
	atomic.StoreInt64(&dropCount, 0)
}
