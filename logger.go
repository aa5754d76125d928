// logger.go: the process-wide logger singleton and its lifecycle
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package quicklog

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/agilira/quicklog/internal/ring"
)

// Logger owns one SPSC ring, its call-site table, and the mutable consumer
// configuration (sink, formatter). A Logger has exactly one producer
// goroutine and exactly one consumer goroutine at any time — spec.md §5
// makes this a hard requirement, not a soft recommendation, and nothing
// here detects a violation.
type Logger struct {
	ring      *ring.Ring
	clock     *Clock
	callSites *callSiteRegistry
	level     *AtomicLevel

	mu        sync.RWMutex
	sink      Sink
	formatter Formatter

	// deferredHighWater is the write-offset of the most recent record whose
	// commit was deferred but not yet published; 0 means there is nothing
	// pending. deferredCount tracks how many records that covers. Only the
	// producer goroutine touches either field.
	deferredHighWater uint64
	deferredCount     uint64

	stats loggerStats
}

// loggerStats holds the read-only counters exposed by Stats. Every field is
// a separate atomic so producer-side increments never contend with a
// concurrent Stats() read, mirroring the teacher's zephyroslite.Stats() map
// built from independent atomic counters.
type loggerStats struct {
	committed atomic.Uint64
	dropped   atomic.Uint64
	processed atomic.Uint64
	ioErrors  atomic.Uint64
}

// Stats is a point-in-time snapshot of a Logger's counters. It is for
// observability only — nothing in quicklog feeds these numbers back into
// the ring buffer or the level gate (spec.md §7 forbids the core from
// logging about itself).
type Stats struct {
	Committed uint64
	Dropped   uint64
	Processed uint64
	IOErrors  uint64

	// SampledAt is when this snapshot was taken, read from the package's
	// cached wall clock (clock.go's CachedWallClock) rather than a fresh
	// time.Now() — Stats is meant to be cheap enough to poll from a metrics
	// exporter on a tight interval.
	SampledAt time.Time
}

// New builds a Logger from cfg. Most callers should use Init instead, which
// also installs the Logger as the package default.
func New(cfg Config) (*Logger, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Logger{
		ring:      ring.New(cfg.Capacity),
		clock:     cfg.Clock,
		callSites: newCallSiteRegistry(),
		level:     NewAtomicLevel(cfg.Level),
		sink:      cfg.Sink,
		formatter: cfg.Formatter,
	}, nil
}

var (
	defaultMu     sync.Mutex
	defaultLogger *Logger
)

// Init builds a Logger with the given ring capacity in bytes (0 selects the
// default) and installs it as the package default, returned by Default. Init
// is idempotent in the ring capacity: only the first call in a process
// actually allocates a ring; later calls return the already-installed
// Logger untouched, exactly as if capacityBytes had matched the first call
// (spec.md §3, §6, §9 — reinitialization never resizes or replaces the
// ring). Sink, formatter, and runtime level remain mutable afterward through
// SetSink/SetFormatter/SetMaxLevel on the returned Logger.
// Init is not safe to call concurrently with Default, Emit, or FlushOne.
func Init(capacityBytes int) *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger != nil {
		return defaultLogger
	}

	l, err := New(Config{Capacity: capacityBytes})
	if err != nil {
		// New fails here only for a negative capacityBytes, which is a
		// programmer error.
		panic(err)
	}
	defaultLogger = l
	return l
}

// Default returns the package-level Logger installed by Init. It panics if
// Init has not been called yet — calling Emit or FlushOne before Init is a
// programmer error (spec.md §7, ErrCodeUninitialized covers the
// explicit-Logger path; Default enforces the same rule for the convenience
// singleton).
func Default() *Logger {
	defaultMu.Lock()
	l := defaultLogger
	defaultMu.Unlock()
	if l == nil {
		panic(newError(ErrCodeUninitialized, "quicklog: Default() called before Init()"))
	}
	return l
}

// SetSink atomically swaps the sink consulted by future FlushOne calls.
func (l *Logger) SetSink(s Sink) {
	l.mu.Lock()
	l.sink = s
	l.mu.Unlock()
}

// SetFormatter atomically swaps the formatter consulted by future FlushOne
// calls.
func (l *Logger) SetFormatter(f Formatter) {
	l.mu.Lock()
	l.formatter = f
	l.mu.Unlock()
}

// SetMaxLevel updates the runtime severity threshold. Safe to call
// concurrently with Emit; takes effect on the next call site evaluated.
func (l *Logger) SetMaxLevel(lvl Level) {
	l.level.Store(lvl)
}

// Level returns the Logger's atomic runtime threshold, for callers that
// want to wire it into a LevelWatcher.
func (l *Logger) Level() *AtomicLevel { return l.level }

// RegisterCallSite makes site known to this Logger's consumer. Producers
// must register a call site before any Emit that references it; NewCallSite
// alone does not register anything, since a single *CallSite may be shared
// across Loggers in tests.
func (l *Logger) RegisterCallSite(site *CallSite) {
	l.callSites.register(site)
}

// Stats returns a snapshot of the Logger's counters.
func (l *Logger) Stats() Stats {
	return Stats{
		Committed: l.stats.committed.Load(),
		Dropped:   l.stats.dropped.Load(),
		Processed: l.stats.processed.Load(),
		IOErrors:  l.stats.ioErrors.Load(),
		SampledAt: CachedWallClock(),
	}
}

func (l *Logger) sinkAndFormatter() (Sink, Formatter) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sink, l.formatter
}

// DrainLoop repeatedly calls FlushOne on l until stop is closed, backing off
// between empty polls according to idle. It spawns no goroutine of its
// own — the caller decides which goroutine owns the consumer role, and
// calling DrainLoop IS that decision. This is a convenience wrapper around
// a hand-written `for { FlushOne(...) }` loop, adapted from the teacher's
// internal/zephyroslite idle-strategy shapes (see idle.go).
func DrainLoop(l *Logger, idle IdleStrategy, stop <-chan struct{}) {
	if idle == nil {
		idle = NewProgressiveIdleStrategy()
	}
	for {
		select {
		case <-stop:
			return
		default:
		}

		err := FlushOne(l)
		switch {
		case err == nil:
			idle.Reset()
		case IsCode(err, ErrCodeEmpty):
			idle.Idle()
		default:
			// IoError and anything else still advances the read cursor
			// inside FlushOne; DrainLoop just keeps going.
			idle.Reset()
		}
	}
}
