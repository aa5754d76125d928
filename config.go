// config.go: logger configuration, defaults, and validation
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package quicklog

import "fmt"

// Config centralizes the parameters needed to build a Logger. All fields
// are optional; withDefaults fills in anything left zero.
type Config struct {
	// Capacity is the ring buffer's byte capacity, rounded up to the next
	// power of two by internal/ring. Zero selects a default of 1MiB.
	Capacity int

	// Level is the initial runtime threshold. Zero-value Trace is a valid,
	// deliberate choice (not treated as "unset") since Trace is also the
	// lowest severity; callers who want Info by default should set it
	// explicitly, or use DefaultRuntimeLevel().
	Level Level

	// Sink is where flushed lines are written. Defaults to StdoutSink.
	Sink Sink

	// Formatter renders a decoded record into bytes. Defaults to
	// DefaultFormatter.
	Formatter Formatter

	// Clock supplies the hot-path monotonic timestamp. Defaults to a fresh
	// *Clock anchored at Init time. Tests inject their own Clock here.
	Clock *Clock
}

const defaultCapacity = 1 << 20 // 1 MiB

// withDefaults returns a copy of c with every unset field given its
// production default, mirroring the teacher's config.go copy-on-write
// pattern.
func (c Config) withDefaults() Config {
	out := c

	if out.Capacity == 0 {
		out.Capacity = defaultCapacity
	}
	if out.Sink == nil {
		out.Sink = StdoutSink
	}
	if out.Formatter == nil {
		out.Formatter = DefaultFormatter
	}
	if out.Clock == nil {
		out.Clock = NewClock()
	}

	return out
}

// Validate reports whether c, after defaulting, describes a usable logger.
func (c Config) Validate() error {
	if c.Capacity < 0 {
		return newErrorf(ErrCodeInvalidConfig, "capacity must not be negative, got %d", c.Capacity)
	}
	if c.Level < Trace || c.Level > Off {
		return newErrorf(ErrCodeInvalidConfig, "level %d out of range [%d,%d]", c.Level, Trace, Off)
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("Config{Capacity:%d, Level:%s}", c.Capacity, c.Level)
}
