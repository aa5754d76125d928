// clock.go: monotonic timestamps for the hot path, wall-clock reconstruction
// for flush
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package quicklog

import (
	"time"

	"github.com/agilira/go-timecache"
)

// Clock hands call sites a cheap monotonic timestamp and lets the consumer
// turn one back into a wall-clock time.Time at flush. Per spec.md §3 the
// producer never calls time.Now() on the hot path for a wall-clock value;
// it records an elapsed duration against a fixed anchor instead.
//
// The anchor is captured once, at NewClock, using time.Now() — which on all
// platforms Go supports embeds a monotonic reading alongside the wall clock
// (see the time package's "Monotonic Clocks" doc). time.Since(anchor) then
// reads only that monotonic component, so Now() never observes NTP
// adjustments mid-run.
type Clock struct {
	anchor time.Time
}

// NewClock captures the anchor instant.
func NewClock() *Clock {
	return &Clock{anchor: time.Now()}
}

// Now returns nanoseconds elapsed since the anchor. This is the value a call
// site stamps into a record's header field.
func (c *Clock) Now() uint64 {
	return uint64(time.Since(c.anchor).Nanoseconds())
}

// ToWall reconstructs a wall-clock time.Time from a timestamp previously
// produced by Now. Used only on the consumer side, at flush.
func (c *Clock) ToWall(ts uint64) time.Time {
	return c.anchor.Add(time.Duration(ts))
}

// wallClock is the flush-path convenience cache (read by Stats()) adapted
// from the teacher's timecache.go. Unlike the teacher's own hand-rolled
// background-ticker TimeCache, this module takes the pack's dedicated
// github.com/agilira/go-timecache dependency directly — the hot path never
// touches it; within the package only Stats() reads it.
var wallClock = timecache.NewWithResolution(time.Millisecond)

// CachedWallClock returns a low-precision, allocation-free wall-clock
// reading suitable for Stats() snapshots and sink bookkeeping. It is not
// used for record timestamps — those come from a *Clock.
func CachedWallClock() time.Time {
	return wallClock.CachedTime()
}
