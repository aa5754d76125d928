// idle.go: consumer backoff strategies for a caller-driven drain loop
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package quicklog

import (
	"runtime"
	"time"
)

// IdleStrategy controls how DrainLoop waits between FlushOne calls that
// found nothing to do. quicklog itself spawns no background goroutine
// (spec.md §4.5); DrainLoop and IdleStrategy exist purely as a convenience
// for a caller that wants a ready-made consumer loop instead of hand-rolling
// one around FlushOne.
type IdleStrategy interface {
	// Idle is called once per empty FlushOne result.
	Idle()
	// Reset is called once work is found again.
	Reset()
}

// SpinningIdleStrategy busy-waits with no yielding: minimum latency, a full
// CPU core of usage.
type SpinningIdleStrategy struct{}

func (SpinningIdleStrategy) Idle()  {}
func (SpinningIdleStrategy) Reset() {}

// YieldingIdleStrategy yields to the Go scheduler every maxSpins empty
// polls instead of spinning continuously.
type YieldingIdleStrategy struct {
	MaxSpins int
	spins    int
}

// Idle implements IdleStrategy.
func (y *YieldingIdleStrategy) Idle() {
	max := y.MaxSpins
	if max <= 0 {
		max = 1000
	}
	y.spins++
	if y.spins >= max {
		runtime.Gosched()
		y.spins = 0
	}
}

// Reset implements IdleStrategy.
func (y *YieldingIdleStrategy) Reset() { y.spins = 0 }

// SleepingIdleStrategy spins for a configurable number of polls, then sleeps
// a fixed duration between subsequent polls.
type SleepingIdleStrategy struct {
	SleepFor time.Duration
	MaxSpins int
	spins    int
}

// Idle implements IdleStrategy.
func (s *SleepingIdleStrategy) Idle() {
	max := s.MaxSpins
	sleep := s.SleepFor
	if sleep <= 0 {
		sleep = time.Millisecond
	}
	if s.spins < max {
		s.spins++
		return
	}
	time.Sleep(sleep)
}

// Reset implements IdleStrategy.
func (s *SleepingIdleStrategy) Reset() { s.spins = 0 }

// ProgressiveIdleStrategy starts hot-spinning, moves to occasional
// scheduler yields, then backs off into capped exponential sleeps — the
// no-manual-tuning default for a drain loop that sees bursty traffic.
type ProgressiveIdleStrategy struct {
	HotSpinThreshold  int
	WarmSpinThreshold int
	SleepDuration     time.Duration
	MaxSleepDuration  time.Duration

	spins        int64
	sleepCounter int64
}

// NewProgressiveIdleStrategy returns a ProgressiveIdleStrategy with the same
// thresholds the teacher's zephyroslite package ships as its default.
func NewProgressiveIdleStrategy() *ProgressiveIdleStrategy {
	return &ProgressiveIdleStrategy{
		HotSpinThreshold:  1000,
		WarmSpinThreshold: 10000,
		SleepDuration:     time.Microsecond,
		MaxSleepDuration:  time.Millisecond,
	}
}

// Idle implements IdleStrategy.
func (p *ProgressiveIdleStrategy) Idle() {
	p.spins++
	switch {
	case p.spins < int64(p.HotSpinThreshold):
		return
	case p.spins < int64(p.WarmSpinThreshold):
		if p.spins&7 == 0 {
			runtime.Gosched()
		}
	default:
		shift := p.sleepCounter / 2
		if shift > 10 {
			shift = 10
		}
		sleep := p.SleepDuration * time.Duration(int64(1)<<uint(shift))
		if sleep > p.MaxSleepDuration {
			sleep = p.MaxSleepDuration
		}
		time.Sleep(sleep)
		p.sleepCounter++
		p.spins = 0
	}
}

// Reset implements IdleStrategy.
func (p *ProgressiveIdleStrategy) Reset() {
	p.spins = 0
	p.sleepCounter = 0
}
