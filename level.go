// level.go: severity levels and the runtime/compile-time filter gates
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package quicklog

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

// Level is a log call's severity. Levels are totally ordered:
// Trace < Debug < Info < Warn < Error. Off sits strictly above Error and
// disables all emission when used as a threshold.
//
// Level is int32 so threshold comparisons and atomic loads are cheap on the
// hot path.
type Level int32

// Severities, in increasing order. Off is a filter-only sentinel: no call
// site is ever created at Off, but set_max_level(Off) is valid.
const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
	Off
)

// shortNames are the fixed, stable display names from spec.
var shortNames = [...]string{"TRC", "DBG", "INF", "WRN", "ERR", "OFF"}

// String returns the fixed short display name (TRC, DBG, INF, WRN, ERR, OFF).
func (l Level) String() string {
	if l < Trace || l > Off {
		return "UNK"
	}
	return shortNames[l]
}

// Enabled reports whether a call site at this level should run given a
// runtime threshold: S >= threshold.
func (l Level) Enabled(threshold Level) bool {
	return l >= threshold
}

var levelNames = map[string]Level{
	"trc": Trace, "trace": Trace, "0": Trace,
	"dbg": Debug, "debug": Debug, "1": Debug,
	"inf": Info, "info": Info, "2": Info,
	"wrn": Warn, "warn": Warn, "warning": Warn, "3": Warn,
	"err": Error, "error": Error, "4": Error,
	"off": Off, "5": Off,
}

// ParseLevel parses TRC/DBG/INF/WRN/ERR/OFF (any case), their long forms, or
// their numeric equivalents 0..5. This is the decoder for QUICKLOG_MIN_LEVEL.
func ParseLevel(s string) (Level, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if lvl, ok := levelNames[normalized]; ok {
		return lvl, nil
	}
	return Info, fmt.Errorf("quicklog: unknown level %q", s)
}

// AtomicLevel is the process-wide runtime threshold. A call site at severity
// S is executed iff S >= threshold; the threshold is published with a
// release store and read with an acquire load (sync/atomic on amd64/arm64
// gives sequentially consistent loads/stores, which satisfies the weaker
// release/acquire requirement from spec.md §3).
type AtomicLevel struct {
	v atomic.Int32
}

// NewAtomicLevel creates a threshold initialized to lvl.
func NewAtomicLevel(lvl Level) *AtomicLevel {
	a := &AtomicLevel{}
	a.v.Store(int32(lvl))
	return a
}

// Load reads the current threshold.
func (a *AtomicLevel) Load() Level { return Level(a.v.Load()) }

// Store publishes a new threshold.
func (a *AtomicLevel) Store(lvl Level) { a.v.Store(int32(lvl)) }

// Allows reports whether a call site at lvl should reserve, i.e. lvl is at
// or above the current threshold.
func (a *AtomicLevel) Allows(lvl Level) bool { return lvl >= a.Load() }

// compileEnvelope is the Go analogue of the spec's build-time minimum
// severity: a call site below it is never even offered to the runtime gate.
// Go has no macro layer to elide the call entirely (see DESIGN.md, "compile
// envelope"), so this is enforced as a plain package-variable check, made
// before the atomic runtime gate, rather than true dead-code elimination.
var compileEnvelope = loadCompileEnvelope()

func loadCompileEnvelope() Level {
	v, ok := os.LookupEnv("QUICKLOG_MIN_LEVEL")
	if !ok || v == "" {
		return Trace
	}
	lvl, err := ParseLevel(v)
	if err != nil {
		return Trace
	}
	return lvl
}

// CompileEnvelope returns the minimum severity baked in from
// QUICKLOG_MIN_LEVEL at process start.
func CompileEnvelope() Level { return compileEnvelope }

// DefaultRuntimeLevel returns Trace for debug builds and Info for release
// builds, per spec.md §4.7. Go has no separate release/debug build mode, so
// this module treats a binary built with -trimpath (the common release
// signal in the corpus' build tooling) as "release"; otherwise Trace.
func DefaultRuntimeLevel() Level {
	if isTrimmedBuild() {
		return Info
	}
	return Trace
}

// isTrimmedBuild is a best-effort guess used only to select
// DefaultRuntimeLevel's fallback; it is never consulted on the hot path.
func isTrimmedBuild() bool {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return false
	}
	for _, s := range info.Settings {
		if s.Key == "-trimpath" {
			return s.Value == "true"
		}
	}
	return false
}

// parseLevelOrDefault is a small helper for config loading: unknown strings
// fall back to def instead of erroring, mirroring the teacher's tolerant
// config-loader behavior.
func parseLevelOrDefault(s string, def Level) Level {
	if s == "" {
		return def
	}
	if lvl, err := ParseLevel(s); err == nil {
		return lvl
	}
	return def
}
