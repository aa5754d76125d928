// errors.go: error taxonomy for the quicklog core
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package quicklog

import (
	"fmt"
	"time"

	"github.com/agilira/go-errors"
)

// Error codes, one per taxonomy entry in spec.md §7.
const (
	// ErrCodeBufferFull: the requested reservation exceeds the ring's
	// remaining capacity. Returned to the producer's caller; no bytes are
	// written or committed.
	ErrCodeBufferFull errors.ErrorCode = "QUICKLOG_BUFFER_FULL"

	// ErrCodeEmpty: flush_one found nothing committed to drain. Normal
	// control-flow signal, not a failure.
	ErrCodeEmpty errors.ErrorCode = "QUICKLOG_EMPTY"

	// ErrCodeIO: the sink reported a write failure during flush. The record
	// is released regardless, to avoid head-of-line blocking.
	ErrCodeIO errors.ErrorCode = "QUICKLOG_IO_ERROR"

	// ErrCodeCorrupt: a record header is inconsistent (impossible length,
	// unknown flag bits). Programmer error or memory-safety violation
	// upstream; not recoverable.
	ErrCodeCorrupt errors.ErrorCode = "QUICKLOG_CORRUPT"

	// ErrCodeUninitialized: producer or consumer APIs were called before
	// Init. Programmer error.
	ErrCodeUninitialized errors.ErrorCode = "QUICKLOG_UNINITIALIZED"

	// ErrCodeInvalidConfig: Config failed validation (negative capacity,
	// level outside Trace..Off), or a LevelWatcher could not be set up or
	// was started twice.
	ErrCodeInvalidConfig errors.ErrorCode = "QUICKLOG_INVALID_CONFIG"
)

// newError builds a *errors.Error with the standard quicklog context,
// mirroring the teacher's NewLoggerError: component tag, UTC timestamp, and
// (for anything that isn't a pure control-flow signal like Empty) nothing
// more — quicklog never logs its own errors (spec.md §7 propagation policy).
func newError(code errors.ErrorCode, message string) *errors.Error {
	return errors.New(code, message).
		WithContext("component", "quicklog").
		WithContext("timestamp", time.Now().UTC())
}

// newErrorf is newError with Printf-style formatting, used where the
// message needs a record length or cursor value for diagnosis.
func newErrorf(code errors.ErrorCode, format string, args ...interface{}) *errors.Error {
	return newError(code, fmt.Sprintf(format, args...))
}

// IsCode reports whether err carries the given quicklog error code.
func IsCode(err error, code errors.ErrorCode) bool {
	return errors.HasCode(err, code)
}

// panicCorrupt aborts the consumer on a malformed record: spec.md §4.5 and
// §7 both single out Corrupt as categorically different from BufferFull,
// Empty, and IoError — those are expected, recoverable outcomes of normal
// operation, while a corrupt header means the SPSC discipline itself has
// been violated (a second writer, a torn record, a stray write past the
// ring) and there is nothing a caller could do to recover the record. It is
// not recoverable, so quicklog aborts rather than returning it up the call
// stack for a caller to mishandle.
func panicCorrupt(code errors.ErrorCode, format string, args ...interface{}) {
	panic(newErrorf(code, format, args...))
}
