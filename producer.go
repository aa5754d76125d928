// producer.go: the hot path — reserve, encode, commit
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package quicklog

// Emit is the reference lowering of one log statement, the six-step
// sequence a code generator targeting quicklog would produce (spec.md §6):
//
//  1. guard — is site's level at or above both the compile envelope and the
//     current runtime threshold?
//  2. call-site reference — look nothing up, site is already the pointer
//  3. size computation — sum each argument's Size()
//  4. reserve — claim that many bytes (plus the fixed header) in the ring
//  5. write — header, then each argument's Encode, back to back
//  6. commit — immediately visible, or deferred-pending per site.Deferred
//
// Emit never allocates on the reserved-successfully path: Size/Encode for
// every built-in Value kind in value.go are allocation-free, and the
// returned ring slice is written in place.
//
// committed is true once the record's bytes have been fully written to the
// ring, whether or not they are visible to the consumer yet. A false,nil
// result means the call site was below the compile envelope or the runtime
// threshold (LevelFiltered, spec.md §7 — a normal, expected outcome, not an
// error). A false,err result means the reservation itself failed
// (BufferFull).
func Emit(l *Logger, site *CallSite, args ...Value) (committed bool, err error) {
	if l == nil || site == nil {
		return false, newError(ErrCodeUninitialized, "quicklog: Emit called with a nil Logger or CallSite")
	}

	if site.Level < compileEnvelope {
		return false, nil
	}
	if !l.level.Allows(site.Level) {
		return false, nil
	}

	payloadLen := 0
	for _, a := range args {
		payloadLen += a.Size()
	}
	total := HeaderSize + payloadLen

	dst, off, rerr := l.ring.Reserve(total)
	if rerr != nil {
		l.stats.dropped.Add(1)
		return false, newErrorf(ErrCodeBufferFull, "reserve %d bytes: %v", total, rerr)
	}

	flags := uint32(0)
	if site.Deferred {
		flags |= flagDeferredPending
	}
	putHeader(dst, header{
		totalLen:   uint32(total),
		flags:      flags,
		callSiteID: site.id,
		timestamp:  l.clock.Now(),
	})

	rest := dst[HeaderSize:]
	for _, a := range args {
		rest = a.Encode(rest)
	}

	if site.Deferred {
		if off+uint64(total) > l.deferredHighWater {
			l.deferredHighWater = off + uint64(total)
		}
		l.deferredCount++
		return true, nil
	}

	l.ring.CommitUpTo(off + uint64(total))
	l.stats.committed.Add(1)
	return true, nil
}

// CommitPending publishes every record written by a deferred call site
// since the last CommitPending, making them all visible to the consumer in
// one step. Calling it with nothing pending is a harmless no-op.
//
// CommitPending must only ever be called from the producer goroutine, the
// same discipline Emit itself requires.
func CommitPending(l *Logger) {
	if l.deferredHighWater == 0 {
		return
	}
	l.ring.CommitUpTo(l.deferredHighWater)
	l.stats.committed.Add(l.deferredCount)
	l.deferredHighWater = 0
	l.deferredCount = 0
}
