// record.go: fixed 24-byte record header shared by producer and consumer
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package quicklog

import "encoding/binary"

// HeaderSize is the fixed width of every record header written to the ring.
// Layout, all little-endian:
//
//	bytes  0- 3  total record length, header included (uint32)
//	bytes  4- 7  flags (uint32) — bit 0: deferred-pending
//	bytes  8-15  call-site id (uint64), a stable index into the process's
//	             call-site table
//	bytes 16-23  timestamp (uint64), nanoseconds from Clock.Now()
//
// The payload that follows is the concatenation of each argument's own
// Encode output, in call-site declaration order (spec.md §3, §4.2).
const HeaderSize = 24

// flagDeferredPending marks a record whose commit was deferred: the bytes
// are fully written, but the call site asked the producer not to publish
// them yet (spec.md §4.4). The producer never clears it: once CommitPending
// publishes the record, the consumer reads a header that still carries the
// flag, and FlushOne ignores it.
const flagDeferredPending = uint32(1 << 0)

// header is the decoded form of a record's fixed prefix.
type header struct {
	totalLen   uint32
	flags      uint32
	callSiteID uint64
	timestamp  uint64
}

// putHeader encodes h into the first HeaderSize bytes of dst. dst must be at
// least HeaderSize bytes long.
func putHeader(dst []byte, h header) {
	binary.LittleEndian.PutUint32(dst[0:4], h.totalLen)
	binary.LittleEndian.PutUint32(dst[4:8], h.flags)
	binary.LittleEndian.PutUint64(dst[8:16], h.callSiteID)
	binary.LittleEndian.PutUint64(dst[16:24], h.timestamp)
}

// readHeader decodes a header from the front of src. A short or internally
// inconsistent src means the SPSC discipline has been violated somewhere
// upstream (spec.md §4.5, §7: Corrupt is not recoverable), so readHeader
// aborts the consumer rather than returning a recoverable error.
func readHeader(src []byte) header {
	if len(src) < HeaderSize {
		panicCorrupt(ErrCodeCorrupt, "record header: need %d bytes, have %d", HeaderSize, len(src))
	}
	h := header{
		totalLen:   binary.LittleEndian.Uint32(src[0:4]),
		flags:      binary.LittleEndian.Uint32(src[4:8]),
		callSiteID: binary.LittleEndian.Uint64(src[8:16]),
		timestamp:  binary.LittleEndian.Uint64(src[16:24]),
	}
	if h.totalLen < HeaderSize {
		panicCorrupt(ErrCodeCorrupt, "record header: total length %d shorter than header itself", h.totalLen)
	}
	return h
}

func (h header) deferred() bool { return h.flags&flagDeferredPending != 0 }

func (h header) payloadLen() int { return int(h.totalLen) - HeaderSize }
