// doc.go: package overview for quicklog
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

// Package quicklog is a low-latency, single-producer logging core.
//
// # Design
//
// The call site does the minimum possible work: it reserves exactly as many
// bytes as the record needs in a byte ring buffer, copies a small header plus the raw byte image
// of each argument into it, and commits. No string formatting, no heap
// allocation, and no I/O happen on that path. Formatting the final line and
// writing it to a sink are deferred to an explicit flush step, driven by
// whoever calls FlushOne:
//
//	quicklog.Init(0)
//	site := quicklog.NewCallSite(quicklog.Info, "main", "main.go", 12, "hello {}",
//		quicklog.ArgDesc{Kind: quicklog.ArgSerialized, Decode: quicklog.DecodeInt64})
//	quicklog.Default().RegisterCallSite(site)
//	quicklog.Emit(quicklog.Default(), site, quicklog.Int64(42))
//	quicklog.FlushOne(quicklog.Default())
//
// # Scope
//
// quicklog has no macro or code-generation front end, no multi-producer
// support, and no background flush thread: Emit is the hand-written
// equivalent of what a front end would produce, and FlushOne is meant to be
// driven by the caller (directly, or via DrainLoop) on whichever goroutine
// owns the consumer side.
package quicklog
