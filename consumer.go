// consumer.go: flush_one — decode, reconstruct, format, write
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package quicklog

import (
	"strings"

	"github.com/agilira/quicklog/internal/bufferpool"
	"github.com/agilira/quicklog/internal/ring"
)

// FlushOne drains exactly one committed record: decode its header, look up
// its call site, decode each argument, substitute the template, format the
// line, and write it to the configured sink. The record's bytes are
// released from the ring whether or not the sink write succeeds — spec.md
// §7's policy is that a slow or failing sink must never block the producer
// by holding a record hostage.
//
// FlushOne must only ever be called from the single consumer goroutine.
func FlushOne(l *Logger) error {
	if l == nil {
		return newError(ErrCodeUninitialized, "quicklog: FlushOne called with a nil Logger")
	}

	available, err := l.ring.Peek()
	if err != nil {
		if err == ring.ErrEmpty {
			return newError(ErrCodeEmpty, "quicklog: nothing committed to flush")
		}
		panicCorrupt(ErrCodeCorrupt, "quicklog: ring peek failed: %v", err)
	}

	h := readHeader(available)
	if len(available) < int(h.totalLen) {
		panicCorrupt(ErrCodeCorrupt, "quicklog: record claims %d bytes, only %d available contiguously", h.totalLen, len(available))
	}

	site, ok := l.callSites.lookup(h.callSiteID)
	if !ok {
		l.ring.Release(int(h.totalLen))
		panicCorrupt(ErrCodeCorrupt, "quicklog: unknown call site id %d", h.callSiteID)
	}

	payload := available[HeaderSize:h.totalLen]
	tokens := make([]string, len(site.Args))
	for i, desc := range site.Args {
		if desc.Decode == nil {
			l.ring.Release(int(h.totalLen))
			panicCorrupt(ErrCodeCorrupt, "quicklog: call site %q argument %d has no Decode function", site.Template, i)
		}
		tok, rest, derr := desc.Decode(payload)
		if derr != nil {
			l.ring.Release(int(h.totalLen))
			panic(derr)
		}
		tokens[i] = tok
		payload = rest
	}

	line := reconstructLine(site, tokens)
	wallTime := l.clock.ToWall(h.timestamp)

	sink, formatter := l.sinkAndFormatter()
	rendered := formatter.Format(wallTime, site, line)

	l.ring.Release(int(h.totalLen))
	l.stats.processed.Add(1)

	if _, werr := sink.Write(rendered); werr != nil {
		l.stats.ioErrors.Add(1)
		return newErrorf(ErrCodeIO, "quicklog: sink write failed: %v", werr)
	}
	return nil
}

// reconstructLine substitutes site.Template's "{}" and "{name}" placeholders
// with tokens (one per site.Args entry, same order), then appends any named
// argument that had no matching placeholder as a trailing "name=token"
// (spec.md §4.5 step 5).
func reconstructLine(site *CallSite, tokens []string) string {
	positional := make([]int, 0, len(site.Args))
	for i, a := range site.Args {
		if a.Name == "" {
			positional = append(positional, i)
		}
	}

	b := bufferpool.Get()
	defer bufferpool.Put(b)

	used := make(map[string]bool, len(site.Args))
	posCursor := 0
	tmpl := site.Template
	for i := 0; i < len(tmpl); {
		if tmpl[i] == '{' {
			if end := strings.IndexByte(tmpl[i:], '}'); end >= 0 {
				name := tmpl[i+1 : i+end]
				if name == "" {
					if posCursor < len(positional) {
						b.WriteString(tokens[positional[posCursor]])
						posCursor++
					}
				} else {
					for k, a := range site.Args {
						if a.Name == name {
							b.WriteString(tokens[k])
							used[name] = true
							break
						}
					}
				}
				i += end + 1
				continue
			}
		}
		b.WriteByte(tmpl[i])
		i++
	}

	for k, a := range site.Args {
		if a.Name != "" && !used[a.Name] {
			b.WriteByte(' ')
			b.WriteString(a.Name)
			b.WriteByte('=')
			b.WriteString(tokens[k])
		}
	}

	return b.String()
}
