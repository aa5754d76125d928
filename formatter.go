// formatter.go: pluggable rendering of a decoded record into a line of text
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package quicklog

import (
	"strings"
	"time"
)

// Formatter turns a decoded record into the bytes a Sink writes, given the
// wall-clock time the record was produced, its call site, and the line
// already reconstructed from the template and decoded argument tokens.
type Formatter interface {
	Format(ts time.Time, site *CallSite, line string) []byte
}

// defaultFormatter renders "[2006-01-02T15:04:05.000000000Z] line\n",
// matching spec.md §9's note that the default rendering omits severity.
type defaultFormatter struct{}

// DefaultFormatter is the formatter used when none is configured.
var DefaultFormatter Formatter = defaultFormatter{}

func (defaultFormatter) Format(ts time.Time, site *CallSite, line string) []byte {
	var b strings.Builder
	b.Grow(len(line) + 40)
	b.WriteByte('[')
	b.WriteString(ts.UTC().Format("2006-01-02T15:04:05.000000000Z"))
	b.WriteString("] ")
	b.WriteString(line)
	b.WriteByte('\n')
	return []byte(b.String())
}

// SeverityFormatter wraps another Formatter and prefixes its line with the
// call site's level, e.g. "[2006-...] ERR line\n". Use this when the
// destination needs severity in the rendered text (spec.md §8 scenario 6).
type SeverityFormatter struct {
	Inner Formatter
}

// Format implements Formatter.
func (f SeverityFormatter) Format(ts time.Time, site *CallSite, line string) []byte {
	inner := f.Inner
	if inner == nil {
		inner = DefaultFormatter
	}
	return inner.Format(ts, site, site.Level.String()+" "+line)
}
