// sink.go: pluggable byte destinations for flushed records
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package quicklog

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/natefinch/lumberjack"
)

// Sink is the final destination for a formatted record. Write must be safe
// to call repeatedly from the single consumer goroutine; Flush pushes any
// buffered bytes out (a no-op for sinks with no internal buffering).
type Sink interface {
	Write(p []byte) (int, error)
	Flush() error
}

// writerSink adapts a plain io.Writer to the Sink interface, synchronizing
// access the way the teacher's writer.go wraps os.Stdout/os.Stderr.
type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

// WrapWriter adapts any io.Writer into a Sink. Flush is a no-op unless w
// also implements interface{ Sync() error }.
func WrapWriter(w io.Writer) Sink {
	return &writerSink{w: w}
}

func (s *writerSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *writerSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if syncer, ok := s.w.(interface{ Sync() error }); ok {
		return syncer.Sync()
	}
	return nil
}

// StdoutSink and StderrSink write to standard output and standard error,
// matching the teacher's StdoutWriter/StderrWriter pair.
var (
	StdoutSink = WrapWriter(os.Stdout)
	StderrSink = WrapWriter(os.Stderr)
)

// FileSink writes to a plain, unrotated file opened in append mode.
type FileSink struct {
	file *os.File
}

// NewFileSink opens (creating if needed) the file at path for appending.
func NewFileSink(path string) (*FileSink, error) {
	// #nosec G304 - path is supplied by the caller's own configuration, not untrusted input
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, newErrorf(ErrCodeIO, "open file sink %q: %v", path, err)
	}
	return &FileSink{file: f}, nil
}

// Write implements Sink.
func (f *FileSink) Write(p []byte) (int, error) { return f.file.Write(p) }

// Flush implements Sink.
func (f *FileSink) Flush() error { return f.file.Sync() }

// Close releases the underlying file descriptor.
func (f *FileSink) Close() error { return f.file.Close() }

// RotatingFileSink is an opt-in Sink backed by lumberjack, for deployments
// that want size/age-based log rotation without reaching for an external
// shipping agent. It satisfies the same Sink contract as FileSink.
type RotatingFileSink struct {
	logger *lumberjack.Logger
}

// RotatingFileConfig configures a RotatingFileSink; zero values fall back to
// lumberjack's own defaults (100MB max size, no age/backup limit, no
// compression).
type RotatingFileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// NewRotatingFileSink creates a RotatingFileSink from cfg.
func NewRotatingFileSink(cfg RotatingFileConfig) *RotatingFileSink {
	return &RotatingFileSink{logger: &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}}
}

// Write implements Sink.
func (s *RotatingFileSink) Write(p []byte) (int, error) { return s.logger.Write(p) }

// Flush implements Sink; lumberjack has no internal buffer to drain.
func (s *RotatingFileSink) Flush() error { return nil }

// Close closes the current log file.
func (s *RotatingFileSink) Close() error { return s.logger.Close() }

// MemorySink accumulates written bytes in memory. It exists for tests that
// need to assert on exactly what the consumer would have written, without
// touching the filesystem or stdout.
type MemorySink struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements Sink.
func (m *MemorySink) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buf.Write(p)
}

// Flush implements Sink; MemorySink has nothing to flush.
func (m *MemorySink) Flush() error { return nil }

// String returns everything written so far.
func (m *MemorySink) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buf.String()
}

// Lines splits the accumulated output on newlines, dropping the trailing
// empty element a terminal "\n" would otherwise produce.
func (m *MemorySink) Lines() []string {
	s := m.String()
	if s == "" {
		return nil
	}
	return splitLines(s)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
