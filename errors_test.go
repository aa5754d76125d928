// errors_test.go: error code propagation
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package quicklog

import "testing"

func TestIsCodeMatches(t *testing.T) {
	err := newError(ErrCodeBufferFull, "full")
	if !IsCode(err, ErrCodeBufferFull) {
		t.Error("IsCode should match the code the error was created with")
	}
	if IsCode(err, ErrCodeEmpty) {
		t.Error("IsCode should not match an unrelated code")
	}
}

func TestIsCodeOnPlainError(t *testing.T) {
	if IsCode(nil, ErrCodeEmpty) {
		t.Error("IsCode(nil, ...) should be false")
	}
}

func TestNewErrorfFormats(t *testing.T) {
	err := newErrorf(ErrCodeCorrupt, "need %d bytes, have %d", 24, 3)
	if err.Error() == "" {
		t.Error("formatted error should have a non-empty message")
	}
	if !IsCode(err, ErrCodeCorrupt) {
		t.Error("newErrorf should preserve the error code")
	}
}
