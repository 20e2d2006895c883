// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import "golang.org/x/crypto/cryptobyte"

// MaxInstructionLength is the architectural limit on the length of a
// single x86 instruction.
const MaxInstructionLength = 15

// cursor is a bounded forward-only reader over the instruction bytes
// currently being decoded, built on cryptobyte.String the way the
// teacher's parsers build bounded readers over wire-format byte
// strings: ReadUint8 reports false rather than panicking when the
// underlying slice is exhausted, which the resolver turns into a
// Truncated failure rather than an index-out-of-range panic.
type cursor struct {
	s     cryptobyte.String
	limit int // Remaining bytes this instruction may still consume (<= MaxInstructionLength).
	read  int
}

func newCursor(buf []byte, offset, maxLen int) *cursor {
	if maxLen > MaxInstructionLength {
		maxLen = MaxInstructionLength
	}

	end := offset + maxLen
	if end > len(buf) {
		end = len(buf)
	}
	if end < offset {
		end = offset
	}

	return &cursor{s: cryptobyte.String(buf[offset:end]), limit: maxLen}
}

// readByte consumes and returns the next byte. ok is false if no bytes
// remain in the buffer; exceeded is true once the instruction's
// maxLen/15-byte limit has been reached, whether or not the buffer
// holds further bytes.
func (c *cursor) readByte() (b byte, ok bool, exceeded bool) {
	if c.read >= c.limit {
		return 0, len(c.s) > 0, true
	}

	if !c.s.ReadUint8(&b) {
		return 0, false, false
	}

	c.read++
	return b, true, false
}

// peekByte returns the next byte without consuming it.
func (c *cursor) peekByte() (b byte, ok bool) {
	if len(c.s) == 0 || c.read >= c.limit {
		return 0, false
	}
	return c.s[0], true
}

// bytesRead reports how many bytes this cursor has consumed so far.
func (c *cursor) bytesRead() int { return c.read }
