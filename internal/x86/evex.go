// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import "fmt"

// EVEX provides helper functionality for reading an EVEX prefix.
type EVEX [3]byte

// Intel x86 manuals, Volume 2A, Section 2.6.1, Table 2-11.
//
// 	| 7  6  5  4   3  2  1  0 |
// 	+-------------------------|
// 	| 0  1  1  0   0  0  1  0 | // 0x62 prefix.
// 	| R  X  B  R'  0  m  m  m | // P0.
// 	| W  v  v  v   v  1  p  p | // P1.
// 	| z  L' L  b   V' a  a  a | // P2.

// P0.
func (p EVEX) R() bool   { return ((p[0] >> 7) & 1) == 1 }
func (p EVEX) X() bool   { return ((p[0] >> 6) & 1) == 1 }
func (p EVEX) B() bool   { return ((p[0] >> 5) & 1) == 1 }
func (p EVEX) Rp() bool  { return ((p[0] >> 4) & 1) == 1 }
func (p EVEX) MMM() byte { return p[0] & 0b111 }

// P1.
func (p EVEX) W() bool    { return ((p[1] >> 7) & 1) == 1 }
func (p EVEX) VVVV() byte { return (p[1] >> 3) & 0b1111 }
func (p EVEX) PP() byte   { return p[1] & 0b11 }

// P2.
func (p EVEX) Z() bool   { return ((p[2] >> 7) & 1) == 1 }
func (p EVEX) Lp() bool  { return ((p[2] >> 6) & 1) == 1 }
func (p EVEX) L() bool   { return ((p[2] >> 5) & 1) == 1 }
func (p EVEX) Br() bool  { return ((p[2] >> 4) & 1) == 1 }
func (p EVEX) Vp() bool  { return ((p[2] >> 3) & 1) == 1 }
func (p EVEX) AAA() byte { return p[2] & 0b111 }

// On reports whether P1's fixed bit 2 (always 1 in a genuine EVEX
// prefix) is set, the same check real silicon uses to tell an EVEX
// prefix apart from the BOUND opcode it replaces in 32-bit mode.
func (p EVEX) On() bool { return ((p[1] >> 2) & 1) == 1 }

// ParseEVEX builds an EVEX value directly from the three payload bytes
// following the 0x62 prefix byte; the wire layout matches this type's
// storage layout exactly.
func ParseEVEX(p0, p1, p2 byte) EVEX {
	return EVEX{p0, p1, p2}
}

// VectorSize returns the resolved vector width in bits (128, 256 or 512)
// implied by EVEX.L'L, per Intel x86 manuals, Volume 2A, Section 2.6.10.
func (p EVEX) VectorSize() int {
	switch {
	case !p.Lp() && !p.L():
		return 128
	case !p.Lp() && p.L():
		return 256
	case p.Lp() && !p.L():
		return 512
	default:
		return 0 // Reserved encoding (L'L=11); reported as 0, not rejected.
	}
}

func (p EVEX) String() string {
	return fmt.Sprintf("{R: %b, X: %b, B: %b, R': %b, mm: %02b // W: %b, vvvv: %04b, pp: %02b // z: %b, L': %b, L: %b, b: %b, V': %b, aaa: %03b}",
		b2i(p.R()), b2i(p.X()), b2i(p.B()), b2i(p.Rp()), p.MMM(),
		b2i(p.W()), p.VVVV(), p.PP(),
		b2i(p.Z()), b2i(p.Lp()), b2i(p.L()), b2i(p.Br()), b2i(p.Vp()), p.AAA())
}
