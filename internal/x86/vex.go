// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import "fmt"

// VEX provides helper functionality for reading a VEX prefix.
//
// We always store VEX prefixes in the 3-byte form, synthesising the
// omitted 3-byte fields (X=B=1, W=0, m-mmmm=0b00001) when a 2-byte
// (0xc5) prefix is parsed; R is carried over from the 2-byte payload.
type VEX [2]byte

// Intel x86 manuals, Volume 2A, Section 2.3.5, Table 2-9.
//
// 3-byte form:
//
// 	| 7  6  5  4   3  2  1  0 |
// 	+-------------------------|
// 	| 1  1  0  0   0  1  0  0 | // 0xc4 prefix.
// 	| R  X  B  m   m  m  m  m | // P0.
// 	| W  v  v  v   v  L  p  p | // P1.
//
// 2-byte form:
//
// 	| 7  6  5  4   3  2  1  0 |
// 	+-------------------------|
// 	| 1  1  0  0   0  1  0  1 | // 0xc5 prefix.
// 	| R  v  v  v   v  L  p  p | // P0.

func b2i(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// P0.
func (v VEX) R() bool      { return ((v[0] >> 7) & 1) == 1 }
func (v VEX) X() bool      { return ((v[0] >> 6) & 1) == 1 }
func (v VEX) B() bool      { return ((v[0] >> 5) & 1) == 1 }
func (v VEX) M_MMMM() byte { return v[0] & 0b1_1111 }

// P1.
func (v VEX) W() bool    { return ((v[1] >> 7) & 1) == 1 }
func (v VEX) VVVV() byte { return (v[1] >> 3) & 0b1111 }
func (v VEX) L() bool    { return ((v[1] >> 2) & 1) == 1 }
func (v VEX) PP() byte   { return v[1] & 0b11 }

func (v VEX) On() bool {
	return v.M_MMMM() != 0 // This is a reserved value so it shouldn't occur legitimately.
}

// ParseVEX2 builds a VEX value from the single payload byte of a 2-byte
// (0xc5) VEX prefix, synthesising the fields the 2-byte form omits.
func ParseVEX2(p0 byte) VEX {
	var v VEX
	v[0] = (p0 & 0b1000_0000) | 0b0110_0001 // R copied from p0; X=1, B=1 (not extended); m-mmmm=0b00001 (the 0F map).
	v[1] = p0 & 0b0111_1111                 // W defaults to 0; vvvv/L/pp occupy the same bit positions in both forms.
	return v
}

// ParseVEX3 builds a VEX value from the two payload bytes of a 3-byte
// (0xc4) VEX prefix.
func ParseVEX3(p0, p1 byte) VEX {
	return VEX{p0, p1}
}

func (v VEX) String() string {
	return fmt.Sprintf("{R: %b, X: %b, B: %b, m-mmmm: %05b, W: %v, vvvv: %04b, L: %b, pp: %02b}",
		b2i(v.R()), b2i(v.X()), b2i(v.B()), v.M_MMMM(),
		v.W(), v.VVVV(), b2i(v.L()), v.PP())
}
