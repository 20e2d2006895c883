// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import "fmt"

// SIB provides helper functionality for reading a Scale/Index/Base byte.
type SIB byte

const (
	SIBscale00 SIB = 0b00_000_000
	SIBscale01 SIB = 0b01_000_000
	SIBscale10 SIB = 0b10_000_000
	SIBscale11 SIB = 0b11_000_000

	SIBscale1 = SIBscale00
	SIBscale2 = SIBscale01
	SIBscale4 = SIBscale10
	SIBscale8 = SIBscale11

	// Section 2.1.5, table 2.3, Index column.
	SIBindexNone SIB = 0b00_100_000

	// Section 2.1.5, table 2.3, Base row.
	SIBbaseStackPointer SIB = 0b00_000_100
	SIBbaseNone         SIB = 0b00_000_101
)

func (s SIB) Scale() byte { return byte(s&0b11000000) >> 6 }
func (s SIB) Index() byte { return byte(s&0b00111000) >> 3 }
func (s SIB) Base() byte  { return byte(s&0b00000111) >> 0 }

func (s SIB) String() string {
	return fmt.Sprintf("{Scale: %02b, Index: %03b, Base: %03b}", s.Scale(), s.Index(), s.Base())
}
