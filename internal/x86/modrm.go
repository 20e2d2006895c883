// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import "fmt"

// ModRM provides helper functionality for reading a ModR/M byte.
type ModRM byte

const (
	ModRMmod00 ModRM = 0b00_000_000
	ModRMmod01 ModRM = 0b01_000_000
	ModRMmod10 ModRM = 0b10_000_000
	ModRMmod11 ModRM = 0b11_000_000

	// Section 2.1.5, table 2.2, Mod column.
	ModRMmodDereferenceRegister    = ModRMmod00
	ModRMmodSmallDisplacedRegister = ModRMmod01
	ModRMmodLargeDisplacedRegister = ModRMmod10
	ModRMmodRegister               = ModRMmod11

	// Section 2.1.5, table 2.2, Effective address column.
	ModRMrmSIB                ModRM = 0b00_000_100
	ModRMrmDisplacementOnly32 ModRM = 0b00_000_101
	ModRMrmDisplacementOnly16 ModRM = 0b00_000_110
)

func (m ModRM) Mod() byte { return byte(m&0b11000000) >> 6 }
func (m ModRM) Reg() byte { return byte(m&0b00111000) >> 3 }
func (m ModRM) RM() byte  { return byte(m&0b00000111) >> 0 }

// IsRegisterForm reports whether m selects a register operand (mod ==
// 0b11) rather than a memory operand.
func (m ModRM) IsRegisterForm() bool { return m.Mod() == 0b11 }

func (m ModRM) String() string {
	return fmt.Sprintf("{Mod: %02b, Reg: %03b, R/M: %03b}", m.Mod(), m.Reg(), m.RM())
}
