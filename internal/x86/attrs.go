// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import "fmt"

// EncodingAttr is a bitset of the validation constraints a terminal
// entry imposes on the decode context, grounded on the individual
// boolean fields of the teacher's Encoding struct (REX, REX_R, REX_W,
// VEX, VEX_L, EVEX, EVEX_Lp, Mask, Zero, Rounding, Suppress, VSIB, ...),
// collapsed here into named bits since the resolver checks them as a
// single mask rather than one struct field at a time.
type EncodingAttr uint32

const (
	HasModRM EncodingAttr = 1 << iota
	HasExtras         // The entry carries a trailing immediate/displacement beyond the base opcode.
	ExtrasInCodeField // The trailing extra is a code offset (cb/cw/cd/cp/co) rather than an immediate.
	X64Invalid        // Undefined in 64-bit mode.
	X86Invalid        // Undefined outside 64-bit mode.
	RequiresPrefix    // A mandatory legacy prefix (0x66/0xF2/0xF3) must be present.
	RequiresVEX
	RequiresEVEX
	RequiresXOP
	RequiresREX
	RequiresVEXL0
	RequiresVEXL1
	RequiresEVEXLL0 // EVEX.L'L must select a 128-bit vector size.
	RequiresNotK0   // EVEX.aaa must not select k0 (no merge-masking with k0).
	RequiresVSIBYMM
	RequiresVSIBZMM
	HasPredCC         // A trailing predicate/condition-code immediate selects instruction semantics.
	HasPredCCComplex  // As HasPredCC, but over an extended (AVX-512) predicate space.
	EVEXbIsSAE        // EVEX.b, when set, selects suppress-all-exceptions rather than broadcast.
	EVEXLLIsER        // EVEX.L'L, under EVEX.b, selects an embedded-rounding mode rather than vector size.
	DRInputOpsz1      // Data-register input operand size is fixed at 1 byte regardless of EncodingAttr.
	DRInputOpsz2
	DRInputOpsz4
	DRInputOpsz8
)

var encodingAttrNames = []struct {
	bit  EncodingAttr
	name string
}{
	{HasModRM, "HasModRM"},
	{HasExtras, "HasExtras"},
	{ExtrasInCodeField, "ExtrasInCodeField"},
	{X64Invalid, "X64Invalid"},
	{X86Invalid, "X86Invalid"},
	{RequiresPrefix, "RequiresPrefix"},
	{RequiresVEX, "RequiresVEX"},
	{RequiresEVEX, "RequiresEVEX"},
	{RequiresXOP, "RequiresXOP"},
	{RequiresREX, "RequiresREX"},
	{RequiresVEXL0, "RequiresVEXL0"},
	{RequiresVEXL1, "RequiresVEXL1"},
	{RequiresEVEXLL0, "RequiresEVEXLL0"},
	{RequiresNotK0, "RequiresNotK0"},
	{RequiresVSIBYMM, "RequiresVSIBYMM"},
	{RequiresVSIBZMM, "RequiresVSIBZMM"},
	{HasPredCC, "HasPredCC"},
	{HasPredCCComplex, "HasPredCCComplex"},
	{EVEXbIsSAE, "EVEXbIsSAE"},
	{EVEXLLIsER, "EVEXLLIsER"},
	{DRInputOpsz1, "DRInputOpsz1"},
	{DRInputOpsz2, "DRInputOpsz2"},
	{DRInputOpsz4, "DRInputOpsz4"},
	{DRInputOpsz8, "DRInputOpsz8"},
}

func (a EncodingAttr) String() string {
	s := ""
	for _, n := range encodingAttrNames {
		if a&n.bit == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += n.name
	}
	if s == "" {
		return fmt.Sprintf("EncodingAttr(%#x)", uint32(a))
	}
	return s
}

func (a EncodingAttr) Has(bit EncodingAttr) bool { return a&bit != 0 }

// Commonly combined attribute bitsets, authoring shortcuts over the
// bits above (spec.md §4.5's "mrm, vex, evex, reqp, ttfv, ttt1s").
var (
	AttrsPlain       = EncodingAttr(0)
	AttrsLegacyModRM = HasModRM
	AttrsREX         = HasModRM | RequiresREX
	AttrsVEX128      = HasModRM | RequiresVEX | RequiresVEXL0
	AttrsVEX256      = HasModRM | RequiresVEX | RequiresVEXL1
	AttrsEVEXFV128   = HasModRM | RequiresEVEX | RequiresEVEXLL0
	AttrsReqPrefix   = HasModRM | RequiresPrefix
)

// FlagsEffect documents which of the six arithmetic status flags
// (CF, PF, AF, ZF, SF, OF) a terminal entry reads or writes. It has no
// bearing on decode outcomes; it exists purely as an authoring aid and
// a place to record ISA facts that a future semantic layer would need.
type FlagsEffect struct {
	Reads, Writes uint8 // Bit 0 = CF, 1 = PF, 2 = AF, 3 = ZF, 4 = SF, 5 = OF.
}

const (
	flagCF = 1 << iota
	flagPF
	flagAF
	flagZF
	flagSF
	flagOF

	flagsAll = flagCF | flagPF | flagAF | flagZF | flagSF | flagOF
)

var (
	FlagsNone       = FlagsEffect{}
	FlagsArithmetic = FlagsEffect{Reads: 0, Writes: flagsAll}
	FlagsLogic      = FlagsEffect{Reads: 0, Writes: flagsAll &^ flagAF}
	FlagsShift      = FlagsEffect{Reads: 0, Writes: flagCF | flagSF | flagZF | flagPF | flagOF}
	FlagsCompareCF  = FlagsEffect{Reads: flagsAll, Writes: flagCF}
)
