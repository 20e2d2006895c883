// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import "fmt"

// DispatchKind identifies how a dispatch entry computes the index of
// the next table to consult. Each kind names both a table family (the
// set of sub-tables it can point into) and a rule for turning the
// current decode state into an index within the sub-table the entry
// selects.
type DispatchKind uint8

const (
	_ DispatchKind = iota
	Escape            // Next opcode byte, after 0x0F.
	Escape3Byte38     // Next opcode byte, after 0x0F 0x38.
	Escape3Byte3A     // Next opcode byte, after 0x0F 0x3A.
	Extension         // ModR/M.reg (3 bits).
	PrefixExt         // Mandatory prefix and VEX/EVEX presence (0..11).
	X64Ext            // 0 in 32-bit mode, 1 in 64-bit mode.
	VEXPrefixExt      // 0 if not a VEX introducer, 1 if VEX.
	XOPPrefixExt      // 0 if not XOP, 1 if XOP.
	EVEXPrefixExt     // 0 if not EVEX, 1 if EVEX.
	REXBExt           // 0 if REX.B clear, 1 if set.
	REXWExt           // 0 if REX.W clear, 1 if set.
	VEXLExt           // 0 non-VEX, 1 VEX.L=0, 2 VEX.L=1.
	VEXWExt           // 0 if VEX.W=0, 1 if VEX.W=1.
	EVEXWbExt         // (W<<1)|b from the EVEX prefix (0..3).
	ModExt            // 0 if ModR/M.mod selects memory, 1 if register.
	RMExt             // ModR/M.r/m (3 bits), only consulted when mod=3.
	FloatExt          // x87 escape: reg (mod<=0xBF) or (opcode,modrm) pair (mod>0xBF).
	SuffixExt         // 3DNow! trailing immediate byte (0..255).
	RepExt            // 0 no rep, 2 with 0xF3.
	RepneExt          // 0 no prefix, 2 with 0xF3, 4 with 0xF2.
	EVExExt           // 0 non-VEX, 1 VEX, 2 EVEX.
)

var dispatchKindNames = map[DispatchKind]string{
	Escape:        "ESCAPE",
	Escape3Byte38: "ESCAPE_3BYTE_38",
	Escape3Byte3A: "ESCAPE_3BYTE_3A",
	Extension:     "EXTENSION",
	PrefixExt:     "PREFIX_EXT",
	X64Ext:        "X64_EXT",
	VEXPrefixExt:  "VEX_PREFIX_EXT",
	XOPPrefixExt:  "XOP_PREFIX_EXT",
	EVEXPrefixExt: "EVEX_PREFIX_EXT",
	REXBExt:       "REX_B_EXT",
	REXWExt:       "REX_W_EXT",
	VEXLExt:       "VEX_L_EXT",
	VEXWExt:       "VEX_W_EXT",
	EVEXWbExt:     "EVEX_Wb_EXT",
	ModExt:        "MOD_EXT",
	RMExt:         "RM_EXT",
	FloatExt:      "FLOAT_EXT",
	SuffixExt:     "SUFFIX_EXT",
	RepExt:        "REP_EXT",
	RepneExt:      "REPNE_EXT",
	EVExExt:       "E_VEX_EXT",
}

func (k DispatchKind) String() string {
	if s, ok := dispatchKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("DispatchKind(%d)", k)
}
