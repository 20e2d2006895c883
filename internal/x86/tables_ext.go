// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

// rexIntroducer is shared by every 0x40-0x4F X64Ext family: in 64-bit
// mode, the byte just read stops being an opcode and becomes a REX
// prefix instead.
var rexIntroducer = prefixEntry("REX", PrefixREX)

// x64ExtFamily builds the 2-entry X64Ext family for one of the
// 0x40-0x4F root bytes: index 0 is the 32-bit-mode INC/DEC r32+op
// reading, index 1 is always the REX reinterpretation.
func x64ExtFamily(op Opcode) *[]Table {
	return family(Table{Name: "x64ext", Entries: []*Entry{
		template(op.String()+" r32op", op, CategoryInteger, AttrsPlain, DescR32op).withFlags(FlagsArithmetic),
		rexIntroducer,
	}})
}

// xopOpcodeTable is the table a 2-byte AMD XOP prefix's opcode byte
// indexes into, reached via introducedTable once the resolver commits
// to the XOP branch at root[0x8F]. This package does not attempt to
// model every XOP opcode map; VPCMOV (XOP.map8 0xA2) stands in for the
// family so the XOP introducer has somewhere real to dispatch to.
var xopOpcodeTable = newSparseTable("xop", 256, map[int]*Entry{
	0xa2: template("VPCMOV Vx,Hx,Wx,Lx", OpcodeVPCMOV, CategorySIMD, HasModRM|RequiresXOP|HasExtras, DescXMM1, DescXMMV, DescXMM2, DescXMMis4),
})

// movsxdTable is the REXWExt family at root[0x63]: MOVSXD only exists
// with REX.W set (without it, the byte is reserved in 64-bit mode; in
// 32-bit mode it's the unrelated ARPL instruction, not modeled here).
var movsxdTable = Table{Name: "movsxd", Entries: []*Entry{
	invalid("0x63 (no REX.W)"),
	template("MOVSXD Gv,Ed", OpcodeMOV, CategoryConvert, HasModRM|RequiresREX, DescR64, DescRmr32),
}}

// xopPrefixTable is the XOPPrefixExt family at root[0x8F]: index 0 is
// the ordinary group-1A POP Ev reading (valid only when the following
// ModR/M.reg is 0); index 1 is the 2-byte AMD XOP prefix introducer.
var xopPrefixTable = Table{Name: "xop-prefix", Entries: []*Entry{
	template("POP Ev", OpcodePOP, CategoryLoad, HasModRM, DescRmrOpSz),
	prefixEntry("XOP", PrefixXOP),
}}

// nopXchgTable is the REXBExt family at root[0x90]. In 64-bit mode with
// REX.B=1 the same byte means XCHG r8,rAX instead of NOP, reproducing
// the scenario this package's tests call the NOP/XCHG ambiguity.
var nopXchgTable = Table{Name: "nop-xchg", Entries: []*Entry{
	template("NOP", OpcodeNOP, CategoryState, AttrsPlain),
	template("XCHG r8,rAX", OpcodeXCHG, CategoryInteger, RequiresREX, DescR64op, DesceAX),
}}

// movsTable is the RepExt family at root[0xA4]; index 1 is never used
// (RepExt only ever produces 0 or 2).
var movsTable = newSparseTable("movs", 3, map[int]*Entry{
	0: template("MOVS Yb,Xb", OpcodeMOVS, CategoryStore|CategoryLoad, AttrsPlain, DescStrDst8, DescStrSrc8),
	2: template("REP MOVS Yb,Xb", OpcodeMOVS, CategoryStore|CategoryLoad, AttrsPlain, DescStrDst8, DescStrSrc8),
})

// cmpsTable is the RepneExt family at root[0xA6].
var cmpsTable = newSparseTable("cmps", 5, map[int]*Entry{
	0: template("CMPS Xb,Yb", OpcodeCMPS, CategoryInteger, AttrsPlain, DescStrSrc8, DescStrDst8).withFlags(FlagsCompareCF),
	2: template("REPE CMPS Xb,Yb", OpcodeCMPS, CategoryInteger, AttrsPlain, DescStrSrc8, DescStrDst8).withFlags(FlagsCompareCF),
	4: template("REPNE CMPS Xb,Yb", OpcodeCMPS, CategoryInteger, AttrsPlain, DescStrSrc8, DescStrDst8).withFlags(FlagsCompareCF),
})

// vex3PrefixTable is the VEXPrefixExt family at root[0xC4]: LES doesn't
// exist in 64-bit mode, so the register-form ambiguity this byte has in
// 32-bit mode disappears and 0xC4 is unconditionally a VEX introducer.
var vex3PrefixTable = Table{Name: "vex3-prefix", Entries: []*Entry{
	template("LES Gz,Mp", OpcodeLES, CategoryLoad, HasModRM|X64Invalid, DescROpSz, DescM),
	prefixEntry("VEX3", PrefixVEX3),
}}

// vex2PrefixTable is the VEXPrefixExt family at root[0xC5] (LDS/VEX2).
var vex2PrefixTable = Table{Name: "vex2-prefix", Entries: []*Entry{
	template("LDS Gz,Mp", OpcodeLDS, CategoryLoad, HasModRM|X64Invalid, DescROpSz, DescM),
	prefixEntry("VEX2", PrefixVEX2),
}}

// evexPrefixTable is the EVEXPrefixExt family at root[0x62] (BOUND/EVEX).
var evexPrefixTable = Table{Name: "evex-prefix", Entries: []*Entry{
	template("BOUND Gv,Ma", OpcodeBOUND, CategoryState, HasModRM|X64Invalid, DescROpSz, DescM),
	prefixEntry("EVEX", PrefixEVEX),
}}

// floatTable is the single physical table every root[0xD8-0xDF] entry's
// FloatExt dispatch shares; FixedIndex (set per root entry) plus
// ModR/M.reg or ModR/M.rm select the 1-of-576 x87 opcode. Only the slot
// this package's tests exercise (DD /0, FLD m64fp) is populated.
var floatTable = newSparseTable("float", 576, map[int]*Entry{
	5*8 + 0: template("FLD m64fp", OpcodeFLD, CategoryFloat|CategoryLoad, HasModRM, DescM64, DescST),
})

// amd3DNowTable is the SuffixExt family at 0F 0F: the trailing byte
// after the ModR/M (and any displacement) selects the operation, rather
// than the opcode byte itself.
var amd3DNowTable = newSparseTable("3dnow", 256, map[int]*Entry{
	0x9e: template("PFADD Pq,Qq", OpcodePFADD, CategorySIMD|CategoryMath, HasModRM, DescMM1, DescMM2),
	0x9a: template("PFSUB Pq,Qq", OpcodePFSUB, CategorySIMD|CategoryMath, HasModRM, DescMM1, DescMM2),
	0xb4: template("PFMUL Pq,Qq", OpcodePFMUL, CategorySIMD|CategoryMath, HasModRM, DescMM1, DescMM2),
})

// xorpsTable is the VEXLExt family at 0F 57 (XORPS/VXORPS), reproducing
// the VEX scenario this package's tests cover.
var xorpsTable = newSparseTable("xorps", 3, map[int]*Entry{
	0: template("XORPS Vps,Wps", OpcodeXORPS, CategorySIMD, HasModRM, DescXMM1, DescXMM2),
	1: template("VXORPS Vps,Hps,Wps", OpcodeVXORPS, CategorySIMD, HasModRM|RequiresVEX|RequiresVEXL0, DescXMM1, DescXMMV, DescXMM2),
	2: template("VXORPS Vps,Hps,Wps", OpcodeVXORPS, CategorySIMD, HasModRM|RequiresVEX|RequiresVEXL1, DescYMM1, DescYMMV, DescYMM2),
})

// addpsEvexTable is the EVEXWbExt family nested under addpsTable's
// none+EVEX slot, indexed (W<<1)|b: EVEX.W selects single vs double
// precision (the high bit, so it splits the table into an all-PS half
// and an all-PD half), and EVEX.b (with a register-form ModR/M)
// selects suppress-all-exceptions rather than a broadcast source. The
// operand descriptors below use the ZMM encoding fields uniformly; the
// actual register class (XMM/YMM/ZMM) the resolver reports follows the
// resolved vector size, not this entry's nominal type.
var addpsEvexTable = Table{Name: "addps-evex-wb", Entries: []*Entry{
	template("VADDPS Vps,Hps,Wps (EVEX)", OpcodeVADDPS, CategorySIMD|CategoryMath, HasModRM|RequiresEVEX, DescZMM1, DescZMMV, DescZMM2),
	template("VADDPS Vps,Hps,Wps {sae} (EVEX)", OpcodeVADDPS, CategorySIMD|CategoryMath, HasModRM|RequiresEVEX|EVEXbIsSAE, DescZMM1, DescZMMV, DescZMM2),
	template("VADDPD Vpd,Hpd,Wpd (EVEX)", OpcodeVADDPD, CategorySIMD|CategoryMath, HasModRM|RequiresEVEX, DescZMM1, DescZMMV, DescZMM2),
	template("VADDPD Vpd,Hpd,Wpd {sae} (EVEX)", OpcodeVADDPD, CategorySIMD|CategoryMath, HasModRM|RequiresEVEX|EVEXbIsSAE, DescZMM1, DescZMMV, DescZMM2),
}}

// addpsTable is the PrefixExt family at 0F 58 (ADDPS/ADDSS/ADDPD/ADDSD
// and their VEX/EVEX forms), reproducing the EVEX scenario this package's
// tests cover (none+EVEX, further split by EVEXWbExt).
var addpsTable = newSparseTable("addps", 12, map[int]*Entry{
	0: template("ADDPS Vps,Wps", OpcodeADDPS, CategorySIMD|CategoryMath, HasModRM, DescXMM1, DescXMM2),
	1: template("ADDSS Vss,Wss", OpcodeADDSS, CategorySIMD|CategoryMath, HasModRM|RequiresPrefix, DescXMM1, DescXMM2),
	2: template("ADDPD Vpd,Wpd", OpcodeADDPD, CategorySIMD|CategoryMath, HasModRM|RequiresPrefix, DescXMM1, DescXMM2),
	3: template("ADDSD Vsd,Wsd", OpcodeADDSD, CategorySIMD|CategoryMath, HasModRM|RequiresPrefix, DescXMM1, DescXMM2),
	4: template("VADDPS Vps,Hps,Wps", OpcodeVADDPS, CategorySIMD|CategoryMath, HasModRM|RequiresVEX, DescXMM1, DescXMMV, DescXMM2),
	5: template("VADDSS Vss,Hss,Wss", OpcodeVADDSS, CategorySIMD|CategoryMath, HasModRM|RequiresVEX|RequiresPrefix, DescXMM1, DescXMMV, DescXMM2),
	6: template("VADDPD Vpd,Hpd,Wpd", OpcodeVADDPD, CategorySIMD|CategoryMath, HasModRM|RequiresVEX|RequiresPrefix, DescXMM1, DescXMMV, DescXMM2),
	7: template("VADDSD Vsd,Hsd,Wsd", OpcodeVADDSD, CategorySIMD|CategoryMath, HasModRM|RequiresVEX|RequiresPrefix, DescXMM1, DescXMMV, DescXMM2),
	8: dispatch("0F 58 (none+EVEX)", EVEXWbExt, family(addpsEvexTable), 0),
})

// popcntTable is the PrefixExt family at 0F B8: the unprefixed form is
// architecturally undefined (historically JMPE, an IA-64 interop
// leftover never implemented on mainstream silicon), so it stays the
// default INVALID entry.
var popcntTable = newSparseTable("popcnt", 12, map[int]*Entry{
	1: template("POPCNT Gv,Ev", OpcodePOPCNT, CategoryInteger|CategoryMath, HasModRM|RequiresPrefix, DescROpSz, DescRmrOpSz),
})

// ptestTable is the EVExExt family at 0F 38 17 (PTEST/VPTEST); no EVEX
// form of PTEST exists, so index 2 stays INVALID.
var ptestTable = newSparseTable("ptest", 3, map[int]*Entry{
	0: template("PTEST Vdq,Wdq", OpcodePTEST, CategorySIMD, HasModRM|RequiresPrefix, DescXMM1, DescXMM2).withFlags(FlagsEffect{Writes: flagsAll}),
	1: template("VPTEST Vx,Wx", OpcodeVPTEST, CategorySIMD, HasModRM|RequiresVEX, DescXMM1, DescXMM2).withFlags(FlagsEffect{Writes: flagsAll}),
})

// movdLegacyTable is the REXWExt family nested under movdTable's
// non-VEX slot: the legacy (MMX) form of 0F 7E.
var movdLegacyTable = Table{Name: "movd-legacy", Entries: []*Entry{
	template("MOVD Pd,Ed", OpcodeMOV, CategorySIMD, HasModRM, DescMM1, DescRmr32),
	template("MOVQ Pq,Eq", OpcodeMOV, CategorySIMD, HasModRM|RequiresREX, DescMM1, DescRmr64),
}}

// movdVexTable is the VEXWExt family nested under movdTable's VEX slot.
var movdVexTable = Table{Name: "movd-vex", Entries: []*Entry{
	template("VMOVD Vdq,Ed", OpcodeVMOVD, CategorySIMD, HasModRM|RequiresVEX|RequiresVEXL0, DescXMM1, DescRmr32),
	template("VMOVQ Vdq,Eq", OpcodeVMOVQ, CategorySIMD, HasModRM|RequiresVEX|RequiresVEXL0, DescXMM1, DescRmr64),
}}

// movdTable is the EVExExt family at 0F 7E (MOVD/MOVQ, VMOVD/VMOVQ and
// their EVEX form), nesting REXWExt and VEXWExt underneath it.
var movdTable = Table{Name: "movd", Entries: []*Entry{
	dispatch("0F 7E (legacy)", REXWExt, family(movdLegacyTable), 0),
	dispatch("0F 7E (VEX)", VEXWExt, family(movdVexTable), 0),
	template("VMOVD/VMOVQ Vdq,Ey (EVEX)", OpcodeVMOVD, CategorySIMD, HasModRM|RequiresEVEX, DescXMM1, DescRmrOpSz),
}}
