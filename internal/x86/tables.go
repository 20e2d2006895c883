// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import "fmt"

// newSparseTable builds a Table of the given size with every slot
// defaulted to an explicit KindInvalid leaf, then applies overrides.
// This is how every table in this package is built: the architecture's
// table-coverage invariant requires no slot to be left untagged, but
// writing out hundreds of invalid() calls by hand for the slots no
// instruction occupies would bury the slots that matter.
func newSparseTable(name string, size int, overrides map[int]*Entry) Table {
	entries := make([]*Entry, size)
	for i := range entries {
		entries[i] = invalid(fmt.Sprintf("%s/%#x", name, i))
	}
	for i, e := range overrides {
		if i < 0 || i >= size {
			panic(fmt.Sprintf("%s: override index %#x out of range [0,%#x)", name, i, size))
		}
		entries[i] = e
	}
	return Table{Name: name, Entries: entries}
}

// family wraps a single Table as a one-element dispatch family, for the
// (common) case where a DispatchKind only ever redirects to one
// concrete sub-table rather than choosing among several.
func family(t Table) *[]Table {
	f := []Table{t}
	return &f
}

// rootTable is the 256-entry table consulted for the first opcode byte
// of every instruction still under consideration once legacy prefixes
// have been absorbed. Every one of its 256 slots carries an explicit
// entry, per the table-coverage invariant: a one-byte value with no
// defined meaning still gets a KindInvalid leaf, never a gap.
var rootTable = newSparseTable("root", 256, rootOverrides())

func rootOverrides() map[int]*Entry {
	m := map[int]*Entry{}

	// 0x00-0x3D: the eight ALU-group opcodes (ADD/OR/ADC/SBB/AND/SUB/XOR/CMP),
	// each following the same eight-opcode pattern:
	//   +0 Eb,Gb  +1 Ev,Gv  +2 Gb,Eb  +3 Gv,Ev  +4 AL,ib  +5 eAX,iz
	aluOps := []Opcode{OpcodeADD, OpcodeOR, OpcodeADC, OpcodeSBB, OpcodeAND, OpcodeSUB, OpcodeXOR, OpcodeCMP}
	for i, op := range aluOps {
		base := i * 8
		name := op.String()
		cat := Category(CategoryInteger)
		flags := FlagsArithmetic
		if op == OpcodeAND || op == OpcodeOR || op == OpcodeXOR {
			flags = FlagsLogic
		}
		if op == OpcodeCMP {
			flags = FlagsCompareCF
		}
		entries := []*Entry{
			template(name+" Eb,Gb", op, cat, AttrsLegacyModRM, DescRmr8, DescR8),
			template(name+" Ev,Gv", op, cat, AttrsLegacyModRM, DescRmrOpSz, DescROpSz),
			template(name+" Gb,Eb", op, cat, AttrsLegacyModRM, DescR8, DescRmr8),
			template(name+" Gv,Ev", op, cat, AttrsLegacyModRM, DescROpSz, DescRmrOpSz),
			template(name+" AL,ib", op, cat, AttrsPlain, DescAL, DescImm8),
			template(name+" eAX,iz", op, cat, AttrsPlain, DesceAX, DescImmZ),
		}
		for i, e := range entries {
			e.Flags = flags
			m[base+i] = e
		}
	}

	// Segment-override and other single-byte legacy prefixes.
	m[0x26] = prefixEntry("es", PrefixES)
	m[0x2e] = prefixEntry("cs/unlikely", PrefixCS)
	m[0x36] = prefixEntry("ss", PrefixSS)
	m[0x3e] = prefixEntry("ds/likely", PrefixDS)
	m[0x64] = prefixEntry("fs", PrefixFS)
	m[0x65] = prefixEntry("gs", PrefixGS)
	m[0x66] = prefixEntry("data16/data32", PrefixOperandSize)
	m[0x67] = prefixEntry("addr16/addr32", PrefixAddressSize)
	m[0xf0] = prefixEntry("lock", PrefixLock)
	m[0xf2] = prefixEntry("repnz/repne", PrefixRepeatNot)
	m[0xf3] = prefixEntry("rep/repe/repz", PrefixRepeat)

	// 0x40-0x4F: INC/DEC r32+op in 32-bit mode, REX introducer in 64-bit.
	for b := 0x40; b <= 0x4f; b++ {
		op := OpcodeINC
		if b >= 0x48 {
			op = OpcodeDEC
		}
		m[b] = dispatch(fmt.Sprintf("%#x", b), X64Ext, x64ExtFamily(op), 0)
	}

	// 0x50-0x5F: PUSH/POP r64+op (r32+op outside 64-bit mode; this
	// package only models the 64-bit-mode operand width).
	for r := 0; r < 8; r++ {
		m[0x50+r] = template("PUSH r64op", OpcodePUSH, CategoryStore, AttrsPlain, DescR64op)
		m[0x58+r] = template("POP r64op", OpcodePOP, CategoryLoad, AttrsPlain, DescR64op)
	}

	m[0x63] = dispatch("0x63", REXWExt, family(movsxdTable), 0)

	m[0x68] = template("PUSH iz", OpcodePUSH, CategoryStore, AttrsPlain, DescImmZ)
	m[0x69] = template("IMUL Gv,Ev,iz", OpcodeIMUL, CategoryInteger|CategoryMath, AttrsLegacyModRM, DescROpSz, DescRmrOpSz, DescImmZ)
	m[0x6a] = template("PUSH ib", OpcodePUSH, CategoryStore, AttrsPlain, DescImm8)
	m[0x6b] = template("IMUL Gv,Ev,ib", OpcodeIMUL, CategoryInteger|CategoryMath, AttrsLegacyModRM, DescROpSz, DescRmrOpSz, DescImm8)

	// 0x70-0x7F: Jcc rel8.
	for cc := 0; cc < 16; cc++ {
		m[0x70+cc] = template(fmt.Sprintf("Jcc rel8 (cc=%#x)", cc), OpcodeJCC, CategoryBranch, HasPredCC, DescRel8)
	}

	m[0x80] = dispatch("0x80", Extension, family(group1Table8), 0)
	m[0x81] = dispatch("0x81", Extension, family(group1TableOpSz), 0)
	m[0x83] = dispatch("0x83", Extension, family(group1TableOpSzImm8), 0)

	m[0x84] = template("TEST Eb,Gb", OpcodeTEST, CategoryInteger, AttrsLegacyModRM, DescRmr8, DescR8)
	m[0x85] = template("TEST Ev,Gv", OpcodeTEST, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescROpSz)
	m[0x86] = template("XCHG Eb,Gb", OpcodeXCHG, CategoryInteger, AttrsLegacyModRM, DescRmr8, DescR8)
	m[0x87] = template("XCHG Ev,Gv", OpcodeXCHG, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescROpSz)
	m[0x88] = template("MOV Eb,Gb", OpcodeMOV, CategoryInteger, AttrsLegacyModRM, DescRmr8, DescR8)
	m[0x89] = template("MOV Ev,Gv", OpcodeMOV, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescROpSz)
	m[0x8a] = template("MOV Gb,Eb", OpcodeMOV, CategoryInteger, AttrsLegacyModRM, DescR8, DescRmr8)
	m[0x8b] = template("MOV Gv,Ev", OpcodeMOV, CategoryInteger, AttrsLegacyModRM, DescROpSz, DescRmrOpSz)
	m[0x8d] = template("LEA Gv,M", OpcodeLEA, CategoryLoad, AttrsLegacyModRM, DescROpSz, DescM)
	m[0x8f] = dispatch("0x8f", XOPPrefixExt, family(xopPrefixTable), 0)

	m[0x90] = dispatch("0x90", REXBExt, family(nopXchgTable), 0)
	for r := 1; r < 8; r++ {
		m[0x90+r] = template("XCHG eAX,r", OpcodeXCHG, CategoryInteger, AttrsPlain, DesceAX, DescR32op)
	}

	m[0x98] = template("CWDE/CDQE", OpcodeCWDE, CategoryConvert, AttrsPlain)
	m[0x99] = template("CDQ/CQO", OpcodeCDQE, CategoryConvert, AttrsPlain)
	m[0x9b] = template("FWAIT", OpcodeNOP, CategoryFloat, AttrsPlain)
	m[0x9c] = template("PUSHF", OpcodePUSHF, CategoryStore, AttrsPlain, DescFlags)
	m[0x9d] = template("POPF", OpcodePOPF, CategoryLoad, AttrsPlain, DescFlags)
	m[0x9e] = template("SAHF", OpcodeSAHF, CategoryState, AttrsPlain)
	m[0x9f] = template("LAHF", OpcodeLAHF, CategoryState, AttrsPlain)

	m[0xa4] = dispatch("0xa4", RepExt, family(movsTable), 0)
	m[0xa6] = dispatch("0xa6", RepneExt, family(cmpsTable), 0)
	m[0xa8] = template("TEST AL,ib", OpcodeTEST, CategoryInteger, AttrsPlain, DescAL, DescImm8)
	m[0xa9] = template("TEST eAX,iz", OpcodeTEST, CategoryInteger, AttrsPlain, DesceAX, DescImmZ)
	m[0xaa] = template("STOS Yb,AL", OpcodeSTOS, CategoryStore, AttrsPlain, DescStrDst8, DescAL)
	m[0xac] = template("LODS AL,Xb", OpcodeLODS, CategoryLoad, AttrsPlain, DescAL, DescStrSrc8)
	m[0xae] = template("SCAS AL,Yb", OpcodeSCAS, CategoryInteger, AttrsPlain, DescAL, DescStrDst8)

	for r := 0; r < 8; r++ {
		m[0xb0+r] = template("MOV r8op,ib", OpcodeMOV, CategoryInteger, AttrsPlain, DescR8op, DescImm8)
		m[0xb8+r] = template("MOV r64op,io", OpcodeMOV, CategoryInteger, AttrsPlain, DescR64op, DescImmIO)
	}

	m[0xc0] = dispatch("0xc0", Extension, family(group2Table8), 0)
	m[0xc1] = dispatch("0xc1", Extension, family(group2TableOpSz), 0)
	m[0xc2] = template("RET iw", OpcodeRET, CategoryBranch, AttrsPlain, DescImm16, DescStackRef)
	m[0xc3] = template("RET", OpcodeRET, CategoryBranch, AttrsPlain, DescStackRef)
	m[0xc4] = dispatch("0xc4", VEXPrefixExt, family(vex3PrefixTable), 0)
	m[0xc5] = dispatch("0xc5", VEXPrefixExt, family(vex2PrefixTable), 0)
	m[0xc6] = dispatch("0xc6", Extension, family(group11Table8), 0)
	m[0xc7] = dispatch("0xc7", Extension, family(group11TableOpSz), 0)
	m[0xcc] = template("INT3", OpcodeINT3, CategoryBranch|CategoryState, AttrsPlain)
	m[0xcd] = template("INT ib", OpcodeINT, CategoryBranch|CategoryState, AttrsPlain, DescImm8)

	m[0xd0] = dispatch("0xd0", Extension, family(group2Table1), 0)
	m[0xd1] = dispatch("0xd1", Extension, family(group2TableOpSz1), 0)
	m[0xd2] = dispatch("0xd2", Extension, family(group2TableCL8), 0)
	m[0xd3] = dispatch("0xd3", Extension, family(group2TableOpSzCL), 0)

	for b := 0xd8; b <= 0xdf; b++ {
		e := dispatch(fmt.Sprintf("%#x", b), FloatExt, family(floatTable), 0)
		e.FixedIndex = b - 0xd8
		m[b] = e
	}

	m[0xe8] = template("CALL rel32", OpcodeCALL, CategoryBranch, AttrsPlain, DescRel32, DescStackRef)
	m[0xe9] = template("JMP rel32", OpcodeJMP, CategoryBranch, AttrsPlain, DescRel32)
	m[0xeb] = template("JMP rel8", OpcodeJMP, CategoryBranch, AttrsPlain, DescRel8)
	m[0xec] = template("IN AL,DX", OpcodeIN, CategoryLoad, AttrsPlain, DescAL, DescDX)
	m[0xed] = template("IN eAX,DX", OpcodeIN, CategoryLoad, AttrsPlain, DesceAX, DescDX)
	m[0xee] = template("OUT DX,AL", OpcodeOUT, CategoryStore, AttrsPlain, DescDX, DescAL)
	m[0xef] = template("OUT DX,eAX", OpcodeOUT, CategoryStore, AttrsPlain, DescDX, DesceAX)
	m[0xf4] = template("HLT", OpcodeHLT, CategoryState, AttrsPlain)
	m[0xf6] = dispatch("0xf6", Extension, family(group3Table8), 0)
	m[0xf7] = dispatch("0xf7", Extension, family(group3TableOpSz), 0)
	m[0xf8] = template("CLC", OpcodeCLC, CategoryState, AttrsPlain)
	m[0xf9] = template("STC", OpcodeSTC, CategoryState, AttrsPlain)
	m[0xfa] = template("CLI", OpcodeCLI, CategoryState, AttrsPlain)
	m[0xfb] = template("STI", OpcodeSTI, CategoryState, AttrsPlain)
	m[0xfe] = dispatch("0xfe", Extension, family(group4Table), 0)
	m[0xff] = dispatch("0xff", Extension, family(group5Table), 0)

	m[0x0f] = dispatch("0x0f", Escape, family(table0F), 0)
	m[0x62] = dispatch("0x62", EVEXPrefixExt, family(evexPrefixTable), 0)

	return m
}
