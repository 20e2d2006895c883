// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

// The group tables below are all Extension dispatch (ModR/M.reg, 3
// bits selecting one of 8 sub-opcodes sharing a single base opcode
// byte), the classic x86 opcode-group mechanism.

var group1Table8 = newSparseTable("group1/8", 8, map[int]*Entry{
	0: template("ADD Eb,ib", OpcodeADD, CategoryInteger, AttrsLegacyModRM, DescRmr8, DescImm8).withFlags(FlagsArithmetic),
	1: template("OR Eb,ib", OpcodeOR, CategoryInteger, AttrsLegacyModRM, DescRmr8, DescImm8).withFlags(FlagsLogic),
	2: template("ADC Eb,ib", OpcodeADC, CategoryInteger, AttrsLegacyModRM, DescRmr8, DescImm8).withFlags(FlagsArithmetic),
	3: template("SBB Eb,ib", OpcodeSBB, CategoryInteger, AttrsLegacyModRM, DescRmr8, DescImm8).withFlags(FlagsArithmetic),
	4: template("AND Eb,ib", OpcodeAND, CategoryInteger, AttrsLegacyModRM, DescRmr8, DescImm8).withFlags(FlagsLogic),
	5: template("SUB Eb,ib", OpcodeSUB, CategoryInteger, AttrsLegacyModRM, DescRmr8, DescImm8).withFlags(FlagsArithmetic),
	6: template("XOR Eb,ib", OpcodeXOR, CategoryInteger, AttrsLegacyModRM, DescRmr8, DescImm8).withFlags(FlagsLogic),
	7: template("CMP Eb,ib", OpcodeCMP, CategoryInteger, AttrsLegacyModRM, DescRmr8, DescImm8).withFlags(FlagsCompareCF),
})

var group1TableOpSz = newSparseTable("group1/opsz", 8, map[int]*Entry{
	0: template("ADD Ev,iz", OpcodeADD, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImmZ).withFlags(FlagsArithmetic),
	1: template("OR Ev,iz", OpcodeOR, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImmZ).withFlags(FlagsLogic),
	2: template("ADC Ev,iz", OpcodeADC, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImmZ).withFlags(FlagsArithmetic),
	3: template("SBB Ev,iz", OpcodeSBB, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImmZ).withFlags(FlagsArithmetic),
	4: template("AND Ev,iz", OpcodeAND, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImmZ).withFlags(FlagsLogic),
	5: template("SUB Ev,iz", OpcodeSUB, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImmZ).withFlags(FlagsArithmetic),
	6: template("XOR Ev,iz", OpcodeXOR, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImmZ).withFlags(FlagsLogic),
	7: template("CMP Ev,iz", OpcodeCMP, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImmZ).withFlags(FlagsCompareCF),
})

var group1TableOpSzImm8 = newSparseTable("group1/opsz,ib", 8, map[int]*Entry{
	0: template("ADD Ev,ib", OpcodeADD, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImm8).withFlags(FlagsArithmetic),
	1: template("OR Ev,ib", OpcodeOR, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImm8).withFlags(FlagsLogic),
	2: template("ADC Ev,ib", OpcodeADC, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImm8).withFlags(FlagsArithmetic),
	3: template("SBB Ev,ib", OpcodeSBB, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImm8).withFlags(FlagsArithmetic),
	4: template("AND Ev,ib", OpcodeAND, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImm8).withFlags(FlagsLogic),
	5: template("SUB Ev,ib", OpcodeSUB, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImm8).withFlags(FlagsArithmetic),
	6: template("XOR Ev,ib", OpcodeXOR, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImm8).withFlags(FlagsLogic),
	7: template("CMP Ev,ib", OpcodeCMP, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImm8).withFlags(FlagsCompareCF),
})

func shiftGroup(name string, src OperandDesc) Table {
	return newSparseTable(name, 8, map[int]*Entry{
		0: template("ROL "+name, OpcodeROL, CategoryInteger, AttrsLegacyModRM, src).withFlags(FlagsShift),
		1: template("ROR "+name, OpcodeROR, CategoryInteger, AttrsLegacyModRM, src).withFlags(FlagsShift),
		2: template("RCL "+name, OpcodeRCL, CategoryInteger, AttrsLegacyModRM, src).withFlags(FlagsShift),
		3: template("RCR "+name, OpcodeRCR, CategoryInteger, AttrsLegacyModRM, src).withFlags(FlagsShift),
		4: template("SHL "+name, OpcodeSHL, CategoryInteger, AttrsLegacyModRM, src).withFlags(FlagsShift),
		5: template("SHR "+name, OpcodeSHR, CategoryInteger, AttrsLegacyModRM, src).withFlags(FlagsShift),
		6: template("SHL "+name, OpcodeSHL, CategoryInteger, AttrsLegacyModRM, src).withFlags(FlagsShift),
		7: template("SAR "+name, OpcodeSAR, CategoryInteger, AttrsLegacyModRM, src).withFlags(FlagsShift),
	})
}

var (
	group2Table8      = shiftGroup("Eb,ib", DescRmr8)
	group2TableOpSz   = shiftGroup("Ev,ib", DescRmrOpSz)
	group2Table1      = shiftGroup("Eb,1", DescRmr8)
	group2TableOpSz1  = shiftGroup("Ev,1", DescRmrOpSz)
	group2TableCL8    = shiftGroup("Eb,CL", DescRmr8)
	group2TableOpSzCL = shiftGroup("Ev,CL", DescRmrOpSz)
)

var group3Table8 = newSparseTable("group3/8", 8, map[int]*Entry{
	0: template("TEST Eb,ib", OpcodeTEST, CategoryInteger, AttrsLegacyModRM, DescRmr8, DescImm8),
	1: template("TEST Eb,ib", OpcodeTEST, CategoryInteger, AttrsLegacyModRM, DescRmr8, DescImm8),
	2: template("NOT Eb", OpcodeNOT, CategoryInteger, AttrsLegacyModRM, DescRmr8),
	3: template("NEG Eb", OpcodeNEG, CategoryInteger, AttrsLegacyModRM, DescRmr8).withFlags(FlagsArithmetic),
	4: template("MUL AL,Eb", OpcodeMUL, CategoryInteger|CategoryMath, AttrsLegacyModRM, DescAL, DescRmr8).withFlags(FlagsArithmetic),
	5: template("IMUL AL,Eb", OpcodeIMUL, CategoryInteger|CategoryMath, AttrsLegacyModRM, DescAL, DescRmr8).withFlags(FlagsArithmetic),
	6: template("DIV AL,Eb", OpcodeDIV, CategoryInteger|CategoryMath, AttrsLegacyModRM, DescAL, DescRmr8).withFlags(FlagsArithmetic),
	7: template("IDIV AL,Eb", OpcodeIDIV, CategoryInteger|CategoryMath, AttrsLegacyModRM, DescAL, DescRmr8).withFlags(FlagsArithmetic),
})

var group3TableOpSz = newSparseTable("group3/opsz", 8, map[int]*Entry{
	0: template("TEST Ev,iz", OpcodeTEST, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImmZ),
	1: template("TEST Ev,iz", OpcodeTEST, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImmZ),
	2: template("NOT Ev", OpcodeNOT, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz),
	3: template("NEG Ev", OpcodeNEG, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz).withFlags(FlagsArithmetic),
	4: template("MUL eAX,Ev", OpcodeMUL, CategoryInteger|CategoryMath, AttrsLegacyModRM, DesceAX, DescRmrOpSz).withFlags(FlagsArithmetic),
	5: template("IMUL eAX,Ev", OpcodeIMUL, CategoryInteger|CategoryMath, AttrsLegacyModRM, DesceAX, DescRmrOpSz).withFlags(FlagsArithmetic),
	6: template("DIV eAX,Ev", OpcodeDIV, CategoryInteger|CategoryMath, AttrsLegacyModRM, DesceAX, DescRmrOpSz).withFlags(FlagsArithmetic),
	7: template("IDIV eAX,Ev", OpcodeIDIV, CategoryInteger|CategoryMath, AttrsLegacyModRM, DesceAX, DescRmrOpSz).withFlags(FlagsArithmetic),
})

var group4Table = newSparseTable("group4", 8, map[int]*Entry{
	0: template("INC Eb", OpcodeINC, CategoryInteger, AttrsLegacyModRM, DescRmr8).withFlags(FlagsArithmetic),
	1: template("DEC Eb", OpcodeDEC, CategoryInteger, AttrsLegacyModRM, DescRmr8).withFlags(FlagsArithmetic),
})

// group5Table (0xFF) deliberately leaves reg=7 as the default INVALID
// entry: it is architecturally undefined, reproducing the "FF FF"
// rejection this package's decode tests exercise.
var group5Table = newSparseTable("group5", 8, map[int]*Entry{
	0: template("INC Ev", OpcodeINC, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz).withFlags(FlagsArithmetic),
	1: template("DEC Ev", OpcodeDEC, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz).withFlags(FlagsArithmetic),
	2: template("CALL Ev", OpcodeCALL, CategoryBranch, AttrsLegacyModRM, DescRmrOpSz, DescStackRef),
	4: template("JMP Ev", OpcodeJMP, CategoryBranch, AttrsLegacyModRM, DescRmrOpSz),
	6: template("PUSH Ev", OpcodePUSH, CategoryStore, AttrsLegacyModRM, DescRmrOpSz),
})

var group7Reg2RegTable = newSparseTable("group7/2,reg", 8, map[int]*Entry{
	0: template("XGETBV", OpcodeXGETBV, CategoryState, AttrsPlain, DescECXreg, DescEDXAX),
	1: template("XSETBV", OpcodeXSETBV, CategoryState, AttrsPlain, DescECXreg, DescEDXAX),
})

var group7Reg2Table = newSparseTable("group7/2", 2, map[int]*Entry{
	0: template("LGDT M", OpcodeLGDT, CategoryState, AttrsLegacyModRM, DescM),
	1: dispatch("group7/2,reg", RMExt, family(group7Reg2RegTable), 0),
})

var group7Table = newSparseTable("group7", 8, map[int]*Entry{
	0: template("SGDT M", OpcodeSGDT, CategoryState, AttrsLegacyModRM, DescM),
	1: template("SIDT M", OpcodeSIDT, CategoryState, AttrsLegacyModRM, DescM),
	2: dispatch("0F01/2", ModExt, family(group7Reg2Table), 0),
	3: template("LIDT M", OpcodeLIDT, CategoryState, AttrsLegacyModRM, DescM),
})

var group11Table8 = newSparseTable("group11/8", 8, map[int]*Entry{
	0: template("MOV Eb,ib", OpcodeMOV, CategoryInteger, AttrsLegacyModRM, DescRmr8, DescImm8),
})

var group11TableOpSz = newSparseTable("group11/opsz", 8, map[int]*Entry{
	0: template("MOV Ev,iz", OpcodeMOV, CategoryInteger, AttrsLegacyModRM, DescRmrOpSz, DescImmZ),
})
