// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import "fmt"

// Opcode is the stable external identifier for a resolved instruction
// template. It is part of the ABI between this package and its
// consumers: new values may only be appended, never reordered or
// reused, since callers persist them.
type Opcode int

const (
	OpcodeInvalid Opcode = iota

	OpcodeNOP
	OpcodeADD
	OpcodeOR
	OpcodeADC
	OpcodeSBB
	OpcodeAND
	OpcodeSUB
	OpcodeXOR
	OpcodeCMP
	OpcodePUSH
	OpcodePOP
	OpcodeMOV
	OpcodeLEA
	OpcodeTEST
	OpcodeXCHG
	OpcodeCWDE
	OpcodeCDQE
	OpcodeINC
	OpcodeDEC
	OpcodeNOT
	OpcodeNEG
	OpcodeMUL
	OpcodeIMUL
	OpcodeDIV
	OpcodeIDIV
	OpcodeSHL
	OpcodeSHR
	OpcodeSAR
	OpcodeROL
	OpcodeROR
	OpcodeRCL
	OpcodeRCR
	OpcodeCALL
	OpcodeRET
	OpcodeJMP
	OpcodeJCC
	OpcodeLOOP
	OpcodeIN
	OpcodeOUT
	OpcodeINT
	OpcodeINT3
	OpcodeHLT
	OpcodeCLC
	OpcodeSTC
	OpcodeCLI
	OpcodeSTI
	OpcodePUSHF
	OpcodePOPF
	OpcodeLAHF
	OpcodeSAHF
	OpcodeXLAT
	OpcodeMOVS
	OpcodeCMPS
	OpcodeSTOS
	OpcodeLODS
	OpcodeSCAS
	OpcodeFLD
	OpcodeFST
	OpcodeFSTP
	OpcodeFADD
	OpcodeFSUB
	OpcodeFMUL
	OpcodeFDIV
	OpcodeSGDT
	OpcodeSIDT
	OpcodeLGDT
	OpcodeLIDT
	OpcodeXGETBV
	OpcodeXSETBV
	OpcodeVMCALL
	OpcodePOPCNT
	OpcodeXORPS
	OpcodeVXORPS
	OpcodeADDPS
	OpcodeADDSS
	OpcodeADDPD
	OpcodeADDSD
	OpcodeVADDPS
	OpcodeVADDSS
	OpcodeVADDPD
	OpcodeVADDSD
	OpcodePTEST
	OpcodeVPTEST
	OpcodePFADD
	OpcodePFSUB
	OpcodePFMUL
	OpcodeVPOPCNTQ
	OpcodePALIGNR
	OpcodeVMOVD
	OpcodeVMOVQ
	OpcodeVPCMOV
	OpcodeBOUND
	OpcodeLES
	OpcodeLDS

	// opcodeCount must always be last; it sizes the dense opcode index.
	opcodeCount
)

var opcodeNames = map[Opcode]string{
	OpcodeInvalid: "INVALID",
	OpcodeNOP:     "NOP",
	OpcodeADD:     "ADD",
	OpcodeOR:      "OR",
	OpcodeADC:     "ADC",
	OpcodeSBB:     "SBB",
	OpcodeAND:     "AND",
	OpcodeSUB:     "SUB",
	OpcodeXOR:     "XOR",
	OpcodeCMP:     "CMP",
	OpcodePUSH:    "PUSH",
	OpcodePOP:     "POP",
	OpcodeMOV:     "MOV",
	OpcodeLEA:     "LEA",
	OpcodeTEST:    "TEST",
	OpcodeXCHG:    "XCHG",
	OpcodeCWDE:    "CWDE",
	OpcodeCDQE:    "CDQE",
	OpcodeINC:     "INC",
	OpcodeDEC:     "DEC",
	OpcodeNOT:     "NOT",
	OpcodeNEG:     "NEG",
	OpcodeMUL:     "MUL",
	OpcodeIMUL:    "IMUL",
	OpcodeDIV:     "DIV",
	OpcodeIDIV:    "IDIV",
	OpcodeSHL:     "SHL",
	OpcodeSHR:     "SHR",
	OpcodeSAR:     "SAR",
	OpcodeROL:     "ROL",
	OpcodeROR:     "ROR",
	OpcodeRCL:     "RCL",
	OpcodeRCR:     "RCR",
	OpcodeCALL:    "CALL",
	OpcodeRET:     "RET",
	OpcodeJMP:     "JMP",
	OpcodeJCC:     "Jcc",
	OpcodeLOOP:    "LOOP",
	OpcodeIN:      "IN",
	OpcodeOUT:     "OUT",
	OpcodeINT:     "INT",
	OpcodeINT3:    "INT3",
	OpcodeHLT:     "HLT",
	OpcodeCLC:     "CLC",
	OpcodeSTC:     "STC",
	OpcodeCLI:     "CLI",
	OpcodeSTI:     "STI",
	OpcodePUSHF:   "PUSHF",
	OpcodePOPF:    "POPF",
	OpcodeLAHF:    "LAHF",
	OpcodeSAHF:    "SAHF",
	OpcodeXLAT:    "XLAT",
	OpcodeMOVS:    "MOVS",
	OpcodeCMPS:    "CMPS",
	OpcodeSTOS:    "STOS",
	OpcodeLODS:    "LODS",
	OpcodeSCAS:    "SCAS",
	OpcodeFLD:     "FLD",
	OpcodeFST:     "FST",
	OpcodeFSTP:    "FSTP",
	OpcodeFADD:    "FADD",
	OpcodeFSUB:    "FSUB",
	OpcodeFMUL:    "FMUL",
	OpcodeFDIV:    "FDIV",
	OpcodeSGDT:    "SGDT",
	OpcodeSIDT:    "SIDT",
	OpcodeLGDT:    "LGDT",
	OpcodeLIDT:    "LIDT",
	OpcodeXGETBV:  "XGETBV",
	OpcodeXSETBV:  "XSETBV",
	OpcodeVMCALL:  "VMCALL",
	OpcodePOPCNT:  "POPCNT",
	OpcodeXORPS:   "XORPS",
	OpcodeVXORPS:  "VXORPS",
	OpcodeADDPS:   "ADDPS",
	OpcodeADDSS:   "ADDSS",
	OpcodeADDPD:   "ADDPD",
	OpcodeADDSD:   "ADDSD",
	OpcodeVADDPS:  "VADDPS",
	OpcodeVADDSS:  "VADDSS",
	OpcodeVADDPD:  "VADDPD",
	OpcodeVADDSD:  "VADDSD",
	OpcodePTEST:   "PTEST",
	OpcodeVPTEST:  "VPTEST",
	OpcodePFADD:   "PFADD",
	OpcodePFSUB:   "PFSUB",
	OpcodePFMUL:   "PFMUL",
	OpcodeVPOPCNTQ: "VPOPCNTQ",
	OpcodePALIGNR: "PALIGNR",
	OpcodeVMOVD:   "VMOVD",
	OpcodeVMOVQ:   "VMOVQ",
	OpcodeVPCMOV:  "VPCMOV",
	OpcodeBOUND:   "BOUND",
	OpcodeLES:     "LES",
	OpcodeLDS:     "LDS",
}

func (o Opcode) String() string {
	if s, ok := opcodeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Opcode(%d)", o)
}
