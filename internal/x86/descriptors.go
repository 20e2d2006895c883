// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

// Named OperandDesc shortcuts, grounded directly on the teacher's
// parameters.go var block, which names ~70 *Parameter shortcuts to
// avoid repeating a literal (Type, Encoding, Size) tuple at every
// instruction definition site. These are authoring convenience only:
// the resolver only ever sees the OperandDesc values an Entry carries,
// never these names.
var (
	// General-purpose registers, ModR/M.reg.
	DescR8  = OperandDesc{TypeGPRreg, EncodingModRMreg, Size8, "r8"}
	DescR16 = OperandDesc{TypeGPRreg, EncodingModRMreg, Size16, "r16"}
	DescR32 = OperandDesc{TypeGPRreg, EncodingModRMreg, Size32, "r32"}
	DescR64 = OperandDesc{TypeGPRreg, EncodingModRMreg, Size64, "r64"}

	// General-purpose registers, ModR/M.rm (register or memory form).
	DescRmr8  = OperandDesc{TypeGPRrm, EncodingModRMrm, Size8, "rmr8"}
	DescRmr16 = OperandDesc{TypeGPRrm, EncodingModRMrm, Size16, "rmr16"}
	DescRmr32 = OperandDesc{TypeGPRrm, EncodingModRMrm, Size32, "rmr32"}
	DescRmr64 = OperandDesc{TypeGPRrm, EncodingModRMrm, Size64, "rmr64"}

	// General-purpose registers, sized by the resolved operand size
	// (REX.W, then 0x66, then the mode default).
	DescROpSz   = OperandDesc{TypeGPRreg, EncodingModRMreg, SizeOperand, "rOpSz"}
	DescRmrOpSz = OperandDesc{TypeGPRrm, EncodingModRMrm, SizeOperand, "rmrOpSz"}

	// The iz immediate: sign-extended to the operand size, but capped at
	// 32 bits even under REX.W (only the MOV r64op,io form at 0xB8 takes
	// a true 64-bit immediate; see DescImmIO below).
	DescImmZ = OperandDesc{TypeImmSigned, EncodingImmediate, SizeOperandZ, "immz"}

	// The io immediate: MOV's only form that widens to a full 64-bit
	// immediate under REX.W.
	DescImmIO = OperandDesc{TypeImmSigned, EncodingImmediate, SizeOperand, "immIO"}

	// General-purpose registers, encoded in the opcode byte's low 3 bits.
	DescR8op  = OperandDesc{TypeGPRop, EncodingRegisterModifier, Size8, "r8op"}
	DescR32op = OperandDesc{TypeGPRop, EncodingRegisterModifier, Size32, "r32op"}
	DescR64op = OperandDesc{TypeGPRop, EncodingRegisterModifier, Size64, "r64op"}

	// Memory.
	DescM    = OperandDesc{TypeMemory, EncodingModRMrm, Size0, "m"}
	DescM8   = OperandDesc{TypeMemory, EncodingModRMrm, Size8, "m8"}
	DescM16  = OperandDesc{TypeMemory, EncodingModRMrm, Size16, "m16"}
	DescM32  = OperandDesc{TypeMemory, EncodingModRMrm, Size32, "m32"}
	DescM64  = OperandDesc{TypeMemory, EncodingModRMrm, Size64, "m64"}
	DescM128 = OperandDesc{TypeMemory, EncodingModRMrm, Size128, "m128"}
	DescM512 = OperandDesc{TypeMemory, EncodingModRMrm, Size512, "m512"}

	// Implicit / fixed operands.
	DescAL   = OperandDesc{TypeImplicitFixedReg, EncodingImplicit, Size8, "AL"}
	DescDX   = OperandDesc{TypeIOPortDX, EncodingImplicit, Size16, "DX"}
	DescImm8Port = OperandDesc{TypeIOPortImm, EncodingImmediate, Size8, "imm8(port)"}
	DescEAX  = OperandDesc{TypeImplicitFixedReg, EncodingImplicit, Size32, "EAX"}
	DesceAX  = OperandDesc{TypeImplicitVariableReg, EncodingImplicit, SizeOperand, "eAX"}
	DescECX  = OperandDesc{TypeImplicitFixedReg, EncodingImplicit, Size32, "ECX"}
	DescEDX  = OperandDesc{TypeImplicitFixedReg, EncodingImplicit, Size32, "EDX"}
	DescFlags = OperandDesc{TypeFlagsRegister, EncodingImplicit, SizeOperand, "flags"}
	DescStackRef = OperandDesc{TypeImplicitStackRef, EncodingImplicit, SizeOperand, "stack"}
	DescOne  = OperandDesc{TypeImplicitConstant, EncodingImplicit, Size0, "1"}

	// FPU stack.
	DescST  = OperandDesc{TypeStackIndex, EncodingImplicit, Size80, "ST"}
	DescSTi = OperandDesc{TypeStackIndex, EncodingStackIndex, Size80, "ST(i)"}

	// String operand addresses.
	DescStrDst8  = OperandDesc{TypeStringDst, EncodingImplicit, Size8, "[es:rdi:8]"}
	DescStrSrc8  = OperandDesc{TypeStringSrc, EncodingImplicit, Size8, "[ds:rsi:8]"}
	DescXLATMem  = OperandDesc{TypeXLATMemory, EncodingImplicit, Size8, "[rbx+al]"}

	// Relative/far branch targets.
	DescRel8  = OperandDesc{TypeRelativeAddress, EncodingCodeOffset, Size8, "rel8"}
	DescRel32 = OperandDesc{TypeRelativeAddress, EncodingCodeOffset, Size32, "rel32"}

	// Immediates.
	DescImm8   = OperandDesc{TypeImmSigned, EncodingImmediate, Size8, "imm8"}
	DescImm16  = OperandDesc{TypeImmSigned, EncodingImmediate, Size16, "imm16"}
	DescImm32  = OperandDesc{TypeImmSigned, EncodingImmediate, Size32, "imm32"}
	DescImm8u  = OperandDesc{TypeImmUnsigned, EncodingImmediate, Size8, "imm8u"}

	// MMX.
	DescMM1 = OperandDesc{TypeMMXreg, EncodingModRMreg, Size64, "mm1"}
	DescMM2 = OperandDesc{TypeMMXrm, EncodingModRMrm, Size64, "mm2"}

	// XMM.
	DescXMM1  = OperandDesc{TypeXMMreg, EncodingModRMreg, Size128, "xmm1"}
	DescXMM2  = OperandDesc{TypeXMMrm, EncodingModRMrm, Size128, "xmm2"}
	DescXMMV  = OperandDesc{TypeXMMvvvv, EncodingVEXvvvv, Size128, "xmmV"}
	// is4 selects a register in the top bits of a trailing immediate
	// byte; the byte is always 8 bits wide regardless of the selected
	// register's own width (XMM/YMM/ZMM), so Size8 here sizes the wire
	// encoding, not the register.
	DescXMMis4 = OperandDesc{TypeXMMis4, EncodingVEXis4, Size8, "xmmIs4"}

	// YMM.
	DescYMM1 = OperandDesc{TypeYMMreg, EncodingModRMreg, Size256, "ymm1"}
	DescYMM2 = OperandDesc{TypeYMMrm, EncodingModRMrm, Size256, "ymm2"}
	DescYMMV = OperandDesc{TypeYMMvvvv, EncodingVEXvvvv, Size256, "ymmV"}

	// ZMM.
	DescZMM1 = OperandDesc{TypeZMMreg, EncodingModRMreg, Size512, "zmm1"}
	DescZMM2 = OperandDesc{TypeZMMrm, EncodingModRMrm, Size512, "zmm2"}
	DescZMMV = OperandDesc{TypeZMMvvvv, EncodingVEXvvvv, Size512, "zmmV"}

	// Opmask.
	DescK1 = OperandDesc{TypeOpmaskReg, EncodingModRMreg, Size64, "k1"}
	DescAAA = OperandDesc{TypeOpmaskAAA, EncodingEVEXaaa, Size64, "{k}"}

	// System registers.
	DescCR0toCR7 = OperandDesc{TypeControlReg, EncodingModRMreg, Size64, "CR0-CR7"}
	DescECXreg   = OperandDesc{TypeImplicitFixedReg, EncodingImplicit, Size32, "ECX"}
	DescEDXAX    = OperandDesc{TypeImplicitFixedReg, EncodingImplicit, Size64, "EDX:EAX"}
)
