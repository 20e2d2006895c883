// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func bytes(s string) []byte {
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		panic(err)
	}
	return b
}

// TestDecodeScenarios reproduces a fixed set of concrete end-to-end
// byte sequences, each chosen to exercise a different corner of the
// resolver: a plain single-byte opcode, a REX.W ALU form, a
// mandatory-prefix SSE extension, a VEX form, an EVEX 512-bit form, a
// three-byte-escape SIMD compare, a REP string instruction, an x87
// memory load, a ModR/M.reg=2 sub-dispatch, and a rejected group-5
// extension.
func TestDecodeScenarios(t *testing.T) {
	tests := []struct {
		Name   string
		Mode   Mode
		Code   string
		Opcode Opcode // OpcodeInvalid if decoding is expected to fail.
		Fail   FailureKind
		Length int
	}{
		{Name: "NOP", Mode: Mode32, Code: "90", Opcode: OpcodeNOP, Length: 1},
		{Name: "ADD REX.W", Mode: Mode64, Code: "48 01 C3", Opcode: OpcodeADD, Length: 3},
		{Name: "POPCNT", Mode: Mode64, Code: "F3 0F B8 C0", Opcode: OpcodePOPCNT, Length: 4},
		{Name: "VXORPS", Mode: Mode64, Code: "C5 F8 57 C1", Opcode: OpcodeVXORPS, Length: 4},
		{Name: "VADDPS EVEX 512", Mode: Mode64, Code: "62 F1 7C 48 58 C1", Opcode: OpcodeVADDPS, Length: 6},
		{Name: "PTEST", Mode: Mode64, Code: "66 0F 38 17 C1", Opcode: OpcodePTEST, Length: 5},
		{Name: "REP MOVS", Mode: Mode32, Code: "F3 A4", Opcode: OpcodeMOVS, Length: 2},
		{Name: "FLD m64fp", Mode: Mode64, Code: "DD 05 00 00 00 00", Opcode: OpcodeFLD, Length: 6},
		{Name: "XGETBV", Mode: Mode64, Code: "0F 01 D0", Opcode: OpcodeXGETBV, Length: 3},
		{Name: "group5 /7 undefined", Mode: Mode64, Code: "FF FF", Fail: InvalidByte},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			buf := bytes(test.Code)
			res, err := Decode(test.Mode, buf, 0, 15)
			if test.Fail != 0 {
				if err == nil {
					t.Fatalf("Decode(%q): got no error, want %s", test.Code, test.Fail)
				}
				derr, ok := err.(*DecodeError)
				if !ok {
					t.Fatalf("Decode(%q): error %v is not a *DecodeError", test.Code, err)
				}
				if derr.Kind != test.Fail {
					t.Fatalf("Decode(%q): got failure kind %s, want %s", test.Code, derr.Kind, test.Fail)
				}
				return
			}

			if err != nil {
				t.Fatalf("Decode(%q): unexpected error: %v", test.Code, err)
			}
			if res.Entry.Opcode != test.Opcode {
				t.Errorf("Decode(%q): got opcode %s, want %s", test.Code, res.Entry.Opcode, test.Opcode)
			}
			if res.Length != test.Length {
				t.Errorf("Decode(%q): got length %d, want %d", test.Code, res.Length, test.Length)
			}
		})
	}
}

// TestDecodeS2Operands checks the ADD REX.W scenario's resolved
// operand widths and registers more closely than the identity-only
// table above does.
func TestDecodeS2Operands(t *testing.T) {
	res, err := Decode(Mode64, bytes("48 01 C3"), 0, 15)
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	if res.Context.OperandSize != 64 {
		t.Fatalf("OperandSize = %d, want 64", res.Context.OperandSize)
	}

	ops := res.Operands()
	if len(ops) != 2 {
		t.Fatalf("got %d operands, want 2", len(ops))
	}
	dst, ok := res.Context.RegisterName(ops[0])
	if !ok || dst.Name != "rbx" {
		t.Errorf("dst register = %v, ok=%v, want rbx", dst, ok)
	}
	src, ok := res.Context.RegisterName(ops[1])
	if !ok || src.Name != "rax" {
		t.Errorf("src register = %v, ok=%v, want rax", src, ok)
	}
}

// TestDecodeS9Operands checks that XGETBV's fixed ECX/EDX:EAX operands
// decode as implicit rather than encoded operands.
func TestDecodeS9Operands(t *testing.T) {
	res, err := Decode(Mode64, bytes("0F 01 D0"), 0, 15)
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	ops := res.Operands()
	if len(ops) != 2 {
		t.Fatalf("got %d operands, want 2", len(ops))
	}
	for _, op := range ops {
		if op.Encoding != EncodingImplicit {
			t.Errorf("operand %s: encoding = %s, want implicit", op.UID, op.Encoding)
		}
	}

	var uids []string
	for _, op := range ops {
		uids = append(uids, op.UID)
	}
	wantUIDs := []string{"ECX", "EDX:EAX"}
	if diff := cmp.Diff(wantUIDs, uids); diff != "" {
		t.Errorf("operand UIDs mismatch (-want +got):\n%s", diff)
	}
}

// TestDispatchKindCoverage exercises at least one acceptance and one
// rejection for every DispatchKind the table store uses.
func TestDispatchKindCoverage(t *testing.T) {
	tests := []struct {
		Name   string
		Kind   DispatchKind
		Mode   Mode
		Code   string
		Accept bool
	}{
		{"escape reject (bare 0F B8, no REP prefix)", Escape, Mode64, "0F B8 C0", false},
		{"escape accept (via prefix)", Escape, Mode64, "F3 0F B8 C0", true},
		{"escape reject", Escape, Mode64, "0F FF", false},
		{"escape3byte38 accept", Escape3Byte38, Mode64, "66 0F 38 17 C1", true},
		{"escape3byte38 reject", Escape3Byte38, Mode64, "0F 38 17 C1", false},
		{"escape3byte3a accept", Escape3Byte3A, Mode64, "0F 3A 0F C1 00", true},
		{"escape3byte3a reject", Escape3Byte3A, Mode64, "0F 3A FF", false},
		{"extension accept", Extension, Mode64, "80 C0 01", true}, // group1/8 reg=0 -> ADD.
		{"extension reject", Extension, Mode64, "FF FF", false},   // group5 reg=7 -> invalid.
		{"prefixext accept", PrefixExt, Mode64, "F3 0F B8 C0", true},
		{"prefixext reject", PrefixExt, Mode64, "0F B8 C0", false},
		{"x64ext accept (32-bit DEC)", X64Ext, Mode32, "48", true},
		{"x64ext accept (64-bit REX)", X64Ext, Mode64, "48 01 C3", true},
		{"vexprefixext accept", VEXPrefixExt, Mode64, "C5 F8 57 C1", true},
		{"vexprefixext reject (truncated after register-form selects VEX)", VEXPrefixExt, Mode32, "C5 F8", false},
		{"xopprefixext accept (POP)", XOPPrefixExt, Mode64, "8F C0", true},
		{"xopprefixext accept (XOP, VPCMOV)", XOPPrefixExt, Mode64, "8F E8 78 A2 C1 10", true},
		{"xopprefixext reject (unmapped XOP opcode)", XOPPrefixExt, Mode64, "8F E8 78 00", false},
		{"evexprefixext accept", EVEXPrefixExt, Mode64, "62 F1 7C 48 58 C1", true},
		{"evexprefixext reject (truncated after register-form selects EVEX)", EVEXPrefixExt, Mode32, "62 C0", false},
		{"rexbext accept (NOP)", REXBExt, Mode64, "90", true},
		{"rexbext accept (XCHG)", REXBExt, Mode64, "41 90", true},
		{"rexwext accept (MOVSXD)", REXWExt, Mode64, "48 63 C1", true},
		{"rexwext reject (no REX.W)", REXWExt, Mode64, "63 C1", false},
		{"vexlext accept (L0)", VEXLExt, Mode64, "C5 F8 57 C1", true},
		{"vexlext reject (truncated, missing ModR/M)", VEXLExt, Mode64, "C5 F8 57", false},
		{"vexwext accept", VEXWExt, Mode64, "C4 E1 F9 7E C1", true},
		{"vexwext reject (truncated, missing ModR/M)", VEXWExt, Mode64, "C4 E1 F9 7E", false},
		{"evexwbext accept", EVEXWbExt, Mode64, "62 F1 7C 48 58 C1", true},
		{"evexwbext reject (truncated, missing ModR/M)", EVEXWbExt, Mode64, "62 F1 7C 48 58", false},
		{"modext accept (register form)", ModExt, Mode64, "0F 01 D0", true},
		{"modext accept (memory form)", ModExt, Mode64, "0F 01 10", true},
		{"modext reject (register form, unmapped rm)", ModExt, Mode64, "0F 01 D2", false},
		{"rmext accept", RMExt, Mode64, "0F 01 D0", true},
		{"rmext reject", RMExt, Mode64, "0F 01 D2", false},
		{"floatext accept", FloatExt, Mode64, "DD 05 00 00 00 00", true},
		{"floatext reject", FloatExt, Mode64, "DD C8", false},
		{"suffixext accept", SuffixExt, Mode64, "0F 0F C1 9E", true},
		{"suffixext reject", SuffixExt, Mode64, "0F 0F C1 00", false},
		{"repext accept", RepExt, Mode32, "F3 A4", true},
		{"repext accept (no rep)", RepExt, Mode32, "A4", true},
		{"repext reject (truncated)", RepExt, Mode32, "F3", false},
		{"repneext accept (F2)", RepneExt, Mode32, "F2 A6", true},
		{"repneext accept (F3)", RepneExt, Mode32, "F3 A6", true},
		{"repneext reject (truncated)", RepneExt, Mode32, "F2", false},
		{"evexext accept (legacy)", EVExExt, Mode64, "66 0F 38 17 C1", true},
		{"evexext accept (vex)", EVExExt, Mode64, "C4 E2 79 17 C1", true},
		{"evexext reject (evex, no VPTEST EVEX form)", EVExExt, Mode64, "62 F2 7C 08 17 C1", false},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			_, err := Decode(test.Mode, bytes(test.Code), 0, 15)
			if test.Accept && err != nil {
				t.Errorf("%s (%s): Decode(%q) failed: %v", test.Kind, test.Code, test.Code, err)
			}
			if !test.Accept && err == nil {
				t.Errorf("%s (%s): Decode(%q) succeeded, want a failure", test.Kind, test.Code, test.Code)
			}
		})
	}
}

// TestDecodeBoundaries checks the length-related edge cases.
func TestDecodeBoundaries(t *testing.T) {
	t.Run("single prefix byte truncated", func(t *testing.T) {
		_, err := Decode(Mode64, bytes("66"), 0, 15)
		assertFailureKind(t, err, Truncated)
	})

	t.Run("15 prefix bytes is invalid length", func(t *testing.T) {
		buf := bytes(strings.Repeat("66 ", 15))
		_, err := Decode(Mode64, buf, 0, 15)
		assertFailureKind(t, err, InvalidLength)
	})

	t.Run("maxLen is clamped to 15", func(t *testing.T) {
		buf := bytes(strings.Repeat("66 ", 20))
		_, err := Decode(Mode64, buf, 0, 1000)
		assertFailureKind(t, err, InvalidLength)
	})
}

func assertFailureKind(t *testing.T, err error, want FailureKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("got no error, want %s", want)
	}
	derr, ok := err.(*DecodeError)
	if !ok {
		t.Fatalf("error %v is not a *DecodeError", err)
	}
	if derr.Kind != want {
		t.Fatalf("got failure kind %s, want %s", derr.Kind, want)
	}
}

// TestIdempotentPrefixAbsorption checks that a duplicated innocuous
// prefix changes the consumed byte count but not the resolved entry.
func TestIdempotentPrefixAbsorption(t *testing.T) {
	once, err := Decode(Mode64, bytes("66 0F 38 17 C1"), 0, 15)
	if err != nil {
		t.Fatalf("Decode (single 0x66): unexpected error: %v", err)
	}
	twice, err := Decode(Mode64, bytes("66 66 0F 38 17 C1"), 0, 15)
	if err != nil {
		t.Fatalf("Decode (duplicated 0x66): unexpected error: %v", err)
	}
	if once.Entry.Opcode != twice.Entry.Opcode {
		t.Errorf("opcode changed under duplicated prefix: %s vs %s", once.Entry.Opcode, twice.Entry.Opcode)
	}
	if twice.Length != once.Length+1 {
		t.Errorf("length = %d, want %d (one extra prefix byte)", twice.Length, once.Length+1)
	}
}

// TestOpcodeIndexConsistency checks the opcode-index-consistency
// invariant directly, beyond the self-check init() already performs:
// every populated slot must hold a template tagged with the same
// opcode it's indexed by, and Template(OpcodeInvalid) must be nil.
func TestOpcodeIndexConsistency(t *testing.T) {
	if e := Template(OpcodeInvalid); e != nil {
		t.Errorf("Template(OpcodeInvalid) = %v, want nil", e)
	}
	for op := Opcode(1); op < opcodeCount; op++ {
		e := Template(op)
		if e == nil {
			continue
		}
		if e.Kind != KindTemplate {
			t.Errorf("Template(%s).Kind = %s, want TEMPLATE", op, e.Kind)
		}
		if e.Opcode != op {
			t.Errorf("Template(%s).Opcode = %s, want %s", op, e.Opcode, op)
		}
	}
}

// TestRootTableCoverage checks the table-coverage invariant: every one
// of the root table's 256 slots must carry an explicit entry, never a
// gap.
func TestRootTableCoverage(t *testing.T) {
	if len(rootTable.Entries) != 256 {
		t.Fatalf("root table has %d entries, want 256", len(rootTable.Entries))
	}
	for i, e := range rootTable.Entries {
		if e == nil {
			t.Errorf("root table slot %#x is nil", i)
		}
	}
}

// TestModeExclusion checks that no known template entry carries both
// X64Invalid and X86Invalid: a template excluded from both CPU modes
// would be dead weight the table store should never produce.
func TestModeExclusion(t *testing.T) {
	seen := map[*Table]bool{}
	var walk func(t *Table)
	walk = func(t *Table) {
		if t == nil || seen[t] {
			return
		}
		seen[t] = true
		for _, e := range t.Entries {
			if e == nil {
				continue
			}
			if e.Kind == KindTemplate && e.Attrs.Has(X64Invalid) && e.Attrs.Has(X86Invalid) {
				t.Errorf("entry %q is invalid in both 64-bit and 32-bit modes", e.Name)
			}
			if e.Kind == KindDispatch && e.Family != nil {
				for i := range *e.Family {
					walk(&(*e.Family)[i])
				}
			}
		}
	}
	walk(&rootTable)
}
