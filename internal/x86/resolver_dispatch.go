// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

// computeDispatchIndex implements the per-DispatchKind index rule
// described in dispatch.go's comments, consuming whatever additional
// bytes that rule needs (an escape opcode byte, a ModR/M byte, a 3DNow!
// suffix byte) along the way.
func computeDispatchIndex(entry *Entry, ctx *Context, cur *cursor, offset int, rawByte byte) (int, *Table, error) {
	sub := &(*entry.Family)[entry.SubTableIdx]

	switch entry.Dispatch {
	case Escape, Escape3Byte38, Escape3Byte3A:
		b, err := mustReadByte(cur, offset)
		if err != nil {
			return 0, nil, err
		}
		return int(b), sub, nil

	case Extension:
		if err := ensureModRM(ctx, cur, offset); err != nil {
			return 0, nil, err
		}
		return int(ctx.ModRM.Reg()), sub, nil

	case PrefixExt:
		return prefixExtIndex(ctx), sub, nil

	case X64Ext:
		if ctx.Mode.Is64() {
			return 1, sub, nil
		}
		return 0, sub, nil

	case VEXPrefixExt, EVEXPrefixExt:
		if ctx.Mode.Is64() {
			return 1, sub, nil
		}
		if p, ok := cur.peekByte(); ok && p>>6 == 3 {
			return 1, sub, nil
		}
		return 0, sub, nil

	case XOPPrefixExt:
		if p, ok := cur.peekByte(); ok && (p>>3)&7 != 0 {
			return 1, sub, nil
		}
		return 0, sub, nil

	case REXBExt:
		if ctx.HasREX && ctx.REX.B() {
			return 1, sub, nil
		}
		return 0, sub, nil

	case REXWExt:
		if ctx.HasREX && ctx.REX.W() {
			return 1, sub, nil
		}
		return 0, sub, nil

	case VEXLExt:
		if !ctx.HasVEX {
			return 0, sub, nil
		}
		if ctx.VEX.L() {
			return 2, sub, nil
		}
		return 1, sub, nil

	case VEXWExt:
		if ctx.HasVEX && ctx.VEX.W() {
			return 1, sub, nil
		}
		return 0, sub, nil

	case EVEXWbExt:
		idx := 0
		if ctx.HasEVEX && ctx.EVEX.W() {
			idx |= 0b10
		}
		if ctx.HasEVEX && ctx.EVEX.Br() {
			idx |= 0b01
		}
		return idx, sub, nil

	case ModExt:
		if err := ensureModRM(ctx, cur, offset); err != nil {
			return 0, nil, err
		}
		if ctx.ModRM.IsRegisterForm() {
			return 1, sub, nil
		}
		return 0, sub, nil

	case RMExt:
		if err := ensureModRM(ctx, cur, offset); err != nil {
			return 0, nil, err
		}
		return int(ctx.ModRM.RM()), sub, nil

	case FloatExt:
		if err := ensureModRM(ctx, cur, offset); err != nil {
			return 0, nil, err
		}
		if ctx.ModRM.IsRegisterForm() {
			return 64 + entry.FixedIndex*64 + int(ctx.ModRM) - 0xC0, sub, nil
		}
		return entry.FixedIndex*8 + int(ctx.ModRM.Reg()), sub, nil

	case SuffixExt:
		if err := ensureModRM(ctx, cur, offset); err != nil {
			return 0, nil, err
		}
		if err := consumeModRMTail(ctx, cur, offset); err != nil {
			return 0, nil, err
		}
		b, err := mustReadByte(cur, offset)
		if err != nil {
			return 0, nil, err
		}
		return int(b), sub, nil

	case RepExt:
		if ctx.MandatoryPrefix == PrefixRepeat {
			return 2, sub, nil
		}
		return 0, sub, nil

	case RepneExt:
		switch ctx.MandatoryPrefix {
		case PrefixRepeat:
			return 2, sub, nil
		case PrefixRepeatNot:
			return 4, sub, nil
		default:
			return 0, sub, nil
		}

	case EVExExt:
		if ctx.HasEVEX {
			return 2, sub, nil
		}
		if ctx.HasVEX {
			return 1, sub, nil
		}
		return 0, sub, nil

	default:
		return 0, nil, fail(InvalidByte, offset, cur.bytesRead(), "unrecognised dispatch kind")
	}
}

// prefixExtIndex computes the 0..11 PrefixExt index: the mandatory
// prefix selects a base of 0 (none), 1 (0xF3), 2 (0x66) or 3 (0xF2); a
// VEX or EVEX prefix then shifts that base by 4 or 8.
func prefixExtIndex(ctx *Context) int {
	base := 0
	switch ctx.MandatoryPrefix {
	case PrefixRepeat:
		base = 1
	case PrefixOperandSize:
		base = 2
	case PrefixRepeatNot:
		base = 3
	}
	switch {
	case ctx.HasEVEX:
		return base + 8
	case ctx.HasVEX:
		return base + 4
	default:
		return base
	}
}

// introducedTable selects the table the byte following a VEX, XOP or
// EVEX prefix's payload indexes into. Unlike a REX prefix, these carry
// their own opcode-map selector (VEX/EVEX m-mmmm, XOP's equivalent
// field) instead of leaving the following byte to fall through the
// ordinary 0x0F escape chain, so the dispatch loop must route directly
// to the selected map's table rather than restarting at rootTable.
func introducedTable(ctx *Context, introducer Prefix) *Table {
	switch introducer {
	case PrefixVEX2, PrefixVEX3:
		switch ctx.VEX.M_MMMM() {
		case 0b00010:
			return &table0F38
		case 0b00011:
			return &table0F3A
		default:
			return &table0F
		}
	case PrefixEVEX:
		switch ctx.EVEX.MMM() {
		case 0b010:
			return &table0F38
		case 0b011:
			return &table0F3A
		default:
			return &table0F
		}
	case PrefixXOP:
		return &xopOpcodeTable
	default:
		return &rootTable
	}
}

// ensureModRM parses the ModR/M byte the first time it's needed, and is
// a no-op on any later call for the same instruction: several dispatch
// kinds (Extension, ModExt, RMExt, FloatExt, SuffixExt) and the generic
// HasModRM validation step all need it, sometimes more than one of them
// for the same instruction.
func ensureModRM(ctx *Context, cur *cursor, offset int) error {
	if ctx.HasModRM {
		return nil
	}
	b, err := mustReadByte(cur, offset)
	if err != nil {
		return err
	}
	ctx.ModRM = ModRM(b)
	ctx.HasModRM = true
	return nil
}

// consumeModRMTail consumes the SIB byte and displacement bytes a
// parsed ModR/M implies, if any, and is idempotent: calling it twice
// for the same instruction (once from a SuffixExt dispatch, once from
// the generic terminate step) only consumes the bytes once.
func consumeModRMTail(ctx *Context, cur *cursor, offset int) error {
	if ctx.modRMTailDone {
		return nil
	}
	ctx.modRMTailDone = true

	if !ctx.HasModRM || ctx.ModRM.IsRegisterForm() {
		return nil
	}

	mod, rm := ctx.ModRM.Mod(), ctx.ModRM.RM()
	hasSIB := rm == 0b100
	if hasSIB {
		b, err := mustReadByte(cur, offset)
		if err != nil {
			return err
		}
		ctx.SIB = SIB(b)
		ctx.HasSIB = true
	}

	dispBytes := 0
	switch mod {
	case 0b00:
		switch {
		case hasSIB && ctx.SIB.Base() == 0b101:
			dispBytes = 4
		case !hasSIB && rm == 0b101:
			dispBytes = 4 // disp32, RIP-relative in 64-bit mode.
		}
	case 0b01:
		dispBytes = 1
	case 0b10:
		dispBytes = 4
	}

	for i := 0; i < dispBytes; i++ {
		if _, err := mustReadByte(cur, offset); err != nil {
			return err
		}
	}
	return nil
}

// validate applies the resolver's prefix/VEX/EVEX/REX conflict checks
// and mode restriction to the terminal entry reached by the dispatch
// loop, parsing the ModR/M byte first if the entry needs one.
func validate(entry *Entry, ctx *Context, cur *cursor, offset int) error {
	attrs := entry.Attrs

	if attrs.Has(HasModRM) {
		if err := ensureModRM(ctx, cur, offset); err != nil {
			return err
		}
	}

	vexFamily := ctx.HasVEX || ctx.HasEVEX || ctx.HasXOP
	if vexFamily && ctx.MandatoryPrefix != 0 {
		return fail(InvalidPrefix, offset, cur.bytesRead(), "VEX/EVEX and a mandatory legacy prefix are mutually exclusive")
	}
	if vexFamily && ctx.HasREX {
		return fail(InvalidPrefix, offset, cur.bytesRead(), "VEX/EVEX prefixes encode their own REX-equivalent bits")
	}

	switch {
	case attrs.Has(RequiresVEX) && !ctx.HasVEX:
		return fail(InvalidPrefix, offset, cur.bytesRead(), "requires a VEX prefix")
	case attrs.Has(RequiresEVEX) && !ctx.HasEVEX:
		return fail(InvalidPrefix, offset, cur.bytesRead(), "requires an EVEX prefix")
	case attrs.Has(RequiresXOP) && !ctx.HasXOP:
		return fail(InvalidPrefix, offset, cur.bytesRead(), "requires an XOP prefix")
	case attrs.Has(RequiresREX) && !ctx.HasREX:
		return fail(InvalidPrefix, offset, cur.bytesRead(), "requires a REX prefix")
	case attrs.Has(RequiresPrefix) && ctx.MandatoryPrefix == 0:
		return fail(InvalidPrefix, offset, cur.bytesRead(), "requires a mandatory legacy prefix")
	case attrs.Has(RequiresVEXL0) && ctx.HasVEX && ctx.VEX.L():
		return fail(InvalidPrefix, offset, cur.bytesRead(), "requires VEX.L=0")
	case attrs.Has(RequiresVEXL1) && ctx.HasVEX && !ctx.VEX.L():
		return fail(InvalidPrefix, offset, cur.bytesRead(), "requires VEX.L=1")
	case attrs.Has(RequiresEVEXLL0) && ctx.HasEVEX && ctx.EVEX.VectorSize() != 128:
		return fail(InvalidPrefix, offset, cur.bytesRead(), "requires a 128-bit EVEX vector size")
	case attrs.Has(RequiresNotK0) && ctx.HasEVEX && ctx.EVEX.AAA() == 0:
		return fail(InvalidPrefix, offset, cur.bytesRead(), "requires a non-k0 opmask")
	}

	switch {
	case attrs.Has(X64Invalid) && ctx.Mode.Is64():
		return fail(InvalidInMode, offset, cur.bytesRead(), "undefined in 64-bit mode")
	case attrs.Has(X86Invalid) && !ctx.Mode.Is64():
		return fail(InvalidInMode, offset, cur.bytesRead(), "defined only in 64-bit mode")
	}

	return nil
}

// consumeTrailingBytes consumes whatever bytes the terminal entry still
// implies beyond the opcode/ModR/M byte already read: the SIB and
// displacement bytes a memory-form ModR/M implies, and an immediate or
// code-offset byte run sized per operand.
func consumeTrailingBytes(entry *Entry, ctx *Context, cur *cursor, offset int) error {
	if entry.Attrs.Has(HasModRM) {
		if err := consumeModRMTail(ctx, cur, offset); err != nil {
			return err
		}
	}

	ops, next := entry.Operands[:entry.OperandCount], entry.Overflow
	for {
		for _, d := range ops {
			switch d.Encoding {
			case EncodingImmediate, EncodingCodeOffset, EncodingVEXis4:
				n := ctx.sizeOf(d.Size)
				nbytes := (n + 7) / 8
				for i := 0; i < nbytes; i++ {
					if _, err := mustReadByte(cur, offset); err != nil {
						return err
					}
				}
			}
		}
		if next == nil {
			break
		}
		ops, next = next.Operands[:next.Count], next.Next
	}
	return nil
}
