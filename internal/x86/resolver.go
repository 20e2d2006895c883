// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

// MaxDispatchDepth bounds how many KindDispatch hops a single Decode
// call may follow before giving up. The table graph built into this
// package is acyclic and never nests anywhere near this deep; the
// bound exists to turn a future table-construction bug (an
// accidentally cyclic Family) into a bounded failure instead of an
// infinite loop.
const MaxDispatchDepth = 8

// DecodeResult is what a successful Decode call returns: the resolved
// template, how many bytes it consumed, and the full prefix/REX/VEX/
// EVEX/ModR/M/SIB context the resolver built up along the way.
type DecodeResult struct {
	Entry   *Entry
	Length  int
	Context Context
}

// Operands flattens the resolved entry's inline operands and its
// CONTINUED overflow chain, if any, into a single slice.
func (r *DecodeResult) Operands() []OperandDesc { return r.Entry.allOperands() }

// Decode resolves the instruction at buf[offset:], in the given CPU
// mode, to a template entry. maxLen additionally bounds how many bytes
// may be consumed (it is clamped to the architectural 15-byte limit
// regardless of the value passed in).
//
// Decode performs no allocation beyond its own Context and result, and
// never reads byte buf[offset+n] unless a shorter prefix of the
// instruction has already required it to.
func Decode(mode Mode, buf []byte, offset int, maxLen int) (*DecodeResult, error) {
	cur := newCursor(buf, offset, maxLen)
	ctx := &Context{Mode: mode}

	if err := absorbLegacyPrefixes(ctx, cur, offset); err != nil {
		return nil, err
	}

	entry, err := runDispatchLoop(ctx, cur, offset)
	if err != nil {
		return nil, err
	}

	if err := validate(entry, ctx, cur, offset); err != nil {
		return nil, err
	}

	ctx.resolveOperandSize()
	ctx.resolveAddressSize()
	ctx.resolveVectorSize()

	if err := consumeTrailingBytes(entry, ctx, cur, offset); err != nil {
		return nil, err
	}

	return &DecodeResult{Entry: entry, Length: cur.bytesRead(), Context: *ctx}, nil
}

// absorbLegacyPrefixes reads bytes one at a time, folding each
// recognised legacy prefix byte into ctx, until it reads a byte that
// isn't one (which is left for the dispatch loop to interpret as the
// first opcode byte). Per the tie-break rule, a repeated class of
// legacy prefix (e.g. two segment overrides) overwrites rather than
// stacking; REX, when present, is recognised separately, as the last
// prefix byte immediately preceding the opcode, by runDispatchLoop.
func absorbLegacyPrefixes(ctx *Context, cur *cursor, offset int) error {
	for {
		b, ok, exceeded := cur.readByte()
		if exceeded {
			return fail(InvalidLength, offset, cur.bytesRead(), "instruction exceeds 15 bytes while absorbing prefixes")
		}
		if !ok {
			return fail(Truncated, offset, cur.bytesRead(), "buffer ended while absorbing prefixes")
		}

		p, isPrefix := classifyLegacyPrefix(b)
		if !isPrefix {
			ctx.pendingOpcodeByte = b
			ctx.havePendingOpcodeByte = true
			return nil
		}

		switch {
		case p == PrefixLock:
			ctx.Lock = true
		case p.IsSegmentOverride():
			ctx.Segment = p
		case p == PrefixOperandSize:
			// 0x66 doubles as the mandatory-prefix slot a SIMD opcode's
			// PrefixExt dispatch consults: the byte never changes
			// operand size for such an opcode, but the resolver can't
			// know which role applies until it reaches the terminal
			// entry, so it records both.
			ctx.OperandSize66 = true
			ctx.MandatoryPrefix = p
		case p == PrefixAddressSize:
			ctx.AddressSize67 = true
		default: // PrefixRepeat or PrefixRepeatNot.
			ctx.MandatoryPrefix = p
		}
	}
}

// runDispatchLoop walks the table graph starting from the pending
// opcode byte absorbLegacyPrefixes left behind, following KindDispatch
// entries (and the REX/VEX/XOP/EVEX KindPrefix markers that restart the
// walk) until it reaches a terminal KindTemplate or KindInvalid entry.
func runDispatchLoop(ctx *Context, cur *cursor, offset int) (*Entry, error) {
	table := &rootTable
	idx := int(ctx.pendingOpcodeByte)
	rawByte := ctx.pendingOpcodeByte

	for depth := 0; depth < MaxDispatchDepth; depth++ {
		entry := table.at(idx)
		if entry == nil {
			return nil, fail(InvalidByte, offset, cur.bytesRead(), "dispatch index out of range")
		}

		switch entry.Kind {
		case KindInvalid:
			return nil, fail(InvalidByte, offset, cur.bytesRead(), entry.Name)

		case KindTemplate:
			return entry, nil

		case KindPrefix:
			introducer := entry.PrefixEffect
			if err := absorbIntroducer(ctx, cur, offset, introducer, rawByte); err != nil {
				return nil, err
			}
			b, derr := mustReadByte(cur, offset)
			if derr != nil {
				return nil, derr
			}
			rawByte = b
			table = introducedTable(ctx, introducer)
			idx = int(b)

		case KindDispatch:
			next, nextTable, err := computeDispatchIndex(entry, ctx, cur, offset, rawByte)
			if err != nil {
				return nil, err
			}
			table = nextTable
			idx = next

		default:
			return nil, fail(InvalidByte, offset, cur.bytesRead(), "unrecognised entry kind")
		}
	}

	return nil, fail(InvalidLength, offset, cur.bytesRead(), "dispatch depth exceeded")
}

// mustReadByte reads one more byte, turning cursor exhaustion into the
// appropriate DecodeError.
func mustReadByte(cur *cursor, offset int) (byte, *DecodeError) {
	b, ok, exceeded := cur.readByte()
	if exceeded {
		return 0, fail(InvalidLength, offset, cur.bytesRead(), "instruction exceeds 15 bytes")
	}
	if !ok {
		return 0, fail(Truncated, offset, cur.bytesRead(), "buffer ended before instruction did")
	}
	return b, nil
}

// absorbIntroducer consumes the payload bytes of a multi-byte prefix
// once the dispatch loop has decided (via computeDispatchIndex's
// lookahead) that introducer is really present, rather than the
// legacy single-byte instruction it's ambiguous with.
func absorbIntroducer(ctx *Context, cur *cursor, offset int, introducer Prefix, rawByte byte) error {
	switch introducer {
	case PrefixREX:
		ctx.REX = REX(rawByte)
		ctx.HasREX = true

	case PrefixVEX2:
		p0, err := mustReadByte(cur, offset)
		if err != nil {
			return err
		}
		ctx.VEX = ParseVEX2(p0)
		ctx.HasVEX = true
		ctx.VEXWasVEX2 = true

	case PrefixVEX3:
		p0, err := mustReadByte(cur, offset)
		if err != nil {
			return err
		}
		p1, err := mustReadByte(cur, offset)
		if err != nil {
			return err
		}
		ctx.VEX = ParseVEX3(p0, p1)
		ctx.HasVEX = true

	case PrefixXOP:
		p0, err := mustReadByte(cur, offset)
		if err != nil {
			return err
		}
		p1, err := mustReadByte(cur, offset)
		if err != nil {
			return err
		}
		ctx.XOP = ParseVEX3(p0, p1)
		ctx.HasXOP = true

	case PrefixEVEX:
		p0, err := mustReadByte(cur, offset)
		if err != nil {
			return err
		}
		p1, err := mustReadByte(cur, offset)
		if err != nil {
			return err
		}
		p2, err := mustReadByte(cur, offset)
		if err != nil {
			return err
		}
		ctx.EVEX = ParseEVEX(p0, p1, p2)
		ctx.HasEVEX = true

	default:
		return fail(InvalidPrefix, offset, cur.bytesRead(), "unrecognised prefix introducer")
	}
	return nil
}
