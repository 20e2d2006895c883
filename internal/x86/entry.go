// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import "fmt"

// EntryKind is the tag of the discriminated union every table slot
// carries. The root table's table-coverage invariant requires every
// one of its 256 slots to carry one of these kinds; there is no
// untagged gap.
type EntryKind uint8

const (
	KindInvalid  EntryKind = iota // No instruction is defined for this byte/context.
	KindPrefix                    // A prefix byte; a REX/VEX/XOP/EVEX introducer is recorded and the walk continues, a legacy prefix here is rejected.
	KindDispatch                   // Redirects to another table using a DispatchKind-specific index.
	KindTemplate                   // A terminal entry describing a concrete instruction.
)

func (k EntryKind) String() string {
	switch k {
	case KindInvalid:
		return "INVALID"
	case KindPrefix:
		return "PREFIX"
	case KindDispatch:
		return "DISPATCH"
	case KindTemplate:
		return "TEMPLATE"
	default:
		return fmt.Sprintf("EntryKind(%d)", k)
	}
}

// maxInlineOperands is the number of operand-descriptor slots carried
// directly on an Entry before an operand-overflow chain is needed.
const maxInlineOperands = 5

// OperandOverflow is a CONTINUED link in an operand-overflow chain,
// holding operand descriptors 6 and beyond for the rare instructions
// (EVEX gather/scatter, a handful of system instructions) that need
// more than the inline slots provide. The chain is singly-linked,
// acyclic and END-terminated: a nil Next marks the end.
type OperandOverflow struct {
	Operands [maxInlineOperands]OperandDesc
	Count    int
	Next     *OperandOverflow
}

// Entry is one slot in the template store: either a dispatch
// instruction for the resolver to follow, or a terminal template
// describing a real (or explicitly invalid) instruction.
type Entry struct {
	Kind EntryKind
	Name string // Human-readable name, always present, even on dispatch/invalid entries (debugging only).

	// KindPrefix.
	PrefixEffect Prefix

	// KindDispatch.
	Dispatch     DispatchKind
	Family       *[]Table // The family of sub-tables this dispatch kind selects from.
	SubTableIdx  int      // Which sub-table in Family to use.
	FixedIndex   int      // A fixed component of the kind-specific index, for kinds that need one (FLOAT_EXT).

	// KindTemplate.
	Opcode       Opcode
	Category     Category
	Attrs        EncodingAttr
	Tuple        TupleType
	Flags        FlagsEffect
	Operands     [maxInlineOperands]OperandDesc
	OperandCount int
	Overflow     *OperandOverflow
}

// Table is a fixed-size array of entries consulted at one dispatch
// step. Root is 256 entries wide (one per opcode byte); sub-tables are
// sized to whatever index space their DispatchKind uses.
type Table struct {
	Name    string
	Entries []*Entry
}

func (t *Table) at(index int) *Entry {
	if index < 0 || index >= len(t.Entries) {
		return nil
	}
	return t.Entries[index]
}

// invalid builds a KindInvalid leaf entry, used to populate table slots
// for which the architecture defines no instruction.
func invalid(name string) *Entry {
	return &Entry{Kind: KindInvalid, Name: name}
}

// prefixEntry builds a KindPrefix leaf entry for a root-table slot that
// is always a legacy prefix byte.
func prefixEntry(name string, p Prefix) *Entry {
	return &Entry{Kind: KindPrefix, Name: name, PrefixEffect: p}
}

// dispatch builds a KindDispatch entry redirecting to sub-table
// subTableIdx of family under kind.
func dispatch(name string, kind DispatchKind, family *[]Table, subTableIdx int) *Entry {
	return &Entry{Kind: KindDispatch, Name: name, Dispatch: kind, Family: family, SubTableIdx: subTableIdx}
}

// template builds a KindTemplate terminal entry.
func template(name string, op Opcode, cat Category, attrs EncodingAttr, operands ...OperandDesc) *Entry {
	if len(operands) > maxInlineOperands {
		panic(fmt.Sprintf("%s: %d operands exceeds inline capacity %d; use an operand-overflow chain", name, len(operands), maxInlineOperands))
	}

	e := &Entry{
		Kind:         KindTemplate,
		Name:         name,
		Opcode:       op,
		Category:     cat,
		Attrs:        attrs,
		OperandCount: len(operands),
	}
	copy(e.Operands[:], operands)
	return e
}

// withFlags sets the flags-effect on a freshly built template entry and
// returns it, for chaining at the construction site.
func (e *Entry) withFlags(f FlagsEffect) *Entry {
	e.Flags = f
	return e
}

// allOperands flattens an entry's inline operands and its CONTINUED
// overflow chain (if any) into a single slice.
func (e *Entry) allOperands() []OperandDesc {
	out := make([]OperandDesc, 0, e.OperandCount)
	out = append(out, e.Operands[:e.OperandCount]...)
	for o := e.Overflow; o != nil; o = o.Next {
		out = append(out, o.Operands[:o.Count]...)
	}
	return out
}
