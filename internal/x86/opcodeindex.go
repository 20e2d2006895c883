// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import "fmt"

// opcodeIndex is a dense, Opcode-keyed view of the table store, built
// once at package init time by walking every table reachable from
// rootTable. It exists for callers that already hold an Opcode value
// (a documentation generator, a test table enumerating every known
// instruction) and want one canonical template entry for it, without
// re-walking the dispatch graph or replaying a byte sequence through
// Decode.
//
// Indexing this array by a raw opcode byte makes no sense; the
// resolver's dispatch tables remain the only path from an instruction
// stream to a template. This array only maps the other direction.
var opcodeIndex [opcodeCount]*Entry

// Template returns the canonical template entry for op, or nil if op
// is OpcodeInvalid or otherwise never appears as a KindTemplate leaf
// anywhere in the table store.
func Template(op Opcode) *Entry { return opcodeIndex[op] }

func init() {
	walkTable(&rootTable, map[*Table]bool{})

	for op := Opcode(1); op < opcodeCount; op++ {
		e := opcodeIndex[op]
		if e == nil {
			continue
		}
		if e.Kind != KindTemplate {
			panic(fmt.Sprintf("x86: opcodeIndex[%s] references a non-template entry %q", op, e.Name))
		}
		if e.Opcode != op {
			panic(fmt.Sprintf("x86: opcodeIndex[%s] references an entry tagged %s", op, e.Opcode))
		}
	}
}

// walkTable records every KindTemplate leaf reachable from t (directly,
// or through any number of KindDispatch hops) into opcodeIndex, the
// first time each Opcode is seen. seen guards against revisiting a
// sub-table two different dispatch paths both reach, and would also
// stop a runaway walk if the table graph were ever accidentally made
// cyclic, though nothing in this package's construction does that.
func walkTable(t *Table, seen map[*Table]bool) {
	if t == nil || seen[t] {
		return
	}
	seen[t] = true

	for _, e := range t.Entries {
		switch e.Kind {
		case KindTemplate:
			if opcodeIndex[e.Opcode] == nil {
				opcodeIndex[e.Opcode] = e
			}
		case KindDispatch:
			if e.Family == nil {
				continue
			}
			for i := range *e.Family {
				walkTable(&(*e.Family)[i], seen)
			}
		}
	}
}
