// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

// table0F is the two-byte opcode map reached via the Escape dispatch
// at root[0x0F]. Only the slots this package's test scenarios exercise
// are populated with real templates; everything else defaults to
// KindInvalid.
var table0F = newSparseTable("0F", 256, map[int]*Entry{
	0x01: dispatch("0F 01", Extension, family(group7Table), 0),
	0x0f: dispatch("0F 0F", SuffixExt, family(amd3DNowTable), 0),
	0x38: dispatch("0F 38", Escape3Byte38, family(table0F38), 0),
	0x3a: dispatch("0F 3A", Escape3Byte3A, family(table0F3A), 0),
	0x57: dispatch("0F 57", VEXLExt, family(xorpsTable), 0),
	0x58: dispatch("0F 58", PrefixExt, family(addpsTable), 0),
	0x7e: dispatch("0F 7E", EVExExt, family(movdTable), 0),
	0xb8: dispatch("0F B8", PrefixExt, family(popcntTable), 0),
})

// table0F38 is the three-byte 0F 38 opcode map.
var table0F38 = newSparseTable("0F38", 256, map[int]*Entry{
	0x17: dispatch("0F 38 17", EVExExt, family(ptestTable), 0),
})

// table0F3A is the three-byte 0F 3A opcode map.
var table0F3A = newSparseTable("0F3A", 256, map[int]*Entry{
	0x0f: template("PALIGNR Pq,Qq,ib", OpcodePALIGNR, CategorySIMD, HasModRM|HasExtras, DescMM1, DescMM2, DescImm8),
})
