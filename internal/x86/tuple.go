// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import "fmt"

// TupleType identifies an EVEX instruction's compressed-displacement
// tuple kind, as defined in Intel x86 manuals, Volume 2A, Section 2.6.5.
//
// It governs the scale factor applied to an EVEX instruction's 8-bit
// displacement, the only part of operand value decoding this package
// still performs (displacement and immediate *extraction* are out of
// scope, but the disp8 scale factor is a property of the resolved
// template, not of a particular buffer, so it belongs here).
type TupleType uint8

const (
	TupleNone TupleType = iota
	TupleFull
	TupleHalf
	TupleFullMem
	Tuple1Scalar
	Tuple1Fixed
	Tuple2
	Tuple4
	Tuple8
	TupleHalfMem
	TupleQuarterMem
	TupleEighthMem
	TupleMem128
	TupleMOVDDUP
)

func (t TupleType) String() string {
	switch t {
	case TupleNone:
		return "None"
	case TupleFull:
		return "Full"
	case TupleHalf:
		return "Half"
	case TupleFullMem:
		return "Full Mem"
	case Tuple1Scalar:
		return "Tuple1 Scalar"
	case Tuple1Fixed:
		return "Tuple1 Fixed"
	case Tuple2:
		return "Tuple2"
	case Tuple4:
		return "Tuple4"
	case Tuple8:
		return "Tuple8"
	case TupleHalfMem:
		return "Half Mem"
	case TupleQuarterMem:
		return "Quarter Mem"
	case TupleEighthMem:
		return "Eighth Mem"
	case TupleMem128:
		return "Mem128"
	case TupleMOVDDUP:
		return "MOVDDUP"
	default:
		return fmt.Sprintf("TupleType(%d)", t)
	}
}

// DisplacementScale returns the scale factor N applied to an EVEX
// instruction's 8-bit compressed displacement, per Intel x86 manuals,
// Volume 2A, Section 2.7.5. vectorSize is the resolved vector width in
// bits (128/256/512) and dataSize is the instruction's scalar data size
// in bits, used only by TupleType values that need it.
func (t TupleType) DisplacementScale(vectorSize, dataSize int64, w, broadcast bool) (int64, error) {
	var inputSize int64
	if w {
		inputSize = 64
	} else {
		inputSize = 32
	}

	if vectorSize == 0 {
		return 1, nil
	}

	switch t {
	case TupleNone:
		return 1, nil
	case TupleFull:
		if broadcast {
			return inputSize / 8, nil
		}
		return vectorSize / 8, nil
	case TupleHalf:
		if broadcast {
			return 4, nil
		}
		return vectorSize / 16, nil
	case TupleFullMem:
		return vectorSize / 8, nil
	case Tuple1Scalar:
		if dataSize == 0 {
			return 0, fmt.Errorf("tuple type Tuple1 Scalar requires a data size")
		}
		return dataSize / 8, nil
	case Tuple1Fixed:
		return inputSize / 8, nil
	case Tuple2:
		return inputSize / 4, nil
	case Tuple4:
		return inputSize / 2, nil
	case Tuple8:
		return inputSize / 1, nil
	case TupleHalfMem:
		return vectorSize / 16, nil
	case TupleQuarterMem:
		return vectorSize / 32, nil
	case TupleEighthMem:
		return vectorSize / 64, nil
	case TupleMem128:
		return 16, nil
	case TupleMOVDDUP:
		switch vectorSize {
		case 128:
			return 8, nil
		case 256:
			return 32, nil
		case 512:
			return 64, nil
		}
		return 0, fmt.Errorf("invalid vector size %d for tuple type MOVDDUP", vectorSize)
	default:
		return 0, fmt.Errorf("unknown tuple type: %s", t)
	}
}
