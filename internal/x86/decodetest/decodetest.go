// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package decodetest provides a golden-text comparison helper for
// internal/x86 decode results, so that a mismatch between a test's
// expectation and the resolver's actual output is reported as a
// readable line-oriented diff rather than a raw struct dump.
package decodetest

import (
	"fmt"
	"strings"

	"rsc.io/diff"

	"github.com/arwen-dev/x86decode/internal/x86"
)

// Golden renders a DecodeResult the same way for every caller, so that
// two renderings can be compared textually: the template name, the
// resolved operand/address/vector sizes, and each operand's resolved
// register name (if any), one per line.
func Golden(res *x86.DecodeResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", res.Entry.Name)
	fmt.Fprintf(&b, "length=%d operand=%d address=%d", res.Length, res.Context.OperandSize, res.Context.AddressSize)
	if res.Context.VectorSize != 0 {
		fmt.Fprintf(&b, " vector=%d", res.Context.VectorSize)
	}
	fmt.Fprintln(&b)

	for _, d := range res.Operands() {
		fmt.Fprintf(&b, "operand %s", d.UID)
		if reg, ok := res.Context.RegisterName(d); ok {
			fmt.Fprintf(&b, " = %s", reg.Name)
		}
		fmt.Fprintln(&b)
	}

	return b.String()
}

// Diff reports the line-oriented difference between a golden-rendered
// decode result and an expected rendering, or "" if they match.
// Callers pass the result through Golden themselves so tests can also
// build the "want" side with Golden against a hand-written DecodeResult.
func Diff(got, want string) string {
	if got == want {
		return ""
	}
	return diff.Format(got, want)
}
