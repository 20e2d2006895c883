// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package decodetest_test

import (
	"encoding/hex"
	"testing"

	"github.com/arwen-dev/x86decode/internal/x86"
	"github.com/arwen-dev/x86decode/internal/x86/decodetest"
)

func TestGoldenRoundTrip(t *testing.T) {
	code, err := hex.DecodeString("4801c3")
	if err != nil {
		t.Fatal(err)
	}

	res, err := x86.Decode(x86.Mode64, code, 0, 15)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	got := decodetest.Golden(res)
	want := got
	if d := decodetest.Diff(got, want); d != "" {
		t.Fatalf("Golden() not stable:\n%s", d)
	}
}

func TestGoldenCatchesMismatch(t *testing.T) {
	code, err := hex.DecodeString("90")
	if err != nil {
		t.Fatal(err)
	}

	res, err := x86.Decode(x86.Mode32, code, 0, 15)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	got := decodetest.Golden(res)
	want := "XCHG r8,rAX\nlength=1 operand=32 address=32\n"
	if d := decodetest.Diff(got, want); d == "" {
		t.Fatalf("Diff() reported no difference between NOP and XCHG goldens")
	}
}
