// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Command x86decode prints debugging information about how the
// x86decode resolver classifies a hex-encoded instruction byte stream.
package main

import (
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/arwen-dev/x86decode/internal/x86"
)

var program = filepath.Base(os.Args[0])

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer, args []string) error {
	flags := flag.NewFlagSet(program, flag.ExitOnError)

	var mode int
	flags.IntVar(&mode, "mode", 64, "CPU mode to decode in (32 or 64).")

	var maxLen int
	flags.IntVar(&maxLen, "len", x86.MaxInstructionLength, "Maximum instruction length to consider.")

	flags.Usage = func() {
		log.Printf("Usage:\n  %s [OPTIONS] HEXBYTES...\n\n", program)
		flags.PrintDefaults()
		os.Exit(2)
	}

	if err := flags.Parse(args); err != nil {
		flags.Usage()
	}

	m, err := cpuMode(mode)
	if err != nil {
		return err
	}

	sequences := flags.Args()
	if len(sequences) == 0 {
		flags.Usage()
	}

	var buf bytes.Buffer
	for i, seq := range sequences {
		if i > 0 {
			fmt.Fprintln(&buf)
		}
		if err := decodeOne(&buf, m, seq, maxLen); err != nil {
			fmt.Fprintf(&buf, "%s: %v\n", seq, err)
		}
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// cpuMode only accepts 32 and 64: the resolver treats 16-bit mode
// identically to 32-bit (see Context.resolveOperandSize), so offering
// it as a distinct CLI choice would silently lie about what it does.
func cpuMode(bits int) (x86.Mode, error) {
	switch bits {
	case 32:
		return x86.Mode32, nil
	case 64:
		return x86.Mode64, nil
	}
	return x86.Mode{}, fmt.Errorf("unrecognised CPU mode: %d (want 32 or 64)", bits)
}

// decodeOne decodes a single whitespace-separated hex byte sequence and
// prints the resolved template, its operands and the bytes consumed.
func decodeOne(w io.Writer, mode x86.Mode, hexBytes string, maxLen int) error {
	raw := strings.ReplaceAll(strings.TrimSpace(hexBytes), " ", "")
	code, err := hex.DecodeString(raw)
	if err != nil {
		return fmt.Errorf("invalid hex: %v", err)
	}

	res, err := x86.Decode(mode, code, 0, maxLen)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %s\n", hexBytes, res.Entry.Name)
	fmt.Fprintf(w, "	Opcode:     %s\n", res.Entry.Opcode)
	fmt.Fprintf(w, "	Length:     %d\n", res.Length)
	fmt.Fprintf(w, "	OperandSize: %d\n", res.Context.OperandSize)
	fmt.Fprintf(w, "	AddressSize: %d\n", res.Context.AddressSize)
	if res.Context.VectorSize != 0 {
		fmt.Fprintf(w, "	VectorSize: %d\n", res.Context.VectorSize)
	}

	ops := res.Operands()
	if len(ops) == 0 {
		return nil
	}

	fmt.Fprintf(w, "	Operands:\n")
	for _, d := range ops {
		fmt.Fprintf(w, "		%s", d.UID)
		if reg, ok := res.Context.RegisterName(d); ok {
			fmt.Fprintf(w, " = %s", reg.Name)
		}
		fmt.Fprintln(w)
	}

	return nil
}
