// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package x86 classifies x86 and x86-64 instruction byte streams into
// static instruction templates.
//
// The package is split into three parts: the template store (the static
// tables describing every supported encoding), the opcode index (a dense
// lookup from a stable opcode identifier to its template) and the resolver
// (the traversal procedure that walks the tables for a given byte stream).
// Encoding (turning a template and operand values back into machine code)
// is out of scope; see DESIGN.md.
package x86
