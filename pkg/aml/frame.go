// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aml

// Term identifies the kind of an AML term that can be open on the builder
// stack.
type Term int

// Terms with a Start/Close construction contract.
const (
	TermNone Term = iota
	TermRoot
	TermDefinitionBlock
	TermScope
	TermDevice
	TermMethod
	TermName
	TermBuffer
	TermPackage
	TermReturn
	TermStore
	TermCreateDWordField
	TermResourceTemplate
)

var termNames = map[Term]string{
	TermNone:             "None",
	TermRoot:             "Root",
	TermDefinitionBlock:  "DefinitionBlock",
	TermScope:            "Scope",
	TermDevice:           "Device",
	TermMethod:           "Method",
	TermName:             "Name",
	TermBuffer:           "Buffer",
	TermPackage:          "Package",
	TermReturn:           "Return",
	TermStore:            "Store",
	TermCreateDWordField: "CreateDWordField",
	TermResourceTemplate: "ResourceTemplate",
}

func (t Term) String() string {
	if name, ok := termNames[t]; ok {
		return name
	}
	return "Term(unknown)"
}

// frame is one open term. Every child appended while the frame is on top
// of the stack is merged into body right away; ends remembers where each
// child stops so the child count and the per-child dump stay available.
type frame struct {
	term  Term
	ident string

	// head holds fields emitted at Start (a NameString, method flags),
	// which precede the children but do not count as children.
	head []byte
	body []byte
	ends []int

	declared uint64
	header   *TableHeader
}

func (f *frame) appendChild(b []byte) {
	f.body = append(f.body, b...)
	f.ends = append(f.ends, len(f.body))
}

func (f *frame) childCount() int {
	return len(f.ends)
}

// children returns the merged children as separate slices of body.
func (f *frame) children() [][]byte {
	out := make([][]byte, 0, len(f.ends))
	start := 0
	for _, end := range f.ends {
		out = append(out, f.body[start:end])
		start = end
	}
	return out
}

// collapse returns the concatenation of all children in append order and
// how many there were.
func (f *frame) collapse() ([]byte, int) {
	return f.body, len(f.ends)
}
