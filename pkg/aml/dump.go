// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aml

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

const dumpColumns = 16

func isDumpPrintable(c byte) bool {
	return isDigitChar(c) || (c >= 'A' && c <= 'Z') || c == '\\' || c == '_' || c == '^'
}

// HexDump writes data as a table of 16 bytes per row with an offset column
// and an ASCII column showing name characters.
func HexDump(w io.Writer, data []byte) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{"Offset"}
	for i := 0; i < dumpColumns; i++ {
		header = append(header, fmt.Sprintf("%02X", i))
	}
	t.AppendHeader(append(header, "ASCII"))

	for off := 0; off < len(data); off += dumpColumns {
		end := off + dumpColumns
		if end > len(data) {
			end = len(data)
		}
		row := table.Row{fmt.Sprintf("%08X", off)}
		var ascii strings.Builder
		for i := off; i < off+dumpColumns; i++ {
			if i >= end {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprintf("%02X", data[i]))
			if isDumpPrintable(data[i]) {
				ascii.WriteByte(data[i])
			} else {
				ascii.WriteByte('.')
			}
		}
		t.AppendRow(append(row, ascii.String()))
	}
	t.Render()
}

// Dump writes a diagnostic view of the builder state: completed objects
// with their bytes and open terms with their identifiers, in the order a
// pre-order walk of the tree under construction would visit them. It does
// not modify the builder.
func (b *Builder) Dump(w io.Writer) {
	for depth, f := range b.frames {
		if depth > 0 {
			fmt.Fprintf(w, "%sObject: %s %q Completed=false\n", strings.Repeat("  ", depth-1), f.term, f.ident)
		}
		for _, child := range f.children() {
			fmt.Fprintf(w, "%sObject: Completed=true Size=%s\n", strings.Repeat("  ", depth), humanize.IBytes(uint64(len(child))))
			HexDump(w, child)
		}
	}
}
