// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// columnTitle turns a Go field name into a column title, e.g. "BaseBus"
// becomes "Base Bus".
func columnTitle(fieldName string) string {
	return strings.Join(camelcase.Split(fieldName), " ")
}

// appendStructs adds one header row built from the scalar fields of the
// element type of items, and one row per item.
func appendStructs(t table.Writer, items interface{}) {
	v := reflect.ValueOf(items)
	elem := v.Type().Elem()

	var header table.Row
	var fields []int
	for i := 0; i < elem.NumField(); i++ {
		f := elem.Field(i)
		switch f.Type.Kind() {
		case reflect.Slice, reflect.Ptr, reflect.Struct:
			continue
		}
		header = append(header, columnTitle(f.Name))
		fields = append(fields, i)
	}
	t.AppendHeader(header)

	for i := 0; i < v.Len(); i++ {
		var row table.Row
		for _, idx := range fields {
			fv := v.Index(i).Field(idx)
			switch fv.Kind() {
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				row = append(row, fmt.Sprintf("0x%X", fv.Uint()))
			default:
				row = append(row, fmt.Sprint(fv.Interface()))
			}
		}
		t.AppendRow(row)
	}
}

// Summary renders the topology as tables.
func (p *Platform) Summary(w io.Writer) {
	if p.OEM != nil {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle("OEM")
		appendStructs(t, []OEM{*p.OEM})
		t.Render()
	}

	if p.IPMI != nil {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle("IPMI")
		appendStructs(t, []IPMI{*p.IPMI})
		t.Render()
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Processors (%d)", len(p.Processors))
	appendStructs(t, p.Processors)
	t.Render()

	t = table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Root Bridges (%d)", len(p.RootBridges))
	appendStructs(t, p.RootBridges)
	t.Render()

	for _, rb := range p.RootBridges {
		if len(rb.Resources) != 0 {
			t := table.NewWriter()
			t.SetOutputMirror(w)
			t.SetTitle("Root Bridge %d Resources", rb.Index)
			appendStructs(t, rb.Resources)
			t.Render()
		}
		if len(rb.RootPorts) != 0 {
			t := table.NewWriter()
			t.SetOutputMirror(w)
			t.SetTitle("Root Bridge %d Root Ports", rb.Index)
			appendStructs(t, rb.RootPorts)
			t.Render()
		}
	}
}
