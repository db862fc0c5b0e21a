// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hid2english

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"text/template"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/transform"
)

func TestTransformer(t *testing.T) {
	// transform.NewReader internally build 4096 long buffers so
	// prepare a string just longer than that to trigger boundary checks
	longString := strings.Repeat("ghijklmnopqrstuvwxy ", 205)

	tests := []struct {
		name   string
		input  string
		tmpl   string
		output string
	}{
		{
			name:   "empty",
			input:  "",
			tmpl:   "",
			output: "",
		},
		{
			name:   "single ID",
			input:  "PNP0A08",
			tmpl:   "{{.ID}}",
			output: "PNP0A08",
		},
		{
			name:   "replace with name",
			input:  "ACPI0007",
			tmpl:   "{{.Name}}",
			output: "Processor Device",
		},
		{
			name:   "name and ID",
			input:  `Name (_HID, "ACPI0016")`,
			tmpl:   "{{.ID}} ({{.Name}})",
			output: `Name (_HID, "ACPI0016 (CXL Host Bridge)")`,
		},
		{
			name:   "unknown name and ID",
			input:  "LNXB0001",
			tmpl:   "{{.ID}} ({{.Name}})",
			output: "LNXB0001 (UNKNOWN)",
		},
		{
			name:   "advanced formatting",
			input:  "LNXB0001",
			tmpl:   "{{if .IsKnown}}KNOWN{{else}}UNKNOWN{{end}}",
			output: "UNKNOWN",
		},
		{
			name:   "not an ID",
			input:  "AMD_EDK2 PNP0A08X xPNP0A08 acpi0007",
			tmpl:   "{{.Name}}",
			output: "AMD_EDK2 PNP0A08X xPNP0A08 acpi0007",
		},
		{
			name: "multiple IDs",
			input: `
Device (PCI0) _HID PNP0A08 _CID PNP0A03
Device (C000) _HID ACPI0007
			`,
			tmpl: "{{.ID}} ({{.Name}})",
			output: `
Device (PCI0) _HID PNP0A08 (PCI Express Host Bridge) _CID PNP0A03 (PCI Host Bridge)
Device (C000) _HID ACPI0007 (Processor Device)
			`,
		},
		{
			name:   "handle ErrShortDst",
			input:  strings.Repeat("PNP0A03 ", 600),
			tmpl:   "{{.ID}} ({{.Name}})",
			output: strings.Repeat("PNP0A03 (PCI Host Bridge) ", 600),
		},
		{
			name:   "long buffer with ID cut by 4096 boundary",
			input:  longString + "ACPI0007 and ACPI0016",
			tmpl:   "{{.ID}} ({{.Name}})",
			output: longString + "ACPI0007 (Processor Device) and ACPI0016 (CXL Host Bridge)",
		},
		{
			name:   "very long buffer",
			input:  longString + longString + "PNP0A08",
			tmpl:   "{{.ID}} ({{.Name}})",
			output: longString + longString + "PNP0A08 (PCI Express Host Bridge)",
		},
		{
			name:   "4096 buffer with ID at end",
			input:  longString[:4096-8] + "ACPI0007",
			tmpl:   "{{.ID}} ({{.Name}})",
			output: longString[:4096-8] + "ACPI0007 (Processor Device)",
		},
		{
			name:   "4096 buffer with longer word at end",
			input:  longString[:4096-8] + "ACPI0007X",
			tmpl:   "{{.ID}} ({{.Name}})",
			output: longString[:4096-8] + "ACPI0007X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := bytes.NewBufferString(tt.input)
			tmpl, err := template.New("hid2english").Parse(tt.tmpl)
			require.NoError(t, err)
			trans := New(NewTemplateMapper(tmpl))

			output := &bytes.Buffer{}
			_, err = io.Copy(output, transform.NewReader(input, trans))
			require.NoError(t, err)
			require.Equal(t, tt.output, output.String())
		})
	}
}

func TestKnownIDsMatch(t *testing.T) {
	for id := range IDs {
		require.Equal(t, id, idRegex.FindString(" "+id+" "), id)
	}
}
