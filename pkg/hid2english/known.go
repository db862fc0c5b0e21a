// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hid2english

// IDs maps device identification strings, as used in _HID and _CID, to
// their English names.
var IDs = map[string]string{
	"ACPI0003": "Power Source Device",
	"ACPI0004": "Module Device",
	"ACPI0007": "Processor Device",
	"ACPI0010": "Processor Container Device",
	"ACPI0013": "Generic Event Device",
	"ACPI0016": "CXL Host Bridge",
	"ACPI0017": "CXL Root Object",
	"PNP0000":  "8259 Interrupt Controller",
	"PNP0100":  "System Timer",
	"PNP0103":  "HPET System Timer",
	"PNP0200":  "DMA Controller",
	"PNP0303":  "Keyboard Controller",
	"PNP0501":  "16550 Serial Port",
	"PNP0A03":  "PCI Host Bridge",
	"PNP0A08":  "PCI Express Host Bridge",
	"PNP0B00":  "Real Time Clock",
	"PNP0C01":  "System Board",
	"PNP0C02":  "Motherboard Resources",
	"PNP0C09":  "Embedded Controller",
	"PNP0C0A":  "Control Method Battery",
	"PNP0C0C":  "Power Button",
	"PNP0C0D":  "Lid Device",
	"PNP0C0E":  "Sleep Button",
	"PNP0C0F":  "PCI Interrupt Link",
	"PNP0C14":  "WMI",
	"PNP0C80":  "Memory Device",
}
