// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssdt

import (
	"fmt"
	"sort"

	"github.com/linuxboot/amlgen/pkg/aml"
	"github.com/linuxboot/amlgen/pkg/platform"
)

// IDs of host bridges.
const (
	PCIExpressHostBridgeID = "PNP0A08"
	PCIHostBridgeID        = "PNP0A03"
	CXLHostBridgeHID       = "ACPI0016"
)

// FCH interrupt routing. The FCH IOAPIC is behind segment 0 bus 0.
const (
	fchDeviceAddress = 0x0014FFFF
	fchFirstGSI      = 16
	fchIOAPICAddress = 0xFEC00000
)

// Methods called by the generated _OSC methods. They must be defined
// elsewhere in the namespace.
const (
	pciOSCMethod = `\_SB.OSCI`
	cxlOSCMethod = `\_SB.OSCX`
)

var producer = aml.AddressFlags{
	Usage:    aml.ResourceProducer,
	Decode:   aml.PosDecode,
	MinFixed: true,
	MaxFixed: true,
}

// bridgeName returns PCI0-PCIF and then PC10-PCFF, so that PCI0 always
// exists.
func bridgeName(prefix string, uid int) string {
	if uid < 0x10 {
		return fmt.Sprintf("%s%X", prefix, uid)
	}
	return fmt.Sprintf("%s%02X", prefix[:2], uid)
}

// PCI describes every root bridge of p as a Device under \_SB. PCI host
// bridges come first, ordered by segment and base bus, then CXL host
// bridges.
//
// Interrupts are routed on a running global system interrupt base, which
// starts at 0 and moves past the IOAPIC of each bridge in turn.
func PCI(b *aml.Builder, p *platform.Platform) error {
	bridges := append([]platform.RootBridge(nil), p.RootBridges...)
	sort.SliceStable(bridges, func(i, j int) bool { return bridges[i].SortKey() < bridges[j].SortKey() })

	if err := b.StartScope(`\_SB`); err != nil {
		return err
	}
	var (
		gsi uint64
		uid int
	)
	for _, rb := range bridges {
		if rb.CXL {
			continue
		}
		next, err := pciBridge(b, p, rb, uid, gsi)
		if err != nil {
			return fmt.Errorf("root bridge %d: %w", rb.Index, err)
		}
		gsi = next
		uid++
	}
	uid = 0
	for _, rb := range bridges {
		if !rb.CXL {
			continue
		}
		if err := cxlBridge(b, rb, uid); err != nil {
			return fmt.Errorf("CXL root bridge %d: %w", rb.Index, err)
		}
		uid++
	}
	return b.CloseScope()
}

func isLegacyBridge(rb platform.RootBridge) bool {
	return rb.Segment == 0 && rb.BaseBus == 0
}

// pciBridge appends one PCI host bridge and returns the global system
// interrupt base of the next bridge.
func pciBridge(b *aml.Builder, p *platform.Platform, rb platform.RootBridge, uid int, gsi uint64) (uint64, error) {
	if err := b.StartDevice(bridgeName("PCI", uid)); err != nil {
		return 0, err
	}
	if err := nameEisaID(b, "_HID", PCIExpressHostBridgeID); err != nil {
		return 0, err
	}
	if err := nameEisaID(b, "_CID", PCIHostBridgeID); err != nil {
		return 0, err
	}
	for _, n := range []struct {
		name  string
		value uint64
	}{
		{"_UID", uint64(uid)},
		{"_BBN", uint64(rb.BaseBus)},
		{"_SEG", uint64(rb.Segment)},
		{"_PXM", uint64(rb.SocketID)},
	} {
		if err := name(b, n.name, n.value); err != nil {
			return 0, err
		}
	}
	if err := currentResources(b, rb); err != nil {
		return 0, err
	}

	entries := bridgeRouting(p, rb, &gsi)
	if len(entries) != 0 {
		if err := routingTable(b, entries); err != nil {
			return 0, err
		}
	}
	for _, rp := range rb.RootPorts {
		if !rp.Present {
			continue
		}
		if err := rootPort(b, rp, gsi); err != nil {
			return 0, fmt.Errorf("root port %X.%X: %w", rp.Device, rp.Function, err)
		}
	}

	if err := oscMethod(b, pciOSCMethod); err != nil {
		return 0, err
	}
	if err := b.CloseDevice(); err != nil {
		return 0, err
	}
	return gsi + uint64(rb.IOAPICEntries), nil
}

func cxlBridge(b *aml.Builder, rb platform.RootBridge, uid int) error {
	if err := b.StartDevice(bridgeName("CXL", uid)); err != nil {
		return err
	}
	if err := nameString(b, "_HID", CXLHostBridgeHID); err != nil {
		return err
	}

	if err := b.StartName("_CID"); err != nil {
		return err
	}
	if err := b.StartPackage(2); err != nil {
		return err
	}
	for _, id := range []string{PCIHostBridgeID, PCIExpressHostBridgeID} {
		if err := b.EisaID(id); err != nil {
			return err
		}
	}
	if err := b.ClosePackage(); err != nil {
		return err
	}
	if err := b.CloseName(); err != nil {
		return err
	}

	for _, n := range []struct {
		name  string
		value uint64
	}{
		{"_ADR", uint64(rb.Address)},
		{"_UID", uint64(uid)},
		{"_BBN", uint64(rb.BaseBus)},
		{"_SEG", uint64(rb.Segment)},
		{"_PXM", uint64(rb.SocketID)},
	} {
		if err := name(b, n.name, n.value); err != nil {
			return err
		}
	}
	if err := currentResources(b, rb); err != nil {
		return err
	}
	if err := oscMethod(b, cxlOSCMethod); err != nil {
		return err
	}
	return b.CloseDevice()
}

// currentResources appends Name(_CRS, ResourceTemplate() {...}) with the
// ranges decoded by rb.
func currentResources(b *aml.Builder, rb platform.RootBridge) error {
	if err := b.StartName("_CRS"); err != nil {
		return err
	}
	if err := b.StartResourceTemplate(); err != nil {
		return err
	}
	for _, r := range rb.Resources {
		rng := aml.AddressRange{
			Min:         r.Min,
			Max:         r.Max,
			Translation: r.Translation,
			Length:      r.Len(),
		}
		var err error
		switch r.Type {
		case platform.ResourceBus:
			err = b.WordBusNumber(producer, rng)
		case platform.ResourceIO:
			err = b.WordIO(producer, aml.EntireRange, rng)
		case platform.ResourceMemory:
			err = b.QWordMemory(producer, aml.NonCacheable, aml.ReadWrite, rng)
		default:
			err = fmt.Errorf("unknown resource type %q", r.Type)
		}
		if err != nil {
			return err
		}
	}
	if !rb.CXL && isLegacyBridge(rb) {
		if err := legacyResources(b); err != nil {
			return err
		}
	}
	if err := b.CloseResourceTemplate(); err != nil {
		return err
	}
	return b.CloseName()
}

// legacyResources appends the legacy IO ports, the IOAPIC and HPET window,
// and the range above the local APIC.
func legacyResources(b *aml.Builder) error {
	subtractive := producer
	subtractive.Decode = aml.SubDecode
	if err := b.WordIO(subtractive, aml.EntireRange, aml.AddressRange{Max: 0x0FFF, Length: 0x1000}); err != nil {
		return err
	}
	if err := b.QWordMemory(producer, aml.NonCacheable, aml.ReadWrite, aml.AddressRange{
		Min:    fchIOAPICAddress,
		Max:    0xFEDFFFFF,
		Length: 0x00200000,
	}); err != nil {
		return err
	}
	return b.QWordMemory(producer, aml.NonCacheable, aml.ReadWrite, aml.AddressRange{
		Min:    0xFEE01000,
		Max:    0xFEFFFFFF,
		Length: 0x1FF000,
	})
}

// routingEntry is one Package(){Address, Pin, Source, SourceIndex} of a
// _PRT. Source is always 0, so the entry refers to a global system
// interrupt.
type routingEntry struct {
	Address uint64
	Pin     uint64
	GSI     uint64
}

// bridgeRouting returns the _PRT entries of rb. On the legacy bridge the
// FCH entries come first and *gsi moves past the FCH IOAPIC.
func bridgeRouting(p *platform.Platform, rb platform.RootBridge, gsi *uint64) []routingEntry {
	var entries []routingEntry
	if isLegacyBridge(rb) {
		for pin := uint64(0); pin < 4; pin++ {
			entries = append(entries, routingEntry{
				Address: fchDeviceAddress,
				Pin:     pin,
				GSI:     *gsi + fchFirstGSI + pin,
			})
		}
		*gsi += uint64(p.FCHIOAPICEntries)
	}
	for _, rp := range rb.RootPorts {
		if !rp.Present || rp.Function < 1 || rp.Function > 4 {
			continue
		}
		entries = append(entries, routingEntry{
			Address: uint64(rp.Device)<<16 | 0xFFFF,
			Pin:     uint64(rp.Function - 1),
			GSI:     *gsi + uint64(rp.BridgeInterrupt),
		})
	}
	return entries
}

// routingTable appends Name(_PRT, Package() {...}).
func routingTable(b *aml.Builder, entries []routingEntry) error {
	if err := b.StartName("_PRT"); err != nil {
		return err
	}
	if err := b.StartPackage(0); err != nil {
		return err
	}
	for _, e := range entries {
		if err := b.StartPackage(0); err != nil {
			return err
		}
		b.Integer(e.Address)
		b.Integer(e.Pin)
		b.Zero()
		b.Integer(e.GSI)
		if err := b.ClosePackage(); err != nil {
			return err
		}
	}
	if err := b.ClosePackage(); err != nil {
		return err
	}
	return b.CloseName()
}

func rootPort(b *aml.Builder, rp platform.RootPort, gsi uint64) error {
	if len(rp.EndpointInterrupts) != 4 {
		return fmt.Errorf("need 4 endpoint interrupts, got %d", len(rp.EndpointInterrupts))
	}
	if err := b.StartDevice(fmt.Sprintf("RP%X%X", rp.Device, rp.Function)); err != nil {
		return err
	}
	if err := name(b, "_ADR", uint64(rp.Device)<<16+uint64(rp.Function)); err != nil {
		return err
	}
	if rp.SlotNumber != 0 {
		if err := name(b, "_SUN", uint64(rp.SlotNumber)); err != nil {
			return err
		}
	}
	entries := make([]routingEntry, 0, len(rp.EndpointInterrupts))
	for pin, irq := range rp.EndpointInterrupts {
		entries = append(entries, routingEntry{
			Address: 0xFFFF,
			Pin:     uint64(pin),
			GSI:     gsi + uint64(irq),
		})
	}
	if err := routingTable(b, entries); err != nil {
		return err
	}
	return b.CloseDevice()
}

// oscMethod appends
//
//	Method (_OSC, 4, NotSerialized, 4) {
//	  Return (target(Arg0, Arg1, Arg2, Arg3))
//	}
func oscMethod(b *aml.Builder, target string) error {
	if err := b.StartMethod("_OSC", 4, aml.NotSerialized, 4); err != nil {
		return err
	}
	if err := b.StartReturn(); err != nil {
		return err
	}
	if err := b.NameString(target); err != nil {
		return err
	}
	for i := 0; i < 4; i++ {
		if err := b.Arg(i); err != nil {
			return err
		}
	}
	if err := b.CloseReturn(); err != nil {
		return err
	}
	return b.CloseMethod()
}
