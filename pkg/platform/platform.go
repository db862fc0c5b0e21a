// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package platform describes the processor and PCI topology of a machine,
// the data that firmware services report and table generators consume.
package platform

import (
	"github.com/linuxboot/amlgen/pkg/aml"
)

// Defaults for optional settings.
const (
	DefaultOEMID            = "AMD"
	DefaultOEMTableID       = "AMD_EDK2"
	DefaultCreatorID        = "AMLG"
	DefaultOEMRevision      = 1
	DefaultCreatorRevision  = 2
	DefaultScopeName        = "C"
	DefaultFCHIOAPICEntries = 24
	DefaultKCSPort          = 0x0CA2
)

// Platform is the complete topology description.
type Platform struct {
	OEM  *OEM         `hcl:"oem,block" yaml:"oem"`
	CPU  *CPUSettings `hcl:"cpu,block" yaml:"cpu"`
	IPMI *IPMI        `hcl:"ipmi,block" yaml:"ipmi"`

	// FCHIOAPICEntries is the redirection entry count of the FCH IOAPIC,
	// which serves the legacy interrupts of segment 0 bus 0.
	FCHIOAPICEntries uint32 `hcl:"fch_ioapic_entries,optional" yaml:"fch_ioapic_entries"`

	Processors  []Processor  `hcl:"processor,block" yaml:"processors"`
	RootBridges []RootBridge `hcl:"root_bridge,block" yaml:"root_bridges"`
}

// OEM is the identity written into generated table headers. OEMTableID
// also selects the installed table generated AML is appended to.
type OEM struct {
	OEMID           string `hcl:"oem_id,optional" yaml:"oem_id"`
	OEMTableID      string `hcl:"oem_table_id,optional" yaml:"oem_table_id"`
	OEMRevision     uint32 `hcl:"oem_revision,optional" yaml:"oem_revision"`
	CreatorID       string `hcl:"creator_id,optional" yaml:"creator_id"`
	CreatorRevision uint32 `hcl:"creator_revision,optional" yaml:"creator_revision"`
}

// CPUSettings controls how processor devices are named and numbered.
type CPUSettings struct {
	// ScopeName is the first character of every processor device name.
	ScopeName string `hcl:"scope_name,optional" yaml:"scope_name"`
	// Container, if set, is a Device under \_SB holding the processors.
	Container string `hcl:"container,optional" yaml:"container"`
	// Sockets is the number of sockets; zero means one past the highest
	// socket used by a processor.
	Sockets uint32 `hcl:"sockets,optional" yaml:"sockets"`
	// UIDShift is the extended topology shift applied to the socket number
	// when computing _UID.
	UIDShift uint32 `hcl:"uid_shift,optional" yaml:"uid_shift"`
}

// IPMI describes the system interface of the baseboard management
// controller, published in the SPMI table.
type IPMI struct {
	// InterfaceType is the IPMI interface type: 1 KCS, 2 SMIC, 3 BT,
	// 4 SSIF. Zero disables the SPMI table.
	InterfaceType uint8 `hcl:"interface_type" yaml:"interface_type"`
	// KCSPort is the I/O port of the interface registers.
	KCSPort uint16 `hcl:"kcs_port,optional" yaml:"kcs_port"`
}

// Enabled reports whether an IPMI interface is present.
func (i *IPMI) Enabled() bool {
	return i != nil && i.InterfaceType != 0
}

// Processor is one logical processor.
type Processor struct {
	Index   uint32 `hcl:"index" yaml:"index"`
	Socket  uint32 `hcl:"socket,optional" yaml:"socket"`
	Die     uint32 `hcl:"die,optional" yaml:"die"`
	Tile    uint32 `hcl:"tile,optional" yaml:"tile"`
	Complex uint32 `hcl:"complex,optional" yaml:"complex"`
	Core    uint32 `hcl:"core,optional" yaml:"core"`
	Thread  uint32 `hcl:"thread,optional" yaml:"thread"`
	BSP     bool   `hcl:"bsp,optional" yaml:"bsp"`
	Enabled bool   `hcl:"enabled,optional" yaml:"enabled"`
	Healthy bool   `hcl:"healthy,optional" yaml:"healthy"`
}

// Valid reports whether any status flag is set. Processors without status
// are not described.
func (p Processor) Valid() bool {
	return p.BSP || p.Enabled || p.Healthy
}

// ResourceType is the kind of an address range a root bridge decodes.
type ResourceType string

// Possible values of ResourceType.
const (
	ResourceBus    ResourceType = "bus"
	ResourceIO     ResourceType = "io"
	ResourceMemory ResourceType = "mem"
)

// Resource is an address range decoded by a root bridge.
type Resource struct {
	Type        ResourceType `hcl:"type" yaml:"type"`
	Min         uint64       `hcl:"min" yaml:"min"`
	Max         uint64       `hcl:"max" yaml:"max"`
	Translation uint64       `hcl:"translation,optional" yaml:"translation"`
	Length      uint64       `hcl:"length,optional" yaml:"length"`
}

// Len returns Length, or the size of the range if Length is unset.
func (r Resource) Len() uint64 {
	if r.Length != 0 {
		return r.Length
	}
	return r.Max - r.Min + 1
}

// RootBridge is a PCI host bridge, or a CXL host bridge if CXL is set.
type RootBridge struct {
	Index    uint32 `hcl:"index" yaml:"index"`
	Segment  uint32 `hcl:"segment,optional" yaml:"segment"`
	BaseBus  uint32 `hcl:"base_bus,optional" yaml:"base_bus"`
	SocketID uint32 `hcl:"socket_id,optional" yaml:"socket_id"`
	CXL      bool   `hcl:"cxl,optional" yaml:"cxl"`
	// Address is the _ADR of a CXL host bridge.
	Address uint32 `hcl:"address,optional" yaml:"address"`
	// IOAPICEntries is the redirection entry count of the IOAPIC behind
	// this bridge.
	IOAPICEntries uint32 `hcl:"ioapic_entries,optional" yaml:"ioapic_entries"`

	Resources []Resource `hcl:"resource,block" yaml:"resources"`
	RootPorts []RootPort `hcl:"root_port,block" yaml:"root_ports"`
}

// SortKey orders root bridges by segment, then base bus.
func (rb RootBridge) SortKey() uint64 {
	return uint64(rb.Segment)*256 + uint64(rb.BaseBus)
}

// RootPort is a PCIe root port below a root bridge.
type RootPort struct {
	Device          uint8  `hcl:"device" yaml:"device"`
	Function        uint8  `hcl:"function" yaml:"function"`
	Present         bool   `hcl:"present,optional" yaml:"present"`
	SlotNumber      uint32 `hcl:"slot,optional" yaml:"slot"`
	BridgeInterrupt uint32 `hcl:"bridge_interrupt,optional" yaml:"bridge_interrupt"`
	// EndpointInterrupts are the IOAPIC inputs of INTA..INTD behind the
	// port.
	EndpointInterrupts []uint32 `hcl:"endpoint_interrupts,optional" yaml:"endpoint_interrupts"`
}

// SetDefaults fills in every unset optional setting.
func (p *Platform) SetDefaults() {
	if p.OEM == nil {
		p.OEM = &OEM{}
	}
	if p.OEM.OEMID == "" {
		p.OEM.OEMID = DefaultOEMID
	}
	if p.OEM.OEMTableID == "" {
		p.OEM.OEMTableID = DefaultOEMTableID
	}
	if p.OEM.CreatorID == "" {
		p.OEM.CreatorID = DefaultCreatorID
	}
	if p.OEM.OEMRevision == 0 {
		p.OEM.OEMRevision = DefaultOEMRevision
	}
	if p.OEM.CreatorRevision == 0 {
		p.OEM.CreatorRevision = DefaultCreatorRevision
	}

	if p.CPU == nil {
		p.CPU = &CPUSettings{}
	}
	if p.CPU.ScopeName == "" {
		p.CPU.ScopeName = DefaultScopeName
	}
	if p.CPU.Sockets == 0 {
		for _, proc := range p.Processors {
			if proc.Socket+1 > p.CPU.Sockets {
				p.CPU.Sockets = proc.Socket + 1
			}
		}
	}

	if p.FCHIOAPICEntries == 0 {
		p.FCHIOAPICEntries = DefaultFCHIOAPICEntries
	}

	if p.IPMI != nil && p.IPMI.KCSPort == 0 {
		p.IPMI.KCSPort = DefaultKCSPort
	}
}

// TableHeader returns the header of a new table with the given signature
// and OEM table ID, carrying the platform OEM identity.
func (p *Platform) TableHeader(signature, oemTableID string) aml.TableHeader {
	oem := p.OEM
	if oem == nil {
		oem = &OEM{}
	}
	return aml.TableHeader{
		Signature:       signature,
		Revision:        2,
		OEMID:           oem.OEMID,
		OEMTableID:      oemTableID,
		OEMRevision:     oem.OEMRevision,
		CreatorID:       oem.CreatorID,
		CreatorRevision: oem.CreatorRevision,
	}
}
