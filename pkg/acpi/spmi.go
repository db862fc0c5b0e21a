// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acpi

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/linuxboot/amlgen/pkg/aml"
)

// SPMISignature is the signature of the Service Processor Management
// Interface table.
const SPMISignature = "SPMI"

// SPMIRevision is the table revision written into SPMI headers.
const SPMIRevision = 5

// SPMISize is the size of an SPMI table, header included.
const SPMISize = HeaderSize + 29

// IPMIInterfaceType is the kind of IPMI system interface a BMC exposes.
type IPMIInterfaceType uint8

// Possible values of IPMIInterfaceType.
const (
	IPMINone IPMIInterfaceType = iota
	IPMIKCS
	IPMISMIC
	IPMIBT
	IPMISSIF
)

func (t IPMIInterfaceType) String() string {
	switch t {
	case IPMINone:
		return "none"
	case IPMIKCS:
		return "KCS"
	case IPMISMIC:
		return "SMIC"
	case IPMIBT:
		return "BT"
	case IPMISSIF:
		return "SSIF"
	}
	return fmt.Sprintf("IPMIInterfaceType(%d)", uint8(t))
}

// Address space IDs of a generic address.
const (
	SystemMemorySpace uint8 = 0
	SystemIOSpace     uint8 = 1
)

// GenericAddress is an ACPI Generic Address Structure.
type GenericAddress struct {
	AddressSpaceID    uint8
	RegisterBitWidth  uint8
	RegisterBitOffset uint8
	AccessSize        uint8
	Address           uint64
}

// SPMI is the body of a Service Processor Management Interface table.
type SPMI struct {
	InterfaceType         IPMIInterfaceType
	SpecRevision          uint16
	InterruptType         uint8
	GPE                   uint8
	PCIDeviceFlag         uint8
	GlobalSystemInterrupt uint32
	BaseAddress           GenericAddress
	DeviceID              uint32
}

// NewKCSSPMI returns the SPMI body of an IPMI 2.0 interface of type t whose
// registers start at I/O port port.
func NewKCSSPMI(t IPMIInterfaceType, port uint16) SPMI {
	return SPMI{
		InterfaceType: t,
		SpecRevision:  0x0200,
		BaseAddress: GenericAddress{
			AddressSpaceID:   SystemIOSpace,
			RegisterBitWidth: 8,
			Address:          uint64(port),
		},
	}
}

type spmiLayout struct {
	InterfaceType         uint8
	Reserved1             uint8
	SpecRevision          uint16
	InterruptType         uint8
	GPE                   uint8
	Reserved2             uint8
	PCIDeviceFlag         uint8
	GlobalSystemInterrupt uint32
	BaseAddress           GenericAddress
	DeviceID              uint32
	Reserved3             uint8
}

// Marshal returns the complete table with header hdr. The signature and
// revision of hdr are replaced, the checksum is valid.
func (s SPMI) Marshal(hdr aml.TableHeader) ([]byte, error) {
	if s.InterfaceType == IPMINone || s.InterfaceType > IPMISSIF {
		return nil, fmt.Errorf("SPMI: invalid interface type %s", s.InterfaceType)
	}
	hdr.Signature = SPMISignature
	hdr.Revision = SPMIRevision

	var body bytes.Buffer
	if err := binary.Write(&body, binary.LittleEndian, spmiLayout{
		InterfaceType:         uint8(s.InterfaceType),
		Reserved1:             1,
		SpecRevision:          s.SpecRevision,
		InterruptType:         s.InterruptType,
		GPE:                   s.GPE,
		PCIDeviceFlag:         s.PCIDeviceFlag,
		GlobalSystemInterrupt: s.GlobalSystemInterrupt,
		BaseAddress:           s.BaseAddress,
		DeviceID:              s.DeviceID,
	}); err != nil {
		return nil, err
	}

	table, err := hdr.Encode(body.Len())
	if err != nil {
		return nil, fmt.Errorf("SPMI: %w", err)
	}
	table = append(table, body.Bytes()...)
	if err := FixChecksum(table); err != nil {
		return nil, err
	}
	return table, nil
}
