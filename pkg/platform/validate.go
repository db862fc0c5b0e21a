// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/linuxboot/amlgen/pkg/aml"
)

const (
	maxPCIDevice   = 31
	maxPCIFunction = 7
	maxProcessors  = 0x1000
	pciPins        = 4
	maxIPMIType    = 4
)

// Validate checks the topology for everything the generators rely on and
// reports all problems at once.
func (p *Platform) Validate() error {
	var result *multierror.Error
	add := func(format string, args ...interface{}) {
		result = multierror.Append(result, fmt.Errorf(format, args...))
	}

	if p.OEM != nil {
		if len(p.OEM.OEMID) > aml.OEMIDLength {
			add("OEM ID %q is longer than %d characters", p.OEM.OEMID, aml.OEMIDLength)
		}
		if len(p.OEM.OEMTableID) > aml.OEMTableIDLength {
			add("OEM table ID %q is longer than %d characters", p.OEM.OEMTableID, aml.OEMTableIDLength)
		}
		if p.OEM.CreatorID != "" && len(p.OEM.CreatorID) != aml.CreatorIDLength {
			add("creator ID %q must be %d characters", p.OEM.CreatorID, aml.CreatorIDLength)
		}
	}

	if p.CPU != nil {
		if len(p.CPU.ScopeName) != 1 {
			add("CPU scope name %q must be a single character", p.CPU.ScopeName)
		} else if _, err := aml.NameSeg(p.CPU.ScopeName); err != nil {
			add("CPU scope name: %w", err)
		}
		if p.CPU.Container != "" {
			if _, err := aml.NameSeg(p.CPU.Container); err != nil {
				add("CPU container: %w", err)
			}
		}
		if p.CPU.UIDShift > 31 {
			add("CPU UID shift %d is larger than 31", p.CPU.UIDShift)
		}
	}

	if p.IPMI != nil && p.IPMI.InterfaceType > maxIPMIType {
		add("unknown IPMI interface type %d", p.IPMI.InterfaceType)
	}

	seenProc := map[uint32]bool{}
	for _, proc := range p.Processors {
		if seenProc[proc.Index] {
			add("processor %d is described twice", proc.Index)
		}
		seenProc[proc.Index] = true
		if proc.Index >= maxProcessors {
			add("processor index %d does not fit a device name", proc.Index)
		}
		if p.CPU != nil && p.CPU.Sockets != 0 && proc.Socket >= p.CPU.Sockets {
			add("processor %d is on socket %d of %d", proc.Index, proc.Socket, p.CPU.Sockets)
		}
	}

	seenBridge := map[uint64]uint32{}
	for _, rb := range p.RootBridges {
		if other, ok := seenBridge[rb.SortKey()]; ok {
			add("root bridges %d and %d share segment %d bus %d", other, rb.Index, rb.Segment, rb.BaseBus)
		}
		seenBridge[rb.SortKey()] = rb.Index
		if rb.BaseBus > 0xFF {
			add("root bridge %d: base bus 0x%X is out of range", rb.Index, rb.BaseBus)
		}
		for i, r := range rb.Resources {
			switch r.Type {
			case ResourceBus, ResourceIO:
				if r.Max > 0xFFFF {
					add("root bridge %d resource %d: %s range 0x%X-0x%X exceeds 16 bits", rb.Index, i, r.Type, r.Min, r.Max)
				}
			case ResourceMemory:
			default:
				add("root bridge %d resource %d: unknown type %q", rb.Index, i, r.Type)
			}
			if r.Min > r.Max {
				add("root bridge %d resource %d: minimum 0x%X above maximum 0x%X", rb.Index, i, r.Min, r.Max)
			}
		}
		for _, rp := range rb.RootPorts {
			if rp.Device > maxPCIDevice || rp.Function > maxPCIFunction {
				add("root bridge %d: invalid root port %02X.%X", rb.Index, rp.Device, rp.Function)
			}
			if rp.Present && len(rp.EndpointInterrupts) != pciPins {
				add("root bridge %d: root port %02X.%X needs %d endpoint interrupts, has %d",
					rb.Index, rp.Device, rp.Function, pciPins, len(rp.EndpointInterrupts))
			}
		}
	}

	return result.ErrorOrNil()
}
