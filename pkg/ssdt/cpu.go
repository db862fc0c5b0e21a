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

// _STA bits.
const (
	staPresent   = 1 << 0
	staEnabled   = 1 << 1
	staShownInUI = 1 << 2
	staHealthy   = 1 << 3
)

// ProcessorHID is the _HID of a processor device.
const ProcessorHID = "ACPI0007"

func processorStatus(proc platform.Processor) uint64 {
	sta := uint64(staPresent | staShownInUI)
	if proc.Enabled {
		sta |= staEnabled
	}
	if proc.Healthy {
		sta |= staHealthy
	}
	return sta
}

// CPU describes every processor of p as a Device under \_SB, optionally
// inside a container Device, socket by socket.
//
//	Scope (\_SB) {
//	  Device (C000) {
//	    Name (_HID, "ACPI0007")
//	    Name (_UID, 0)
//	    Method (_STA) { Return (0x0F) }
//	    Name (PACK, 0) ...
//	  }
//	}
func CPU(b *aml.Builder, p *platform.Platform) error {
	procs := append([]platform.Processor(nil), p.Processors...)
	sort.SliceStable(procs, func(i, j int) bool { return procs[i].Index < procs[j].Index })

	if err := b.StartScope(`\_SB`); err != nil {
		return err
	}
	if p.CPU.Container != "" {
		if err := b.StartDevice(p.CPU.Container); err != nil {
			return err
		}
	}
	for socket := uint32(0); socket < p.CPU.Sockets; socket++ {
		var index uint64
		for _, proc := range procs {
			if !proc.Valid() || proc.Socket != socket {
				continue
			}
			uid := uint64(socket)<<p.CPU.UIDShift + index
			if err := processorDevice(b, p.CPU.ScopeName, proc, uid); err != nil {
				return fmt.Errorf("processor %d: %w", proc.Index, err)
			}
			index++
		}
	}
	if p.CPU.Container != "" {
		if err := b.CloseDevice(); err != nil {
			return err
		}
	}
	return b.CloseScope()
}

func processorDevice(b *aml.Builder, scopeName string, proc platform.Processor, uid uint64) error {
	if err := b.StartDevice(fmt.Sprintf("%s%03X", scopeName, proc.Index)); err != nil {
		return err
	}
	if err := nameString(b, "_HID", ProcessorHID); err != nil {
		return err
	}
	// Must match the APIC processor UID in the MADT.
	if err := name(b, "_UID", uid); err != nil {
		return err
	}

	if err := b.StartMethod("_STA", 0, aml.NotSerialized, 0); err != nil {
		return err
	}
	if err := b.StartReturn(); err != nil {
		return err
	}
	b.Integer(processorStatus(proc))
	if err := b.CloseReturn(); err != nil {
		return err
	}
	if err := b.CloseMethod(); err != nil {
		return err
	}

	for _, n := range []struct {
		name  string
		value uint32
	}{
		{"PACK", proc.Socket},
		{"DIE_", proc.Die},
		{"CCD_", proc.Tile},
		{"CCX_", proc.Complex},
		{"CORE", proc.Core},
		{"THRD", proc.Thread},
	} {
		if err := name(b, n.name, uint64(n.value)); err != nil {
			return err
		}
	}
	return b.CloseDevice()
}
