// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssdt

import (
	"fmt"

	"github.com/linuxboot/amlgen/pkg/acpi"
	"github.com/linuxboot/amlgen/pkg/log"
	"github.com/linuxboot/amlgen/pkg/platform"
)

// ErrNoIPMI is returned by SPMI for a platform without an IPMI interface.
type ErrNoIPMI struct{}

func (ErrNoIPMI) Error() string {
	return "the platform has no IPMI interface"
}

// SPMI returns the Service Processor Management Interface table of p. The
// header carries the platform OEM identity with OEM revision zero.
func SPMI(p *platform.Platform) ([]byte, error) {
	if !p.IPMI.Enabled() {
		return nil, ErrNoIPMI{}
	}
	hdr := p.TableHeader(acpi.SPMISignature, p.OEM.OEMTableID)
	hdr.OEMRevision = 0
	return acpi.NewKCSSPMI(acpi.IPMIInterfaceType(p.IPMI.InterfaceType), p.IPMI.KCSPort).Marshal(hdr)
}

// InstallSPMI installs the SPMI table of p.
func InstallSPMI(inst acpi.Installer, p *platform.Platform) (acpi.Handle, error) {
	table, err := SPMI(p)
	if err != nil {
		return 0, fmt.Errorf("spmi: %w", err)
	}
	h, err := inst.Install(table)
	if err != nil {
		log.Errorf("spmi: install failed: %v", err)
		return 0, fmt.Errorf("spmi: %w", err)
	}
	log.Infof("spmi: installed %s interface at port 0x%X", acpi.IPMIInterfaceType(p.IPMI.InterfaceType), p.IPMI.KCSPort)
	return h, nil
}
