// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ssdt generates AML describing a platform topology and installs
// it, either appended to an existing table or as a new SSDT. It also
// installs the fixed-layout tables derived from the same description.
package ssdt

import (
	"fmt"

	"github.com/linuxboot/amlgen/pkg/acpi"
	"github.com/linuxboot/amlgen/pkg/aml"
	"github.com/linuxboot/amlgen/pkg/log"
	"github.com/linuxboot/amlgen/pkg/platform"
)

// Generator writes the AML for one aspect of p into b.
type Generator func(b *aml.Builder, p *platform.Platform) error

// Generators maps generator names to generators.
var Generators = map[string]Generator{
	"cpu": CPU,
	"pci": PCI,
}

// Build runs gen on a fresh builder and returns the generated AML. On error
// nothing is returned and everything built so far is dropped.
func Build(gen Generator, p *platform.Platform) ([]byte, error) {
	b := aml.NewBuilder()
	if err := gen(b, p); err != nil {
		b.Reset()
		return nil, err
	}
	return b.Bytes()
}

// Table wraps body into a complete table with header hdr.
func Table(hdr aml.TableHeader, body []byte) ([]byte, error) {
	b := aml.NewBuilder()
	if err := b.StartDefinitionBlock(hdr); err != nil {
		return nil, err
	}
	if err := b.DataBuffer(body); err != nil {
		return nil, err
	}
	if err := b.CloseDefinitionBlock(); err != nil {
		return nil, err
	}
	return b.Bytes()
}

// Options tells Install where the generated AML goes.
type Options struct {
	// Append is the signature of an installed table, matched together
	// with the platform OEM table ID, that the AML is appended to. If
	// empty, a new SSDT is installed instead.
	Append string
	// OEMTableID is the OEM table ID of a new SSDT.
	OEMTableID string
}

// Install generates the AML of gen for p and installs it as described by
// opts. Nothing is installed if generation fails.
func Install(inst acpi.Installer, p *platform.Platform, name string, gen Generator, opts Options) (acpi.Handle, error) {
	log.Debugf("%s: entry", name)
	body, err := Build(gen, p)
	if err != nil {
		log.Errorf("%s: generation failed: %v", name, err)
		return 0, fmt.Errorf("%s: %w", name, err)
	}

	if opts.Append != "" {
		h, err := acpi.AppendExisting(inst, opts.Append, p.OEM.OEMTableID, body)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		log.Infof("%s: appended %d bytes to %s", name, len(body), opts.Append)
		return h, nil
	}

	table, err := Table(p.TableHeader("SSDT", opts.OEMTableID), body)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	h, err := inst.Install(table)
	if err != nil {
		log.Errorf("%s: install failed: %v", name, err)
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	log.Infof("%s: installed SSDT %q, %d bytes", name, opts.OEMTableID, len(table))
	return h, nil
}

// name appends Name(n, v) with an integer value.
func name(b *aml.Builder, n string, v uint64) error {
	if err := b.StartName(n); err != nil {
		return err
	}
	b.Integer(v)
	return b.CloseName()
}

// nameString appends Name(n, s) with a string value.
func nameString(b *aml.Builder, n, s string) error {
	if err := b.StartName(n); err != nil {
		return err
	}
	if err := b.String(s); err != nil {
		return err
	}
	return b.CloseName()
}

// nameEisaID appends Name(n, EISAID(id)).
func nameEisaID(b *aml.Builder, n, id string) error {
	if err := b.StartName(n); err != nil {
		return err
	}
	if err := b.EisaID(id); err != nil {
		return err
	}
	return b.CloseName()
}
