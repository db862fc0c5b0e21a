// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acpi

import (
	"fmt"

	"github.com/linuxboot/amlgen/pkg/log"
)

// Handle identifies an installed table.
type Handle uint64

// Table is an installed table as reported by an Installer.
type Table struct {
	Handle Handle
	Header Header
	Data   []byte
}

// Installer is the platform table service: it enumerates installed tables,
// installs new ones and removes them.
type Installer interface {
	// Tables returns the installed tables in install order.
	Tables() []Table

	// Install copies table, recomputes its checksum and makes it visible.
	Install(table []byte) (Handle, error)

	// Uninstall removes a table.
	Uninstall(h Handle) error
}

// Find returns the first installed table with the given signature and OEM
// table ID.
func Find(inst Installer, signature, oemTableID string) (*Table, error) {
	id, err := padOEMTableID(oemTableID)
	if err != nil {
		return nil, err
	}
	for _, t := range inst.Tables() {
		if t.Header.SignatureString() == signature && t.Header.OEMTableID == id {
			t := t
			return &t, nil
		}
	}
	return nil, ErrNotFound{Signature: signature, OEMTableID: oemTableID}
}

// AppendExisting appends aml to the body of an installed table and
// reinstalls it: the table is located, copied with aml appended, its length
// is updated, the original is uninstalled and the copy is installed, which
// recomputes the checksum.
func AppendExisting(inst Installer, signature, oemTableID string, aml []byte) (Handle, error) {
	t, err := Find(inst, signature, oemTableID)
	if err != nil {
		log.Errorf("ACPI table not found with signature %s", signature)
		return 0, err
	}

	length := uint64(len(t.Data)) + uint64(len(aml))
	if length > 0xFFFFFFFF {
		return 0, fmt.Errorf("appending %d bytes to %s: table too large", len(aml), signature)
	}
	replacement := make([]byte, 0, length)
	replacement = append(replacement, t.Data...)
	replacement = append(replacement, aml...)
	if err := SetLength(replacement, uint32(length)); err != nil {
		return 0, err
	}

	if err := inst.Uninstall(t.Handle); err != nil {
		log.Errorf("unable to uninstall original ACPI table %s: %v", signature, err)
		return 0, err
	}
	h, err := inst.Install(replacement)
	if err != nil {
		log.Errorf("unable to re-install ACPI table %s: %v", signature, err)
		return 0, err
	}
	log.Debugf("appended %d bytes to %s, new length %d", len(aml), signature, length)
	return h, nil
}
