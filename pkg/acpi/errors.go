// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acpi

import "fmt"

// ErrNotFound means no installed table matches a signature and OEM table
// ID.
type ErrNotFound struct {
	Signature  string
	OEMTableID string
}

func (err ErrNotFound) Error() string {
	return fmt.Sprintf("ACPI table %s (OEM table ID %q) not found", err.Signature, err.OEMTableID)
}

// ErrInvalidTable means a table or table image is malformed.
type ErrInvalidTable struct {
	Offset uint64
	Reason string
}

func (err ErrInvalidTable) Error() string {
	return fmt.Sprintf("invalid ACPI table at offset 0x%X: %s", err.Offset, err.Reason)
}

// ErrInvalidHandle means a handle does not refer to an installed table.
type ErrInvalidHandle struct {
	Handle Handle
}

func (err ErrInvalidHandle) Error() string {
	return fmt.Sprintf("no table is installed with handle %d", err.Handle)
}
