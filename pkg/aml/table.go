// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aml

import (
	"encoding/binary"
	"fmt"
)

// Field lengths of the ACPI description header.
const (
	SignatureLength  = 4
	OEMIDLength      = 6
	OEMTableIDLength = 8
	CreatorIDLength  = 4
)

// TableHeader is the caller supplied part of a DefinitionBlock header.
// Length and checksum are filled in by the assembler and the installer.
type TableHeader struct {
	Signature       string
	Revision        uint8
	OEMID           string
	OEMTableID      string
	OEMRevision     uint32
	CreatorID       string
	CreatorRevision uint32
}

// Validate checks the length limits of the header string fields.
func (h TableHeader) Validate() error {
	switch {
	case len(h.Signature) != SignatureLength:
		return ErrInvalidInput{Op: "DefinitionBlock", Value: h.Signature, Reason: "signature must be 4 characters"}
	case len(h.OEMID) > OEMIDLength:
		return ErrInvalidInput{Op: "DefinitionBlock", Value: h.OEMID, Reason: "OEM ID is longer than 6 characters"}
	case len(h.OEMTableID) > OEMTableIDLength:
		return ErrInvalidInput{Op: "DefinitionBlock", Value: h.OEMTableID, Reason: "OEM table ID is longer than 8 characters"}
	case len(h.CreatorID) != CreatorIDLength:
		return ErrInvalidInput{Op: "DefinitionBlock", Value: h.CreatorID, Reason: "creator ID must be 4 characters"}
	}
	return nil
}

// Encode returns the 36-byte description header for a table body of
// bodySize bytes. The checksum byte is left zero.
func (h TableHeader) Encode(bodySize int) ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	total := uint64(descriptionHdrSize) + uint64(bodySize)
	if total > 0xFFFFFFFF {
		return nil, ErrTooLarge{What: "table", Size: total, Max: 0xFFFFFFFF}
	}
	out := make([]byte, descriptionHdrSize)
	copy(out[0:4], h.Signature)
	binary.LittleEndian.PutUint32(out[4:8], uint32(total))
	out[8] = h.Revision
	copy(out[10:16], h.OEMID)
	copy(out[16:24], h.OEMTableID)
	binary.LittleEndian.PutUint32(out[24:28], h.OEMRevision)
	copy(out[28:32], h.CreatorID)
	binary.LittleEndian.PutUint32(out[32:36], h.CreatorRevision)
	return out, nil
}

// StartDefinitionBlock opens a table. Everything appended until
// CloseDefinitionBlock becomes the table body.
func (b *Builder) StartDefinitionBlock(h TableHeader) error {
	if err := h.Validate(); err != nil {
		return err
	}
	b.push(TermDefinitionBlock, h.Signature).header = &h
	return nil
}

// CloseDefinitionBlock closes the innermost DefinitionBlock and produces the
// complete table image, header included.
func (b *Builder) CloseDefinitionBlock() error {
	f, err := b.pop(TermDefinitionBlock)
	if err != nil {
		return err
	}
	body, n := f.collapse()
	if n == 0 {
		return ErrEmptyBody{Term: TermDefinitionBlock}
	}
	hdr, err := f.header.Encode(len(body))
	if err != nil {
		return fmt.Errorf("close %s %s: %w", TermDefinitionBlock, f.ident, err)
	}
	b.emit(append(hdr, body...))
	return nil
}
