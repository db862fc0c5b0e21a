// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package acpi handles installed ACPI description tables: header parsing,
// checksums, an installer abstraction and table images.
package acpi

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/xaionaro-go/bytesextra"
)

// HeaderSize is the size of the common description header.
const HeaderSize = 36

const (
	lengthOffset   = 4
	checksumOffset = 9
)

// Header is the common header of every ACPI description table.
type Header struct {
	Signature       [4]byte
	Length          uint32
	Revision        uint8
	Checksum        uint8
	OEMID           [6]byte
	OEMTableID      [8]byte
	OEMRevision     uint32
	CreatorID       [4]byte
	CreatorRevision uint32
}

// ParseHeader decodes the header at the start of table.
func ParseHeader(table []byte) (*Header, error) {
	if len(table) < HeaderSize {
		return nil, ErrInvalidTable{Reason: fmt.Sprintf("%d bytes is shorter than a header", len(table))}
	}
	var h Header
	if err := binary.Read(bytes.NewReader(table[:HeaderSize]), binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Bytes returns the binary form of the header.
func (h *Header) Bytes() []byte {
	var buf bytes.Buffer
	// Writes into a bytes.Buffer do not fail.
	_ = binary.Write(&buf, binary.LittleEndian, h)
	return buf.Bytes()
}

// SignatureString returns the signature as text.
func (h *Header) SignatureString() string {
	return string(h.Signature[:])
}

// OEMTableIDString returns the OEM table ID without trailing padding.
func (h *Header) OEMTableIDString() string {
	return strings.TrimRight(string(h.OEMTableID[:]), "\x00 ")
}

// OEMIDString returns the OEM ID without trailing padding.
func (h *Header) OEMIDString() string {
	return strings.TrimRight(string(h.OEMID[:]), "\x00 ")
}

func (h *Header) String() string {
	return fmt.Sprintf("%s len=%d rev=%d OEM=%q table=%q oemrev=0x%X creator=%q/0x%X",
		h.SignatureString(), h.Length, h.Revision, h.OEMIDString(), h.OEMTableIDString(),
		h.OEMRevision, string(h.CreatorID[:]), h.CreatorRevision)
}

// Checksum returns the 8-bit sum of all bytes of table. It is zero for a
// table with a valid checksum.
func Checksum(table []byte) byte {
	var sum byte
	for _, b := range table {
		sum += b
	}
	return sum
}

// FixChecksum updates the checksum byte so that Checksum(table) is zero.
func FixChecksum(table []byte) error {
	if len(table) < HeaderSize {
		return ErrInvalidTable{Reason: "table is shorter than a header"}
	}
	table[checksumOffset] = 0
	table[checksumOffset] = -Checksum(table)
	return nil
}

// SetLength stores n in the length field of table.
func SetLength(table []byte, n uint32) error {
	if len(table) < HeaderSize {
		return ErrInvalidTable{Reason: "table is shorter than a header"}
	}
	rws := bytesextra.NewReadWriteSeeker(table)
	if _, err := rws.Seek(lengthOffset, io.SeekStart); err != nil {
		return err
	}
	return binary.Write(rws, binary.LittleEndian, n)
}

// padOEMTableID pads id the way it is stored in a header.
func padOEMTableID(id string) ([8]byte, error) {
	var out [8]byte
	if len(id) > len(out) {
		return out, fmt.Errorf("OEM table ID %q is longer than %d characters", id, len(out))
	}
	copy(out[:], id)
	return out, nil
}
