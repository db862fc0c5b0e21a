// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acpi

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/linuxboot/amlgen/pkg/compression"
)

// TableSet is an in-memory Installer. Its tables can be loaded from and
// saved to an image, which is the plain concatenation of the tables.
type TableSet struct {
	tables []Table
	next   Handle
}

var _ Installer = (*TableSet)(nil)

// NewTableSet returns an empty TableSet.
func NewTableSet() *TableSet {
	return &TableSet{}
}

// Tables implements Installer.
func (s *TableSet) Tables() []Table {
	return append([]Table(nil), s.tables...)
}

// Install implements Installer.
func (s *TableSet) Install(table []byte) (Handle, error) {
	h, err := ParseHeader(table)
	if err != nil {
		return 0, err
	}
	if int(h.Length) != len(table) {
		return 0, ErrInvalidTable{Reason: fmt.Sprintf("header length %d does not match the %d bytes given", h.Length, len(table))}
	}
	data := append([]byte(nil), table...)
	if err := FixChecksum(data); err != nil {
		return 0, err
	}
	h.Checksum = data[checksumOffset]

	s.next++
	s.tables = append(s.tables, Table{Handle: s.next, Header: *h, Data: data})
	return s.next, nil
}

// Uninstall implements Installer.
func (s *TableSet) Uninstall(h Handle) error {
	for i, t := range s.tables {
		if t.Handle == h {
			s.tables = append(s.tables[:i], s.tables[i+1:]...)
			return nil
		}
	}
	return ErrInvalidHandle{Handle: h}
}

// Bytes returns the image of all installed tables.
func (s *TableSet) Bytes() []byte {
	var out []byte
	for _, t := range s.tables {
		out = append(out, t.Data...)
	}
	return out
}

// Save writes the image to path, compressed if the extension of path
// names a compression scheme.
func (s *TableSet) Save(path string) error {
	data := s.Bytes()
	if c := compression.FromExtension(path); c != nil {
		var err error
		if data, err = c.Encode(data); err != nil {
			return fmt.Errorf("%s compression: %w", c.Name(), err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a table image from path, decompressing it if the extension of
// path names a compression scheme.
func Load(path string) (*TableSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if c := compression.FromExtension(path); c != nil {
		if data, err = c.Decode(data); err != nil {
			return nil, fmt.Errorf("%s decompression of %s: %w", c.Name(), path, err)
		}
	}
	return ParseImage(data)
}

// ParseImage validates image and installs every table in it.
func ParseImage(image []byte) (*TableSet, error) {
	if err := ValidateImage(image); err != nil {
		return nil, err
	}
	s := NewTableSet()
	for offset := 0; offset < len(image); {
		h, err := ParseHeader(image[offset:])
		if err != nil {
			return nil, err
		}
		end := offset + int(h.Length)
		if _, err := s.Install(image[offset:end]); err != nil {
			return nil, err
		}
		offset = end
	}
	return s, nil
}

func isSignatureChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}

// ValidateImage checks every table of image and reports all problems at
// once. Walking stops at the first table whose length cannot be trusted.
func ValidateImage(image []byte) error {
	var result *multierror.Error
	for offset := 0; offset < len(image); {
		h, err := ParseHeader(image[offset:])
		if err != nil {
			result = multierror.Append(result, ErrInvalidTable{Offset: uint64(offset), Reason: "truncated header"})
			break
		}
		for _, c := range h.Signature {
			if !isSignatureChar(c) {
				result = multierror.Append(result, ErrInvalidTable{Offset: uint64(offset), Reason: fmt.Sprintf("invalid signature %q", h.Signature[:])})
				break
			}
		}
		if h.Length < HeaderSize || uint64(offset)+uint64(h.Length) > uint64(len(image)) {
			result = multierror.Append(result, ErrInvalidTable{Offset: uint64(offset), Reason: fmt.Sprintf("length %d out of bounds", h.Length)})
			break
		}
		table := image[offset : offset+int(h.Length)]
		if sum := Checksum(table); sum != 0 {
			result = multierror.Append(result, ErrInvalidTable{Offset: uint64(offset), Reason: fmt.Sprintf("%s checksum is off by 0x%02X", h.SignatureString(), sum)})
		}
		offset += int(h.Length)
	}
	return result.ErrorOrNil()
}
