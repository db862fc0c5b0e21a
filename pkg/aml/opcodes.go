// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aml

// AML opcodes and prefixes, see ACPI 6.5 section 20.3 "AML Byte Stream
// Byte Values".
const (
	ZeroOp          = 0x00
	OneOp           = 0x01
	AliasOp         = 0x06
	NameOp          = 0x08
	BytePrefix      = 0x0A
	WordPrefix      = 0x0B
	DWordPrefix     = 0x0C
	StringPrefix    = 0x0D
	QWordPrefix     = 0x0E
	ScopeOp         = 0x10
	BufferOp        = 0x11
	PackageOp       = 0x12
	VarPackageOp    = 0x13
	MethodOp        = 0x14
	ExternalOp      = 0x15
	DualNamePrefix  = 0x2E
	MultiNamePrefix = 0x2F
	ExtOpPrefix     = 0x5B
	RootChar        = 0x5C
	ParentPrefix    = 0x5E
	Local0Op        = 0x60
	Arg0Op          = 0x68
	StoreOp         = 0x70
	CreateDWordOp   = 0x8A
	ReturnOp        = 0xA4
	OnesOp          = 0xFF

	// DeviceOp follows ExtOpPrefix.
	DeviceOp = 0x82
)

// Resource descriptor tags, see ACPI 6.5 section 6.4.
const (
	irqTag             = 0x22 // small, 2 bytes of data
	irqTagWithFlags    = 0x23 // small, 3 bytes of data
	dmaTag             = 0x2A
	ioTag              = 0x47
	fixedIOTag         = 0x4B
	endTag             = 0x79
	memory32Tag        = 0x85
	memory32FixedTag   = 0x86
	dwordAddressTag    = 0x87
	wordAddressTag     = 0x88
	extendedIRQTag     = 0x89
	qwordAddressTag    = 0x8A
	maxArg             = 6
	maxLocal           = 7
	maxMethodArgs      = 7
	maxSyncLevel       = 15
	nameSegSize        = 4
	maxNameSegs        = 255
	maxByteElements    = 0xFF
	maxBufferSize      = 0xFFFFFFFF
	descriptionHdrSize = 36
)
