// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aml

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// ResourceUsage tells whether a device consumes or produces a resource.
type ResourceUsage uint8

// Possible values of ResourceUsage.
const (
	ResourceProducer ResourceUsage = iota
	ResourceConsumer
)

// Decode is the address decode type of an address space descriptor.
type Decode uint8

// Possible values of Decode.
const (
	PosDecode Decode = iota
	SubDecode
)

// IODecode is the decode width of an IO descriptor.
type IODecode uint8

// Possible values of IODecode.
const (
	Decode10 IODecode = iota
	Decode16
)

// ISARanges restricts the ranges an IO address descriptor covers.
type ISARanges uint8

// Possible values of ISARanges.
const (
	NonISAOnlyRanges ISARanges = iota + 1
	ISAOnlyRanges
	EntireRange
)

// Cacheability is the memory attribute of a memory address descriptor.
type Cacheability uint8

// Possible values of Cacheability.
const (
	NonCacheable Cacheability = iota
	Cacheable
	WriteCombining
	Prefetchable
)

// Access is the write status of a memory range.
type Access uint8

// Possible values of Access.
const (
	ReadOnly Access = iota
	ReadWrite
)

// InterruptMode is the trigger mode of an interrupt.
type InterruptMode uint8

// Possible values of InterruptMode.
const (
	Level InterruptMode = iota
	Edge
)

// Polarity is the active level of an interrupt.
type Polarity uint8

// Possible values of Polarity.
const (
	ActiveHigh Polarity = iota
	ActiveLow
)

// Sharing tells whether an interrupt is shared with other devices.
type Sharing uint8

// Possible values of Sharing.
const (
	Exclusive Sharing = iota
	Shared
)

// DMAType is the DMA channel speed.
type DMAType uint8

// Possible values of DMAType.
const (
	Compatibility DMAType = iota
	TypeA
	TypeB
	TypeF
)

// DMATransferWidth is the DMA transfer size.
type DMATransferWidth uint8

// Possible values of DMATransferWidth.
const (
	Transfer8 DMATransferWidth = iota
	Transfer8_16
	Transfer16
)

// Address space resource types.
const (
	MemoryRangeType    = 0x00
	IORangeType        = 0x01
	BusNumberRangeType = 0x02
	VendorRangeMin     = 0xC0
)

// AddressFlags is the general flags byte of an address space descriptor.
type AddressFlags struct {
	Usage    ResourceUsage
	Decode   Decode
	MinFixed bool
	MaxFixed bool
}

func (f AddressFlags) bits() byte {
	v := byte(f.Usage&1) | byte(f.Decode&1)<<1
	if f.MinFixed {
		v |= 1 << 2
	}
	if f.MaxFixed {
		v |= 1 << 3
	}
	return v
}

// AddressRange holds the range fields of an address space descriptor.
type AddressRange struct {
	Granularity uint64
	Min         uint64
	Max         uint64
	Translation uint64
	Length      uint64
}

// StartResourceTemplate opens ResourceTemplate(), a Buffer holding
// resource descriptors terminated by an End Tag.
func (b *Builder) StartResourceTemplate() error {
	b.push(TermResourceTemplate, "RESOURCETEMPLATE")
	return nil
}

// CloseResourceTemplate closes the innermost ResourceTemplate.
func (b *Builder) CloseResourceTemplate() error {
	f, err := b.pop(TermResourceTemplate)
	if err != nil {
		return err
	}
	// End Tag with a zero checksum, which means the checksum is valid.
	f.appendChild([]byte{endTag, 0})
	out, err := encodeBuffer(TermResourceTemplate, f)
	if err != nil {
		return err
	}
	b.emit(out)
	return nil
}

// IO appends an IO port descriptor.
func (b *Builder) IO(decode IODecode, min, max uint16, align, length uint8) error {
	if min > max {
		return ErrInvalidInput{Op: "IO", Value: fmt.Sprintf("0x%X-0x%X", min, max), Reason: "minimum above maximum"}
	}
	out := []byte{ioTag, byte(decode & 1)}
	out = binary.LittleEndian.AppendUint16(out, min)
	out = binary.LittleEndian.AppendUint16(out, max)
	b.emit(append(out, align, length))
	return nil
}

// FixedIO appends a fixed location IO port descriptor.
func (b *Builder) FixedIO(base uint16, length uint8) error {
	if base > 0x3FF {
		return ErrInvalidInput{Op: "FixedIO", Value: base, Reason: "base must be a 10-bit address"}
	}
	out := binary.LittleEndian.AppendUint16([]byte{fixedIOTag}, base)
	b.emit(append(out, length))
	return nil
}

func irqMask(op string, irqs []uint8) (uint16, error) {
	if len(irqs) == 0 {
		return 0, ErrInvalidInput{Op: op, Value: irqs, Reason: "no interrupt"}
	}
	var mask uint16
	for _, irq := range irqs {
		if irq > 15 {
			return 0, ErrInvalidInput{Op: op, Value: irq, Reason: "interrupt must be 0..15"}
		}
		mask |= 1 << irq
	}
	return mask, nil
}

// IRQ appends an IRQ descriptor with an information byte.
func (b *Builder) IRQ(mode InterruptMode, polarity Polarity, sharing Sharing, irqs ...uint8) error {
	mask, err := irqMask("IRQ", irqs)
	if err != nil {
		return err
	}
	out := binary.LittleEndian.AppendUint16([]byte{irqTagWithFlags}, mask)
	b.emit(append(out, byte(mode&1)|byte(polarity&1)<<3|byte(sharing&1)<<4))
	return nil
}

// IRQNoFlags appends an IRQ descriptor for edge triggered, active high,
// exclusive interrupts.
func (b *Builder) IRQNoFlags(irqs ...uint8) error {
	mask, err := irqMask("IRQNoFlags", irqs)
	if err != nil {
		return err
	}
	b.emit(binary.LittleEndian.AppendUint16([]byte{irqTag}, mask))
	return nil
}

// DMA appends a DMA descriptor.
func (b *Builder) DMA(typ DMAType, busMaster bool, width DMATransferWidth, channels ...uint8) error {
	if len(channels) == 0 {
		return ErrInvalidInput{Op: "DMA", Value: channels, Reason: "no channel"}
	}
	var mask byte
	for _, ch := range channels {
		if ch > 7 {
			return ErrInvalidInput{Op: "DMA", Value: ch, Reason: "channel must be 0..7"}
		}
		mask |= 1 << ch
	}
	flags := byte(typ&3)<<5 | byte(width&3)
	if busMaster {
		flags |= 1 << 2
	}
	b.emit([]byte{dmaTag, mask, flags})
	return nil
}

type memory32FixedDescriptor struct {
	Tag         uint8
	Length      uint16
	Information uint8
	Base        uint32
	RangeLength uint32
}

// Memory32Fixed appends a 32-bit fixed memory range descriptor.
func (b *Builder) Memory32Fixed(access Access, base, length uint32) error {
	return b.emitDescriptor(memory32FixedDescriptor{
		Tag:         memory32FixedTag,
		Length:      9,
		Information: byte(access & 1),
		Base:        base,
		RangeLength: length,
	})
}

type memory32Descriptor struct {
	Tag         uint8
	Length      uint16
	Information uint8
	Min         uint32
	Max         uint32
	Alignment   uint32
	RangeLength uint32
}

// Memory32 appends a 32-bit memory range descriptor.
func (b *Builder) Memory32(access Access, min, max, align, length uint32) error {
	if min > max {
		return ErrInvalidInput{Op: "Memory32", Value: fmt.Sprintf("0x%X-0x%X", min, max), Reason: "minimum above maximum"}
	}
	return b.emitDescriptor(memory32Descriptor{
		Tag:         memory32Tag,
		Length:      17,
		Information: byte(access & 1),
		Min:         min,
		Max:         max,
		Alignment:   align,
		RangeLength: length,
	})
}

// Interrupt appends an extended interrupt descriptor.
func (b *Builder) Interrupt(usage ResourceUsage, mode InterruptMode, polarity Polarity, sharing Sharing, irqs ...uint32) error {
	if len(irqs) == 0 || len(irqs) > 0xFF {
		return ErrInvalidInput{Op: "Interrupt", Value: len(irqs), Reason: "interrupt count must be 1..255"}
	}
	out := binary.LittleEndian.AppendUint16([]byte{extendedIRQTag}, uint16(2+4*len(irqs)))
	out = append(out, byte(usage&1)|byte(mode&1)<<1|byte(polarity&1)<<2|byte(sharing&1)<<3, byte(len(irqs)))
	for _, irq := range irqs {
		out = binary.LittleEndian.AppendUint32(out, irq)
	}
	b.emit(out)
	return nil
}

func (b *Builder) emitDescriptor(desc interface{}) error {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, desc); err != nil {
		return err
	}
	b.emit(buf.Bytes())
	return nil
}

// addressDescriptor encodes a Word (width 2), DWord (4) or QWord (8) address
// space descriptor.
func addressDescriptor(op string, width int, resType, generalFlags, typeFlags byte, r AddressRange) ([]byte, error) {
	var tag byte
	switch width {
	case 2:
		tag = wordAddressTag
	case 4:
		tag = dwordAddressTag
	case 8:
		tag = qwordAddressTag
	default:
		return nil, fmt.Errorf("%s: unsupported descriptor width %d", op, width)
	}
	if r.Min > r.Max {
		return nil, ErrInvalidInput{Op: op, Value: fmt.Sprintf("0x%X-0x%X", r.Min, r.Max), Reason: "minimum above maximum"}
	}
	values := []uint64{r.Granularity, r.Min, r.Max, r.Translation, r.Length}
	limit := ^uint64(0) >> (64 - 8*uint(width))
	out := binary.LittleEndian.AppendUint16([]byte{tag}, uint16(3+len(values)*width))
	out = append(out, resType, generalFlags, typeFlags)
	for _, v := range values {
		if v > limit {
			return nil, ErrInvalidInput{Op: op, Value: fmt.Sprintf("0x%X", v), Reason: fmt.Sprintf("does not fit %d bytes", width)}
		}
		for i := 0; i < width; i++ {
			out = append(out, byte(v>>(8*i)))
		}
	}
	return out, nil
}

func (b *Builder) address(op string, width int, resType, generalFlags, typeFlags byte, r AddressRange) error {
	out, err := addressDescriptor(op, width, resType, generalFlags, typeFlags, r)
	if err != nil {
		return err
	}
	b.emit(out)
	return nil
}

func ioTypeFlags(isa ISARanges) byte {
	return byte(isa & 3)
}

func memoryTypeFlags(cache Cacheability, access Access) byte {
	return byte(access&1) | byte(cache&3)<<1
}

// WordBusNumber appends a 16-bit bus number range descriptor.
func (b *Builder) WordBusNumber(flags AddressFlags, r AddressRange) error {
	return b.address("WordBusNumber", 2, BusNumberRangeType, flags.bits(), 0, r)
}

// WordIO appends a 16-bit IO range descriptor.
func (b *Builder) WordIO(flags AddressFlags, isa ISARanges, r AddressRange) error {
	return b.address("WordIO", 2, IORangeType, flags.bits(), ioTypeFlags(isa), r)
}

// DWordIO appends a 32-bit IO range descriptor.
func (b *Builder) DWordIO(flags AddressFlags, isa ISARanges, r AddressRange) error {
	return b.address("DWordIO", 4, IORangeType, flags.bits(), ioTypeFlags(isa), r)
}

// QWordIO appends a 64-bit IO range descriptor.
func (b *Builder) QWordIO(flags AddressFlags, isa ISARanges, r AddressRange) error {
	return b.address("QWordIO", 8, IORangeType, flags.bits(), ioTypeFlags(isa), r)
}

// DWordMemory appends a 32-bit memory range descriptor.
func (b *Builder) DWordMemory(flags AddressFlags, cache Cacheability, access Access, r AddressRange) error {
	return b.address("DWordMemory", 4, MemoryRangeType, flags.bits(), memoryTypeFlags(cache, access), r)
}

// QWordMemory appends a 64-bit memory range descriptor.
func (b *Builder) QWordMemory(flags AddressFlags, cache Cacheability, access Access, r AddressRange) error {
	return b.address("QWordMemory", 8, MemoryRangeType, flags.bits(), memoryTypeFlags(cache, access), r)
}

func checkVendorType(op string, resType uint8) error {
	if resType < VendorRangeMin {
		return ErrInvalidInput{Op: op, Value: resType, Reason: "resource type must be 0xC0..0xFF"}
	}
	return nil
}

// WordSpace appends a 16-bit vendor defined address space descriptor.
func (b *Builder) WordSpace(resType uint8, flags AddressFlags, typeFlags uint8, r AddressRange) error {
	if err := checkVendorType("WordSpace", resType); err != nil {
		return err
	}
	return b.address("WordSpace", 2, resType, flags.bits(), typeFlags, r)
}

// DWordSpace appends a 32-bit vendor defined address space descriptor.
func (b *Builder) DWordSpace(resType uint8, flags AddressFlags, typeFlags uint8, r AddressRange) error {
	if err := checkVendorType("DWordSpace", resType); err != nil {
		return err
	}
	return b.address("DWordSpace", 4, resType, flags.bits(), typeFlags, r)
}

// QWordSpace appends a 64-bit vendor defined address space descriptor.
func (b *Builder) QWordSpace(resType uint8, flags AddressFlags, typeFlags uint8, r AddressRange) error {
	if err := checkVendorType("QWordSpace", resType); err != nil {
		return err
	}
	return b.address("QWordSpace", 8, resType, flags.bits(), typeFlags, r)
}
