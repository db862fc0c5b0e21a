// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResourceTemplate(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.StartResourceTemplate())
	require.NoError(t, b.IO(Decode16, 0x60, 0x60, 1, 1))
	require.NoError(t, b.CloseResourceTemplate())

	require.Equal(t, []byte{
		BufferOp, 0x0D, BytePrefix, 0x0A,
		ioTag, 0x01, 0x60, 0x00, 0x60, 0x00, 0x01, 0x01,
		endTag, 0x00,
	}, mustBytes(t, b))
}

func TestResourceTemplateEmpty(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.StartResourceTemplate())
	require.NoError(t, b.CloseResourceTemplate())
	require.Equal(t, []byte{BufferOp, 0x04, BytePrefix, 0x02, endTag, 0x00}, mustBytes(t, b))
}

// descriptor runs fn inside a fresh builder and returns the single emitted
// object.
func descriptor(t *testing.T, fn func(b *Builder) error) []byte {
	t.Helper()
	b := NewBuilder()
	require.NoError(t, fn(b))
	objs, err := b.Objects()
	require.NoError(t, err)
	require.Len(t, objs, 1)
	return objs[0]
}

func TestSmallDescriptors(t *testing.T) {
	require.Equal(t, []byte{fixedIOTag, 0x80, 0x00, 0x10}, descriptor(t, func(b *Builder) error {
		return b.FixedIO(0x80, 0x10)
	}))
	require.Equal(t, []byte{irqTag, 0x02, 0x00}, descriptor(t, func(b *Builder) error {
		return b.IRQNoFlags(1)
	}))
	require.Equal(t, []byte{irqTagWithFlags, 0x18, 0x00, 0x19}, descriptor(t, func(b *Builder) error {
		return b.IRQ(Edge, ActiveLow, Shared, 3, 4)
	}))
	require.Equal(t, []byte{dmaTag, 0x04, 0x45}, descriptor(t, func(b *Builder) error {
		return b.DMA(TypeB, true, Transfer8_16, 2)
	}))

	b := NewBuilder()
	require.Error(t, b.FixedIO(0x400, 1))
	require.Error(t, b.IRQNoFlags())
	require.Error(t, b.IRQ(Level, ActiveHigh, Exclusive, 16))
	require.Error(t, b.DMA(Compatibility, false, Transfer8))
	require.Error(t, b.DMA(Compatibility, false, Transfer8, 8))
	require.Error(t, b.IO(Decode16, 0x70, 0x60, 1, 1))
}

func TestMemoryDescriptors(t *testing.T) {
	require.Equal(t, []byte{
		memory32FixedTag, 0x09, 0x00, 0x01,
		0x00, 0x00, 0xD0, 0xFE,
		0x00, 0x04, 0x00, 0x00,
	}, descriptor(t, func(b *Builder) error {
		return b.Memory32Fixed(ReadWrite, 0xFED00000, 0x400)
	}))

	require.Equal(t, []byte{
		memory32Tag, 0x11, 0x00, 0x00,
		0x00, 0x00, 0x0A, 0x00,
		0xFF, 0xFF, 0x0B, 0x00,
		0x00, 0x10, 0x00, 0x00,
		0x00, 0x00, 0x02, 0x00,
	}, descriptor(t, func(b *Builder) error {
		return b.Memory32(ReadOnly, 0xA0000, 0xBFFFF, 0x1000, 0x20000)
	}))
	require.Error(t, NewBuilder().Memory32(ReadOnly, 2, 1, 0, 0))
}

func TestInterruptDescriptor(t *testing.T) {
	require.Equal(t, []byte{
		extendedIRQTag, 0x0A, 0x00, 0x03, 0x02,
		0x09, 0x00, 0x00, 0x00,
		0x0A, 0x00, 0x00, 0x00,
	}, descriptor(t, func(b *Builder) error {
		return b.Interrupt(ResourceConsumer, Edge, ActiveHigh, Exclusive, 9, 10)
	}))
	require.Error(t, NewBuilder().Interrupt(ResourceConsumer, Level, ActiveLow, Shared))
}

func TestAddressDescriptors(t *testing.T) {
	fixed := AddressFlags{Usage: ResourceProducer, Decode: PosDecode, MinFixed: true, MaxFixed: true}

	require.Equal(t, []byte{
		wordAddressTag, 0x0D, 0x00, BusNumberRangeType, 0x0C, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0xFF, 0x00,
		0x00, 0x00,
		0x00, 0x01,
	}, descriptor(t, func(b *Builder) error {
		return b.WordBusNumber(fixed, AddressRange{Max: 0xFF, Length: 0x100})
	}))

	require.Equal(t, []byte{
		dwordAddressTag, 0x17, 0x00, IORangeType, 0x0C, 0x03,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x0D, 0x00, 0x00,
		0xFF, 0xFF, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0xF3, 0x00, 0x00,
	}, descriptor(t, func(b *Builder) error {
		return b.DWordIO(fixed, EntireRange, AddressRange{Min: 0xD00, Max: 0xFFFF, Length: 0xF300})
	}))

	out := descriptor(t, func(b *Builder) error {
		return b.QWordMemory(fixed, Prefetchable, ReadWrite, AddressRange{
			Min:    0x8000000000,
			Max:    0x8FFFFFFFFF,
			Length: 0x1000000000,
		})
	})
	require.Len(t, out, 3+43)
	require.Equal(t, []byte{qwordAddressTag, 0x2B, 0x00, MemoryRangeType, 0x0C, 0x07}, out[:6])
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x00, 0x80, 0x00, 0x00, 0x00}, out[14:22])

	consumer := AddressFlags{Usage: ResourceConsumer, Decode: SubDecode}
	out = descriptor(t, func(b *Builder) error {
		return b.WordIO(consumer, NonISAOnlyRanges, AddressRange{Min: 0, Max: 0xCF7, Length: 0xCF8})
	})
	require.Equal(t, byte(0x03), out[4])
	require.Equal(t, byte(0x01), out[5])

	out = descriptor(t, func(b *Builder) error {
		return b.DWordMemory(fixed, Cacheable, ReadWrite, AddressRange{Min: 0xC0000000, Max: 0xFEBFFFFF, Length: 0x3EC00000})
	})
	require.Equal(t, byte(0x03), out[5])
}

func TestAddressDescriptorErrors(t *testing.T) {
	b := NewBuilder()
	require.Error(t, b.DWordIO(AddressFlags{}, EntireRange, AddressRange{Max: 0x100000000}))
	require.Error(t, b.WordIO(AddressFlags{}, EntireRange, AddressRange{Min: 2, Max: 1}))
	require.Error(t, b.WordSpace(0x10, AddressFlags{}, 0, AddressRange{}))
	require.NoError(t, b.QWordSpace(0xC0, AddressFlags{}, 0x5A, AddressRange{Max: 1}))
	require.NoError(t, b.DWordSpace(0xFF, AddressFlags{}, 0, AddressRange{}))
	require.NoError(t, b.QWordIO(AddressFlags{}, ISAOnlyRanges, AddressRange{Max: 0xFFFF}))
}
