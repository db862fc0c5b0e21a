// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aml

import (
	"encoding/binary"
	"fmt"
)

// EncodeInteger returns the shortest ComputationalData encoding of v.
//
//	ConstObj   := ZeroOp | OneOp | OnesOp
//	ByteConst  := BytePrefix ByteData
//	WordConst  := WordPrefix WordData
//	DWordConst := DWordPrefix DWordData
//	QWordConst := QWordPrefix QWordData
func EncodeInteger(v uint64) []byte {
	switch {
	case v == 0:
		return []byte{ZeroOp}
	case v == 1:
		return []byte{OneOp}
	case v == ^uint64(0):
		return []byte{OnesOp}
	case v >= 0x100000000:
		return EncodeQWord(v)
	case v >= 0x10000:
		return EncodeDWord(uint32(v))
	case v >= 0x100:
		return EncodeWord(uint16(v))
	default:
		return EncodeByte(uint8(v))
	}
}

// EncodeByte returns a ByteConst.
func EncodeByte(v uint8) []byte {
	return []byte{BytePrefix, v}
}

// EncodeWord returns a WordConst.
func EncodeWord(v uint16) []byte {
	return binary.LittleEndian.AppendUint16([]byte{WordPrefix}, v)
}

// EncodeDWord returns a DWordConst.
func EncodeDWord(v uint32) []byte {
	return binary.LittleEndian.AppendUint32([]byte{DWordPrefix}, v)
}

// EncodeQWord returns a QWordConst.
func EncodeQWord(v uint64) []byte {
	return binary.LittleEndian.AppendUint64([]byte{QWordPrefix}, v)
}

// DecodeInteger parses a ComputationalData integer from the start of b and
// returns its value and encoded size.
func DecodeInteger(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, ErrInvalidInput{Op: "Integer", Value: b, Reason: "no data"}
	}
	width := 0
	switch b[0] {
	case ZeroOp:
		return 0, 1, nil
	case OneOp:
		return 1, 1, nil
	case OnesOp:
		return ^uint64(0), 1, nil
	case BytePrefix:
		width = 1
	case WordPrefix:
		width = 2
	case DWordPrefix:
		width = 4
	case QWordPrefix:
		width = 8
	default:
		return 0, 0, ErrInvalidInput{Op: "Integer", Value: fmt.Sprintf("0x%02X", b[0]), Reason: "not an integer prefix"}
	}
	if len(b) < 1+width {
		return 0, 0, ErrInvalidInput{Op: "Integer", Value: b, Reason: "truncated"}
	}
	var v uint64
	for i := width; i > 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, 1 + width, nil
}

// EncodeString returns a String data object: StringPrefix AsciiCharList
// NullChar. Every character must be in the range 0x01-0x7F.
func EncodeString(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x01 || s[i] > 0x7F {
			return nil, ErrInvalidInput{Op: "String", Value: s, Reason: fmt.Sprintf("character 0x%02X at %d is out of range", s[i], i)}
		}
	}
	out := make([]byte, 0, len(s)+2)
	out = append(out, StringPrefix)
	out = append(out, s...)
	return append(out, 0), nil
}

// EisaID compresses a "UUUNNNN" identifier (three upper case letters, four
// hex digits) into its 32-bit EISA ID form, e.g. "PNP0A03" is 0x030AD041.
func EisaID(s string) (uint32, error) {
	if len(s) != 7 {
		return 0, ErrInvalidInput{Op: "EisaId", Value: s, Reason: "must be 7 characters long"}
	}
	for i := 0; i < 3; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return 0, ErrInvalidInput{Op: "EisaId", Value: s, Reason: "must be formatted as UUUNNNN"}
		}
	}
	var product uint32
	for i := 3; i < 7; i++ {
		var d byte
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, ErrInvalidInput{Op: "EisaId", Value: s, Reason: "must be formatted as UUUNNNN"}
		}
		product = product<<4 | uint32(d)
	}
	v := uint32(s[0]-'A'+1)&0x1F<<10 |
		uint32(s[1]-'A'+1)&0x1F<<5 |
		uint32(s[2]-'A'+1)&0x1F |
		product<<16
	return swapWordBytes(v), nil
}

// EisaIDString expands a compressed EISA ID back into its "UUUNNNN" form.
func EisaIDString(v uint32) string {
	v = swapWordBytes(v)
	return fmt.Sprintf("%c%c%c%04X",
		'A'-1+byte(v>>10&0x1F),
		'A'-1+byte(v>>5&0x1F),
		'A'-1+byte(v&0x1F),
		v>>16)
}

// swapWordBytes swaps the bytes inside each 16-bit half of v.
func swapWordBytes(v uint32) uint32 {
	return (v>>8)&0x00FF00FF | (v<<8)&0xFF00FF00
}
