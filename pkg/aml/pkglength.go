// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aml

// Maximum PkgLength value for each encoding width. The lead byte keeps 6
// bits when it is the only byte and 4 bits otherwise, every follow byte
// adds 8 bits.
var pkgLengthLimits = [...]uint64{
	1: 0x3F,
	2: 0xFFF,
	3: 0xFFFFF,
	4: 0xFFFFFFF,
}

// EncodePkgLength returns the PkgLength prefix for a term body of
// bodySize bytes. The encoded value includes the prefix itself.
//
//	PkgLength := PkgLeadByte |
//	             <PkgLeadByte ByteData> |
//	             <PkgLeadByte ByteData ByteData> |
//	             <PkgLeadByte ByteData ByteData ByteData>
func EncodePkgLength(bodySize int) ([]byte, error) {
	if bodySize < 0 {
		return nil, ErrInvalidInput{Op: "PkgLength", Value: bodySize, Reason: "negative size"}
	}
	size := uint64(bodySize)
	for width := 1; width < len(pkgLengthLimits); width++ {
		total := size + uint64(width)
		if total > pkgLengthLimits[width] {
			continue
		}
		if width == 1 {
			return []byte{byte(total)}, nil
		}
		out := make([]byte, width)
		out[0] = byte(width-1)<<6 | byte(total&0x0F)
		for i := 1; i < width; i++ {
			out[i] = byte(total >> (4 + 8*(i-1)))
		}
		return out, nil
	}
	return nil, ErrTooLarge{What: "PkgLength", Size: size + 4, Max: pkgLengthLimits[4]}
}

// DecodePkgLength parses a PkgLength prefix from the start of b and returns
// the encoded length and the number of bytes the prefix occupies.
func DecodePkgLength(b []byte) (length int, width int, err error) {
	if len(b) == 0 {
		return 0, 0, ErrInvalidInput{Op: "PkgLength", Value: b, Reason: "no data"}
	}
	width = int(b[0]>>6) + 1
	if width == 1 {
		return int(b[0] & 0x3F), 1, nil
	}
	if len(b) < width {
		return 0, 0, ErrInvalidInput{Op: "PkgLength", Value: b, Reason: "truncated"}
	}
	length = int(b[0] & 0x0F)
	for i := 1; i < width; i++ {
		length |= int(b[i]) << (4 + 8*(i-1))
	}
	return length, width, nil
}

// wrapPkgLength returns PkgLength(body) ++ body.
func wrapPkgLength(body []byte) ([]byte, error) {
	prefix, err := EncodePkgLength(len(body))
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(prefix)+len(body))
	out = append(out, prefix...)
	return append(out, body...), nil
}
