// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aml

import (
	"bytes"
	"fmt"
)

func isLeadNameChar(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z')
}

func isDigitChar(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNameChar(c byte) bool {
	return isLeadNameChar(c) || isDigitChar(c)
}

// EncodeNameString encodes an ASL style path such as `\_SB.PCI0`, `^^FOO`
// or `OSCI()` into an AML NameString.
//
//	NameString    := <RootChar NamePath> | <PrefixPath NamePath>
//	PrefixPath    := Nothing | <'^' PrefixPath>
//	NamePath      := NameSeg | DualNamePath | MultiNamePath
//	DualNamePath  := DualNamePrefix NameSeg NameSeg
//	MultiNamePath := MultiNamePrefix SegCount NameSeg(SegCount)
//
// Segments shorter than 4 characters are padded with trailing '_'. A single
// trailing "()" pair is accepted and produces no output.
func EncodeNameString(path string) ([]byte, error) {
	invalid := func(i int, reason string) error {
		return ErrInvalidInput{Op: "NameString", Value: path, Reason: fmt.Sprintf("%s at index %d", reason, i)}
	}

	var (
		prefix     []byte
		segs       bytes.Buffer
		segCount   int
		segIndex   int
		foundRoot  bool
		foundOpen  bool
		foundClose bool
	)
	padSegment := func() {
		if segIndex > 0 && segIndex < nameSegSize {
			segs.Write(bytes.Repeat([]byte{'_'}, nameSegSize-segIndex))
		}
	}

	for i := 0; i < len(path); i++ {
		c := path[i]
		switch {
		case c == '\\':
			if segCount != 0 || foundRoot || len(prefix) != 0 {
				return nil, invalid(i, "misplaced root character")
			}
			prefix = append(prefix, RootChar)
			foundRoot = true
		case c == '^':
			if segCount != 0 || foundRoot {
				return nil, invalid(i, "misplaced parent prefix")
			}
			prefix = append(prefix, ParentPrefix)
		case c == '.':
			if segIndex == 0 || foundOpen {
				return nil, invalid(i, "misplaced segment separator")
			}
			padSegment()
			segIndex = 0
		case c == '(':
			if foundOpen || segIndex == 0 {
				return nil, invalid(i, "unexpected '('")
			}
			padSegment()
			segIndex = 0
			foundOpen = true
		case c == ')':
			if foundClose || !foundOpen {
				return nil, invalid(i, "unexpected ')'")
			}
			foundClose = true
		case isNameChar(c):
			switch {
			case foundOpen:
				return nil, invalid(i, "name character after parenthesis")
			case segIndex == 0 && !isLeadNameChar(c):
				return nil, invalid(i, "segment starts with a digit")
			case segIndex >= nameSegSize:
				return nil, invalid(i, "segment longer than 4 characters")
			}
			if segIndex == 0 {
				segCount++
				if segCount > maxNameSegs {
					return nil, invalid(i, "too many segments")
				}
			}
			segs.WriteByte(c)
			segIndex++
		default:
			return nil, invalid(i, fmt.Sprintf("invalid character %q", c))
		}
	}
	padSegment()

	switch {
	case segCount == 0:
		return nil, ErrInvalidInput{Op: "NameString", Value: path, Reason: "no name segment"}
	case segIndex == 0 && !foundOpen:
		return nil, ErrInvalidInput{Op: "NameString", Value: path, Reason: "trailing segment separator"}
	case foundOpen && !foundClose:
		return nil, ErrInvalidInput{Op: "NameString", Value: path, Reason: "unterminated '('"}
	}

	out := make([]byte, 0, len(prefix)+2+segs.Len())
	out = append(out, prefix...)
	switch segCount {
	case 1:
	case 2:
		out = append(out, DualNamePrefix)
	default:
		out = append(out, MultiNamePrefix, byte(segCount))
	}
	return append(out, segs.Bytes()...), nil
}

// NameSeg pads name to a 4 character NameSeg and validates it.
func NameSeg(name string) ([nameSegSize]byte, error) {
	var seg [nameSegSize]byte
	if len(name) == 0 || len(name) > nameSegSize {
		return seg, ErrInvalidInput{Op: "NameSeg", Value: name, Reason: "must be 1 to 4 characters long"}
	}
	if !isLeadNameChar(name[0]) {
		return seg, ErrInvalidInput{Op: "NameSeg", Value: name, Reason: "must start with 'A'-'Z' or '_'"}
	}
	for i := range seg {
		if i >= len(name) {
			seg[i] = '_'
			continue
		}
		if !isNameChar(name[i]) {
			return seg, ErrInvalidInput{Op: "NameSeg", Value: name, Reason: fmt.Sprintf("invalid character %q", name[i])}
		}
		seg[i] = name[i]
	}
	return seg, nil
}
