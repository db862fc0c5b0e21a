// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hid2english provides a transform.Transformer which replaces all
// device IDs, such as PNP0A08 or ACPI0007, in the input with their known
// English representation.
package hid2english

import (
	"bytes"
	"regexp"
	"text/template"

	"github.com/linuxboot/amlgen/pkg/log"
	"golang.org/x/text/transform"
)

// An EISA ID has three letters, an ACPI ID four letters or digits, both
// followed by four hex digits.
var idRegex = regexp.MustCompile(`\b(?:[A-Z]{3}|[A-Z][A-Z0-9]{3})[0-9A-F]{4}\b`)

// A trailing word may be the start of an ID.
var partialIDRegex = regexp.MustCompile(`[0-9A-Za-z_]{1,64}$`)

// Mapper converts an ID to a string.
type Mapper interface {
	Map(id string) []byte
}

// TemplateMapper implements mapper using Go's text/template package. The
// template can refer to the following variables:
//   - {{.ID}}: The ID being mapped
//   - {{.Name}}: The English name of the ID or "UNKNOWN"
//   - {{.IsKnown}}: Set to true when the English name is known
type TemplateMapper struct {
	tmpl *template.Template
}

// NewTemplateMapper creates a new TemplateMapper given a Template.
func NewTemplateMapper(tmpl *template.Template) *TemplateMapper {
	return &TemplateMapper{
		tmpl: tmpl,
	}
}

// Map implements the Mapper.Map() function.
func (f *TemplateMapper) Map(id string) []byte {
	name, isKnown := IDs[id]
	if !isKnown {
		name = "UNKNOWN"
	}

	b := &bytes.Buffer{}
	err := f.tmpl.Execute(b, struct {
		ID      string
		Name    string
		IsKnown bool
	}{
		ID:      id,
		Name:    name,
		IsKnown: isKnown,
	})
	if err != nil {
		log.Errorf("Error in template: %v", err)
	}
	return b.Bytes()
}

// Transformer replaces all the IDs using the Mapper interface.
type Transformer struct {
	mapper Mapper
}

// New creates a new Transformer with the given Mapper.
func New(m Mapper) *Transformer {
	return &Transformer{
		mapper: m,
	}
}

func (t *Transformer) bufferMap(match []byte) []byte {
	return t.mapper.Map(string(match))
}

// hold copies src up to n and asks for more input.
func hold(dst, src []byte, n int) (int, int, error) {
	if c := copy(dst, src[:n]); c < n {
		return c, c, transform.ErrShortDst
	}
	return n, n, transform.ErrShortSrc
}

// Transform implements transform.Transformer.Transform().
func (t *Transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	if atEOF {
		transformed := idRegex.ReplaceAllFunc(src, t.bufferMap)
		if len(transformed) > len(dst) {
			d, s, e := t.Transform(dst, src, false)
			if e != transform.ErrShortSrc {
				return d, s, e
			}
			return d, s, transform.ErrShortDst
		}
		copy(dst, transformed)
		return len(transformed), len(src), nil
	}
	loc := idRegex.FindIndex(src)
	if loc == nil || loc[1] == len(src) {
		// The word at the end may continue in the next buffer.
		tail := partialIDRegex.FindIndex(src)
		if tail == nil {
			n := copy(dst, src)
			if n < len(src) {
				return n, n, transform.ErrShortDst
			}
			return n, n, nil
		}
		return hold(dst, src, tail[0])
	}
	if c := copy(dst, src[:loc[0]]); c < loc[0] {
		return c, c, transform.ErrShortDst
	}
	mapped := t.bufferMap(src[loc[0]:loc[1]])
	if loc[0]+len(mapped) > len(dst) {
		return loc[0], loc[0], transform.ErrShortDst
	}
	copy(dst[loc[0]:], mapped)
	return loc[0] + len(mapped), loc[1], transform.ErrShortSrc
}

// Reset implements transform.Transformer.Reset().
func (t *Transformer) Reset() {
}
