// Copyright 2018 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compression implements compression of ACPI table images.
//
// Table images are kept as plain concatenations of tables; the file
// extension selects an optional compression scheme for storing them.
package compression

import (
	"path/filepath"
	"sort"
	"strings"
)

// Compressor defines a single compression scheme (such as XZ).
type Compressor interface {
	// Name is typically the name of a class.
	Name() string

	// Decode and Encode obey "x == Decode(Encode(x))".
	Decode(encodedData []byte) ([]byte, error)
	Encode(decodedData []byte) ([]byte, error)
}

var byExtension = map[string]func() Compressor{
	".xz":   func() Compressor { return &XZ{} },
	".lzma": func() Compressor { return &LZMA{} },
	".lz4":  func() Compressor { return &LZ4{} },
	".zst":  func() Compressor { return &Zstd{} },
	".zz":   func() Compressor { return &ZLIB{} },
}

// FromExtension returns the Compressor matching the extension of path, or
// nil if the file is not compressed.
func FromExtension(path string) Compressor {
	newCompressor, ok := byExtension[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil
	}
	return newCompressor()
}

// Extensions lists the file extensions FromExtension recognizes.
func Extensions() []string {
	exts := make([]string, 0, len(byExtension))
	for ext := range byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
