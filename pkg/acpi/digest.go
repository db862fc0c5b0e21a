// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acpi

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"

	"github.com/tjfoc/gmsm/sm3"
)

// HashAlgorithm is a TPM PCR bank algorithm used to measure tables.
type HashAlgorithm int

// Supported algorithms.
const (
	SHA1 HashAlgorithm = iota
	SHA256
	SHA384
	SM3
)

var hashAlgorithms = []struct {
	name string
	new  func() hash.Hash
}{
	SHA1:   {"sha1", sha1.New},
	SHA256: {"sha256", sha256.New},
	SHA384: {"sha384", sha512.New384},
	SM3:    {"sm3", sm3.New},
}

func (a HashAlgorithm) String() string {
	if a < 0 || int(a) >= len(hashAlgorithms) {
		return fmt.Sprintf("HashAlgorithm(%d)", int(a))
	}
	return hashAlgorithms[a].name
}

// HashAlgorithms returns every supported algorithm.
func HashAlgorithms() []HashAlgorithm {
	out := make([]HashAlgorithm, len(hashAlgorithms))
	for i := range hashAlgorithms {
		out[i] = HashAlgorithm(i)
	}
	return out
}

// ParseHashAlgorithm returns the algorithm called name.
func ParseHashAlgorithm(name string) (HashAlgorithm, error) {
	for i, a := range hashAlgorithms {
		if strings.EqualFold(a.name, name) {
			return HashAlgorithm(i), nil
		}
	}
	return 0, fmt.Errorf("unknown hash algorithm %q", name)
}

// Digest measures table with alg.
func Digest(table []byte, alg HashAlgorithm) ([]byte, error) {
	if alg < 0 || int(alg) >= len(hashAlgorithms) {
		return nil, fmt.Errorf("unknown hash algorithm %d", int(alg))
	}
	h := hashAlgorithms[alg].new()
	h.Write(table)
	return h.Sum(nil), nil
}
