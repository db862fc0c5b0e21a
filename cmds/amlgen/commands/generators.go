// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"sort"
	"strings"

	"github.com/linuxboot/amlgen/pkg/ssdt"
)

// GeneratorNames returns the names of all known generators, sorted.
func GeneratorNames() []string {
	names := make([]string, 0, len(ssdt.Generators))
	for name := range ssdt.Generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupGenerator returns the generator called name.
func LookupGenerator(name string) (ssdt.Generator, error) {
	gen, ok := ssdt.Generators[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, ErrArgs{Err: ErrUnknownGenerator{Name: name}}
	}
	return gen, nil
}
