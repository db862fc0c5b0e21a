// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amlgen_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/linuxboot/amlgen/pkg/acpi"
	"github.com/linuxboot/amlgen/pkg/aml"
	"github.com/linuxboot/amlgen/pkg/compression"
	"github.com/linuxboot/amlgen/pkg/platform"
	"github.com/linuxboot/amlgen/pkg/ssdt"
	"github.com/stretchr/testify/require"
)

// Returns all the platform descriptions inside the platform testdata folder.
func platformList(t *testing.T) []string {
	var list []string
	for _, pattern := range []string{"*.hcl", "*.yaml"} {
		matches, err := filepath.Glob(filepath.Join("..", "pkg", "platform", "testdata", pattern))
		require.NoError(t, err)
		list = append(list, matches...)
	}
	require.NotEmpty(t, list, "no platform descriptions found")
	sort.Strings(list)
	return list
}

func generatorNames() []string {
	var names []string
	for name := range ssdt.Generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// generate installs one SSDT per generator.
func generate(t *testing.T, path string) *acpi.TableSet {
	p, err := platform.LoadFile(path)
	require.NoError(t, err)
	set := acpi.NewTableSet()
	for _, name := range generatorNames() {
		_, err := ssdt.Install(set, p, name, ssdt.Generators[name], ssdt.Options{
			OEMTableID: "AMD" + strings.ToUpper(name),
		})
		require.NoError(t, err)
	}
	return set
}

// TestSaveLoadSave tests that an image of generated tables survives every
// supported encoding:
//
// 1. generate tables from a platform description and save them as tmp.dat
// 2. load tmp.dat and save it as tmp.dat.EXT
// 3. load tmp.dat.EXT
//
// The test passes iff the tables of step 3 equal the ones of step 1.
func TestSaveLoadSave(t *testing.T) {
	for _, tt := range platformList(t) {
		t.Run(filepath.Base(tt), func(t *testing.T) {
			dir := t.TempDir()
			set := generate(t, tt)
			require.NoError(t, acpi.ValidateImage(set.Bytes()))

			plain := filepath.Join(dir, "tmp.dat")
			require.NoError(t, set.Save(plain))

			for _, ext := range compression.Extensions() {
				loaded, err := acpi.Load(plain)
				require.NoError(t, err)
				compressed := plain + ext
				require.NoError(t, loaded.Save(compressed))

				reloaded, err := acpi.Load(compressed)
				require.NoError(t, err, ext)
				require.Equal(t, set.Bytes(), reloaded.Bytes(), ext)
			}
		})
	}
}

// TestAppendToDSDT tests that appending every generator to one DSDT yields
// the same AML as the separate SSDTs.
func TestAppendToDSDT(t *testing.T) {
	for _, tt := range platformList(t) {
		t.Run(filepath.Base(tt), func(t *testing.T) {
			p, err := platform.LoadFile(tt)
			require.NoError(t, err)

			dsdt, err := ssdt.Table(p.TableHeader("DSDT", p.OEM.OEMTableID), []byte{aml.ZeroOp})
			require.NoError(t, err)
			set := acpi.NewTableSet()
			_, err = set.Install(dsdt)
			require.NoError(t, err)

			var want []byte
			for _, name := range generatorNames() {
				_, err := ssdt.Install(set, p, name, ssdt.Generators[name], ssdt.Options{Append: "DSDT"})
				require.NoError(t, err)
				body, err := ssdt.Build(ssdt.Generators[name], p)
				require.NoError(t, err)
				want = append(want, body...)
			}

			tables := set.Tables()
			require.Len(t, tables, 1)
			require.Equal(t, want, tables[0].Data[len(dsdt):])
			require.NoError(t, acpi.ValidateImage(set.Bytes()))
		})
	}
}

// TestRegressionHexDump tests for regression in the generated AML. After
// making a change which affects the output, you must commit changes to the
// golden dump files with:
//
//	amlgen dump -p pkg/platform/testdata/onyx.hcl -g cpu > integration/golden/onyx.cpu.txt
//
// Otherwise, this test will fail. This gives you a chance to review how your
// code affects the tables and identify any mistakes.
func TestRegressionHexDump(t *testing.T) {
	tmpDir := t.TempDir()

	for _, tt := range platformList(t) {
		base := strings.TrimSuffix(filepath.Base(tt), filepath.Ext(tt))
		p, err := platform.LoadFile(tt)
		require.NoError(t, err)

		for _, name := range generatorNames() {
			t.Run(filepath.Base(tt)+"/"+name, func(t *testing.T) {
				golden := filepath.Join("golden", base+"."+name+".txt")
				if _, err := os.Stat(golden); os.IsNotExist(err) {
					t.Skip("skipping test because no golden dump exists")
				}

				body, err := ssdt.Build(ssdt.Generators[name], p)
				require.NoError(t, err)
				buf := &bytes.Buffer{}
				aml.HexDump(buf, body)
				current := filepath.Join(tmpDir, base+"."+name+".txt")
				require.NoError(t, os.WriteFile(current, buf.Bytes(), 0o666))

				// Print diff.
				cmd := exec.Command("diff", golden, current)
				cmd.Stdout = os.Stdout
				if err := cmd.Run(); err != nil {
					t.Error("hex dumps did not compare equal")
				}
			})
		}
	}
}
