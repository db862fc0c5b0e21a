// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package generate

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/linuxboot/amlgen/cmds/amlgen/commands"
	"github.com/linuxboot/amlgen/pkg/acpi"
	"github.com/linuxboot/amlgen/pkg/aml"
	"github.com/linuxboot/amlgen/pkg/platform"
	"github.com/linuxboot/amlgen/pkg/ssdt"
	"github.com/stretchr/testify/require"
)

const platformPath = "../../../../pkg/platform/testdata/onyx.hcl"

func TestExecuteNewTables(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tables.dat.zst")
	cmd := &Command{
		PlatformPath: platformPath,
		OutputPath:   out,
		Generators:   []string{"cpu", "pci"},
	}
	require.NoError(t, cmd.Execute(nil))

	tables, err := acpi.Load(out)
	require.NoError(t, err)
	require.Len(t, tables.Tables(), 3)
	for _, id := range []string{"AMDCPU", "AMDPCI"} {
		_, err := acpi.Find(tables, "SSDT", id)
		require.NoError(t, err, id)
	}
	_, err = acpi.Find(tables, acpi.SPMISignature, "AMD_EDK2")
	require.NoError(t, err)
}

func TestExecuteTableID(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tables.dat")
	cmd := &Command{
		PlatformPath: platformPath,
		OutputPath:   out,
		Generators:   []string{"pci"},
		TableID:      "PCISSDT",
		NoSPMI:       true,
	}
	require.NoError(t, cmd.Execute(nil))

	tables, err := acpi.Load(out)
	require.NoError(t, err)
	require.Len(t, tables.Tables(), 1)
	_, err = acpi.Find(tables, "SSDT", "PCISSDT")
	require.NoError(t, err)

	// One table ID cannot name two new tables.
	cmd.Generators = []string{"cpu", "pci"}
	var args commands.ErrArgs
	require.True(t, errors.As(cmd.Execute(nil), &args))
}

func TestExecuteAppend(t *testing.T) {
	dir := t.TempDir()
	p, err := platform.LoadFile(platformPath)
	require.NoError(t, err)

	dsdt, err := ssdt.Table(p.TableHeader("DSDT", p.OEM.OEMTableID), []byte{aml.ZeroOp})
	require.NoError(t, err)
	in := acpi.NewTableSet()
	_, err = in.Install(dsdt)
	require.NoError(t, err)
	inPath := filepath.Join(dir, "dsdt.dat")
	require.NoError(t, in.Save(inPath))

	outPath := filepath.Join(dir, "out.dat")
	cmd := &Command{
		PlatformPath: platformPath,
		InputPath:    inPath,
		OutputPath:   outPath,
		Generators:   []string{"cpu"},
		Append:       "DSDT",
		NoSPMI:       true,
	}
	require.NoError(t, cmd.Execute(nil))

	tables, err := acpi.Load(outPath)
	require.NoError(t, err)
	require.Len(t, tables.Tables(), 1)
	tbl, err := acpi.Find(tables, "DSDT", p.OEM.OEMTableID)
	require.NoError(t, err)
	require.Greater(t, len(tbl.Data), len(dsdt))
}

func TestExecuteErrors(t *testing.T) {
	cmd := &Command{PlatformPath: platformPath, OutputPath: filepath.Join(t.TempDir(), "x.dat")}
	var args commands.ErrArgs
	require.True(t, errors.As(cmd.Execute([]string{"extra"}), &args))

	cmd.Generators = []string{"gpu"}
	require.True(t, errors.As(cmd.Execute(nil), &args))
}
