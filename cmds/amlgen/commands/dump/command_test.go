// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dump

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/linuxboot/amlgen/cmds/amlgen/commands"
	"github.com/linuxboot/amlgen/pkg/acpi"
	"github.com/linuxboot/amlgen/pkg/platform"
	"github.com/linuxboot/amlgen/pkg/ssdt"
	"github.com/stretchr/testify/require"
)

const platformPath = "../../../../pkg/platform/testdata/onyx.hcl"

func TestExecuteHexDump(t *testing.T) {
	var out bytes.Buffer
	cmd := &Command{PlatformPath: platformPath, Generator: "cpu", stdout: &out}
	require.NoError(t, cmd.Execute(nil))
	require.Contains(t, out.String(), "00000000")
	require.Contains(t, out.String(), "5C")
}

func TestExecuteTableToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pci.aml")
	var out bytes.Buffer
	cmd := &Command{PlatformPath: platformPath, Generator: "pci", Table: true, OutputPath: path, stdout: &out}
	require.NoError(t, cmd.Execute(nil))
	require.Zero(t, out.Len())

	table, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, acpi.ValidateImage(table))
	h, err := acpi.ParseHeader(table)
	require.NoError(t, err)
	require.Equal(t, "SSDT", h.SignatureString())
	require.Equal(t, uint32(len(table)), h.Length)

	p, err := platform.LoadFile(platformPath)
	require.NoError(t, err)
	body, err := ssdt.Build(ssdt.PCI, p)
	require.NoError(t, err)
	require.Equal(t, body, table[acpi.HeaderSize:])
}

func TestExecuteErrors(t *testing.T) {
	var args commands.ErrArgs
	cmd := &Command{PlatformPath: platformPath, Generator: "cpu", stdout: &bytes.Buffer{}}
	require.True(t, errors.As(cmd.Execute([]string{"extra"}), &args))

	cmd.Generator = "gpu"
	require.True(t, errors.As(cmd.Execute(nil), &args))
}
