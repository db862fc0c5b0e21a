// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/linuxboot/amlgen/pkg/acpi"
	"github.com/linuxboot/amlgen/pkg/aml"
	"github.com/linuxboot/amlgen/pkg/platform"
	"github.com/linuxboot/amlgen/pkg/ssdt"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, name string) string {
	t.Helper()
	p := &platform.Platform{}
	p.SetDefaults()
	set := acpi.NewTableSet()
	for _, id := range []string{"ONE", "TWO"} {
		table, err := ssdt.Table(p.TableHeader("SSDT", id), []byte{aml.OneOp})
		require.NoError(t, err)
		_, err = set.Install(table)
		require.NoError(t, err)
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, set.Save(path))
	return path
}

func TestList(t *testing.T) {
	path := writeImage(t, "tables.dat.xz")
	var out bytes.Buffer
	require.NoError(t, run(&out, []string{path, "list"}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "SSDT"))
}

func TestCheck(t *testing.T) {
	path := writeImage(t, "tables.dat")
	var out bytes.Buffer
	require.NoError(t, run(&out, []string{path, "check"}))
	require.Equal(t, "OK\n", out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[9]++
	require.NoError(t, os.WriteFile(path, data, 0o644))
	require.Error(t, run(&out, []string{path, "check"}))
}

func TestDigest(t *testing.T) {
	path := writeImage(t, "tables.dat")
	var out bytes.Buffer
	*hash = "sm3"
	defer func() { *hash = "sha256" }()
	require.NoError(t, run(&out, []string{path, "digest"}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	fields := strings.Fields(lines[1])
	require.Equal(t, []string{"SSDT", "TWO"}, fields[:2])
	require.Len(t, fields[2], 64)

	*hash = "md5"
	require.Error(t, run(&out, []string{path, "digest"}))
}

func TestExtract(t *testing.T) {
	path := writeImage(t, "tables.dat.zz")
	*dir = t.TempDir()
	defer func() { *dir = "." }()
	var out bytes.Buffer
	require.NoError(t, run(&out, []string{path, "extract"}))
	for _, name := range []string{"SSDT.dat", "SSDT-1.dat"} {
		data, err := os.ReadFile(filepath.Join(*dir, name))
		require.NoError(t, err)
		require.Zero(t, acpi.Checksum(data))
	}
}

func TestConvert(t *testing.T) {
	path := writeImage(t, "tables.dat.lz4")
	out := filepath.Join(t.TempDir(), "tables.dat.zst")
	require.NoError(t, run(&bytes.Buffer{}, []string{path, "convert", out}))
	tables, err := acpi.Load(out)
	require.NoError(t, err)
	require.Len(t, tables.Tables(), 2)
}

func TestRunErrors(t *testing.T) {
	path := writeImage(t, "tables.dat")
	require.Error(t, run(&bytes.Buffer{}, nil))
	require.Error(t, run(&bytes.Buffer{}, []string{path, "frobnicate"}))
	require.Error(t, run(&bytes.Buffer{}, []string{path, "convert"}))
	require.Error(t, run(&bytes.Buffer{}, []string{filepath.Join(t.TempDir(), "missing"), "list"}))
}
