// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package show

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/linuxboot/amlgen/cmds/amlgen/commands"
	"github.com/linuxboot/amlgen/pkg/platform"
	"github.com/stretchr/testify/require"
)

const platformPath = "../../../../pkg/platform/testdata/onyx.hcl"

func TestExecuteText(t *testing.T) {
	var out bytes.Buffer
	cmd := &Command{PlatformPath: platformPath, stdout: &out}
	require.NoError(t, cmd.Execute(nil))
	s := strings.ToUpper(out.String())
	require.Contains(t, s, "PROCESSORS (4)")
	require.Contains(t, s, "ROOT BRIDGES (3)")
}

func TestExecuteYAML(t *testing.T) {
	var out bytes.Buffer
	format := "yaml"
	cmd := &Command{PlatformPath: platformPath, Format: &format, stdout: &out}
	require.NoError(t, cmd.Execute(nil))

	// The printed description loads again to the same platform.
	want, err := platform.LoadFile(platformPath)
	require.NoError(t, err)
	got, err := platform.ParseYAML(out.Bytes())
	require.NoError(t, err)
	require.Equal(t, want.OEM, got.OEM)
	require.Equal(t, want.IPMI, got.IPMI)
	require.Equal(t, want.Processors, got.Processors)
	require.Len(t, got.RootBridges, len(want.RootBridges))
}

func TestExecuteErrors(t *testing.T) {
	var args commands.ErrArgs
	cmd := &Command{PlatformPath: platformPath, stdout: &bytes.Buffer{}}
	require.True(t, errors.As(cmd.Execute([]string{"extra"}), &args))

	format := "xml"
	cmd.Format = &format
	require.True(t, errors.As(cmd.Execute(nil), &args))

	cmd = &Command{PlatformPath: "missing.hcl", stdout: &bytes.Buffer{}}
	require.Error(t, cmd.Execute(nil))
}
