// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeNameString(t *testing.T) {
	for _, tt := range []struct {
		path string
		want []byte
	}{
		{`\_SB`, []byte{RootChar, '_', 'S', 'B', '_'}},
		{`_SB.PCI0`, []byte{DualNamePrefix, '_', 'S', 'B', '_', 'P', 'C', 'I', '0'}},
		{`\_SB.PCI0.LPC`, []byte{RootChar, MultiNamePrefix, 3, '_', 'S', 'B', '_', 'P', 'C', 'I', '0', 'L', 'P', 'C', '_'}},
		{`^^FOO`, []byte{ParentPrefix, ParentPrefix, 'F', 'O', 'O', '_'}},
		{`^FOO.BAR`, []byte{ParentPrefix, DualNamePrefix, 'F', 'O', 'O', '_', 'B', 'A', 'R', '_'}},
		{`OSCI()`, []byte{'O', 'S', 'C', 'I'}},
		{`A()`, []byte{'A', '_', '_', '_'}},
		{`X`, []byte{'X', '_', '_', '_'}},
		{`C001`, []byte{'C', '0', '0', '1'}},
	} {
		got, err := EncodeNameString(tt.path)
		require.NoError(t, err, tt.path)
		require.Equal(t, tt.want, got, tt.path)
	}
}

func TestEncodeNameStringInvalid(t *testing.T) {
	for _, path := range []string{
		``,
		`\`,
		`^`,
		`0ABC`,
		`ABCDE`,
		`_SB.`,
		`A..B`,
		`.ABC`,
		`\\FOO`,
		`^\FOO`,
		`FOO\BAR`,
		`FOO^`,
		`FO-O`,
		`foo`,
		`FOO(`,
		`FOO)`,
		`FOO()X`,
		`FOO(BAR)`,
		`FOO.()`,
		`()`,
		`FOO(())`,
	} {
		_, err := EncodeNameString(path)
		var invalid ErrInvalidInput
		require.True(t, errors.As(err, &invalid), "%q: %v", path, err)
	}
}

func TestEncodeNameStringMaxSegments(t *testing.T) {
	path := "A"
	for i := 1; i < maxNameSegs; i++ {
		path += ".A"
	}
	got, err := EncodeNameString(path)
	require.NoError(t, err)
	require.Equal(t, []byte{MultiNamePrefix, 0xFF}, got[:2])
	require.Len(t, got, 2+4*maxNameSegs)

	_, err = EncodeNameString(path + ".A")
	require.Error(t, err)
}

func TestNameSeg(t *testing.T) {
	seg, err := NameSeg("_SB")
	require.NoError(t, err)
	require.Equal(t, [4]byte{'_', 'S', 'B', '_'}, seg)

	for _, name := range []string{"", "ABCDE", "1ABC", "A-B"} {
		_, err := NameSeg(name)
		require.Error(t, err, name)
	}
}
