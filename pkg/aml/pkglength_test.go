// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodePkgLength(t *testing.T) {
	for _, tt := range []struct {
		body int
		want []byte
	}{
		{0, []byte{0x01}},
		{62, []byte{0x3F}},
		{63, []byte{0x41, 0x04}},
		{4093, []byte{0x4F, 0xFF}},
		{4094, []byte{0x81, 0x00, 0x01}},
		{1048572, []byte{0x8F, 0xFF, 0xFF}},
		{1048573, []byte{0xC1, 0x00, 0x00, 0x01}},
		{0xFFFFFFF - 4, []byte{0xCF, 0xFF, 0xFF, 0xFF}},
	} {
		got, err := EncodePkgLength(tt.body)
		require.NoError(t, err, tt.body)
		require.Equal(t, tt.want, got, "body %d", tt.body)

		length, width, err := DecodePkgLength(got)
		require.NoError(t, err)
		require.Equal(t, len(got), width)
		require.Equal(t, tt.body+width, length)
	}
}

func TestEncodePkgLengthTooLarge(t *testing.T) {
	_, err := EncodePkgLength(0xFFFFFFF - 3)
	var tooLarge ErrTooLarge
	require.True(t, errors.As(err, &tooLarge))

	_, err = EncodePkgLength(-1)
	require.Error(t, err)
}

func TestDecodePkgLengthTruncated(t *testing.T) {
	_, _, err := DecodePkgLength(nil)
	require.Error(t, err)
	_, _, err = DecodePkgLength([]byte{0x81, 0x00})
	require.Error(t, err)
}
