// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeInteger(t *testing.T) {
	for _, tt := range []struct {
		v    uint64
		want []byte
	}{
		{0, []byte{ZeroOp}},
		{1, []byte{OneOp}},
		{2, []byte{BytePrefix, 0x02}},
		{0xFF, []byte{BytePrefix, 0xFF}},
		{0x100, []byte{WordPrefix, 0x00, 0x01}},
		{0xFFFF, []byte{WordPrefix, 0xFF, 0xFF}},
		{0x10000, []byte{DWordPrefix, 0x00, 0x00, 0x01, 0x00}},
		{0xFFFFFFFF, []byte{DWordPrefix, 0xFF, 0xFF, 0xFF, 0xFF}},
		{0x100000000, []byte{QWordPrefix, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}},
		{0xFFFFFFFFFFFFFFFE, []byte{QWordPrefix, 0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		{^uint64(0), []byte{OnesOp}},
	} {
		got := EncodeInteger(tt.v)
		require.Equal(t, tt.want, got, "0x%X", tt.v)

		v, n, err := DecodeInteger(got)
		require.NoError(t, err)
		require.Equal(t, tt.v, v)
		require.Equal(t, len(got), n)
	}
}

func TestDecodeIntegerErrors(t *testing.T) {
	_, _, err := DecodeInteger(nil)
	require.Error(t, err)

	_, _, err = DecodeInteger([]byte{WordPrefix, 0x01})
	require.Error(t, err)

	_, _, err = DecodeInteger([]byte{StringPrefix, 'A', 0})
	var invalid ErrInvalidInput
	require.True(t, errors.As(err, &invalid))
}

func TestEncodeString(t *testing.T) {
	got, err := EncodeString("Linux")
	require.NoError(t, err)
	require.Equal(t, []byte{StringPrefix, 'L', 'i', 'n', 'u', 'x', 0x00}, got)

	got, err = EncodeString("")
	require.NoError(t, err)
	require.Equal(t, []byte{StringPrefix, 0x00}, got)

	_, err = EncodeString("a\x00b")
	require.Error(t, err)
	_, err = EncodeString("caf\xc3\xa9")
	require.Error(t, err)
}

func TestEisaID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, tt := range []struct {
			id   string
			want uint32
		}{
			{"PNP0A03", 0x030AD041},
			{"PNP0A08", 0x080AD041},
			{"PNP0C0F", 0x0F0CD041},
		} {
			got, err := EisaID(tt.id)
			require.NoError(t, err, tt.id)
			require.Equal(t, tt.want, got, tt.id)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, id := range []string{"", "PNP0A0", "PNP0A033", "pnp0A03", "P1P0A03", "PNP0G03", "PNP+A03", "PNP0a03", "PNP0A0f", "PNP 0A3"} {
			_, err := EisaID(id)
			var invalid ErrInvalidInput
			require.True(t, errors.As(err, &invalid), id)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		for _, id := range []string{"PNP0A03", "ACP0007", "QEM0002"} {
			v, err := EisaID(id)
			require.NoError(t, err)
			require.Equal(t, id, EisaIDString(v))
		}
	})
}
