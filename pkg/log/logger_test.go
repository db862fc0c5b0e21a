// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	var out bytes.Buffer
	saved := DefaultLogger
	DefaultLogger = New(&out)
	defer func() {
		DefaultLogger = saved
		SetVerbose(false)
	}()

	Debugf("hidden %d", 1)
	require.Empty(t, out.String())

	SetVerbose(true)
	Debugf("shown %d", 2)
	Infof("info")
	Warnf("warn")
	Errorf("error")

	s := out.String()
	require.Contains(t, s, "[amlgen][DEBUG] shown 2")
	require.Contains(t, s, "[amlgen][INFO] info")
	require.Contains(t, s, "[amlgen][WARN] warn")
	require.Contains(t, s, "[amlgen][ERROR] error")
	require.NotContains(t, s, "hidden")
}
