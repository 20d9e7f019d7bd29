// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

type QuickConfig = quick.Config

// QuickCheck is a thin wrapper around testing/quick.Check that reports failures through
// testify.
func QuickCheck(t *testing.T, fn interface{}, cfg QuickConfig) {
	t.Helper()
	assert.NoError(t, quick.Check(fn, &cfg))
}
