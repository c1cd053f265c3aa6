// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_NilArgs(t *testing.T) {
	assert.Panics(t, func() { NewTable(nil, "prefix") })
}

func TestTable_PutBytes_NilArgs(t *testing.T) {
	err := new(table).PutBytes("key", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value")
}
