// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletgate.network/go-walletgate/db/memorydb"
	"walletgate.network/go-walletgate/wallet"
)

func TestStore_Defaults(t *testing.T) {
	t.Parallel()

	s := NewStore(memorydb.NewDatabase())

	_, ok := s.ActiveWallet()
	assert.False(t, ok)
	assert.True(t, s.ShowsSignatureInfo(), "signature hint must default to shown")
	_, ok = s.RedirectURI()
	assert.False(t, ok)
	_, ok = s.Language()
	assert.False(t, ok)
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	s := NewStore(memorydb.NewDatabase())

	require.NoError(t, s.SetActiveWallet(wallet.TypeMetaMask))
	typ, ok := s.ActiveWallet()
	require.True(t, ok)
	assert.Equal(t, wallet.TypeMetaMask, typ)

	require.NoError(t, s.ClearActiveWallet())
	_, ok = s.ActiveWallet()
	assert.False(t, ok)

	require.NoError(t, s.SetShowsSignatureInfo(false))
	assert.False(t, s.ShowsSignatureInfo())

	require.NoError(t, s.SetRedirectURI("https://app.example/buy"))
	uri, ok := s.RedirectURI()
	require.True(t, ok)
	assert.Equal(t, "https://app.example/buy", uri)

	require.NoError(t, s.SetLanguage("de"))
	lang, ok := s.Language()
	require.True(t, ok)
	assert.Equal(t, "de", lang)
}

// TestStore_CorruptValue tests that unreadable entries fall back to the
// default instead of failing.
func TestStore_CorruptValue(t *testing.T) {
	t.Parallel()

	d := memorydb.FromData(map[string]string{
		"showsSignatureInfo": "{not json",
		"activeWallet":       "42",
	})
	s := NewStore(d)

	assert.True(t, s.ShowsSignatureInfo())
	_, ok := s.ActiveWallet()
	assert.False(t, ok, "a non-string wallet entry must count as missing")
}
