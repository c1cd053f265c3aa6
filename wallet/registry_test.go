// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package wallet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdapter struct {
	typ Type
}

func (a *stubAdapter) Type() Type { return a.typ }
func (a *stubAdapter) Blockchains() []Blockchain { return []Blockchain{Ethereum} }

func (a *stubAdapter) Supported(context.Context) (bool, error) { return true, nil }

func (a *stubAdapter) Account(context.Context, AccountRequest) (Account, error) {
	return AddressAccount("0x0"), nil
}

func (a *stubAdapter) SignMessage(context.Context, SignRequest) (string, error) {
	return "", nil
}

func TestRegistry(t *testing.T) {
	const typ = Type("registry-test")
	defer unregister(typ)

	_, err := Resolve(typ)
	assert.Error(t, err, "resolving an unregistered type must fail")

	a := &stubAdapter{typ: typ}
	Register(a)

	got, err := Resolve(typ)
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.Contains(t, Registered(), typ)

	assert.Panics(t, func() { Register(a) }, "duplicate registration must panic")
	assert.Panics(t, func() { Register(nil) }, "nil registration must panic")
}

func TestSupports(t *testing.T) {
	a := &stubAdapter{typ: TypeMetaMask}
	assert.True(t, Supports(a, Ethereum))
	assert.False(t, Supports(a, Bitcoin))
}
