// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package injected

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletgate.network/go-walletgate/wallet"
)

const testAddr = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

// providerError mimics an EIP-1193 provider error.
type providerError struct {
	code int
	msg  string
}

func (e providerError) Error() string { return e.msg }
func (e providerError) ErrorCode() int { return e.code }

// fakeProvider scripts responses per method and records calls.
type fakeProvider struct {
	results map[string]interface{}
	errs    map[string]error
	calls   []string
	params  map[string][]interface{}
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		results: make(map[string]interface{}),
		errs:    make(map[string]error),
		params:  make(map[string][]interface{}),
	}
}

func (p *fakeProvider) Request(_ context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	p.calls = append(p.calls, method)
	p.params[method] = params
	if err := p.errs[method]; err != nil {
		return nil, err
	}
	raw, err := json.Marshal(p.results[method])
	return raw, err
}

func (p *fakeProvider) called(method string) int {
	n := 0
	for _, c := range p.calls {
		if c == method {
			n++
		}
	}
	return n
}

func TestAdapter_Supported(t *testing.T) {
	t.Parallel()

	ok, err := NewAdapter(nil).Supported(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "nil provider means no transport")

	ok, err = NewAdapter(newFakeProvider()).Supported(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAdapter_Account_Fresh(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.results["eth_requestAccounts"] = []string{stringsLower(testAddr)}
	p.results["eth_chainId"] = "0x1"
	a := NewAdapter(p)

	acct, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Ethereum})
	require.NoError(t, err)
	assert.Equal(t, testAddr, acct.Address, "addresses are checksummed")
	assert.False(t, acct.PreAuthenticated())
	assert.Zero(t, p.called("wallet_switchEthereumChain"), "no switch when already on chain")
}

func TestAdapter_Account_Reconnect(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.results["eth_accounts"] = []string{stringsLower(testAddr)}
	p.results["eth_chainId"] = "0x1"
	a := NewAdapter(p)

	acct, err := a.Account(context.Background(), wallet.AccountRequest{
		Blockchain:     wallet.Ethereum,
		Reconnect:      true,
		SessionAddress: testAddr,
	})
	require.NoError(t, err)
	assert.Equal(t, testAddr, acct.Address)
	assert.Zero(t, p.called("eth_requestAccounts"), "reconnect must not prompt")
}

func TestAdapter_Account_ReconnectFallsBack(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.results["eth_accounts"] = []string{} // Session address gone.
	p.results["eth_requestAccounts"] = []string{stringsLower(testAddr)}
	p.results["eth_chainId"] = "0x1"
	a := NewAdapter(p)

	acct, err := a.Account(context.Background(), wallet.AccountRequest{
		Blockchain:     wallet.Ethereum,
		Reconnect:      true,
		SessionAddress: "0x00000000000000000000000000000000000000aa",
	})
	require.NoError(t, err)
	assert.Equal(t, testAddr, acct.Address)
	assert.Equal(t, 1, p.called("eth_requestAccounts"))
}

func TestAdapter_Account_Rejected(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.errs["eth_requestAccounts"] = providerError{4001, "User rejected the request."}
	a := NewAdapter(p)

	_, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Ethereum})
	require.Error(t, err)
	assert.True(t, wallet.IsUserAbort(wallet.Classify(err)),
		"a 4001 rejection must classify as user abort")
}

func TestAdapter_Account_NoAccounts(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.results["eth_requestAccounts"] = []string{}
	a := NewAdapter(p)

	_, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Ethereum})
	assert.ErrorIs(t, err, wallet.ErrPermissionDenied)
}

func TestAdapter_Account_SwitchChain(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.results["eth_requestAccounts"] = []string{stringsLower(testAddr)}
	p.results["eth_chainId"] = "0x1"
	a := NewAdapter(p)

	_, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Arbitrum})
	require.NoError(t, err)
	require.Equal(t, 1, p.called("wallet_switchEthereumChain"))
	params := p.params["wallet_switchEthereumChain"]
	require.Len(t, params, 1)
	assert.Equal(t, map[string]string{"chainId": "0xa4b1"}, params[0])
}

func TestAdapter_Account_AddsUnknownChain(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.results["eth_requestAccounts"] = []string{stringsLower(testAddr)}
	p.results["eth_chainId"] = "0x1"
	p.errs["wallet_switchEthereumChain"] = providerError{codeUnknownChain, "Unrecognized chain ID."}
	a := NewAdapter(p)

	_, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Base})
	require.NoError(t, err)
	require.Equal(t, 1, p.called("wallet_addEthereumChain"))
	params := p.params["wallet_addEthereumChain"]
	require.Len(t, params, 1)
	assert.Equal(t, addChainParams[wallet.Base], params[0])
}

func TestAdapter_Account_NonEVM(t *testing.T) {
	t.Parallel()

	a := NewAdapter(newFakeProvider())
	_, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Bitcoin})
	assert.ErrorIs(t, err, wallet.ErrUnsupportedBlockchain)
}

func TestAdapter_SignMessage(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.results["personal_sign"] = "0xsignature"
	a := NewAdapter(p)

	sig, err := a.SignMessage(context.Background(), wallet.SignRequest{
		Message: "challenge",
		Address: testAddr,
	})
	require.NoError(t, err)
	assert.Equal(t, "0xsignature", sig)

	params := p.params["personal_sign"]
	require.Len(t, params, 2)
	assert.Equal(t, "0x"+hex.EncodeToString([]byte("challenge")), params[0])
	assert.Equal(t, testAddr, params[1])
}

func TestAdapter_SignMessage_Denied(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.errs["personal_sign"] = providerError{4001, "User denied message signature."}
	a := NewAdapter(p)

	_, err := a.SignMessage(context.Background(), wallet.SignRequest{
		Message: "challenge", Address: testAddr,
	})
	require.Error(t, err)
	assert.True(t, wallet.IsUserAbort(wallet.Classify(err)))

	var coded wallet.CodedError
	require.True(t, errors.As(err, &coded), "the provider code must survive wrapping")
	assert.Equal(t, 4001, coded.ErrorCode())
}

func stringsLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
