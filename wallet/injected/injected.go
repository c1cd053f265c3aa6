// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package injected adapts EIP-1193 injected EVM providers (MetaMask-class
// browser extensions) to the wallet.Adapter contract. All interaction runs
// through the provider's request method; user rejections surface as coded
// provider errors that classify as aborts.
package injected // import "walletgate.network/go-walletgate/wallet/injected"

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"walletgate.network/go-walletgate/log"
	"walletgate.network/go-walletgate/wallet"
)

// Provider is the EIP-1193 request surface of an injected wallet.
type Provider interface {
	// Request performs one provider RPC. The result is the raw JSON
	// response value.
	Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error)
}

// codeUnknownChain is returned by wallet_switchEthereumChain for chains the
// wallet does not know yet.
const codeUnknownChain = 4902

// Adapter drives an injected EVM provider.
type Adapter struct {
	provider Provider
	typ      wallet.Type
	chains   []wallet.Blockchain
	log      log.Logger
}

var _ wallet.Adapter = (*Adapter)(nil)

// Option configures an Adapter.
type Option func(*Adapter)

// WithType overrides the wallet type tag, for non-MetaMask injected
// providers.
func WithType(t wallet.Type) Option {
	return func(a *Adapter) { a.typ = t }
}

// WithBlockchains restricts the served chains. Defaults to all EVM chains.
func WithBlockchains(chains ...wallet.Blockchain) Option {
	return func(a *Adapter) { a.chains = chains }
}

// NewAdapter creates an adapter over the given provider. A nil provider is
// valid and reports the transport as unavailable.
func NewAdapter(p Provider, opts ...Option) *Adapter {
	a := &Adapter{
		provider: p,
		typ:      wallet.TypeMetaMask,
		chains: []wallet.Blockchain{
			wallet.Ethereum, wallet.Arbitrum, wallet.Optimism,
			wallet.Polygon, wallet.Base, wallet.BinanceSmartChain,
		},
		log: log.WithField("wallet", wallet.TypeMetaMask),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Type() wallet.Type { return a.typ }
func (a *Adapter) Blockchains() []wallet.Blockchain { return a.chains }

// Supported reports whether a provider is injected.
func (a *Adapter) Supported(context.Context) (bool, error) {
	return a.provider != nil, nil
}

// Account acquires an address. Reconnects short-circuit through
// eth_accounts, which does not prompt; fresh connects prompt through
// eth_requestAccounts. The provider is switched to the requested chain
// before the address is returned.
func (a *Adapter) Account(ctx context.Context, req wallet.AccountRequest) (wallet.Account, error) {
	if a.provider == nil {
		return wallet.Account{}, wallet.ErrTransportUnavailable
	}
	if !wallet.Supports(a, req.Blockchain) {
		return wallet.Account{}, errors.WithMessagef(wallet.ErrUnsupportedBlockchain,
			"injected provider on %s", req.Blockchain)
	}

	if req.Reconnect {
		if addr, ok := a.knownAccount(ctx, req.SessionAddress); ok {
			if err := a.ensureChain(ctx, req.Blockchain); err != nil {
				return wallet.Account{}, err
			}
			return wallet.AddressAccount(addr), nil
		}
	}

	addrs, err := a.accounts(ctx, "eth_requestAccounts")
	if err != nil {
		return wallet.Account{}, err
	}
	if len(addrs) == 0 {
		return wallet.Account{}, errors.WithMessage(wallet.ErrPermissionDenied,
			"provider returned no accounts")
	}
	idx := req.Index
	if idx < 0 || idx >= len(addrs) {
		idx = 0
	}

	if err := a.ensureChain(ctx, req.Blockchain); err != nil {
		return wallet.Account{}, err
	}
	return wallet.AddressAccount(wallet.ChecksumAddress(addrs[idx])), nil
}

// SignMessage signs the challenge via personal_sign.
func (a *Adapter) SignMessage(ctx context.Context, req wallet.SignRequest) (string, error) {
	if a.provider == nil {
		return "", wallet.ErrTransportUnavailable
	}

	hexMsg := "0x" + hex.EncodeToString([]byte(req.Message))
	raw, err := a.provider.Request(ctx, "personal_sign", hexMsg, req.Address)
	if err != nil {
		return "", errors.WithMessage(err, "personal_sign")
	}
	var sig string
	if err := json.Unmarshal(raw, &sig); err != nil {
		return "", errors.WithMessage(err, "decoding signature")
	}
	return sig, nil
}

// knownAccount checks without prompting whether the provider still exposes
// the session address.
func (a *Adapter) knownAccount(ctx context.Context, sessionAddr string) (string, bool) {
	if sessionAddr == "" {
		return "", false
	}
	addrs, err := a.accounts(ctx, "eth_accounts")
	if err != nil {
		a.log.WithError(err).Debug("silent account lookup failed")
		return "", false
	}
	for _, addr := range addrs {
		if wallet.EqualAddresses(addr, sessionAddr) {
			return wallet.ChecksumAddress(addr), true
		}
	}
	return "", false
}

func (a *Adapter) accounts(ctx context.Context, method string) ([]string, error) {
	raw, err := a.provider.Request(ctx, method)
	if err != nil {
		return nil, errors.WithMessage(err, method)
	}
	var addrs []string
	if err := json.Unmarshal(raw, &addrs); err != nil {
		return nil, errors.WithMessagef(err, "decoding %s result", method)
	}
	return addrs, nil
}

// ensureChain switches the provider to the requested chain, registering it
// first if the wallet does not know it.
func (a *Adapter) ensureChain(ctx context.Context, chain wallet.Blockchain) error {
	id, ok := chain.ChainID()
	if !ok {
		return errors.WithMessagef(wallet.ErrUnsupportedBlockchain, "%s is not an EVM chain", chain)
	}
	hexID := fmt.Sprintf("0x%x", id)

	if raw, err := a.provider.Request(ctx, "eth_chainId"); err == nil {
		var current string
		if json.Unmarshal(raw, &current) == nil && current == hexID {
			return nil
		}
	}

	_, err := a.provider.Request(ctx, "wallet_switchEthereumChain",
		map[string]string{"chainId": hexID})
	if err == nil {
		return nil
	}

	var coded wallet.CodedError
	if errors.As(err, &coded) && coded.ErrorCode() == codeUnknownChain {
		if params, ok := addChainParams[chain]; ok {
			_, err = a.provider.Request(ctx, "wallet_addEthereumChain", params)
			return errors.WithMessage(err, "wallet_addEthereumChain")
		}
	}
	return errors.WithMessage(err, "wallet_switchEthereumChain")
}
