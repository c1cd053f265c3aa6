// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package walletsim provides a deterministic in-memory wallet adapter for
// testing. It holds a real secp256k1 key, so signatures it produces verify
// against the EIP-191 personal-sign scheme, and its failure behavior is
// scriptable per capability.
package walletsim // import "walletgate.network/go-walletgate/wallet/walletsim"

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"math/rand"
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"walletgate.network/go-walletgate/wallet"
)

// Adapter is a scriptable wallet.Adapter. The exported script fields must
// be set before use; the adapter itself is safe for concurrent use.
type Adapter struct {
	typ    wallet.Type
	chains []wallet.Blockchain
	key    *ecdsa.PrivateKey
	addr   string

	// Script knobs.
	SupportedResult bool   // Result of Supported. Defaults to true.
	SupportedErr    error  // Error of Supported.
	AccountErr      error  // Account fails with this error.
	SignErr         error  // SignMessage fails with this error.
	SessionToken    string // Account returns a pre-authenticated session.
	FixedSignature  string // Account returns a pre-supplied signature.
	PairingCode     string // Account requires pairing confirmation.

	mutex        sync.Mutex
	pairing      wallet.PairingFunc
	accountCalls int
	signCalls    int
	prompted     int // Account calls that were not reconnect short-circuits.
	lastRequest  wallet.AccountRequest
}

var _ wallet.Adapter = (*Adapter)(nil)
var _ wallet.Pairer = (*Adapter)(nil)

// NewAdapter creates a sim adapter with a random key drawn from rng.
func NewAdapter(rng *rand.Rand, typ wallet.Type, chains ...wallet.Blockchain) *Adapter {
	key, err := ecdsa.GenerateKey(crypto.S256(), rng)
	if err != nil {
		panic(errors.WithMessage(err, "generating sim key"))
	}
	if len(chains) == 0 {
		chains = []wallet.Blockchain{wallet.Ethereum}
	}
	return &Adapter{
		typ:             typ,
		chains:          chains,
		key:             key,
		addr:            crypto.PubkeyToAddress(key.PublicKey).Hex(),
		SupportedResult: true,
	}
}

// Address returns the adapter's account address.
func (a *Adapter) Address() string { return a.addr }

func (a *Adapter) Type() wallet.Type { return a.typ }
func (a *Adapter) Blockchains() []wallet.Blockchain { return a.chains }

func (a *Adapter) Supported(context.Context) (bool, error) {
	return a.SupportedResult, a.SupportedErr
}

// SetPairingHandler implements wallet.Pairer.
func (a *Adapter) SetPairingHandler(h wallet.PairingFunc) {
	a.mutex.Lock()
	a.pairing = h
	a.mutex.Unlock()
}

func (a *Adapter) Account(ctx context.Context, req wallet.AccountRequest) (wallet.Account, error) {
	a.mutex.Lock()
	a.accountCalls++
	a.lastRequest = req
	pairing := a.pairing
	a.mutex.Unlock()

	if a.AccountErr != nil {
		return wallet.Account{}, a.AccountErr
	}
	if !wallet.Supports(a, req.Blockchain) {
		return wallet.Account{}, errors.WithMessagef(wallet.ErrUnsupportedBlockchain, "sim wallet on %s", req.Blockchain)
	}

	if a.PairingCode != "" {
		if pairing == nil {
			return wallet.Account{}, errors.New("pairing required but no handler set")
		}
		if err := pairing(ctx, a.PairingCode); err != nil {
			return wallet.Account{}, err
		}
	}

	if req.Reconnect && wallet.EqualAddresses(req.SessionAddress, a.addr) {
		return wallet.AddressAccount(a.addr), nil
	}

	a.mutex.Lock()
	a.prompted++
	a.mutex.Unlock()

	switch {
	case a.SessionToken != "":
		return wallet.SessionAccount(a.SessionToken), nil
	case a.FixedSignature != "":
		return wallet.SignedAccount(a.addr, a.FixedSignature), nil
	default:
		return wallet.AddressAccount(a.addr), nil
	}
}

func (a *Adapter) SignMessage(_ context.Context, req wallet.SignRequest) (string, error) {
	a.mutex.Lock()
	a.signCalls++
	a.mutex.Unlock()

	if a.SignErr != nil {
		return "", a.SignErr
	}
	if !wallet.EqualAddresses(req.Address, a.addr) {
		return "", errors.Errorf("sim wallet does not hold %s", req.Address)
	}

	sig, err := crypto.Sign(accounts.TextHash([]byte(req.Message)), a.key)
	if err != nil {
		return "", errors.WithMessage(err, "sim signing")
	}
	sig[crypto.RecoveryIDOffset] += 27
	return "0x" + hex.EncodeToString(sig), nil
}

// AccountCalls returns how often Account was invoked.
func (a *Adapter) AccountCalls() int {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.accountCalls
}

// SignCalls returns how often SignMessage was invoked.
func (a *Adapter) SignCalls() int {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.signCalls
}

// Prompted returns how many Account calls prompted the user instead of
// short-circuiting a reconnect.
func (a *Adapter) Prompted() int {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.prompted
}

// LastRequest returns the most recent account request.
func (a *Adapter) LastRequest() wallet.AccountRequest {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.lastRequest
}
