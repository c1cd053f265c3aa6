// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package wallet defines the adapter abstraction over wallet providers.
// Every wallet integration, whether a browser-injected RPC provider, a USB
// hardware device, a relay-based mobile wallet or a custodial Lightning
// service, is reduced to the same capability contract so that the connection
// orchestrator stays ignorant of transport details.
package wallet // import "walletgate.network/go-walletgate/wallet"

import "context"

// AccountRequest describes one account acquisition.
type AccountRequest struct {
	// Blockchain is the chain the account is requested for.
	Blockchain Blockchain
	// Reconnect is set when a previously authenticated wallet of the same
	// type reconnects. Adapters should then short-circuit to SessionAddress
	// without prompting the user, if the provider still exposes it.
	Reconnect bool
	// SessionAddress is the address of the current session, if any.
	SessionAddress string
	// Index is the account derivation index for wallets that manage
	// multiple accounts. Zero selects the default account.
	Index int
}

// SignRequest describes one message signing operation.
type SignRequest struct {
	// Message is the opaque challenge string to sign.
	Message string
	// Address is the account that must produce the signature.
	Address string
	// Blockchain is the chain the signature is requested for.
	Blockchain Blockchain
	// Index is the account derivation index, mirroring AccountRequest.Index.
	Index int
}

// Adapter is the uniform capability surface of one wallet family. Adapters
// must be safe for use from multiple goroutines.
type Adapter interface {
	// Type returns the wallet type tag of this adapter.
	Type() Type

	// Blockchains returns the blockchains this adapter can serve. The
	// orchestrator validates requests against this set before any I/O.
	Blockchains() []Blockchain

	// Supported detects whether the underlying provider, extension or
	// hardware transport is present. It must be free of user-visible side
	// effects; it may be slow for hardware enumeration.
	Supported(ctx context.Context) (bool, error)

	// Account acquires an address, or a pre-authenticated session, for the
	// requested blockchain. Fails with ErrPermissionDenied when the user
	// declines, ErrUnsupportedBlockchain when the adapter cannot serve the
	// requested chain, or a transport-specific error.
	Account(ctx context.Context, req AccountRequest) (Account, error)

	// SignMessage produces a signature over an opaque challenge string.
	// User cancellation is surfaced as ErrUserAbort, distinct from
	// transport failure.
	SignMessage(ctx context.Context, req SignRequest) (string, error)
}

// PairingFunc confirms an out-of-band pairing code with the user. It returns
// once the user confirmed the code, or an error if the user declined.
type PairingFunc func(ctx context.Context, code string) error

// Pairer is implemented by adapters whose device requires physical pairing
// before first use. The handler is invoked at most once per Account call,
// mid-acquisition, and the adapter suspends until it returns.
type Pairer interface {
	SetPairingHandler(PairingFunc)
}

// Supports reports whether the adapter declares the given blockchain.
func Supports(a Adapter, chain Blockchain) bool {
	for _, c := range a.Blockchains() {
		if c == chain {
			return true
		}
	}
	return false
}
