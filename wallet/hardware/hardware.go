// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package hardware adapts USB hardware wallets (Ledger, BitBox, Trezor) to
// the wallet.Adapter contract. The device transport is abstracted behind
// the Device interface; family constructors differ only in the supported
// chains and whether a pairing-code confirmation is required on first use.
package hardware // import "walletgate.network/go-walletgate/wallet/hardware"

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"walletgate.network/go-walletgate/log"
	"walletgate.network/go-walletgate/wallet"
)

// Device is one physical wallet over its transport (WebHID, WebUSB or a
// vendor bridge). Implementations are expected to map device rejections to
// wallet.ErrUserAbort and transport loss to wallet.ErrTransportUnavailable.
type Device interface {
	// Detect reports whether the transport can reach a device. Must not
	// prompt.
	Detect(ctx context.Context) (bool, error)
	// Open prepares the device for use.
	Open(ctx context.Context) error
	// Close releases the device.
	Close() error
	// PairingCode returns the code to confirm on first-time pairing, or
	// empty if the device is already paired.
	PairingCode() string
	// ConfirmPairing completes the pairing after the user confirmed the
	// code on the host side.
	ConfirmPairing(ctx context.Context) error
	// Address derives the address for a chain and account index.
	Address(ctx context.Context, chain wallet.Blockchain, index int) (string, error)
	// Sign signs a message with the account at index.
	Sign(ctx context.Context, chain wallet.Blockchain, message string, index int) (string, error)
}

// defaultPairingTimeout bounds how long a pairing confirmation may stay
// unanswered before the attempt fails with wallet.ErrPairingTimeout.
const defaultPairingTimeout = 2 * time.Minute

// Adapter drives one hardware wallet family.
type Adapter struct {
	typ            wallet.Type
	chains         []wallet.Blockchain
	dev            Device
	pairingTimeout time.Duration
	log            log.Logger

	mutex   sync.Mutex
	pairing wallet.PairingFunc
	opened  bool
}

var (
	_ wallet.Adapter = (*Adapter)(nil)
	_ wallet.Pairer  = (*Adapter)(nil)
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithPairingTimeout overrides the pairing confirmation timeout.
func WithPairingTimeout(d time.Duration) Option {
	return func(a *Adapter) { a.pairingTimeout = d }
}

// NewAdapter creates a hardware adapter. Prefer the family constructors
// below.
func NewAdapter(typ wallet.Type, dev Device, chains []wallet.Blockchain, opts ...Option) *Adapter {
	if dev == nil {
		panic("device must not be nil")
	}
	a := &Adapter{
		typ:            typ,
		chains:         chains,
		dev:            dev,
		pairingTimeout: defaultPairingTimeout,
		log:            log.WithField("wallet", typ),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewBitBoxBTC creates the BitBox adapter for Bitcoin.
func NewBitBoxBTC(dev Device, opts ...Option) *Adapter {
	return NewAdapter(wallet.TypeBitBoxBTC, dev, []wallet.Blockchain{wallet.Bitcoin}, opts...)
}

// NewBitBoxETH creates the BitBox adapter for EVM chains.
func NewBitBoxETH(dev Device, opts ...Option) *Adapter {
	return NewAdapter(wallet.TypeBitBoxETH, dev,
		[]wallet.Blockchain{wallet.Ethereum, wallet.Arbitrum, wallet.Optimism}, opts...)
}

// NewLedgerBTC creates the Ledger adapter for Bitcoin.
func NewLedgerBTC(dev Device, opts ...Option) *Adapter {
	return NewAdapter(wallet.TypeLedgerBTC, dev, []wallet.Blockchain{wallet.Bitcoin}, opts...)
}

// NewLedgerETH creates the Ledger adapter for EVM chains.
func NewLedgerETH(dev Device, opts ...Option) *Adapter {
	return NewAdapter(wallet.TypeLedgerETH, dev,
		[]wallet.Blockchain{wallet.Ethereum, wallet.Arbitrum, wallet.Optimism}, opts...)
}

// NewTrezor creates the Trezor adapter.
func NewTrezor(dev Device, opts ...Option) *Adapter {
	return NewAdapter(wallet.TypeTrezor, dev,
		[]wallet.Blockchain{wallet.Bitcoin, wallet.Ethereum}, opts...)
}

func (a *Adapter) Type() wallet.Type { return a.typ }
func (a *Adapter) Blockchains() []wallet.Blockchain { return a.chains }

// Supported reports whether the transport can reach a device.
func (a *Adapter) Supported(ctx context.Context) (bool, error) {
	return a.dev.Detect(ctx)
}

// SetPairingHandler implements wallet.Pairer.
func (a *Adapter) SetPairingHandler(h wallet.PairingFunc) {
	a.mutex.Lock()
	a.pairing = h
	a.mutex.Unlock()
}

// Account opens the device, runs the one-shot pairing confirmation if the
// device requires it, and derives the address for the requested chain.
func (a *Adapter) Account(ctx context.Context, req wallet.AccountRequest) (wallet.Account, error) {
	if !wallet.Supports(a, req.Blockchain) {
		return wallet.Account{}, errors.WithMessagef(wallet.ErrUnsupportedBlockchain,
			"%s on %s", a.typ, req.Blockchain)
	}

	if err := a.open(ctx); err != nil {
		return wallet.Account{}, errors.WithMessage(err, "opening device")
	}

	if code := a.dev.PairingCode(); code != "" {
		if err := a.pair(ctx, code); err != nil {
			a.release()
			return wallet.Account{}, err
		}
	}

	addr, err := a.dev.Address(ctx, req.Blockchain, req.Index)
	if err != nil {
		a.release()
		return wallet.Account{}, errors.WithMessage(err, "deriving address")
	}
	a.log.WithField("blockchain", req.Blockchain).Debug("derived hardware address")
	return wallet.AddressAccount(addr), nil
}

// SignMessage signs on the device. The user confirms on the device itself;
// a device-side rejection surfaces as wallet.ErrUserAbort from the Device.
func (a *Adapter) SignMessage(ctx context.Context, req wallet.SignRequest) (string, error) {
	sig, err := a.dev.Sign(ctx, req.Blockchain, req.Message, req.Index)
	return sig, errors.WithMessage(err, "device signing")
}

// Close releases the device after the session is done. It is idempotent.
func (a *Adapter) Close() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if !a.opened {
		return nil
	}
	a.opened = false
	return errors.WithMessage(a.dev.Close(), "closing device")
}

// open opens the device unless a prior Account call left it open.
func (a *Adapter) open(ctx context.Context) error {
	a.mutex.Lock()
	opened := a.opened
	a.mutex.Unlock()
	if opened {
		return nil
	}
	if err := a.dev.Open(ctx); err != nil {
		return err
	}
	a.mutex.Lock()
	a.opened = true
	a.mutex.Unlock()
	return nil
}

// release closes the device on a failed Account, keeping the failure as the
// surfaced error.
func (a *Adapter) release() {
	if err := a.Close(); err != nil {
		a.log.WithError(err).Warn("closing device failed")
	}
}

// pair runs the host-side confirmation of the pairing code and then the
// device-side completion. The host confirmation is bounded by the pairing
// timeout; the device has no timeout of its own and relies on the user.
func (a *Adapter) pair(ctx context.Context, code string) error {
	a.mutex.Lock()
	confirm := a.pairing
	a.mutex.Unlock()
	if confirm == nil {
		return errors.WithMessage(wallet.ErrPairingRejected, "no pairing handler installed")
	}

	pairCtx, cancel := context.WithTimeout(ctx, a.pairingTimeout)
	defer cancel()

	if err := confirm(pairCtx, code); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return errors.WithMessagef(wallet.ErrPairingTimeout, "after %v", a.pairingTimeout)
		}
		return err
	}
	return errors.WithMessage(a.dev.ConfirmPairing(ctx), "completing pairing")
}
