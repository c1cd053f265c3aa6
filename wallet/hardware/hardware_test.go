// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package hardware

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletgate.network/go-walletgate/wallet"
)

// fakeDevice is a scriptable Device.
type fakeDevice struct {
	mutex       sync.Mutex
	detected    bool
	pairingCode string
	paired      bool
	opens       int
	closes      int
	signErr     error
	addressErr  error
}

func newFakeDevice() *fakeDevice { return &fakeDevice{detected: true} }

func (d *fakeDevice) Detect(context.Context) (bool, error) { return d.detected, nil }

func (d *fakeDevice) Open(context.Context) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.opens++
	return nil
}

func (d *fakeDevice) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.closes++
	return nil
}

func (d *fakeDevice) PairingCode() string {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.paired {
		return ""
	}
	return d.pairingCode
}

func (d *fakeDevice) ConfirmPairing(context.Context) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.paired = true
	return nil
}

func (d *fakeDevice) Address(_ context.Context, chain wallet.Blockchain, index int) (string, error) {
	if d.addressErr != nil {
		return "", d.addressErr
	}
	return "addr-" + chain.String(), nil
}

func (d *fakeDevice) Sign(_ context.Context, _ wallet.Blockchain, message string, _ int) (string, error) {
	if d.signErr != nil {
		return "", d.signErr
	}
	return "sig(" + message + ")", nil
}

func TestAdapter_Account(t *testing.T) {
	t.Parallel()

	dev := newFakeDevice()
	a := NewLedgerBTC(dev)

	acct, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Bitcoin})
	require.NoError(t, err)
	assert.Equal(t, "addr-Bitcoin", acct.Address)
	assert.Equal(t, 1, dev.opens)
}

// TestAdapter_DeviceReleased covers the device handle lifecycle: a failed
// Account releases the opened device, a successful session holds it until
// the adapter is closed, and Close is idempotent.
func TestAdapter_DeviceReleased(t *testing.T) {
	t.Parallel()

	t.Run("AddressError", func(t *testing.T) {
		t.Parallel()

		dev := newFakeDevice()
		dev.addressErr = errors.New("derivation failed")
		a := NewLedgerBTC(dev)

		_, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Bitcoin})
		require.Error(t, err)
		assert.Equal(t, 1, dev.opens)
		assert.Equal(t, 1, dev.closes, "device must be released on the error path")
	})

	t.Run("PairingRejected", func(t *testing.T) {
		t.Parallel()

		dev := newFakeDevice()
		dev.pairingCode = "FEED-BEEF"
		a := NewBitBoxBTC(dev)
		a.SetPairingHandler(func(context.Context, string) error {
			return wallet.ErrPairingRejected
		})

		_, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Bitcoin})
		require.Error(t, err)
		assert.Equal(t, 1, dev.closes, "device must be released on the error path")
	})

	t.Run("SuccessThenClose", func(t *testing.T) {
		t.Parallel()

		dev := newFakeDevice()
		a := NewLedgerBTC(dev)

		_, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Bitcoin})
		require.NoError(t, err)
		assert.Zero(t, dev.closes, "device must stay open for signing")

		// A second Account reuses the open handle.
		_, err = a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Bitcoin})
		require.NoError(t, err)
		assert.Equal(t, 1, dev.opens)

		require.NoError(t, a.Close())
		assert.Equal(t, 1, dev.closes)
		require.NoError(t, a.Close())
		assert.Equal(t, 1, dev.closes, "Close must be idempotent")
	})
}

func TestAdapter_Account_UnsupportedChain(t *testing.T) {
	t.Parallel()

	a := NewLedgerBTC(newFakeDevice())
	_, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Ethereum})
	assert.ErrorIs(t, err, wallet.ErrUnsupportedBlockchain)
}

func TestAdapter_Pairing(t *testing.T) {
	t.Parallel()

	dev := newFakeDevice()
	dev.pairingCode = "FEED-BEEF"
	a := NewBitBoxBTC(dev)

	var gotCode string
	a.SetPairingHandler(func(_ context.Context, code string) error {
		gotCode = code
		return nil
	})

	_, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Bitcoin})
	require.NoError(t, err)
	assert.Equal(t, "FEED-BEEF", gotCode)
	assert.True(t, dev.paired, "confirmed pairing must complete on the device")

	// A paired device must not re-pair.
	gotCode = ""
	_, err = a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Bitcoin})
	require.NoError(t, err)
	assert.Empty(t, gotCode)
}

func TestAdapter_Pairing_Rejected(t *testing.T) {
	t.Parallel()

	dev := newFakeDevice()
	dev.pairingCode = "FEED-BEEF"
	a := NewBitBoxBTC(dev)
	a.SetPairingHandler(func(context.Context, string) error {
		return wallet.ErrPairingRejected
	})

	_, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Bitcoin})
	assert.ErrorIs(t, err, wallet.ErrPairingRejected)
	assert.False(t, dev.paired)
}

func TestAdapter_Pairing_Timeout(t *testing.T) {
	t.Parallel()

	dev := newFakeDevice()
	dev.pairingCode = "FEED-BEEF"
	a := NewBitBoxBTC(dev, WithPairingTimeout(50*time.Millisecond))
	a.SetPairingHandler(func(ctx context.Context, _ string) error {
		<-ctx.Done() // Never confirmed.
		return ctx.Err()
	})

	_, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Bitcoin})
	assert.ErrorIs(t, err, wallet.ErrPairingTimeout)
}

func TestAdapter_Pairing_NoHandler(t *testing.T) {
	t.Parallel()

	dev := newFakeDevice()
	dev.pairingCode = "FEED-BEEF"
	a := NewBitBoxBTC(dev)

	_, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Bitcoin})
	assert.ErrorIs(t, err, wallet.ErrPairingRejected)
}

func TestAdapter_SignMessage(t *testing.T) {
	t.Parallel()

	dev := newFakeDevice()
	a := NewTrezor(dev)

	sig, err := a.SignMessage(context.Background(), wallet.SignRequest{
		Message: "challenge", Blockchain: wallet.Ethereum,
	})
	require.NoError(t, err)
	assert.Equal(t, "sig(challenge)", sig)

	dev.signErr = errors.WithMessage(wallet.ErrUserAbort, "rejected on device")
	_, err = a.SignMessage(context.Background(), wallet.SignRequest{
		Message: "challenge", Blockchain: wallet.Ethereum,
	})
	assert.True(t, wallet.IsUserAbort(err))
}

func TestAdapter_Supported(t *testing.T) {
	t.Parallel()

	dev := newFakeDevice()
	dev.detected = false
	a := NewLedgerETH(dev)

	ok, err := a.Supported(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
