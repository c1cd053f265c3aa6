// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package cli adapts manual terminal entry to the wallet.Adapter contract.
// The user pastes an address and, when asked, a signature produced with
// their own tooling. Useful for cold setups where no machine-readable
// wallet transport exists.
package cli // import "walletgate.network/go-walletgate/wallet/cli"

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"walletgate.network/go-walletgate/wallet"
)

// Adapter reads addresses and signatures from a terminal.
type Adapter struct {
	in     *bufio.Scanner
	out    io.Writer
	chains []wallet.Blockchain
}

var _ wallet.Adapter = (*Adapter)(nil)

// NewAdapter creates a terminal adapter reading from in and prompting on
// out. Defaults to all registered blockchains when none are given.
func NewAdapter(in io.Reader, out io.Writer, chains ...wallet.Blockchain) *Adapter {
	if len(chains) == 0 {
		chains = []wallet.Blockchain{
			wallet.Ethereum, wallet.Bitcoin, wallet.Monero, wallet.Zano,
		}
	}
	return &Adapter{
		in:     bufio.NewScanner(in),
		out:    out,
		chains: chains,
	}
}

func (a *Adapter) Type() wallet.Type { return wallet.TypeCLI }
func (a *Adapter) Blockchains() []wallet.Blockchain { return a.chains }

// Supported always holds, a terminal needs no transport.
func (a *Adapter) Supported(context.Context) (bool, error) { return true, nil }

// Account prompts for an address. An empty line aborts. Pasting
// "address signature" in one line skips the later signing prompt.
func (a *Adapter) Account(ctx context.Context, req wallet.AccountRequest) (wallet.Account, error) {
	if !wallet.Supports(a, req.Blockchain) {
		return wallet.Account{}, errors.WithMessagef(wallet.ErrUnsupportedBlockchain,
			"manual entry on %s", req.Blockchain)
	}
	if req.Reconnect && req.SessionAddress != "" {
		return wallet.AddressAccount(req.SessionAddress), nil
	}

	line, err := a.prompt(ctx, fmt.Sprintf("%s address (empty to cancel): ", req.Blockchain))
	if err != nil {
		return wallet.Account{}, err
	}
	if line == "" {
		return wallet.Account{}, errors.WithMessage(wallet.ErrUserAbort, "empty address entry")
	}

	if fields := strings.Fields(line); len(fields) == 2 {
		return wallet.SignedAccount(wallet.ChecksumAddress(fields[0]), fields[1]), nil
	}
	return wallet.AddressAccount(wallet.ChecksumAddress(line)), nil
}

// SignMessage shows the login challenge and prompts for a signature
// produced out-of-band. An empty line aborts.
func (a *Adapter) SignMessage(ctx context.Context, req wallet.SignRequest) (string, error) {
	fmt.Fprintf(a.out, "sign the following message with %s:\n%s\n", req.Address, req.Message)
	sig, err := a.prompt(ctx, "signature (empty to cancel): ")
	if err != nil {
		return "", err
	}
	if sig == "" {
		return "", errors.WithMessage(wallet.ErrUserAbort, "empty signature entry")
	}
	return sig, nil
}

// prompt writes the prompt and reads one trimmed line. The read itself is
// not interruptible, so the context is only checked up front.
func (a *Adapter) prompt(ctx context.Context, msg string) (string, error) {
	select {
	case <-ctx.Done():
		return "", errors.WithMessage(wallet.ErrUserAbort, ctx.Err().Error())
	default:
	}
	fmt.Fprint(a.out, msg)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", errors.WithMessage(err, "reading input")
		}
		return "", errors.WithMessage(wallet.ErrUserAbort, "input closed")
	}
	return strings.TrimSpace(a.in.Text()), nil
}
