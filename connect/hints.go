// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package connect

import "walletgate.network/go-walletgate/wallet"

// Hints is the stateless overlay surface driven by the orchestrator's state
// machine. Implementations render; user reactions are fed back through the
// orchestrator's Confirm and Dismiss methods. The orchestrator guarantees
// that only one overlay is requested at a time.
type Hints interface {
	// ShowInstallHint renders installation guidance for the wallet type
	// whose transport is absent.
	ShowInstallHint(typ wallet.Type)
	// ShowSignHint renders the signature confirmation for the pending
	// request.
	ShowSignHint(req wallet.SignRequest)
	// ShowPairingHint renders the hardware pairing code.
	ShowPairingHint(code string)
	// Clear removes any visible overlay.
	Clear()
}

// NopHints is a Hints implementation that renders nothing. Useful for
// headless flows and tests.
type NopHints struct{}

func (NopHints) ShowInstallHint(wallet.Type) {}
func (NopHints) ShowSignHint(wallet.SignRequest) {}
func (NopHints) ShowPairingHint(string) {}
func (NopHints) Clear() {}
