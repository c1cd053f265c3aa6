// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package connect

// State is the orchestrator's externally visible state. At most one overlay
// state (install hint, sign hint, pairing hint) is active at a time.
type State uint8

const (
	// StateIdle waits for a connect trigger. A failed attempt returns here
	// so the same orchestrator can retry.
	StateIdle State = iota
	// StateInstallHint renders the wallet-specific installation guidance
	// because the transport is absent.
	StateInstallHint
	// StateConnecting acquires the account from the adapter.
	StateConnecting
	// StateSignHint suspends the attempt until the user confirms or
	// dismisses the signature request.
	StateSignHint
	// StatePairingHint suspends the attempt until the user confirms the
	// hardware pairing code.
	StatePairingHint
	// StateLoggingIn exchanges the signed challenge for a session.
	StateLoggingIn
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInstallHint:
		return "install-hint"
	case StateConnecting:
		return "connecting"
	case StateSignHint:
		return "sign-hint"
	case StatePairingHint:
		return "pairing-hint"
	case StateLoggingIn:
		return "logging-in"
	default:
		return "unknown"
	}
}
