// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package auth talks to the backend authentication API: it fetches the
// challenge message for an address and exchanges a signed challenge for an
// access token. The core treats both as opaque request/response pairs.
package auth // import "walletgate.network/go-walletgate/auth"

import "context"

// SignInRequest is the payload of a sign-in exchange.
type SignInRequest struct {
	Address    string `json:"address"`
	Signature  string `json:"signature"`
	Blockchain string `json:"blockchain,omitempty"`
}

// Client is the backend authentication API.
type Client interface {
	// Challenge returns the message that must be signed to authenticate
	// the given address.
	Challenge(ctx context.Context, address string) (string, error)

	// SignIn exchanges a signed challenge for an access token. An invalid
	// signature fails with wallet.ErrAuthenticationFailed.
	SignIn(ctx context.Context, req SignInRequest) (string, error)
}
