// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package wallet

// Account is the result of one account acquisition. It is a tagged union:
// either an on-chain address with an optional pre-supplied signature, or an
// opaque pre-authenticated session token for custodial flows where signing
// happens out-of-band. An Account is created per connect attempt and
// consumed exactly once by the orchestrator to decide the login path.
type Account struct {
	// Address is the on-chain address, empty for session accounts.
	Address string
	// Signature is an optional signature supplied together with the
	// address, skipping the interactive signing step.
	Signature string
	// Session is an opaque pre-authenticated session token.
	Session string
}

// AddressAccount creates an Account holding only an address.
func AddressAccount(address string) Account {
	return Account{Address: address}
}

// SignedAccount creates an Account holding an address and a pre-supplied
// signature over the login challenge.
func SignedAccount(address, signature string) Account {
	return Account{Address: address, Signature: signature}
}

// SessionAccount creates a pre-authenticated Account from a session token.
func SessionAccount(token string) Account {
	return Account{Session: token}
}

// PreAuthenticated returns whether the account carries a session token.
func (a Account) PreAuthenticated() bool { return a.Session != "" }

// PreSigned returns whether the account carries a pre-supplied signature.
func (a Account) PreSigned() bool { return a.Signature != "" }
