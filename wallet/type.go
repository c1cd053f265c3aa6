// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package wallet

// Type identifies a wallet adapter family. It is immutable per connection
// attempt and persisted across restarts as the last active wallet.
type Type string

const (
	// TypeMetaMask is the injected EVM provider family (MetaMask, Rabby
	// and other EIP-1193 extensions).
	TypeMetaMask Type = "MetaMask"
	// TypeWalletConnect is the relay-based mobile wallet family.
	TypeWalletConnect Type = "WalletConnect"
	// TypeLedgerBTC and TypeLedgerETH are Ledger hardware wallets.
	TypeLedgerBTC Type = "LedgerBtc"
	TypeLedgerETH Type = "LedgerEth"
	// TypeBitBoxBTC and TypeBitBoxETH are BitBox hardware wallets, which
	// require a one-time pairing-code confirmation.
	TypeBitBoxBTC Type = "BitBoxBtc"
	TypeBitBoxETH Type = "BitBoxEth"
	// TypeTrezor is the Trezor hardware wallet.
	TypeTrezor Type = "Trezor"
	// TypeAlby is the custodial Lightning wallet authenticated via LNURL;
	// signing happens out-of-band and yields a pre-authenticated session.
	TypeAlby Type = "Alby"
	// TypeCLI is manual address and signature entry.
	TypeCLI Type = "Cli"
	// TypeMonero is the custodial Monero redirect wallet.
	TypeMonero Type = "Monero"
)

func (t Type) String() string { return string(t) }
