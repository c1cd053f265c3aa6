// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package wallet

// Blockchain identifies the chain a wallet operates on.
type Blockchain string

const (
	Ethereum          Blockchain = "Ethereum"
	Arbitrum          Blockchain = "Arbitrum"
	Optimism          Blockchain = "Optimism"
	Polygon           Blockchain = "Polygon"
	Base              Blockchain = "Base"
	BinanceSmartChain Blockchain = "BinanceSmartChain"
	Bitcoin           Blockchain = "Bitcoin"
	Lightning         Blockchain = "Lightning"
	Monero            Blockchain = "Monero"
	Zano              Blockchain = "Zano"
	Solana            Blockchain = "Solana"
	Tron              Blockchain = "Tron"
)

// evmChainIDs maps the EVM-compatible chains to their chain IDs as used by
// wallet_switchEthereumChain.
var evmChainIDs = map[Blockchain]uint64{
	Ethereum:          1,
	Optimism:          10,
	BinanceSmartChain: 56,
	Polygon:           137,
	Base:              8453,
	Arbitrum:          42161,
}

// ChainID returns the EVM chain ID of the blockchain. The second return
// value is false for non-EVM chains.
func (b Blockchain) ChainID() (uint64, bool) {
	id, ok := evmChainIDs[b]
	return id, ok
}

// IsEVM returns whether the blockchain is EVM-compatible.
func (b Blockchain) IsEVM() bool {
	_, ok := evmChainIDs[b]
	return ok
}

func (b Blockchain) String() string { return string(b) }
