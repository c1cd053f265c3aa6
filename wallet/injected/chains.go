// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package injected

import "walletgate.network/go-walletgate/wallet"

// chainParams is the wallet_addEthereumChain payload for one chain.
type chainParams struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	NativeCurrency    nativeCurrency `json:"nativeCurrency"`
	RPCURLs           []string       `json:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls"`
}

type nativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

var eth = nativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18}

// addChainParams registers chains that wallets commonly do not ship with.
// Ethereum mainnet is always known and deliberately absent.
var addChainParams = map[wallet.Blockchain]chainParams{
	wallet.Arbitrum: {
		ChainID:           "0xa4b1",
		ChainName:         "Arbitrum One",
		NativeCurrency:    eth,
		RPCURLs:           []string{"https://arb1.arbitrum.io/rpc"},
		BlockExplorerURLs: []string{"https://arbiscan.io"},
	},
	wallet.Optimism: {
		ChainID:           "0xa",
		ChainName:         "OP Mainnet",
		NativeCurrency:    eth,
		RPCURLs:           []string{"https://mainnet.optimism.io"},
		BlockExplorerURLs: []string{"https://optimistic.etherscan.io"},
	},
	wallet.Base: {
		ChainID:           "0x2105",
		ChainName:         "Base",
		NativeCurrency:    eth,
		RPCURLs:           []string{"https://mainnet.base.org"},
		BlockExplorerURLs: []string{"https://basescan.org"},
	},
	wallet.Polygon: {
		ChainID:   "0x89",
		ChainName: "Polygon Mainnet",
		NativeCurrency: nativeCurrency{
			Name: "POL", Symbol: "POL", Decimals: 18,
		},
		RPCURLs:           []string{"https://polygon-rpc.com"},
		BlockExplorerURLs: []string{"https://polygonscan.com"},
	},
	wallet.BinanceSmartChain: {
		ChainID:   "0x38",
		ChainName: "BNB Smart Chain",
		NativeCurrency: nativeCurrency{
			Name: "BNB", Symbol: "BNB", Decimals: 18,
		},
		RPCURLs:           []string{"https://bsc-dataseed.binance.org"},
		BlockExplorerURLs: []string{"https://bscscan.com"},
	},
}
