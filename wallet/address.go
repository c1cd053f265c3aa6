// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package wallet

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// EqualAddresses reports whether two addresses refer to the same account.
// Hex addresses compare case-insensitively, so differently checksummed forms
// of one EVM address are equal.
func EqualAddresses(a, b string) bool {
	return strings.EqualFold(a, b)
}

// ChecksumAddress returns the EIP-55 checksummed form of an EVM hex address.
// Inputs that are not 20-byte hex addresses are returned unchanged.
func ChecksumAddress(address string) string {
	hexAddr := strings.TrimPrefix(strings.ToLower(address), "0x")
	if len(hexAddr) != 40 {
		return address
	}
	if _, err := hex.DecodeString(hexAddr); err != nil {
		return address
	}

	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(hexAddr))
	sum := hex.EncodeToString(hash.Sum(nil))

	out := make([]byte, len(hexAddr))
	for i := 0; i < len(hexAddr); i++ {
		c := hexAddr[i]
		if c >= 'a' && c <= 'f' && sum[i] >= '8' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return "0x" + string(out)
}
