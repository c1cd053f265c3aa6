// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package db defines a simple key-value store abstraction used for persisted
// preferences. Keys and values are strings; byte variants are provided for
// binary values. Writes are last-write-wins with no cross-process ordering
// guarantee.
package db // import "walletgate.network/go-walletgate/db"

import "github.com/pkg/errors"

// ErrNotFound is returned by Get calls for missing keys.
var ErrNotFound = errors.New("key not found")

// Reader is the read half of a Database.
type Reader interface {
	// Has returns whether the key exists.
	Has(key string) (bool, error)
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) (string, error)
	// GetBytes returns the raw value stored under key, or ErrNotFound.
	GetBytes(key string) ([]byte, error)
}

// Writer is the write half of a Database.
type Writer interface {
	// Put stores a value under key, overwriting any previous value.
	Put(key, value string) error
	// PutBytes stores a raw value under key. The value must not be nil.
	PutBytes(key string, value []byte) error
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key string) error
}

// Database is a persistent key-value store.
type Database interface {
	Reader
	Writer
}
