// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package db

import "github.com/pkg/errors"

// table is a Database that prefixes all keys, so that several logical stores
// can share one backing Database.
type table struct {
	Database
	prefix string
}

// NewTable creates a view of db in which all keys are prefixed with prefix.
func NewTable(db Database, prefix string) Database {
	if db == nil {
		panic("db must not be nil")
	}
	return &table{Database: db, prefix: prefix}
}

func (t *table) pkey(key string) string { return t.prefix + key }

func (t *table) Has(key string) (bool, error) { return t.Database.Has(t.pkey(key)) }
func (t *table) Get(key string) (string, error) { return t.Database.Get(t.pkey(key)) }
func (t *table) GetBytes(key string) ([]byte, error) { return t.Database.GetBytes(t.pkey(key)) }
func (t *table) Put(key, value string) error { return t.Database.Put(t.pkey(key), value) }
func (t *table) PutBytes(key string, value []byte) error {
	if value == nil {
		return errors.New("value must not be nil")
	}
	return t.Database.PutBytes(t.pkey(key), value)
}
func (t *table) Delete(key string) error { return t.Database.Delete(t.pkey(key)) }
