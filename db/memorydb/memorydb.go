// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package memorydb provides an in-memory, thread-safe implementation of the
// db.Database interface, intended for testing.
package memorydb // import "walletgate.network/go-walletgate/db/memorydb"

import (
	"sync"

	"github.com/pkg/errors"

	"walletgate.network/go-walletgate/db"
)

// Database implements db.Database with a mutex-guarded map.
type Database struct {
	mutex sync.RWMutex
	data  map[string]string
}

// NewDatabase creates an empty in-memory database.
func NewDatabase() *Database {
	return &Database{data: make(map[string]string)}
}

// FromData creates an in-memory database with initial contents. The map is
// copied.
func FromData(data map[string]string) *Database {
	d := NewDatabase()
	for k, v := range data {
		d.data[k] = v
	}
	return d
}

func (d *Database) Has(key string) (bool, error) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	_, ok := d.data[key]
	return ok, nil
}

func (d *Database) Get(key string) (string, error) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	value, ok := d.data[key]
	if !ok {
		return "", errors.WithMessagef(db.ErrNotFound, "key %q", key)
	}
	return value, nil
}

func (d *Database) GetBytes(key string) ([]byte, error) {
	value, err := d.Get(key)
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (d *Database) Put(key, value string) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.data[key] = value
	return nil
}

func (d *Database) PutBytes(key string, value []byte) error {
	if value == nil {
		return errors.New("value must not be nil")
	}
	return d.Put(key, string(value))
}

func (d *Database) Delete(key string) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	delete(d.data, key)
	return nil
}
