// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package leveldb provides a LevelDB-backed implementation of the
// db.Database interface for durable preference storage.
package leveldb // import "walletgate.network/go-walletgate/db/leveldb"

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"

	"walletgate.network/go-walletgate/db"
)

// Database implements db.Database using LevelDB.
type Database struct {
	ldb *leveldb.DB
}

// OpenDatabase opens (or creates) the LevelDB database at path.
func OpenDatabase(path string) (*Database, error) {
	ldb, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.WithMessagef(err, "opening leveldb at %q", path)
	}
	return &Database{ldb: ldb}, nil
}

// Close closes the underlying LevelDB handle.
func (d *Database) Close() error {
	return errors.WithMessage(d.ldb.Close(), "closing leveldb")
}

func (d *Database) Has(key string) (bool, error) {
	has, err := d.ldb.Has([]byte(key), nil)
	return has, errors.WithMessage(err, "leveldb has")
}

func (d *Database) Get(key string) (string, error) {
	value, err := d.GetBytes(key)
	return string(value), err
}

func (d *Database) GetBytes(key string) ([]byte, error) {
	value, err := d.ldb.Get([]byte(key), nil)
	if err == leveldb.ErrNotFound {
		return nil, errors.WithMessagef(db.ErrNotFound, "key %q", key)
	}
	return value, errors.WithMessage(err, "leveldb get")
}

func (d *Database) Put(key, value string) error {
	return d.PutBytes(key, []byte(value))
}

func (d *Database) PutBytes(key string, value []byte) error {
	if value == nil {
		return errors.New("value must not be nil")
	}
	return errors.WithMessage(d.ldb.Put([]byte(key), value, nil), "leveldb put")
}

func (d *Database) Delete(key string) error {
	return errors.WithMessage(d.ldb.Delete([]byte(key), nil), "leveldb delete")
}
