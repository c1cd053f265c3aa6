// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package prefs is the typed persisted preference store of go-walletgate. It
// replaces stringly-typed key access with explicit accessors while keeping
// the underlying contract: last write wins, no ordering guarantee across
// processes. Reads of missing or corrupt values fall back to defaults.
package prefs // import "walletgate.network/go-walletgate/prefs"

import (
	"encoding/json"

	"github.com/pkg/errors"

	"walletgate.network/go-walletgate/db"
	"walletgate.network/go-walletgate/wallet"
)

const (
	keyActiveWallet       = "activeWallet"
	keyShowsSignatureInfo = "showsSignatureInfo"
	keyRedirectURI        = "redirectUri"
	keyLanguage           = "language"
)

// Store holds user preferences in a key-value database. Values are JSON
// encoded. Store is safe for concurrent use if the backing database is.
type Store struct {
	db db.Database
}

// NewStore creates a preference store on top of the given database.
func NewStore(database db.Database) *Store {
	if database == nil {
		panic("database must not be nil")
	}
	return &Store{db: database}
}

// ActiveWallet returns the persisted last active wallet type. The second
// return value is false when no wallet was persisted.
func (s *Store) ActiveWallet() (wallet.Type, bool) {
	var t wallet.Type
	if !s.get(keyActiveWallet, &t) || t == "" {
		return "", false
	}
	return t, true
}

// SetActiveWallet persists the last active wallet type.
func (s *Store) SetActiveWallet(t wallet.Type) error {
	return s.put(keyActiveWallet, t)
}

// ClearActiveWallet removes the persisted wallet type.
func (s *Store) ClearActiveWallet() error {
	return errors.WithMessage(s.db.Delete(keyActiveWallet), "clearing active wallet")
}

// ShowsSignatureInfo returns whether the signature confirmation hint should
// be shown before requesting a signature. Defaults to true.
func (s *Store) ShowsSignatureInfo() bool {
	shows := true
	s.get(keyShowsSignatureInfo, &shows)
	return shows
}

// SetShowsSignatureInfo persists the signature hint preference.
func (s *Store) SetShowsSignatureInfo(shows bool) error {
	return s.put(keyShowsSignatureInfo, shows)
}

// RedirectURI returns the persisted redirect URI, if any.
func (s *Store) RedirectURI() (string, bool) {
	var uri string
	if !s.get(keyRedirectURI, &uri) || uri == "" {
		return "", false
	}
	return uri, true
}

// SetRedirectURI persists the redirect URI.
func (s *Store) SetRedirectURI(uri string) error {
	return s.put(keyRedirectURI, uri)
}

// Language returns the persisted UI language, if any.
func (s *Store) Language() (string, bool) {
	var lang string
	if !s.get(keyLanguage, &lang) || lang == "" {
		return "", false
	}
	return lang, true
}

// SetLanguage persists the UI language.
func (s *Store) SetLanguage(lang string) error {
	return s.put(keyLanguage, lang)
}

// get reads and decodes a value, reporting whether a valid value was found.
// Corrupt entries count as missing.
func (s *Store) get(key string, into interface{}) bool {
	raw, err := s.db.Get(key)
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), into) == nil
}

func (s *Store) put(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.WithMessagef(err, "encoding preference %q", key)
	}
	return errors.WithMessagef(s.db.Put(key, string(raw)), "storing preference %q", key)
}
