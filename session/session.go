// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package session holds the authenticated wallet session. The Store is the
// single process-wide owner of the session state; all mutation goes through
// its methods, so a non-nil session always carries wallet type, blockchain
// and token together. There is at most one live session per Store.
package session // import "walletgate.network/go-walletgate/session"

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"walletgate.network/go-walletgate/auth"
	"walletgate.network/go-walletgate/log"
	"walletgate.network/go-walletgate/prefs"
	"walletgate.network/go-walletgate/wallet"
)

// Session is the authenticated identity tuple.
type Session struct {
	Wallet     wallet.Type
	Blockchain wallet.Blockchain
	// Address is empty for custodial sessions whose signing happened
	// out-of-band.
	Address string
	// Token is the backend access token.
	Token string
}

// SignFunc produces a signature over the login challenge message.
type SignFunc func(ctx context.Context, message string) (string, error)

// EventKind tags a session change notification.
type EventKind uint8

const (
	LoggedIn EventKind = iota + 1
	LoggedOut
	BlockchainSwitched
)

// Event notifies subscribers of a session change.
type Event struct {
	Kind    EventKind
	Session Session // Zero value for LoggedOut.
}

// subscriberBufferSize controls how many events can be queued per subscriber
// before events are dropped.
const subscriberBufferSize = 16

// Store owns the wallet session. It must be created with NewStore.
type Store struct {
	auth  auth.Client
	prefs *prefs.Store
	log   log.Logger

	mutex   sync.RWMutex
	current *Session
	subs    []chan Event
}

// NewStore creates a session store. The preference store may be nil, in
// which case the last active wallet is not persisted.
func NewStore(authClient auth.Client, prefStore *prefs.Store) *Store {
	if authClient == nil {
		panic("auth client must not be nil")
	}
	return &Store{
		auth:  authClient,
		prefs: prefStore,
		log:   log.WithField("component", "session"),
	}
}

// Current returns the live session, if any.
func (s *Store) Current() (Session, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// Login exchanges a signed challenge for a backend session. The sign
// function is called exactly once, with the challenge message fetched for
// the address. A rejected signature fails with wallet.ErrAuthenticationFailed.
func (s *Store) Login(ctx context.Context, typ wallet.Type, chain wallet.Blockchain, address string, sign SignFunc) error {
	message, err := s.auth.Challenge(ctx, address)
	if err != nil {
		return errors.WithMessage(err, "fetching login challenge")
	}

	signature, err := sign(ctx, message)
	if err != nil {
		return err
	}

	token, err := s.auth.SignIn(ctx, auth.SignInRequest{
		Address:    address,
		Signature:  signature,
		Blockchain: chain.String(),
	})
	if err != nil {
		return err
	}

	s.set(&Session{Wallet: typ, Blockchain: chain, Address: address, Token: token})
	return nil
}

// SetSession installs a pre-authenticated session, bypassing the signing
// exchange. Used for custodial flows that hand over a session token.
func (s *Store) SetSession(typ wallet.Type, chain wallet.Blockchain, token string) error {
	if token == "" {
		return errors.New("session token must not be empty")
	}
	s.set(&Session{Wallet: typ, Blockchain: chain, Token: token})
	return nil
}

// SwitchBlockchain changes the active chain without re-authenticating. It is
// only valid while a session exists.
func (s *Store) SwitchBlockchain(chain wallet.Blockchain) error {
	s.mutex.Lock()
	if s.current == nil {
		s.mutex.Unlock()
		return errors.New("no active session")
	}
	s.current.Blockchain = chain
	cur := *s.current
	s.mutex.Unlock()

	s.notify(Event{Kind: BlockchainSwitched, Session: cur})
	return nil
}

// Logout clears the session. It is idempotent.
func (s *Store) Logout() {
	s.mutex.Lock()
	wasLoggedIn := s.current != nil
	s.current = nil
	s.mutex.Unlock()

	if !wasLoggedIn {
		return
	}
	if s.prefs != nil {
		if err := s.prefs.ClearActiveWallet(); err != nil {
			s.log.WithError(err).Warn("clearing persisted wallet failed")
		}
	}
	s.notify(Event{Kind: LoggedOut})
}

// Subscribe returns a channel of session change events. Events are dropped
// when the subscriber does not keep up.
func (s *Store) Subscribe() <-chan Event {
	ch := make(chan Event, subscriberBufferSize)
	s.mutex.Lock()
	s.subs = append(s.subs, ch)
	s.mutex.Unlock()
	return ch
}

func (s *Store) set(sess *Session) {
	s.mutex.Lock()
	s.current = sess
	cur := *sess
	s.mutex.Unlock()

	if s.prefs != nil {
		if err := s.prefs.SetActiveWallet(cur.Wallet); err != nil {
			s.log.WithError(err).Warn("persisting active wallet failed")
		}
	}
	s.log.WithFields(log.Fields{
		"wallet":     cur.Wallet,
		"blockchain": cur.Blockchain,
	}).Info("session established")
	s.notify(Event{Kind: LoggedIn, Session: cur})
}

func (s *Store) notify(e Event) {
	s.mutex.RLock()
	subs := s.subs
	s.mutex.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- e:
		default:
			s.log.Warn("dropping session event for slow subscriber")
		}
	}
}
