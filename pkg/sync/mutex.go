// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package sync contains synchronization primitives extending those of the
// standard library.
package sync // import "walletgate.network/go-walletgate/pkg/sync"

import (
	"context"
	stdsync "sync"
)

// Mutex is a mutual exclusion lock that supports non-blocking and
// context-aware locking. The zero value is an unlocked mutex.
type Mutex struct {
	locked   chan struct{} // Models the lock; holds one element when locked.
	initOnce stdsync.Once
}

func (m *Mutex) initialize() {
	m.locked = make(chan struct{}, 1)
}

// Lock blocks until the mutex is acquired.
func (m *Mutex) Lock() {
	m.initOnce.Do(m.initialize)
	m.locked <- struct{}{}
}

// TryLock attempts to acquire the mutex without blocking.
// Returns whether the mutex was acquired.
func (m *Mutex) TryLock() bool {
	m.initOnce.Do(m.initialize)
	select {
	case m.locked <- struct{}{}:
		return true
	default:
		return false
	}
}

// TryLockCtx attempts to acquire the mutex until the context is done.
// A mutex can never be acquired with an already cancelled context.
// Returns whether the mutex was acquired.
func (m *Mutex) TryLockCtx(ctx context.Context) bool {
	m.initOnce.Do(m.initialize)
	select {
	case <-ctx.Done():
		return false
	default:
	}

	select {
	case m.locked <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

// Unlock releases the mutex. Panics if the mutex was not locked.
func (m *Mutex) Unlock() {
	m.initOnce.Do(m.initialize)
	select {
	case <-m.locked:
	default:
		panic("unlock of unlocked mutex")
	}
}
