// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package promise provides a single-settlement deferred value. A Deferred
// pairs a future result with externally held resolve and reject handles. It
// is the suspension primitive used to pause an in-progress operation at the
// exact point a human decision is required, and to resume it from a UI
// callback.
package promise // import "walletgate.network/go-walletgate/pkg/promise"

import (
	"context"
	"sync"
)

// Deferred is a write-once future of T. It must be created with NewDeferred.
// A Deferred is settled at most once; later Resolve and Reject calls are
// no-ops so that racing UI callbacks cannot corrupt an outcome.
type Deferred[T any] struct {
	once sync.Once
	done chan struct{}

	val T
	err error
}

// NewDeferred creates a fresh, unsettled Deferred.
func NewDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{done: make(chan struct{})}
}

// Resolve settles the Deferred with a value. Returns whether this call
// settled it; false means it was already settled and the call had no effect.
func (d *Deferred[T]) Resolve(val T) (settled bool) {
	d.once.Do(func() {
		d.val = val
		close(d.done)
		settled = true
	})
	return
}

// Reject settles the Deferred with an error. Returns whether this call
// settled it; false means it was already settled and the call had no effect.
func (d *Deferred[T]) Reject(err error) (settled bool) {
	d.once.Do(func() {
		d.err = err
		close(d.done)
		settled = true
	})
	return
}

// Done returns a channel that is closed once the Deferred is settled.
func (d *Deferred[T]) Done() <-chan struct{} { return d.done }

// Settled returns whether the Deferred has been resolved or rejected.
func (d *Deferred[T]) Settled() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// Await blocks until the Deferred is settled or the context is done. On
// context cancellation, the Deferred stays unsettled and can still be
// settled (and awaited) later.
func (d *Deferred[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		return d.val, d.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
