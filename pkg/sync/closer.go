// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package sync

import (
	stdsync "sync"

	"github.com/pkg/errors"
)

// Closer is a single-use, idempotently closeable barrier. The zero value is
// an open Closer.
type Closer struct {
	once   stdsync.Once
	closed chan struct{}
	init   stdsync.Once
}

func (c *Closer) initialize() {
	c.closed = make(chan struct{})
}

// Close closes the Closer. Returns an error if it was already closed.
func (c *Closer) Close() error {
	c.init.Do(c.initialize)
	err := errors.New("already closed")
	c.once.Do(func() {
		close(c.closed)
		err = nil
	})
	return err
}

// IsClosed returns whether the Closer is closed.
func (c *Closer) IsClosed() bool {
	c.init.Do(c.initialize)
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// Closed returns a channel that is closed when the Closer is closed.
func (c *Closer) Closed() <-chan struct{} {
	c.init.Do(c.initialize)
	return c.closed
}
