// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package wallet

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

var (
	adaptersMtx sync.RWMutex
	adapters    = make(map[Type]Adapter)
)

// Register enters an adapter into the registry under its type tag. Adding a
// wallet type is a registration, not a switch statement. Register should be
// called once per adapter at startup; it panics on a nil adapter or a
// duplicate type.
func Register(a Adapter) {
	adaptersMtx.Lock()
	defer adaptersMtx.Unlock()

	if a == nil {
		panic("wallet: Register adapter is nil")
	}
	if _, dup := adapters[a.Type()]; dup {
		panic("wallet: Register called twice for type " + a.Type().String())
	}
	adapters[a.Type()] = a
}

// Resolve returns the adapter registered for the given type.
func Resolve(t Type) (Adapter, error) {
	adaptersMtx.RLock()
	defer adaptersMtx.RUnlock()

	a, ok := adapters[t]
	if !ok {
		return nil, errors.Errorf("no adapter registered for wallet type %q", t)
	}
	return a, nil
}

// Registered returns the registered wallet types in stable order.
func Registered() []Type {
	adaptersMtx.RLock()
	defer adaptersMtx.RUnlock()

	ts := make([]Type, 0, len(adapters))
	for t := range adapters {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
	return ts
}

// unregister removes a registered adapter. Test helper.
func unregister(t Type) {
	adaptersMtx.Lock()
	defer adaptersMtx.Unlock()
	delete(adapters, t)
}
