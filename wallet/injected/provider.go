// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package injected

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
)

// RPCProvider is a Provider backed by a go-ethereum RPC client, for
// environments where the wallet provider is reachable over a socket rather
// than injected in-process. RPC errors keep their codes, so user rejections
// classify the same way as with an in-process provider.
type RPCProvider struct {
	client *rpc.Client
}

var _ Provider = (*RPCProvider)(nil)

// DialProvider connects to a provider endpoint (ws://, http:// or a local
// IPC path).
func DialProvider(ctx context.Context, url string) (*RPCProvider, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, errors.WithMessagef(err, "dialing provider %q", url)
	}
	return &RPCProvider{client: client}, nil
}

// Request implements Provider.
func (p *RPCProvider) Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	var result json.RawMessage
	if err := p.client.CallContext(ctx, &result, method, params...); err != nil {
		return nil, err
	}
	return result, nil
}

// Close closes the underlying RPC client.
func (p *RPCProvider) Close() {
	p.client.Close()
}
