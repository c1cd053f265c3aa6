// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package relay adapts relay-based mobile wallets (WalletConnect-class) to
// the wallet.Adapter contract. The adapter speaks JSON-RPC over a websocket
// relay topic; the user approves requests on their phone after pairing via
// the QR deep link. Relay rejections carry codes and classify as aborts.
package relay // import "walletgate.network/go-walletgate/wallet/relay"

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"walletgate.network/go-walletgate/log"
	"walletgate.network/go-walletgate/wallet"
)

const (
	// detectTimeout bounds the reachability probe of Supported.
	detectTimeout = 5 * time.Second
	// defaultRequestTimeout bounds a single relay round-trip, including
	// the user approval on the phone.
	defaultRequestTimeout = 3 * time.Minute
)

// Adapter drives a relay-based wallet.
type Adapter struct {
	relayURL string
	chains   []wallet.Blockchain
	dialer   *websocket.Dialer
	timeout  time.Duration
	log      log.Logger

	mutex    sync.Mutex
	conn     *websocket.Conn
	topic    string
	accounts []string
	nextID   int64
}

var _ wallet.Adapter = (*Adapter)(nil)

// Option configures an Adapter.
type Option func(*Adapter)

// WithRequestTimeout overrides the relay round-trip timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(a *Adapter) { a.timeout = d }
}

// WithBlockchains restricts the served chains. Defaults to all EVM chains.
func WithBlockchains(chains ...wallet.Blockchain) Option {
	return func(a *Adapter) { a.chains = chains }
}

// NewAdapter creates a relay adapter for the given relay endpoint
// (ws:// or wss://).
func NewAdapter(relayURL string, opts ...Option) *Adapter {
	a := &Adapter{
		relayURL: relayURL,
		chains: []wallet.Blockchain{
			wallet.Ethereum, wallet.Arbitrum, wallet.Optimism,
			wallet.Polygon, wallet.Base, wallet.BinanceSmartChain,
		},
		dialer:  websocket.DefaultDialer,
		timeout: defaultRequestTimeout,
		log:     log.WithField("wallet", wallet.TypeWalletConnect),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Type() wallet.Type { return wallet.TypeWalletConnect }
func (a *Adapter) Blockchains() []wallet.Blockchain { return a.chains }

// Supported probes whether the relay is reachable.
func (a *Adapter) Supported(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()

	conn, _, err := a.dialer.DialContext(ctx, a.relayURL, nil)
	if err != nil {
		a.log.WithError(err).Debug("relay unreachable")
		return false, nil
	}
	_ = conn.Close()
	return true, nil
}

// PairingURI returns the deep link encoded into the QR code for the current
// topic. Empty before the first Account call.
func (a *Adapter) PairingURI() string {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.topic == "" {
		return ""
	}
	return fmt.Sprintf("wc:%s@2?relay-protocol=irn&relay-url=%s", a.topic, a.relayURL)
}

// sessionParams is the payload of a session request.
type sessionParams struct {
	ChainID uint64 `json:"chainId"`
}

// sessionResult is the wallet's session approval.
type sessionResult struct {
	Accounts []string `json:"accounts"`
	ChainID  uint64   `json:"chainId"`
}

// Account establishes a relay session for the requested chain. The wallet
// approves (or rejects) on the phone. Reconnects reuse an approved session
// when it still exposes the session address.
func (a *Adapter) Account(ctx context.Context, req wallet.AccountRequest) (wallet.Account, error) {
	if !wallet.Supports(a, req.Blockchain) {
		return wallet.Account{}, errors.WithMessagef(wallet.ErrUnsupportedBlockchain,
			"relay wallet on %s", req.Blockchain)
	}
	chainID, _ := req.Blockchain.ChainID()

	if req.Reconnect {
		if addr, ok := a.sessionAccount(req.SessionAddress); ok {
			return wallet.AddressAccount(addr), nil
		}
	}

	if err := a.ensureConn(ctx); err != nil {
		return wallet.Account{}, err
	}

	var res sessionResult
	if err := a.call(ctx, "wc_sessionRequest", sessionParams{ChainID: chainID}, &res); err != nil {
		return wallet.Account{}, errors.WithMessage(err, "session request")
	}
	if len(res.Accounts) == 0 {
		return wallet.Account{}, errors.WithMessage(wallet.ErrPermissionDenied,
			"relay session approved without accounts")
	}

	a.mutex.Lock()
	a.accounts = res.Accounts
	a.mutex.Unlock()

	idx := req.Index
	if idx < 0 || idx >= len(res.Accounts) {
		idx = 0
	}
	return wallet.AddressAccount(wallet.ChecksumAddress(res.Accounts[idx])), nil
}

// SignMessage requests a personal_sign over the established session.
func (a *Adapter) SignMessage(ctx context.Context, req wallet.SignRequest) (string, error) {
	a.mutex.Lock()
	connected := a.conn != nil
	a.mutex.Unlock()
	if !connected {
		return "", errors.New("no relay session established")
	}

	var sig string
	err := a.call(ctx, "personal_sign", []string{req.Message, req.Address}, &sig)
	return sig, errors.WithMessage(err, "relay signing")
}

// Close tears down the relay session.
func (a *Adapter) Close() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.conn == nil {
		return nil
	}
	err := a.conn.Close()
	a.conn = nil
	a.topic = ""
	a.accounts = nil
	return errors.WithMessage(err, "closing relay connection")
}

// sessionAccount returns the cached session address if it is still exposed.
func (a *Adapter) sessionAccount(sessionAddr string) (string, bool) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.conn == nil || sessionAddr == "" {
		return "", false
	}
	for _, addr := range a.accounts {
		if wallet.EqualAddresses(addr, sessionAddr) {
			return wallet.ChecksumAddress(addr), true
		}
	}
	return "", false
}

func (a *Adapter) ensureConn(ctx context.Context) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.conn != nil {
		return nil
	}

	topic := uuid.NewString()
	conn, _, err := a.dialer.DialContext(ctx, a.relayURL+"?topic="+topic, nil)
	if err != nil {
		return errors.WithMessagef(wallet.ErrTransportUnavailable, "dialing relay: %v", err)
	}
	a.conn = conn
	a.topic = topic
	a.log.WithField("topic", topic).Debug("relay session opened")
	return nil
}

// rpcError is a relay-side JSON-RPC error. It satisfies wallet.CodedError,
// so rejections classify without special handling.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string { return fmt.Sprintf("relay error %d: %s", e.Code, e.Message) }
func (e *rpcError) ErrorCode() int { return e.Code }

type rpcRequest struct {
	ID      int64       `json:"id"`
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type rpcResponse struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// call performs one JSON-RPC round-trip over the relay. One call is in
// flight at a time; the read deadline covers the user approval window.
func (a *Adapter) call(ctx context.Context, method string, params, result interface{}) error {
	a.mutex.Lock()
	conn := a.conn
	a.nextID++
	id := a.nextID
	a.mutex.Unlock()
	if conn == nil {
		return errors.New("relay connection closed")
	}

	deadline := time.Now().Add(a.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)
	_ = conn.SetReadDeadline(deadline)

	if err := conn.WriteJSON(rpcRequest{ID: id, JSONRPC: "2.0", Method: method, Params: params}); err != nil {
		return errors.WithMessagef(err, "sending %s", method)
	}

	for {
		var resp rpcResponse
		if err := conn.ReadJSON(&resp); err != nil {
			return errors.WithMessagef(err, "awaiting %s response", method)
		}
		if resp.ID != id {
			a.log.WithField("id", resp.ID).Debug("skipping stale relay response")
			continue
		}
		if resp.Error != nil {
			return resp.Error
		}
		if result == nil {
			return nil
		}
		return errors.WithMessagef(json.Unmarshal(resp.Result, result),
			"decoding %s result", method)
	}
}
