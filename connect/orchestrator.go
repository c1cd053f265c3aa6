// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package connect drives one wallet connect attempt from trigger to
// authenticated session, independent of which adapter is plugged in. The
// orchestrator sequences account acquisition, the login-path decision,
// signature acquisition with an optional user confirmation suspension, and
// the session login. Errors are classified once at this boundary; user
// aborts are routed to the cancel callback and never rendered as errors.
package connect // import "walletgate.network/go-walletgate/connect"

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"walletgate.network/go-walletgate/log"
	"walletgate.network/go-walletgate/pkg/promise"
	psync "walletgate.network/go-walletgate/pkg/sync"
	"walletgate.network/go-walletgate/prefs"
	"walletgate.network/go-walletgate/session"
	"walletgate.network/go-walletgate/wallet"
)

// attempt is the per-connect-attempt state. A fresh attempt supersedes the
// previous one; the stale attempt's deferreds are rejected explicitly so
// that no suspension is ever abandoned unresolved.
type attempt struct {
	sign         *promise.Deferred[string]
	pairing      *promise.Deferred[struct{}]
	signReq      wallet.SignRequest
	signStarted  atomic.Bool
	accountIndex int
}

// Orchestrator drives connect attempts for one adapter. It must be created
// with New. All exported methods are safe for concurrent use; attempts are
// mutually exclusive, and a new Connect supersedes a suspended one.
type Orchestrator struct {
	adapter  wallet.Adapter
	sessions *session.Store
	prefs    *prefs.Store
	hints    Hints
	onLogin  func()
	onCancel func()
	log      log.Logger

	busy   psync.Mutex // Serializes attempts over the adapter.
	closer psync.Closer

	mutex       sync.Mutex // Guards the fields below.
	state       State
	connectErr  error
	attempt     *attempt
	pairingCode string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithHints sets the overlay surface. Defaults to NopHints.
func WithHints(h Hints) Option {
	return func(o *Orchestrator) { o.hints = h }
}

// WithOnLogin sets the callback fired after a successful connect, including
// the blockchain-switch shortcut.
func WithOnLogin(f func()) Option {
	return func(o *Orchestrator) { o.onLogin = f }
}

// WithOnCancel sets the callback fired when the user aborts an attempt.
func WithOnCancel(f func()) Option {
	return func(o *Orchestrator) { o.onCancel = f }
}

// New creates an orchestrator for the given adapter.
func New(adapter wallet.Adapter, sessions *session.Store, prefStore *prefs.Store, opts ...Option) *Orchestrator {
	if adapter == nil || sessions == nil || prefStore == nil {
		panic("adapter, sessions and prefs must not be nil")
	}
	o := &Orchestrator{
		adapter:  adapter,
		sessions: sessions,
		prefs:    prefStore,
		hints:    NopHints{},
		log:      log.WithField("wallet", adapter.Type()),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current state of the orchestrator.
func (o *Orchestrator) State() State {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.state
}

// Err returns the error of the last failed attempt, for display. It is
// never set for user aborts.
func (o *Orchestrator) Err() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.connectErr
}

// PairingCode returns the pairing code while the pairing hint is shown.
func (o *Orchestrator) PairingCode() string {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.pairingCode
}

// ShouldAutoConnect reports whether this orchestrator's wallet type was the
// last active wallet and may be reconnected without a user trigger.
func (o *Orchestrator) ShouldAutoConnect() bool {
	typ, ok := o.prefs.ActiveWallet()
	return ok && typ == o.adapter.Type()
}

// Connect runs one connect attempt for the given blockchain. It blocks
// until the attempt resolves; suspensions (sign hint, pairing hint) are
// resumed by the Confirm and Dismiss methods, typically from a UI
// goroutine.
//
// The returned error is classified: wallet.IsUserAbort identifies silent
// cancellations (the cancel callback has already fired), and
// wallet.IsSuperseded identifies attempts replaced by a newer Connect call.
// Requesting a blockchain outside the adapter's declared set fails
// immediately with wallet.ErrUnsupportedBlockchain.
func (o *Orchestrator) Connect(ctx context.Context, chain wallet.Blockchain) error {
	if o.closer.IsClosed() {
		return errors.New("orchestrator is closed")
	}
	if !wallet.Supports(o.adapter, chain) {
		return errors.WithMessagef(wallet.ErrUnsupportedBlockchain,
			"wallet %s cannot serve %s", o.adapter.Type(), chain)
	}

	at := o.begin()
	if !o.busy.TryLockCtx(ctx) {
		o.finish(at, StateIdle, nil)
		return errors.WithMessage(ctx.Err(), "waiting for prior attempt")
	}
	defer o.busy.Unlock()

	if o.superseded(at) {
		return wallet.ErrSuperseded
	}
	return o.run(ctx, at, chain)
}

// Close tears the orchestrator down, rejecting any suspended attempt so no
// deferred is leaked. Further Connect calls fail.
func (o *Orchestrator) Close() error {
	if err := o.closer.Close(); err != nil {
		return err
	}
	o.mutex.Lock()
	if at := o.attempt; at != nil {
		rejectPending(at)
	}
	o.mutex.Unlock()
	return nil
}

// run executes the state machine of one attempt.
func (o *Orchestrator) run(ctx context.Context, at *attempt, chain wallet.Blockchain) error {
	o.setState(at, StateConnecting)
	o.hints.Clear()

	typ := o.adapter.Type()
	supported, err := o.adapter.Supported(ctx)
	if err != nil || !supported {
		o.mutex.Lock()
		if o.attempt == at {
			o.state = StateInstallHint
			o.connectErr = nil
		}
		o.mutex.Unlock()
		o.hints.ShowInstallHint(typ)
		o.log.WithError(err).Debug("transport unavailable")
		return errors.WithMessagef(wallet.ErrTransportUnavailable, "wallet %s", typ)
	}

	cur, hasSession := o.sessions.Current()
	req := wallet.AccountRequest{Blockchain: chain, Index: at.accountIndex}
	if hasSession && cur.Wallet == typ {
		req.Reconnect = true
		req.SessionAddress = cur.Address
	} else if o.ShouldAutoConnect() {
		// Last active wallet after a restart: reconnect without a prompt
		// if the provider still exposes the account.
		req.Reconnect = true
	}

	if pairer, ok := o.adapter.(wallet.Pairer); ok {
		pairer.SetPairingHandler(o.pairingHandler(at))
	}

	acct, err := o.adapter.Account(ctx, req)
	if err != nil {
		return o.fail(at, errors.WithMessage(err, "acquiring account"))
	}

	// Reconnecting to the same wallet type with the same address is a
	// blockchain switch, not a new login.
	if hasSession && cur.Wallet == typ && acct.Address != "" &&
		wallet.EqualAddresses(cur.Address, acct.Address) {
		if err := o.sessions.SwitchBlockchain(chain); err != nil {
			return o.fail(at, err)
		}
		o.log.WithField("blockchain", chain).Debug("switched blockchain")
		return o.succeed(at)
	}

	if hasSession {
		o.sessions.Logout()
	}

	if acct.PreAuthenticated() {
		o.setState(at, StateLoggingIn)
		if err := o.sessions.SetSession(typ, chain, acct.Session); err != nil {
			return o.fail(at, err)
		}
		return o.succeed(at)
	}

	o.setState(at, StateLoggingIn)
	err = o.sessions.Login(ctx, typ, chain, acct.Address, o.signer(at, chain, acct))
	if err != nil {
		return o.fail(at, err)
	}
	return o.succeed(at)
}

// signer produces the SignFunc for the session login. Pre-supplied
// signatures pass through; otherwise the adapter signs, either directly or
// after the sign-hint confirmation, depending on the persisted preference.
// In every path the signature is produced at most once per attempt.
func (o *Orchestrator) signer(at *attempt, chain wallet.Blockchain, acct wallet.Account) session.SignFunc {
	return func(ctx context.Context, message string) (string, error) {
		if acct.PreSigned() {
			return acct.Signature, nil
		}

		req := wallet.SignRequest{
			Message:    message,
			Address:    acct.Address,
			Blockchain: chain,
			Index:      at.accountIndex,
		}
		if !o.prefs.ShowsSignatureInfo() {
			return o.adapter.SignMessage(ctx, req)
		}

		d := promise.NewDeferred[string]()
		o.mutex.Lock()
		if o.attempt != at {
			o.mutex.Unlock()
			return "", wallet.ErrSuperseded
		}
		at.sign = d
		at.signReq = req
		o.state = StateSignHint
		o.mutex.Unlock()

		o.hints.ShowSignHint(req)
		return d.Await(ctx)
	}
}

// ConfirmSignature resumes an attempt suspended at the sign hint. It
// performs the actual signing and settles the suspension. With hide set,
// the "don't show again" preference is persisted first. Duplicate calls
// are no-ops.
func (o *Orchestrator) ConfirmSignature(ctx context.Context, hide bool) {
	o.mutex.Lock()
	at := o.attempt
	if at == nil || at.sign == nil || o.state != StateSignHint ||
		!at.signStarted.CompareAndSwap(false, true) {
		o.mutex.Unlock()
		return
	}
	req := at.signReq
	o.state = StateLoggingIn
	o.mutex.Unlock()

	if hide {
		if err := o.prefs.SetShowsSignatureInfo(false); err != nil {
			o.log.WithError(err).Warn("persisting signature hint preference failed")
		}
	}
	o.hints.Clear()

	sig, err := o.adapter.SignMessage(ctx, req)
	if err != nil {
		at.sign.Reject(err)
		return
	}
	at.sign.Resolve(sig)
}

// DismissSignature rejects a suspended sign hint as a user abort.
func (o *Orchestrator) DismissSignature() {
	o.mutex.Lock()
	at := o.attempt
	o.mutex.Unlock()
	if at != nil && at.sign != nil {
		at.sign.Reject(wallet.ErrUserAbort)
	}
}

// ConfirmPairing resumes an attempt suspended at the pairing hint.
func (o *Orchestrator) ConfirmPairing() {
	o.mutex.Lock()
	at := o.attempt
	o.mutex.Unlock()
	if at != nil && at.pairing != nil {
		at.pairing.Resolve(struct{}{})
	}
}

// DismissPairing rejects a suspended pairing hint.
func (o *Orchestrator) DismissPairing() {
	o.mutex.Lock()
	at := o.attempt
	o.mutex.Unlock()
	if at != nil && at.pairing != nil {
		at.pairing.Reject(wallet.ErrPairingRejected)
	}
}

// DismissInstallHint closes the install hint. The attempt counts as
// cancelled by the user.
func (o *Orchestrator) DismissInstallHint() {
	o.mutex.Lock()
	if o.state != StateInstallHint {
		o.mutex.Unlock()
		return
	}
	o.state = StateIdle
	o.attempt = nil
	o.mutex.Unlock()

	o.hints.Clear()
	if o.onCancel != nil {
		o.onCancel()
	}
}

// pairingHandler suspends the attempt while the pairing code is shown. The
// separate deferred keeps the pairing error taxonomy apart from the
// signature one.
func (o *Orchestrator) pairingHandler(at *attempt) wallet.PairingFunc {
	return func(ctx context.Context, code string) error {
		d := promise.NewDeferred[struct{}]()
		o.mutex.Lock()
		if o.attempt != at {
			o.mutex.Unlock()
			return wallet.ErrSuperseded
		}
		at.pairing = d
		o.state = StatePairingHint
		o.pairingCode = code
		o.mutex.Unlock()

		o.hints.ShowPairingHint(code)
		_, err := d.Await(ctx)

		o.mutex.Lock()
		if o.attempt == at {
			o.pairingCode = ""
			if err == nil {
				o.state = StateConnecting
			}
		}
		o.mutex.Unlock()
		if err == nil {
			o.hints.Clear()
		}
		return err
	}
}

// begin installs a fresh attempt, superseding a suspended one.
func (o *Orchestrator) begin() *attempt {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if prev := o.attempt; prev != nil {
		rejectPending(prev)
	}
	at := new(attempt)
	o.attempt = at
	return at
}

// rejectPending settles an attempt's suspensions with ErrSuperseded.
// Callers must hold o.mutex.
func rejectPending(at *attempt) {
	if at.sign != nil {
		at.sign.Reject(wallet.ErrSuperseded)
	}
	if at.pairing != nil {
		at.pairing.Reject(wallet.ErrSuperseded)
	}
}

func (o *Orchestrator) superseded(at *attempt) bool {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.attempt != at
}

func (o *Orchestrator) setState(at *attempt, s State) {
	o.mutex.Lock()
	if o.attempt == at {
		o.state = s
		o.connectErr = nil
	}
	o.mutex.Unlock()
}

// succeed resolves an attempt and fires the login callback.
func (o *Orchestrator) succeed(at *attempt) error {
	o.finish(at, StateIdle, nil)
	o.hints.Clear()
	if o.onLogin != nil {
		o.onLogin()
	}
	return nil
}

// fail classifies an attempt's error and resets the orchestrator to idle so
// the same instance can retry. User aborts fire the cancel callback and
// leave no error behind; superseded attempts resolve silently.
func (o *Orchestrator) fail(at *attempt, err error) error {
	err = wallet.Classify(err)

	switch {
	case wallet.IsSuperseded(err):
		return err
	case wallet.IsUserAbort(err) || stderrors.Is(err, context.Canceled):
		o.finish(at, StateIdle, nil)
		o.hints.Clear()
		o.log.Debug("attempt cancelled by user")
		if o.onCancel != nil {
			o.onCancel()
		}
		return err
	default:
		o.finish(at, StateIdle, err)
		o.hints.Clear()
		o.log.WithError(err).Warn("connect attempt failed")
		return err
	}
}

// finish clears the attempt if it is still current.
func (o *Orchestrator) finish(at *attempt, s State, err error) {
	o.mutex.Lock()
	if o.attempt == at {
		o.attempt = nil
		o.state = s
		o.connectErr = err
		o.pairingCode = ""
	}
	o.mutex.Unlock()
}
