// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package lnurl adapts LNURL-auth capable Lightning wallets to the
// wallet.Adapter contract. The adapter fetches a k1 challenge from the
// authentication service, exposes the bech32-encoded lightning: link for
// the QR code, and either signs the challenge with a local linking key or
// polls the service until an external wallet confirms. Either way the
// result is a custodial session token, so no separate login signature is
// requested afterwards.
package lnurl // import "walletgate.network/go-walletgate/wallet/lnurl"

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/pkg/errors"

	"walletgate.network/go-walletgate/log"
	"walletgate.network/go-walletgate/wallet"
)

const (
	// pollInterval is the delay between confirmation polls while an
	// external wallet handles the challenge.
	pollInterval = 2 * time.Second
	// defaultHTTPTimeout bounds a single service round-trip.
	defaultHTTPTimeout = 15 * time.Second
)

// Adapter authenticates through an LNURL-auth service.
type Adapter struct {
	serviceURL string
	client     *http.Client
	linkingKey *secp256k1.PrivateKey
	interval   time.Duration
	log        log.Logger

	mutex   sync.Mutex
	authURI string
}

var _ wallet.Adapter = (*Adapter)(nil)

// Option configures an Adapter.
type Option func(*Adapter)

// WithHTTPClient overrides the HTTP client used for service calls.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Adapter) { a.client = c }
}

// WithLinkingKey installs a local linking key. With a key present the
// challenge is signed in-process instead of waiting for an external wallet.
func WithLinkingKey(key *secp256k1.PrivateKey) Option {
	return func(a *Adapter) { a.linkingKey = key }
}

// WithPollInterval overrides the confirmation poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(a *Adapter) { a.interval = d }
}

// NewAdapter creates an LNURL-auth adapter against the given service base
// URL.
func NewAdapter(serviceURL string, opts ...Option) *Adapter {
	a := &Adapter{
		serviceURL: strings.TrimRight(serviceURL, "/"),
		client:     &http.Client{Timeout: defaultHTTPTimeout},
		interval:   pollInterval,
		log:        log.WithField("wallet", wallet.TypeAlby),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Type() wallet.Type { return wallet.TypeAlby }

func (a *Adapter) Blockchains() []wallet.Blockchain {
	return []wallet.Blockchain{wallet.Lightning}
}

// Supported probes whether the auth service answers.
func (a *Adapter) Supported(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.serviceURL+"/lnurl/challenge", nil)
	if err != nil {
		return false, errors.WithMessage(err, "building probe request")
	}
	resp, err := a.client.Do(req)
	if err != nil {
		a.log.WithError(err).Debug("lnurl service unreachable")
		return false, nil
	}
	_ = resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError, nil
}

// AuthURI returns the lightning: link for the current challenge, empty
// before the first Account call. Safe to call while Account is blocked
// awaiting confirmation.
func (a *Adapter) AuthURI() string {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.authURI
}

type challenge struct {
	K1       string `json:"k1"`
	Callback string `json:"callback"`
}

type callbackResult struct {
	Status  string `json:"status"`
	Reason  string `json:"reason"`
	Token   string `json:"token"`
	Address string `json:"address"`
}

// Account runs the LNURL-auth flow and returns a custodial session account.
// Without a linking key the call blocks polling the service until an
// external wallet confirms; cancelling the context counts as a user abort.
func (a *Adapter) Account(ctx context.Context, req wallet.AccountRequest) (wallet.Account, error) {
	if req.Blockchain != wallet.Lightning {
		return wallet.Account{}, errors.WithMessagef(wallet.ErrUnsupportedBlockchain,
			"lnurl auth on %s", req.Blockchain)
	}

	ch, err := a.fetchChallenge(ctx)
	if err != nil {
		return wallet.Account{}, err
	}
	uri, err := encodeAuthURI(ch.Callback, ch.K1)
	if err != nil {
		return wallet.Account{}, err
	}
	a.mutex.Lock()
	a.authURI = uri
	a.mutex.Unlock()

	var res callbackResult
	if a.linkingKey != nil {
		res, err = a.signChallenge(ctx, ch)
	} else {
		res, err = a.awaitConfirmation(ctx, ch)
	}
	if err != nil {
		return wallet.Account{}, err
	}
	if res.Token == "" {
		return wallet.Account{}, errors.WithMessage(wallet.ErrAuthenticationFailed,
			"lnurl service confirmed without a token")
	}
	return wallet.Account{Address: res.Address, Session: res.Token}, nil
}

// SignMessage is not available: LNURL sessions are custodial and never
// reach the signature login step.
func (a *Adapter) SignMessage(context.Context, wallet.SignRequest) (string, error) {
	return "", errors.New("lnurl sessions do not sign messages")
}

func (a *Adapter) fetchChallenge(ctx context.Context) (challenge, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.serviceURL+"/lnurl/challenge", nil)
	if err != nil {
		return challenge{}, errors.WithMessage(err, "building challenge request")
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return challenge{}, errors.WithMessagef(wallet.ErrTransportUnavailable,
			"fetching lnurl challenge: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return challenge{}, errors.Errorf("lnurl challenge: unexpected status %s", resp.Status)
	}
	var ch challenge
	if err := json.NewDecoder(resp.Body).Decode(&ch); err != nil {
		return challenge{}, errors.WithMessage(err, "decoding lnurl challenge")
	}
	if ch.K1 == "" || ch.Callback == "" {
		return challenge{}, errors.New("lnurl challenge missing k1 or callback")
	}
	return ch, nil
}

// signChallenge signs k1 with the linking key and submits it to the
// callback, LNURL-auth style: DER signature over the raw k1 bytes.
func (a *Adapter) signChallenge(ctx context.Context, ch challenge) (callbackResult, error) {
	k1, err := hex.DecodeString(ch.K1)
	if err != nil {
		return callbackResult{}, errors.WithMessage(err, "decoding k1")
	}
	sig := secpecdsa.Sign(a.linkingKey, k1)
	key := a.linkingKey.PubKey().SerializeCompressed()

	u, err := url.Parse(ch.Callback)
	if err != nil {
		return callbackResult{}, errors.WithMessage(err, "parsing callback URL")
	}
	q := u.Query()
	q.Set("k1", ch.K1)
	q.Set("sig", hex.EncodeToString(sig.Serialize()))
	q.Set("key", hex.EncodeToString(key))
	u.RawQuery = q.Encode()

	res, err := a.callbackGet(ctx, u.String())
	if err != nil {
		return callbackResult{}, err
	}
	if res.Status != "OK" {
		return callbackResult{}, errors.WithMessagef(wallet.ErrAuthenticationFailed,
			"lnurl callback rejected: %s", res.Reason)
	}
	return res, nil
}

// awaitConfirmation polls the service until an external wallet confirmed
// the challenge or the context is cancelled.
func (a *Adapter) awaitConfirmation(ctx context.Context, ch challenge) (callbackResult, error) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	pollURL := a.serviceURL + "/lnurl/poll?k1=" + url.QueryEscape(ch.K1)

	for {
		res, err := a.callbackGet(ctx, pollURL)
		if err == nil && res.Status == "OK" {
			return res, nil
		}
		if err == nil && res.Status == "ERROR" {
			return callbackResult{}, errors.WithMessagef(wallet.ErrAuthenticationFailed,
				"lnurl auth rejected: %s", res.Reason)
		}
		if err != nil && ctx.Err() == nil {
			a.log.WithError(err).Debug("lnurl poll failed, retrying")
		}

		select {
		case <-ctx.Done():
			return callbackResult{}, errors.WithMessagef(wallet.ErrUserAbort,
				"lnurl confirmation cancelled: %v", ctx.Err())
		case <-ticker.C:
		}
	}
}

func (a *Adapter) callbackGet(ctx context.Context, rawURL string) (callbackResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return callbackResult{}, errors.WithMessage(err, "building callback request")
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return callbackResult{}, errors.WithMessage(err, "calling lnurl service")
	}
	defer resp.Body.Close()
	var res callbackResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return callbackResult{}, errors.WithMessage(err, "decoding lnurl response")
	}
	return res, nil
}

// encodeAuthURI bech32-encodes the callback URL with the k1 tag appended
// and wraps it into a lightning: link, uppercased for dense QR encoding.
func encodeAuthURI(callback, k1 string) (string, error) {
	u, err := url.Parse(callback)
	if err != nil {
		return "", errors.WithMessage(err, "parsing callback URL")
	}
	q := u.Query()
	q.Set("tag", "login")
	q.Set("k1", k1)
	u.RawQuery = q.Encode()

	conv, err := bech32.ConvertBits([]byte(u.String()), 8, 5, true)
	if err != nil {
		return "", errors.WithMessage(err, "converting URL bits")
	}
	encoded, err := bech32.Encode("lnurl", conv)
	if err != nil {
		return "", errors.WithMessage(err, "bech32 encoding")
	}
	return fmt.Sprintf("lightning:%s", strings.ToUpper(encoded)), nil
}
