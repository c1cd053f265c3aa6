// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package lnurl

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletgate.network/go-walletgate/wallet"
)

// fakeService plays the LNURL-auth service side.
type fakeService struct {
	t      *testing.T
	server *httptest.Server

	mutex     sync.Mutex
	k1        string
	confirmed bool
	reject    string
	token     string
}

func newFakeService(t *testing.T) *fakeService {
	s := &fakeService{t: t, token: "session-" + uuid.NewString()}
	mux := http.NewServeMux()
	mux.HandleFunc("/lnurl/challenge", s.handleChallenge)
	mux.HandleFunc("/lnurl/callback", s.handleCallback)
	mux.HandleFunc("/lnurl/poll", s.handlePoll)
	s.server = httptest.NewServer(mux)
	t.Cleanup(s.server.Close)
	return s
}

func (s *fakeService) handleChallenge(w http.ResponseWriter, r *http.Request) {
	k1 := make([]byte, 32)
	rand.New(rand.NewSource(0xC0FFEE)).Read(k1)
	s.mutex.Lock()
	s.k1 = hex.EncodeToString(k1)
	k1Hex := s.k1
	s.mutex.Unlock()
	_ = json.NewEncoder(w).Encode(challenge{
		K1:       k1Hex,
		Callback: s.server.URL + "/lnurl/callback",
	})
}

func (s *fakeService) handleCallback(w http.ResponseWriter, r *http.Request) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	q := r.URL.Query()
	if s.reject != "" {
		_ = json.NewEncoder(w).Encode(callbackResult{Status: "ERROR", Reason: s.reject})
		return
	}
	if q.Get("k1") != s.k1 {
		_ = json.NewEncoder(w).Encode(callbackResult{Status: "ERROR", Reason: "unknown k1"})
		return
	}
	sigBytes, err := hex.DecodeString(q.Get("sig"))
	if err != nil {
		_ = json.NewEncoder(w).Encode(callbackResult{Status: "ERROR", Reason: "bad sig encoding"})
		return
	}
	keyBytes, err := hex.DecodeString(q.Get("key"))
	if err != nil {
		_ = json.NewEncoder(w).Encode(callbackResult{Status: "ERROR", Reason: "bad key encoding"})
		return
	}
	pub, err := secp256k1.ParsePubKey(keyBytes)
	if err != nil {
		_ = json.NewEncoder(w).Encode(callbackResult{Status: "ERROR", Reason: "bad key"})
		return
	}
	sig, err := secpecdsa.ParseDERSignature(sigBytes)
	if err != nil {
		_ = json.NewEncoder(w).Encode(callbackResult{Status: "ERROR", Reason: "bad sig"})
		return
	}
	k1Bytes, _ := hex.DecodeString(s.k1)
	if !sig.Verify(k1Bytes, pub) {
		_ = json.NewEncoder(w).Encode(callbackResult{Status: "ERROR", Reason: "invalid signature"})
		return
	}
	s.confirmed = true
	_ = json.NewEncoder(w).Encode(callbackResult{
		Status:  "OK",
		Token:   s.token,
		Address: q.Get("key"),
	})
}

func (s *fakeService) handlePoll(w http.ResponseWriter, r *http.Request) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.reject != "" {
		_ = json.NewEncoder(w).Encode(callbackResult{Status: "ERROR", Reason: s.reject})
		return
	}
	if !s.confirmed {
		_ = json.NewEncoder(w).Encode(callbackResult{Status: "PENDING"})
		return
	}
	_ = json.NewEncoder(w).Encode(callbackResult{Status: "OK", Token: s.token, Address: "node-pubkey"})
}

func (s *fakeService) confirm() {
	s.mutex.Lock()
	s.confirmed = true
	s.mutex.Unlock()
}

func testKey(t *testing.T) *secp256k1.PrivateKey {
	t.Helper()
	key, err := secp256k1.GeneratePrivateKeyFromRand(rand.New(rand.NewSource(0xDDB)))
	require.NoError(t, err)
	return key
}

func TestAdapter_Supported(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t)
	a := NewAdapter(svc.server.URL)
	ok, err := a.Supported(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	down := NewAdapter("http://127.0.0.1:1")
	ok, err = down.Supported(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdapter_Account_LinkingKey(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t)
	a := NewAdapter(svc.server.URL, WithLinkingKey(testKey(t)))

	acc, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Lightning})
	require.NoError(t, err)
	assert.True(t, acc.PreAuthenticated())
	assert.Equal(t, svc.token, acc.Session)
	assert.NotEmpty(t, acc.Address)
	assert.True(t, strings.HasPrefix(a.AuthURI(), "lightning:LNURL1"))
}

func TestAdapter_Account_Poll(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t)
	a := NewAdapter(svc.server.URL, WithPollInterval(10*time.Millisecond))

	go func() {
		time.Sleep(50 * time.Millisecond)
		svc.confirm()
	}()

	acc, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Lightning})
	require.NoError(t, err)
	assert.True(t, acc.PreAuthenticated())
	assert.Equal(t, svc.token, acc.Session)
}

// TestAdapter_AuthURI_Concurrent reads the auth link from another goroutine
// while Account is blocked polling, the way a UI renders the QR code.
func TestAdapter_AuthURI_Concurrent(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t)
	a := NewAdapter(svc.server.URL, WithPollInterval(10*time.Millisecond))

	uric := make(chan string, 1)
	go func() {
		for {
			if uri := a.AuthURI(); uri != "" {
				uric <- uri
				svc.confirm()
				return
			}
		}
	}()

	acc, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Lightning})
	require.NoError(t, err)
	assert.True(t, acc.PreAuthenticated())

	uri := <-uric
	assert.True(t, strings.HasPrefix(uri, "lightning:LNURL1"))
	assert.Equal(t, uri, a.AuthURI())
}

func TestAdapter_Account_PollCancelled(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t)
	a := NewAdapter(svc.server.URL, WithPollInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	_, err := a.Account(ctx, wallet.AccountRequest{Blockchain: wallet.Lightning})
	assert.ErrorIs(t, err, wallet.ErrUserAbort)
}

func TestAdapter_Account_Rejected(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t)
	svc.reject = "linking key banned"
	a := NewAdapter(svc.server.URL, WithLinkingKey(testKey(t)))

	_, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Lightning})
	assert.ErrorIs(t, err, wallet.ErrAuthenticationFailed)
}

func TestAdapter_Account_UnsupportedChain(t *testing.T) {
	t.Parallel()

	a := NewAdapter("http://127.0.0.1:1")
	_, err := a.Account(context.Background(), wallet.AccountRequest{Blockchain: wallet.Ethereum})
	assert.ErrorIs(t, err, wallet.ErrUnsupportedBlockchain)
}

func TestAdapter_SignMessage(t *testing.T) {
	t.Parallel()

	a := NewAdapter("http://127.0.0.1:1")
	_, err := a.SignMessage(context.Background(), wallet.SignRequest{Message: "m"})
	assert.Error(t, err)
}

func TestEncodeAuthURI(t *testing.T) {
	t.Parallel()

	uri, err := encodeAuthURI("https://svc.example/lnurl/callback", "aabbcc")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "lightning:LNURL1"))
	// bech32 rejects mixed case, the payload must be fully uppercased.
	assert.Equal(t, strings.ToUpper(strings.TrimPrefix(uri, "lightning:")),
		strings.TrimPrefix(uri, "lightning:"))
}
