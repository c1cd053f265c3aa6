// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package authtest provides an in-process auth API server for tests. It
// issues per-address challenges and verifies EIP-191 personal-sign
// signatures over them.
package authtest // import "walletgate.network/go-walletgate/auth/authtest"

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

// Server is a fake auth backend. Create it with NewServer and point an
// auth.HTTPClient at URL().
type Server struct {
	srv *httptest.Server

	mutex      sync.Mutex
	challenges map[string]string // address (lowercased) -> message
	signIns    int
	tokens     map[string]string // token -> address
}

// NewServer starts the fake auth backend. The caller must Close it.
func NewServer() *Server {
	s := &Server{
		challenges: make(map[string]string),
		tokens:     make(map[string]string),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signMessage", s.handleChallenge)
	mux.HandleFunc("/auth", s.handleSignIn)
	s.srv = httptest.NewServer(mux)
	return s
}

// URL returns the server's base URL.
func (s *Server) URL() string { return s.srv.URL }

// Close shuts the server down.
func (s *Server) Close() { s.srv.Close() }

// SignIns returns how many sign-in exchanges the server has handled.
func (s *Server) SignIns() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.signIns
}

// TokenAddress returns the address a token was issued for.
func (s *Server) TokenAddress(token string) (string, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	addr, ok := s.tokens[token]
	return addr, ok
}

func (s *Server) handleChallenge(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		http.Error(w, "missing address", http.StatusBadRequest)
		return
	}

	message := fmt.Sprintf(
		"By signing this message you confirm ownership of %s. Nonce: %s",
		address, uuid.NewString())

	s.mutex.Lock()
	s.challenges[strings.ToLower(address)] = message
	s.mutex.Unlock()

	writeJSON(w, map[string]string{"message": message})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address   string `json:"address"`
		Signature string `json:"signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s.mutex.Lock()
	s.signIns++
	message, ok := s.challenges[strings.ToLower(req.Address)]
	s.mutex.Unlock()

	if !ok || !verify(message, req.Signature, req.Address) {
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	token := uuid.NewString()
	s.mutex.Lock()
	s.tokens[token] = req.Address
	s.mutex.Unlock()

	writeJSON(w, map[string]string{"accessToken": token})
}

// verify checks an EIP-191 personal-sign signature over message against the
// claimed address.
func verify(message, signature, address string) bool {
	sig, err := hex.DecodeString(strings.TrimPrefix(signature, "0x"))
	if err != nil || len(sig) != crypto.SignatureLength {
		return false
	}
	// personal_sign produces V in {27, 28}.
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return false
	}
	recovered := crypto.PubkeyToAddress(*pub).Hex()
	return strings.EqualFold(recovered, address)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
