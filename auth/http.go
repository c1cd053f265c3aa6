// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"walletgate.network/go-walletgate/log"
	"walletgate.network/go-walletgate/wallet"
)

const defaultTimeout = 15 * time.Second

// HTTPClient implements Client against the REST auth endpoints
// GET /auth/signMessage and POST /auth.
type HTTPClient struct {
	base   *url.URL
	client *http.Client
	log    log.Logger
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPClient) { h.client = c }
}

// NewHTTPClient creates a Client for the auth API rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...HTTPOption) (*HTTPClient, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.WithMessagef(err, "parsing base URL %q", baseURL)
	}
	h := &HTTPClient{
		base:   base,
		client: &http.Client{Timeout: defaultTimeout},
		log:    log.WithField("component", "auth"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Challenge fetches the sign-in message for an address.
func (h *HTTPClient) Challenge(ctx context.Context, address string) (string, error) {
	u := h.endpoint("/auth/signMessage")
	u.RawQuery = url.Values{"address": {address}}.Encode()

	var body struct {
		Message string `json:"message"`
	}
	if err := h.do(ctx, http.MethodGet, u, nil, &body); err != nil {
		return "", errors.WithMessage(err, "fetching challenge")
	}
	if body.Message == "" {
		return "", errors.New("auth API returned an empty challenge")
	}
	return body.Message, nil
}

// SignIn exchanges a signed challenge for an access token.
func (h *HTTPClient) SignIn(ctx context.Context, req SignInRequest) (string, error) {
	var body struct {
		AccessToken string `json:"accessToken"`
	}
	if err := h.do(ctx, http.MethodPost, h.endpoint("/auth"), req, &body); err != nil {
		return "", errors.WithMessage(err, "signing in")
	}
	if body.AccessToken == "" {
		return "", errors.New("auth API returned an empty access token")
	}
	return body.AccessToken, nil
}

func (h *HTTPClient) endpoint(path string) *url.URL {
	u := *h.base
	u.Path = u.Path + path
	return &u
}

func (h *HTTPClient) do(ctx context.Context, method string, u *url.URL, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return errors.WithMessage(err, "encoding request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return errors.WithMessage(err, "building request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	h.log.WithFields(log.Fields{"method": method, "url": u.String()}).Trace("auth request")
	resp, err := h.client.Do(req)
	if err != nil {
		return errors.WithMessage(err, "auth request")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.WithMessagef(wallet.ErrAuthenticationFailed, "auth API status %d", resp.StatusCode)
	case resp.StatusCode >= 300:
		return errors.Errorf("auth API status %d", resp.StatusCode)
	}

	return errors.WithMessage(json.NewDecoder(resp.Body).Decode(out), "decoding response")
}
