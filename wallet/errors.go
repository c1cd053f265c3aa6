// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package wallet

import (
	stderrors "errors"
	"strings"

	"github.com/pkg/errors"
)

// The error taxonomy of the connection flow. Adapter-level errors are
// classified onto these sentinels once, at the orchestrator boundary, so
// that no error reaches the UI unclassified. Test with errors.Is or the
// predicate functions below.
var (
	// ErrUserAbort marks an explicit user cancellation: extension popup
	// dismissed, hardware device rejected, relay request denied. It is
	// routed to the cancel callback, never rendered as an error.
	ErrUserAbort = errors.New("user aborted")
	// ErrPermissionDenied marks a usable transport that refused to hand
	// out an account.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrAccountUnverified marks an account the provider exposed but did
	// not verify.
	ErrAccountUnverified = errors.New("account unverified")
	// ErrUnsupportedBlockchain marks a request for a chain outside the
	// adapter's declared set. It is a programming error, not a user-facing
	// retry.
	ErrUnsupportedBlockchain = errors.New("unsupported blockchain")
	// ErrTransportUnavailable marks an absent provider, extension or
	// hardware transport. It routes to the install hint.
	ErrTransportUnavailable = errors.New("transport unavailable")
	// ErrAuthenticationFailed marks a signature the backend rejected.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrPairingRejected and ErrPairingTimeout are hardware pairing
	// failures, distinct from ErrUserAbort.
	ErrPairingRejected = errors.New("pairing rejected")
	ErrPairingTimeout  = errors.New("pairing timed out")
	// ErrSuperseded marks an attempt that was replaced by a newer connect
	// call before it completed.
	ErrSuperseded = errors.New("attempt superseded")
)

// sentinels are the taxonomy roots recognized by Classify.
var sentinels = []error{
	ErrUserAbort, ErrPermissionDenied, ErrAccountUnverified,
	ErrUnsupportedBlockchain, ErrTransportUnavailable,
	ErrAuthenticationFailed, ErrPairingRejected, ErrPairingTimeout,
	ErrSuperseded,
}

func IsUserAbort(err error) bool { return stderrors.Is(err, ErrUserAbort) }
func IsSuperseded(err error) bool { return stderrors.Is(err, ErrSuperseded) }
func IsPairingError(err error) bool {
	return stderrors.Is(err, ErrPairingRejected) || stderrors.Is(err, ErrPairingTimeout)
}

// CodedError is implemented by provider errors that carry a numeric code,
// such as EIP-1193 provider errors and JSON-RPC errors. The go-ethereum rpc
// error types satisfy it.
type CodedError interface {
	error
	ErrorCode() int
}

// EIP-1193 and WalletConnect relay error codes.
const (
	codeUserRejected    = 4001
	codeUnauthorized    = 4100
	codeDisconnected    = 4900
	codeChainDisconnect = 4901
	codeRelayRejected   = 5000
)

// abortPhrases are message fragments that identify a user abort in provider
// vocabularies that do not carry codes.
var abortPhrases = []string{
	"user rejected",
	"user denied",
	"user cancel",
	"rejected by user",
	"denied by the user",
	"cancelled by user",
	"action cancelled",
}

// Classify maps an adapter or provider error onto the error taxonomy. The
// returned error matches exactly one taxonomy sentinel under errors.Is and
// still unwraps to the original error. Already classified errors and nil
// pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, s := range sentinels {
		if stderrors.Is(err, s) {
			return err
		}
	}

	var coded CodedError
	if stderrors.As(err, &coded) {
		switch coded.ErrorCode() {
		case codeUserRejected, codeRelayRejected:
			return classified{ErrUserAbort, err}
		case codeUnauthorized:
			return classified{ErrPermissionDenied, err}
		case codeDisconnected, codeChainDisconnect:
			return classified{ErrTransportUnavailable, err}
		}
	}

	msg := strings.ToLower(err.Error())
	for _, phrase := range abortPhrases {
		if strings.Contains(msg, phrase) {
			return classified{ErrUserAbort, err}
		}
	}

	return err
}

// classified tags a cause with a taxonomy sentinel. It unwraps to both.
type classified struct {
	kind  error
	cause error
}

func (e classified) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e classified) Unwrap() []error { return []error{e.kind, e.cause} }
