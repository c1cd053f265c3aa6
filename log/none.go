// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

package log

import "fmt"

// none is the default non-logging logger. Only Panic and Panicf have an
// effect.
type none struct{}

func (none) Tracef(string, ...interface{}) {}
func (none) Debugf(string, ...interface{}) {}
func (none) Infof(string, ...interface{}) {}
func (none) Warnf(string, ...interface{}) {}
func (none) Errorf(string, ...interface{}) {}

func (none) Panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

func (none) Trace(...interface{}) {}
func (none) Debug(...interface{}) {}
func (none) Info(...interface{}) {}
func (none) Warn(...interface{}) {}
func (none) Error(...interface{}) {}

func (none) Panic(args ...interface{}) {
	panic(fmt.Sprint(args...))
}

func (n *none) WithField(string, interface{}) Logger { return n }
func (n *none) WithFields(Fields) Logger { return n }
func (n *none) WithError(error) Logger { return n }
