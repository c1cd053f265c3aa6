// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package logruslog adapts a logrus logger to the go-walletgate Logger
// interface.
package logruslog // import "walletgate.network/go-walletgate/log/logruslog"

import (
	"github.com/sirupsen/logrus"

	"walletgate.network/go-walletgate/log"
)

// Logger wraps a logrus entry.
type Logger struct {
	*logrus.Entry
}

// FromLogrus wraps a logrus.Logger into a go-walletgate Logger.
func FromLogrus(l *logrus.Logger) *Logger {
	return &Logger{logrus.NewEntry(l)}
}

// Default sets a new logrus logger with level info and default formatting as
// the framework logger and returns it.
func Default() *Logger {
	l := FromLogrus(logrus.New())
	log.Set(l)
	return l
}

// WithField returns a derived logger with the given field set.
func (l *Logger) WithField(key string, value interface{}) log.Logger {
	return &Logger{l.Entry.WithField(key, value)}
}

// WithFields returns a derived logger with the given fields set.
func (l *Logger) WithFields(fs log.Fields) log.Logger {
	return &Logger{l.Entry.WithFields(logrus.Fields(fs))}
}

// WithError returns a derived logger with the error field set.
func (l *Logger) WithError(err error) log.Logger {
	return &Logger{l.Entry.WithError(err)}
}
