// Copyright (c) 2026 The Walletgate Authors. All rights reserved.
// This file is part of go-walletgate. Use of this source code is governed by
// a MIT-style license that can be found in the LICENSE file.

// Package log implements the logger interface of go-walletgate. Users are
// expected to pass an implementation of this interface to harmonize the
// framework's logging with their application logging.
//
// It mimics the interface of logrus, which is go-walletgate's logger of
// choice. The logruslog subpackage provides a ready adapter.
package log // import "walletgate.network/go-walletgate/log"

// logger is the framework logger. It is silent by default; framework users
// should replace it via Set.
var logger Logger = new(none)

// Fields is a collection of fields that can be passed to Logger.WithFields.
type Fields map[string]interface{}

// Logger is a levelled, structured logger. This is the interface that needs
// to be passed to go-walletgate.
type Logger interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Panicf(format string, args ...interface{})

	Trace(...interface{})
	Debug(...interface{})
	Info(...interface{})
	Warn(...interface{})
	Error(...interface{})
	Panic(...interface{})

	WithField(key string, value interface{}) Logger
	WithFields(Fields) Logger
	WithError(error) Logger
}

// Set sets the framework logger. It is not synchronized with concurrent
// logging calls and should be called once, before the framework is used.
func Set(l Logger) {
	if l == nil {
		logger = new(none)
		return
	}
	logger = l
}

// Log returns the current framework logger.
func Log() Logger { return logger }

func Tracef(format string, args ...interface{}) { logger.Tracef(format, args...) }
func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }
func Infof(format string, args ...interface{}) { logger.Infof(format, args...) }
func Warnf(format string, args ...interface{}) { logger.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }
func Panicf(format string, args ...interface{}) { logger.Panicf(format, args...) }

func Trace(args ...interface{}) { logger.Trace(args...) }
func Debug(args ...interface{}) { logger.Debug(args...) }
func Info(args ...interface{}) { logger.Info(args...) }
func Warn(args ...interface{}) { logger.Warn(args...) }
func Error(args ...interface{}) { logger.Error(args...) }
func Panic(args ...interface{}) { logger.Panic(args...) }

// WithField calls WithField on the framework logger.
func WithField(key string, value interface{}) Logger { return logger.WithField(key, value) }

// WithFields calls WithFields on the framework logger.
func WithFields(fs Fields) Logger { return logger.WithFields(fs) }

// WithError calls WithError on the framework logger.
func WithError(err error) Logger { return logger.WithError(err) }
