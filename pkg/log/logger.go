// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"io"
	"log"
	"os"
	"sync/atomic"
)

// Logger describes a logger to be used in amlgen.
type Logger interface {
	// Debugf logs a debug message. It is dropped unless verbose output is
	// enabled.
	Debugf(format string, args ...interface{})

	// Infof logs an informational message.
	Infof(format string, args ...interface{})

	// Warnf logs an warning message.
	Warnf(format string, args ...interface{})

	// Errorf logs an error message.
	Errorf(format string, args ...interface{})

	// Fatalf logs a fatal message and immediately exits the application
	// with os.Exit.
	Fatalf(format string, args ...interface{})
}

// DefaultLogger is the logger used by default everywhere within amlgen.
var DefaultLogger Logger

var verbose atomic.Bool

func init() {
	DefaultLogger = New(os.Stderr)
}

// New returns a Logger writing to w with the standard amlgen prefixes.
func New(w io.Writer) Logger {
	return logWrapper{Logger: log.New(w, "", log.LstdFlags)}
}

// SetVerbose enables or disables Debugf output of the default logger.
func SetVerbose(v bool) {
	verbose.Store(v)
}

type logWrapper struct {
	Logger *log.Logger
}

// Debugf implements Logger.
func (logger logWrapper) Debugf(format string, args ...interface{}) {
	if !verbose.Load() {
		return
	}
	logger.Logger.Printf("[amlgen][DEBUG] "+format, args...)
}

// Infof implements Logger.
func (logger logWrapper) Infof(format string, args ...interface{}) {
	logger.Logger.Printf("[amlgen][INFO] "+format, args...)
}

// Warnf implements Logger.
func (logger logWrapper) Warnf(format string, args ...interface{}) {
	logger.Logger.Printf("[amlgen][WARN] "+format, args...)
}

// Errorf implements Logger.
func (logger logWrapper) Errorf(format string, args ...interface{}) {
	logger.Logger.Printf("[amlgen][ERROR] "+format, args...)
}

// Fatalf implements Logger.
func (logger logWrapper) Fatalf(format string, args ...interface{}) {
	logger.Logger.Fatalf("[amlgen][FATAL] "+format, args...)
}

// Debugf logs a debug message.
func Debugf(format string, args ...interface{}) {
	DefaultLogger.Debugf(format, args...)
}

// Infof logs an informational message.
func Infof(format string, args ...interface{}) {
	DefaultLogger.Infof(format, args...)
}

// Warnf logs an warning message.
func Warnf(format string, args ...interface{}) {
	DefaultLogger.Warnf(format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	DefaultLogger.Errorf(format, args...)
}

// Fatalf logs a fatal message and immediately exits the application
// with os.Exit (which is expected to be called by the DefaultLogger.Fatalf).
func Fatalf(format string, args ...interface{}) {
	DefaultLogger.Fatalf(format, args...)
}
