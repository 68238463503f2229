// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package xlog is the small leveled logger injected throughout seresave,
// mirroring the logger shape saferwall/pe threads through File via
// Options.Logger: an interface with a sane stderr-backed default, filterable
// by level, so callers (tests, the cobra cmd/seresave entry point) can
// substitute their own without every package importing a concrete logging
// framework.
package xlog

import (
	"fmt"
	"log"
	"os"
)

// Level controls which messages a Logger emits.
type Level int

const (
	// LevelDebug emits every message, including per-file batch progress.
	LevelDebug Level = iota
	// LevelInfo emits normal operational messages.
	LevelInfo
	// LevelError emits only failures.
	LevelError
)

// Logger is the interface every seresave package logs through.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// StdLogger is the default Logger, backed by the standard library's log
// package and filtered by Level.
type StdLogger struct {
	level Level
	std   *log.Logger
}

// NewStdLogger returns a Logger writing to out, filtered at level.
func NewStdLogger(out *os.File, level Level) *StdLogger {
	return &StdLogger{
		level: level,
		std:   log.New(out, "", log.LstdFlags),
	}
}

func (l *StdLogger) Debugf(format string, args ...interface{}) {
	if l.level > LevelDebug {
		return
	}
	l.std.Output(2, "DEBUG "+fmt.Sprintf(format, args...))
}

func (l *StdLogger) Infof(format string, args ...interface{}) {
	if l.level > LevelInfo {
		return
	}
	l.std.Output(2, "INFO  "+fmt.Sprintf(format, args...))
}

func (l *StdLogger) Errorf(format string, args ...interface{}) {
	if l.level > LevelError {
		return
	}
	l.std.Output(2, "ERROR "+fmt.Sprintf(format, args...))
}

// Default is the package-wide logger used when a component is not handed
// one explicitly, matching saferwall/pe's New()/NewBytes() fallback to
// log.NewStdLogger(os.Stdout) filtered at LevelError.
var Default Logger = NewStdLogger(os.Stderr, LevelError)

// Nop discards every message; useful in tests that don't want log noise.
type Nop struct{}

func (Nop) Debugf(string, ...interface{}) {}
func (Nop) Infof(string, ...interface{})  {}
func (Nop) Errorf(string, ...interface{}) {}
