// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

// Package log provides the structured key/value logger used across evmcfg.
// evmcfg is a one-shot CLI, not a long-running node, so unlike the N42
// logger this one never rotates or caps log files on disk — it only ever
// writes to the console.
package log

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/n42blockchain/evmcfg/conf"
)

var root = &logger{entry: logrus.NewEntry(terminal)}

var terminal = logrus.New()

type Lvl int

const skipLevel = 3

const (
	LvlCrit Lvl = iota
	LvlFatal
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

func (l Lvl) logrusLevel() logrus.Level {
	switch l {
	case LvlCrit, LvlFatal:
		return logrus.FatalLevel
	case LvlError:
		return logrus.ErrorLevel
	case LvlWarn:
		return logrus.WarnLevel
	case LvlInfo:
		return logrus.InfoLevel
	case LvlDebug:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}

// Init configures the console logger from a LoggerConfig.
func Init(config conf.LoggerConfig) {
	_ = config.Validate()

	formatter := &logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		DisableColors:   !config.Console,
	}
	if config.JSONFormat {
		terminal.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	} else {
		terminal.SetFormatter(formatter)
	}
	terminal.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(strings.ToLower(config.Level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	terminal.SetLevel(lvl)
}

// A Logger writes key/value pairs through the logrus console logger.
type Logger interface {
	// New returns a new Logger that has this logger's context plus the given context.
	New(ctx ...interface{}) Logger

	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})
}

type logger struct {
	entry *logrus.Entry
}

func fieldsOf(ctx []interface{}) logrus.Fields {
	fields := make(logrus.Fields, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", ctx[i])
		}
		fields[key] = ctx[i+1]
	}
	return fields
}

func (l *logger) New(ctx ...interface{}) Logger {
	return &logger{entry: l.entry.WithFields(fieldsOf(ctx))}
}

func (l *logger) write(msg string, lvl Lvl, ctx []interface{}) {
	l.entry.WithFields(fieldsOf(ctx)).Log(lvl.logrusLevel(), msg)
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(msg, LvlTrace, ctx) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(msg, LvlDebug, ctx) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(msg, LvlInfo, ctx) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(msg, LvlWarn, ctx) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(msg, LvlError, ctx) }
func (l *logger) Crit(msg string, ctx ...interface{}) {
	l.write(msg, LvlCrit, ctx)
	os.Exit(1)
}

// New returns a new logger with the given context.
// New is a convenient alias for Root().New.
func New(ctx ...interface{}) Logger {
	return root.New(ctx...)
}

// Root returns the root logger.
func Root() Logger {
	return root
}

// Trace is a convenient alias for Root().Trace.
func Trace(msg string, ctx ...interface{}) { root.write(msg, LvlTrace, ctx) }

// Debug is a convenient alias for Root().Debug.
func Debug(msg string, ctx ...interface{}) { root.write(msg, LvlDebug, ctx) }

// Info is a convenient alias for Root().Info.
func Info(msg string, ctx ...interface{}) { root.write(msg, LvlInfo, ctx) }

// Warn is a convenient alias for Root().Warn.
func Warn(msg string, ctx ...interface{}) { root.write(msg, LvlWarn, ctx) }

// Error is a convenient alias for Root().Error.
func Error(msg string, ctx ...interface{}) { root.write(msg, LvlError, ctx) }

// Crit is a convenient alias for Root().Crit. It terminates the process.
func Crit(msg string, ctx ...interface{}) {
	root.write(msg, LvlCrit, ctx)
	os.Exit(1)
}

// TerminalStringer is an analogous interface to the stdlib stringer, allowing
// own types to have custom shortened serialization formats when printed to
// the screen.
type TerminalStringer interface {
	TerminalString() string
}
