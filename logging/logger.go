/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package logging

import (
	"io"
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Logger is the facade every package in this tree logs through. Entry
// starts a record; the four level helpers are shorthand for the common
// case of a message with no extra fields.
type Logger interface {
	Entry(level Level, msg string) *Entry
	Debug(msg string) *Entry
	Info(msg string) *Entry
	Warn(msg string) *Entry
	Error(msg string) *Entry
	SetLevel(level Level)
	GetLevel() Level
	Named(name string) Logger
}

type logger struct {
	mu    sync.RWMutex
	level Level
	sink  hclog.Logger
	name  string
}

// New builds the default hclog-backed sink, writing JSON lines to w at the
// given minimum level. Passing a nil w defaults to os.Stderr.
func New(name string, level Level, w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}

	sink := hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      level.hclog(),
		Output:     w,
		JSONFormat: true,
	})

	return &logger{level: level, sink: sink, name: name}
}

func (l *logger) Entry(level Level, msg string) *Entry {
	return &Entry{logger: l, level: level, msg: msg}
}

func (l *logger) Debug(msg string) *Entry { return l.Entry(DebugLevel, msg) }
func (l *logger) Info(msg string) *Entry  { return l.Entry(InfoLevel, msg) }
func (l *logger) Warn(msg string) *Entry  { return l.Entry(WarnLevel, msg) }
func (l *logger) Error(msg string) *Entry { return l.Entry(ErrorLevel, msg) }

func (l *logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.level = level
	l.sink.SetLevel(level.hclog())
}

func (l *logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.level
}

func (l *logger) Named(name string) Logger {
	l.mu.RLock()
	sink := l.sink
	lvl := l.level
	l.mu.RUnlock()

	return &logger{level: lvl, sink: sink.Named(name), name: name}
}

func (l *logger) emit(level Level, msg string, args []interface{}) {
	l.mu.RLock()
	min := l.level
	sink := l.sink
	l.mu.RUnlock()

	if min == NilLevel || level < min {
		return
	}

	switch level {
	case DebugLevel:
		sink.Debug(msg, args...)
	case InfoLevel:
		sink.Info(msg, args...)
	case WarnLevel:
		sink.Warn(msg, args...)
	case ErrorLevel:
		sink.Error(msg, args...)
	}
}

// Discard is a Logger that drops everything; used as a default when a
// component is built without an explicit logger so "fail open" on logging
// never means a nil-pointer panic.
func Discard() Logger {
	return &logger{level: NilLevel, sink: hclog.NewNullLogger()}
}
