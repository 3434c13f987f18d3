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

import liberr "github.com/cluedesc/clueapi-sub000/errors"

// Entry is a single log record under construction. Field/Error calls return
// the same Entry so callers chain them, and nothing is emitted until Log.
type Entry struct {
	logger *logger
	level  Level
	msg    string
	args   []interface{}
}

// Field appends a key/value pair to the entry.
func (e *Entry) Field(key string, value interface{}) *Entry {
	if e == nil {
		return e
	}

	e.args = append(e.args, key, value)

	return e
}

// Error attaches an error (CodeError-aware or plain) to the entry under the
// "error" key, flattening a liberr.Error's code alongside its message.
func (e *Entry) Error(err error) *Entry {
	if e == nil || err == nil {
		return e
	}

	if ce, ok := err.(liberr.Error); ok {
		e.args = append(e.args, "error", ce.StringError(), "error_code", ce.Code())
	} else {
		e.args = append(e.args, "error", err.Error())
	}

	return e
}

// Log emits the entry through its owning logger's sink. A nil Entry (e.g. a
// Field call against a nil *Entry) is a silent no-op rather than a panic, so
// logging never becomes a suspension point for the caller.
func (e *Entry) Log() {
	if e == nil || e.logger == nil {
		return
	}

	e.logger.emit(e.level, e.msg, e.args)
}
