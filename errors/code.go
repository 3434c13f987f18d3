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

package errors

import (
	"sort"
	"strconv"
)

// idMsgFct maps the MinPkgXxx range-start each package in this tree
// registers (see modules.go) to the message function that package
// installed with RegisterIdFctMessage during its init(). Every CodeError
// a package declares falls in [minCode, minCode+100) and resolves back to
// that package's function via findCodeErrorInMapMessage.
var idMsgFct = make(map[CodeError]Message)

// Message renders a CodeError declared by one of this tree's packages
// into its human-readable string.
type Message func(code CodeError) (message string)

// CodeError is the numeric identifier every package-local Err* constant in
// this tree is built from: pkgMinCode (one of the MinPkgXxx constants in
// modules.go) plus a small per-package offset.
type CodeError uint16

const (
	// UnknownError is returned by code paths that have no package-specific
	// CodeError to report, and as the fallback findCodeErrorInMapMessage
	// returns when a code falls below every registered range.
	UnknownError CodeError = 0

	// UnknownMessage is Message's fallback when no package registered a
	// function for a code's range, or that function returned NullMessage.
	UnknownMessage = "unknown error"

	// NullMessage is what a registered Message function returns for a
	// code it doesn't recognize within its own range.
	NullMessage = ""
)

// Uint16 returns the CodeError's underlying numeric value.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// Int returns the CodeError's underlying numeric value as an int.
func (c CodeError) Int() int {
	return int(c)
}

// String renders the CodeError's numeric value as a decimal string.
func (c CodeError) String() string {
	return strconv.Itoa(c.Int())
}

// Message resolves c against the message function registered for c's
// range (see RegisterIdFctMessage), falling back to UnknownMessage when
// c is UnknownError, its range was never registered, or the registered
// function doesn't recognize c specifically.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}

	if f, ok := idMsgFct[findCodeErrorInMapMessage(c)]; ok {
		if m := f(c); m != "" {
			return m
		}
	}

	return UnknownMessage
}

// Error builds an Error carrying c's code, c's resolved message, and the
// given parents (non-nil entries only).
func (c CodeError) Error(p ...error) Error {
	return New(c.Uint16(), c.Message(), p...)
}

// RegisterIdFctMessage registers fct as the message resolver for every
// CodeError in [minCode, minCode+100). Each package in this tree calls
// this once from its own init() with its MinPkgXxx constant.
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	if idMsgFct == nil {
		idMsgFct = make(map[CodeError]Message)
	}

	idMsgFct[minCode] = fct
	orderMapMessage()
}

func getMapMessageKey() []CodeError {
	keys := make([]int, 0, len(idMsgFct))

	for k := range idMsgFct {
		keys = append(keys, int(k.Uint16()))
	}

	sort.Ints(keys)

	res := make([]CodeError, 0, len(keys))

	for _, k := range keys {
		res = append(res, CodeError(k))
	}

	return res
}

func orderMapMessage() {
	res := make(map[CodeError]Message, len(idMsgFct))

	for _, k := range getMapMessageKey() {
		res[k] = idMsgFct[k]
	}

	idMsgFct = res
}

// findCodeErrorInMapMessage returns the largest registered range-start at
// or below code, so e.g. httpcookie.ErrEmptyName (MinPkgCookie+3)
// resolves back to the function registered for MinPkgCookie.
func findCodeErrorInMapMessage(code CodeError) CodeError {
	var res CodeError = 0

	for _, k := range getMapMessageKey() {
		if k <= code && k > res {
			res = k
		}
	}

	return res
}

func isCodeInSlice(code CodeError, slice []CodeError) bool {
	for _, c := range slice {
		if c == code {
			return true
		}
	}

	return false
}

func unicCodeSlice(slice []CodeError) []CodeError {
	res := make([]CodeError, 0, len(slice))

	for _, c := range slice {
		if !isCodeInSlice(c, res) {
			res = append(res, c)
		}
	}

	return res
}
