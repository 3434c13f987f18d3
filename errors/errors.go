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

// Package errors is the sum-type error model the rest of clueapi-go returns
// from every suspension point instead of panicking: a CodeError classifies
// the failure (configuration, protocol, transient I/O, handler), the message
// carries a contextual, human-readable description, and an optional parent
// chain preserves the underlying cause. It mirrors the shape (not the full
// surface) of nabbar/golib/errors.
package errors

import (
	"fmt"
	"strings"
)

const (
	defaultPattern      = "[%d] %s"
	defaultPatternTrace = "[%d] %s (%s)"
)

// FuncMap is used by Error.Map to walk an error and its parents.
type FuncMap func(e error) bool

// Error is the sum-type error value returned from fallible operations.
//
// It is never thrown: every function boundary in this module that can
// fail returns (T, Error) and the caller decides whether to propagate,
// log, or translate it into an HTTP status.
type Error interface {
	error

	// IsCode reports whether this error's own code equals code.
	IsCode(code CodeError) bool
	// HasCode reports whether this error or any parent carries code.
	HasCode(code CodeError) bool
	// Code returns the numeric code, HTTP-status-like in spirit.
	Code() uint16
	// GetParentCode lists this error's code and every parent's, deduplicated.
	GetParentCode() []CodeError

	// Is implements errors.Is compatibility.
	Is(e error) bool
	// HasParent reports whether this error wraps at least one parent.
	HasParent() bool
	// Add appends non-nil errors as parents of this one.
	Add(parent ...error) Error
	// Map visits this error then every parent, depth-first, until fct
	// returns false.
	Map(fct FuncMap) bool

	// StringError returns this error's own message, without parents.
	StringError() string
	// CodeError formats code+message using pattern (or a sane default).
	CodeError(pattern string) string

	// Unwrap supports errors.As / errors.Unwrap over the parent chain.
	Unwrap() []error
	// GetTrace returns "file#line" for where this error was constructed.
	GetTrace() string
}

type ers struct {
	c uint16
	e string
	p []Error
	t fileLine
}

type fileLine struct {
	Function string
	File     string
	Line     int
}

// New constructs an Error carrying code, message and optional parents.
func New(code uint16, message string, parent ...error) Error {
	f := getFrame()
	e := &ers{c: code, e: message, t: fileLine{Function: f.Function, File: f.File, Line: f.Line}}
	e.Add(parent...)
	return e
}

// Newf is New with fmt.Sprintf applied to message/args first.
func Newf(code uint16, message string, args ...interface{}) Error {
	return New(code, fmt.Sprintf(message, args...))
}

// IfError returns a non-nil Error only if at least one non-nil err is given.
func IfError(code uint16, message string, err ...error) Error {
	var filtered []error
	for _, e := range err {
		if e != nil {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return New(code, message, filtered...)
}

func (e *ers) is(err *ers) bool {
	if e == nil || err == nil {
		return false
	}
	if ss, sd := e.GetTrace(), err.GetTrace(); ss != "" || sd != "" {
		return strings.EqualFold(ss, sd)
	}
	if ss, sd := e.StringError(), err.StringError(); ss != "" || sd != "" {
		return strings.EqualFold(ss, sd)
	}
	return e.Code() == err.Code()
}

func (e *ers) Is(err error) bool {
	if err == nil {
		return false
	}
	if er, ok := err.(*ers); ok {
		return e.is(er)
	}
	return strings.EqualFold(e.e, err.Error())
}

func (e *ers) Add(parent ...error) Error {
	for _, v := range parent {
		if v == nil {
			continue
		}
		if er, ok := v.(*ers); ok {
			e.p = append(e.p, er)
		} else if err, ok := v.(Error); ok {
			e.p = append(e.p, err)
		} else {
			e.p = append(e.p, &ers{e: v.Error()})
		}
	}
	return e
}

func (e *ers) IsCode(code CodeError) bool {
	return e.c == code.Uint16()
}

func (e *ers) HasCode(code CodeError) bool {
	if e.IsCode(code) {
		return true
	}
	for _, p := range e.p {
		if p.HasCode(code) {
			return true
		}
	}
	return false
}

func (e *ers) Code() uint16 {
	return e.c
}

func (e *ers) GetParentCode() []CodeError {
	res := []CodeError{CodeError(e.c)}
	for _, p := range e.p {
		res = append(res, p.GetParentCode()...)
	}
	return unicCodeSlice(res)
}

func (e *ers) HasParent() bool {
	return len(e.p) > 0
}

func (e *ers) Map(fct FuncMap) bool {
	if !fct(e) {
		return false
	}
	for _, p := range e.p {
		if !p.Map(fct) {
			return false
		}
	}
	return true
}

func (e *ers) StringError() string {
	return e.e
}

func (e *ers) Error() string {
	return modeError.error(e)
}

func (e *ers) CodeError(pattern string) string {
	if pattern == "" {
		pattern = defaultPattern
	}
	return fmt.Sprintf(pattern, e.Code(), e.StringError())
}

func (e *ers) Unwrap() []error {
	if len(e.p) == 0 {
		return nil
	}
	res := make([]error, 0, len(e.p))
	for _, p := range e.p {
		res = append(res, p)
	}
	return res
}

func (e *ers) GetTrace() string {
	if e.t.File != "" {
		return fmt.Sprintf("%s#%d", filterPath(e.t.File), e.t.Line)
	} else if e.t.Function != "" {
		return fmt.Sprintf("%s#%d", e.t.Function, e.t.Line)
	}
	return ""
}
