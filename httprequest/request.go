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

// Package httprequest models a parsed HTTP/1.1 request and reads one off a
// buffered connection, deciding along the way whether the body stays in
// memory or streams to a temp file.
package httprequest

import (
	"strings"

	"github.com/cluedesc/clueapi-sub000/httpcookie"
	"github.com/cluedesc/clueapi-sub000/httpmethod"
)

// Request is the immutable view a handler sees of one HTTP/1.1 request.
// At most one of Body or ParsePath is populated once Read returns
// successfully (neither, for a request without a body). Cookies are parsed from the Cookie header at most once,
// memoized the first time a caller asks for them.
type Request struct {
	Method  httpmethod.Method
	URI     string
	Path    string
	Query   string
	Headers Header

	Body      []byte
	ParsePath string

	cookies    map[string]string
	cookieOnce bool
}

// Header is a case-insensitive header map, matching what a wire-format
// HTTP/1.1 message actually gives you: names that only agree up to case.
type Header map[string]string

func newHeader() Header {
	return Header{}
}

func (h Header) set(key, value string) {
	h[strings.ToLower(key)] = value
}

// Get returns a header's value, case-insensitively, and whether it was
// present at all.
func (h Header) Get(key string) (string, bool) {
	v, ok := h[strings.ToLower(key)]
	return v, ok
}

// ContentType returns the Content-Type header verbatim, or "" if absent.
func (h Header) ContentType() string {
	v, _ := h.Get("content-type")
	return v
}

// Cookies parses and memoizes the request's Cookie header on first call.
func (r *Request) Cookies() map[string]string {
	if !r.cookieOnce {
		if raw, ok := r.Headers.Get("cookie"); ok {
			r.cookies = httpcookie.ParseCookieHeader(raw)
		} else {
			r.cookies = map[string]string{}
		}

		r.cookieOnce = true
	}

	return r.cookies
}

// IsMultipart reports whether Content-Type begins, case-insensitively,
// with multipart/form-data.
func (r *Request) IsMultipart() bool {
	return strings.HasPrefix(strings.ToLower(r.Headers.ContentType()), "multipart/form-data")
}

// KeepAlive reports whether the request asked for a persistent connection:
// true when the Connection header is absent, otherwise true only for
// "keep-alive". The request's HTTP version is not recorded, so an HTTP/1.0
// request without the header also reports true.
func (r *Request) KeepAlive() bool {
	v, ok := r.Headers.Get("connection")

	if !ok {
		return true
	}

	return strings.EqualFold(strings.TrimSpace(v), "keep-alive")
}

// IsUpgrade reports whether this request asks for a protocol upgrade (most
// commonly a WebSocket handshake), which this server rejects rather than
// services.
func (r *Request) IsUpgrade() bool {
	v, _ := r.Headers.Get("upgrade")
	return v != ""
}
