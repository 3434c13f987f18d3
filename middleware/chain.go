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

// Package middleware composes an ordered list of request interceptors
// into a single handler, folded right to left onto a routing core.
package middleware

import "github.com/cluedesc/clueapi-sub000/route"

// Middleware wraps a "next" handler with behavior that runs before,
// after, or instead of calling it.
type Middleware func(next route.HandlerFunc) route.HandlerFunc

// Chain is an ordered list of middleware, applied outermost-first: the
// first entry in the slice is the outermost wrapper seen by a request.
type Chain []Middleware

// Compose folds the chain right to left onto core, so Chain[0] ends up as
// the outermost function a request passes through and core is always the
// innermost call. A nil core is a programming error the chain fails
// closed on immediately, at composition time rather than at the first
// request.
func (c Chain) Compose(core route.CoreFunc) route.HandlerFunc {
	if core == nil {
		panic("middleware: Compose called with a nil core")
	}

	next := route.HandlerFunc(core)

	for i := len(c) - 1; i >= 0; i-- {
		next = c[i](next)
	}

	return next
}
