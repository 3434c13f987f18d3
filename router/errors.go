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

// Package router is a radix tree keyed by path, with method-keyed handlers
// at each terminal node and a single named dynamic segment per node.
package router

import liberr "github.com/cluedesc/clueapi-sub000/errors"

const pkgMinCode = liberr.MinPkgRouter

const (
	ErrMalformedParam liberr.CodeError = pkgMinCode + iota + 1
	ErrParamConflict
	ErrRouteConflict
	ErrNoMatch
)

func init() {
	liberr.RegisterIdFctMessage(pkgMinCode, func(code liberr.CodeError) string {
		switch code {
		case ErrMalformedParam:
			return "path pattern has an unclosed '{' or stray '}'"
		case ErrParamConflict:
			return "a different parameter name is already registered at this position"
		case ErrRouteConflict:
			return "this method and path are already registered"
		case ErrNoMatch:
			return "no route matches this method and path"
		default:
			return ""
		}
	})
}
