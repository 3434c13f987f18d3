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

// Package route holds the handler function types shared by the router,
// the middleware chain, and the application controller that wires them
// together. It exists on its own so none of those three needs to import
// another to agree on a signature.
package route

import (
	"github.com/cluedesc/clueapi-sub000/httpresponse"
	"github.com/cluedesc/clueapi-sub000/reqcontext"
)

// HandlerFunc is what a registered route, or a middleware's "next",
// resolves to: a response for the given request context.
type HandlerFunc func(ctx *reqcontext.Context) *httpresponse.Response

// CoreFunc is the innermost link a middleware chain composes onto: it
// performs the routing lookup and invokes the matched handler.
type CoreFunc func(ctx *reqcontext.Context) *httpresponse.Response
