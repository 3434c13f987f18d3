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

package application

import (
	liberr "github.com/cluedesc/clueapi-sub000/errors"
)

const (
	pkgMinCode = liberr.MinPkgApplication

	ErrAlreadyRunning liberr.CodeError = pkgMinCode + iota + 1
	ErrNotRunning
	ErrListen
)

func init() {
	liberr.RegisterIdFctMessage(pkgMinCode, func(code liberr.CodeError) string {
		switch code {
		case ErrAlreadyRunning:
			return "application is already starting or running"
		case ErrNotRunning:
			return "application is not running"
		case ErrListen:
			return "application failed to bind its acceptor set"
		default:
			return ""
		}
	})
}
