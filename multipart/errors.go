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

package multipart

import liberr "github.com/cluedesc/clueapi-sub000/errors"

const pkgMinCode = liberr.MinPkgMultipart

const (
	ErrMissingDashBoundary liberr.CodeError = pkgMinCode + iota + 1
	ErrMalformedBoundaryLine
	ErrHeaderTooLarge
	ErrMalformedHeader
	ErrTooManyParts
	ErrUnexpectedEOF
	ErrSpillFile
)

func init() {
	liberr.RegisterIdFctMessage(pkgMinCode, func(code liberr.CodeError) string {
		switch code {
		case ErrMissingDashBoundary:
			return "body does not start with the expected dash-boundary"
		case ErrMalformedBoundaryLine:
			return "boundary line is missing its terminating CRLF"
		case ErrHeaderTooLarge:
			return "part header block exceeds the configured cap"
		case ErrMalformedHeader:
			return "part header could not be parsed"
		case ErrTooManyParts:
			return "request exceeded the maximum part count before the closing boundary"
		case ErrUnexpectedEOF:
			return "input ended before the closing boundary was found"
		case ErrSpillFile:
			return "could not create or write the temp file backing a spilled part"
		default:
			return ""
		}
	})
}
