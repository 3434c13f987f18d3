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

package httpresponse

import (
	"fmt"

	liberr "github.com/cluedesc/clueapi-sub000/errors"
)

const pkgMinCode = liberr.MinPkgHTTPRespons

const (
	ErrWrite liberr.CodeError = pkgMinCode + iota + 1
	ErrOpenFile
)

func init() {
	liberr.RegisterIdFctMessage(pkgMinCode, func(code liberr.CodeError) string {
		switch code {
		case ErrWrite:
			return "failed writing the response to the connection"
		case ErrOpenFile:
			return "failed opening the file backing a file-mode response"
		default:
			return ""
		}
	})
}

// ErrorClass picks the body format the writer substitutes when a response
// reaches it still carrying StatusUnknown.
type ErrorClass uint8

const (
	ErrorClassPlain ErrorClass = iota
	ErrorClassJSON
)

// DefaultErrorResponse builds the substituted 500 the writer sends in
// place of a StatusUnknown response, per the configured error class.
func DefaultErrorResponse(class ErrorClass, detail string) *Response {
	reason := ReasonPhrase(Status(500))

	switch class {
	case ErrorClassJSON:
		body := fmt.Sprintf(`{"error":%q,"detail":%q}`, reason, detail)
		return JSON(500, []byte(body))
	default:
		return Text(500, reason)
	}
}
