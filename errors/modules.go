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

// Each subsystem package reserves a range of 100 codes starting at its
// MinPkgXxx constant and registers its own message function with
// RegisterIdFctMessage during init(), the way nabbar/golib/httpserver
// reserves MinPkgHttpServer for its own error.go. The iopool, httprequest
// and middleware ranges are reserved but define no codes and register
// nothing.
const (
	MinPkgIOPool      = 100
	MinPkgConnPool    = 200
	MinPkgAccept      = 300
	MinPkgHTTPRequest = 400
	MinPkgHTTPRespons = 500
	MinPkgRouter      = 600
	MinPkgMiddleware  = 700
	MinPkgMultipart   = 800
	MinPkgCookie      = 900
	MinPkgConfig      = 1000
	MinPkgApplication = 1100

	MinAvailable = 2000
)
