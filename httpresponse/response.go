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

// Package httpresponse models the three response shapes a handler can
// return (buffered, file, chunked) and writes any of them onto a
// connection with the correct framing and keep-alive headers.
package httpresponse

import (
	"fmt"
	"net/http"

	"github.com/cluedesc/clueapi-sub000/httpcookie"
	"github.com/cluedesc/clueapi-sub000/mimetype"
)

// Status is an HTTP status code. StatusUnknown is the pipeline's sentinel
// for "nothing set one yet"; the writer rewrites it to 500 right before
// sending.
type Status int

const StatusUnknown Status = 0

// Mode discriminates the three response shapes this type can hold.
type Mode uint8

const (
	ModeBuffered Mode = iota
	ModeFile
	ModeChunked
)

// StreamFunc writes a response body through w, a chunk sink, returning an
// error only for conditions the caller should log; the writer guarantees
// a terminating zero-length chunk regardless of how StreamFunc exits.
type StreamFunc func(w ChunkWriter) error

// ChunkWriter is the sink a streaming response writes successive chunks
// to, one WriteChunk call per chunk.
type ChunkWriter interface {
	WriteChunk(p []byte) error
}

// Response is what a handler returns. Exactly one of Body, FilePath, or
// Stream applies, selected by Mode.
type Response struct {
	Mode    Mode
	Status  Status
	Headers map[string]string
	Cookies []httpcookie.Cookie

	Body []byte

	FilePath string

	Stream StreamFunc
}

// New starts a buffered 200 response with an empty body.
func New() *Response {
	return &Response{Mode: ModeBuffered, Status: Status(http.StatusOK), Headers: map[string]string{}}
}

// WithStatus sets the status code, returning the response for chaining.
func (r *Response) WithStatus(status int) *Response {
	r.Status = Status(status)
	return r
}

// WithHeader sets a single header, returning the response for chaining.
func (r *Response) WithHeader(key, value string) *Response {
	r.Headers[key] = value
	return r
}

// WithCookie appends a cookie to be emitted as a Set-Cookie header.
func (r *Response) WithCookie(c httpcookie.Cookie) *Response {
	r.Cookies = append(r.Cookies, c)
	return r
}

// Text builds a plain-text buffered response.
func Text(status int, body string) *Response {
	r := New().WithStatus(status).WithHeader("Content-Type", "text/plain; charset=utf-8")
	r.Body = []byte(body)
	return r
}

// HTML builds an HTML buffered response.
func HTML(status int, body string) *Response {
	r := New().WithStatus(status).WithHeader("Content-Type", "text/html; charset=utf-8")
	r.Body = []byte(body)
	return r
}

// JSON builds a buffered response whose body is already-encoded JSON
// bytes; encoding itself happens a layer up from this package.
func JSON(status int, body []byte) *Response {
	r := New().WithStatus(status).WithHeader("Content-Type", "application/json; charset=utf-8")
	r.Body = body
	return r
}

// File builds a file-mode response. Content-Length and ETag are set
// immediately from the file's current size/mtime; the bytes themselves
// stream later, when the writer opens FilePath and copies it out in chunks.
func File(path string, size int64, modTimeUnix int64) *Response {
	r := New()
	r.Mode = ModeFile
	r.FilePath = path
	r.Headers["Content-Type"] = mimetype.ByExtension(path)
	r.Headers["Content-Length"] = fmt.Sprintf("%d", size)
	r.Headers["ETag"] = fmt.Sprintf("%q", fmt.Sprintf("%x-%x", modTimeUnix, size))
	return r
}

// Chunked builds a chunked response driven by a user-supplied stream
// callback.
func Chunked(status int, fn StreamFunc) *Response {
	r := New().WithStatus(status)
	r.Mode = ModeChunked
	r.Stream = fn
	r.Headers["Cache-Control"] = "no-cache"
	return r
}

// ReasonPhrase returns the standard reason phrase for a status, or a
// sentinel for codes net/http doesn't know about.
func ReasonPhrase(status Status) string {
	if status == StatusUnknown {
		return "Unknown"
	}

	if text := http.StatusText(int(status)); text != "" {
		return text
	}

	return "Unknown Status"
}
