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

package httprequest

import (
	"bufio"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/cluedesc/clueapi-sub000/httpmethod"
)

// ErrCode is the protocol-level outcome of a read, mapped straight onto the
// status the connection task writes back when it isn't ErrNone.
type ErrCode int

const (
	ErrNone ErrCode = 0
	ErrBadRequest ErrCode = 400
	ErrRequestTimeout ErrCode = 408
	ErrPayloadTooLarge ErrCode = 413
	// ErrUpgradeRejected signals a WebSocket (or other) upgrade request;
	// the caller responds and closes rather than servicing it.
	ErrUpgradeRejected ErrCode = 4901
)

// Config tunes one Reader.
type Config struct {
	MaxHeaderBytes int
	MaxBodyBytes   int64
	ChunkSize      int
	TempDir        string
}

// Reader turns a connection's bytes into a Request.
type Reader struct {
	cfg Config
}

// New builds a Reader bound to cfg.
func New(cfg Config) *Reader {
	return &Reader{cfg: cfg}
}

// Read parses the request line, headers, and body (or spills the body to
// a temp file) off br, a buffered view of conn. conn is only used for its
// deadline-aware Read via br; actual timeout enforcement is the caller's
// responsibility (the accept/connection-task layer arms the socket
// deadline before calling Read).
func (r *Reader) Read(br *bufio.Reader, conn net.Conn) (*Request, ErrCode) {
	line, err := readLine(br, r.cfg.MaxHeaderBytes)

	if err != nil {
		return nil, classifyErr(err)
	}

	method, uri, ok := parseRequestLine(line)

	if !ok {
		return nil, ErrBadRequest
	}

	headers, headerBytes, err := readHeaders(br, r.cfg.MaxHeaderBytes-len(line))

	if err != nil {
		return nil, classifyErr(err)
	}

	_ = headerBytes

	req := &Request{
		Method:  httpmethod.Parse(method),
		URI:     uri,
		Headers: headers,
	}

	if i := strings.IndexByte(uri, '?'); i >= 0 {
		req.Path = uri[:i]
		req.Query = uri[i+1:]
	} else {
		req.Path = uri
	}

	if req.IsUpgrade() {
		return req, ErrUpgradeRejected
	}

	if req.Method.IsSafe() {
		return req, ErrNone
	}

	if req.IsMultipart() {
		return r.readMultipartToDisk(br, req)
	}

	return r.readBodyToMemory(br, req)
}

func (r *Reader) readBodyToMemory(br *bufio.Reader, req *Request) (*Request, ErrCode) {
	raw, hasHeader := req.Headers.Get("content-length")

	if !hasHeader {
		return req, ErrNone
	}

	length, ok := parseContentLength(raw)

	if !ok {
		return req, ErrBadRequest
	}

	if length == 0 {
		return req, ErrNone
	}

	maxBody := r.cfg.MaxBodyBytes

	if maxBody > 0 && length > maxBody {
		return req, ErrPayloadTooLarge
	}

	buf := make([]byte, length)

	if _, err := io.ReadFull(br, buf); err != nil {
		return req, classifyErr(err)
	}

	req.Body = buf

	return req, ErrNone
}

func (r *Reader) readMultipartToDisk(br *bufio.Reader, req *Request) (*Request, ErrCode) {
	raw, hasHeader := req.Headers.Get("content-length")

	if !hasHeader {
		return req, ErrBadRequest
	}

	length, ok := parseContentLength(raw)

	if !ok {
		return req, ErrBadRequest
	}

	if _, ok := boundaryParam(req.Headers.ContentType()); !ok {
		return req, ErrBadRequest
	}

	maxBody := r.cfg.MaxBodyBytes

	if maxBody > 0 && length > maxBody {
		return req, ErrPayloadTooLarge
	}

	chunkSize := r.cfg.ChunkSize

	if chunkSize <= 0 {
		chunkSize = 64 << 10
	}

	path := filepath.Join(r.cfg.TempDir, "clueapi-req-"+uuid.NewString())

	f, err := os.Create(path)

	if err != nil {
		return req, ErrBadRequest
	}

	defer f.Close()

	if _, err := io.CopyN(f, br, length); err != nil {
		os.Remove(path)
		return req, classifyErr(err)
	}

	req.ParsePath = path

	return req, ErrNone
}

// boundaryParam extracts the boundary parameter from a Content-Type value.
func boundaryParam(contentType string) (string, bool) {
	parts := strings.Split(contentType, ";")

	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)

		if strings.HasPrefix(strings.ToLower(p), "boundary=") {
			v := p[len("boundary="):]
			v = strings.Trim(v, `"`)

			if v == "" {
				return "", false
			}

			return v, true
		}
	}

	return "", false
}

// BoundaryOf is the exported form of boundaryParam, used by the request
// context builder to configure the multipart parser.
func BoundaryOf(contentType string) (string, bool) {
	return boundaryParam(contentType)
}

// parseContentLength parses a raw Content-Length header value. A header
// that fails to parse as a non-negative integer is malformed, not absent
// — per spec.md §9 that's a 400, distinct from the header being missing
// entirely (which the caller treats as "no body").
func parseContentLength(raw string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)

	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}

func parseRequestLine(line string) (method, uri string, ok bool) {
	parts := strings.Fields(line)

	if len(parts) != 3 {
		return "", "", false
	}

	if !strings.HasPrefix(parts[2], "HTTP/1.") {
		return "", "", false
	}

	return parts[0], parts[1], true
}

func readLine(br *bufio.Reader, maxBytes int) (string, error) {
	line, err := br.ReadString('\n')

	if err != nil {
		return "", err
	}

	if maxBytes > 0 && len(line) > maxBytes {
		return "", errHeaderTooLarge
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func readHeaders(br *bufio.Reader, maxBytes int) (Header, int, error) {
	h := newHeader()
	total := 0

	for {
		line, err := br.ReadString('\n')

		if err != nil {
			return nil, total, err
		}

		total += len(line)

		if maxBytes > 0 && total > maxBytes {
			return nil, total, errHeaderTooLarge
		}

		trimmed := strings.TrimRight(line, "\r\n")

		if trimmed == "" {
			return h, total, nil
		}

		colon := strings.IndexByte(trimmed, ':')

		if colon < 0 {
			return nil, total, errMalformedHeader
		}

		key := strings.TrimSpace(trimmed[:colon])
		value := strings.TrimSpace(trimmed[colon+1:])

		h.set(key, value)
	}
}

var (
	errHeaderTooLarge  = errBadRequestSentinel("request header exceeds configured maximum")
	errMalformedHeader = errBadRequestSentinel("malformed header line")
)

type errBadRequestSentinel string

func (e errBadRequestSentinel) Error() string { return string(e) }

func classifyErr(err error) ErrCode {
	if err == nil {
		return ErrNone
	}

	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return ErrRequestTimeout
	}

	if err == errHeaderTooLarge {
		return ErrPayloadTooLarge
	}

	if _, ok := err.(errBadRequestSentinel); ok {
		return ErrBadRequest
	}

	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrBadRequest
	}

	return ErrBadRequest
}
