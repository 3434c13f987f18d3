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

// Package conntask runs one accepted connection end to end: arm a
// deadline, read a request, run it through the routing chain, write the
// response, and either loop for the next keep-alive request or tear the
// connection down and return its Client to the pool.
package conntask

import (
	"bufio"
	"net"
	"time"

	"github.com/cluedesc/clueapi-sub000/connpool"
	"github.com/cluedesc/clueapi-sub000/httprequest"
	"github.com/cluedesc/clueapi-sub000/httpresponse"
	"github.com/cluedesc/clueapi-sub000/logging"
	"github.com/cluedesc/clueapi-sub000/multipart"
	"github.com/cluedesc/clueapi-sub000/reqcontext"
	"github.com/cluedesc/clueapi-sub000/route"
)

// Config tunes one Runner.
type Config struct {
	KeepAliveTimeout time.Duration
	SocketTimeout    time.Duration
	Multipart        multipart.Config
}

// Runner ties the reader, the composed routing chain and the writer
// together, reused across every connection a server accepts.
type Runner struct {
	reader *httprequest.Reader
	writer *httpresponse.Writer
	core   route.HandlerFunc
	cfg    Config
	log    logging.Logger
}

// New builds a Runner. core is typically a middleware.Chain composed over
// the router's lookup-and-dispatch function.
func New(reader *httprequest.Reader, writer *httpresponse.Writer, core route.HandlerFunc, cfg Config, log logging.Logger) *Runner {
	if log == nil {
		log = logging.Discard()
	}

	return &Runner{
		reader: reader,
		writer: writer,
		core:   core,
		cfg:    cfg,
		log:    log,
	}
}

// isRunning reports whether the caller-supplied predicate still allows new
// iterations of the keep-alive loop; Run stops as soon as it returns false.
type isRunning func() bool

// Run drives c.Conn until the peer closes it, a protocol error occurs, or
// running reports false. It always returns c to pool once done, and the
// caller must not touch c afterward.
func Run(c *connpool.Client, pool *connpool.Pool, r *Runner, running isRunning) {
	defer pool.Release(c)

	br := bufio.NewReader(c.Conn)
	bw := bufio.NewWriter(c.Conn)

	for running() {
		deadline := r.cfg.KeepAliveTimeout
		if deadline <= 0 {
			deadline = r.cfg.SocketTimeout
		}

		if deadline > 0 {
			_ = c.Conn.SetDeadline(time.Now().Add(deadline))
		}

		req, code := r.reader.Read(br, c.Conn)

		if code != httprequest.ErrNone {
			writeProtocolError(r.writer, bw, code)
			return
		}

		ctx := reqcontext.Build(req, map[string]string{}, r.cfg.Multipart, r.log)

		resp := r.core(ctx)
		ctx.Close()

		shouldClose, werr := r.writer.Write(bw, resp, req.KeepAlive())
		if werr != nil {
			r.log.Error("conntask: write failed").Error(werr).Log()
			return
		}

		c.Buffer = c.Buffer[:0]

		if shouldClose || !req.KeepAlive() {
			return
		}
	}
}

func writeProtocolError(w *httpresponse.Writer, bw *bufio.Writer, code httprequest.ErrCode) {
	status := int(code)
	if code == httprequest.ErrUpgradeRejected {
		status = 400
	}

	resp := httpresponse.New().WithStatus(status)

	_, _ = w.Write(bw, resp, false)
}

// IsTimeout reports whether err is a network-level deadline expiry. Run
// does not call it; the request reader classifies timeouts itself.
func IsTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}
