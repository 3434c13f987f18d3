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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	liberr "github.com/cluedesc/clueapi-sub000/errors"
)

// Config tunes the writer's keep-alive advertisement and file/stream
// chunk size.
type Config struct {
	KeepAliveTimeoutSeconds int
	ChunkBufferSize         int
	ErrorClass              ErrorClass
}

// Writer emits a Response onto a buffered connection writer.
type Writer struct {
	cfg Config
}

// New builds a Writer bound to cfg.
func New(cfg Config) *Writer {
	if cfg.ChunkBufferSize <= 0 {
		cfg.ChunkBufferSize = 8 << 10
	}

	return &Writer{cfg: cfg}
}

// Write sends resp onto bw, returning whether the connection should close
// after this response (true unless keep-alive applies).
func (w *Writer) Write(bw *bufio.Writer, resp *Response, keepAliveRequested bool) (shouldClose bool, err liberr.Error) {
	if resp.Status == StatusUnknown {
		resp = DefaultErrorResponse(w.cfg.ErrorClass, "handler did not set a response status")
	}

	keepAlive := keepAliveRequested

	w.writeStatusLine(bw, resp.Status)
	w.writeCommonHeaders(bw, resp, keepAlive)

	switch resp.Mode {
	case ModeBuffered:
		err = w.writeBuffered(bw, resp)
	case ModeFile:
		err = w.writeStreamed(bw, resp, func(cw ChunkWriter) error {
			return streamFile(resp.FilePath, w.cfg.ChunkBufferSize, cw)
		})
	case ModeChunked:
		err = w.writeStreamed(bw, resp, resp.Stream)
	}

	if ferr := bw.Flush(); ferr != nil && err == nil {
		err = ErrWrite.Error(ferr)
	}

	return !keepAlive, err
}

func (w *Writer) writeStatusLine(bw *bufio.Writer, status Status) {
	fmt.Fprintf(bw, "HTTP/1.1 %d %s\r\n", int(status), ReasonPhrase(status))
}

func (w *Writer) writeCommonHeaders(bw *bufio.Writer, resp *Response, keepAlive bool) {
	for k, v := range resp.Headers {
		fmt.Fprintf(bw, "%s: %s\r\n", k, v)
	}

	for _, c := range resp.Cookies {
		if c.Validate() != nil {
			continue
		}

		fmt.Fprintf(bw, "Set-Cookie: %s\r\n", c.String())
	}

	if keepAlive {
		bw.WriteString("Connection: keep-alive\r\n")
		fmt.Fprintf(bw, "Keep-Alive: timeout=%d\r\n", w.cfg.KeepAliveTimeoutSeconds)
	} else {
		bw.WriteString("Connection: close\r\n")
	}

	if resp.Mode == ModeFile || resp.Mode == ModeChunked {
		bw.WriteString("Transfer-Encoding: chunked\r\n")
	}
}

func (w *Writer) writeBuffered(bw *bufio.Writer, resp *Response) liberr.Error {
	fmt.Fprintf(bw, "Content-Length: %s\r\n\r\n", strconv.Itoa(len(resp.Body)))

	if _, err := bw.Write(resp.Body); err != nil {
		return ErrWrite.Error(err)
	}

	return nil
}

func (w *Writer) writeStreamed(bw *bufio.Writer, resp *Response, fn StreamFunc) liberr.Error {
	bw.WriteString("\r\n")

	cw := &chunkWriter{bw: bw}

	if fn != nil {
		_ = fn(cw)
	}

	return cw.finish()
}

// chunkWriter implements ChunkWriter over a bufio.Writer, guaranteeing the
// terminating zero-length chunk is written exactly once no matter how the
// caller's StreamFunc exits.
type chunkWriter struct {
	bw   *bufio.Writer
	done bool
	err  error
}

func (c *chunkWriter) WriteChunk(p []byte) error {
	if c.done || len(p) == 0 {
		return c.err
	}

	if _, err := fmt.Fprintf(c.bw, "%x\r\n", len(p)); err != nil {
		c.err = err
		return err
	}

	if _, err := c.bw.Write(p); err != nil {
		c.err = err
		return err
	}

	if _, err := c.bw.WriteString("\r\n"); err != nil {
		c.err = err
		return err
	}

	return nil
}

func (c *chunkWriter) finish() liberr.Error {
	if c.done {
		return nil
	}

	c.done = true

	if _, err := c.bw.WriteString("0\r\n\r\n"); err != nil {
		return ErrWrite.Error(err)
	}

	if c.err != nil {
		return ErrWrite.Error(c.err)
	}

	return nil
}

func streamFile(path string, bufSize int, cw ChunkWriter) error {
	f, err := os.Open(path)

	if err != nil {
		return err
	}

	defer f.Close()

	buf := make([]byte, bufSize)

	for {
		n, rerr := f.Read(buf)

		if n > 0 {
			if werr := cw.WriteChunk(buf[:n]); werr != nil {
				return werr
			}
		}

		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return nil
			}

			return rerr
		}
	}
}
