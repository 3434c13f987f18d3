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

import (
	"bytes"
	"io"
)

// window is the buffer both the in-memory and file-backed parsers scan
// over. refill appends more bytes when the scanner runs off the end of
// what's currently buffered; for the in-memory parser refill always
// reports io.EOF since the whole body is already present.
type window struct {
	buf    []byte
	off    int
	refill func([]byte) ([]byte, error)
	eof    bool
}

func newWindow(initial []byte, refill func([]byte) ([]byte, error)) *window {
	return &window{buf: initial, refill: refill}
}

// avail returns the unconsumed portion of the buffer.
func (w *window) avail() []byte {
	return w.buf[w.off:]
}

// consume advances past n already-scanned bytes, compacting the buffer
// once the consumed prefix grows large to bound memory use on a long scan.
func (w *window) consume(n int) {
	w.off += n

	if w.off > 0 && w.off == len(w.buf) {
		w.buf = w.buf[:0]
		w.off = 0
	} else if w.off > 1<<20 {
		w.buf = append(w.buf[:0], w.buf[w.off:]...)
		w.off = 0
	}
}

// grow pulls in more bytes from refill. Returns io.EOF once the underlying
// source is exhausted and nothing new was appended.
func (w *window) grow() error {
	if w.eof {
		return io.EOF
	}

	more, err := w.refill(w.buf)

	if len(more) > 0 {
		w.buf = more
	}

	if err != nil {
		w.eof = true

		if len(more) == 0 {
			return err
		}
	}

	return nil
}

// ensure guarantees at least n bytes are available past the current
// offset, growing the buffer as needed. Returns io.EOF if the source ran
// out before n bytes became available.
func (w *window) ensure(n int) error {
	for len(w.avail()) < n {
		if err := w.grow(); err != nil {
			return err
		}
	}

	return nil
}

// indexMarker scans for sep within the available buffer, growing from the
// source as needed, up to maxScan bytes of total scan budget. Returns the
// offset of sep relative to the current window, or -1 with io.EOF if sep
// was not found before the source was exhausted, or an error if maxScan
// was exceeded first.
func (w *window) indexMarker(sep []byte, maxScan int) (int, error) {
	for {
		if idx := bytes.Index(w.avail(), sep); idx >= 0 {
			return idx, nil
		}

		if len(w.avail()) >= maxScan {
			return -1, errScanBudgetExceeded
		}

		if err := w.grow(); err != nil {
			return -1, err
		}
	}
}

var errScanBudgetExceeded = io.ErrShortBuffer
