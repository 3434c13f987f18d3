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

package connpool

import (
	"net"
	"runtime"
	"sync/atomic"

	liberr "github.com/cluedesc/clueapi-sub000/errors"
)

// Pool is a bounded set of pre-allocated Clients. It never grows past its
// initial size: once every Client is Active, Acquire fails closed rather
// than allocating another one, so memory use under load is a fixed
// function of pool size and buffer capacity, not of connection count.
type Pool struct {
	free   chan *Client
	all    []*Client
	closed atomic.Bool
}

// New builds a Pool of size Clients, each with a buffer of the given
// capacity. size is clamped to at least 1; a non-positive bufCapacity
// becomes 4 KiB.
func New(size int, bufCapacity int) *Pool {
	if size <= 0 {
		size = 1
	}

	if bufCapacity <= 0 {
		bufCapacity = 4 << 10
	}

	p := &Pool{
		free: make(chan *Client, size),
		all:  make([]*Client, size),
	}

	for i := 0; i < size; i++ {
		c := newClient(bufCapacity)
		p.all[i] = c
		p.free <- c
	}

	return p
}

// Size reports the pool's fixed capacity.
func (p *Pool) Size() int {
	return len(p.all)
}

// Acquire takes an idle Client and binds conn to it, making three attempts
// to find a free one (yielding the goroutine between attempts) before
// reporting the pool as exhausted — the caller is expected to close conn
// itself in that case.
func (p *Pool) Acquire(conn net.Conn) (*Client, liberr.Error) {
	if p.closed.Load() {
		return nil, ErrClosed.Error(nil)
	}

	for attempt := 0; attempt < 3; attempt++ {
		select {
		case c := <-p.free:
			c.state.Store(uint32(Active))
			c.bind(conn)

			return c, nil
		default:
			if attempt < 2 {
				runtime.Gosched()
			}
		}
	}

	return nil, ErrExhausted.Error(nil)
}

// Release runs c through its cleanup step and returns it to the idle set.
// Calling Release on a Client not obtained from this Pool's Acquire is
// undefined.
func (p *Pool) Release(c *Client) {
	c.state.Store(uint32(Cleanup))
	c.reset()
	c.state.Store(uint32(Idle))

	if p.closed.Load() {
		return
	}

	p.free <- c
}

// Close marks the pool closed; Clients already Active finish on their own,
// and their Release calls still reset them but no longer return them to
// the idle set, while every idle Client's socket (already nil, by
// invariant) needs no further action.
func (p *Pool) Close() {
	p.closed.Store(true)
}

// IsClosed reports whether Close has been called.
func (p *Pool) IsClosed() bool {
	return p.closed.Load()
}
