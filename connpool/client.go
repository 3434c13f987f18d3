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

// Package connpool is a bounded pool of reusable connection objects: each
// carries a scratch read buffer and the in-flight request/response state
// for whichever socket currently owns it, so servicing a connection never
// allocates that scratch space more than once.
package connpool

import (
	"net"
	"sync/atomic"
	"time"
)

// State is a Client's position in the idle/active/cleanup lifecycle.
type State uint32

const (
	Idle State = iota
	Active
	Cleanup
)

// Client is one reusable connection object. A Client in state Idle always
// has a nil Conn and an empty Buffer; Acquire is the only thing that may
// move it to Active, and Release is the only thing that may move it back.
type Client struct {
	state atomic.Uint32

	Conn   net.Conn
	Buffer []byte

	Deadline time.Time

	ShouldClose bool

	bufCapacity int
}

func newClient(bufCapacity int) *Client {
	c := &Client{bufCapacity: bufCapacity}
	c.Buffer = make([]byte, 0, bufCapacity)
	c.state.Store(uint32(Idle))

	return c
}

// State returns the client's current lifecycle state.
func (c *Client) State() State {
	return State(c.state.Load())
}

// bind attaches conn to this (already Active) client.
func (c *Client) bind(conn net.Conn) {
	c.Conn = conn
}

// reset clears per-connection scratch, restoring the invariant that an
// Idle client owns no socket and holds no buffered bytes.
func (c *Client) reset() {
	if c.Conn != nil {
		_ = c.Conn.Close()
		c.Conn = nil
	}

	if cap(c.Buffer) != c.bufCapacity {
		c.Buffer = make([]byte, 0, c.bufCapacity)
	} else {
		c.Buffer = c.Buffer[:0]
	}

	c.Deadline = time.Time{}
	c.ShouldClose = false
}
