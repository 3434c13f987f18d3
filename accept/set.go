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

// Package accept owns the listener(s) a running server binds, including
// the optional SO_REUSEPORT fan-out across several accept loops and the
// per-socket option tuning applied to every connection it hands off.
package accept

import (
	"context"
	"net"
	"sync"

	liberr "github.com/cluedesc/clueapi-sub000/errors"
	"github.com/cluedesc/clueapi-sub000/config"
	"github.com/cluedesc/clueapi-sub000/connpool"
	"github.com/cluedesc/clueapi-sub000/iopool"
	"github.com/cluedesc/clueapi-sub000/logging"
)

// Handler is invoked once per accepted connection, already bound to a
// *connpool.Client obtained from the pool. It owns the client for the
// rest of that connection's lifetime, including returning it to the pool.
type Handler func(c *connpool.Client)

// Set is 1..N listeners bound to the same host:port (via SO_REUSEPORT) or
// exactly one listener when port-reuse isn't configured or isn't
// supported on this GOOS.
type Set struct {
	listeners []net.Listener
	pool      *connpool.Pool
	io        *iopool.Pool
	log       logging.Logger

	sock config.SocketConfig

	mu       sync.Mutex
	accepted uint64
	rejected uint64
	closing  bool
}

// ListenerCount applies spec's "1..ceil(workers/4), clamped into
// [1, max(1, workers/2)]" formula. When reusePort is false (either by
// configuration or because this GOOS has no SO_REUSEPORT), it always
// returns 1.
func ListenerCount(workers int, reusePort bool) int {
	if !reusePort || !reusePortSupported {
		return 1
	}

	if workers <= 0 {
		workers = 1
	}

	n := (workers + 3) / 4

	max := workers / 2
	if max < 1 {
		max = 1
	}

	if n < 1 {
		n = 1
	}

	if n > max {
		n = max
	}

	return n
}

// New binds Set's listeners to hostPort and returns the Set unstarted;
// call Serve to begin accepting.
func New(hostPort string, sock config.SocketConfig, workers int, pool *connpool.Pool, io *iopool.Pool, log logging.Logger) (*Set, liberr.Error) {
	if log == nil {
		log = logging.Discard()
	}

	n := ListenerCount(workers, sock.ReusePort)

	s := &Set{
		pool: pool,
		io:   io,
		log:  log,
		sock: sock,
	}

	lc := net.ListenConfig{}

	if n > 1 {
		lc.Control = controlReusePort(sock.FastOpen)
	}

	for i := 0; i < n; i++ {
		ln, err := lc.Listen(context.Background(), "tcp", hostPort)
		if err != nil {
			s.closeAll()
			return nil, ErrListen.Error(err)
		}

		s.listeners = append(s.listeners, ln)
	}

	return s, nil
}

// Addr returns the address of the first bound listener, useful for tests
// and for logging the port an ephemeral (":0") bind resolved to.
func (s *Set) Addr() string {
	if len(s.listeners) == 0 {
		return ""
	}

	return s.listeners[0].Addr().String()
}

func (s *Set) closeAll() {
	for _, ln := range s.listeners {
		_ = ln.Close()
	}
}

// Serve launches one accept loop per listener, each dispatched onto its
// own round-robin worker (never the default worker, whose single job slot
// the signal watcher holds), and blocks until ctx is cancelled.
func (s *Set) Serve(ctx context.Context, h Handler) {
	var wg sync.WaitGroup

	for _, ln := range s.listeners {
		ln := ln
		wg.Add(1)

		iopool.Submit(s.io.Next(), func() {
			defer wg.Done()
			s.acceptLoop(ctx, ln, h)
		})
	}

	<-ctx.Done()
	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()
	s.closeAll()

	wg.Wait()
}

func (s *Set) acceptLoop(ctx context.Context, ln net.Listener, h Handler) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				s.log.Warn("accept: transient timeout").Log()
				continue
			}

			s.log.Error("accept: listener closed").Error(err).Log()
			return
		}

		s.handleAccepted(conn, h)
	}
}

func (s *Set) handleAccepted(conn net.Conn, h Handler) {
	applySockOpts(conn, s.sock)

	c, aerr := s.pool.Acquire(conn)
	if aerr != nil {
		s.mu.Lock()
		s.rejected++
		s.mu.Unlock()

		s.log.Warn("accept: pool exhausted, dropping connection").Log()

		_ = conn.Close()

		return
	}

	s.mu.Lock()
	s.accepted++
	s.mu.Unlock()

	h(c)
}

// Stats reports lifetime accepted/rejected counts.
func (s *Set) Stats() (accepted, rejected uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.accepted, s.rejected
}

func applySockOpts(conn net.Conn, sock config.SocketConfig) {
	tc, ok := conn.(*net.TCPConn)
	if !ok {
		return
	}

	if sock.NoDelay {
		_ = tc.SetNoDelay(true)
	}

	if sock.ReadBufferSize > 0 {
		_ = tc.SetReadBuffer(sock.ReadBufferSize)
	}

	if sock.SendBufferSize > 0 {
		_ = tc.SetWriteBuffer(sock.SendBufferSize)
	}

	if sock.KeepAlive > 0 {
		_ = tc.SetKeepAlive(true)
		_ = tc.SetKeepAlivePeriod(sock.KeepAlive)
	} else {
		_ = tc.SetKeepAlive(false)
	}

	if sock.QuickAck {
		if raw, err := tc.SyscallConn(); err == nil {
			_ = raw.Control(func(fd uintptr) {
				quickAck(fd)
			})
		}
	}
}
