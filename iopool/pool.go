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

// Package iopool owns a fixed set of worker goroutines that every
// connection's work is dispatched onto, plus one reserved "default"
// worker for housekeeping tasks like the signal watcher.
package iopool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// worker drains a buffered queue of submitted work, one at a time, on its
// own goroutine — a connection, once assigned here, never migrates.
type worker struct {
	queue chan func()
	done  chan struct{}
	cpu   int
	pin   bool
}

func newWorker(queueSize int) *worker {
	return &worker{
		queue: make(chan func(), queueSize),
		done:  make(chan struct{}),
		cpu:   -1,
	}
}

func (w *worker) run() {
	defer close(w.done)

	if w.pin && w.cpu >= 0 {
		pinToCPU(w.cpu)
	}

	for fn := range w.queue {
		fn()
	}
}

func (w *worker) submit(fn func()) {
	w.queue <- fn
}

// Pool is N worker loops plus one reserved default loop, distributing
// submitted work round-robin across the N.
type Pool struct {
	workers []*worker
	def     *worker
	next    atomic.Uint64

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	stopped   atomic.Bool
}

// New builds a Pool with n worker loops (plus the reserved default loop)
// and a per-worker queue depth of queueSize. When pinCPU is true, each
// worker goroutine locks to its own OS thread and is pinned to CPU i
// mod runtime.NumCPU (a no-op outside Linux).
func New(n int, queueSize int, pinCPU bool) *Pool {
	if n <= 0 {
		n = 1
	}

	if queueSize <= 0 {
		queueSize = 256
	}

	p := &Pool{
		workers: make([]*worker, n),
		def:     newWorker(queueSize),
	}

	for i := range p.workers {
		p.workers[i] = newWorker(queueSize)
		p.workers[i].cpu = i % runtime.NumCPU()
		p.workers[i].pin = pinCPU
	}

	return p
}

// Start launches every worker goroutine. Calling Start twice is a no-op.
func (p *Pool) Start() {
	p.startOnce.Do(func() {
		p.started = true

		go p.def.run()

		for _, w := range p.workers {
			go w.run()
		}
	})
}

// Next returns the next worker in round-robin order.
func (p *Pool) Next() Submitter {
	n := p.next.Add(1)
	return p.workers[int(n-1)%len(p.workers)]
}

// Default returns the reserved worker, used for process-wide housekeeping
// (the signal watcher) rather than per-connection work.
func (p *Pool) Default() Submitter {
	return p.def
}

// Size reports how many round-robin workers this pool distributes across,
// not counting the reserved default worker.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Submitter is the narrow interface callers dispatch work through; it
// hides whether they were handed a round-robin worker or the default one.
type Submitter interface {
	submit(fn func())
}

// Submit enqueues fn on s. It never blocks the caller beyond the queue
// being full; a full queue applies natural backpressure.
func Submit(s Submitter, fn func()) {
	s.submit(fn)
}

// Stop closes every worker's queue and waits for its goroutine to drain.
// Idempotent: a second call is a no-op.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.stopped.Store(true)

		close(p.def.queue)

		for _, w := range p.workers {
			close(w.queue)
		}

		<-p.def.done

		for _, w := range p.workers {
			<-w.done
		}
	})
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}
