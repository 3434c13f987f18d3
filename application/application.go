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

// Package application is the top-level controller: it owns the I/O pool,
// the connection pool, the acceptor set and the composed routing chain,
// and drives them through a {stopped, starting, running, stopping}
// lifecycle triggered by explicit calls or by OS signals.
package application

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/cluedesc/clueapi-sub000/accept"
	"github.com/cluedesc/clueapi-sub000/config"
	"github.com/cluedesc/clueapi-sub000/connpool"
	"github.com/cluedesc/clueapi-sub000/conntask"
	liberr "github.com/cluedesc/clueapi-sub000/errors"
	"github.com/cluedesc/clueapi-sub000/httprequest"
	"github.com/cluedesc/clueapi-sub000/httpresponse"
	"github.com/cluedesc/clueapi-sub000/iopool"
	"github.com/cluedesc/clueapi-sub000/logging"
	"github.com/cluedesc/clueapi-sub000/metrics"
	"github.com/cluedesc/clueapi-sub000/middleware"
	"github.com/cluedesc/clueapi-sub000/reqcontext"
	"github.com/cluedesc/clueapi-sub000/route"
	"github.com/cluedesc/clueapi-sub000/router"
)

// Application is the embeddable server. Build one with New, register
// routes on its Router before calling Start, and Stop it (or send
// SIGINT/SIGTERM/SIGQUIT) to shut it down.
type Application struct {
	cfg    config.Config
	log    logging.Logger
	Router *router.Tree
	Chain  middleware.Chain
	Metrics *metrics.Metrics

	state    stateBox
	io       *iopool.Pool
	pool     *connpool.Pool
	acceptor *accept.Set

	tempDir     string
	ownsTempDir bool
	activeConns atomic.Int64
	cancel      context.CancelFunc
	stopSignal  chan os.Signal
	stopOnce    sync.Once
	doneCh      chan struct{}
}

// New builds an unstarted Application. cfg is sanitized before use: an
// empty or "localhost" host becomes "127.0.0.1", and a zero or
// unparseable port becomes "8080", matching the defaults the controller
// falls back to rather than refusing to start over a cosmetic config slip.
func New(cfg config.Config, log logging.Logger) *Application {
	if log == nil {
		log = logging.Discard()
	}

	cfg.Server.HostPort = sanitizeHostPort(cfg.Server.HostPort)

	return &Application{
		cfg:     cfg,
		log:     log,
		Router:  router.New(),
		Metrics: metrics.New(cfg.Server.Name),
		doneCh:  make(chan struct{}),
	}
}

func sanitizeHostPort(hp string) string {
	host, port, err := net.SplitHostPort(hp)
	if err != nil {
		return "127.0.0.1:8080"
	}

	if host == "" || host == "localhost" {
		host = "127.0.0.1"
	}

	if n, perr := strconv.Atoi(port); perr != nil || n <= 0 || n > 65535 {
		port = "8080"
	}

	return net.JoinHostPort(host, port)
}

// IsRunning reports whether the application is in the running state.
func (a *Application) IsRunning() bool {
	return a.state.load() == StateRunning
}

// State returns the application's current lifecycle state.
func (a *Application) State() State {
	return a.state.load()
}

// Addr returns the bound acceptor address, useful when the configured
// port was 0 and the kernel picked one. Empty before Start completes.
func (a *Application) Addr() string {
	if a.acceptor == nil {
		return ""
	}

	return a.acceptor.Addr()
}

// Start sanitizes the temp directory, builds the I/O pool, the connection
// pool and the acceptor set, composes the middleware chain over the
// router, and begins accepting connections. It installs a signal watcher
// on the pool's default worker so SIGINT/SIGTERM/SIGQUIT trigger the same
// shutdown path as an explicit Stop.
func (a *Application) Start(ctx context.Context) liberr.Error {
	if !a.state.cas(StateStopped, StateStarting) {
		return ErrAlreadyRunning.Error(nil)
	}

	if err := a.ensureTempDir(); err != nil {
		a.state.store(StateStopped)
		return err
	}

	a.io = iopool.New(a.cfg.Server.Workers, 256, a.cfg.Server.PinWorkers)
	a.io.Start()

	a.pool = connpool.New(a.cfg.Server.MaxConnections, a.cfg.HTTP.MaxHeaderBytes)
	a.Metrics.PoolSize.Set(float64(a.pool.Size()))

	reader := httprequest.New(httprequest.Config{
		MaxHeaderBytes: a.cfg.HTTP.MaxHeaderBytes,
		MaxBodyBytes:   a.cfg.HTTP.MaxBodyBytes,
		ChunkSize:      64 << 10,
		TempDir:        a.tempDir,
	})

	writer := httpresponse.New(httpresponse.Config{
		KeepAliveTimeoutSeconds: int(a.cfg.HTTP.KeepAliveTimeout.Seconds()),
	})

	core := route.CoreFunc(a.dispatch)
	runner := conntask.New(reader, writer, a.Chain.Compose(core), conntask.Config{
		KeepAliveTimeout: a.cfg.HTTP.KeepAliveTimeout,
		SocketTimeout:    a.cfg.HTTP.ReadHeaderTimeout,
		Multipart:        a.cfg.Multipart,
	}, a.log)

	acceptSet, aerr := accept.New(a.cfg.Server.HostPort, a.cfg.Socket, a.cfg.Server.Workers, a.pool, a.io, a.log)
	if aerr != nil {
		a.state.store(StateStopped)
		return ErrListen.Error(aerr)
	}

	a.acceptor = acceptSet

	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	go acceptSet.Serve(runCtx, func(c *connpool.Client) {
		a.activeConns.Add(1)
		defer a.activeConns.Add(-1)

		conntask.Run(c, a.pool, runner, a.IsRunning)
	})

	a.installSignalWatcher()

	a.state.store(StateRunning)

	return nil
}

// dispatch looks the request up in the router, binds the captured
// parameters onto ctx, and invokes the matched handler; an unmatched
// route yields a plain 404.
func (a *Application) dispatch(ctx *reqcontext.Context) *httpresponse.Response {
	h, params, err := a.Router.Lookup(ctx.Request.Method, ctx.Request.Path)
	if err != nil {
		return httpresponse.Text(http.StatusNotFound, "not found")
	}

	ctx.Params = params

	resp := h(ctx)

	a.Metrics.ObserveRequest(ctx.Request.Path, int(resp.Status))

	return resp
}

func (a *Application) installSignalWatcher() {
	a.stopSignal = make(chan os.Signal, 1)
	signal.Notify(a.stopSignal, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	iopool.Submit(a.io.Default(), func() {
		select {
		case <-a.stopSignal:
			// Stop tears down the pool this very job runs on, so it must
			// not run as this job: a detached goroutine avoids the
			// self-join deadlock that would otherwise result.
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
				defer cancel()

				_ = a.Stop(ctx)
			}()
		case <-a.doneCh:
		}
	})
}

// Stop transitions the application to stopping, cancels the acceptor,
// waits for active connections to drain (polling every 25ms) up to
// ctx's deadline or the configured shutdown timeout, then tears down the
// pool and the temp directory. A call made when the application is not
// starting or running does nothing and returns ErrNotRunning.
func (a *Application) Stop(ctx context.Context) liberr.Error {
	cur := a.state.load()
	if cur != StateRunning && cur != StateStarting {
		return ErrNotRunning.Error(nil)
	}

	a.state.store(StateStopping)

	var retErr liberr.Error

	a.stopOnce.Do(func() {
		if a.cancel != nil {
			a.cancel()
		}

		signal.Stop(a.stopSignal)

		deadline := time.Now().Add(a.cfg.Server.ShutdownTimeout)
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}

		for a.activeConns.Load() > 0 && time.Now().Before(deadline) {
			time.Sleep(25 * time.Millisecond)
		}

		if a.pool != nil {
			a.pool.Close()
		}

		a.removeTempDir()

		a.state.store(StateStopped)

		// Unblock the signal watcher (parked on doneCh) before stopping the
		// pool it runs on, or Stop would wait forever for that job to exit.
		close(a.doneCh)

		if a.io != nil {
			a.io.Stop()
		}
	})

	return retErr
}

// Wait blocks until the application has fully stopped.
func (a *Application) Wait() {
	<-a.doneCh
}

func (a *Application) ensureTempDir() liberr.Error {
	if a.cfg.Server.TempDir != "" {
		a.tempDir = a.cfg.Server.TempDir
		return nil
	}

	dir, err := os.MkdirTemp("", "clueapi-*")
	if err != nil {
		return ErrListen.Error(err)
	}

	a.tempDir = dir
	a.ownsTempDir = true

	return nil
}

func (a *Application) removeTempDir() {
	if !a.ownsTempDir || a.tempDir == "" {
		return
	}

	if err := os.RemoveAll(a.tempDir); err != nil {
		a.log.Warn("application: failed to remove temp directory").Field("dir", a.tempDir).Error(err).Log()
	}
}
