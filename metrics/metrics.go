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

// Package metrics exposes the server's pool and acceptor counters to
// Prometheus, behind its own registry so embedding code can mount (or
// ignore) the /metrics responder without colliding with its own.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the fixed set of gauges/counters this tree reports: pool
// occupancy, live connection count, and lifetime accept/reject totals.
type Metrics struct {
	registry *prometheus.Registry

	PoolSize     prometheus.Gauge
	PoolInUse    prometheus.Gauge
	ActiveConns  prometheus.Gauge
	Accepted     prometheus.Counter
	Rejected     prometheus.Counter
	RequestsTotal *prometheus.CounterVec
}

// New builds a Metrics bound to its own registry, labeled with server.
func New(server string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		PoolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "clueapi",
			Name:        "conn_pool_size",
			Help:        "Configured capacity of the connection pool.",
			ConstLabels: prometheus.Labels{"server": server},
		}),
		PoolInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "clueapi",
			Name:        "conn_pool_in_use",
			Help:        "Clients currently checked out of the connection pool.",
			ConstLabels: prometheus.Labels{"server": server},
		}),
		ActiveConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "clueapi",
			Name:        "active_connections",
			Help:        "TCP connections currently being serviced.",
			ConstLabels: prometheus.Labels{"server": server},
		}),
		Accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "clueapi",
			Name:        "accepted_connections_total",
			Help:        "Connections accepted since startup.",
			ConstLabels: prometheus.Labels{"server": server},
		}),
		Rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "clueapi",
			Name:        "rejected_connections_total",
			Help:        "Connections dropped because the pool was exhausted.",
			ConstLabels: prometheus.Labels{"server": server},
		}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "clueapi",
			Name:        "requests_total",
			Help:        "Requests handled, labeled by matched route and status class.",
			ConstLabels: prometheus.Labels{"server": server},
		}, []string{"route", "status_class"}),
	}

	reg.MustRegister(m.PoolSize, m.PoolInUse, m.ActiveConns, m.Accepted, m.Rejected, m.RequestsTotal)

	return m
}

// Handler returns an http.Handler that serves this registry. The
// application controller does not mount it; embedding code can.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed request's route and status class
// ("2xx", "4xx", ...).
func (m *Metrics) ObserveRequest(routePattern string, status int) {
	class := "other"

	switch {
	case status >= 200 && status < 300:
		class = "2xx"
	case status >= 300 && status < 400:
		class = "3xx"
	case status >= 400 && status < 500:
		class = "4xx"
	case status >= 500:
		class = "5xx"
	}

	m.RequestsTotal.WithLabelValues(routePattern, class).Inc()
}
