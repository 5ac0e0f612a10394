/*
 * metrics.go, part of goStoich.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	requests     *prometheus.HistogramVec
	rateLimited  prometheus.Counter
	clients      prometheus.GaugeFunc
}

// newMetrics registers the server collectors in their own registry, so that
// several servers (tests) can live in one process.
func newMetrics(limiter *clientLimiter) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gostoich",
			Name:      "calculations_total",
			Help:      "Calculations performed, by operation and outcome (ok, error, rejected).",
		}, []string{"operation", "outcome"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gostoich",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status code.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"route", "code"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gostoich",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter.",
		}),
		clients: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "gostoich",
			Name:      "rate_limited_clients",
			Help:      "Clients currently tracked by the rate limiter.",
		}, func() float64 { return float64(limiter.Len()) }),
	}
	m.registry.MustRegister(
		m.calculations,
		m.requests,
		m.rateLimited,
		m.clients,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *metrics) calculation(op, outcome string) {
	m.calculations.WithLabelValues(op, outcome).Inc()
}

func (m *metrics) observe(route string, code int, since time.Time) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Observe(time.Since(since).Seconds())
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
