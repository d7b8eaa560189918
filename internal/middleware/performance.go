// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/pizzarec/internal/logging"
)

// DefaultSlowRequestThreshold is the duration above which requests are logged.
const DefaultSlowRequestThreshold = time.Second

// RouteLatency summarizes recent latencies of one route.
type RouteLatency struct {
	Route        string  `json:"route"`
	RequestCount int     `json:"request_count"`
	ErrorCount   int     `json:"error_count"`
	AvgMS        float64 `json:"avg_ms"`
	P50MS        float64 `json:"p50_ms"`
	P95MS        float64 `json:"p95_ms"`
	P99MS        float64 `json:"p99_ms"`
	MaxMS        float64 `json:"max_ms"`
}

type sample struct {
	route    string
	duration time.Duration
	failed   bool
}

// LatencyTracker keeps the most recent request samples in a ring buffer.
type LatencyTracker struct {
	mu      sync.RWMutex
	samples []sample
	next    int
	full    bool
	slow    time.Duration
}

// NewLatencyTracker creates a tracker keeping the last capacity samples.
func NewLatencyTracker(capacity int, slowThreshold time.Duration) *LatencyTracker {
	if capacity < 1 {
		capacity = 1
	}
	return &LatencyTracker{
		samples: make([]sample, capacity),
		slow:    slowThreshold,
	}
}

// Record adds one sample. Status codes of 500 and above count as errors.
func (lt *LatencyTracker) Record(route string, duration time.Duration, statusCode int) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	lt.samples[lt.next] = sample{route: route, duration: duration, failed: statusCode >= 500}
	lt.next++
	if lt.next == len(lt.samples) {
		lt.next = 0
		lt.full = true
	}
}

// Stats returns per-route summaries ordered by request count, then route.
func (lt *LatencyTracker) Stats() []RouteLatency {
	lt.mu.RLock()
	n := lt.next
	if lt.full {
		n = len(lt.samples)
	}
	byRoute := make(map[string][]sample)
	for _, s := range lt.samples[:n] {
		byRoute[s.route] = append(byRoute[s.route], s)
	}
	lt.mu.RUnlock()

	stats := make([]RouteLatency, 0, len(byRoute))
	for route, samples := range byRoute {
		durations := make([]float64, len(samples))
		var sum float64
		errs := 0
		for i, s := range samples {
			ms := float64(s.duration) / float64(time.Millisecond)
			durations[i] = ms
			sum += ms
			if s.failed {
				errs++
			}
		}
		sort.Float64s(durations)

		stats = append(stats, RouteLatency{
			Route:        route,
			RequestCount: len(samples),
			ErrorCount:   errs,
			AvgMS:        sum / float64(len(samples)),
			P50MS:        percentile(durations, 0.50),
			P95MS:        percentile(durations, 0.95),
			P99MS:        percentile(durations, 0.99),
			MaxMS:        durations[len(durations)-1],
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].Route < stats[j].Route
	})
	return stats
}

// Middleware records the latency of every request and logs slow ones.
func (lt *LatencyTracker) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		route := RoutePattern(r)
		lt.Record(route, duration, rec.statusCode)

		if lt.slow > 0 && duration > lt.slow {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("route", route).
				Int64("duration_ms", duration.Milliseconds()).
				Msg("Slow request detected")
		}
	})
}

// percentile returns the nearest-rank percentile of sorted values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)-1) * p)
	return sorted[index]
}
