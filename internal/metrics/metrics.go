package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// NormalizeStats accumulates schedule normalization outcomes for one payload shape.
type NormalizeStats struct {
	Runs    int
	Rows    int
	Skipped int
	Dropped int
}

// Recorder captures in-memory metrics about provider calls and model activity and mirrors
// them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu          sync.Mutex
	stats       map[string]*providerStats
	normalize   map[string]*NormalizeStats
	predictions map[string]int
	cacheHits   int
	cacheMisses int
	snapshots   int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:       make(map[string]*providerStats),
		normalize:   make(map[string]*NormalizeStats),
		predictions: make(map[string]int),
		otel:        otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	r.otel.recordProviderAttempt(provider, duration, err)
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	r.otel.recordRateLimit(provider, retryAfter)
}

// RecordNormalize tracks one normalization run for a payload shape.
func (r *Recorder) RecordNormalize(shape string, rows, skipped, dropped int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.normalize[shape]
	if !ok {
		stats = &NormalizeStats{}
		r.normalize[shape] = stats
	}
	stats.Runs++
	stats.Rows += rows
	stats.Skipped += skipped
	stats.Dropped += dropped
	r.mu.Unlock()

	r.otel.recordNormalize(shape, rows, skipped, dropped)
}

// RecordPrediction counts a probability estimate by mode.
func (r *Recorder) RecordPrediction(mode string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.predictions[mode]++
	r.mu.Unlock()

	r.otel.recordPrediction(mode)
}

// RecordCacheLookup counts prior cache hits and misses.
func (r *Recorder) RecordCacheLookup(hit bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if hit {
		r.cacheHits++
	} else {
		r.cacheMisses++
	}
	r.mu.Unlock()

	r.otel.recordCacheLookup(hit)
}

// RecordSnapshotWrite counts snapshot files written.
func (r *Recorder) RecordSnapshotWrite(files int, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.snapshots += files
	r.mu.Unlock()

	r.otel.recordSnapshotWrite(files, err)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Normalize returns accumulated normalization stats for a shape.
func (r *Recorder) Normalize(shape string) NormalizeStats {
	if r == nil {
		return NormalizeStats{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.normalize[shape]; ok {
		return *stats
	}
	return NormalizeStats{}
}

// Predictions returns how many estimates were produced in mode.
func (r *Recorder) Predictions(mode string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.predictions[mode]
}

// CacheLookups returns prior cache hits and misses.
func (r *Recorder) CacheLookups() (hits, misses int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cacheHits, r.cacheMisses
}

// SnapshotWrites returns the number of snapshot files written.
func (r *Recorder) SnapshotWrites() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshots
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
