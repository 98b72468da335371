// Package metrics counts requests per endpoint. Counters are process-local
// by default; a Redis-backed recorder is available when several mock
// instances should share one view.
package metrics

import (
	"context"
	"sync"
	"time"
)

// EndpointStats are the counters kept per endpoint.
type EndpointStats struct {
	Requests       int64 `json:"requests" redis:"requests"`
	Errors         int64 `json:"errors" redis:"errors"`
	TotalLatencyMs int64 `json:"total_latency_ms" redis:"total_latency_ms"`
}

// Recorder records one observation per handled request and exposes a
// snapshot for the /metrics endpoint.
type Recorder interface {
	Record(ctx context.Context, endpoint string, status int, latency time.Duration) error
	Snapshot(ctx context.Context) (map[string]EndpointStats, error)
}

// MemoryRecorder keeps counters in a mutex-guarded map.
type MemoryRecorder struct {
	mu    sync.Mutex
	stats map[string]EndpointStats
}

// NewMemoryRecorder builds an empty in-process recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{stats: make(map[string]EndpointStats)}
}

func (m *MemoryRecorder) Record(_ context.Context, endpoint string, status int, latency time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats[endpoint]
	s.Requests++
	if status >= 400 {
		s.Errors++
	}
	s.TotalLatencyMs += latency.Milliseconds()
	m.stats[endpoint] = s
	return nil
}

func (m *MemoryRecorder) Snapshot(_ context.Context) (map[string]EndpointStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]EndpointStats, len(m.stats))
	for k, v := range m.stats {
		out[k] = v
	}
	return out, nil
}

// NopRecorder discards everything. Used when ENABLE_METRICS is off.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, string, int, time.Duration) error { return nil }

func (NopRecorder) Snapshot(context.Context) (map[string]EndpointStats, error) {
	return map[string]EndpointStats{}, nil
}
