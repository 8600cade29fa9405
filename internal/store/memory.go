// Package store keeps the current converted-site snapshot served by the HTTP
// API. The pipeline loads into it alongside the Kafka sink.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/palegrove/heritage-map-etl/internal/domain"
	"github.com/palegrove/heritage-map-etl/internal/observability"
)

// Memory is a thread-safe in-memory site store with idempotent upserts keyed
// by the deterministic site ID. It implements pipeline.BatchLoader.
type Memory struct {
	mu      sync.RWMutex
	sites   map[string]domain.Site
	metrics *observability.Metrics
}

// NewMemory creates an empty store. Category gauges are refreshed on every load.
func NewMemory(metrics *observability.Metrics) *Memory {
	return &Memory{
		sites:   make(map[string]domain.Site),
		metrics: metrics,
	}
}

// LoadBatch upserts a batch of sites. Replaying the same records overwrites
// in place; the snapshot never grows from duplicates.
func (m *Memory) LoadBatch(_ context.Context, sites []domain.Site) error {
	m.mu.Lock()
	for _, s := range sites {
		m.sites[s.ID] = s
	}
	m.mu.Unlock()

	m.refreshGauges()
	return nil
}

// Snapshot returns all stored sites ordered by name, ID as tiebreaker.
func (m *Memory) Snapshot() []domain.Site {
	m.mu.RLock()
	out := make([]domain.Site, 0, len(m.sites))
	for _, s := range m.sites {
		out = append(out, s)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Stats returns the number of stored sites per category key, plus the total.
func (m *Memory) Stats() (map[string]int, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int)
	for _, s := range m.sites {
		counts[s.CategoryKey]++
	}
	return counts, len(m.sites)
}

// refreshGauges republishes the per-category gauge, including zeroes for
// categories that lost their last site.
func (m *Memory) refreshGauges() {
	counts, _ := m.Stats()
	for _, key := range domain.Categories() {
		m.metrics.SitesByCategory.WithLabelValues(key).Set(float64(counts[key]))
	}
}
