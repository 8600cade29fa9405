package amap

import (
	"context"
	"testing"

	"github.com/palegrove/heritage-map-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingGeocoder struct {
	calls  int
	result domain.GeocodingResult
}

func (m *countingGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (domain.GeocodingResult, error) {
	m.calls++
	return m.result, nil
}

// --- CachedGeocoder tests ---

func TestCachedGeocoder_CacheHit(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{FormattedAddress: "浙江省杭州市临平区", Province: "浙江省"},
	}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	r1, err := cached.ReverseGeocode(context.Background(), 120.2892, 30.4168)
	require.NoError(t, err)
	assert.Equal(t, "浙江省", r1.Province)

	r2, err := cached.ReverseGeocode(context.Background(), 120.2892, 30.4168)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)

	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedGeocoder_DifferentCoordinatesMiss(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{FormattedAddress: "某地"},
	}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, _ = cached.ReverseGeocode(context.Background(), 120.2892, 30.4168)
	_, _ = cached.ReverseGeocode(context.Background(), 116.4103, 39.9163)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_EmptyResultNotCached(t *testing.T) {
	inner := &countingGeocoder{}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, _ = cached.ReverseGeocode(context.Background(), 120.2892, 30.4168)
	_, _ = cached.ReverseGeocode(context.Background(), 120.2892, 30.4168)

	assert.Equal(t, 2, inner.calls, "empty results should be retried")
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", domain.GeocodingResult{District: "A"})
	c.put("b", domain.GeocodingResult{District: "B"})

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A", result.District)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.GeocodingResult{District: "A"})
	c.put("b", domain.GeocodingResult{District: "B"})
	c.put("c", domain.GeocodingResult{District: "C"}) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	result, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, "B", result.District)

	result, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, "C", result.District)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.GeocodingResult{District: "A"})
	c.put("b", domain.GeocodingResult{District: "B"})

	// Access "a" to promote it
	c.get("a")

	// Insert "c" — should evict "b" (LRU), not "a"
	c.put("c", domain.GeocodingResult{District: "C"})

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.GeocodingResult{District: "A1"})
	c.put("a", domain.GeocodingResult{District: "A2"})

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A2", result.District)
}
