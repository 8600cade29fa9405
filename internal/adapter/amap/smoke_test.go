//go:build amap

package amap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/palegrove/heritage-map-etl/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real AMap API and require a valid AMAP_KEY env var.
// Run with: go test -tags=amap ./internal/adapter/amap/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	key := os.Getenv("AMAP_KEY")
	if key == "" {
		t.Fatal("AMAP_KEY must be set to run smoke tests")
	}
	return &Client{
		key:        key,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://restapi.amap.com/v3/geocode/regeo",
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSmoke_ReverseGeocode(t *testing.T) {
	c := smokeClient(t)

	// Forbidden City, Beijing (GCJ-02).
	result, err := c.ReverseGeocode(context.Background(), 116.403414, 39.924091)
	require.NoError(t, err)

	assert.NotEmpty(t, result.FormattedAddress)
	assert.Equal(t, "北京市", result.Province)
	assert.Equal(t, "东城区", result.District)
}

func TestSmoke_CachedGeocoder(t *testing.T) {
	c := smokeClient(t)
	cached := NewCachedGeocoder(c, 10, observability.NewMetricsForTesting())

	// First call: cache miss → real API call.
	r1, err := cached.ReverseGeocode(context.Background(), 120.155070, 30.274085)
	require.NoError(t, err)
	assert.NotEmpty(t, r1.FormattedAddress)

	// Second call: cache hit → no API call.
	r2, err := cached.ReverseGeocode(context.Background(), 120.155070, 30.274085)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
