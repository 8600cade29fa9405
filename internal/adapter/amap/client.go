// Package amap implements reverse geocoding against the AMap (高德) regeo API.
// AMap expects GCJ-02 coordinates, which is the datum converted sites are
// displayed in, so Display coordinates go on the wire unchanged.
package amap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/palegrove/heritage-map-etl/internal/domain"
	"github.com/palegrove/heritage-map-etl/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// Client implements domain.Geocoder using the AMap regeo endpoint.
type Client struct {
	key        string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an AMap reverse-geocoding client.
func NewClient(key string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		key: key,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://restapi.amap.com/v3/geocode/regeo",
		metrics: metrics,
		logger:  logger,
	}
}

// ReverseGeocode converts GCJ-02 coordinates to an address.
func (c *Client) ReverseGeocode(ctx context.Context, lng, lat float64) (domain.GeocodingResult, error) {
	params := url.Values{
		"key": {c.key},
		// AMap uses lng,lat order.
		"location":   {fmt.Sprintf("%.6f,%.6f", lng, lat)},
		"extensions": {"base"},
	}

	start := time.Now()
	result, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())
	c.metrics.GeocodeRequests.With(prometheus.Labels{"outcome": outcomeLabel(result, err)}).Inc()
	return result, err
}

func outcomeLabel(result domain.GeocodingResult, err error) string {
	switch {
	case err != nil:
		return "error"
	case result.FormattedAddress == "":
		return "empty"
	default:
		return "success"
	}
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (domain.GeocodingResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("regeo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.GeocodingResult{}, fmt.Errorf("amap API error: status %d: %s", resp.StatusCode, body)
	}

	var amapResp response
	if err := json.NewDecoder(resp.Body).Decode(&amapResp); err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("decode response: %w", err)
	}

	// AMap signals failure in the body with status "0" and an infocode.
	if amapResp.Status != "1" {
		return domain.GeocodingResult{}, fmt.Errorf("amap API error: %s (infocode %s)", amapResp.Info, amapResp.Infocode)
	}

	r := amapResp.Regeocode
	return domain.GeocodingResult{
		FormattedAddress: string(r.FormattedAddress),
		Province:         string(r.AddressComponent.Province),
		City:             string(r.AddressComponent.City),
		District:         string(r.AddressComponent.District),
	}, nil
}

// AMap API response types.

type response struct {
	Status    string    `json:"status"`
	Info      string    `json:"info"`
	Infocode  string    `json:"infocode"`
	Regeocode regeocode `json:"regeocode"`
}

type regeocode struct {
	FormattedAddress flexString       `json:"formatted_address"`
	AddressComponent addressComponent `json:"addressComponent"`
}

type addressComponent struct {
	Province flexString `json:"province"`
	City     flexString `json:"city"`
	District flexString `json:"district"`
}

// flexString absorbs AMap's habit of encoding absent values as an empty JSON
// array instead of a string (city for municipalities, formatted_address when
// nothing matched).
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = flexString(s)
	return nil
}
