package domain

import "context"

// GeocodingResult contains address data returned by a reverse-geocoding
// provider for a display-datum coordinate pair.
type GeocodingResult struct {
	FormattedAddress string
	Province         string
	City             string
	District         string
}

// Geocoder resolves display-datum coordinates to address details.
type Geocoder interface {
	// ReverseGeocode converts a GCJ-02 (longitude, latitude) pair to address
	// details. An all-empty result means the provider found nothing.
	ReverseGeocode(ctx context.Context, lng, lat float64) (GeocodingResult, error)
}
