package domain

import (
	"context"
	"log/slog"
)

// EnrichWithGeocoding fills a missing site address by reverse-geocoding the
// display coordinates. If geocoder is nil, the address is already present, or
// the lookup fails, the site is returned with AddrSource set accordingly
// (graceful degradation). The display pair is already GCJ-02, which is the
// datum the AMap regeo API expects.
func EnrichWithGeocoding(ctx context.Context, site Site, geocoder Geocoder, logger *slog.Logger) Site {
	if geocoder == nil || site.Address != "" {
		return site
	}

	result, err := geocoder.ReverseGeocode(ctx, site.Display.Lng, site.Display.Lat)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"site_id", site.ID,
			"lng", site.Display.Lng,
			"lat", site.Display.Lat,
			"error", err,
		)
		site.AddrSource = "failed"
		return site
	}

	// An empty result is not an error; the site simply stays address-less.
	if result.FormattedAddress == "" {
		return site
	}

	site.Address = result.FormattedAddress
	site.AddrSource = "regeo"
	return site
}
