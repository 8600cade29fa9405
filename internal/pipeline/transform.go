package pipeline

import (
	"context"
	"log/slog"

	"github.com/palegrove/heritage-map-etl/internal/coord"
	"github.com/palegrove/heritage-map-etl/internal/domain"
	"github.com/palegrove/heritage-map-etl/internal/observability"
)

// SiteTransformer implements Transformer using domain transform functions
// with optional reverse-geocoding enrichment.
type SiteTransformer struct {
	geocoder domain.Geocoder
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewTransformer creates a SiteTransformer. Pass a nil geocoder to disable
// address enrichment.
func NewTransformer(geocoder domain.Geocoder, metrics *observability.Metrics, logger *slog.Logger) *SiteTransformer {
	return &SiteTransformer{
		geocoder: geocoder,
		metrics:  metrics,
		logger:   logger,
	}
}

func (t *SiteTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.Site, error) {
	site, err := domain.ParseRawSite(raw)
	if err != nil {
		return domain.Site{}, err
	}

	site = domain.EnrichSite(site)
	site = domain.EnrichWithGeocoding(ctx, site, t.geocoder, t.logger)

	// The distortion applies only inside the mainland rectangle; track the
	// pass-throughs so surveying datum mix-ups show up on a dashboard.
	if !coord.InDistortionRegion(site.Source.Lng, site.Source.Lat) {
		t.metrics.OutsideRegion.Inc()
		t.logger.Debug("site outside distortion region, coordinates passed through",
			"site_id", site.ID, "lng", site.Source.Lng, "lat", site.Source.Lat)
	}

	return site, nil
}
