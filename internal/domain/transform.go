package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/palegrove/heritage-map-etl/internal/coord"
)

// ErrNoCoordinates marks a record whose latitude or longitude text carries no
// usable value. Such records are skipped; the conversion core is never
// invoked for them.
var ErrNoCoordinates = errors.New("site record has no usable coordinates")

// ParseRawSite deserializes a RawEvent's value into a Site.
// It expects the flat JSON produced by the collector service.
func ParseRawSite(raw RawEvent) (Site, error) {
	var rec RawSiteRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return Site{}, fmt.Errorf("parse raw site: %w", err)
	}

	site, err := SiteFromRecord(rec)
	if err != nil {
		return Site{}, err
	}
	site.RawPayload = raw.Value
	return site, nil
}

// SiteFromRecord builds a Site from a collector record: coordinate text is
// normalized to decimal degrees and the remaining cells are carried over.
func SiteFromRecord(rec RawSiteRecord) (Site, error) {
	lat, okLat := ParseCoordinate(rec.Lat)
	lng, okLng := ParseCoordinate(rec.Lng)
	if !okLat || !okLng {
		return Site{}, fmt.Errorf("%w: lat=%q lng=%q", ErrNoCoordinates, rec.Lat, rec.Lng)
	}

	era := strings.TrimSpace(rec.Era)
	if era == "" {
		era = strings.TrimSpace(rec.EraBroad)
	}

	return Site{
		ID:          generateID(rec.Name, lat, lng),
		Name:        strings.TrimSpace(rec.Name),
		Source:      Geo{Lng: lng, Lat: lat},
		Address:     strings.TrimSpace(rec.Address),
		Era:         era,
		Category:    strings.TrimSpace(rec.Category),
		Description: strings.TrimSpace(rec.Description),
		SiteType:    strings.TrimSpace(rec.Type),
	}, nil
}

// generateID produces a deterministic ID from the site's key fields.
// Deterministic IDs keep downstream upserts idempotent: reprocessing the same
// raw record yields the same ID.
func generateID(name string, lat, lng float64) string {
	input := fmt.Sprintf("%s|%.6f|%.6f", name, lat, lng)
	hash := sha256.Sum256([]byte(input))
	return "site-" + hex.EncodeToString(hash[:8])
}

// EnrichSite classifies and converts a parsed site: category classification
// with legend color, datum conversion of the surveyed coordinates into the
// GCJ-02 display pair, and the processing timestamp.
func EnrichSite(site Site) Site {
	site.CategoryKey = ClassifyCategory(site.Category)
	site.Color = CategoryColor(site.CategoryKey)

	lng, lat := coord.Convert(site.Source.Lng, site.Source.Lat)
	site.Display = Geo{Lng: lng, Lat: lat}

	if site.Address != "" {
		site.AddrSource = "original"
	}
	site.ProcessedAt = clock.Now()
	return site
}

// ClassifyCategory maps free-form category text onto one of the fixed
// protection categories by substring match, in a fixed order. Unmatched or
// empty text falls into the catch-all category.
func ClassifyCategory(category string) string {
	if category == "" {
		return DefaultCategory
	}
	for _, key := range categoryOrder {
		if strings.Contains(category, key) {
			return key
		}
	}
	return DefaultCategory
}
