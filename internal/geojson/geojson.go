// Package geojson encodes converted sites as GeoJSON for map consumers.
// Coordinates are emitted in the GCJ-02 display datum, [lng, lat] order per
// RFC 7946.
package geojson

import "github.com/palegrove/heritage-map-etl/internal/domain"

// FeatureCollection is a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a GeoJSON point feature for a single heritage site.
type Feature struct {
	Type       string     `json:"type"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Geometry is a GeoJSON point geometry.
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"` // [lng, lat], display datum
}

// Properties carries the display attributes the renderer and its popups use.
type Properties struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	Era         string `json:"era,omitempty"`
	Category    string `json:"category,omitempty"`
	CategoryKey string `json:"category_key"`
	Color       string `json:"color"`
	SiteType    string `json:"site_type,omitempty"`
	Description string `json:"description,omitempty"`
}

// FromSites builds a FeatureCollection from converted sites. The Features
// slice is always non-nil so an empty collection serializes as [] rather
// than null.
func FromSites(sites []domain.Site) FeatureCollection {
	features := make([]Feature, 0, len(sites))
	for _, s := range sites {
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: [2]float64{s.Display.Lng, s.Display.Lat},
			},
			Properties: Properties{
				ID:          s.ID,
				Name:        s.Name,
				Address:     s.Address,
				Era:         s.Era,
				Category:    s.Category,
				CategoryKey: s.CategoryKey,
				Color:       s.Color,
				SiteType:    s.SiteType,
				Description: s.Description,
			},
		})
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}
