package domain

import (
	"context"
	"time"
)

// RawSiteRecord is the flat JSON structure produced by the collector, one per
// spreadsheet row. All values are raw cell text.
type RawSiteRecord struct {
	Name        string `json:"Name"`
	Lat         string `json:"Lat"`      // CGCS2000 latitude, decimal or DMS text
	Lng         string `json:"Lng"`      // CGCS2000 longitude, decimal or DMS text
	Address     string `json:"Address"`
	Era         string `json:"Era"`      // specific era, e.g. "南宋"
	EraBroad    string `json:"EraBroad"` // broad era, fallback when Era is empty
	Category    string `json:"Category"` // protection category, free text
	Description string `json:"Description"`
	Type        string `json:"Type"` // site type, e.g. "市级文保单位"
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Geo is an ordered (longitude, latitude) pair in decimal degrees. The datum
// is carried by the field it sits in, never mixed.
type Geo struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Site is the enriched, display-ready representation of a heritage site.
type Site struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Source holds the surveyed CGCS2000 coordinates, Display the converted
	// GCJ-02 coordinates the map provider expects.
	Source  Geo `json:"source"`
	Display Geo `json:"display"`

	Address     string `json:"address,omitempty"`
	Era         string `json:"era,omitempty"`
	Category    string `json:"category,omitempty"`     // raw category text
	CategoryKey string `json:"category_key"`           // one of the fixed categories
	Color       string `json:"color"`                  // legend marker color
	Description string `json:"description,omitempty"`
	SiteType    string `json:"site_type,omitempty"`

	// Address enrichment provenance: "original", "regeo", or "failed".
	AddrSource string `json:"addr_source,omitempty"`

	RawPayload  []byte    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}

// DefaultCategory is the catch-all bucket for unrecognized category text.
const DefaultCategory = "其他"

// categoryColors maps each fixed protection category to its legend color.
var categoryColors = map[string]string{
	"古遗址":            "#FF6B6B",
	"石窟寺及石刻":         "#4ECDC4",
	"古建筑":            "#45B7D1",
	"近现代重要史迹及代表性建筑":  "#FFA500",
	DefaultCategory:  "#95A5A6",
}

// categoryOrder fixes the matching order so classification is deterministic.
var categoryOrder = []string{
	"古遗址",
	"石窟寺及石刻",
	"古建筑",
	"近现代重要史迹及代表性建筑",
}

// Categories returns the fixed category keys in legend order, catch-all last.
func Categories() []string {
	out := make([]string, 0, len(categoryOrder)+1)
	out = append(out, categoryOrder...)
	return append(out, DefaultCategory)
}

// CategoryColor returns the legend color for a category key, falling back to
// the catch-all color for unknown keys.
func CategoryColor(key string) string {
	if c, ok := categoryColors[key]; ok {
		return c
	}
	return categoryColors[DefaultCategory]
}
