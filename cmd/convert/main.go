// Command convert performs a one-shot conversion of a survey CSV into a
// GeoJSON FeatureCollection, running the same transformation the streaming
// pipeline applies. Useful for regenerating the static map layer without a
// Kafka round trip.
//
// The CSV needs a header row with the columns name, lat, lng; the columns
// address, era, era_broad, category, type, and description are optional.
//
// Usage:
//
//	go run ./cmd/convert -csv data/sites.csv -out sites.geojson
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/palegrove/heritage-map-etl/internal/domain"
	"github.com/palegrove/heritage-map-etl/internal/geojson"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "input CSV file with a header row")
	outPath := flag.String("out", "", "output GeoJSON path (default: stdout)")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -csv")
	}

	sites, skipped, err := convertCSV(*csvPath)
	if err != nil {
		return err
	}
	log.Printf("converted %d sites, skipped %d rows without coordinates", len(sites), skipped)

	data, err := json.MarshalIndent(geojson.FromSites(sites), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if *outPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(*outPath, data, 0o600)
}

func convertCSV(path string) ([]domain.Site, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, 0, fmt.Errorf("no data rows in %s", path)
	}

	colIdx := map[string]int{}
	for i, h := range rows[0] {
		colIdx[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{"name", "lat", "lng"} {
		if _, ok := colIdx[required]; !ok {
			return nil, 0, fmt.Errorf("missing required column %q", required)
		}
	}

	var sites []domain.Site
	var skipped int
	for lineNum, row := range rows[1:] {
		rec := domain.RawSiteRecord{
			Name:        get(row, colIdx, "name"),
			Lat:         get(row, colIdx, "lat"),
			Lng:         get(row, colIdx, "lng"),
			Address:     get(row, colIdx, "address"),
			Era:         get(row, colIdx, "era"),
			EraBroad:    get(row, colIdx, "era_broad"),
			Category:    get(row, colIdx, "category"),
			Type:        get(row, colIdx, "type"),
			Description: get(row, colIdx, "description"),
		}

		site, err := domain.SiteFromRecord(rec)
		if err != nil {
			log.Printf("line %d (%s): %v", lineNum+2, rec.Name, err)
			skipped++
			continue
		}
		sites = append(sites, domain.EnrichSite(site))
	}
	return sites, skipped, nil
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
