// Command genmock reads a survey CSV and generates mock data fixtures for the
// ETL and map test suites. It uses the actual domain package so the converted
// output matches real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -csv data/mock/hangzhou_sites.csv \
//	  -raw-out data/mock/raw_site_records.json \
//	  -converted-out data/mock/converted_sites.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/palegrove/heritage-map-etl/internal/coord"
	"github.com/palegrove/heritage-map-etl/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "survey CSV file with a header row")
	rawOut := flag.String("raw-out", "", "output path for the raw-record JSON fixture")
	convertedOut := flag.String("converted-out", "", "output path for the converted-site JSON fixture")
	flag.Parse()

	if *csvPath == "" || *rawOut == "" || *convertedOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv, -raw-out, -converted-out")
	}

	// Set a fixed clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	records, sites, err := processCSV(*csvPath)
	if err != nil {
		return fmt.Errorf("processing %s: %w", *csvPath, err)
	}
	log.Printf("total: %d records, %d converted", len(records), len(sites))

	if err := writeJSON(*rawOut, records); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s", *rawOut)

	if err := writeJSON(*convertedOut, sites); err != nil {
		return fmt.Errorf("writing converted fixture: %w", err)
	}
	log.Printf("wrote converted fixture: %s", *convertedOut)

	printStats(sites)
	return nil
}

func processCSV(path string) ([]domain.RawSiteRecord, []domain.Site, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("no data rows")
	}

	colIdx := map[string]int{}
	for i, h := range rows[0] {
		colIdx[strings.TrimSpace(h)] = i
	}

	var records []domain.RawSiteRecord
	var sites []domain.Site

	for _, row := range rows[1:] {
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
		records = append(records, rec)

		// Run the actual transformation.
		site, err := domain.SiteFromRecord(rec)
		if err != nil {
			log.Printf("skipping %q: %v", rec.Name, err)
			continue
		}
		sites = append(sites, domain.EnrichSite(site))
	}

	return records, sites, nil
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(sites []domain.Site) {
	categoryCounts := map[string]int{}
	eraCounts := map[string]int{}
	var withAddress, outsideRegion int
	for i := range sites {
		s := &sites[i]
		categoryCounts[s.CategoryKey]++
		if s.Era != "" {
			eraCounts[s.Era]++
		}
		if s.Address != "" {
			withAddress++
		}
		if !coord.InDistortionRegion(s.Source.Lng, s.Source.Lat) {
			outsideRegion++
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(sites))
	fmt.Print("By category:")
	for _, key := range domain.Categories() {
		fmt.Printf(" %s=%d", key, categoryCounts[key])
	}
	fmt.Println()
	fmt.Printf("Eras: %d distinct\n", len(eraCounts))
	fmt.Printf("With address: %d\n", withAddress)
	fmt.Printf("Outside distortion region: %d\n", outsideRegion)

	if len(sites) > 0 {
		s := &sites[0]
		fmt.Printf("\nFirst site:\n")
		fmt.Printf("  ID: %s\n", s.ID)
		fmt.Printf("  Name: %s\n", s.Name)
		fmt.Printf("  Source: %.6f, %.6f\n", s.Source.Lng, s.Source.Lat)
		fmt.Printf("  Display: %.6f, %.6f\n", s.Display.Lng, s.Display.Lat)
		fmt.Printf("  Category: %s (%s)\n", s.CategoryKey, s.Color)
		fmt.Printf("  ProcessedAt: %s\n", s.ProcessedAt.Format(time.RFC3339))
	}
}
