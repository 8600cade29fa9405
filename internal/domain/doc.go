// Package domain models immovable cultural-heritage site records.
//
// # Data Source
//
// Site records originate from district heritage survey spreadsheets. An
// upstream collector parses each workbook, resolves the column layout, and
// publishes one flat JSON record per row to the Kafka source topic. Column
// header detection is the collector's concern; this service only sees the
// fixed field names of [RawSiteRecord].
//
// # Coordinate Conventions
//
// Surveyed coordinates are recorded in CGCS2000 (EPSG:4490). Latitude and
// longitude arrive as free-form text in one of three shapes:
//
//	Decimal degrees:          "30.4192"
//	Degrees-minutes-seconds:  "120°17′4.9″"
//	Degrees-minutes:          "120°17.08′"
//
// [ParseCoordinate] normalizes all three to decimal degrees. Records whose
// coordinates cannot be parsed are skipped before the conversion core is
// invoked; the core itself never sees an invalid value.
//
// Display coordinates are GCJ-02, produced by the coord package, because the
// target map service (AMap) renders in that datum.
//
// # Categories
//
// Sites are classified into the five fixed protection categories used by the
// survey (古遗址, 石窟寺及石刻, 古建筑, 近现代重要史迹及代表性建筑, 其他) by
// substring match on the spreadsheet's category column. Each category carries
// a fixed marker color for the map legend.
//
// # ID Generation
//
// Site IDs are deterministic SHA-256 hashes of name and surveyed coordinates,
// so reprocessing the same raw record produces the same ID and downstream
// upserts stay idempotent.
package domain
