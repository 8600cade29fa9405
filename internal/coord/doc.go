// Package coord implements the two-stage datum conversion used by the
// heritage map pipeline: an ellipsoid reprojection from CGCS2000 (EPSG:4490)
// to WGS-84 (EPSG:4326), followed by the GCJ-02 offset distortion required by
// Chinese consumer map services.
//
// # Stage 1: CGCS2000 → WGS-84
//
// CGCS2000 and WGS-84 share the same origin and semi-major axis; EPSG models
// the relationship as a null shift. The [Transform] applies the differential
// Molodensky formulas with zero translation, so only the tiny flattening
// difference between the two reference ellipsoids contributes
// (sub-millimeter at any latitude). The transform is built once from its two
// datum identifiers and is immutable and safe for concurrent use.
//
// # Stage 2: WGS-84 → GCJ-02
//
// GCJ-02 is the publicly mandated obfuscated coordinate system for maps of
// mainland China. The offset is a fixed empirical fit: a polynomial plus sine
// series in the coordinate offsets from (105°E, 35°N), scaled by the
// Krasovsky 1940 ellipsoid. The coefficients are exact constants of the
// published algorithm and are reproduced literally; any deviation breaks
// compatibility with existing GCJ-02 tiles and POI data. Coordinates outside
// the mainland bounding rectangle pass through unchanged.
//
// All functions are pure: no state, no I/O, no error path for finite input.
// Callers are responsible for supplying parsed, finite decimal degrees.
package coord
