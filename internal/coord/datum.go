package coord

import (
	"fmt"
	"math"
	"sync"
)

// Datum identifies a geodetic reference frame by its EPSG code.
type Datum string

const (
	// CGCS2000 is the China Geodetic Coordinate System 2000 (EPSG:4490),
	// the datum in which survey coordinates are recorded.
	CGCS2000 Datum = "EPSG:4490"

	// WGS84 is the World Geodetic System 1984 (EPSG:4326), the intermediate
	// global datum.
	WGS84 Datum = "EPSG:4326"
)

// ellipsoid holds the defining parameters of a reference ellipsoid.
type ellipsoid struct {
	a float64 // semi-major axis, meters
	f float64 // flattening
}

func (e ellipsoid) e2() float64 { return 2*e.f - e.f*e.f }

var ellipsoids = map[Datum]ellipsoid{
	CGCS2000: {a: 6378137.0, f: 1 / 298.257222101}, // GRS80-derived
	WGS84:    {a: 6378137.0, f: 1 / 298.257223563},
}

// arcsecPerRad is the number of arc seconds in one radian.
const arcsecPerRad = 206264.8062471

// Transform converts geographic coordinates between two geodetic datums using
// the differential Molodensky formulas. It is immutable after construction
// and safe for concurrent use.
type Transform struct {
	src, dst Datum

	// Mean ellipsoid parameters and the differences between the two frames.
	a   float64
	e2  float64
	da  float64
	de2 float64

	// Geocentric translation, meters. Zero for the CGCS2000/WGS-84 pair.
	dx, dy, dz float64
}

// NewTransform builds a Transform from a source and destination datum.
// Only datums with known ellipsoid parameters are supported.
func NewTransform(src, dst Datum) (*Transform, error) {
	se, ok := ellipsoids[src]
	if !ok {
		return nil, fmt.Errorf("unknown source datum %q", src)
	}
	de, ok := ellipsoids[dst]
	if !ok {
		return nil, fmt.Errorf("unknown destination datum %q", dst)
	}

	return &Transform{
		src: src,
		dst: dst,
		a:   (se.a + de.a) / 2,
		e2:  (se.e2() + de.e2()) / 2,
		da:  de.a - se.a,
		de2: de.e2() - se.e2(),
	}, nil
}

// Apply converts a (longitude, latitude) pair in the source datum to the
// destination datum. Both values are decimal degrees; axis order is
// longitude-then-latitude. Input must be finite.
func (t *Transform) Apply(lng, lat float64) (float64, float64) {
	b := lat * math.Pi / 180
	l := lng * math.Pi / 180
	sinB, cosB := math.Sin(b), math.Cos(b)

	w := 1 - t.e2*sinB*sinB
	m := t.a * (1 - t.e2) / (w * math.Sqrt(w)) // meridional radius of curvature
	n := t.a / math.Sqrt(w)                    // prime vertical radius of curvature

	dB := arcsecPerRad / m * (n/t.a*t.e2*sinB*cosB*t.da +
		(n*n/(t.a*t.a)+1)*n*sinB*cosB*t.de2/2 -
		(t.dx*math.Cos(l)+t.dy*math.Sin(l))*sinB +
		t.dz*cosB)

	// The longitude correction depends only on the horizontal translation,
	// which is zero for the null-shift pairs supported here. Skipping it also
	// avoids the cos(lat) division at the poles.
	dL := 0.0
	if t.dx != 0 || t.dy != 0 {
		dL = arcsecPerRad / (n * cosB) * (-t.dx*math.Sin(l) + t.dy*math.Cos(l))
	}

	return lng + dL/3600, lat + dB/3600
}

var defaultTransform = sync.OnceValue(func() *Transform {
	t, err := NewTransform(CGCS2000, WGS84)
	if err != nil {
		panic(err) // both datums are registered above
	}
	return t
})

// Default returns the process-wide CGCS2000 → WGS-84 transform. It is built
// on first use and never mutated afterwards.
func Default() *Transform {
	return defaultTransform()
}
