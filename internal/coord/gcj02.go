package coord

import "math"

// Krasovsky 1940 ellipsoid, the reference ellipsoid of the GCJ-02 algorithm.
const (
	krasovskyA  = 6378245.0             // semi-major axis, meters
	krasovskyE2 = 0.00669342162296594323 // squared eccentricity
)

// Bounding rectangle of mainland China. The distortion applies strictly
// inside it; points on the edges pass through unchanged.
const (
	regionLngMin = 73.66
	regionLngMax = 135.05
	regionLatMin = 3.86
	regionLatMax = 53.55
)

// The series below are the published empirical fit. The coefficients are
// exact constants of the algorithm; do not touch them.

// offsetLat computes the raw latitude correction for offsets (x, y) from the
// (105°E, 35°N) expansion point.
func offsetLat(x, y float64) float64 {
	ret := -100.0 + 2.0*x + 3.0*y + 0.2*y*y + 0.1*x*y + 0.2*math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(y*math.Pi) + 40.0*math.Sin(y/3.0*math.Pi)) * 2.0 / 3.0
	ret += (160.0*math.Sin(y/12.0*math.Pi) + 320.0*math.Sin(y/30.0*math.Pi)) * 2.0 / 3.0
	return ret
}

// offsetLng computes the raw longitude correction for offsets (x, y) from the
// (105°E, 35°N) expansion point.
func offsetLng(x, y float64) float64 {
	ret := 300.0 + x + 2.0*y + 0.1*x*x + 0.1*x*y + 0.1*math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(x*math.Pi) + 40.0*math.Sin(x/3.0*math.Pi)) * 2.0 / 3.0
	ret += (150.0*math.Sin(x/12.0*math.Pi) + 300.0*math.Sin(x/30.0*math.Pi)) * 2.0 / 3.0
	return ret
}

// InDistortionRegion reports whether a WGS-84 point falls strictly inside the
// mainland bounding rectangle where the GCJ-02 distortion applies.
func InDistortionRegion(lng, lat float64) bool {
	return lng > regionLngMin && lng < regionLngMax &&
		lat > regionLatMin && lat < regionLatMax
}

// WGS84ToGCJ02 converts a WGS-84 (longitude, latitude) pair to GCJ-02.
// Points outside the mainland bounding rectangle are returned unchanged.
// The conversion is lossy; there is no exact inverse.
func WGS84ToGCJ02(lng, lat float64) (float64, float64) {
	if !InDistortionRegion(lng, lat) {
		return lng, lat
	}

	dLat := offsetLat(lng-105.0, lat-35.0)
	dLng := offsetLng(lng-105.0, lat-35.0)

	radLat := lat / 180.0 * math.Pi
	magic := math.Sin(radLat)
	magic = 1 - krasovskyE2*magic*magic
	sqrtMagic := math.Sqrt(magic)

	dLat = (dLat * 180.0) / ((krasovskyA * (1 - krasovskyE2)) / (magic * sqrtMagic) * math.Pi)
	dLng = (dLng * 180.0) / (krasovskyA / sqrtMagic * math.Cos(radLat) * math.Pi)

	return lng + dLng, lat + dLat
}
