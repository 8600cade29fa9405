package coord

// Convert maps a surveyed CGCS2000 (longitude, latitude) pair to the GCJ-02
// display datum: reprojection onto WGS-84 first, then the regional offset
// distortion. Deterministic for identical input and safe for concurrent use.
func Convert(lng, lat float64) (float64, float64) {
	wgsLng, wgsLat := Default().Apply(lng, lat)
	return WGS84ToGCJ02(wgsLng, wgsLat)
}
