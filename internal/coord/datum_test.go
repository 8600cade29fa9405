package coord

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransform_UnknownDatum(t *testing.T) {
	_, err := NewTransform(Datum("EPSG:9999"), WGS84)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EPSG:9999")

	_, err = NewTransform(CGCS2000, Datum("EPSG:9999"))
	require.Error(t, err)
}

// CGCS2000 and WGS-84 differ only in flattening; the reprojection must be a
// near-identity (well under a millimeter, i.e. < 1e-8 degrees).
func TestTransform_Apply_NearIdentity(t *testing.T) {
	tr, err := NewTransform(CGCS2000, WGS84)
	require.NoError(t, err)

	cases := []struct{ lng, lat float64 }{
		{120.2847, 30.4192},
		{116.404, 39.915},
		{87.6168, 43.8256},
		{104.0665, -30.5723},
		{0, 0},
	}

	for _, tc := range cases {
		gotLng, gotLat := tr.Apply(tc.lng, tc.lat)
		assert.InDelta(t, tc.lng, gotLng, 1e-8)
		assert.InDelta(t, tc.lat, gotLat, 1e-8)
	}
}

func TestTransform_Apply_SamePairIsExactIdentityOnLng(t *testing.T) {
	tr, err := NewTransform(WGS84, WGS84)
	require.NoError(t, err)

	gotLng, gotLat := tr.Apply(120.25, 30.43)
	assert.Equal(t, 120.25, gotLng)
	assert.Equal(t, 30.43, gotLat)
}

func TestDefault_IsSingleton(t *testing.T) {
	first := Default()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if Default() != first {
				t.Error("Default returned a different transform instance")
			}
		}()
	}
	wg.Wait()

	// Built from the two fixed datum identifiers.
	assert.Equal(t, CGCS2000, first.src)
	assert.Equal(t, WGS84, first.dst)
}
