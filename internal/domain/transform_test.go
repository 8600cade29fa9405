package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRawSite(t *testing.T) {
	t.Run("decimal coordinates", func(t *testing.T) {
		data := []byte(`{"Name":"安平桥","Lat":"30.4192","Lng":"120.2847","Address":"临平区南大街","Era":"南宋","Category":"古建筑","Description":"单孔石拱桥","Type":"市级文保单位"}`)
		raw := RawEvent{Value: data}

		site, err := ParseRawSite(raw)
		require.NoError(t, err)

		assert.Equal(t, "安平桥", site.Name)
		assert.Equal(t, 30.4192, site.Source.Lat)
		assert.Equal(t, 120.2847, site.Source.Lng)
		assert.Equal(t, "临平区南大街", site.Address)
		assert.Equal(t, "南宋", site.Era)
		assert.Equal(t, "古建筑", site.Category)
		assert.Equal(t, "单孔石拱桥", site.Description)
		assert.Equal(t, "市级文保单位", site.SiteType)
		assert.True(t, strings.HasPrefix(site.ID, "site-"))
		assert.Equal(t, data, site.RawPayload)
	})

	t.Run("dms coordinates", func(t *testing.T) {
		data := []byte(`{"Name":"超山遗址","Lat":"30°25′9.1″","Lng":"120°17′4.9″","Category":"古遗址"}`)
		raw := RawEvent{Value: data}

		site, err := ParseRawSite(raw)
		require.NoError(t, err)
		assert.InDelta(t, 30+25/60.0+9.1/3600.0, site.Source.Lat, 1e-9)
		assert.InDelta(t, 120+17/60.0+4.9/3600.0, site.Source.Lng, 1e-9)
	})

	t.Run("broad era fallback", func(t *testing.T) {
		data := []byte(`{"Name":"某遗址","Lat":"30.4","Lng":"120.2","Era":"","EraBroad":"宋"}`)
		site, err := ParseRawSite(RawEvent{Value: data})
		require.NoError(t, err)
		assert.Equal(t, "宋", site.Era)
	})

	t.Run("missing coordinates", func(t *testing.T) {
		data := []byte(`{"Name":"无坐标","Lat":"","Lng":"120.2847"}`)
		_, err := ParseRawSite(RawEvent{Value: data})
		require.ErrorIs(t, err, ErrNoCoordinates)
	})

	t.Run("unparseable coordinates", func(t *testing.T) {
		data := []byte(`{"Name":"坏坐标","Lat":"未测","Lng":"待定"}`)
		_, err := ParseRawSite(RawEvent{Value: data})
		require.ErrorIs(t, err, ErrNoCoordinates)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseRawSite(RawEvent{Value: []byte("{invalid json")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse raw site")
	})

	t.Run("deterministic ID", func(t *testing.T) {
		data := []byte(`{"Name":"安平桥","Lat":"30.4192","Lng":"120.2847"}`)
		a, err := ParseRawSite(RawEvent{Value: data})
		require.NoError(t, err)
		b, err := ParseRawSite(RawEvent{Value: data})
		require.NoError(t, err)
		assert.Equal(t, a.ID, b.ID)
	})
}

func TestEnrichSite(t *testing.T) {
	fixed := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	defer SetClock(nil)

	site := Site{
		ID:       "site-1",
		Name:     "安平桥",
		Source:   Geo{Lng: 120.2847, Lat: 30.4192},
		Address:  "临平区南大街",
		Category: "古建筑",
	}

	got := EnrichSite(site)

	assert.Equal(t, "古建筑", got.CategoryKey)
	assert.Equal(t, "#45B7D1", got.Color)
	assert.Equal(t, "original", got.AddrSource)
	assert.Equal(t, fixed, got.ProcessedAt)

	// Display pair is the GCJ-02 conversion of the surveyed coordinates.
	assert.InDelta(t, 120.28918805301485, got.Display.Lng, 1e-6)
	assert.InDelta(t, 30.41679213753217, got.Display.Lat, 1e-6)
	// Source pair stays untouched; the two datums are never mixed.
	assert.Equal(t, 120.2847, got.Source.Lng)
	assert.Equal(t, 30.4192, got.Source.Lat)
}

func TestEnrichSite_NoAddress(t *testing.T) {
	got := EnrichSite(Site{Source: Geo{Lng: 120.25, Lat: 30.43}})
	assert.Empty(t, got.AddrSource)
	assert.Equal(t, DefaultCategory, got.CategoryKey)
}

func TestClassifyCategory(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"古建筑", "古建筑"},
		{"古遗址（城址）", "古遗址"},
		{"石窟寺及石刻", "石窟寺及石刻"},
		{"近现代重要史迹及代表性建筑", "近现代重要史迹及代表性建筑"},
		{"墓葬", DefaultCategory},
		{"", DefaultCategory},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyCategory(tc.input), "input %q", tc.input)
	}
}

func TestCategoryColor_UnknownKeyFallsBack(t *testing.T) {
	assert.Equal(t, CategoryColor(DefaultCategory), CategoryColor("no-such-category"))
}

func TestCategories_OrderedWithCatchAllLast(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 5)
	assert.Equal(t, DefaultCategory, cats[len(cats)-1])
}
