package store

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/palegrove/heritage-map-etl/internal/domain"
	"github.com/palegrove/heritage-map-etl/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() *Memory {
	return NewMemory(observability.NewMetricsForTesting())
}

func TestMemory_LoadBatchAndSnapshot(t *testing.T) {
	s := newStore()

	sites := []domain.Site{
		{ID: "site-b", Name: "乙遗址", CategoryKey: "古遗址"},
		{ID: "site-a", Name: "甲桥", CategoryKey: "古建筑"},
	}
	require.NoError(t, s.LoadBatch(context.Background(), sites))

	got := s.Snapshot()
	require.Len(t, got, 2)
	// Ordered by name.
	want := []domain.Site{sites[0], sites[1]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestMemory_UpsertIsIdempotent(t *testing.T) {
	s := newStore()

	site := domain.Site{ID: "site-1", Name: "安平桥", CategoryKey: "古建筑"}
	require.NoError(t, s.LoadBatch(context.Background(), []domain.Site{site}))

	// Replaying the same record with a new address overwrites in place.
	site.Address = "临平区南大街"
	require.NoError(t, s.LoadBatch(context.Background(), []domain.Site{site}))

	got := s.Snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, "临平区南大街", got[0].Address)
}

func TestMemory_Stats(t *testing.T) {
	s := newStore()

	require.NoError(t, s.LoadBatch(context.Background(), []domain.Site{
		{ID: "a", CategoryKey: "古建筑"},
		{ID: "b", CategoryKey: "古建筑"},
		{ID: "c", CategoryKey: domain.DefaultCategory},
	}))

	counts, total := s.Stats()
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, counts["古建筑"])
	assert.Equal(t, 1, counts[domain.DefaultCategory])
}

func TestMemory_ConcurrentLoads(t *testing.T) {
	s := newStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id byte) {
			defer wg.Done()
			site := domain.Site{ID: "site-" + string('a'+id), CategoryKey: domain.DefaultCategory}
			_ = s.LoadBatch(context.Background(), []domain.Site{site})
		}(byte(i))
	}
	wg.Wait()

	_, total := s.Stats()
	assert.Equal(t, 8, total)
}
