package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdeck/travelsearch/internal/engine"
)

func newTestLog(t *testing.T) *SearchLog {
	t.Helper()
	sl, err := NewSearchLog(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sl.Close() })
	require.NoError(t, sl.Migrate(context.Background()))
	return sl
}

func TestSearchLog_RecordAndList(t *testing.T) {
	sl := newTestLog(t)
	ctx := context.Background()

	rec := engine.RoundRecord{
		SessionID: "sess-1",
		Domain:    "flights",
		CacheKey:  "flights|jfk|cdg|2026-09-14",
		Items:     4,
		Elapsed:   1200 * time.Millisecond,
		Outcomes: []engine.Outcome{
			{Provider: "amadeus", Status: engine.OutcomeSuccess, Items: 6, Attempts: 1},
			{Provider: "backup", Status: engine.OutcomeSuppressed, Attempts: 3, Error: "boom"},
		},
	}
	require.NoError(t, sl.RecordRound(ctx, rec))

	entries, err := sl.ListRounds(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "sess-1", e.ID)
	assert.Equal(t, "flights", e.Domain)
	assert.Equal(t, rec.CacheKey, e.CacheKey)
	assert.False(t, e.CacheHit)
	assert.Equal(t, 4, e.Items)
	assert.Equal(t, int64(1200), e.ElapsedMS)
	assert.False(t, e.CreatedAt.IsZero())

	require.Len(t, e.Outcomes, 2)
	assert.Equal(t, "amadeus", e.Outcomes[0].Provider)
	assert.Equal(t, engine.OutcomeSuccess, e.Outcomes[0].Status)
	assert.Equal(t, "boom", e.Outcomes[1].Error)
}

func TestSearchLog_DomainFilter(t *testing.T) {
	sl := newTestLog(t)
	ctx := context.Background()

	require.NoError(t, sl.RecordRound(ctx, engine.RoundRecord{SessionID: "f1", Domain: "flights", CacheKey: "a"}))
	require.NoError(t, sl.RecordRound(ctx, engine.RoundRecord{SessionID: "h1", Domain: "hotels", CacheKey: "b"}))
	require.NoError(t, sl.RecordRound(ctx, engine.RoundRecord{SessionID: "h2", Domain: "hotels", CacheKey: "c"}))

	hotels, err := sl.ListRounds(ctx, "hotels", 10)
	require.NoError(t, err)
	assert.Len(t, hotels, 2)
	for _, e := range hotels {
		assert.Equal(t, "hotels", e.Domain)
	}

	all, err := sl.ListRounds(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	capped, err := sl.ListRounds(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, capped, 2)
}

func TestSearchLog_CacheHitRoundTrip(t *testing.T) {
	sl := newTestLog(t)
	ctx := context.Background()

	require.NoError(t, sl.RecordRound(ctx, engine.RoundRecord{
		SessionID: "hit-1",
		Domain:    "hotels",
		CacheKey:  "k",
		CacheHit:  true,
		Items:     5,
	}))

	entries, err := sl.ListRounds(ctx, "hotels", 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].CacheHit)
	assert.Empty(t, entries[0].Outcomes)
}
