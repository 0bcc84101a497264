package triage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportiq/helpdesk/internal/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*ResultCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewResultCache(client, ttl), server
}

func TestResultCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	stored := domain.TriageResult{
		Category:   domain.TriageCategoryBilling,
		Priority:   domain.TicketPriorityHigh,
		Sentiment:  domain.TriageSentimentNegative,
		Confidence: 0.91,
		Risk:       domain.TriageRiskHigh,
		Summary:    "Duplicate charge on invoice.",
	}
	cache.Set(ctx, "abc123", stored)

	got, ok := cache.Get(ctx, "abc123")
	require.True(t, ok)
	assert.Equal(t, stored, got)
}

func TestResultCache_MissReturnsFalse(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	_, ok := cache.Get(context.Background(), "missing")
	assert.False(t, ok)
}

func TestResultCache_EntryExpires(t *testing.T) {
	cache, server := newTestCache(t, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "short", domain.TriageResult{Category: domain.TriageCategoryGeneral})

	server.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, "short")
	assert.False(t, ok)
}

func TestResultCache_KeysArePrefixed(t *testing.T) {
	cache, server := newTestCache(t, time.Minute)

	cache.Set(context.Background(), "abc123", domain.TriageResult{Category: domain.TriageCategoryAuth})

	assert.True(t, server.Exists("triage:abc123"))
}

func TestResultCache_CorruptEntryTreatedAsMiss(t *testing.T) {
	cache, server := newTestCache(t, time.Minute)

	require.NoError(t, server.Set("triage:bad", "not-json"))

	_, ok := cache.Get(context.Background(), "bad")
	assert.False(t, ok)
}

func TestResultCache_NilClientDisablesCaching(t *testing.T) {
	cache := NewResultCache(nil, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "key", domain.TriageResult{})
	_, ok := cache.Get(ctx, "key")
	assert.False(t, ok)
}
