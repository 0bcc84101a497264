package triage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/supportiq/helpdesk/internal/domain"
)

const cacheKeyPrefix = "triage:"

// ResultCache stores classification results in Redis keyed by a hash of the
// ticket text, so identical submissions do not repeat a text-generation
// call. All cache failures are silent: a miss only costs one extra call.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache builds a cache. A nil client disables caching.
func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ResultCache{client: client, ttl: ttl}
}

type cachedResult struct {
	Category   domain.TriageCategory  `json:"category"`
	Priority   domain.TicketPriority  `json:"priority"`
	Sentiment  domain.TriageSentiment `json:"sentiment"`
	Confidence float64                `json:"confidence"`
	Risk       domain.TriageRisk      `json:"risk"`
	Summary    string                 `json:"ai_summary"`
}

// Get fetches a cached result for the given text key.
func (c *ResultCache) Get(ctx context.Context, key string) (domain.TriageResult, bool) {
	if c == nil || c.client == nil {
		return domain.TriageResult{}, false
	}
	raw, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err != nil {
		return domain.TriageResult{}, false
	}
	var entry cachedResult
	if err := json.Unmarshal(raw, &entry); err != nil {
		return domain.TriageResult{}, false
	}
	return domain.TriageResult{
		Category:   entry.Category,
		Priority:   entry.Priority,
		Sentiment:  entry.Sentiment,
		Confidence: entry.Confidence,
		Risk:       entry.Risk,
		Summary:    entry.Summary,
	}, true
}

// Set stores a result under the given text key.
func (c *ResultCache) Set(ctx context.Context, key string, result domain.TriageResult) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(cachedResult{
		Category:   result.Category,
		Priority:   result.Priority,
		Sentiment:  result.Sentiment,
		Confidence: result.Confidence,
		Risk:       result.Risk,
		Summary:    result.Summary,
	})
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, cacheKeyPrefix+key, raw, c.ttl).Err()
}
