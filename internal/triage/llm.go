package triage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/supportiq/helpdesk/internal/domain"
)

// TextGenerator abstracts the external text-generation capability consumed
// by the delegated classifier.
type TextGenerator interface {
	Generate(ctx context.Context, system, user string, temperature float64) (string, error)
}

const triageSystemPrompt = `You are a support ticket triage engine.
Classify the ticket and respond with a single JSON object only, no prose and
no code fences, matching exactly this schema:
{"category": "BILLING" | "TECHNICAL" | "ACCOUNT" | "AUTH",
 "priority": "LOW" | "MEDIUM" | "HIGH" | "URGENT",
 "sentiment": "POSITIVE" | "NEUTRAL" | "NEGATIVE",
 "confidence": number between 0.0 and 1.0,
 "risk": "LOW" | "MEDIUM" | "HIGH",
 "ai_summary": "one line describing the detected issue"}
Guidance: password or login problems are AUTH; payment or refund problems
are BILLING; wording like "urgent" or "immediately" raises priority to HIGH;
wording like "angry" or "frustrated" means NEGATIVE sentiment; BILLING
issues carry HIGH risk.`

const triageResponseSchema = `{
  "type": "object",
  "required": ["category", "priority", "sentiment", "confidence", "risk", "ai_summary"],
  "properties": {
    "category":   {"type": "string", "enum": ["BILLING", "TECHNICAL", "ACCOUNT", "AUTH"]},
    "priority":   {"type": "string", "enum": ["LOW", "MEDIUM", "HIGH", "URGENT"]},
    "sentiment":  {"type": "string", "enum": ["POSITIVE", "NEUTRAL", "NEGATIVE"]},
    "confidence": {"type": "number"},
    "risk":       {"type": "string", "enum": ["LOW", "MEDIUM", "HIGH"]},
    "ai_summary": {"type": "string"}
  }
}`

var triageSchemaLoader = gojsonschema.NewStringLoader(triageResponseSchema)

const recentResultsSize = 256

// LLMClassifier delegates classification to a text-generation capability.
// Responses are requested with deterministic sampling and validated against
// a JSON schema; any transport failure, non-JSON output, or schema mismatch
// is absorbed into the fixed default result. The call is never retried.
type LLMClassifier struct {
	gen    TextGenerator
	cache  *ResultCache
	recent *lru.Cache[string, domain.TriageResult]
	logger *zap.Logger
}

// NewLLMClassifier constructs the delegated classifier. Cache may be nil.
func NewLLMClassifier(gen TextGenerator, cache *ResultCache, logger *zap.Logger) *LLMClassifier {
	recent, _ := lru.New[string, domain.TriageResult](recentResultsSize)
	return &LLMClassifier{
		gen:    gen,
		cache:  cache,
		recent: recent,
		logger: logger,
	}
}

// Classify asks the text generator for triage metadata. It consults the
// in-process LRU and the Redis cache before issuing a call.
func (c *LLMClassifier) Classify(ctx context.Context, title, description string) domain.TriageResult {
	key := textKey(title, description)

	if result, ok := c.recent.Get(key); ok {
		return result
	}
	if result, ok := c.cache.Get(ctx, key); ok {
		c.recent.Add(key, result)
		return result
	}

	userMessage := fmt.Sprintf("Title: %s\nDescription: %s", title, description)
	response, err := c.gen.Generate(ctx, triageSystemPrompt, userMessage, 0)
	if err != nil {
		c.logger.Warn("triage generation failed, using default result", zap.Error(err))
		return DefaultResult()
	}

	result, ok := c.parseResponse(response)
	if !ok {
		return DefaultResult()
	}

	c.recent.Add(key, result)
	c.cache.Set(ctx, key, result)
	return result
}

type llmTriagePayload struct {
	Category   string  `json:"category"`
	Priority   string  `json:"priority"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Risk       string  `json:"risk"`
	Summary    string  `json:"ai_summary"`
}

func (c *LLMClassifier) parseResponse(response string) (domain.TriageResult, bool) {
	validation, err := gojsonschema.Validate(triageSchemaLoader, gojsonschema.NewStringLoader(response))
	if err != nil {
		c.logger.Warn("triage response is not valid JSON, using default result", zap.Error(err))
		return domain.TriageResult{}, false
	}
	if !validation.Valid() {
		c.logger.Warn("triage response violates schema, using default result",
			zap.String("violation", firstViolation(validation)))
		return domain.TriageResult{}, false
	}

	var payload llmTriagePayload
	if err := json.Unmarshal([]byte(response), &payload); err != nil {
		c.logger.Warn("triage response decode failed, using default result", zap.Error(err))
		return domain.TriageResult{}, false
	}

	return domain.TriageResult{
		Category:   domain.TriageCategory(payload.Category),
		Priority:   domain.TicketPriority(payload.Priority),
		Sentiment:  domain.TriageSentiment(payload.Sentiment),
		Confidence: clampConfidence(payload.Confidence),
		Risk:       domain.TriageRisk(payload.Risk),
		Summary:    payload.Summary,
	}, true
}

func firstViolation(result *gojsonschema.Result) string {
	for _, desc := range result.Errors() {
		return desc.String()
	}
	return ""
}

func textKey(title, description string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(title + "\n" + description)))
	return hex.EncodeToString(sum[:])
}
