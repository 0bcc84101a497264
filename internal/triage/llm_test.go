package triage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/supportiq/helpdesk/internal/domain"
)

type stubGenerator struct {
	response string
	err      error
	calls    int
}

func (g *stubGenerator) Generate(_ context.Context, _, _ string, _ float64) (string, error) {
	g.calls++
	return g.response, g.err
}

const validTriageJSON = `{
	"category": "AUTH",
	"priority": "HIGH",
	"sentiment": "NEGATIVE",
	"confidence": 0.92,
	"risk": "LOW",
	"ai_summary": "User locked out of their account."
}`

func TestLLMClassifier_Classify_ValidResponse(t *testing.T) {
	gen := &stubGenerator{response: validTriageJSON}
	classifier := NewLLMClassifier(gen, nil, zap.NewNop())

	got := classifier.Classify(context.Background(), "locked out", "cannot sign in, very frustrated")

	assert.Equal(t, domain.TriageResult{
		Category:   domain.TriageCategoryAuth,
		Priority:   domain.TicketPriorityHigh,
		Sentiment:  domain.TriageSentimentNegative,
		Confidence: 0.92,
		Risk:       domain.TriageRiskLow,
		Summary:    "User locked out of their account.",
	}, got)
	assert.Equal(t, 1, gen.calls)
}

func TestLLMClassifier_Classify_GenerationError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream timeout")}
	classifier := NewLLMClassifier(gen, nil, zap.NewNop())

	got := classifier.Classify(context.Background(), "anything", "at all")

	assert.Equal(t, DefaultResult(), got)
}

func TestLLMClassifier_Classify_MalformedResponses(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"prose instead of JSON", "The ticket looks like a billing problem."},
		{"truncated JSON", `{"category": "AUTH", "prio`},
		{"unknown category enum", `{"category": "SHIPPING", "priority": "LOW", "sentiment": "NEUTRAL", "confidence": 0.7, "risk": "LOW", "ai_summary": "x"}`},
		{"missing required field", `{"category": "AUTH", "priority": "LOW", "sentiment": "NEUTRAL", "confidence": 0.7, "risk": "LOW"}`},
		{"confidence as string", `{"category": "AUTH", "priority": "LOW", "sentiment": "NEUTRAL", "confidence": "high", "risk": "LOW", "ai_summary": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{response: tt.response}
			classifier := NewLLMClassifier(gen, nil, zap.NewNop())

			got := classifier.Classify(context.Background(), "title", "description")
			assert.Equal(t, DefaultResult(), got)
		})
	}
}

func TestLLMClassifier_Classify_ClampsConfidence(t *testing.T) {
	gen := &stubGenerator{response: `{"category": "BILLING", "priority": "MEDIUM", "sentiment": "NEUTRAL", "confidence": 1.7, "risk": "HIGH", "ai_summary": "double charge"}`}
	classifier := NewLLMClassifier(gen, nil, zap.NewNop())

	got := classifier.Classify(context.Background(), "double charge", "charged twice")
	assert.Equal(t, 1.0, got.Confidence)
}

func TestLLMClassifier_Classify_RecentHitSkipsGeneration(t *testing.T) {
	gen := &stubGenerator{response: validTriageJSON}
	classifier := NewLLMClassifier(gen, nil, zap.NewNop())

	first := classifier.Classify(context.Background(), "locked out", "cannot sign in")
	second := classifier.Classify(context.Background(), "locked out", "cannot sign in")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, gen.calls)
}

func TestLLMClassifier_Classify_KeyIsCaseInsensitive(t *testing.T) {
	gen := &stubGenerator{response: validTriageJSON}
	classifier := NewLLMClassifier(gen, nil, zap.NewNop())

	classifier.Classify(context.Background(), "Locked Out", "Cannot Sign In")
	classifier.Classify(context.Background(), "locked out", "cannot sign in")

	assert.Equal(t, 1, gen.calls)
}

func TestLLMClassifier_Classify_FailureNotCached(t *testing.T) {
	gen := &stubGenerator{response: "not json"}
	classifier := NewLLMClassifier(gen, nil, zap.NewNop())

	classifier.Classify(context.Background(), "title", "description")
	classifier.Classify(context.Background(), "title", "description")

	assert.Equal(t, 2, gen.calls)
}
