package triage

import (
	"context"

	"github.com/supportiq/helpdesk/internal/domain"
)

// DefaultSummary is the summary carried by the fallback triage result.
const DefaultSummary = "AI parsing failed."

// Classifier maps raw ticket text to structured triage metadata.
// Implementations never fail outward: any internal error, including a
// malformed response from a delegated text-generation call, yields
// DefaultResult instead of an error.
type Classifier interface {
	Classify(ctx context.Context, title, description string) domain.TriageResult
}

// DefaultResult returns the fixed result substituted on classifier failure.
func DefaultResult() domain.TriageResult {
	return domain.TriageResult{
		Category:   domain.TriageCategoryGeneral,
		Priority:   domain.TicketPriorityMedium,
		Sentiment:  domain.TriageSentimentNeutral,
		Confidence: 0.5,
		Risk:       domain.TriageRiskLow,
		Summary:    DefaultSummary,
	}
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
