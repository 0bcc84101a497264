package triage

import (
	"context"
	"fmt"
	"strings"

	"github.com/supportiq/helpdesk/internal/domain"
)

// RuleClassifier is the deterministic keyword variant. It matches substrings
// case-insensitively against the concatenated title and description and emits
// the AUTH/BILLING/GENERAL category subset.
type RuleClassifier struct{}

// NewRuleClassifier constructs the rule-based classifier.
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// Classify derives triage metadata from keyword rules. AUTH keywords are
// checked before BILLING; the first match wins.
func (c *RuleClassifier) Classify(_ context.Context, title, description string) domain.TriageResult {
	text := strings.ToLower(title + " " + description)

	category := domain.TriageCategoryGeneral
	switch {
	case containsAny(text, "password", "login"):
		category = domain.TriageCategoryAuth
	case containsAny(text, "payment", "refund"):
		category = domain.TriageCategoryBilling
	}

	priority := domain.TicketPriorityMedium
	if containsAny(text, "urgent", "immediately") {
		priority = domain.TicketPriorityHigh
	}

	sentiment := domain.TriageSentimentNeutral
	if containsAny(text, "angry", "frustrated") {
		sentiment = domain.TriageSentimentNegative
	}

	risk := domain.TriageRiskLow
	if category == domain.TriageCategoryBilling {
		risk = domain.TriageRiskHigh
	}

	confidence := 0.85
	if category == domain.TriageCategoryGeneral {
		confidence = 0.6
	}

	return domain.TriageResult{
		Category:   category,
		Priority:   priority,
		Sentiment:  sentiment,
		Confidence: confidence,
		Risk:       risk,
		Summary:    fmt.Sprintf("Detected %s issue with %s priority.", category, priority),
	}
}

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
