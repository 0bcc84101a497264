package domain

import "time"

// TriageCategory enumerates supported issue categories. The rule-based
// classifier emits the AUTH/BILLING/GENERAL subset; the delegated classifier
// may additionally emit TECHNICAL and ACCOUNT.
type TriageCategory string

const (
	TriageCategoryBilling   TriageCategory = "BILLING"
	TriageCategoryTechnical TriageCategory = "TECHNICAL"
	TriageCategoryAccount   TriageCategory = "ACCOUNT"
	TriageCategoryAuth      TriageCategory = "AUTH"
	TriageCategoryGeneral   TriageCategory = "GENERAL"
)

// TriageSentiment captures detected user sentiment.
type TriageSentiment string

const (
	TriageSentimentPositive TriageSentiment = "POSITIVE"
	TriageSentimentNeutral  TriageSentiment = "NEUTRAL"
	TriageSentimentNegative TriageSentiment = "NEGATIVE"
)

// TriageRisk captures detected business risk.
type TriageRisk string

const (
	TriageRiskLow    TriageRisk = "LOW"
	TriageRiskMedium TriageRisk = "MEDIUM"
	TriageRiskHigh   TriageRisk = "HIGH"
)

// TriageResult is the structured metadata attached to a ticket at creation.
// Confidence is always within [0,1].
type TriageResult struct {
	ID         string
	TicketID   string
	Category   TriageCategory
	Priority   TicketPriority
	Sentiment  TriageSentiment
	Confidence float64
	Risk       TriageRisk
	Summary    string
	CreatedAt  time.Time
}
