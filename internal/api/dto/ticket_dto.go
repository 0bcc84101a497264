package dto

import (
	"time"

	"github.com/supportiq/helpdesk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TriageResponse mirrors the triage metadata attached to a ticket.
type TriageResponse struct {
	Category   domain.TriageCategory  `json:"category"`
	Priority   domain.TicketPriority  `json:"priority"`
	Sentiment  domain.TriageSentiment `json:"sentiment"`
	Confidence float64                `json:"confidence"`
	Risk       domain.TriageRisk      `json:"risk"`
	AISummary  string                 `json:"ai_summary"`
}

// TicketSummary response.
type TicketSummary struct {
	ID          string                `json:"id"`
	ExternalKey string                `json:"external_key"`
	Title       string                `json:"title"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	Category    domain.TriageCategory `json:"category"`
	Triage      *TriageResponse       `json:"triage,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info.
type TicketDetailResponse struct {
	ID          string                  `json:"id"`
	ExternalKey string                  `json:"external_key"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Status      domain.TicketStatus     `json:"status"`
	Priority    domain.TicketPriority   `json:"priority"`
	Category    domain.TriageCategory   `json:"category"`
	Triage      *TriageResponse         `json:"triage,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
	ClosedAt    *time.Time              `json:"closed_at"`
	Messages    []TicketMessageResponse `json:"messages"`
}

// TicketMessageResponse represents a thread message.
type TicketMessageResponse struct {
	ID         string            `json:"id"`
	SenderRole domain.SenderRole `json:"sender_role"`
	SenderID   *string           `json:"sender_id,omitempty"`
	Body       string            `json:"body"`
	CreatedAt  time.Time         `json:"created_at"`
}

// CreateMessageRequest payload.
type CreateMessageRequest struct {
	Body string `json:"body"`
}

// QueueEntryResponse is one urgency-ranked row of the agent queue.
type QueueEntryResponse struct {
	Ticket     TicketSummary `json:"ticket"`
	Score      float64       `json:"urgency_score"`
	Escalation *string       `json:"escalation,omitempty"`
}

// DraftResponse carries a generated agent reply draft.
type DraftResponse struct {
	Draft string `json:"draft"`
}
