package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen           TicketStatus = "OPEN"
	TicketStatusPendingAgent   TicketStatus = "PENDING_AGENT"
	TicketStatusWaitingForUser TicketStatus = "WAITING_FOR_USER"
	TicketStatusAutoResolved   TicketStatus = "AUTO_RESOLVED"
	TicketStatusClosed         TicketStatus = "CLOSED"
)

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// Ticket is the aggregate for support requests. Category and Priority are
// copied from the attached triage result at creation time.
type Ticket struct {
	ID          string
	ExternalKey string
	RequesterID string
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	Category    TriageCategory
	Triage      *TriageResult
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ClosedAt    *time.Time
}
