package events

import (
	"time"

	"github.com/supportiq/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketTriaged       EventType = "ticket_triaged"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketMessageAdded  EventType = "ticket_message_added"
)

// Actor encapsulates actor metadata for an event. A nil UserID means the
// system (triage or auto-resolution) acted.
type Actor struct {
	Role   domain.SenderRole `json:"role"`
	UserID *string           `json:"user_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Priority domain.TicketPriority `json:"priority"`
	Title    string                `json:"title"`
}

// TicketTriagedPayload payload.
type TicketTriagedPayload struct {
	Category   domain.TriageCategory `json:"category"`
	Priority   domain.TicketPriority `json:"priority"`
	Risk       domain.TriageRisk     `json:"risk"`
	Confidence float64               `json:"confidence"`
	RoutedTo   domain.TicketStatus   `json:"routed_to"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Comment   string              `json:"comment,omitempty"`
}

// TicketMessageAddedPayload payload.
type TicketMessageAddedPayload struct {
	MessageID   string            `json:"message_id"`
	SenderRole  domain.SenderRole `json:"sender_role"`
	SenderID    *string           `json:"sender_id,omitempty"`
	BodyPreview string            `json:"body_preview"`
}
