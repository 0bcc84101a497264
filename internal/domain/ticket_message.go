package domain

import "time"

// SenderRole indicates who authored a ticket message.
type SenderRole string

const (
	SenderRoleUser  SenderRole = "USER"
	SenderRoleAgent SenderRole = "AGENT"
	SenderRoleAI    SenderRole = "AI"
)

// TicketMessage captures one entry of a ticket conversation thread.
type TicketMessage struct {
	ID         string
	TicketID   string
	SenderRole SenderRole
	SenderID   *string
	Body       string
	CreatedAt  time.Time
}
