package triage

import (
	"strings"

	"github.com/supportiq/helpdesk/internal/domain"
)

// EscalationReason builds the human-readable escalation banner for a ticket.
// Reasons are collected in a fixed order: priority, sentiment, risk. The
// second return value is false when no reason applies and no banner should
// be shown.
func EscalationReason(ticket domain.Ticket, result *domain.TriageResult) (string, bool) {
	var reasons []string
	if ticket.Priority == domain.TicketPriorityHigh {
		reasons = append(reasons, "high priority")
	}
	if result != nil {
		if result.Sentiment == domain.TriageSentimentNegative {
			reasons = append(reasons, "negative sentiment")
		}
		if result.Risk == domain.TriageRiskHigh {
			reasons = append(reasons, "risk detected")
		}
	}
	if len(reasons) == 0 {
		return "", false
	}
	return "Escalation: " + strings.Join(reasons, ", "), true
}
