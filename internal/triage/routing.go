package triage

import "github.com/supportiq/helpdesk/internal/domain"

// autoResolveMinConfidence is the confidence threshold below which a ticket
// is always handed to a human agent.
const autoResolveMinConfidence = 0.85

// Route maps a triage result to the ticket's first lifecycle transition.
// It is called exactly once per ticket, immediately after classification:
// high-confidence low-risk tickets are resolved automatically, everything
// else joins the agent queue.
func Route(result domain.TriageResult) domain.TicketStatus {
	if result.Confidence >= autoResolveMinConfidence && result.Risk == domain.TriageRiskLow {
		return domain.TicketStatusAutoResolved
	}
	return domain.TicketStatusPendingAgent
}
