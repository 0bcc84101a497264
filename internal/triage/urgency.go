package triage

import (
	"sort"

	"github.com/supportiq/helpdesk/internal/domain"
)

// Fixed policy weights; the linear sum keeps the ranking explainable to
// agents.
const (
	highPriorityWeight      = 5.0
	negativeSentimentWeight = 3.0
)

// UrgencyScore computes the queue-ordering score for a ticket. A missing
// triage result contributes nothing beyond the priority term.
func UrgencyScore(ticket domain.Ticket, result *domain.TriageResult) float64 {
	score := 0.0
	if ticket.Priority == domain.TicketPriorityHigh {
		score += highPriorityWeight
	}
	if result != nil && result.Sentiment == domain.TriageSentimentNegative {
		score += negativeSentimentWeight * result.Confidence
	}
	return score
}

// SortByUrgency orders tickets by descending urgency score. The sort is
// stable: tickets with equal scores keep their original queue order.
func SortByUrgency(tickets []domain.Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		return UrgencyScore(tickets[i], tickets[i].Triage) > UrgencyScore(tickets[j], tickets[j].Triage)
	})
}
