package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supportiq/helpdesk/internal/domain"
)

func TestUrgencyScore(t *testing.T) {
	tests := []struct {
		name     string
		ticket   domain.Ticket
		result   *domain.TriageResult
		expected float64
	}{
		{
			name:     "high priority and fully confident negative sentiment",
			ticket:   domain.Ticket{Priority: domain.TicketPriorityHigh},
			result:   &domain.TriageResult{Sentiment: domain.TriageSentimentNegative, Confidence: 1.0},
			expected: 8.0,
		},
		{
			name:     "medium priority neutral sentiment",
			ticket:   domain.Ticket{Priority: domain.TicketPriorityMedium},
			result:   &domain.TriageResult{Sentiment: domain.TriageSentimentNeutral, Confidence: 0.9},
			expected: 0.0,
		},
		{
			name:     "negative sentiment scaled by confidence",
			ticket:   domain.Ticket{Priority: domain.TicketPriorityMedium},
			result:   &domain.TriageResult{Sentiment: domain.TriageSentimentNegative, Confidence: 0.5},
			expected: 1.5,
		},
		{
			name:     "high priority without triage result",
			ticket:   domain.Ticket{Priority: domain.TicketPriorityHigh},
			result:   nil,
			expected: 5.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, UrgencyScore(tt.ticket, tt.result), 1e-9)
		})
	}
}

func TestSortByUrgency(t *testing.T) {
	tickets := []domain.Ticket{
		{ID: "calm", Priority: domain.TicketPriorityMedium},
		{
			ID:       "angry",
			Priority: domain.TicketPriorityMedium,
			Triage:   &domain.TriageResult{Sentiment: domain.TriageSentimentNegative, Confidence: 0.9},
		},
		{
			ID:       "critical",
			Priority: domain.TicketPriorityHigh,
			Triage:   &domain.TriageResult{Sentiment: domain.TriageSentimentNegative, Confidence: 1.0},
		},
		{ID: "urgent-only", Priority: domain.TicketPriorityHigh},
	}

	SortByUrgency(tickets)

	ids := make([]string, 0, len(tickets))
	for _, ticket := range tickets {
		ids = append(ids, ticket.ID)
	}
	assert.Equal(t, []string{"critical", "urgent-only", "angry", "calm"}, ids)
}

func TestSortByUrgency_StableOnTies(t *testing.T) {
	tickets := []domain.Ticket{
		{ID: "first", Priority: domain.TicketPriorityHigh},
		{ID: "second", Priority: domain.TicketPriorityHigh},
		{ID: "third", Priority: domain.TicketPriorityHigh},
	}

	SortByUrgency(tickets)

	assert.Equal(t, "first", tickets[0].ID)
	assert.Equal(t, "second", tickets[1].ID)
	assert.Equal(t, "third", tickets[2].ID)
}
