package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supportiq/helpdesk/internal/domain"
)

func TestEscalationReason(t *testing.T) {
	tests := []struct {
		name       string
		ticket     domain.Ticket
		result     *domain.TriageResult
		expected   string
		applicable bool
	}{
		{
			name:       "all three reasons in fixed order",
			ticket:     domain.Ticket{Priority: domain.TicketPriorityHigh},
			result:     &domain.TriageResult{Sentiment: domain.TriageSentimentNegative, Risk: domain.TriageRiskHigh},
			expected:   "Escalation: high priority, negative sentiment, risk detected",
			applicable: true,
		},
		{
			name:       "priority and sentiment only",
			ticket:     domain.Ticket{Priority: domain.TicketPriorityHigh},
			result:     &domain.TriageResult{Sentiment: domain.TriageSentimentNegative, Risk: domain.TriageRiskLow},
			expected:   "Escalation: high priority, negative sentiment",
			applicable: true,
		},
		{
			name:       "risk alone",
			ticket:     domain.Ticket{Priority: domain.TicketPriorityMedium},
			result:     &domain.TriageResult{Sentiment: domain.TriageSentimentNeutral, Risk: domain.TriageRiskHigh},
			expected:   "Escalation: risk detected",
			applicable: true,
		},
		{
			name:       "no reason yields no banner",
			ticket:     domain.Ticket{Priority: domain.TicketPriorityMedium},
			result:     &domain.TriageResult{Sentiment: domain.TriageSentimentNeutral, Risk: domain.TriageRiskLow},
			expected:   "",
			applicable: false,
		},
		{
			name:       "missing triage result still honors priority",
			ticket:     domain.Ticket{Priority: domain.TicketPriorityHigh},
			result:     nil,
			expected:   "Escalation: high priority",
			applicable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			banner, ok := EscalationReason(tt.ticket, tt.result)
			assert.Equal(t, tt.applicable, ok)
			assert.Equal(t, tt.expected, banner)
		})
	}
}

func TestEscalationReason_Idempotent(t *testing.T) {
	ticket := domain.Ticket{Priority: domain.TicketPriorityHigh}
	result := &domain.TriageResult{Sentiment: domain.TriageSentimentNegative, Risk: domain.TriageRiskHigh}

	first, _ := EscalationReason(ticket, result)
	second, _ := EscalationReason(ticket, result)
	assert.Equal(t, first, second)
	assert.Equal(t, UrgencyScore(ticket, result), UrgencyScore(ticket, result))
}
