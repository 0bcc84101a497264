package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supportiq/helpdesk/internal/domain"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		risk       domain.TriageRisk
		expected   domain.TicketStatus
	}{
		{"high confidence low risk auto resolves", 0.9, domain.TriageRiskLow, domain.TicketStatusAutoResolved},
		{"threshold is inclusive", 0.85, domain.TriageRiskLow, domain.TicketStatusAutoResolved},
		{"high confidence but risky goes to agent", 0.9, domain.TriageRiskHigh, domain.TicketStatusPendingAgent},
		{"medium risk goes to agent", 0.99, domain.TriageRiskMedium, domain.TicketStatusPendingAgent},
		{"low confidence goes to agent", 0.5, domain.TriageRiskLow, domain.TicketStatusPendingAgent},
		{"just below threshold goes to agent", 0.8499, domain.TriageRiskLow, domain.TicketStatusPendingAgent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Route(domain.TriageResult{Confidence: tt.confidence, Risk: tt.risk})
			assert.Equal(t, tt.expected, got)
		})
	}
}
