package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supportiq/helpdesk/internal/domain"
)

func TestAnswerFor(t *testing.T) {
	tests := []struct {
		name     string
		category domain.TriageCategory
		expected string
	}{
		{
			name:     "billing",
			category: domain.TriageCategoryBilling,
			expected: "Please check your payment method or try again. If the issue persists, we can assist with a refund.",
		},
		{
			name:     "auth",
			category: domain.TriageCategoryAuth,
			expected: "You can reset your password using the 'Forgot Password' option on the login page.",
		},
		{
			name:     "general",
			category: domain.TriageCategoryGeneral,
			expected: "Our support team is available 24/7 to assist you.",
		},
		{
			name:     "category without entry falls back",
			category: domain.TriageCategoryTechnical,
			expected: FallbackAnswer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AnswerFor(tt.category))
		})
	}
}
