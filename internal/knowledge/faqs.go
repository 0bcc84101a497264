// Package knowledge holds the static FAQ entries used to answer
// auto-resolved tickets when no generated reply is available.
package knowledge

import "github.com/supportiq/helpdesk/internal/domain"

// Entry pairs a category with its canned answer.
type Entry struct {
	Category domain.TriageCategory
	Question string
	Answer   string
}

// FallbackAnswer is returned when no entry matches the detected category.
const FallbackAnswer = "Thank you for contacting support. An agent will assist you shortly."

var entries = []Entry{
	{
		Category: domain.TriageCategoryBilling,
		Question: "Payment failed",
		Answer:   "Please check your payment method or try again. If the issue persists, we can assist with a refund.",
	},
	{
		Category: domain.TriageCategoryAuth,
		Question: "Password reset",
		Answer:   "You can reset your password using the 'Forgot Password' option on the login page.",
	},
	{
		Category: domain.TriageCategoryGeneral,
		Question: "Support hours",
		Answer:   "Our support team is available 24/7 to assist you.",
	},
}

// AnswerFor returns the canned answer for the given category, or
// FallbackAnswer when the category has no entry.
func AnswerFor(category domain.TriageCategory) string {
	for _, entry := range entries {
		if entry.Category == category {
			return entry.Answer
		}
	}
	return FallbackAnswer
}
