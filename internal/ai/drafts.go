package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/supportiq/helpdesk/internal/domain"
)

// Generator is the subset of Client used by the reply generator.
type Generator interface {
	Generate(ctx context.Context, system, user string, temperature float64) (string, error)
}

// replyTemperature allows mild variation in customer-facing prose, unlike
// the deterministic triage call.
const replyTemperature = 0.3

const autoReplySystemPrompt = `You are a professional customer support agent.
Write a polite, clear, short resolution response.
Do not mention internal systems.
Keep it helpful and concise.`

const agentDraftSystemPrompt = `You are an expert customer support assistant helping a human agent.
Generate a professional reply draft.
Be clear, polite, and helpful.
Do NOT mention you are AI.
Keep it concise.`

// ReplyGenerator produces customer-facing text: the resolution message for
// auto-resolved tickets and reply drafts for agents.
type ReplyGenerator struct {
	gen Generator
}

// NewReplyGenerator constructs the generator.
func NewReplyGenerator(gen Generator) *ReplyGenerator {
	return &ReplyGenerator{gen: gen}
}

// AutoReply generates the resolution response appended to auto-resolved
// tickets.
func (g *ReplyGenerator) AutoReply(ctx context.Context, title, description string) (string, error) {
	user := fmt.Sprintf("Title: %s\nDescription: %s", title, description)
	return g.gen.Generate(ctx, autoReplySystemPrompt, user, replyTemperature)
}

// AgentDraft generates a reply draft for an agent from the conversation
// history. The draft is returned to the caller, never persisted.
func (g *ReplyGenerator) AgentDraft(ctx context.Context, ticket *domain.Ticket, messages []domain.TicketMessage) (string, error) {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.SenderRole, msg.Body))
	}
	user := fmt.Sprintf("Ticket Title: %s\n\nConversation:\n%s\n\nWrite a reply draft for the AGENT.",
		ticket.Title, strings.Join(lines, "\n"))
	return g.gen.Generate(ctx, agentDraftSystemPrompt, user, replyTemperature)
}
