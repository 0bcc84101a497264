package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportiq/helpdesk/internal/domain"
)

type recordingGenerator struct {
	system      string
	user        string
	temperature float64
	response    string
}

func (g *recordingGenerator) Generate(_ context.Context, system, user string, temperature float64) (string, error) {
	g.system = system
	g.user = user
	g.temperature = temperature
	return g.response, nil
}

func TestReplyGenerator_AutoReply(t *testing.T) {
	gen := &recordingGenerator{response: "We have resolved your issue."}
	replies := NewReplyGenerator(gen)

	got, err := replies.AutoReply(context.Background(), "Refund request", "Charged twice for one order")
	require.NoError(t, err)
	assert.Equal(t, "We have resolved your issue.", got)

	assert.Equal(t, autoReplySystemPrompt, gen.system)
	assert.Equal(t, "Title: Refund request\nDescription: Charged twice for one order", gen.user)
	assert.Equal(t, replyTemperature, gen.temperature)
}

func TestReplyGenerator_AgentDraft(t *testing.T) {
	gen := &recordingGenerator{response: "Draft reply."}
	replies := NewReplyGenerator(gen)

	agentID := "agent-1"
	ticket := &domain.Ticket{Title: "Cannot log in"}
	messages := []domain.TicketMessage{
		{SenderRole: domain.SenderRoleUser, Body: "I cannot log in."},
		{SenderRole: domain.SenderRoleAgent, SenderID: &agentID, Body: "Did you try a reset?"},
		{SenderRole: domain.SenderRoleUser, Body: "Yes, no email arrived."},
	}

	got, err := replies.AgentDraft(context.Background(), ticket, messages)
	require.NoError(t, err)
	assert.Equal(t, "Draft reply.", got)

	assert.Equal(t, agentDraftSystemPrompt, gen.system)
	assert.Equal(t,
		"Ticket Title: Cannot log in\n\nConversation:\nUSER: I cannot log in.\nAGENT: Did you try a reset?\nUSER: Yes, no email arrived.\n\nWrite a reply draft for the AGENT.",
		gen.user)
	assert.Equal(t, replyTemperature, gen.temperature)
}
