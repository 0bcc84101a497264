package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/supportiq/helpdesk/internal/api/dto"
	"github.com/supportiq/helpdesk/internal/service"
)

// AgentHandler exposes the agent-facing queue and drafting endpoints.
type AgentHandler struct {
	tickets *service.TicketService
	drafts  *service.DraftService
}

// NewAgentHandler constructs handler.
func NewAgentHandler(tickets *service.TicketService, drafts *service.DraftService) *AgentHandler {
	return &AgentHandler{tickets: tickets, drafts: drafts}
}

// PendingQueue GET /tickets/agent/pending.
// Entries come back ranked by urgency, most urgent first.
func (h *AgentHandler) PendingQueue(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)

	entries, err := h.tickets.PendingQueue(c.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.QueueEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.QueueEntryResponse{
			Ticket:     ticketSummary(&entries[i].Ticket),
			Score:      entries[i].Score,
			Escalation: entries[i].Escalation,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// GenerateDraft POST /tickets/:id/generate-draft.
func (h *AgentHandler) GenerateDraft(c *fiber.Ctx) error {
	draft, err := h.drafts.GenerateDraft(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DraftResponse{Draft: draft}})
}
