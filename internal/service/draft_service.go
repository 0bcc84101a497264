package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/supportiq/helpdesk/internal/knowledge"
	"github.com/supportiq/helpdesk/internal/repository"
	apperrors "github.com/supportiq/helpdesk/pkg/errorutil"
)

// DraftService generates reply drafts for agents from the conversation
// history. Drafts are returned to the caller and never persisted.
type DraftService struct {
	tickets  repository.TicketRepository
	messages repository.TicketMessageRepository
	replies  ReplyGenerator
	logger   *zap.Logger
}

// NewDraftService creates the service. Replies may be nil when generation
// is disabled; drafts then fall back to the knowledge-base answer.
func NewDraftService(tickets repository.TicketRepository, messages repository.TicketMessageRepository, replies ReplyGenerator, logger *zap.Logger) *DraftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftService{tickets: tickets, messages: messages, replies: replies, logger: logger}
}

// GenerateDraft builds a reply draft for the given ticket.
func (s *DraftService) GenerateDraft(ctx context.Context, ticketID string) (string, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return "", apperrors.MapError(err)
	}

	msgs, err := s.messages.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return "", apperrors.MapError(err)
	}

	if s.replies != nil {
		draft, err := s.replies.AgentDraft(ctx, ticket, msgs)
		if err == nil && strings.TrimSpace(draft) != "" {
			return draft, nil
		}
		if err != nil {
			s.logger.Warn("agent draft generation failed, using knowledge base answer",
				zap.String("ticket_id", ticket.ID), zap.Error(err))
		}
	}
	return knowledge.AnswerFor(ticket.Category), nil
}
