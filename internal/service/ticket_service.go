package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/supportiq/helpdesk/internal/domain"
	"github.com/supportiq/helpdesk/internal/events"
	"github.com/supportiq/helpdesk/internal/knowledge"
	"github.com/supportiq/helpdesk/internal/observability"
	"github.com/supportiq/helpdesk/internal/repository"
	"github.com/supportiq/helpdesk/internal/triage"
	apperrors "github.com/supportiq/helpdesk/pkg/errorutil"
)

// ReplyGenerator produces generated customer-facing text. A nil generator
// degrades auto-resolution replies to the knowledge-base answer.
type ReplyGenerator interface {
	AutoReply(ctx context.Context, title, description string) (string, error)
	AgentDraft(ctx context.Context, ticket *domain.Ticket, messages []domain.TicketMessage) (string, error)
}

// TicketService coordinates ticket workflows: creation with synchronous
// triage and routing, conversation threads, closing, and the agent queue.
type TicketService struct {
	tickets    repository.TicketRepository
	messages   repository.TicketMessageRepository
	triage     repository.TriageRepository
	classifier triage.Classifier
	replies    ReplyGenerator
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	MessageRepo repository.TicketMessageRepository
	TriageRepo  repository.TriageRepository
	Classifier  triage.Classifier
	Replies     ReplyGenerator
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
}

// TicketUserFilter describes end-user listing filters.
type TicketUserFilter struct {
	Statuses    []domain.TicketStatus
	Priorities  []domain.TicketPriority
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// QueueEntry is one urgency-ranked entry of the agent queue.
type QueueEntry struct {
	Ticket     domain.Ticket
	Score      float64
	Escalation *string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		messages:   deps.MessageRepo,
		triage:     deps.TriageRepo,
		classifier: deps.Classifier,
		replies:    deps.Replies,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// CreateTicket creates a ticket, runs triage synchronously, applies the
// routing policy exactly once, and appends the resolution message when the
// ticket auto-resolves. Triage is never re-triggered for an existing ticket.
func (s *TicketService) CreateTicket(ctx context.Context, userID string, input TicketCreateInput) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		ExternalKey: generateTicketKey(),
		RequesterID: userID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		Priority:    domain.TicketPriorityMedium,
		Category:    domain.TriageCategoryGeneral,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    userActor(userID),
		Payload: events.TicketCreatedPayload{
			Priority: ticket.Priority,
			Title:    ticket.Title,
		},
	})

	result := s.classifier.Classify(ctx, ticket.Title, ticket.Description)
	result.TicketID = ticket.ID
	if err := s.triage.Create(ctx, &result); err != nil {
		return nil, err
	}

	newStatus := triage.Route(result)
	oldStatus := ticket.Status
	ticket.Status = newStatus
	ticket.Priority = result.Priority
	ticket.Category = result.Category
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	ticket.Triage = &result

	s.metrics.RecordTriage(string(result.Category), string(newStatus))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketTriaged,
		TicketID: ticket.ID,
		Actor:    systemActor(),
		Payload: events.TicketTriagedPayload{
			Category:   result.Category,
			Priority:   result.Priority,
			Risk:       result.Risk,
			Confidence: result.Confidence,
			RoutedTo:   newStatus,
		},
	})
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Actor:    systemActor(),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Comment:   "triage_routing",
		},
	})

	if newStatus == domain.TicketStatusAutoResolved {
		if err := s.appendResolutionMessage(ctx, ticket); err != nil {
			return nil, err
		}
	}
	return ticket, nil
}

// ListUserTickets returns paginated tickets for a requester with triage
// metadata attached.
func (s *TicketService) ListUserTickets(ctx context.Context, userID string, filter TicketUserFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{
		RequesterID: &userID,
		Statuses:    filter.Statuses,
		Priorities:  filter.Priorities,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	tickets, err := s.tickets.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	if err := s.attachTriage(ctx, tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// GetTicketForUser fetches a ticket ensuring ownership.
func (s *TicketService) GetTicketForUser(ctx context.Context, userID, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.RequesterID != userID {
		return nil, apperrors.NewForbidden("access denied")
	}
	s.attachSingleTriage(ctx, ticket)
	return ticket, nil
}

// GetThread returns the conversation for a ticket. Users see only their own
// tickets; agents see any.
func (s *TicketService) GetThread(ctx context.Context, role domain.Role, actorID, ticketID string) ([]domain.TicketMessage, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleUser && ticket.RequesterID != actorID {
		return nil, apperrors.NewForbidden("access denied")
	}
	return s.messages.ListByTicket(ctx, ticket.ID)
}

// AddReply appends a message to a ticket thread and applies the reply-driven
// status transitions: an agent reply hands the ticket back to the user, a
// user reply on a waiting ticket re-queues it for agents.
func (s *TicketService) AddReply(ctx context.Context, role domain.Role, actorID, ticketID, body string) (*domain.TicketMessage, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleUser && ticket.RequesterID != actorID {
		return nil, apperrors.NewForbidden("access denied")
	}
	if ticket.Status == domain.TicketStatusClosed {
		return nil, apperrors.NewConflict("ticket is closed", nil)
	}

	senderRole := domain.SenderRoleUser
	if role == domain.RoleAgent {
		senderRole = domain.SenderRoleAgent
	}
	msg := &domain.TicketMessage{
		TicketID:   ticket.ID,
		SenderRole: senderRole,
		SenderID:   &actorID,
		Body:       strings.TrimSpace(body),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketMessageAdded,
		TicketID: ticket.ID,
		Actor:    events.Actor{Role: senderRole, UserID: &actorID},
		Payload: events.TicketMessageAddedPayload{
			MessageID:   msg.ID,
			SenderRole:  msg.SenderRole,
			SenderID:    msg.SenderID,
			BodyPreview: stringPreview(msg.Body, 120),
		},
	})

	var next domain.TicketStatus
	switch {
	case role == domain.RoleAgent && ticket.Status == domain.TicketStatusPendingAgent:
		next = domain.TicketStatusWaitingForUser
	case role == domain.RoleUser && ticket.Status == domain.TicketStatusWaitingForUser:
		next = domain.TicketStatusPendingAgent
	}
	if next != "" {
		if err := s.transition(ctx, ticket, next, actorFor(role, actorID), "reply"); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

// CloseTicket closes a ticket. Users may close only their own tickets.
func (s *TicketService) CloseTicket(ctx context.Context, role domain.Role, actorID, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleUser && ticket.RequesterID != actorID {
		return nil, apperrors.NewForbidden("access denied")
	}
	if !isValidTransition(ticket.Status, domain.TicketStatusClosed) {
		return nil, apperrors.NewConflict("ticket cannot be closed in current status", map[string]any{
			"status": ticket.Status,
		})
	}
	now := time.Now()
	ticket.ClosedAt = &now
	if err := s.transition(ctx, ticket, domain.TicketStatusClosed, actorFor(role, actorID), "closed"); err != nil {
		return nil, err
	}
	return ticket, nil
}

// PendingQueue returns PENDING_AGENT tickets ranked by descending urgency
// score with escalation banners attached. The sort is stable so equal
// scores keep insertion order. Ranking happens over the full pending
// snapshot before the page is cut, so page 1 always holds the most urgent
// tickets. Tickets whose triage metadata is not yet persisted rank with
// all-default metadata rather than failing.
func (s *TicketService) PendingQueue(ctx context.Context, limit, offset int) ([]QueueEntry, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Statuses: []domain.TicketStatus{domain.TicketStatusPendingAgent},
	})
	if err != nil {
		return nil, err
	}
	if err := s.attachTriage(ctx, tickets); err != nil {
		return nil, err
	}

	triage.SortByUrgency(tickets)
	tickets = pageOf(tickets, limit, offset)

	entries := make([]QueueEntry, 0, len(tickets))
	for _, t := range tickets {
		entry := QueueEntry{
			Ticket: t,
			Score:  triage.UrgencyScore(t, t.Triage),
		}
		if reason, ok := triage.EscalationReason(t, t.Triage); ok {
			entry.Escalation = &reason
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *TicketService) appendResolutionMessage(ctx context.Context, ticket *domain.Ticket) error {
	body := s.resolutionBody(ctx, ticket)
	msg := &domain.TicketMessage{
		TicketID:   ticket.ID,
		SenderRole: domain.SenderRoleAI,
		Body:       body,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketMessageAdded,
		TicketID: ticket.ID,
		Actor:    systemActor(),
		Payload: events.TicketMessageAddedPayload{
			MessageID:   msg.ID,
			SenderRole:  msg.SenderRole,
			BodyPreview: stringPreview(msg.Body, 120),
		},
	})
	return nil
}

// resolutionBody prefers a generated reply and degrades to the knowledge
// base answer for the detected category. Generation failure is absorbed
// here, never surfaced.
func (s *TicketService) resolutionBody(ctx context.Context, ticket *domain.Ticket) string {
	if s.replies != nil {
		reply, err := s.replies.AutoReply(ctx, ticket.Title, ticket.Description)
		if err == nil && strings.TrimSpace(reply) != "" {
			return reply
		}
		if err != nil {
			s.logger.Warn("auto reply generation failed, using knowledge base answer",
				zap.String("ticket_id", ticket.ID), zap.Error(err))
		}
	}
	return knowledge.AnswerFor(ticket.Category)
}

// pageOf cuts one page out of an already ranked slice.
func pageOf(tickets []domain.Ticket, limit, offset int) []domain.Ticket {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(tickets) {
		return nil
	}
	end := offset + limit
	if end > len(tickets) {
		end = len(tickets)
	}
	return tickets[offset:end]
}

func (s *TicketService) getTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) transition(ctx context.Context, ticket *domain.Ticket, next domain.TicketStatus, actor events.Actor, comment string) error {
	oldStatus := ticket.Status
	ticket.Status = next
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Actor:    actor,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: next,
			Comment:   comment,
		},
	})
	return nil
}

func (s *TicketService) attachTriage(ctx context.Context, tickets []domain.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	ids := make([]string, 0, len(tickets))
	for i := range tickets {
		ids = append(ids, tickets[i].ID)
	}
	results, err := s.triage.MapByTickets(ctx, ids)
	if err != nil {
		return err
	}
	for i := range tickets {
		if result, ok := results[tickets[i].ID]; ok {
			r := result
			tickets[i].Triage = &r
		}
	}
	return nil
}

func (s *TicketService) attachSingleTriage(ctx context.Context, ticket *domain.Ticket) {
	result, err := s.triage.GetByTicket(ctx, ticket.ID)
	if err != nil {
		// absent metadata is tolerated everywhere downstream
		return
	}
	ticket.Triage = result
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func generateTicketKey() string {
	return "TCK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func userActor(userID string) events.Actor {
	return events.Actor{Role: domain.SenderRoleUser, UserID: &userID}
}

func systemActor() events.Actor {
	return events.Actor{Role: domain.SenderRoleAI}
}

func actorFor(role domain.Role, id string) events.Actor {
	if role == domain.RoleAgent {
		return events.Actor{Role: domain.SenderRoleAgent, UserID: &id}
	}
	return events.Actor{Role: domain.SenderRoleUser, UserID: &id}
}

// stringPreview truncates on rune boundaries so multi-byte text never
// yields invalid UTF-8 in event payloads.
func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusOpen:           {domain.TicketStatusPendingAgent, domain.TicketStatusAutoResolved},
	domain.TicketStatusPendingAgent:   {domain.TicketStatusWaitingForUser, domain.TicketStatusClosed},
	domain.TicketStatusWaitingForUser: {domain.TicketStatusPendingAgent, domain.TicketStatusClosed},
	domain.TicketStatusAutoResolved:   {domain.TicketStatusClosed},
	domain.TicketStatusClosed:         {},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
