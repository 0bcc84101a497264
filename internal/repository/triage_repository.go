package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supportiq/helpdesk/internal/domain"
)

// TriageRepository persists triage results linked to tickets.
type TriageRepository interface {
	Create(ctx context.Context, result *domain.TriageResult) error
	GetByTicket(ctx context.Context, ticketID string) (*domain.TriageResult, error)
	MapByTickets(ctx context.Context, ticketIDs []string) (map[string]domain.TriageResult, error)
}

type triageRepository struct {
	pool *pgxpool.Pool
}

// NewTriageRepository instantiates repository.
func NewTriageRepository(pool *pgxpool.Pool) TriageRepository {
	return &triageRepository{pool: pool}
}

func (r *triageRepository) Create(ctx context.Context, result *domain.TriageResult) error {
	if result.TicketID == "" {
		return errors.New("triage result requires a ticket id")
	}
	const query = `
        INSERT INTO triage_results (ticket_id, category, priority, sentiment, confidence, risk, ai_summary)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		result.TicketID,
		result.Category,
		result.Priority,
		result.Sentiment,
		result.Confidence,
		result.Risk,
		result.Summary,
	).Scan(&result.ID, &result.CreatedAt)
}

func (r *triageRepository) GetByTicket(ctx context.Context, ticketID string) (*domain.TriageResult, error) {
	const query = `
        SELECT id, ticket_id, category, priority, sentiment, confidence, risk, ai_summary, created_at
        FROM triage_results WHERE ticket_id=$1`

	var result domain.TriageResult
	if err := r.pool.QueryRow(ctx, query, ticketID).Scan(
		&result.ID,
		&result.TicketID,
		&result.Category,
		&result.Priority,
		&result.Sentiment,
		&result.Confidence,
		&result.Risk,
		&result.Summary,
		&result.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *triageRepository) MapByTickets(ctx context.Context, ticketIDs []string) (map[string]domain.TriageResult, error) {
	results := make(map[string]domain.TriageResult, len(ticketIDs))
	if len(ticketIDs) == 0 {
		return results, nil
	}

	placeholders := make([]string, len(ticketIDs))
	args := make([]any, len(ticketIDs))
	for i, id := range ticketIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`
        SELECT id, ticket_id, category, priority, sentiment, confidence, risk, ai_summary, created_at
        FROM triage_results WHERE ticket_id IN (%s)`, strings.Join(placeholders, ","))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var result domain.TriageResult
		if err := rows.Scan(
			&result.ID,
			&result.TicketID,
			&result.Category,
			&result.Priority,
			&result.Sentiment,
			&result.Confidence,
			&result.Risk,
			&result.Summary,
			&result.CreatedAt,
		); err != nil {
			return nil, err
		}
		results[result.TicketID] = result
	}
	return results, rows.Err()
}
