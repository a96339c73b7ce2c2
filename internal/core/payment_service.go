package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PaymentService records income entries. Like bill creation, recording
// a payment and decreasing the client balance is one transaction.
type PaymentService interface {
	RecordPayment(ctx context.Context, adminID, clientID int, amount decimal.Decimal, description string, entryDate time.Time) (*IncomeEntry, error)
	// GetPayments returns income entries for the admin, newest entry
	// date first. Pass clientID = 0 for all clients.
	GetPayments(ctx context.Context, adminID, clientID int) ([]IncomeEntry, error)
}

type paymentService struct {
	pool *pgxpool.Pool
}

// NewPaymentService constructs a PaymentService backed by the given pool.
func NewPaymentService(pool *pgxpool.Pool) PaymentService {
	return &paymentService{pool: pool}
}

func (s *paymentService) RecordPayment(ctx context.Context, adminID, clientID int, amount decimal.Decimal, description string, entryDate time.Time) (*IncomeEntry, error) {
	if !amount.IsPositive() {
		return nil, Validationf("payment amount must be positive")
	}
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var clientName string
	err = tx.QueryRow(ctx, `
		SELECT name FROM clients
		WHERE admin_id = $1 AND id = $2 AND archived_at IS NULL
		FOR UPDATE`,
		adminID, clientID).Scan(&clientName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundf("client %d", clientID)
		}
		return nil, fmt.Errorf("failed to lock client %d: %w", clientID, err)
	}

	entry := &IncomeEntry{
		AdminID:     adminID,
		ClientID:    clientID,
		ClientName:  clientName,
		Amount:      amount,
		Description: description,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO income_entries (admin_id, client_id, amount, description, entry_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, entry_date, created_at`,
		adminID, clientID, amount, description, entryDate,
	).Scan(&entry.ID, &entry.EntryDate, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert income entry: %w", err)
	}

	tag, err := tx.Exec(ctx,
		"UPDATE clients SET balance = balance - $1 WHERE admin_id = $2 AND id = $3",
		amount, adminID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to apply payment to balance: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return nil, fmt.Errorf("balance update touched %d rows for client %d: %w",
			tag.RowsAffected(), clientID, ErrInconsistentState)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}
	return entry, nil
}

func (s *paymentService) GetPayments(ctx context.Context, adminID, clientID int) ([]IncomeEntry, error) {
	q := `
		SELECT e.id, e.admin_id, e.client_id, c.name, e.amount, e.description, e.entry_date, e.created_at
		FROM income_entries e
		JOIN clients c ON c.id = e.client_id
		WHERE e.admin_id = $1`
	args := []any{adminID}
	if clientID != 0 {
		args = append(args, clientID)
		q += fmt.Sprintf(" AND e.client_id = $%d", len(args))
	}
	q += " ORDER BY e.entry_date DESC, e.id DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query income entries: %w", err)
	}
	defer rows.Close()

	var entries []IncomeEntry
	for rows.Next() {
		var e IncomeEntry
		if err := rows.Scan(&e.ID, &e.AdminID, &e.ClientID, &e.ClientName,
			&e.Amount, &e.Description, &e.EntryDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan income entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
