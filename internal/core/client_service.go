package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DeletePolicy controls what happens to a client's history when the
// client is deleted. The original behavior left bills and payments
// orphaned; here the choice is explicit and configurable.
type DeletePolicy string

const (
	// DeleteArchive soft-deletes the client: the row is kept with
	// archived_at set and all bills, payments, and overrides survive.
	DeleteArchive DeletePolicy = "archive"
	// DeleteCascade removes the client together with its bills,
	// payments, and price overrides.
	DeleteCascade DeletePolicy = "cascade"
)

// ClientService manages client accounts. All operations are scoped to
// an explicit administrator id.
type ClientService interface {
	CreateClient(ctx context.Context, adminID int, name, email string) (*Client, error)
	GetClient(ctx context.Context, adminID, clientID int) (*Client, error)
	GetClients(ctx context.Context, adminID int) ([]Client, error)
	// RecentClients returns the most recently created active clients,
	// newest first, for the dashboard.
	RecentClients(ctx context.Context, adminID, limit int) ([]Client, error)
	// DeleteClient removes or archives a client per the configured policy.
	DeleteClient(ctx context.Context, adminID, clientID int) error
}

type clientService struct {
	pool   *pgxpool.Pool
	policy DeletePolicy
}

// NewClientService constructs a ClientService with the given deletion policy.
func NewClientService(pool *pgxpool.Pool, policy DeletePolicy) ClientService {
	return &clientService{pool: pool, policy: policy}
}

const clientColumns = "id, admin_id, name, email, balance, archived_at, created_at"

func scanClient(row pgx.Row, c *Client) error {
	return row.Scan(&c.ID, &c.AdminID, &c.Name, &c.Email, &c.Balance, &c.ArchivedAt, &c.CreatedAt)
}

func (s *clientService) CreateClient(ctx context.Context, adminID int, name, email string) (*Client, error) {
	if strings.TrimSpace(name) == "" {
		return nil, Validationf("client name is required")
	}

	var c Client
	err := scanClient(s.pool.QueryRow(ctx, `
		INSERT INTO clients (admin_id, name, email, balance)
		VALUES ($1, $2, $3, 0)
		RETURNING `+clientColumns,
		adminID, name, email), &c)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &c, nil
}

func (s *clientService) GetClient(ctx context.Context, adminID, clientID int) (*Client, error) {
	var c Client
	err := scanClient(s.pool.QueryRow(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE admin_id = $1 AND id = $2 AND archived_at IS NULL`,
		adminID, clientID), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundf("client %d", clientID)
		}
		return nil, fmt.Errorf("failed to fetch client %d: %w", clientID, err)
	}
	return &c, nil
}

func (s *clientService) GetClients(ctx context.Context, adminID int) ([]Client, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE admin_id = $1 AND archived_at IS NULL
		ORDER BY name`,
		adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		if err := scanClient(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (s *clientService) RecentClients(ctx context.Context, adminID, limit int) ([]Client, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE admin_id = $1 AND archived_at IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT $2`,
		adminID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent clients: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		if err := scanClient(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (s *clientService) DeleteClient(ctx context.Context, adminID, clientID int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		"SELECT true FROM clients WHERE admin_id = $1 AND id = $2 AND archived_at IS NULL",
		adminID, clientID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NotFoundf("client %d", clientID)
		}
		return fmt.Errorf("failed to fetch client %d: %w", clientID, err)
	}

	switch s.policy {
	case DeleteCascade:
		for _, q := range []string{
			"DELETE FROM bill_items WHERE bill_id IN (SELECT id FROM bills WHERE admin_id = $1 AND client_id = $2)",
			"DELETE FROM bills WHERE admin_id = $1 AND client_id = $2",
			"DELETE FROM income_entries WHERE admin_id = $1 AND client_id = $2",
			"DELETE FROM client_product_prices WHERE admin_id = $1 AND client_id = $2",
			"DELETE FROM clients WHERE admin_id = $1 AND id = $2",
		} {
			if _, err := tx.Exec(ctx, q, adminID, clientID); err != nil {
				return fmt.Errorf("failed to cascade-delete client %d: %w", clientID, err)
			}
		}
	default: // DeleteArchive
		if _, err := tx.Exec(ctx,
			"UPDATE clients SET archived_at = NOW() WHERE admin_id = $1 AND id = $2",
			adminID, clientID); err != nil {
			return fmt.Errorf("failed to archive client %d: %w", clientID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit client deletion: %w", err)
	}
	return nil
}
