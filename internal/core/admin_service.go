package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminService provides administrator account lookup.
type AdminService interface {
	// GetByUsername finds an active administrator by username.
	GetByUsername(ctx context.Context, username string) (*Admin, error)

	// GetByID returns an administrator by primary key.
	GetByID(ctx context.Context, adminID int) (*Admin, error)
}

type adminService struct {
	pool *pgxpool.Pool
}

// NewAdminService constructs an AdminService backed by PostgreSQL.
func NewAdminService(pool *pgxpool.Pool) AdminService {
	return &adminService{pool: pool}
}

func (s *adminService) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	a := &Admin{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, is_active, created_at
		FROM admins
		WHERE username = $1 AND is_active = true
		LIMIT 1`,
		username,
	).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.IsActive, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("admin %q not found: %w", username, err)
	}
	return a, nil
}

func (s *adminService) GetByID(ctx context.Context, adminID int) (*Admin, error) {
	a := &Admin{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, is_active, created_at
		FROM admins
		WHERE id = $1`,
		adminID,
	).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.IsActive, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("admin id=%d not found: %w", adminID, err)
	}
	return a, nil
}
