package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// BalanceDrift describes a client whose stored balance disagrees with
// the balance recomputed from its full bill and payment history.
type BalanceDrift struct {
	ClientID   int             `json:"client_id"`
	ClientName string          `json:"client_name"`
	Stored     decimal.Decimal `json:"stored"`
	Computed   decimal.Decimal `json:"computed"`
	Drift      decimal.Decimal `json:"drift"` // stored − computed
}

// AuditService verifies the balance invariant: for every client,
// stored balance equals the sum of bill totals minus the sum of
// payments. With transactional writes this should never report drift;
// it exists as a production integrity check and a test oracle.
type AuditService interface {
	AuditBalances(ctx context.Context, adminID int) ([]BalanceDrift, error)
}

type auditService struct {
	pool *pgxpool.Pool
}

// NewAuditService constructs an AuditService backed by the given pool.
func NewAuditService(pool *pgxpool.Pool) AuditService {
	return &auditService{pool: pool}
}

func (s *auditService) AuditBalances(ctx context.Context, adminID int) ([]BalanceDrift, error) {
	// Archived clients are audited too: their history is retained and
	// their stored balance must still reconcile.
	rows, err := s.pool.Query(ctx, `
		SELECT c.id, c.name, c.balance,
		       COALESCE(b.total, 0) - COALESCE(p.total, 0) AS computed
		FROM clients c
		LEFT JOIN (
		    SELECT client_id, SUM(total_amount) AS total
		    FROM bills WHERE admin_id = $1 GROUP BY client_id
		) b ON b.client_id = c.id
		LEFT JOIN (
		    SELECT client_id, SUM(amount) AS total
		    FROM income_entries WHERE admin_id = $1 GROUP BY client_id
		) p ON p.client_id = c.id
		WHERE c.admin_id = $1
		ORDER BY c.id`,
		adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance audit: %w", err)
	}
	defer rows.Close()

	var drifts []BalanceDrift
	for rows.Next() {
		var d BalanceDrift
		if err := rows.Scan(&d.ClientID, &d.ClientName, &d.Stored, &d.Computed); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		if !d.Stored.Equal(d.Computed) {
			d.Drift = d.Stored.Sub(d.Computed)
			drifts = append(drifts, d)
		}
	}
	return drifts, rows.Err()
}
