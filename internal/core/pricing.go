package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, enabling
// shared query helpers inside and outside transactions.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PickPrice applies the override-then-default rule: a non-nil override
// wins, otherwise the product default applies.
func PickPrice(override *decimal.Decimal, defaultPrice decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return defaultPrice
}

// ResolvedPrice is the outcome of a price lookup for one bill line.
type ResolvedPrice struct {
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Overridden  bool            `json:"overridden"`
}

// PricingService resolves the unit price to charge a client for a
// product. Pure lookup — no side effects.
type PricingService interface {
	ResolveUnitPrice(ctx context.Context, adminID, clientID, productID int) (*ResolvedPrice, error)
}

type pricingService struct {
	pool *pgxpool.Pool
}

// NewPricingService constructs a PricingService backed by the given pool.
func NewPricingService(pool *pgxpool.Pool) PricingService {
	return &pricingService{pool: pool}
}

func (s *pricingService) ResolveUnitPrice(ctx context.Context, adminID, clientID, productID int) (*ResolvedPrice, error) {
	return resolveUnitPrice(ctx, s.pool, adminID, clientID, productID)
}

// resolveUnitPrice looks up the product and any client-specific
// override in one query. Runs against the pool or inside a bill
// transaction.
func resolveUnitPrice(ctx context.Context, q pgxQuerier, adminID, clientID, productID int) (*ResolvedPrice, error) {
	var (
		name          string
		defaultPrice  decimal.Decimal
		overridePrice *decimal.Decimal
	)
	err := q.QueryRow(ctx, `
		SELECT p.name, p.default_price, cpp.price
		FROM products p
		LEFT JOIN client_product_prices cpp
		       ON cpp.product_id = p.id AND cpp.client_id = $3 AND cpp.admin_id = $1
		WHERE p.id = $2 AND p.admin_id = $1 AND p.is_active = true
	`, adminID, productID, clientID).Scan(&name, &defaultPrice, &overridePrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundf("product %d", productID)
		}
		return nil, fmt.Errorf("failed to resolve price for product %d: %w", productID, err)
	}

	return &ResolvedPrice{
		ProductID:   productID,
		ProductName: name,
		UnitPrice:   PickPrice(overridePrice, defaultPrice),
		Overridden:  overridePrice != nil,
	}, nil
}
