package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ProductInput carries the product fields for create and update.
type ProductInput struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	ImageURL     string          `json:"image_url"`
	DefaultPrice decimal.Decimal `json:"default_price"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return Validationf("product name is required")
	}
	if in.DefaultPrice.IsNegative() {
		return Validationf("default price cannot be negative")
	}
	return nil
}

func validateOverrides(overrides []OverrideInput) error {
	for i, ov := range overrides {
		if ov.ClientID == 0 {
			return Validationf("override %d: client is required", i+1)
		}
		if ov.Price.IsNegative() {
			return Validationf("override %d: price cannot be negative", i+1)
		}
	}
	return nil
}

// ProductService manages the product catalog and per-client price
// overrides. Creating or editing a product and its overrides is one
// transaction so partial failures never leave a half-applied edit.
type ProductService interface {
	CreateProduct(ctx context.Context, adminID int, input ProductInput, overrides []OverrideInput) (*Product, error)
	// UpdateProduct replaces the product fields and reconciles the
	// incoming override set against the stored one via a three-way
	// diff (add / update / delete keyed by override id).
	UpdateProduct(ctx context.Context, adminID, productID int, input ProductInput, overrides []OverrideInput) (*Product, error)
	GetProduct(ctx context.Context, adminID, productID int) (*Product, error)
	GetProducts(ctx context.Context, adminID int) ([]Product, error)
	// DeleteProduct deactivates a product. Historical bill items keep
	// their product reference.
	DeleteProduct(ctx context.Context, adminID, productID int) error
}

type productService struct {
	pool *pgxpool.Pool
}

// NewProductService constructs a ProductService backed by the given pool.
func NewProductService(pool *pgxpool.Pool) ProductService {
	return &productService{pool: pool}
}

const productColumns = "id, admin_id, name, description, image_url, default_price, is_active, created_at"

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(&p.ID, &p.AdminID, &p.Name, &p.Description, &p.ImageURL,
		&p.DefaultPrice, &p.IsActive, &p.CreatedAt)
}

func (s *productService) CreateProduct(ctx context.Context, adminID int, input ProductInput, overrides []OverrideInput) (*Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := validateOverrides(overrides); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var p Product
	err = scanProduct(tx.QueryRow(ctx, `
		INSERT INTO products (admin_id, name, description, image_url, default_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+productColumns,
		adminID, input.Name, input.Description, input.ImageURL, input.DefaultPrice), &p)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	for _, ov := range overrides {
		var created PriceOverride
		err = tx.QueryRow(ctx, `
			INSERT INTO client_product_prices (admin_id, client_id, product_id, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id, admin_id, client_id, product_id, price`,
			adminID, ov.ClientID, p.ID, ov.Price,
		).Scan(&created.ID, &created.AdminID, &created.ClientID, &created.ProductID, &created.Price)
		if err != nil {
			return nil, fmt.Errorf("failed to create price override for client %d: %w", ov.ClientID, err)
		}
		p.Overrides = append(p.Overrides, created)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit product: %w", err)
	}
	return &p, nil
}

func (s *productService) UpdateProduct(ctx context.Context, adminID, productID int, input ProductInput, overrides []OverrideInput) (*Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := validateOverrides(overrides); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var p Product
	err = scanProduct(tx.QueryRow(ctx, `
		UPDATE products
		SET name = $3, description = $4, image_url = $5, default_price = $6
		WHERE admin_id = $1 AND id = $2 AND is_active = true
		RETURNING `+productColumns,
		adminID, productID, input.Name, input.Description, input.ImageURL, input.DefaultPrice), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundf("product %d", productID)
		}
		return nil, fmt.Errorf("failed to update product %d: %w", productID, err)
	}

	existing, err := fetchOverrides(ctx, tx, adminID, productID)
	if err != nil {
		return nil, err
	}

	diff := DiffOverrides(existing, overrides)
	for _, ov := range diff.ToAdd {
		if _, err := tx.Exec(ctx, `
			INSERT INTO client_product_prices (admin_id, client_id, product_id, price)
			VALUES ($1, $2, $3, $4)`,
			adminID, ov.ClientID, productID, ov.Price); err != nil {
			return nil, fmt.Errorf("failed to add price override for client %d: %w", ov.ClientID, err)
		}
	}
	for _, ov := range diff.ToUpdate {
		if _, err := tx.Exec(ctx, `
			UPDATE client_product_prices SET client_id = $3, price = $4
			WHERE admin_id = $1 AND id = $2`,
			adminID, ov.ID, ov.ClientID, ov.Price); err != nil {
			return nil, fmt.Errorf("failed to update price override %d: %w", ov.ID, err)
		}
	}
	for _, ov := range diff.ToDelete {
		if _, err := tx.Exec(ctx,
			"DELETE FROM client_product_prices WHERE admin_id = $1 AND id = $2",
			adminID, ov.ID); err != nil {
			return nil, fmt.Errorf("failed to delete price override %d: %w", ov.ID, err)
		}
	}

	p.Overrides, err = fetchOverrides(ctx, tx, adminID, productID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit product update: %w", err)
	}
	return &p, nil
}

func (s *productService) GetProduct(ctx context.Context, adminID, productID int) (*Product, error) {
	var p Product
	err := scanProduct(s.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE admin_id = $1 AND id = $2 AND is_active = true`,
		adminID, productID), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundf("product %d", productID)
		}
		return nil, fmt.Errorf("failed to fetch product %d: %w", productID, err)
	}

	p.Overrides, err = fetchOverrides(ctx, s.pool, adminID, productID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *productService) GetProducts(ctx context.Context, adminID int) ([]Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE admin_id = $1 AND is_active = true
		ORDER BY name`,
		adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *productService) DeleteProduct(ctx context.Context, adminID, productID int) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE products SET is_active = false WHERE admin_id = $1 AND id = $2 AND is_active = true",
		adminID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return NotFoundf("product %d", productID)
	}
	return nil
}

// fetchOverrides returns the stored overrides for a product in id order.
type pgxRowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func fetchOverrides(ctx context.Context, q pgxRowQuerier, adminID, productID int) ([]PriceOverride, error) {
	rows, err := q.Query(ctx, `
		SELECT id, admin_id, client_id, product_id, price
		FROM client_product_prices
		WHERE admin_id = $1 AND product_id = $2
		ORDER BY id`,
		adminID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query price overrides: %w", err)
	}
	defer rows.Close()

	var overrides []PriceOverride
	for rows.Next() {
		var ov PriceOverride
		if err := rows.Scan(&ov.ID, &ov.AdminID, &ov.ClientID, &ov.ProductID, &ov.Price); err != nil {
			return nil, fmt.Errorf("failed to scan price override: %w", err)
		}
		overrides = append(overrides, ov)
	}
	return overrides, rows.Err()
}
