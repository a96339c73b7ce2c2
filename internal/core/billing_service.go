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

// ValidateBillItems checks the line items of a prospective bill. It
// runs before any persistence call: the list must be non-empty, every
// quantity positive, every explicit price non-negative, temporary
// lines must carry a name, and catalog lines a product reference.
func ValidateBillItems(items []BillItemInput) error {
	if len(items) == 0 {
		return Validationf("bill must have at least one item")
	}
	for i, item := range items {
		if !item.Quantity.IsPositive() {
			return Validationf("item %d: quantity must be positive", i+1)
		}
		if item.IsTemp {
			if strings.TrimSpace(item.Name) == "" {
				return Validationf("item %d: temporary item requires a name", i+1)
			}
			if item.UnitPrice.IsNegative() {
				return Validationf("item %d: price cannot be negative", i+1)
			}
		} else if item.ProductID == 0 {
			return Validationf("item %d: product is required", i+1)
		}
	}
	return nil
}

// BillTotal sums quantity × unit price over resolved bill items using
// exact decimal arithmetic. Rounding to two decimals happens only at
// presentation time.
func BillTotal(items []BillItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Quantity.Mul(item.UnitPrice))
	}
	return total
}

// BillingService creates and reads bills. Creating a bill and applying
// its effect on the client balance is one transaction: both writes
// commit or neither does.
type BillingService interface {
	CreateBill(ctx context.Context, adminID, clientID int, items []BillItemInput) (*Bill, error)
	GetBill(ctx context.Context, adminID, billID int) (*Bill, error)
	// GetBills returns bills for the admin, newest first. Pass
	// clientID = 0 for all clients.
	GetBills(ctx context.Context, adminID, clientID int) ([]Bill, error)
}

type billingService struct {
	pool *pgxpool.Pool
}

// NewBillingService constructs a BillingService backed by the given pool.
func NewBillingService(pool *pgxpool.Pool) BillingService {
	return &billingService{pool: pool}
}

func (s *billingService) CreateBill(ctx context.Context, adminID, clientID int, items []BillItemInput) (*Bill, error) {
	if err := ValidateBillItems(items); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the client row so concurrent bills and payments for the same
	// client serialize on the balance update.
	var previousBalance decimal.Decimal
	var clientName string
	err = tx.QueryRow(ctx, `
		SELECT balance, name FROM clients
		WHERE admin_id = $1 AND id = $2 AND archived_at IS NULL
		FOR UPDATE`,
		adminID, clientID).Scan(&previousBalance, &clientName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundf("client %d", clientID)
		}
		return nil, fmt.Errorf("failed to lock client %d: %w", clientID, err)
	}

	// Resolve each line. Temporary items bypass the catalog entirely;
	// catalog items get override-then-default pricing.
	resolved := make([]BillItem, 0, len(items))
	for i, input := range items {
		item := BillItem{
			LineNumber: i + 1,
			Quantity:   input.Quantity,
		}
		if input.IsTemp {
			item.IsTemp = true
			item.Name = input.Name
			item.UnitPrice = input.UnitPrice
		} else {
			rp, err := resolveUnitPrice(ctx, tx, adminID, clientID, input.ProductID)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i+1, err)
			}
			productID := input.ProductID
			item.ProductID = &productID
			item.Name = rp.ProductName
			item.UnitPrice = rp.UnitPrice
		}
		item.LineTotal = item.Quantity.Mul(item.UnitPrice)
		resolved = append(resolved, item)
	}

	totalAmount := BillTotal(resolved)
	newBalance := previousBalance.Add(totalAmount)

	bill := &Bill{
		AdminID:         adminID,
		ClientID:        clientID,
		ClientName:      clientName,
		TotalAmount:     totalAmount,
		PreviousBalance: previousBalance,
		NewBalance:      newBalance,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO bills (admin_id, client_id, total_amount, previous_balance, new_balance)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		adminID, clientID, totalAmount, previousBalance, newBalance,
	).Scan(&bill.ID, &bill.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bill: %w", err)
	}

	for i := range resolved {
		item := &resolved[i]
		item.BillID = bill.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO bill_items (bill_id, line_number, product_id, name, is_temp, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`,
			bill.ID, item.LineNumber, item.ProductID, item.Name, item.IsTemp,
			item.Quantity, item.UnitPrice, item.LineTotal,
		).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert bill item %d: %w", item.LineNumber, err)
		}
	}
	bill.Items = resolved

	tag, err := tx.Exec(ctx,
		"UPDATE clients SET balance = balance + $1 WHERE admin_id = $2 AND id = $3",
		totalAmount, adminID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to apply bill to balance: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return nil, fmt.Errorf("balance update touched %d rows for client %d: %w",
			tag.RowsAffected(), clientID, ErrInconsistentState)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit bill: %w", err)
	}
	return bill, nil
}

func (s *billingService) GetBill(ctx context.Context, adminID, billID int) (*Bill, error) {
	var b Bill
	err := s.pool.QueryRow(ctx, `
		SELECT b.id, b.admin_id, b.client_id, c.name, b.total_amount, b.previous_balance, b.new_balance, b.created_at
		FROM bills b
		JOIN clients c ON c.id = b.client_id
		WHERE b.admin_id = $1 AND b.id = $2`,
		adminID, billID,
	).Scan(&b.ID, &b.AdminID, &b.ClientID, &b.ClientName, &b.TotalAmount,
		&b.PreviousBalance, &b.NewBalance, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundf("bill %d", billID)
		}
		return nil, fmt.Errorf("failed to fetch bill %d: %w", billID, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, bill_id, line_number, product_id, name, is_temp, quantity, unit_price, line_total
		FROM bill_items
		WHERE bill_id = $1
		ORDER BY line_number`,
		billID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bill items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item BillItem
		if err := rows.Scan(&item.ID, &item.BillID, &item.LineNumber, &item.ProductID,
			&item.Name, &item.IsTemp, &item.Quantity, &item.UnitPrice, &item.LineTotal); err != nil {
			return nil, fmt.Errorf("failed to scan bill item: %w", err)
		}
		b.Items = append(b.Items, item)
	}
	return &b, rows.Err()
}

func (s *billingService) GetBills(ctx context.Context, adminID, clientID int) ([]Bill, error) {
	q := `
		SELECT b.id, b.admin_id, b.client_id, c.name, b.total_amount, b.previous_balance, b.new_balance, b.created_at
		FROM bills b
		JOIN clients c ON c.id = b.client_id
		WHERE b.admin_id = $1`
	args := []any{adminID}
	if clientID != 0 {
		args = append(args, clientID)
		q += fmt.Sprintf(" AND b.client_id = $%d", len(args))
	}
	q += " ORDER BY b.created_at DESC, b.id DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var bills []Bill
	for rows.Next() {
		var b Bill
		if err := rows.Scan(&b.ID, &b.AdminID, &b.ClientID, &b.ClientName, &b.TotalAmount,
			&b.PreviousBalance, &b.NewBalance, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}
