package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a billed customer account, scoped to an administrator.
// Balance is the stored running total: sum of bill totals minus sum of
// payments. Positive means the client owes money.
type Client struct {
	ID         int             `json:"id"`
	AdminID    int             `json:"admin_id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Balance    decimal.Decimal `json:"balance"`
	ArchivedAt *time.Time      `json:"archived_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Product is a catalog item with a default unit price. Per-client
// pricing is layered on top via PriceOverride.
type Product struct {
	ID           int             `json:"id"`
	AdminID      int             `json:"admin_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	ImageURL     string          `json:"image_url"`
	DefaultPrice decimal.Decimal `json:"default_price"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	Overrides    []PriceOverride `json:"overrides,omitempty"`
}

// PriceOverride is a client-specific unit price for a product. At most
// one override exists per (client, product) pair; absence means the
// product's default price applies.
type PriceOverride struct {
	ID        int             `json:"id"`
	AdminID   int             `json:"admin_id"`
	ClientID  int             `json:"client_id"`
	ProductID int             `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
}

// OverrideInput is an incoming override row when creating or editing a
// product. ID zero means the override does not exist yet.
type OverrideInput struct {
	ID       int             `json:"id,omitempty"`
	ClientID int             `json:"client_id"`
	Price    decimal.Decimal `json:"price"`
}

// Bill is an immutable charge against a client. PreviousBalance and
// NewBalance are captured at creation time so the bill preview and the
// share message can show the balance transition without re-reading the
// client row.
type Bill struct {
	ID              int             `json:"id"`
	AdminID         int             `json:"admin_id"`
	ClientID        int             `json:"client_id"`
	ClientName      string          `json:"client_name,omitempty"` // joined from clients
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	Items           []BillItem      `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

// BillItem is one line on a bill. Catalog lines reference a product and
// carry the resolved unit price; temporary lines (IsTemp) carry an
// inline name and price and never touch the catalog.
type BillItem struct {
	ID         int             `json:"id"`
	BillID     int             `json:"bill_id"`
	LineNumber int             `json:"line_number"`
	ProductID  *int            `json:"product_id,omitempty"`
	Name       string          `json:"name"`
	IsTemp     bool            `json:"is_temp"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// BillItemInput is used when creating a bill. For catalog lines set
// ProductID; the unit price is resolved (override, then default). For
// temporary lines set IsTemp with Name and UnitPrice — temporary lines
// are never looked up against the catalog or the override table.
type BillItemInput struct {
	ProductID int             `json:"product_id,omitempty"`
	IsTemp    bool            `json:"is_temp,omitempty"`
	Name      string          `json:"name,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price,omitempty"`
}

// IncomeEntry is a payment received from a client. EntryDate is the
// logical date the payment applies to; CreatedAt is when it was
// recorded.
type IncomeEntry struct {
	ID          int             `json:"id"`
	AdminID     int             `json:"admin_id"`
	ClientID    int             `json:"client_id"`
	ClientName  string          `json:"client_name,omitempty"` // joined from clients
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	EntryDate   time.Time       `json:"entry_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Admin is an administrator account. Every business row belongs to
// exactly one admin; there is no cross-admin sharing.
type Admin struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
