package app

import (
	"context"

	"billfold/internal/core"
)

// ApplicationService is the single interface the web adapter calls. It
// decouples presentation from business logic; implementations contain
// no display logic of any kind. Every business operation takes the
// explicit administrator id resolved by the auth layer.
type ApplicationService interface {
	// AuthenticateAdmin verifies credentials and returns a session on success.
	AuthenticateAdmin(ctx context.Context, username, password string) (*AdminSession, error)

	// GetAdmin returns the administrator profile by id.
	GetAdmin(ctx context.Context, adminID int) (*core.Admin, error)

	// ListClients returns all active clients with their balances.
	ListClients(ctx context.Context, adminID int) (*ClientListResult, error)

	// CreateClient adds a new client account with a zero balance.
	CreateClient(ctx context.Context, adminID int, name, email string) (*core.Client, error)

	// DeleteClient removes or archives a client per the configured policy.
	DeleteClient(ctx context.Context, adminID, clientID int) error

	// ListProducts returns the active catalog.
	ListProducts(ctx context.Context, adminID int) (*ProductListResult, error)

	// CreateProduct adds a product and any per-client price overrides
	// in one operation.
	CreateProduct(ctx context.Context, adminID int, req ProductRequest) (*core.Product, error)

	// UpdateProduct edits a product and reconciles its override set.
	UpdateProduct(ctx context.Context, adminID, productID int, req ProductRequest) (*core.Product, error)

	// DeleteProduct deactivates a product.
	DeleteProduct(ctx context.Context, adminID, productID int) error

	// ResolvePrice returns the unit price a client would be charged for
	// a product (override, then default).
	ResolvePrice(ctx context.Context, adminID, clientID, productID int) (*core.ResolvedPrice, error)

	// CreateBill materializes a bill and applies it to the client's
	// balance in one transaction.
	CreateBill(ctx context.Context, adminID int, req CreateBillRequest) (*core.Bill, error)

	// GetBill returns one bill with its line items.
	GetBill(ctx context.Context, adminID, billID int) (*core.Bill, error)

	// ListBills returns bills, newest first; clientID = 0 means all clients.
	ListBills(ctx context.Context, adminID, clientID int) (*BillListResult, error)

	// RecordPayment records an income entry and decreases the client's
	// balance in one transaction.
	RecordPayment(ctx context.Context, adminID int, req RecordPaymentRequest) (*core.IncomeEntry, error)

	// ListPayments returns income entries, newest first; clientID = 0
	// means all clients.
	ListPayments(ctx context.Context, adminID, clientID int) (*PaymentListResult, error)

	// IncomeReport returns the merged bill/payment report for the
	// window described by the query.
	IncomeReport(ctx context.Context, adminID int, q ReportQuery) (*core.Report, error)

	// ExportIncomeReport renders the report as an Excel workbook.
	ExportIncomeReport(ctx context.Context, adminID int, q ReportQuery) ([]byte, error)

	// Dashboard returns the overview figures and the monthly income series.
	Dashboard(ctx context.Context, adminID int) (*DashboardResult, error)

	// SuggestBillMessage generates a client-facing share message for an
	// existing bill. Failures are non-fatal to the billing flow.
	SuggestBillMessage(ctx context.Context, adminID, billID int) (*SuggestionResult, error)

	// AuditBalances recomputes every client balance from history and
	// reports drift against the stored totals.
	AuditBalances(ctx context.Context, adminID int) (*AuditResult, error)
}
