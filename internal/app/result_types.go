package app

import "billfold/internal/core"

// AdminSession is returned on successful authentication.
type AdminSession struct {
	AdminID  int    `json:"admin_id"`
	Username string `json:"username"`
}

// ClientListResult is returned by ListClients.
type ClientListResult struct {
	Clients []core.Client `json:"clients"`
}

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product `json:"products"`
}

// BillListResult is returned by ListBills.
type BillListResult struct {
	Bills []core.Bill `json:"bills"`
}

// PaymentListResult is returned by ListPayments.
type PaymentListResult struct {
	Payments []core.IncomeEntry `json:"payments"`
}

// DashboardResult is returned by Dashboard.
type DashboardResult struct {
	Summary       *core.DashboardSummary `json:"summary"`
	MonthlyIncome []core.MonthIncome     `json:"monthly_income"`
	RecentClients []core.Client          `json:"recent_clients"`
}

// SuggestionResult is returned by SuggestBillMessage. The content is
// opaque text to display or copy.
type SuggestionResult struct {
	SuggestedContent string `json:"suggested_content"`
}

// AuditResult is returned by AuditBalances. Consistent is true when no
// client balance drifts from its recomputed value.
type AuditResult struct {
	Consistent bool                `json:"consistent"`
	Drifts     []core.BalanceDrift `json:"drifts,omitempty"`
}
