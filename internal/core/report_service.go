package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// EntryKind tags a report entry as a bill (charge) or income (payment).
type EntryKind string

const (
	KindBill   EntryKind = "Bill"
	KindIncome EntryKind = "Income"
)

// ReportEntry is one row of the merged income report. Date is the
// entry date for payments and the creation time for bills.
type ReportEntry struct {
	Kind        EntryKind       `json:"kind"`
	Date        time.Time       `json:"date"`
	ClientID    int             `json:"client_id"`
	ClientName  string          `json:"client_name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Report is the windowed, merged view of bills and payments across all
// clients, sorted most recent first.
type Report struct {
	Window      Window          `json:"window"`
	Entries     []ReportEntry   `json:"entries"`
	TotalBilled decimal.Decimal `json:"total_billed"`
	TotalIncome decimal.Decimal `json:"total_income"`
	// Net is income received minus amounts billed over the window.
	Net decimal.Decimal `json:"net"`
}

// Window is an inclusive date range. Start is the first instant of the
// start date; End is the last instant of the end date, so an entry
// dated exactly at the end date's 23:59:59 is included and one a
// second later is not.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewWindow builds a window spanning the start date's beginning to the
// end date's end of day.
func NewWindow(start, end time.Time) (Window, error) {
	if end.Before(start) {
		return Window{}, Validationf("window end %s precedes start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return Window{Start: startOfDay(start), End: endOfDay(end)}, nil
}

// LastDays returns a window covering today and the n−1 preceding days.
func LastDays(n int, now time.Time) (Window, error) {
	if n <= 0 {
		return Window{}, Validationf("day count must be positive")
	}
	return NewWindow(now.AddDate(0, 0, -(n-1)), now)
}

// MonthWindow returns a window covering one calendar month.
func MonthWindow(year int, month time.Month, loc *time.Location) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Window{Start: start, End: endOfDay(start.AddDate(0, 1, -1))}
}

// YearWindow returns a window covering one calendar year.
func YearWindow(year int, loc *time.Location) Window {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return Window{Start: start, End: endOfDay(time.Date(year, time.December, 31, 0, 0, 0, 0, loc))}
}

// Contains reports whether t falls inside the window, both bounds
// inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// MergeEntries sorts entries descending by date. The sort is stable:
// entries with equal timestamps keep the order they were fetched in
// (undefined across runs, but stable within one).
func MergeEntries(entries []ReportEntry) []ReportEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries
}

// SumEntries computes the per-kind and net totals for a merged entry
// sequence.
func SumEntries(entries []ReportEntry) (billed, income, net decimal.Decimal) {
	for _, e := range entries {
		switch e.Kind {
		case KindBill:
			billed = billed.Add(e.Amount)
		case KindIncome:
			income = income.Add(e.Amount)
		}
	}
	return billed, income, income.Sub(billed)
}

// MonthIncome is one point of the dashboard's monthly income series.
type MonthIncome struct {
	Month  time.Month      `json:"month"`
	Income decimal.Decimal `json:"income"`
}

// DashboardSummary backs the overview cards.
type DashboardSummary struct {
	ClientCount      int             `json:"client_count"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"` // sum of client balances
	IncomeThisMonth  decimal.Decimal `json:"income_this_month"`
	BilledThisMonth  decimal.Decimal `json:"billed_this_month"`
}

// ReportService aggregates bills and payments into time-windowed
// views. All queries are read-only and idempotent.
type ReportService interface {
	// IncomeReport returns the merged Bill/Income sequence for the
	// window, most recent first, with per-kind and net totals.
	IncomeReport(ctx context.Context, adminID int, window Window) (*Report, error)

	// MonthlyIncomeSeries returns one income total per calendar month
	// of the given year, for the dashboard chart.
	MonthlyIncomeSeries(ctx context.Context, adminID, year int) ([]MonthIncome, error)

	// Dashboard returns the overview card figures for the current month.
	Dashboard(ctx context.Context, adminID int, now time.Time) (*DashboardSummary, error)
}

type reportService struct {
	pool *pgxpool.Pool
}

// NewReportService constructs a ReportService backed by the given pool.
func NewReportService(pool *pgxpool.Pool) ReportService {
	return &reportService{pool: pool}
}

func (s *reportService) IncomeReport(ctx context.Context, adminID int, window Window) (*Report, error) {
	entries, err := s.fetchIncomeEntries(ctx, adminID, window)
	if err != nil {
		return nil, err
	}
	bills, err := s.fetchBillEntries(ctx, adminID, window)
	if err != nil {
		return nil, err
	}
	entries = append(entries, bills...)

	MergeEntries(entries)
	billed, income, net := SumEntries(entries)
	return &Report{
		Window:      window,
		Entries:     entries,
		TotalBilled: billed,
		TotalIncome: income,
		Net:         net,
	}, nil
}

func (s *reportService) fetchIncomeEntries(ctx context.Context, adminID int, window Window) ([]ReportEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT e.client_id, c.name, e.description, e.amount, e.entry_date
		FROM income_entries e
		JOIN clients c ON c.id = e.client_id
		WHERE e.admin_id = $1 AND e.entry_date >= $2 AND e.entry_date <= $3
		ORDER BY e.entry_date DESC, e.id DESC`,
		adminID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to query income entries: %w", err)
	}
	defer rows.Close()

	var entries []ReportEntry
	for rows.Next() {
		e := ReportEntry{Kind: KindIncome}
		if err := rows.Scan(&e.ClientID, &e.ClientName, &e.Description, &e.Amount, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan income entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *reportService) fetchBillEntries(ctx context.Context, adminID int, window Window) ([]ReportEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT b.client_id, c.name, b.total_amount, b.created_at
		FROM bills b
		JOIN clients c ON c.id = b.client_id
		WHERE b.admin_id = $1 AND b.created_at >= $2 AND b.created_at <= $3
		ORDER BY b.created_at DESC, b.id DESC`,
		adminID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var entries []ReportEntry
	for rows.Next() {
		e := ReportEntry{Kind: KindBill}
		if err := rows.Scan(&e.ClientID, &e.ClientName, &e.Amount, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		e.Description = fmt.Sprintf("Bill for %s", e.ClientName)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *reportService) MonthlyIncomeSeries(ctx context.Context, adminID, year int) ([]MonthIncome, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT EXTRACT(MONTH FROM entry_date)::int AS month, COALESCE(SUM(amount), 0)
		FROM income_entries
		WHERE admin_id = $1 AND EXTRACT(YEAR FROM entry_date)::int = $2
		GROUP BY month`,
		adminID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly income: %w", err)
	}
	defer rows.Close()

	byMonth := make(map[int]decimal.Decimal, 12)
	for rows.Next() {
		var month int
		var income decimal.Decimal
		if err := rows.Scan(&month, &income); err != nil {
			return nil, fmt.Errorf("failed to scan monthly income: %w", err)
		}
		byMonth[month] = income
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Every month appears in the series, zero-filled, so the chart has
	// a fixed shape.
	series := make([]MonthIncome, 0, 12)
	for m := 1; m <= 12; m++ {
		series = append(series, MonthIncome{Month: time.Month(m), Income: byMonth[m]})
	}
	return series, nil
}

func (s *reportService) Dashboard(ctx context.Context, adminID int, now time.Time) (*DashboardSummary, error) {
	sum := &DashboardSummary{}

	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(balance), 0)
		FROM clients
		WHERE admin_id = $1 AND archived_at IS NULL`,
		adminID).Scan(&sum.ClientCount, &sum.TotalOutstanding)
	if err != nil {
		return nil, fmt.Errorf("failed to query client summary: %w", err)
	}

	month := MonthWindow(now.Year(), now.Month(), now.Location())
	err = s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM income_entries
		WHERE admin_id = $1 AND entry_date >= $2 AND entry_date <= $3`,
		adminID, month.Start, month.End).Scan(&sum.IncomeThisMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to query month income: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM bills
		WHERE admin_id = $1 AND created_at >= $2 AND created_at <= $3`,
		adminID, month.Start, month.End).Scan(&sum.BilledThisMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to query month billing: %w", err)
	}

	return sum, nil
}
