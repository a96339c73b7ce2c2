package app

import (
	"time"

	"github.com/shopspring/decimal"

	"billfold/internal/core"
)

// ProductRequest is the input for creating or updating a product,
// including the full incoming override set.
type ProductRequest struct {
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	ImageURL     string               `json:"image_url"`
	DefaultPrice decimal.Decimal      `json:"default_price"`
	Overrides    []core.OverrideInput `json:"overrides"`
}

// CreateBillRequest is the input for creating a bill.
type CreateBillRequest struct {
	ClientID int                  `json:"client_id"`
	Items    []core.BillItemInput `json:"items"`
}

// RecordPaymentRequest is the input for recording an income entry.
// EntryDate is the logical payment date; zero means today.
type RecordPaymentRequest struct {
	ClientID    int             `json:"client_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	EntryDate   time.Time       `json:"entry_date"`
}

// ReportQuery selects the report window. Exactly one form applies, in
// this precedence: explicit start/end dates, last-N-days, calendar
// month, calendar year. An empty query defaults to the last 30 days.
type ReportQuery struct {
	Start    string `json:"start"` // YYYY-MM-DD
	End      string `json:"end"`   // YYYY-MM-DD
	LastDays int    `json:"last_days"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
}

// Window resolves the query into a concrete date window.
func (q ReportQuery) Window(now time.Time) (core.Window, error) {
	switch {
	case q.Start != "" || q.End != "":
		start, err := time.ParseInLocation("2006-01-02", q.Start, now.Location())
		if err != nil {
			return core.Window{}, core.Validationf("invalid start date %q", q.Start)
		}
		end, err := time.ParseInLocation("2006-01-02", q.End, now.Location())
		if err != nil {
			return core.Window{}, core.Validationf("invalid end date %q", q.End)
		}
		return core.NewWindow(start, end)
	case q.LastDays > 0:
		return core.LastDays(q.LastDays, now)
	case q.Year > 0 && q.Month > 0:
		if q.Month < 1 || q.Month > 12 {
			return core.Window{}, core.Validationf("invalid month %d", q.Month)
		}
		return core.MonthWindow(q.Year, time.Month(q.Month), now.Location()), nil
	case q.Year > 0:
		return core.YearWindow(q.Year, now.Location()), nil
	default:
		return core.LastDays(30, now)
	}
}
