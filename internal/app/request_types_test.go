package app_test

import (
	"errors"
	"testing"
	"time"

	"billfold/internal/app"
	"billfold/internal/core"
)

func TestReportQuery_Window(t *testing.T) {
	now := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		query     app.ReportQuery
		wantStart string
		wantEnd   string
		expectErr bool
	}{
		{
			name:      "explicit dates",
			query:     app.ReportQuery{Start: "2026-03-01", End: "2026-03-31"},
			wantStart: "2026-03-01",
			wantEnd:   "2026-03-31",
		},
		{
			name:      "last days",
			query:     app.ReportQuery{LastDays: 7},
			wantStart: "2026-08-22",
			wantEnd:   "2026-08-28",
		},
		{
			name:      "calendar month",
			query:     app.ReportQuery{Year: 2026, Month: 2},
			wantStart: "2026-02-01",
			wantEnd:   "2026-02-28",
		},
		{
			name:      "calendar year",
			query:     app.ReportQuery{Year: 2025},
			wantStart: "2025-01-01",
			wantEnd:   "2025-12-31",
		},
		{
			name:      "empty query defaults to last 30 days",
			query:     app.ReportQuery{},
			wantStart: "2026-07-30",
			wantEnd:   "2026-08-28",
		},
		{
			// Explicit dates win even when other selectors are set.
			name:      "explicit dates take precedence",
			query:     app.ReportQuery{Start: "2026-01-01", End: "2026-01-31", LastDays: 7, Year: 2024},
			wantStart: "2026-01-01",
			wantEnd:   "2026-01-31",
		},
		{
			name:      "start without end",
			query:     app.ReportQuery{Start: "2026-03-01"},
			expectErr: true,
		},
		{
			name:      "malformed date",
			query:     app.ReportQuery{Start: "03/01/2026", End: "2026-03-31"},
			expectErr: true,
		},
		{
			name:      "inverted range",
			query:     app.ReportQuery{Start: "2026-03-31", End: "2026-03-01"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := tt.query.Window(now)
			if tt.expectErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, core.ErrValidation) {
					t.Errorf("error should wrap ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Window failed: %v", err)
			}
			if got := w.Start.Format("2006-01-02"); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := w.End.Format("2006-01-02"); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
			// The end bound must run to the last instant of its day.
			if w.End.Hour() != 23 || w.End.Minute() != 59 || w.End.Second() != 59 {
				t.Errorf("end = %s, want end of day", w.End)
			}
		})
	}
}
