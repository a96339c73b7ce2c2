package core_test

import (
	"testing"
	"time"

	"billfold/internal/core"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWindow_EndOfDayInclusive(t *testing.T) {
	w, err := core.NewWindow(date(2026, time.March, 1), date(2026, time.March, 31))
	if err != nil {
		t.Fatalf("NewWindow failed: %v", err)
	}

	lastInstant := time.Date(2026, time.March, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	if !w.Contains(lastInstant) {
		t.Error("entry at the last instant of the end date should be inside the window")
	}
	if w.Contains(lastInstant.Add(time.Nanosecond)) {
		t.Error("entry just past the end date should be outside the window")
	}
	if !w.Contains(date(2026, time.March, 1)) {
		t.Error("first instant of the start date should be inside the window")
	}
	if w.Contains(date(2026, time.February, 28)) {
		t.Error("day before the start date should be outside the window")
	}
}

func TestWindow_EndBeforeStart(t *testing.T) {
	_, err := core.NewWindow(date(2026, time.March, 10), date(2026, time.March, 9))
	if err == nil {
		t.Fatal("expected error for inverted window")
	}
}

func TestLastDays(t *testing.T) {
	now := time.Date(2026, time.August, 28, 14, 30, 0, 0, time.UTC)

	w, err := core.LastDays(7, now)
	if err != nil {
		t.Fatalf("LastDays failed: %v", err)
	}
	// 7 days = today plus the 6 preceding days.
	if !w.Start.Equal(date(2026, time.August, 22)) {
		t.Errorf("start = %s, want 2026-08-22", w.Start)
	}
	if !w.Contains(now) {
		t.Error("now should be inside the window")
	}
	if w.Contains(date(2026, time.August, 21)) {
		t.Error("2026-08-21 should be outside a 7-day window ending today")
	}

	if _, err := core.LastDays(0, now); err == nil {
		t.Error("expected error for zero day count")
	}
	if _, err := core.LastDays(-3, now); err == nil {
		t.Error("expected error for negative day count")
	}
}

func TestLastDays_One(t *testing.T) {
	now := time.Date(2026, time.August, 28, 9, 0, 0, 0, time.UTC)
	w, err := core.LastDays(1, now)
	if err != nil {
		t.Fatalf("LastDays failed: %v", err)
	}
	if !w.Start.Equal(date(2026, time.August, 28)) {
		t.Errorf("a 1-day window should start today, got %s", w.Start)
	}
}

func TestMonthWindow(t *testing.T) {
	w := core.MonthWindow(2024, time.February, time.UTC)
	if !w.Contains(date(2024, time.February, 29)) {
		t.Error("leap day should be inside February 2024")
	}
	if w.Contains(date(2024, time.March, 1)) {
		t.Error("March 1 should be outside the February window")
	}
	if w.Contains(date(2024, time.January, 31)) {
		t.Error("January 31 should be outside the February window")
	}
}

func TestYearWindow(t *testing.T) {
	w := core.YearWindow(2025, time.UTC)
	if !w.Contains(date(2025, time.January, 1)) || !w.Contains(date(2025, time.December, 31)) {
		t.Error("year boundaries should be inside the window")
	}
	if w.Contains(date(2026, time.January, 1)) {
		t.Error("next year's first day should be outside the window")
	}
}

func TestMergeEntries_DescendingAndStable(t *testing.T) {
	ts := date(2026, time.May, 10)
	entries := []core.ReportEntry{
		{Kind: core.KindBill, Date: date(2026, time.May, 8), Description: "old"},
		{Kind: core.KindIncome, Date: ts, Description: "first at ts"},
		{Kind: core.KindBill, Date: ts, Description: "second at ts"},
		{Kind: core.KindIncome, Date: date(2026, time.May, 12), Description: "newest"},
	}

	merged := core.MergeEntries(entries)

	want := []string{"newest", "first at ts", "second at ts", "old"}
	for i, desc := range want {
		if merged[i].Description != desc {
			t.Errorf("merged[%d] = %q, want %q", i, merged[i].Description, desc)
		}
	}
}

func TestSumEntries(t *testing.T) {
	entries := []core.ReportEntry{
		{Kind: core.KindBill, Amount: dec("100.00")},
		{Kind: core.KindBill, Amount: dec("40.50")},
		{Kind: core.KindIncome, Amount: dec("90.00")},
	}

	billed, income, net := core.SumEntries(entries)
	if billed.StringFixed(2) != "140.50" {
		t.Errorf("billed = %s, want 140.50", billed.StringFixed(2))
	}
	if income.StringFixed(2) != "90.00" {
		t.Errorf("income = %s, want 90.00", income.StringFixed(2))
	}
	// Net is income minus billed, negative when billing outpaces payments.
	if net.StringFixed(2) != "-50.50" {
		t.Errorf("net = %s, want -50.50", net.StringFixed(2))
	}
}

func TestSumEntries_Empty(t *testing.T) {
	billed, income, net := core.SumEntries(nil)
	if !billed.IsZero() || !income.IsZero() || !net.IsZero() {
		t.Errorf("empty report should total zero, got billed=%s income=%s net=%s", billed, income, net)
	}
}
