package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"billfold/internal/core"
)

func TestPayments_BalanceInvariant(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	billing := core.NewBillingService(pool)
	payments := core.NewPaymentService(pool)
	audit := core.NewAuditService(pool)
	ctx := context.Background()

	// A realistic month: three bills, two partial payments. The stored
	// balance must equal bills minus payments at every point.
	for _, qty := range []string{"2", "3", "1"} {
		if _, err := billing.CreateBill(ctx, 1, 1, []core.BillItemInput{
			{ProductID: 1, Quantity: dec(qty)}, // override price 8.00
		}); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
	}
	// 2×8 + 3×8 + 1×8 = 48.00 billed.
	if got := clientBalance(t, pool, 1); got.StringFixed(2) != "48.00" {
		t.Fatalf("balance after bills = %s, want 48.00", got.StringFixed(2))
	}

	for _, amount := range []string{"20.00", "15.50"} {
		if _, err := payments.RecordPayment(ctx, 1, 1, dec(amount), "bank transfer", time.Time{}); err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
	}
	if got := clientBalance(t, pool, 1); got.StringFixed(2) != "12.50" {
		t.Errorf("balance after payments = %s, want 12.50", got.StringFixed(2))
	}

	drifts, err := audit.AuditBalances(ctx, 1)
	if err != nil {
		t.Fatalf("AuditBalances failed: %v", err)
	}
	if len(drifts) != 0 {
		t.Errorf("audit reported drift on consistent data: %+v", drifts)
	}
}

func TestPayments_OverpaymentGoesNegative(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	payments := core.NewPaymentService(pool)
	ctx := context.Background()

	// A payment with no prior bill is a credit: the balance goes
	// negative rather than being rejected.
	if _, err := payments.RecordPayment(ctx, 1, 2, dec("30.00"), "advance", time.Time{}); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if got := clientBalance(t, pool, 2); got.StringFixed(2) != "-30.00" {
		t.Errorf("balance = %s, want -30.00", got.StringFixed(2))
	}
}

func TestPayments_Validation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	payments := core.NewPaymentService(pool)
	ctx := context.Background()

	for _, amount := range []string{"0", "-5"} {
		if _, err := payments.RecordPayment(ctx, 1, 1, dec(amount), "", time.Time{}); !errors.Is(err, core.ErrValidation) {
			t.Errorf("amount %s: expected ErrValidation, got %v", amount, err)
		}
	}

	if _, err := payments.RecordPayment(ctx, 1, 999, dec("10"), "", time.Time{}); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("unknown client: expected ErrNotFound, got %v", err)
	}
}

func TestPayments_EntryDateOrdering(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	payments := core.NewPaymentService(pool)
	ctx := context.Background()

	// Recorded out of order; listing goes by entry date, not insertion.
	dates := []time.Time{
		time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		if _, err := payments.RecordPayment(ctx, 1, 1, dec("10"), "cash", d); err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
	}

	entries, err := payments.GetPayments(ctx, 1, 1)
	if err != nil {
		t.Fatalf("GetPayments failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	want := []int{25, 10, 2}
	for i, day := range want {
		if entries[i].EntryDate.Day() != day {
			t.Errorf("entries[%d] date = %s, want day %d", i, entries[i].EntryDate.Format("2006-01-02"), day)
		}
	}
}

func TestAudit_DetectsDrift(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	billing := core.NewBillingService(pool)
	audit := core.NewAuditService(pool)
	ctx := context.Background()

	if _, err := billing.CreateBill(ctx, 1, 1, []core.BillItemInput{
		{ProductID: 2, Quantity: dec("2")}, // 11.00
	}); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	// Corrupt the stored balance behind the service's back.
	if _, err := pool.Exec(ctx, "UPDATE clients SET balance = balance + 5 WHERE id = 1"); err != nil {
		t.Fatalf("Failed to corrupt balance: %v", err)
	}

	drifts, err := audit.AuditBalances(ctx, 1)
	if err != nil {
		t.Fatalf("AuditBalances failed: %v", err)
	}
	if len(drifts) != 1 {
		t.Fatalf("drifts = %+v, want exactly one", drifts)
	}
	d := drifts[0]
	if d.ClientID != 1 {
		t.Errorf("drift client = %d, want 1", d.ClientID)
	}
	if d.Stored.StringFixed(2) != "16.00" || d.Computed.StringFixed(2) != "11.00" {
		t.Errorf("stored/computed = %s/%s, want 16.00/11.00", d.Stored, d.Computed)
	}
	if d.Drift.StringFixed(2) != "5.00" {
		t.Errorf("drift = %s, want 5.00", d.Drift.StringFixed(2))
	}
}
