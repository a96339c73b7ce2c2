package core_test

import (
	"context"
	"errors"
	"testing"

	"billfold/internal/core"
)

func TestProducts_CreateWithOverrides(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	products := core.NewProductService(pool)
	pricing := core.NewPricingService(pool)
	ctx := context.Background()

	p, err := products.CreateProduct(ctx, 1, core.ProductInput{
		Name:         "Butter 5kg",
		DefaultPrice: dec("40.00"),
	}, []core.OverrideInput{
		{ClientID: 1, Price: dec("35.00")},
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if len(p.Overrides) != 1 {
		t.Fatalf("overrides = %d, want 1", len(p.Overrides))
	}

	rp, err := pricing.ResolveUnitPrice(ctx, 1, 1, p.ID)
	if err != nil {
		t.Fatalf("ResolveUnitPrice failed: %v", err)
	}
	if !rp.Overridden || rp.UnitPrice.StringFixed(2) != "35.00" {
		t.Errorf("client 1 resolves to %s (overridden=%v), want override 35.00", rp.UnitPrice, rp.Overridden)
	}

	rp, err = pricing.ResolveUnitPrice(ctx, 1, 2, p.ID)
	if err != nil {
		t.Fatalf("ResolveUnitPrice failed: %v", err)
	}
	if rp.Overridden || rp.UnitPrice.StringFixed(2) != "40.00" {
		t.Errorf("client 2 resolves to %s (overridden=%v), want default 40.00", rp.UnitPrice, rp.Overridden)
	}
}

func TestProducts_UpdateReconcilesOverrides(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	products := core.NewProductService(pool)
	pricing := core.NewPricingService(pool)
	ctx := context.Background()

	p, err := products.CreateProduct(ctx, 1, core.ProductInput{
		Name:         "Sugar 10kg",
		DefaultPrice: dec("15.00"),
	}, []core.OverrideInput{
		{ClientID: 1, Price: dec("12.00")},
		{ClientID: 2, Price: dec("13.00")},
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	// One edit: raise client 1's price, drop client 2's override
	// entirely. The stored set must end up matching the incoming set.
	updated, err := products.UpdateProduct(ctx, 1, p.ID, core.ProductInput{
		Name:         "Sugar 10kg",
		DefaultPrice: dec("15.00"),
	}, []core.OverrideInput{
		{ID: p.Overrides[0].ID, ClientID: 1, Price: dec("12.50")},
	})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if len(updated.Overrides) != 1 {
		t.Fatalf("overrides after update = %+v, want exactly one", updated.Overrides)
	}
	if updated.Overrides[0].ID != p.Overrides[0].ID {
		t.Errorf("surviving override id = %d, want %d (updated in place, not recreated)",
			updated.Overrides[0].ID, p.Overrides[0].ID)
	}

	rp, err := pricing.ResolveUnitPrice(ctx, 1, 1, p.ID)
	if err != nil {
		t.Fatalf("ResolveUnitPrice failed: %v", err)
	}
	if rp.UnitPrice.StringFixed(2) != "12.50" {
		t.Errorf("client 1 resolves to %s, want updated 12.50", rp.UnitPrice)
	}

	rp, err = pricing.ResolveUnitPrice(ctx, 1, 2, p.ID)
	if err != nil {
		t.Fatalf("ResolveUnitPrice failed: %v", err)
	}
	if rp.Overridden {
		t.Error("client 2's override should be gone; default price applies")
	}
}

func TestProducts_Validation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	products := core.NewProductService(pool)
	ctx := context.Background()

	if _, err := products.CreateProduct(ctx, 1, core.ProductInput{Name: " "}, nil); !errors.Is(err, core.ErrValidation) {
		t.Errorf("blank name: expected ErrValidation, got %v", err)
	}
	if _, err := products.CreateProduct(ctx, 1, core.ProductInput{
		Name: "Oil", DefaultPrice: dec("-1"),
	}, nil); !errors.Is(err, core.ErrValidation) {
		t.Errorf("negative price: expected ErrValidation, got %v", err)
	}
	if _, err := products.CreateProduct(ctx, 1, core.ProductInput{
		Name: "Oil", DefaultPrice: dec("5"),
	}, []core.OverrideInput{{Price: dec("4")}}); !errors.Is(err, core.ErrValidation) {
		t.Errorf("override without client: expected ErrValidation, got %v", err)
	}
}

func TestProducts_DeleteKeepsBillHistory(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	products := core.NewProductService(pool)
	billing := core.NewBillingService(pool)
	ctx := context.Background()

	bill, err := billing.CreateBill(ctx, 1, 1, []core.BillItemInput{
		{ProductID: 2, Quantity: dec("3")},
	})
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	if err := products.DeleteProduct(ctx, 1, 2); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}

	// Deactivation hides the product from the catalog...
	if _, err := products.GetProduct(ctx, 1, 2); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound for deactivated product, got %v", err)
	}
	list, err := products.GetProducts(ctx, 1)
	if err != nil {
		t.Fatalf("GetProducts failed: %v", err)
	}
	for _, p := range list {
		if p.ID == 2 {
			t.Error("deactivated product still listed in catalog")
		}
	}

	// ...but the historical bill keeps its line and product reference.
	got, err := billing.GetBill(ctx, 1, bill.ID)
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(got.Items))
	}
	if got.Items[0].ProductID == nil || *got.Items[0].ProductID != 2 {
		t.Errorf("bill item lost its product reference: %+v", got.Items[0])
	}

	// Deleting again is a not-found, not a silent no-op.
	if err := products.DeleteProduct(ctx, 1, 2); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound for double delete, got %v", err)
	}
}
