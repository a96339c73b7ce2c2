package core_test

import (
	"testing"

	"billfold/internal/core"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDiffOverrides_MixedEdit(t *testing.T) {
	// Stored: {id:a, client 1, price 5}, {id:b, client 2, price 7}.
	// Incoming: {id:a, client 1, price 6}, {client 3, price 9}.
	// Expected: update a to 6, delete b, add (client 3, 9).
	existing := []core.PriceOverride{
		{ID: 11, ClientID: 1, Price: dec("5")},
		{ID: 12, ClientID: 2, Price: dec("7")},
	}
	incoming := []core.OverrideInput{
		{ID: 11, ClientID: 1, Price: dec("6")},
		{ClientID: 3, Price: dec("9")},
	}

	diff := core.DiffOverrides(existing, incoming)

	if len(diff.ToAdd) != 1 || diff.ToAdd[0].ClientID != 3 || !diff.ToAdd[0].Price.Equal(dec("9")) {
		t.Errorf("ToAdd = %+v, want one addition for client 3 at 9", diff.ToAdd)
	}
	if len(diff.ToUpdate) != 1 || diff.ToUpdate[0].ID != 11 || !diff.ToUpdate[0].Price.Equal(dec("6")) {
		t.Errorf("ToUpdate = %+v, want override 11 updated to 6", diff.ToUpdate)
	}
	if len(diff.ToDelete) != 1 || diff.ToDelete[0].ID != 12 {
		t.Errorf("ToDelete = %+v, want override 12 deleted", diff.ToDelete)
	}
}

func TestDiffOverrides_UnchangedRowsTouchNoBucket(t *testing.T) {
	existing := []core.PriceOverride{
		{ID: 21, ClientID: 1, Price: dec("5.00")},
	}
	incoming := []core.OverrideInput{
		// Same client, numerically equal price in a different representation.
		{ID: 21, ClientID: 1, Price: dec("5")},
	}

	diff := core.DiffOverrides(existing, incoming)
	if len(diff.ToAdd)+len(diff.ToUpdate)+len(diff.ToDelete) != 0 {
		t.Errorf("expected empty diff for unchanged override, got %+v", diff)
	}
}

func TestDiffOverrides_UnknownIDBecomesAddition(t *testing.T) {
	// An id that no longer exists in the store (stale client state) is
	// treated as a fresh addition instead of failing the edit.
	diff := core.DiffOverrides(nil, []core.OverrideInput{
		{ID: 99, ClientID: 4, Price: dec("12.50")},
	})

	if len(diff.ToAdd) != 1 {
		t.Fatalf("ToAdd = %+v, want one addition", diff.ToAdd)
	}
	if diff.ToAdd[0].ID != 0 {
		t.Errorf("stale id should be discarded, got id %d", diff.ToAdd[0].ID)
	}
	if diff.ToAdd[0].ClientID != 4 || !diff.ToAdd[0].Price.Equal(dec("12.50")) {
		t.Errorf("ToAdd[0] = %+v, want client 4 at 12.50", diff.ToAdd[0])
	}
	if len(diff.ToUpdate) != 0 || len(diff.ToDelete) != 0 {
		t.Errorf("unexpected updates/deletes: %+v", diff)
	}
}

func TestDiffOverrides_EmptyInputDeletesAll(t *testing.T) {
	existing := []core.PriceOverride{
		{ID: 31, ClientID: 1, Price: dec("5")},
		{ID: 32, ClientID: 2, Price: dec("7")},
	}

	diff := core.DiffOverrides(existing, nil)
	if len(diff.ToDelete) != 2 {
		t.Errorf("ToDelete = %+v, want both overrides deleted", diff.ToDelete)
	}
	if len(diff.ToAdd) != 0 || len(diff.ToUpdate) != 0 {
		t.Errorf("unexpected additions/updates: %+v", diff)
	}
}
