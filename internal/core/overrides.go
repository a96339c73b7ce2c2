package core

// OverrideDiff is the result of reconciling an incoming override list
// against the overrides currently stored for a product.
type OverrideDiff struct {
	ToAdd    []OverrideInput // no id yet — insert
	ToUpdate []PriceOverride // id exists, client or price changed — update
	ToDelete []PriceOverride // present in store, absent from input — delete
}

// DiffOverrides computes the three-way diff between existing overrides
// and the incoming set, keyed by override id. Incoming rows without an
// id are additions; rows whose id matches an existing override but
// whose client or price differ are updates; existing overrides whose
// id is absent from the input are deletions. Unchanged rows appear in
// no bucket. The function is pure so it can be tested without a store.
func DiffOverrides(existing []PriceOverride, incoming []OverrideInput) OverrideDiff {
	byID := make(map[int]PriceOverride, len(existing))
	for _, ov := range existing {
		byID[ov.ID] = ov
	}

	var diff OverrideDiff
	seen := make(map[int]bool, len(incoming))
	for _, in := range incoming {
		if in.ID == 0 {
			diff.ToAdd = append(diff.ToAdd, in)
			continue
		}
		cur, ok := byID[in.ID]
		if !ok {
			// Unknown id: treat as an addition rather than failing the
			// whole edit. The stale id is discarded.
			diff.ToAdd = append(diff.ToAdd, OverrideInput{ClientID: in.ClientID, Price: in.Price})
			continue
		}
		seen[in.ID] = true
		if cur.ClientID != in.ClientID || !cur.Price.Equal(in.Price) {
			cur.ClientID = in.ClientID
			cur.Price = in.Price
			diff.ToUpdate = append(diff.ToUpdate, cur)
		}
	}

	for _, ov := range existing {
		if !seen[ov.ID] {
			diff.ToDelete = append(diff.ToDelete, ov)
		}
	}
	return diff
}
