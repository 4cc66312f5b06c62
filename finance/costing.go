package finance

import "atelier/models"

// materialCost sums lastPurchasePrice x required quantity over a bill of
// materials. Ids missing from the inventory are skipped and reported back,
// never treated as an error.
func materialCost(mats []models.ProductMaterial, inventory map[string]models.RawMaterial) (float64, []UnresolvedRef) {
	var total float64
	var unresolved []UnresolvedRef
	for _, m := range mats {
		raw, ok := inventory[m.MaterialID]
		if !ok {
			unresolved = append(unresolved, UnresolvedRef{Kind: RefMaterial, ID: m.MaterialID})
			continue
		}
		total += raw.LastPurchasePrice * m.Quantity
	}
	return total, unresolved
}

// ProductBreakdown prices a single catalog product: standing material cost
// plus blended labor for its make time.
func ProductBreakdown(p models.Product, ref RefData) (matCost, laborCost, total float64) {
	matCost, _ = materialCost(p.Materials, ref.Inventory)
	laborCost = ref.DailyRate * p.TimeToMake
	return matCost, laborCost, matCost + laborCost
}

// ItemCost prices one order line. An unresolvable productId contributes
// exactly zero and is reported as unresolved; the caller decides what to do
// with the flag.
func ItemCost(item models.OrderItem, ref RefData) (float64, []UnresolvedRef) {
	product, ok := ref.Catalog[item.ProductID]
	if !ok {
		return 0, []UnresolvedRef{{Kind: RefProduct, ID: item.ProductID}}
	}

	baseMat, unresolved := materialCost(product.Materials, ref.Inventory)
	laborCost := ref.DailyRate * product.TimeToMake
	baseCost := baseMat + laborCost

	var additionalMat float64
	for _, am := range item.AdditionalMaterials {
		raw, ok := ref.Inventory[am.MaterialID]
		if !ok {
			unresolved = append(unresolved, UnresolvedRef{Kind: RefMaterial, ID: am.MaterialID})
			continue
		}
		additionalMat += raw.LastPurchasePrice * am.Quantity
	}

	var additionalCosts float64
	for _, ac := range item.AdditionalCosts {
		additionalCosts += ac.Amount
	}

	return (baseCost + additionalMat + additionalCosts) * float64(item.Quantity), unresolved
}

// ProductCost totals every line of an order. hasInvalid is raised when any
// line's product is missing from the catalog, or when the catalog itself has
// not loaded; an empty margin is better than a wrong one.
func ProductCost(items []models.OrderItem, ref RefData) (cost float64, hasInvalid bool, unresolved []UnresolvedRef) {
	if ref.State != Ready || len(ref.Catalog) == 0 {
		return 0, true, nil
	}

	for _, item := range items {
		itemTotal, refs := ItemCost(item, ref)
		for _, r := range refs {
			if r.Kind == RefProduct {
				hasInvalid = true
			}
		}
		unresolved = append(unresolved, refs...)
		cost += itemTotal
	}
	return cost, hasInvalid, unresolved
}
