package finance

import (
	"atelier/currency"
	"atelier/models"
)

// Snapshot holds an order's derived financial fields, all NGN-normalized.
// It is a pure function of the order and the reference data it was computed
// against; stored copies are only a fallback, never authoritative.
type Snapshot struct {
	ProductCostInNGN             float64         `json:"productCostInNGN"`
	ShippingCostInNGN            float64         `json:"shippingCostInNGN"`
	TotalExtraExpensesInNGN      float64         `json:"totalExtraExpensesInNGN"`
	TotalAdditionalPaymentsInNGN float64         `json:"totalAdditionalPaymentsInNGN"`
	TotalAmountInNGN             float64         `json:"totalAmountInNGN"`
	ProfitMargin                 float64         `json:"profitMargin"`
	HasInvalidProducts           bool            `json:"hasInvalidProducts"`
	Unresolved                   []UnresolvedRef `json:"unresolved,omitempty"`
}

// Reconcile recomputes an order's financials from current reference data.
// It never errors: referential gaps degrade to zero-cost contributions and
// show up in Unresolved. Safe to call from concurrent readers.
func Reconcile(order models.Order, ref RefData, rates currency.RateTable) Snapshot {
	productCost, hasInvalid, unresolved := ProductCost(order.Items, ref)

	// Shipping actual cost is captured in NGN at entry time, unlike the
	// order total which is in the order's native currency.
	var shippingCost float64
	if order.Shipping.ShippingInfo.ActualCost != nil {
		shippingCost = *order.Shipping.ShippingInfo.ActualCost
	}

	var expenses float64
	for _, e := range order.ExtraExpenses {
		expenses += currency.ConvertToNGN(e.Amount, order.Currency, rates)
	}

	var payments float64
	for _, p := range order.AdditionalPayments {
		payments += currency.ConvertToNGN(p.Amount, order.Currency, rates)
	}

	totalAmount := currency.ConvertToNGN(order.TotalAmount, order.Currency, rates)

	return Snapshot{
		ProductCostInNGN:             productCost,
		ShippingCostInNGN:            shippingCost,
		TotalExtraExpensesInNGN:      expenses,
		TotalAdditionalPaymentsInNGN: payments,
		TotalAmountInNGN:             totalAmount,
		ProfitMargin:                 totalAmount - productCost - shippingCost - expenses + payments,
		HasInvalidProducts:           hasInvalid,
		Unresolved:                   unresolved,
	}
}

// Apply copies a snapshot onto the order's cached fields before it goes back
// to the client.
func Apply(o *models.Order, s Snapshot) {
	o.ProductCostInNGN = s.ProductCostInNGN
	o.ShippingCostInNGN = s.ShippingCostInNGN
	o.TotalExtraExpenses = s.TotalExtraExpensesInNGN
	o.TotalAdditionalPayments = s.TotalAdditionalPaymentsInNGN
	o.ProfitMargin = s.ProfitMargin
	o.HasInvalidProducts = s.HasInvalidProducts
}
