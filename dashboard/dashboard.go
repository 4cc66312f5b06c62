package dashboard

import (
	"sort"
	"time"

	"atelier/currency"
	"atelier/finance"
	"atelier/models"
)

type ProductSales struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	TotalQuantity int     `json:"totalQuantity"`
	RevenueInNGN  float64 `json:"revenueInNGN"`
	OrderCount    int     `json:"orderCount"`
}

type AttentionItem struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"` // overdue, invalid_products, missing_shipping_cost
}

// Summary is the dashboard rollup, all money NGN-normalized.
type Summary struct {
	TotalRevenueInNGN      float64         `json:"totalRevenueInNGN"`
	TotalOrders            int             `json:"totalOrders"`
	PendingOrders          int             `json:"pendingOrders"`
	CompletedOrders        int             `json:"completedOrders"`
	OverdueOrders          []string        `json:"overdueOrders"`
	TopSellingProducts     []ProductSales  `json:"topSellingProducts"`
	LowInventoryProducts   []string        `json:"lowInventoryProducts"`
	MonthlyExpensesInNGN   float64         `json:"monthlyExpensesInNGN"`
	ProfitMarginPercent    float64         `json:"profitMarginPercent"`
	OrdersNeedingAttention []AttentionItem `json:"ordersNeedingAttention"`
}

func isOverdue(o models.Order, now time.Time) bool {
	est := o.Shipping.ShippingInfo.EstimatedDeliveryDate
	if est == nil {
		return false
	}
	if !est.Before(now) {
		return false
	}
	return o.Status == models.OrderPending || o.Status == models.OrderProcessing
}

// BuildSummary rolls every order up into the dashboard view. Pure; callers
// fetch the inputs.
func BuildSummary(
	orderList []models.Order,
	ref finance.RefData,
	purchases []models.RawMaterialPurchase,
	labor []models.LaborCost,
	rates currency.RateTable,
	now time.Time,
) Summary {
	s := Summary{
		OverdueOrders:          []string{},
		TopSellingProducts:     []ProductSales{},
		LowInventoryProducts:   []string{},
		OrdersNeedingAttention: []AttentionItem{},
	}

	s.TotalOrders = len(orderList)

	var totalCost float64
	for _, o := range orderList {
		s.TotalRevenueInNGN += currency.ConvertToNGN(o.TotalAmount, o.Currency, rates)

		switch o.Status {
		case models.OrderPending, models.OrderProcessing:
			s.PendingOrders++
		case models.OrderCompleted, models.OrderDelivered:
			s.CompletedOrders++
		}

		if isOverdue(o, now) {
			s.OverdueOrders = append(s.OverdueOrders, o.ID)
			s.OrdersNeedingAttention = append(s.OrdersNeedingAttention, AttentionItem{OrderID: o.ID, Reason: "overdue"})
		}

		cost, hasInvalid, _ := finance.ProductCost(o.Items, ref)
		totalCost += cost
		if hasInvalid {
			s.OrdersNeedingAttention = append(s.OrdersNeedingAttention, AttentionItem{OrderID: o.ID, Reason: "invalid_products"})
		}

		if (o.Status == models.OrderShipped || o.Status == models.OrderDelivered) &&
			o.Shipping.ShippingInfo.ActualCost == nil {
			s.OrdersNeedingAttention = append(s.OrdersNeedingAttention, AttentionItem{OrderID: o.ID, Reason: "missing_shipping_cost"})
		}
	}

	if s.TotalRevenueInNGN > 0 {
		s.ProfitMarginPercent = (s.TotalRevenueInNGN - totalCost) / s.TotalRevenueInNGN * 100
	}

	// per-product sales
	sales := make(map[string]*ProductSales)
	for _, o := range orderList {
		seen := map[string]bool{}
		for _, item := range o.Items {
			p, ok := ref.Catalog[item.ProductID]
			if !ok {
				continue
			}
			ps, exists := sales[p.ID]
			if !exists {
				ps = &ProductSales{ProductID: p.ID, Name: p.Name}
				sales[p.ID] = ps
			}
			ps.TotalQuantity += item.Quantity
			ps.RevenueInNGN += currency.ConvertToNGN(item.Price*float64(item.Quantity), o.Currency, rates)
			if !seen[p.ID] {
				ps.OrderCount++
				seen[p.ID] = true
			}
		}
	}
	for _, ps := range sales {
		s.TopSellingProducts = append(s.TopSellingProducts, *ps)
	}
	sort.Slice(s.TopSellingProducts, func(i, j int) bool {
		return s.TopSellingProducts[i].TotalQuantity > s.TopSellingProducts[j].TotalQuantity
	})

	// low inventory: any material under twice what one unit of the product
	// needs
	for _, p := range ref.Catalog {
		for _, pm := range p.Materials {
			raw, ok := ref.Inventory[pm.MaterialID]
			if !ok {
				continue
			}
			if raw.CurrentQuantity < pm.Quantity*2 {
				s.LowInventoryProducts = append(s.LowInventoryProducts, p.ID)
				break
			}
		}
	}
	sort.Strings(s.LowInventoryProducts)

	// monthly expenses: payroll plus purchases recorded this calendar month
	var monthlyLabor float64
	for _, c := range labor {
		monthlyLabor += c.MonthlySalary
	}
	var monthlyMaterials float64
	for _, p := range purchases {
		if p.PurchaseDate.Month() == now.Month() && p.PurchaseDate.Year() == now.Year() {
			monthlyMaterials += p.Price
		}
	}
	s.MonthlyExpensesInNGN = monthlyLabor + monthlyMaterials

	return s
}
