package dashboard

import (
	"testing"
	"time"

	"atelier/currency"
	"atelier/finance"
	"atelier/models"
)

func testRef() finance.RefData {
	ref := finance.NewRefData(
		[]models.Product{
			{
				ID:   "prod-scarf",
				Name: "Wool Scarf",
				Materials: []models.ProductMaterial{
					{MaterialID: "mat-wool", Quantity: 2},
				},
				TimeToMake: 1,
			},
			{
				ID:   "prod-basket",
				Name: "Reed Basket",
				Materials: []models.ProductMaterial{
					{MaterialID: "mat-reed", Quantity: 5},
				},
				TimeToMake: 2,
			},
		},
		[]models.RawMaterial{
			{ID: "mat-wool", CurrentQuantity: 100, LastPurchasePrice: 500},
			{ID: "mat-reed", CurrentQuantity: 6, LastPurchasePrice: 100},
		},
		[]models.LaborCost{
			{EmployeeName: "Ada", MonthlySalary: 60000, DaysWorked: 30},
		},
	)
	return ref
}

func TestBuildSummary(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)
	rates := currency.DefaultRates()

	ac := 5000.0
	orderList := []models.Order{
		{
			ID:          "ord-1",
			Status:      models.OrderPending,
			TotalAmount: 100,
			Currency:    currency.USD,
			Items:       []models.OrderItem{{ProductID: "prod-scarf", Quantity: 2, Price: 50}},
			Shipping: models.Shipping{
				ShippingInfo: models.ShippingInfo{EstimatedDeliveryDate: &past},
			},
		},
		{
			ID:          "ord-2",
			Status:      models.OrderDelivered,
			TotalAmount: 80000,
			Currency:    currency.NGN,
			Items:       []models.OrderItem{{ProductID: "prod-basket", Quantity: 1, Price: 80000}},
			Shipping: models.Shipping{
				ShippingInfo: models.ShippingInfo{ActualCost: &ac},
			},
		},
		{
			ID:          "ord-3",
			Status:      models.OrderShipped,
			TotalAmount: 20000,
			Currency:    currency.NGN,
			Items:       []models.OrderItem{{ProductID: "prod-gone", Quantity: 1, Price: 20000}},
		},
	}

	purchases := []models.RawMaterialPurchase{
		{ID: "pur-1", Price: 500, PurchaseDate: now.AddDate(0, 0, -10)},
		{ID: "pur-2", Price: 300, PurchaseDate: now.AddDate(0, -2, 0)},
	}
	labor := []models.LaborCost{
		{EmployeeName: "Ada", MonthlySalary: 60000},
	}

	s := BuildSummary(orderList, testRef(), purchases, labor, rates, now)

	wantRevenue := 100*1500.0 + 80000 + 20000
	if s.TotalRevenueInNGN != wantRevenue {
		t.Errorf("TotalRevenueInNGN = %v, want %v", s.TotalRevenueInNGN, wantRevenue)
	}
	if s.TotalOrders != 3 || s.PendingOrders != 1 || s.CompletedOrders != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/1/1", s.TotalOrders, s.PendingOrders, s.CompletedOrders)
	}
	if len(s.OverdueOrders) != 1 || s.OverdueOrders[0] != "ord-1" {
		t.Errorf("OverdueOrders = %v, want [ord-1]", s.OverdueOrders)
	}
	if len(s.TopSellingProducts) != 2 || s.TopSellingProducts[0].ProductID != "prod-scarf" {
		t.Fatalf("TopSellingProducts = %+v", s.TopSellingProducts)
	}
	if s.TopSellingProducts[0].TotalQuantity != 2 || s.TopSellingProducts[0].RevenueInNGN != 150000 {
		t.Errorf("scarf sales = %+v", s.TopSellingProducts[0])
	}
	if len(s.LowInventoryProducts) != 1 || s.LowInventoryProducts[0] != "prod-basket" {
		t.Errorf("LowInventoryProducts = %v, want [prod-basket]", s.LowInventoryProducts)
	}
	if s.MonthlyExpensesInNGN != 60500 {
		t.Errorf("MonthlyExpensesInNGN = %v, want 60500", s.MonthlyExpensesInNGN)
	}

	reasons := map[string][]string{}
	for _, a := range s.OrdersNeedingAttention {
		reasons[a.OrderID] = append(reasons[a.OrderID], a.Reason)
	}
	if len(reasons["ord-1"]) != 1 || reasons["ord-1"][0] != "overdue" {
		t.Errorf("ord-1 reasons = %v", reasons["ord-1"])
	}
	if len(reasons["ord-3"]) != 2 {
		t.Errorf("ord-3 reasons = %v, want invalid_products and missing_shipping_cost", reasons["ord-3"])
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	s := BuildSummary(nil, testRef(), nil, nil, currency.DefaultRates(), time.Now())
	if s.TotalRevenueInNGN != 0 || s.ProfitMarginPercent != 0 {
		t.Errorf("empty summary has money: %+v", s)
	}
	if s.OverdueOrders == nil || s.TopSellingProducts == nil {
		t.Error("slices must be non-nil for JSON encoding")
	}
}
