package webhook

import (
	"encoding/json"
	"testing"
	"time"

	"atelier/currency"
	"atelier/models"
)

func TestMapStatus(t *testing.T) {
	tests := []struct {
		in   string
		want models.OrderStatus
	}{
		{"pending", models.OrderPending},
		{"Processing", models.OrderProcessing},
		{"COMPLETED", models.OrderCompleted},
		{"cancelled", models.OrderCancelled},
		{"shipped", models.OrderShipped},
		{"delivered", models.OrderDelivered},
		{"on-hold", models.OrderAccepted},
		{"accepted", models.OrderAccepted},
		{"refund-requested", models.OrderAccepted},
		{"", models.OrderAccepted},
	}
	for _, tt := range tests {
		if got := MapStatus(tt.in); got != tt.want {
			t.Errorf("MapStatus(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func samplePayload(t *testing.T) vendorOrder {
	t.Helper()
	raw := `{
		"id": 7731,
		"status": "processing",
		"currency": "usd",
		"total": "100.00",
		"date_created": "2025-06-01T10:30:00",
		"customer_note": "please gift wrap",
		"billing": {"first_name": "Ngozi", "last_name": "Okeke", "email": "ngozi@example.com", "phone": "+2348000000"},
		"shipping": {"address_1": "12 Awolowo Rd", "city": "Ikoyi", "state": "Lagos", "country": "NG", "postcode": "101233"},
		"shipping_total": "15.00",
		"line_items": [
			{"product_id": 88, "quantity": 2, "price": "40.00",
			 "meta_data": [{"key": "_internal_product_id", "value": "prod-scarf"}]},
			{"product_id": 451, "quantity": 1, "price": "20.00"}
		],
		"meta_data": [{"key": "_tracking_number", "value": "TRK-9"}, {"key": "_carrier", "value": "DHL"}]
	}`
	var p vendorOrder
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return p
}

func TestMapOrder(t *testing.T) {
	p := samplePayload(t)
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	order := mapOrder(p, now)

	if order.ID != "7731" {
		t.Errorf("ID = %q, want 7731", order.ID)
	}
	if order.CustomerName != "Ngozi Okeke" {
		t.Errorf("CustomerName = %q", order.CustomerName)
	}
	if order.Currency != currency.USD {
		t.Errorf("Currency = %s, want USD", order.Currency)
	}
	if order.Status != models.OrderProcessing {
		t.Errorf("Status = %s, want processing", order.Status)
	}
	if order.TotalAmount != 100 {
		t.Errorf("TotalAmount = %v, want 100", order.TotalAmount)
	}
	if len(order.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(order.Items))
	}
	// internal product id wins over the vendor id
	if order.Items[0].ProductID != "prod-scarf" {
		t.Errorf("item 0 productId = %q, want prod-scarf", order.Items[0].ProductID)
	}
	if order.Items[1].ProductID != "451" {
		t.Errorf("item 1 productId = %q, want 451", order.Items[1].ProductID)
	}
	if order.Shipping.ShippingInfo.TrackingNumber != "TRK-9" || order.Shipping.ShippingInfo.Carrier != "DHL" {
		t.Errorf("shipping meta not mapped: %+v", order.Shipping.ShippingInfo)
	}
	if order.Shipping.Status != "pending" {
		t.Errorf("shipping status = %q, want pending", order.Shipping.Status)
	}
	if est := order.Shipping.ShippingInfo.EstimatedDeliveryDate; est == nil || !est.Equal(now.AddDate(0, 0, 14)) {
		t.Errorf("estimated delivery = %v, want now+14d", est)
	}
	if order.ProductCostInNGN != 0 || order.ProfitMargin != 0 || order.HasInvalidProducts {
		t.Errorf("fresh order must have zeroed financials: %+v", order)
	}
	if order.ExtraExpenses == nil || order.AdditionalPayments == nil {
		t.Error("expense/payment lists must be empty, not nil")
	}
}

func TestMapOrderUnknownCustomerName(t *testing.T) {
	p := samplePayload(t)
	p.Billing.FirstName = ""
	p.Billing.LastName = ""
	order := mapOrder(p, time.Now())
	if order.CustomerName != "Unknown Customer" {
		t.Fatalf("CustomerName = %q, want Unknown Customer", order.CustomerName)
	}
}

func TestMergeExistingPreservesCuratedFields(t *testing.T) {
	p := samplePayload(t)
	now := time.Now()
	fresh := mapOrder(p, now)

	actual := 20000.0
	shipped := now.AddDate(0, 0, -1)
	existing := fresh
	existing.ExtraExpenses = []models.ExtraExpense{
		{ID: "exp-1", Description: "customs", Amount: 10, Category: "shipping"},
	}
	existing.AdditionalPayments = []models.AdditionalPayment{
		{ID: "pay-1", Description: "rush fee", Amount: 5, Type: "other"},
	}
	existing.TotalExtraExpenses = 15000
	existing.TotalAdditionalPayments = 7500
	existing.ProductCostInNGN = 60000
	existing.ShippingCostInNGN = 20000
	existing.ProfitMargin = 62500
	existing.HasInvalidProducts = true
	existing.Shipping.ShippingInfo.ActualCost = &actual
	existing.Shipping.ShippingInfo.DateShipped = &shipped
	existing.Shipping.ShippingInfo.ShippingCompany = "GIG Logistics"
	existing.Shipping.Status = "in_transit"

	merged := mergeExisting(fresh, existing)

	if len(merged.ExtraExpenses) != 1 || merged.ExtraExpenses[0].ID != "exp-1" {
		t.Errorf("extra expenses not preserved: %+v", merged.ExtraExpenses)
	}
	if len(merged.AdditionalPayments) != 1 || merged.AdditionalPayments[0].ID != "pay-1" {
		t.Errorf("additional payments not preserved: %+v", merged.AdditionalPayments)
	}
	if merged.TotalExtraExpenses != 15000 || merged.TotalAdditionalPayments != 7500 {
		t.Errorf("totals not preserved: %+v", merged)
	}
	if merged.ProductCostInNGN != 60000 || merged.ShippingCostInNGN != 20000 || merged.ProfitMargin != 62500 {
		t.Errorf("financial snapshot not preserved: %+v", merged)
	}
	if !merged.HasInvalidProducts {
		t.Error("hasInvalidProducts not preserved")
	}
	if merged.Shipping.ShippingInfo.ActualCost == nil || *merged.Shipping.ShippingInfo.ActualCost != 20000 {
		t.Error("shipping actualCost not preserved")
	}
	if merged.Shipping.ShippingInfo.DateShipped == nil {
		t.Error("dateShipped not preserved")
	}
	if merged.Shipping.ShippingInfo.ShippingCompany != "GIG Logistics" {
		t.Error("shippingCompany not preserved")
	}
	if merged.Shipping.Status != "in_transit" {
		t.Errorf("shipping status = %q, want in_transit", merged.Shipping.Status)
	}

	// everything else comes from the new payload
	if merged.CustomerName != fresh.CustomerName || merged.TotalAmount != fresh.TotalAmount {
		t.Error("payload fields must be replaced wholesale")
	}
}

func TestMergeExistingNilListsBecomeEmpty(t *testing.T) {
	p := samplePayload(t)
	fresh := mapOrder(p, time.Now())
	existing := fresh
	existing.ExtraExpenses = nil
	existing.AdditionalPayments = nil

	merged := mergeExisting(fresh, existing)
	if merged.ExtraExpenses == nil || merged.AdditionalPayments == nil {
		t.Fatal("merged lists must never be nil")
	}
}

func TestFlexDecoding(t *testing.T) {
	var p vendorOrder
	raw := `{"id": "A-19", "total": 55.5, "shipping_total": 3, "line_items": []}`
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ID != "A-19" {
		t.Errorf("string id = %q", p.ID)
	}
	if p.Total != 55.5 || p.ShippingTotal != 3 {
		t.Errorf("numeric totals: %v %v", p.Total, p.ShippingTotal)
	}
	if p.LineItems == nil {
		t.Error("empty line_items array should decode as non-nil")
	}
}
