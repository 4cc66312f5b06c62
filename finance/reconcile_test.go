package finance

import (
	"reflect"
	"testing"
	"time"

	"atelier/currency"
	"atelier/models"
)

func testRefData() RefData {
	products := []models.Product{
		{
			ID:   "prod-scarf",
			Name: "Woven Scarf",
			Materials: []models.ProductMaterial{
				{MaterialID: "mat-wool", Quantity: 2},
				{MaterialID: "mat-dye", Quantity: 0.5},
			},
			TimeToMake: 3,
		},
		{
			ID:   "prod-basket",
			Name: "Raffia Basket",
			Materials: []models.ProductMaterial{
				{MaterialID: "mat-raffia", Quantity: 4},
			},
			TimeToMake: 2,
		},
	}
	materials := []models.RawMaterial{
		{ID: "mat-wool", Name: "Wool", Unit: "kg", LastPurchasePrice: 3000},
		{ID: "mat-dye", Name: "Dye", Unit: "l", LastPurchasePrice: 1000},
		{ID: "mat-raffia", Name: "Raffia", Unit: "bundle", LastPurchasePrice: 500},
	}
	labor := []models.LaborCost{
		{ID: "emp-1", EmployeeName: "Ada", MonthlySalary: 60000, DaysWorked: 20},
		{ID: "emp-2", EmployeeName: "Bisi", MonthlySalary: 40000, DaysWorked: 20},
	}
	return NewRefData(products, materials, labor)
}

func TestDailyRate(t *testing.T) {
	labor := []models.LaborCost{
		{MonthlySalary: 60000, DaysWorked: 20},
		{MonthlySalary: 40000, DaysWorked: 20},
	}
	if got := DailyRate(labor); got != 2500 {
		t.Fatalf("DailyRate = %v, want 2500", got)
	}
	if got := DailyRate(nil); got != 0 {
		t.Fatalf("DailyRate with no employees = %v, want 0", got)
	}
	if got := DailyRate([]models.LaborCost{{MonthlySalary: 50000}}); got != 0 {
		t.Fatalf("DailyRate with zero days worked = %v, want 0", got)
	}
}

func TestItemCost(t *testing.T) {
	ref := testRefData() // daily rate 2500

	// scarf: materials 2*3000 + 0.5*1000 = 6500, labor 3*2500 = 7500
	item := models.OrderItem{ProductID: "prod-scarf", Quantity: 2}
	got, unresolved := ItemCost(item, ref)
	if want := (6500.0 + 7500.0) * 2; got != want {
		t.Fatalf("ItemCost = %v, want %v", got, want)
	}
	if len(unresolved) != 0 {
		t.Fatalf("unexpected unresolved refs: %v", unresolved)
	}
}

func TestItemCostWithExtras(t *testing.T) {
	ref := testRefData()

	item := models.OrderItem{
		ProductID: "prod-basket",
		Quantity:  3,
		AdditionalMaterials: []models.AdditionalMaterial{
			{MaterialID: "mat-dye", Quantity: 1}, // +1000
		},
		AdditionalCosts: []models.AdditionalCost{
			{Name: "gift wrap", Amount: 250},
		},
	}
	// basket base: 4*500 + 2*2500 = 7000; extras 1000 + 250
	got, _ := ItemCost(item, ref)
	if want := (7000.0 + 1000.0 + 250.0) * 3; got != want {
		t.Fatalf("ItemCost = %v, want %v", got, want)
	}
}

func TestItemCostUnknownProduct(t *testing.T) {
	ref := testRefData()
	got, unresolved := ItemCost(models.OrderItem{ProductID: "prod-ghost", Quantity: 5}, ref)
	if got != 0 {
		t.Fatalf("unknown product must cost exactly 0, got %v", got)
	}
	want := []UnresolvedRef{{Kind: RefProduct, ID: "prod-ghost"}}
	if !reflect.DeepEqual(unresolved, want) {
		t.Fatalf("unresolved = %v, want %v", unresolved, want)
	}
}

func TestItemCostSkipsMissingMaterials(t *testing.T) {
	ref := testRefData()
	delete(ref.Inventory, "mat-dye")

	// scarf now prices only the wool: 2*3000 + labor 7500
	got, unresolved := ItemCost(models.OrderItem{ProductID: "prod-scarf", Quantity: 1}, ref)
	if want := 6000.0 + 7500.0; got != want {
		t.Fatalf("ItemCost = %v, want %v", got, want)
	}
	if len(unresolved) != 1 || unresolved[0].Kind != RefMaterial || unresolved[0].ID != "mat-dye" {
		t.Fatalf("expected mat-dye unresolved, got %v", unresolved)
	}
}

func TestProductCostFlagsInvalidAndStillSumsRest(t *testing.T) {
	ref := testRefData()
	items := []models.OrderItem{
		{ProductID: "prod-scarf", Quantity: 1},  // 14000
		{ProductID: "prod-ghost", Quantity: 10}, // 0, flags order
	}
	cost, hasInvalid, _ := ProductCost(items, ref)
	if cost != 14000 {
		t.Fatalf("cost = %v, want 14000", cost)
	}
	if !hasInvalid {
		t.Fatal("hasInvalid should be true when any product is unresolved")
	}
}

func TestProductCostNotReadyReferenceData(t *testing.T) {
	ref := testRefData()
	items := []models.OrderItem{{ProductID: "prod-scarf", Quantity: 1}}

	for _, state := range []Readiness{NotLoaded, Loading} {
		ref.State = state
		cost, hasInvalid, _ := ProductCost(items, ref)
		if cost != 0 || !hasInvalid {
			t.Fatalf("state %v: cost=%v hasInvalid=%v, want 0/true", state, cost, hasInvalid)
		}
	}

	// an empty catalog is treated the same way
	empty := NewRefData(nil, nil, nil)
	cost, hasInvalid, _ := ProductCost(items, empty)
	if cost != 0 || !hasInvalid {
		t.Fatalf("empty catalog: cost=%v hasInvalid=%v, want 0/true", cost, hasInvalid)
	}
}

func sampleOrder() models.Order {
	actual := 20000.0
	return models.Order{
		ID:          "order-1",
		Items:       []models.OrderItem{{ProductID: "prod-scarf", Quantity: 1}},
		TotalAmount: 100,
		Currency:    currency.USD,
		OrderDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Shipping: models.Shipping{
			ShippingInfo: models.ShippingInfo{ActualCost: &actual},
			Status:       "pending",
		},
		ExtraExpenses: []models.ExtraExpense{
			{ID: "exp-1", Description: "customs", Amount: 10, Category: "shipping"},
		},
		AdditionalPayments: []models.AdditionalPayment{
			{ID: "pay-1", Description: "rush fee", Amount: 5, Type: "other"},
		},
	}
}

func TestReconcileWorkedExample(t *testing.T) {
	// order total 100 USD at 1500, shipping 20000 NGN, one 10 USD expense,
	// one 5 USD payment, product cost forced to 60000 NGN
	order := sampleOrder()
	ref := testRefData()
	ref.Catalog["prod-scarf"] = models.Product{
		ID:         "prod-scarf",
		Materials:  []models.ProductMaterial{{MaterialID: "mat-wool", Quantity: 20}},
		TimeToMake: 0,
	} // 20*3000 = 60000

	snap := Reconcile(order, ref, currency.DefaultRates())

	if snap.TotalAmountInNGN != 150000 {
		t.Errorf("TotalAmountInNGN = %v, want 150000", snap.TotalAmountInNGN)
	}
	if snap.ProductCostInNGN != 60000 {
		t.Errorf("ProductCostInNGN = %v, want 60000", snap.ProductCostInNGN)
	}
	if snap.ShippingCostInNGN != 20000 {
		t.Errorf("ShippingCostInNGN = %v, want 20000", snap.ShippingCostInNGN)
	}
	if snap.TotalExtraExpensesInNGN != 15000 {
		t.Errorf("TotalExtraExpensesInNGN = %v, want 15000", snap.TotalExtraExpensesInNGN)
	}
	if snap.TotalAdditionalPaymentsInNGN != 7500 {
		t.Errorf("TotalAdditionalPaymentsInNGN = %v, want 7500", snap.TotalAdditionalPaymentsInNGN)
	}
	if snap.ProfitMargin != 62500 {
		t.Errorf("ProfitMargin = %v, want 62500", snap.ProfitMargin)
	}
	if snap.HasInvalidProducts {
		t.Error("HasInvalidProducts should be false")
	}
}

func TestReconcileProfitIdentity(t *testing.T) {
	order := sampleOrder()
	ref := testRefData()
	snap := Reconcile(order, ref, currency.DefaultRates())

	identity := snap.TotalAmountInNGN - snap.ProductCostInNGN - snap.ShippingCostInNGN -
		snap.TotalExtraExpensesInNGN + snap.TotalAdditionalPaymentsInNGN
	if snap.ProfitMargin != identity {
		t.Fatalf("profit identity broken: %v != %v", snap.ProfitMargin, identity)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	order := sampleOrder()
	ref := testRefData()
	rates := currency.DefaultRates()

	first := Reconcile(order, ref, rates)
	second := Reconcile(order, ref, rates)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reconcile not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestReconcileNoShippingActualCost(t *testing.T) {
	order := sampleOrder()
	order.Shipping.ShippingInfo.ActualCost = nil
	snap := Reconcile(order, testRefData(), currency.DefaultRates())
	if snap.ShippingCostInNGN != 0 {
		t.Fatalf("missing actualCost should reconcile to 0, got %v", snap.ShippingCostInNGN)
	}
}

func TestReconcileExpensesUseOrderCurrency(t *testing.T) {
	order := sampleOrder()
	order.Currency = currency.NGN
	snap := Reconcile(order, testRefData(), currency.DefaultRates())
	if snap.TotalExtraExpensesInNGN != 10 {
		t.Fatalf("NGN expense should not be converted, got %v", snap.TotalExtraExpensesInNGN)
	}
	if snap.TotalAdditionalPaymentsInNGN != 5 {
		t.Fatalf("NGN payment should not be converted, got %v", snap.TotalAdditionalPaymentsInNGN)
	}
}

func TestApply(t *testing.T) {
	order := sampleOrder()
	snap := Snapshot{
		ProductCostInNGN:             60000,
		ShippingCostInNGN:            20000,
		TotalExtraExpensesInNGN:      15000,
		TotalAdditionalPaymentsInNGN: 7500,
		TotalAmountInNGN:             150000,
		ProfitMargin:                 62500,
		HasInvalidProducts:           true,
	}
	Apply(&order, snap)
	if order.ProductCostInNGN != 60000 || order.ProfitMargin != 62500 || !order.HasInvalidProducts {
		t.Fatalf("Apply did not copy snapshot onto order: %+v", order)
	}
	if order.TotalExtraExpenses != 15000 || order.TotalAdditionalPayments != 7500 {
		t.Fatalf("Apply did not copy totals: %+v", order)
	}
}
