package finance

import "atelier/models"

// Readiness tells the engine whether reference data has actually arrived.
// A snapshot computed against data that is not Ready reports invalid
// products instead of a misleadingly low cost.
type Readiness int

const (
	NotLoaded Readiness = iota
	Loading
	Ready
)

type RefKind string

const (
	RefProduct  RefKind = "product"
	RefMaterial RefKind = "material"
)

// UnresolvedRef records a catalog or inventory id that could not be priced.
type UnresolvedRef struct {
	Kind RefKind `json:"kind"`
	ID   string  `json:"id"`
}

// RefData is everything the engine needs to price an order.
type RefData struct {
	Catalog   map[string]models.Product
	Inventory map[string]models.RawMaterial
	DailyRate float64
	State     Readiness
}

// NewRefData indexes the reference collections and computes the blended
// daily labor rate.
func NewRefData(products []models.Product, materials []models.RawMaterial, labor []models.LaborCost) RefData {
	catalog := make(map[string]models.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}
	inventory := make(map[string]models.RawMaterial, len(materials))
	for _, m := range materials {
		inventory[m.ID] = m
	}
	return RefData{
		Catalog:   catalog,
		Inventory: inventory,
		DailyRate: DailyRate(labor),
		State:     Ready,
	}
}

// DailyRate blends all recorded employees into a single cost per working
// day: total monthly salaries over total days worked. The same rate is used
// for every product regardless of who would make it.
func DailyRate(costs []models.LaborCost) float64 {
	var totalSalary, totalDays float64
	for _, c := range costs {
		totalSalary += c.MonthlySalary
		totalDays += c.DaysWorked
	}
	if totalDays <= 0 {
		return 0
	}
	return totalSalary / totalDays
}
