package models

import "time"

type ProductMaterial struct {
	MaterialID string  `json:"materialId" bson:"materialId"`
	Quantity   float64 `json:"quantity" bson:"quantity"`
}

type ProductCost struct {
	CategoryID string  `json:"categoryId" bson:"categoryId"` // raw_material, labor, other
	Value      float64 `json:"value" bson:"value"`
}

type Product struct {
	ID         string            `json:"id" bson:"_id"`
	Name       string            `json:"name" bson:"name"`
	BaseCost   float64           `json:"baseCost,omitempty" bson:"baseCost,omitempty"`
	Materials  []ProductMaterial `json:"materials" bson:"materials"`
	Costs      []ProductCost     `json:"costs,omitempty" bson:"costs,omitempty"`
	TimeToMake float64           `json:"timeToMake" bson:"timeToMake"` // in days
	Photo      string            `json:"photo,omitempty" bson:"photo,omitempty"`
	CreatedAt  time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt" bson:"updatedAt"`
}

type PurchaseHistory struct {
	ID           string    `json:"id" bson:"id"`
	Quantity     float64   `json:"quantity" bson:"quantity"`
	TotalCost    float64   `json:"totalCost" bson:"totalCost"`
	PurchaseDate time.Time `json:"purchaseDate" bson:"purchaseDate"`
}

type RawMaterial struct {
	ID                string            `json:"id" bson:"_id"`
	Name              string            `json:"name" bson:"name"`
	Unit              string            `json:"unit" bson:"unit"`
	CurrentQuantity   float64           `json:"currentQuantity" bson:"currentQuantity"`
	LastPurchasePrice float64           `json:"lastPurchasePrice" bson:"lastPurchasePrice"`
	LastPurchaseDate  time.Time         `json:"lastPurchaseDate" bson:"lastPurchaseDate"`
	PurchaseHistory   []PurchaseHistory `json:"purchaseHistory" bson:"purchaseHistory"`
}

type RawMaterialPurchase struct {
	ID           string    `json:"id" bson:"_id"`
	MaterialID   string    `json:"materialId" bson:"materialId"`
	Quantity     float64   `json:"quantity" bson:"quantity"`
	Price        float64   `json:"price" bson:"price"`
	PurchaseDate time.Time `json:"purchaseDate" bson:"purchaseDate"`
	PurchasedBy  string    `json:"purchasedBy" bson:"purchasedBy"`
}

type LaborCost struct {
	ID            string     `json:"id" bson:"_id"`
	EmployeeName  string     `json:"employeeName" bson:"employeeName"`
	MonthlySalary float64    `json:"monthlySalary" bson:"monthlySalary"`
	DaysWorked    float64    `json:"daysWorked" bson:"daysWorked"`
	HoursPerDay   float64    `json:"hoursPerDay" bson:"hoursPerDay"`
	StartDate     time.Time  `json:"startDate" bson:"startDate"`
	EndDate       *time.Time `json:"endDate,omitempty" bson:"endDate,omitempty"`
}
