package models

import (
	"time"

	"atelier/currency"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderAccepted   OrderStatus = "accepted"
)

type SocialMediaRef struct {
	Platform string `json:"platform" bson:"platform"`
	Handle   string `json:"handle" bson:"handle"`
	URL      string `json:"url" bson:"url"`
}

type AdditionalMaterial struct {
	MaterialID string  `json:"materialId" bson:"materialId"`
	Quantity   float64 `json:"quantity" bson:"quantity"`
}

type AdditionalCost struct {
	Name   string  `json:"name" bson:"name"`
	Amount float64 `json:"amount" bson:"amount"`
}

type OrderItem struct {
	ProductID           string               `json:"productId" bson:"productId"`
	Quantity            int                  `json:"quantity" bson:"quantity"`
	Price               float64              `json:"price" bson:"price"`
	AdditionalMaterials []AdditionalMaterial `json:"additionalMaterials,omitempty" bson:"additionalMaterials,omitempty"`
	AdditionalCosts     []AdditionalCost     `json:"additionalCosts,omitempty" bson:"additionalCosts,omitempty"`
}

type ShippingAddress struct {
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	State      string `json:"state" bson:"state"`
	Country    string `json:"country" bson:"country"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
}

type ShippingInfo struct {
	CustomerPaid          float64    `json:"customerPaid" bson:"customerPaid"`
	ActualCost            *float64   `json:"actualCost,omitempty" bson:"actualCost,omitempty"`
	TrackingNumber        string     `json:"trackingNumber,omitempty" bson:"trackingNumber,omitempty"`
	Carrier               string     `json:"carrier,omitempty" bson:"carrier,omitempty"`
	ShippingCompany       string     `json:"shippingCompany,omitempty" bson:"shippingCompany,omitempty"`
	EstimatedDeliveryDate *time.Time `json:"estimatedDeliveryDate,omitempty" bson:"estimatedDeliveryDate,omitempty"`
	DateShipped           *time.Time `json:"dateShipped,omitempty" bson:"dateShipped,omitempty"`
	ActualDeliveryDate    *time.Time `json:"actualDeliveryDate,omitempty" bson:"actualDeliveryDate,omitempty"`
}

type Shipping struct {
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress"`
	ShippingInfo    ShippingInfo    `json:"shippingInfo" bson:"shippingInfo"`
	Status          string          `json:"status" bson:"status"`
}

type ExtraExpense struct {
	ID          string    `json:"id" bson:"id"`
	Description string    `json:"description" bson:"description"`
	Amount      float64   `json:"amount" bson:"amount"`
	Date        time.Time `json:"date" bson:"date"`
	Category    string    `json:"category" bson:"category"` // shipping, materials, labor, other
	Notes       string    `json:"notes,omitempty" bson:"notes,omitempty"`
}

type AdditionalPayment struct {
	ID          string    `json:"id" bson:"id"`
	Description string    `json:"description" bson:"description"`
	Amount      float64   `json:"amount" bson:"amount"`
	Date        time.Time `json:"date" bson:"date"`
	Type        string    `json:"type" bson:"type"` // shipping, product, other
	Notes       string    `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Order is the persisted shape. The financial fields below the shipping block
// are caches of the last reconciliation; readers must recompute them before
// display.
type Order struct {
	ID            string            `json:"id" bson:"_id"`
	CustomerName  string            `json:"customerName" bson:"customerName"`
	CustomerEmail string            `json:"customerEmail" bson:"customerEmail"`
	CustomerPhone string            `json:"customerPhone" bson:"customerPhone"`
	SocialMedia   []SocialMediaRef  `json:"socialMedia,omitempty" bson:"socialMedia,omitempty"`
	Items         []OrderItem       `json:"items" bson:"items"`
	TotalAmount   float64           `json:"totalAmount" bson:"totalAmount"`
	Currency      currency.Currency `json:"currency" bson:"currency"`
	Status        OrderStatus       `json:"status" bson:"status"`
	OrderDate     time.Time         `json:"orderDate" bson:"orderDate"`
	DateCompleted *time.Time        `json:"dateCompleted,omitempty" bson:"dateCompleted,omitempty"`
	Notes         string            `json:"notes,omitempty" bson:"notes,omitempty"`

	Shipping Shipping `json:"shipping" bson:"shipping"`

	ExtraExpenses           []ExtraExpense      `json:"extraExpenses" bson:"extraExpenses"`
	AdditionalPayments      []AdditionalPayment `json:"additionalPayments" bson:"additionalPayments"`
	TotalExtraExpenses      float64             `json:"totalExtraExpenses" bson:"totalExtraExpenses"`
	TotalAdditionalPayments float64             `json:"totalAdditionalPayments" bson:"totalAdditionalPayments"`
	ProductCostInNGN        float64             `json:"productCostInNGN" bson:"productCostInNGN"`
	ShippingCostInNGN       float64             `json:"shippingCostInNGN" bson:"shippingCostInNGN"`
	ProfitMargin            float64             `json:"profitMargin" bson:"profitMargin"`
	HasInvalidProducts      bool                `json:"hasInvalidProducts" bson:"hasInvalidProducts"`

	// Pre-wrapper documents stored shipping fields flat on the order. Kept
	// here so old documents still decode; UpgradeShape folds them into
	// Shipping on read.
	LegacyShippingInfo    *ShippingInfo    `json:"-" bson:"shippingInfo,omitempty"`
	LegacyShippingAddress *ShippingAddress `json:"-" bson:"shippingAddress,omitempty"`
}
