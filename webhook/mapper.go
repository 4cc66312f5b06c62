package webhook

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"atelier/currency"
	"atelier/models"
)

// flexString decodes a JSON string or number into a string, the way vendor
// payloads mix the two for ids.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = flexString(v)
		return nil
	}
	*f = flexString(s)
	return nil
}

// flexFloat decodes a JSON number or a quoted numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

type metaEntry struct {
	Key   string     `json:"key"`
	Value flexString `json:"value"`
}

type payloadItem struct {
	ProductID flexString  `json:"product_id"`
	Quantity  int         `json:"quantity"`
	Price     flexFloat   `json:"price"`
	MetaData  []metaEntry `json:"meta_data"`
}

type payloadBilling struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type payloadShipping struct {
	Address1 string `json:"address_1"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Postcode string `json:"postcode"`
}

// vendorOrder is the inbound e-commerce webhook body.
type vendorOrder struct {
	ID            flexString      `json:"id"`
	Status        string          `json:"status"`
	Currency      string          `json:"currency"`
	Total         flexFloat       `json:"total"`
	DateCreated   string          `json:"date_created"`
	DateCompleted string          `json:"date_completed"`
	CustomerNote  string          `json:"customer_note"`
	Billing       *payloadBilling `json:"billing"`
	Shipping      payloadShipping `json:"shipping"`
	ShippingTotal flexFloat       `json:"shipping_total"`
	LineItems     []payloadItem   `json:"line_items"`
	MetaData      []metaEntry     `json:"meta_data"`
}

func getMetaValue(meta []metaEntry, key string) string {
	for _, m := range meta {
		if m.Key == key {
			return string(m.Value)
		}
	}
	return ""
}

// resolveProductID prefers the staff-assigned internal id stashed in the
// line item's metadata over the vendor's own product id.
func resolveProductID(item payloadItem) string {
	if internal := getMetaValue(item.MetaData, "_internal_product_id"); internal != "" {
		return internal
	}
	return string(item.ProductID)
}

// MapStatus folds the vendor status vocabulary onto the internal enum.
// Unrecognized statuses land on accepted rather than rejecting the payload.
func MapStatus(status string) models.OrderStatus {
	switch strings.ToLower(status) {
	case "pending":
		return models.OrderPending
	case "processing":
		return models.OrderProcessing
	case "completed":
		return models.OrderCompleted
	case "cancelled":
		return models.OrderCancelled
	case "shipped":
		return models.OrderShipped
	case "delivered":
		return models.OrderDelivered
	default: // on-hold, accepted, anything else
		return models.OrderAccepted
	}
}

func parseVendorDate(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}

func estimateDelivery(now time.Time) time.Time {
	return now.AddDate(0, 0, 14)
}

// mapOrder turns a validated vendor payload into a fresh Order with all
// financial fields zeroed. Curated fields from a previously stored copy are
// merged afterwards, see mergeExisting.
func mapOrder(p vendorOrder, now time.Time) models.Order {
	name := strings.TrimSpace(p.Billing.FirstName + " " + p.Billing.LastName)
	if name == "" {
		name = "Unknown Customer"
	}

	items := make([]models.OrderItem, 0, len(p.LineItems))
	for _, li := range p.LineItems {
		items = append(items, models.OrderItem{
			ProductID:           resolveProductID(li),
			Quantity:            li.Quantity,
			Price:               float64(li.Price),
			AdditionalMaterials: []models.AdditionalMaterial{},
			AdditionalCosts:     []models.AdditionalCost{},
		})
	}

	dateCompleted := parseVendorDate(p.DateCompleted, now)
	estimated := estimateDelivery(now)

	return models.Order{
		ID:                      string(p.ID),
		CustomerName:            name,
		CustomerEmail:           p.Billing.Email,
		CustomerPhone:           p.Billing.Phone,
		Items:                   items,
		TotalAmount:             float64(p.Total),
		Currency:                currency.Parse(p.Currency),
		Status:                  MapStatus(p.Status),
		OrderDate:               parseVendorDate(p.DateCreated, now),
		DateCompleted:           &dateCompleted,
		Notes:                   p.CustomerNote,
		ExtraExpenses:           []models.ExtraExpense{},
		AdditionalPayments:      []models.AdditionalPayment{},
		TotalExtraExpenses:      0,
		TotalAdditionalPayments: 0,
		ProductCostInNGN:        0,
		ShippingCostInNGN:       0,
		ProfitMargin:            0,
		HasInvalidProducts:      false,
		Shipping: models.Shipping{
			ShippingAddress: models.ShippingAddress{
				Street:     p.Shipping.Address1,
				City:       p.Shipping.City,
				State:      p.Shipping.State,
				Country:    p.Shipping.Country,
				PostalCode: p.Shipping.Postcode,
			},
			ShippingInfo: models.ShippingInfo{
				CustomerPaid:          float64(p.ShippingTotal),
				TrackingNumber:        getMetaValue(p.MetaData, "_tracking_number"),
				Carrier:               getMetaValue(p.MetaData, "_carrier"),
				EstimatedDeliveryDate: &estimated,
			},
			Status: "pending",
		},
	}
}

// mergeExisting layers the stored order's manually curated fields over a
// freshly mapped payload. Customer info, items, totals, status and dates are
// taken from the new payload wholesale.
func mergeExisting(fresh, existing models.Order) models.Order {
	merged := fresh

	merged.ExtraExpenses = existing.ExtraExpenses
	if merged.ExtraExpenses == nil {
		merged.ExtraExpenses = []models.ExtraExpense{}
	}
	merged.AdditionalPayments = existing.AdditionalPayments
	if merged.AdditionalPayments == nil {
		merged.AdditionalPayments = []models.AdditionalPayment{}
	}
	merged.TotalExtraExpenses = existing.TotalExtraExpenses
	merged.TotalAdditionalPayments = existing.TotalAdditionalPayments
	merged.ProductCostInNGN = existing.ProductCostInNGN
	merged.ShippingCostInNGN = existing.ShippingCostInNGN
	merged.ProfitMargin = existing.ProfitMargin
	merged.HasInvalidProducts = existing.HasInvalidProducts

	if existing.Shipping.ShippingInfo.ActualCost != nil {
		merged.Shipping.ShippingInfo.ActualCost = existing.Shipping.ShippingInfo.ActualCost
	}
	if existing.Shipping.ShippingInfo.DateShipped != nil {
		merged.Shipping.ShippingInfo.DateShipped = existing.Shipping.ShippingInfo.DateShipped
	}
	if existing.Shipping.ShippingInfo.ActualDeliveryDate != nil {
		merged.Shipping.ShippingInfo.ActualDeliveryDate = existing.Shipping.ShippingInfo.ActualDeliveryDate
	}
	if existing.Shipping.ShippingInfo.ShippingCompany != "" {
		merged.Shipping.ShippingInfo.ShippingCompany = existing.Shipping.ShippingInfo.ShippingCompany
	}
	if existing.Shipping.Status != "" {
		merged.Shipping.Status = existing.Shipping.Status
	}

	return merged
}
