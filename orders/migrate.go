package orders

import "atelier/models"

// UpgradeShape folds the pre-wrapper document layout (flat shippingInfo and
// shippingAddress on the order) into the nested shipping block. Runs at the
// store-read boundary only; storage keeps whatever shape it has.
func UpgradeShape(o *models.Order) {
	legacy := o.LegacyShippingInfo != nil && o.Shipping.Status == ""
	if legacy {
		addr := models.ShippingAddress{}
		if o.LegacyShippingAddress != nil {
			addr = *o.LegacyShippingAddress
		}
		o.Shipping = models.Shipping{
			ShippingAddress: addr,
			ShippingInfo:    *o.LegacyShippingInfo,
			Status:          "pending",
		}
	}
	o.LegacyShippingInfo = nil
	o.LegacyShippingAddress = nil

	if o.Shipping.Status == "" {
		o.Shipping.Status = "pending"
	}
	if o.ExtraExpenses == nil {
		o.ExtraExpenses = []models.ExtraExpense{}
	}
	if o.AdditionalPayments == nil {
		o.AdditionalPayments = []models.AdditionalPayment{}
	}
	if o.Items == nil {
		o.Items = []models.OrderItem{}
	}
}
