package orders

import (
	"testing"

	"atelier/models"
)

func TestUpgradeShapeFlatDocument(t *testing.T) {
	actual := 9000.0
	legacyInfo := models.ShippingInfo{CustomerPaid: 25, ActualCost: &actual, TrackingNumber: "TRK-1"}
	legacyAddr := models.ShippingAddress{Street: "4 Broad St", City: "Lagos", Country: "NG"}

	o := models.Order{
		ID:                    "old-1",
		LegacyShippingInfo:    &legacyInfo,
		LegacyShippingAddress: &legacyAddr,
	}
	UpgradeShape(&o)

	if o.Shipping.ShippingInfo.TrackingNumber != "TRK-1" || o.Shipping.ShippingInfo.CustomerPaid != 25 {
		t.Fatalf("shippingInfo not wrapped: %+v", o.Shipping.ShippingInfo)
	}
	if o.Shipping.ShippingInfo.ActualCost == nil || *o.Shipping.ShippingInfo.ActualCost != 9000 {
		t.Fatal("actualCost lost in migration")
	}
	if o.Shipping.ShippingAddress.City != "Lagos" {
		t.Fatalf("shippingAddress not wrapped: %+v", o.Shipping.ShippingAddress)
	}
	if o.Shipping.Status != "pending" {
		t.Fatalf("shipping status = %q, want pending", o.Shipping.Status)
	}
	if o.LegacyShippingInfo != nil || o.LegacyShippingAddress != nil {
		t.Fatal("legacy fields must be cleared after upgrade")
	}
}

func TestUpgradeShapeFlatDocumentWithoutAddress(t *testing.T) {
	o := models.Order{
		ID:                 "old-2",
		LegacyShippingInfo: &models.ShippingInfo{CustomerPaid: 10},
	}
	UpgradeShape(&o)
	if o.Shipping.ShippingInfo.CustomerPaid != 10 {
		t.Fatal("shippingInfo not wrapped")
	}
	if o.Shipping.ShippingAddress != (models.ShippingAddress{}) {
		t.Fatalf("expected empty address, got %+v", o.Shipping.ShippingAddress)
	}
}

func TestUpgradeShapeLeavesNestedDocumentAlone(t *testing.T) {
	o := models.Order{
		ID: "new-1",
		Shipping: models.Shipping{
			ShippingAddress: models.ShippingAddress{City: "Abuja"},
			ShippingInfo:    models.ShippingInfo{CustomerPaid: 40},
			Status:          "in_transit",
		},
		// stale flat fields alongside the nested block must not win
		LegacyShippingInfo: &models.ShippingInfo{CustomerPaid: 1},
	}
	UpgradeShape(&o)
	if o.Shipping.Status != "in_transit" || o.Shipping.ShippingInfo.CustomerPaid != 40 {
		t.Fatalf("nested shape was overwritten: %+v", o.Shipping)
	}
}

func TestUpgradeShapeNormalizesNilLists(t *testing.T) {
	o := models.Order{ID: "new-2", Shipping: models.Shipping{Status: "pending"}}
	UpgradeShape(&o)
	if o.ExtraExpenses == nil || o.AdditionalPayments == nil || o.Items == nil {
		t.Fatal("lists must be normalized to empty slices on read")
	}
}
