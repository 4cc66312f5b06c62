package orders

import (
	"context"

	"atelier/db"
	"atelier/finance"
	"atelier/models"
	"atelier/settings"
	"atelier/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// LoadRefData pulls the reference collections an order needs to be priced.
// Store failures bubble up so the handler can answer 500; the engine itself
// never sees a half-loaded state as Ready.
func LoadRefData(ctx context.Context) (finance.RefData, error) {
	products, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection, bson.M{})
	if err != nil {
		return finance.RefData{State: finance.NotLoaded}, err
	}
	materials, err := utils.FindAndDecode[models.RawMaterial](ctx, db.RawMaterialsCollection, bson.M{})
	if err != nil {
		return finance.RefData{State: finance.NotLoaded}, err
	}
	labor, err := utils.FindAndDecode[models.LaborCost](ctx, db.LaborCostsCollection, bson.M{})
	if err != nil {
		return finance.RefData{State: finance.NotLoaded}, err
	}
	return finance.NewRefData(products, materials, labor), nil
}

// reconcileForRead recomputes an order's financials against fresh reference
// data and copies them onto the order for the response.
func reconcileForRead(ctx context.Context, o *models.Order) error {
	ref, err := LoadRefData(ctx)
	if err != nil {
		return err
	}
	snap := finance.Reconcile(*o, ref, settings.LoadRates(ctx))
	finance.Apply(o, snap)
	return nil
}
