package dashboard

import (
	"net/http"
	"time"

	"atelier/db"
	"atelier/models"
	"atelier/orders"
	"atelier/settings"
	"atelier/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetSummary answers GET /api/dashboard with the full rollup.
func GetSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	orderList, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	for i := range orderList {
		orders.UpgradeShape(&orderList[i])
	}

	ref, err := orders.LoadRefData(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load reference data")
		return
	}

	purchases, err := utils.FindAndDecode[models.RawMaterialPurchase](ctx, db.PurchasesCollection, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch purchases")
		return
	}

	labor, err := utils.FindAndDecode[models.LaborCost](ctx, db.LaborCostsCollection, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch labor costs")
		return
	}

	rates := settings.LoadRates(ctx)

	summary := BuildSummary(orderList, ref, purchases, labor, rates, time.Now())
	utils.RespondWithJSON(w, http.StatusOK, summary)
}
