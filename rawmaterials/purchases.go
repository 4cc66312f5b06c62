package rawmaterials

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"atelier/db"
	"atelier/globals"
	"atelier/models"
	"atelier/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetPurchases lists recorded purchases, newest first.
func GetPurchases(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	findOpts := options.Find().SetSort(bson.D{{Key: "purchaseDate", Value: -1}})
	purchases, err := utils.FindAndDecode[models.RawMaterialPurchase](ctx, db.PurchasesCollection, bson.M{}, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch purchases")
		return
	}
	if purchases == nil {
		purchases = []models.RawMaterialPurchase{}
	}
	utils.RespondWithJSON(w, http.StatusOK, purchases)
}

// RecordPurchase stores a purchase and rolls it into the material: bump the
// stock, set the standing unit cost to this purchase's price, append
// history. lastPurchasePrice is the price used for all product costing
// until the next purchase; it is not a weighted average.
func RecordPurchase(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var purchase models.RawMaterialPurchase
	if err := json.NewDecoder(r.Body).Decode(&purchase); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid purchase body")
		return
	}
	if purchase.MaterialID == "" || purchase.Quantity <= 0 || purchase.Price <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Purchase needs a materialId, positive quantity and price")
		return
	}

	purchase.ID = utils.GenerateID(14)
	if purchase.PurchaseDate.IsZero() {
		purchase.PurchaseDate = time.Now()
	}
	if userID, ok := r.Context().Value(globals.UserIDKey).(string); ok {
		purchase.PurchasedBy = userID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.RawMaterialsCollection.UpdateOne(ctx, bson.M{"_id": purchase.MaterialID},
		bson.M{
			"$inc": bson.M{"currentQuantity": purchase.Quantity},
			"$set": bson.M{
				"lastPurchasePrice": purchase.Price,
				"lastPurchaseDate":  purchase.PurchaseDate,
			},
			"$push": bson.M{"purchaseHistory": models.PurchaseHistory{
				ID:           purchase.ID,
				Quantity:     purchase.Quantity,
				TotalCost:    purchase.Price * purchase.Quantity,
				PurchaseDate: purchase.PurchaseDate,
			}},
		})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update material")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Material not found")
		return
	}

	if _, err := db.PurchasesCollection.InsertOne(ctx, purchase); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record purchase")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, purchase)
}
