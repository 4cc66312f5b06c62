package products

import (
	"context"
	"net/http"
	"time"

	"atelier/db"
	"atelier/finance"
	"atelier/models"
	"atelier/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetProductCost breaks one product's price down into the standing material
// cost and blended labor, same arithmetic the order engine uses.
func GetProductCost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"_id": ps.ByName("productid")}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	materials, err := utils.FindAndDecode[models.RawMaterial](ctx, db.RawMaterialsCollection, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch materials")
		return
	}
	labor, err := utils.FindAndDecode[models.LaborCost](ctx, db.LaborCostsCollection, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch labor costs")
		return
	}

	ref := finance.NewRefData([]models.Product{product}, materials, labor)
	matCost, laborCost, total := finance.ProductBreakdown(product, ref)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"productId":    product.ID,
		"materialCost": matCost,
		"laborCost":    laborCost,
		"totalCost":    total,
		"dailyRate":    ref.DailyRate,
		"timeToMake":   product.TimeToMake,
	})
}
