package products

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"atelier/db"
	"atelier/models"
	"atelier/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetProducts lists the catalog.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	productList, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	if productList == nil {
		productList = []models.Product{}
	}
	utils.RespondWithJSON(w, http.StatusOK, productList)
}

func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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
	utils.RespondWithJSON(w, http.StatusOK, product)
}

// CreateProduct adds a catalog entry with its bill of materials and make
// time.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product body")
		return
	}
	if product.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Product needs a name")
		return
	}
	if product.TimeToMake < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "timeToMake cannot be negative")
		return
	}

	if product.ID == "" {
		product.ID = utils.GenerateID(14)
	}
	if product.Materials == nil {
		product.Materials = []models.ProductMaterial{}
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, product)
}

func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	productID := ps.ByName("productid")

	var body struct {
		Name       *string                  `json:"name"`
		Materials  []models.ProductMaterial `json:"materials"`
		TimeToMake *float64                 `json:"timeToMake"`
		BaseCost   *float64                 `json:"baseCost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product body")
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if body.Name != nil {
		update["name"] = *body.Name
	}
	if body.Materials != nil {
		update["materials"] = body.Materials
	}
	if body.TimeToMake != nil {
		if *body.TimeToMake < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "timeToMake cannot be negative")
			return
		}
		update["timeToMake"] = *body.TimeToMake
	}
	if body.BaseCost != nil {
		update["baseCost"] = *body.BaseCost
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ProductsCollection.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": productID})
}

func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ProductsCollection.DeleteOne(ctx, bson.M{"_id": ps.ByName("productid")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"deleted": true})
}
