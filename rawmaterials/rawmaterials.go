package rawmaterials

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
)

// GetRawMaterials lists the inventory.
func GetRawMaterials(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	materials, err := utils.FindAndDecode[models.RawMaterial](ctx, db.RawMaterialsCollection, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch raw materials")
		return
	}
	if materials == nil {
		materials = []models.RawMaterial{}
	}
	utils.RespondWithJSON(w, http.StatusOK, materials)
}

// CreateRawMaterial registers a new material.
func CreateRawMaterial(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var material models.RawMaterial
	if err := json.NewDecoder(r.Body).Decode(&material); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid material body")
		return
	}
	if material.Name == "" || material.Unit == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Material needs a name and a unit")
		return
	}

	if material.ID == "" {
		material.ID = utils.GenerateID(14)
	}
	if material.PurchaseHistory == nil {
		material.PurchaseHistory = []models.PurchaseHistory{}
	}
	material.LastPurchaseDate = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.RawMaterialsCollection.InsertOne(ctx, material); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create material")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, material)
}

// UpdateRawMaterial edits name/unit/quantity by hand (stock corrections).
func UpdateRawMaterial(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	materialID := ps.ByName("materialid")

	var body struct {
		Name            *string  `json:"name"`
		Unit            *string  `json:"unit"`
		CurrentQuantity *float64 `json:"currentQuantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid material body")
		return
	}

	update := bson.M{}
	if body.Name != nil {
		update["name"] = *body.Name
	}
	if body.Unit != nil {
		update["unit"] = *body.Unit
	}
	if body.CurrentQuantity != nil {
		update["currentQuantity"] = *body.CurrentQuantity
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.RawMaterialsCollection.UpdateOne(ctx, bson.M{"_id": materialID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update material")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Material not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": materialID})
}
