package products

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"atelier/db"
	"atelier/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var productUploadDir = "./static/productpic"

// UploadProductPhoto stores a catalog photo and a 300px thumbnail next to
// it, then records the file name on the product.
func UploadProductPhoto(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	productID := ps.ByName("productid")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing photo file")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	switch mimeType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid file type. Supported formats: JPEG, PNG, WebP.")
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to decode image")
		return
	}

	fileName := utils.GenerateID(16) + ".jpg"
	originalPath := filepath.Join(productUploadDir, fileName)
	thumbDir := filepath.Join(productUploadDir, "thumb")
	thumbnailPath := filepath.Join(thumbDir, fileName)

	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create upload directory")
		return
	}
	if err := imaging.Save(img, originalPath); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}
	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbnailPath); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save thumbnail")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ProductsCollection.UpdateOne(ctx, bson.M{"_id": productID},
		bson.M{"$set": bson.M{"photo": fileName, "updatedAt": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record photo")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"photo": fmt.Sprintf("/static/productpic/%s", fileName),
		"thumb": fmt.Sprintf("/static/productpic/thumb/%s", fileName),
	})
}
