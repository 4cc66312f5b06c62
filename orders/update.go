package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"atelier/db"
	"atelier/live"
	"atelier/models"
	"atelier/utils"
	"atelier/webhook"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func fetchOrder(ctx context.Context, id string) (models.Order, error) {
	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		return order, err
	}
	UpgradeShape(&order)
	return order, nil
}

// UpdateStatus moves an order through its lifecycle; completion stamps the
// completion date.
func UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := fetchOrder(ctx, orderID); err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	newStatus := webhook.MapStatus(body.Status)
	update := bson.M{"status": newStatus}
	if newStatus == models.OrderCompleted || newStatus == models.OrderDelivered {
		update["dateCompleted"] = time.Now()
	}

	if _, err := db.OrdersCollection.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": update}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	live.Publish(live.Event{Action: "status_changed", OrderID: orderID, Status: string(newStatus)})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": orderID, "status": newStatus})
}

// UpdateShippingInfo records courier details and the actual cost paid, which
// staff enter in NGN.
func UpdateShippingInfo(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")

	var body struct {
		ShippingCompany       string     `json:"shippingCompany"`
		TrackingNumber        string     `json:"trackingNumber"`
		Carrier               string     `json:"carrier"`
		ActualCost            *float64   `json:"actualCost"`
		EstimatedDeliveryDate *time.Time `json:"estimatedDeliveryDate"`
		DateShipped           *time.Time `json:"dateShipped"`
		ActualDeliveryDate    *time.Time `json:"actualDeliveryDate"`
		ShippingStatus        string     `json:"shippingStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid shipping body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := fetchOrder(ctx, orderID)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	info := order.Shipping.ShippingInfo
	if body.ShippingCompany != "" {
		info.ShippingCompany = body.ShippingCompany
	}
	if body.TrackingNumber != "" {
		info.TrackingNumber = body.TrackingNumber
	}
	if body.Carrier != "" {
		info.Carrier = body.Carrier
	}
	if body.ActualCost != nil {
		info.ActualCost = body.ActualCost
	}
	if body.EstimatedDeliveryDate != nil {
		info.EstimatedDeliveryDate = body.EstimatedDeliveryDate
	}
	if body.DateShipped != nil {
		info.DateShipped = body.DateShipped
	}
	if body.ActualDeliveryDate != nil {
		info.ActualDeliveryDate = body.ActualDeliveryDate
	}

	update := bson.M{"shipping.shippingInfo": info}
	if body.ShippingStatus != "" {
		update["shipping.status"] = body.ShippingStatus
	}

	if _, err := db.OrdersCollection.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": update}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update shipping info")
		return
	}

	live.Publish(live.Event{Action: "order_updated", OrderID: orderID})
	respondReconciled(ctx, w, orderID)
}

// UpdateShippingAddress replaces the delivery address.
func UpdateShippingAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")

	var addr models.ShippingAddress
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid address body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.OrdersCollection.UpdateOne(ctx, bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"shipping.shippingAddress": addr}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update address")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": orderID, "shippingAddress": addr})
}

// EditOrderMeta updates the free-form staff fields: notes and social media
// references.
func EditOrderMeta(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")

	var body struct {
		Notes       *string                 `json:"notes"`
		SocialMedia []models.SocialMediaRef `json:"socialMedia"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	update := bson.M{}
	if body.Notes != nil {
		update["notes"] = *body.Notes
	}
	if body.SocialMedia != nil {
		update["socialMedia"] = body.SocialMedia
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.OrdersCollection.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": orderID})
}

// RelinkItem points a line item at a real catalog product. This is the
// manual fix for orders flagged with invalid products.
func RelinkItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")
	itemIndex, err := strconv.Atoi(ps.ByName("itemindex"))
	if err != nil || itemIndex < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid item index")
		return
	}

	var body struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProductID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing productId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := fetchOrder(ctx, orderID)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}
	if itemIndex >= len(order.Items) {
		utils.RespondWithError(w, http.StatusBadRequest, "Item index out of range")
		return
	}

	// the target must exist in the catalog, otherwise relinking is pointless
	count, err := db.ProductsCollection.CountDocuments(ctx, bson.M{"_id": body.ProductID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check product")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown product id")
		return
	}

	order.Items[itemIndex].ProductID = body.ProductID
	if _, err := db.OrdersCollection.UpdateOne(ctx, bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"items": order.Items}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to relink item")
		return
	}

	live.Publish(live.Event{Action: "order_updated", OrderID: orderID})
	respondReconciled(ctx, w, orderID)
}

// respondReconciled re-reads the order and returns it with fresh financials.
func respondReconciled(ctx context.Context, w http.ResponseWriter, orderID string) {
	order, err := fetchOrder(ctx, orderID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to re-read order")
		return
	}
	if err := reconcileForRead(ctx, &order); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load reference data")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}
