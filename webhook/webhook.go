package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"atelier/db"
	"atelier/live"
	"atelier/models"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SyncOrder ingests an inbound e-commerce order payload and upserts it.
// Responses are plain text: the vendor's webhook runner only logs them.
func SyncOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload vendorOrder
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Printf("webhook: invalid payload structure: %v", err)
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	if payload.ID == "" || payload.ID == "0" || payload.LineItems == nil {
		log.Printf("webhook: invalid payload, id=%q line_items=%v", payload.ID, payload.LineItems != nil)
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if payload.Billing == nil || payload.Billing.Email == "" {
		log.Printf("webhook: missing customer email for order %s", payload.ID)
		http.Error(w, "Missing customer email", http.StatusBadRequest)
		return
	}

	order := mapOrder(payload, time.Now())
	log.Printf("webhook: processing order %s for %s (%s %v, %d items)",
		order.ID, order.CustomerName, order.Currency, order.TotalAmount, len(order.Items))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"_id": order.ID}).Decode(&existing)
	switch {
	case err == nil:
		order = mergeExisting(order, existing)
	case err == mongo.ErrNoDocuments:
		// first sight of this order, insert as mapped
	default:
		log.Printf("webhook: failed to look up order %s: %v", order.ID, err)
		http.Error(w, "Failed to process order", http.StatusInternalServerError)
		return
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := db.OrdersCollection.ReplaceOne(ctx, bson.M{"_id": order.ID}, order, opts); err != nil {
		log.Printf("webhook: failed to store order %s: %v", order.ID, err)
		http.Error(w, "Failed to process order", http.StatusInternalServerError)
		return
	}

	live.Publish(live.Event{Action: "order_synced", OrderID: order.ID, Status: string(order.Status)})
	fmt.Fprint(w, "Order processed successfully")
}

// UpdateOrderStatus handles the vendor's status-change callback.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		ID     flexString `json:"id"`
		Status string     `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" || body.Status == "" {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	orderID := string(body.ID)
	newStatus := MapStatus(body.Status)
	log.Printf("webhook: updating order %s status to %s", orderID, newStatus)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Printf("webhook: failed to look up order %s: %v", orderID, err)
		http.Error(w, "Failed to update order status", http.StatusInternalServerError)
		return
	}

	update := bson.M{"status": newStatus}
	if newStatus == models.OrderCompleted || newStatus == models.OrderDelivered {
		update["dateCompleted"] = time.Now()
	}

	if _, err := db.OrdersCollection.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": update}); err != nil {
		log.Printf("webhook: failed to update order %s: %v", orderID, err)
		http.Error(w, "Failed to update order status", http.StatusInternalServerError)
		return
	}

	live.Publish(live.Event{Action: "status_changed", OrderID: orderID, Status: string(newStatus)})
	fmt.Fprint(w, "Order status updated successfully")
}
