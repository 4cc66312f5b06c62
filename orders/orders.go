package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"atelier/db"
	"atelier/finance"
	"atelier/live"
	"atelier/models"
	"atelier/settings"
	"atelier/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetOrders lists orders newest first, optionally filtered by status, each
// reconciled against current reference data.
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	filter := bson.M{}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})
	orderList, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, filter, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	if orderList == nil {
		orderList = []models.Order{}
	}

	// one reference snapshot for the whole page
	ref, err := LoadRefData(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load reference data")
		return
	}
	rates := settings.LoadRates(ctx)

	for i := range orderList {
		UpgradeShape(&orderList[i])
		snap := finance.Reconcile(orderList[i], ref, rates)
		finance.Apply(&orderList[i], snap)
	}

	utils.RespondWithJSON(w, http.StatusOK, orderList)
}

// GetOrder fetches one order with a fresh financial snapshot attached.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orderID := ps.ByName("orderid")

	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	UpgradeShape(&order)

	ref, err := LoadRefData(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load reference data")
		return
	}
	snap := finance.Reconcile(order, ref, settings.LoadRates(ctx))
	finance.Apply(&order, snap)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"order":    order,
		"snapshot": snap,
	})
}

// CreateOrder handles the manual order form. Webhook ingestion has its own
// path; this one generates the id.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var order models.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order body")
		return
	}
	if len(order.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Order needs at least one item")
		return
	}
	if order.CustomerEmail == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing customer email")
		return
	}

	order.ID = utils.GenerateID(14)
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	if order.Status == "" {
		order.Status = models.OrderPending
	}
	if order.Shipping.Status == "" {
		order.Shipping.Status = "pending"
	}
	order.ExtraExpenses = []models.ExtraExpense{}
	order.AdditionalPayments = []models.AdditionalPayment{}
	order.ProductCostInNGN = 0
	order.ShippingCostInNGN = 0
	order.ProfitMargin = 0
	order.HasInvalidProducts = false

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		log.Printf("orders: failed to insert order: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	live.Publish(live.Event{Action: "order_synced", OrderID: order.ID, Status: string(order.Status)})
	utils.RespondWithJSON(w, http.StatusCreated, order)
}
