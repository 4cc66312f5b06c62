package orders

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

// AddExtraExpense appends a staff-recorded expense in the order's own
// currency.
func AddExtraExpense(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")

	var expense models.ExtraExpense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil || expense.Description == "" || expense.Amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Expense needs a description and a positive amount")
		return
	}

	expense.ID = utils.GenerateID(12)
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}
	if expense.Category == "" {
		expense.Category = "other"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.OrdersCollection.UpdateOne(ctx, bson.M{"_id": orderID},
		bson.M{"$push": bson.M{"extraExpenses": expense}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add expense")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	respondReconciled(ctx, w, orderID)
}

// RemoveExtraExpense deletes one expense by its id.
func RemoveExtraExpense(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")
	expenseID := ps.ByName("expenseid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.OrdersCollection.UpdateOne(ctx, bson.M{"_id": orderID},
		bson.M{"$pull": bson.M{"extraExpenses": bson.M{"id": expenseID}}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove expense")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	respondReconciled(ctx, w, orderID)
}

// AddAdditionalPayment appends a customer top-up payment in the order's own
// currency.
func AddAdditionalPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")

	var payment models.AdditionalPayment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil || payment.Description == "" || payment.Amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Payment needs a description and a positive amount")
		return
	}

	payment.ID = utils.GenerateID(12)
	if payment.Date.IsZero() {
		payment.Date = time.Now()
	}
	if payment.Type == "" {
		payment.Type = "other"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.OrdersCollection.UpdateOne(ctx, bson.M{"_id": orderID},
		bson.M{"$push": bson.M{"additionalPayments": payment}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add payment")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	respondReconciled(ctx, w, orderID)
}

// RemoveAdditionalPayment deletes one payment by its id.
func RemoveAdditionalPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")
	paymentID := ps.ByName("paymentid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.OrdersCollection.UpdateOne(ctx, bson.M{"_id": orderID},
		bson.M{"$pull": bson.M{"additionalPayments": bson.M{"id": paymentID}}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove payment")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	respondReconciled(ctx, w, orderID)
}
