package labor

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"atelier/db"
	"atelier/finance"
	"atelier/models"
	"atelier/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetLaborCosts lists every labor cost entry.
func GetLaborCosts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	costs, err := utils.FindAndDecode[models.LaborCost](ctx, db.LaborCostsCollection, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch labor costs")
		return
	}
	if costs == nil {
		costs = []models.LaborCost{}
	}
	utils.RespondWithJSON(w, http.StatusOK, costs)
}

// GetDailyRate exposes the blended rate the costing engine uses.
func GetDailyRate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	costs, err := utils.FindAndDecode[models.LaborCost](ctx, db.LaborCostsCollection, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch labor costs")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"dailyRate": finance.DailyRate(costs)})
}

// CreateLaborCost adds an employee cost entry.
func CreateLaborCost(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var cost models.LaborCost
	if err := json.NewDecoder(r.Body).Decode(&cost); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid labor cost body")
		return
	}
	if cost.EmployeeName == "" || cost.MonthlySalary <= 0 || cost.DaysWorked <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Labor cost needs a name, positive salary and days worked")
		return
	}

	cost.ID = utils.GenerateID(14)
	if cost.StartDate.IsZero() {
		cost.StartDate = time.Now()
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.LaborCostsCollection.InsertOne(ctx, cost); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create labor cost")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, cost)
}

// UpdateLaborCost edits an entry.
func UpdateLaborCost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	costID := ps.ByName("costid")

	var body struct {
		EmployeeName  *string    `json:"employeeName"`
		MonthlySalary *float64   `json:"monthlySalary"`
		DaysWorked    *float64   `json:"daysWorked"`
		HoursPerDay   *float64   `json:"hoursPerDay"`
		EndDate       *time.Time `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid labor cost body")
		return
	}

	update := bson.M{}
	if body.EmployeeName != nil {
		update["employeeName"] = *body.EmployeeName
	}
	if body.MonthlySalary != nil {
		update["monthlySalary"] = *body.MonthlySalary
	}
	if body.DaysWorked != nil {
		update["daysWorked"] = *body.DaysWorked
	}
	if body.HoursPerDay != nil {
		update["hoursPerDay"] = *body.HoursPerDay
	}
	if body.EndDate != nil {
		update["endDate"] = *body.EndDate
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.LaborCostsCollection.UpdateOne(ctx, bson.M{"_id": costID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update labor cost")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Labor cost not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": costID})
}

// DeleteLaborCost removes an entry.
func DeleteLaborCost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.LaborCostsCollection.DeleteOne(ctx, bson.M{"_id": ps.ByName("costid")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete labor cost")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Labor cost not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"deleted": true})
}
