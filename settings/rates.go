package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"atelier/currency"
	"atelier/db"
	"atelier/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type rateDoc struct {
	Currency    currency.Currency `json:"currency" bson:"_id"`
	RateToNGN   float64           `json:"rateToNGN" bson:"rateToNGN"`
	LastUpdated time.Time         `json:"lastUpdated" bson:"lastUpdated"`
}

// LoadRates builds the rate table handed to reconciliation: the standing
// defaults with any stored overrides layered on top. Falls back to defaults
// outright when the collection is unreachable; pricing should not go down
// with the settings store.
func LoadRates(ctx context.Context) currency.RateTable {
	rates := currency.DefaultRates()

	docs, err := utils.FindAndDecode[rateDoc](ctx, db.CurrencyRatesCollection, bson.M{})
	if err != nil {
		return rates
	}
	for _, d := range docs {
		if d.RateToNGN > 0 {
			rates[d.Currency] = d.RateToNGN
		}
	}
	// NGN is 1 by definition, overrides cannot move it
	rates[currency.NGN] = 1
	return rates
}

// GetRates returns the effective table.
func GetRates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	utils.RespondWithJSON(w, http.StatusOK, LoadRates(ctx))
}

// UpdateRate stores an override for one currency.
func UpdateRate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Currency  string  `json:"currency"`
		RateToNGN float64 `json:"rateToNGN"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Currency == "" || body.RateToNGN <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rate needs a currency and a positive rateToNGN")
		return
	}

	c := currency.Parse(body.Currency)
	if c == currency.NGN {
		utils.RespondWithError(w, http.StatusBadRequest, "NGN rate is fixed at 1")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	doc := rateDoc{Currency: c, RateToNGN: body.RateToNGN, LastUpdated: time.Now()}
	opts := options.Replace().SetUpsert(true)
	if _, err := db.CurrencyRatesCollection.ReplaceOne(ctx, bson.M{"_id": c}, doc, opts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store rate")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, doc)
}
