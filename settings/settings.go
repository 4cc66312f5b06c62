package settings

import (
	"context"
	"encoding/json"
	"net/http"

	"atelier/db"
	"atelier/globals"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserSettings represents a staff member's dashboard preferences
type UserSettings struct {
	UserID           string `json:"userID,omitempty" bson:"userID"`
	Theme            string `json:"theme" bson:"theme"`
	Notifications    bool   `json:"notifications" bson:"notifications"`
	DefaultCurrency  string `json:"default_currency" bson:"default_currency"`
	LowStockAlerts   bool   `json:"low_stock_alerts" bson:"low_stock_alerts"`
	AttentionQueue   bool   `json:"attention_queue" bson:"attention_queue"`
	TimeZone         string `json:"time_zone" bson:"time_zone"`
	OrdersPerPage    int    `json:"orders_per_page" bson:"orders_per_page"`
	ShowProfitOnList bool   `json:"show_profit_on_list" bson:"show_profit_on_list"`
}

// Default settings if user settings don't exist
func getDefaultSettings(userID string) UserSettings {
	return UserSettings{
		UserID:           userID,
		Theme:            "light",
		Notifications:    true,
		DefaultCurrency:  "NGN",
		LowStockAlerts:   true,
		AttentionQueue:   true,
		TimeZone:         "Africa/Lagos",
		OrdersPerPage:    50,
		ShowProfitOnList: true,
	}
}

// Fetch user settings, initializing defaults on first read
func GetUserSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := r.Context().Value(globals.UserIDKey).(string)

	var userSettings UserSettings
	err := db.SettingsCollection.FindOne(context.TODO(), bson.M{"userID": userID}).Decode(&userSettings)
	if err == mongo.ErrNoDocuments {
		userSettings = getDefaultSettings(userID)
		_, _ = db.SettingsCollection.InsertOne(context.TODO(), userSettings)
	} else if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(userSettings)
}

// Update a specific user setting
func UpdateUserSetting(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := r.Context().Value(globals.UserIDKey).(string)
	settingType := ps.ByName("type")

	validSettings := map[string]bool{
		"theme":               true,
		"notifications":       true,
		"default_currency":    true,
		"low_stock_alerts":    true,
		"attention_queue":     true,
		"time_zone":           true,
		"orders_per_page":     true,
		"show_profit_on_list": true,
	}
	if !validSettings[settingType] {
		http.Error(w, "Invalid setting type", http.StatusBadRequest)
		return
	}

	var update struct {
		Value any `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	_, err := db.SettingsCollection.UpdateOne(
		context.TODO(),
		bson.M{"userID": userID},
		bson.M{"$set": bson.M{settingType: update.Value}},
	)
	if err != nil {
		http.Error(w, "Failed to update setting", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"ok": true, "type": settingType})
}
