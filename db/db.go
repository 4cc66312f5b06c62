package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	OrdersCollection        *mongo.Collection
	ProductsCollection      *mongo.Collection
	RawMaterialsCollection  *mongo.Collection
	PurchasesCollection     *mongo.Collection
	LaborCostsCollection    *mongo.Collection
	UserCollection          *mongo.Collection
	SettingsCollection      *mongo.Collection
	CurrencyRatesCollection *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ClientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), ClientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	OrdersCollection = Client.Database("atelierdb").Collection("orders")
	ProductsCollection = Client.Database("atelierdb").Collection("products")
	RawMaterialsCollection = Client.Database("atelierdb").Collection("rawMaterials")
	PurchasesCollection = Client.Database("atelierdb").Collection("rawMaterialPurchases")
	LaborCostsCollection = Client.Database("atelierdb").Collection("laborCosts")
	UserCollection = Client.Database("atelierdb").Collection("users")
	SettingsCollection = Client.Database("atelierdb").Collection("settings")
	CurrencyRatesCollection = Client.Database("atelierdb").Collection("currencyRates")
}
