package routes

import (
	"net/http"

	"atelier/auth"
	"atelier/dashboard"
	"atelier/labor"
	"atelier/live"
	"atelier/middleware"
	"atelier/orders"
	"atelier/products"
	"atelier/ratelim"
	"atelier/rawmaterials"
	"atelier/settings"
	"atelier/webhook"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(middleware.Authenticate(auth.RefreshToken)))
}

// AddWebhookRoutes exposes the vendor-facing sync endpoints. They carry no
// session; the sender authenticates at the network layer, so they only get
// rate limiting.
func AddWebhookRoutes(router *httprouter.Router) {
	router.POST("/api/webhook/syncOrder", ratelim.RateLimit(webhook.SyncOrder))
	router.POST("/api/webhook/updateOrderStatus", ratelim.RateLimit(webhook.UpdateOrderStatus))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.GET("/api/orders", middleware.Authenticate(orders.GetOrders))
	router.GET("/api/orders/:orderid", middleware.Authenticate(orders.GetOrder))
	router.POST("/api/orders", middleware.Authenticate(orders.CreateOrder))
	router.PUT("/api/orders/:orderid/status", middleware.Authenticate(orders.UpdateStatus))
	router.PUT("/api/orders/:orderid/shipping/info", middleware.Authenticate(orders.UpdateShippingInfo))
	router.PUT("/api/orders/:orderid/shipping/address", middleware.Authenticate(orders.UpdateShippingAddress))
	router.PUT("/api/orders/:orderid/meta", middleware.Authenticate(orders.EditOrderMeta))
	router.PUT("/api/orders/:orderid/items/:itemindex/relink", middleware.Authenticate(orders.RelinkItem))

	router.POST("/api/orders/:orderid/expenses", middleware.Authenticate(orders.AddExtraExpense))
	router.DELETE("/api/orders/:orderid/expenses/:expenseid", middleware.Authenticate(orders.RemoveExtraExpense))
	router.POST("/api/orders/:orderid/payments", middleware.Authenticate(orders.AddAdditionalPayment))
	router.DELETE("/api/orders/:orderid/payments/:paymentid", middleware.Authenticate(orders.RemoveAdditionalPayment))

	router.GET("/api/orders/:orderid/invoice", middleware.Authenticate(orders.PrintInvoice))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products", middleware.Authenticate(products.GetProducts))
	router.GET("/api/products/:productid", middleware.Authenticate(products.GetProduct))
	router.POST("/api/products", middleware.Authenticate(products.CreateProduct))
	router.PUT("/api/products/:productid", middleware.Authenticate(products.UpdateProduct))
	router.DELETE("/api/products/:productid", middleware.Authenticate(products.DeleteProduct))
	router.GET("/api/products/:productid/cost", middleware.Authenticate(products.GetProductCost))
	router.POST("/api/products/:productid/photo", middleware.Authenticate(products.UploadProductPhoto))
}

func AddMaterialRoutes(router *httprouter.Router) {
	router.GET("/api/materials", middleware.Authenticate(rawmaterials.GetRawMaterials))
	router.POST("/api/materials", middleware.Authenticate(rawmaterials.CreateRawMaterial))
	router.PUT("/api/materials/:materialid", middleware.Authenticate(rawmaterials.UpdateRawMaterial))
	router.GET("/api/materials/purchases/all", middleware.Authenticate(rawmaterials.GetPurchases))
	router.POST("/api/materials/purchases", middleware.Authenticate(rawmaterials.RecordPurchase))
}

func AddLaborRoutes(router *httprouter.Router) {
	router.GET("/api/labor", middleware.Authenticate(labor.GetLaborCosts))
	router.GET("/api/labor/dailyrate", middleware.Authenticate(labor.GetDailyRate))
	router.POST("/api/labor", middleware.Authenticate(labor.CreateLaborCost))
	router.PUT("/api/labor/:costid", middleware.Authenticate(labor.UpdateLaborCost))
	router.DELETE("/api/labor/:costid", middleware.Authenticate(labor.DeleteLaborCost))
}

func AddDashboardRoutes(router *httprouter.Router) {
	router.GET("/api/dashboard", middleware.Authenticate(dashboard.GetSummary))
}

func AddSettingsRoutes(router *httprouter.Router) {
	router.GET("/api/settings/all", middleware.Authenticate(settings.GetUserSettings))
	router.PUT("/api/settings/setting/:type", middleware.Authenticate(settings.UpdateUserSetting))
	router.GET("/api/settings/rates", middleware.Authenticate(settings.GetRates))
	router.PUT("/api/settings/rates", middleware.Authenticate(settings.UpdateRate))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/api/live", middleware.Authenticate(live.WebSocketHandler(hub)))
}
